package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/butterfly/halfedge"
	"github.com/notargets/butterfly/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
)

// ReadSU2 reads the triangles of an SU2 native file, points are read as 3D with z = 0 when NDIME=2.
// Marker sections are skipped, a surface has no boundary tags to carry through subdivision.
func ReadSU2(r io.Reader) (*halfedge.Mesh, error) {
	var (
		scanner            = bufio.NewScanner(r)
		ndime              int
		hasNDIME, hasNPOIN bool
		positions          []r3.Vec
		tris               [][3]int
	)
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			// Skip comments (text after %)
			if idx := strings.Index(line, "%"); idx >= 0 {
				line = line[:idx]
			}
			if line = strings.TrimSpace(line); line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}

		switch {
		case strings.HasPrefix(line, "NDIME="):
			hasNDIME = true
			fmt.Sscanf(line, "NDIME=%d", &ndime)
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}

		case strings.HasPrefix(line, "NELEM="):
			var nelem int
			fmt.Sscanf(line, "NELEM=%d", &nelem)
			tris = make([][3]int, 0, nelem)
			for i := 0; i < nelem; i++ {
				line, ok = nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields := strings.Fields(line)
				su2Type, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid element type: %v", err)
				}
				if SU2ElementType(su2Type) != ELType_Triangle {
					return nil, fmt.Errorf("element %d: type %d is not a triangle", i, su2Type)
				}
				if len(fields) < 4 {
					return nil, fmt.Errorf("element %d: expects 3 nodes, got %d fields", i, len(fields)-1)
				}
				var tri [3]int
				for j := 0; j < 3; j++ {
					if tri[j], err = strconv.Atoi(fields[1+j]); err != nil {
						return nil, fmt.Errorf("invalid node index: %v", err)
					}
				}
				// Element ID is implicit, a trailing explicit ID is ignored
				tris = append(tris, tri)
			}

		case strings.HasPrefix(line, "NPOIN="):
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN= before NDIME=")
			}
			hasNPOIN = true
			var npoin int
			fmt.Sscanf(line, "NPOIN=%d", &npoin)
			positions = make([]r3.Vec, npoin)
			for i := 0; i < npoin; i++ {
				line, ok = nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(line)
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}
				var xyz [3]float64
				for j := 0; j < ndime; j++ {
					var err error
					if xyz[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
				}
				positions[i] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
			}

		case strings.HasPrefix(line, "NMARK="), strings.HasPrefix(line, "MARKER_"):
			// Marker element lines start with a type number and fall through to default

		default:
			if _, err := strconv.Atoi(strings.Fields(line)[0]); err != nil {
				return nil, fmt.Errorf("unexpected line: %s", line)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}
	if utils.IsNan(positions) {
		return nil, fmt.Errorf("NaN node coordinate")
	}
	return halfedge.NewMeshFromTriangles(positions, tris)
}
