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

// Gmsh 2.2 element type of a 3-node triangle
const gmshTriangle = 2

// ReadGmsh22 reads the 3-node triangles of a Gmsh MSH 2.2 ASCII file, other element types are skipped
func ReadGmsh22(r io.Reader) (*halfedge.Mesh, error) {
	var (
		scanner   = bufio.NewScanner(r)
		positions []r3.Vec
		nodeIndex = make(map[int]int) // Gmsh node id -> array index
		tris      [][3]int
		hasNodes  bool
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat22(scanner); err != nil {
				return nil, err
			}

		case "$Nodes":
			var err error
			if positions, err = readNodes22(scanner, nodeIndex); err != nil {
				return nil, err
			}
			hasNodes = true

		case "$Elements":
			var err error
			if tris, err = readElements22(scanner, nodeIndex); err != nil {
				return nil, err
			}

		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// Skip sections without surface data
				endMarker := "$End" + line[1:]
				for scanner.Scan() {
					if strings.TrimSpace(scanner.Text()) == endMarker {
						break
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if !hasNodes {
		return nil, fmt.Errorf("missing $Nodes section")
	}
	if utils.IsNan(positions) {
		return nil, fmt.Errorf("NaN node coordinate")
	}
	return halfedge.NewMeshFromTriangles(positions, tris)
}

// readMeshFormat22 reads the MeshFormat section
func readMeshFormat22(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}

	return skipTo(scanner, "$EndMeshFormat")
}

// readNodes22 reads nodes in v2.2 format
func readNodes22(scanner *bufio.Scanner, nodeIndex map[int]int) (positions []r3.Vec, err error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("invalid node count: %v", err)
	}
	positions = make([]r3.Vec, 0, numNodes)

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return nil, fmt.Errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid node id: %v", err)
		}
		var xyz [3]float64
		for j := range xyz {
			if xyz[j], err = strconv.ParseFloat(parts[1+j], 64); err != nil {
				return nil, fmt.Errorf("node %d: invalid coordinate: %v", nodeID, err)
			}
		}
		if _, dup := nodeIndex[nodeID]; dup {
			return nil, fmt.Errorf("duplicate node id %d", nodeID)
		}
		nodeIndex[nodeID] = len(positions)
		positions = append(positions, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}

	return positions, skipTo(scanner, "$EndNodes")
}

// readElements22 reads the triangles of the elements section in v2.2 format
func readElements22(scanner *bufio.Scanner, nodeIndex map[int]int) (tris [][3]int, err error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("invalid element count: %v", err)
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid element line")
		}

		var header [3]int // elem-id elem-type num-tags
		for j := range header {
			if header[j], err = strconv.Atoi(parts[j]); err != nil {
				return nil, fmt.Errorf("invalid element line %q: %v", scanner.Text(), err)
			}
		}
		elemID, elemType, numTags := header[0], header[1], header[2]
		if numTags < 0 {
			return nil, fmt.Errorf("element %d: negative tag count %d", elemID, numTags)
		}
		if elemType != gmshTriangle {
			continue
		}

		nodeStart := 3 + numTags
		if len(parts) < nodeStart+3 {
			return nil, fmt.Errorf("element %d: expected 3 nodes, got %d",
				elemID, len(parts)-nodeStart)
		}
		var tri [3]int
		for j := 0; j < 3; j++ {
			nodeID, err := strconv.Atoi(parts[nodeStart+j])
			if err != nil {
				return nil, fmt.Errorf("element %d: invalid node id: %v", elemID, err)
			}
			idx, ok := nodeIndex[nodeID]
			if !ok {
				return nil, fmt.Errorf("element %d: unknown node %d", elemID, nodeID)
			}
			tri[j] = idx
		}
		tris = append(tris, tri)
	}

	return tris, skipTo(scanner, "$EndElements")
}

func skipTo(scanner *bufio.Scanner, marker string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == marker {
			return nil
		}
	}
	return fmt.Errorf("unexpected EOF looking for %s", marker)
}
