package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/notargets/butterfly/halfedge"
)

// WriteGmsh22 writes the vertices and triangles of m as a Gmsh MSH 2.2 ASCII file, node and element ids are 1-based
func WriteGmsh22(w io.Writer, m *halfedge.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	fmt.Fprintf(bw, "$Nodes\n%d\n", m.NumVertices())
	for v := range m.Vertices {
		p := m.Position(v)
		fmt.Fprintf(bw, "%d %s %s %s\n", v+1, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}
	fmt.Fprintf(bw, "$EndNodes\n")

	// Format: elem-id elem-type num-tags tag1 node1 node2 node3
	fmt.Fprintf(bw, "$Elements\n%d\n", m.NumFaces())
	for f := range m.Faces {
		verts := m.FaceVertices(f)
		fmt.Fprintf(bw, "%d %d 1 0 %d %d %d\n", f+1, gmshTriangle, verts[0]+1, verts[1]+1, verts[2]+1)
	}
	fmt.Fprintf(bw, "$EndElements\n")
	return bw.Flush()
}

// WriteSU2 writes m as a 3D SU2 native file with no markers
func WriteSU2(w io.Writer, m *halfedge.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NDIME= 3\n")
	fmt.Fprintf(bw, "NELEM= %d\n", m.NumFaces())
	for f := range m.Faces {
		verts := m.FaceVertices(f)
		fmt.Fprintf(bw, "%d %d %d %d %d\n", ELType_Triangle, verts[0], verts[1], verts[2], f)
	}
	fmt.Fprintf(bw, "NPOIN= %d\n", m.NumVertices())
	for v := range m.Vertices {
		p := m.Position(v)
		fmt.Fprintf(bw, "%s %s %s %d\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z), v)
	}
	fmt.Fprintf(bw, "NMARK= 0\n")
	return bw.Flush()
}

// formatFloat keeps full precision so a written mesh reads back bit for bit
func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
