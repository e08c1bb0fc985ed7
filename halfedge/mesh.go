package halfedge

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EmptyIndex marks an absent link, e.g. the twin of a boundary half-edge
const EmptyIndex = -1

// Vertex is a point of the mesh, Source records the entity of the mesh it was
// derived from when it was produced by a refinement pass
type Vertex struct {
	Position r3.Vec
	Source   SourceKey
}

// HalfEdge is a directed edge of a triangle, all links are arena indices
type HalfEdge struct {
	Start, End int // Vertex indices
	Next, Prev int // Half-edges of the same face loop
	Twin       int // Oppositely directed half-edge on the neighbor face, EmptyIndex on a boundary
	Face       int
}

// Face is a closed loop of exactly three half-edges
type Face struct {
	Edge int // Representative half-edge
}

// Mesh represents a triangulated surface in half-edge form.
// The shape is immutable once built by a Builder.
type Mesh struct {
	Vertices []Vertex
	Edges    []HalfEdge
	Faces    []Face
}

func (m *Mesh) NumVertices() int { return len(m.Vertices) }
func (m *Mesh) NumEdges() int    { return len(m.Edges) }
func (m *Mesh) NumFaces() int    { return len(m.Faces) }

func (m *Mesh) Start(e int) int { return m.Edges[e].Start }
func (m *Mesh) End(e int) int   { return m.Edges[e].End }
func (m *Mesh) Next(e int) int  { return m.Edges[e].Next }
func (m *Mesh) Prev(e int) int  { return m.Edges[e].Prev }
func (m *Mesh) Twin(e int) int  { return m.Edges[e].Twin }

// Position returns the coordinates of vertex v
func (m *Mesh) Position(v int) r3.Vec { return m.Vertices[v].Position }

// IsBoundary reports whether half-edge e has no twin
func (m *Mesh) IsBoundary(e int) bool { return m.Edges[e].Twin == EmptyIndex }

// FaceEdges returns the half-edges of face f in loop order, starting at the representative edge
func (m *Mesh) FaceEdges(f int) (edges [3]int) {
	e := m.Faces[f].Edge
	for i := 0; i < 3; i++ {
		edges[i] = e
		e = m.Edges[e].Next
	}
	return
}

// FaceVertices returns the corners of face f in winding order
func (m *Mesh) FaceVertices(f int) (verts [3]int) {
	for i, e := range m.FaceEdges(f) {
		verts[i] = m.Edges[e].Start
	}
	return
}

// NumUndirectedEdges counts each twin pair once, boundary half-edges count as one edge
func (m *Mesh) NumUndirectedEdges() (n int) {
	for e, he := range m.Edges {
		if he.Twin == EmptyIndex || e < he.Twin {
			n++
		}
	}
	return
}

// IsClosed reports whether every half-edge has a twin
func (m *Mesh) IsClosed() bool {
	if len(m.Faces) == 0 {
		return false
	}
	for _, he := range m.Edges {
		if he.Twin == EmptyIndex {
			return false
		}
	}
	return true
}

// EulerCharacteristic returns V - E + F, which is 2 for a closed genus 0 surface
func (m *Mesh) EulerCharacteristic() int {
	return m.NumVertices() - m.NumUndirectedEdges() + m.NumFaces()
}

// BoundingBox returns the min and max corners of the vertex positions
func (m *Mesh) BoundingBox() (min, max r3.Vec) {
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		p := v.Position
		min = r3.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices())
	fmt.Fprintf(w, "  Edges: %d (%d half-edges)\n", m.NumUndirectedEdges(), m.NumEdges())
	fmt.Fprintf(w, "  Faces: %d\n", m.NumFaces())

	// Count boundary half-edges
	boundaryEdges := 0
	for e := range m.Edges {
		if m.IsBoundary(e) {
			boundaryEdges++
		}
	}
	fmt.Fprintf(w, "  Boundary edges: %d\n", boundaryEdges)
	fmt.Fprintf(w, "  Euler characteristic: %d\n", m.EulerCharacteristic())
	if m.NumVertices() > 0 {
		min, max := m.BoundingBox()
		fmt.Fprintf(w, "  Bounding box: [%g %g %g] - [%g %g %g]\n",
			min.X, min.Y, min.Z, max.X, max.Y, max.Z)
	}
}
