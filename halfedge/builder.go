package halfedge

import (
	"fmt"

	"github.com/notargets/butterfly/types"
	"gonum.org/v1/gonum/spatial/r3"
)

type SourceKind uint8

const (
	NoSource SourceKind = iota
	FromVertex
	FromEdge
)

func (sk SourceKind) String() string {
	switch sk {
	case NoSource:
		return "None"
	case FromVertex:
		return "Vertex"
	case FromEdge:
		return "Edge"
	}
	return fmt.Sprintf("SourceKind(%d)", uint8(sk))
}

/*
SourceKey identifies the entity of a source mesh that generated a destination vertex.
Edge keys are built from the unordered pair of endpoint indices, so a half-edge and its twin give the same key.
*/
type SourceKey struct {
	Kind SourceKind
	ID   uint64
}

func VertexKey(v int) SourceKey {
	return SourceKey{Kind: FromVertex, ID: uint64(v)}
}

func EdgeKey(a, b int) SourceKey {
	return SourceKey{Kind: FromEdge, ID: uint64(types.NewEdgeKey([2]int{a, b}))}
}

func (sk SourceKey) String() string {
	switch sk.Kind {
	case FromVertex:
		return fmt.Sprintf("vertex %d", sk.ID)
	case FromEdge:
		v := types.EdgeKey(sk.ID).GetVertices(false)
		return fmt.Sprintf("edge [%d,%d]", v[0], v[1])
	}
	return "none"
}

/*
Builder accumulates the vertices and triangles of a new mesh in two phases:
vertices and triangles are inserted first, then Finalize derives the next/prev/twin links.
Twin pairing needs every triangle, so links can not be resolved during insertion.
A Builder is owned by one construction and must not be shared between goroutines.
*/
type Builder struct {
	vertices      []Vertex
	triangles     [][3]int
	lookup        map[SourceKey]int // Scratch dedup table, dropped in Finalize
	requireClosed bool
	finalized     bool
}

func NewBuilder() *Builder {
	return &Builder{
		lookup: make(map[SourceKey]int),
	}
}

// RequireClosed makes Finalize reject half-edges left without a twin
func (b *Builder) RequireClosed(closed bool) *Builder {
	b.requireClosed = closed
	return b
}

func (b *Builder) NumVertices() int  { return len(b.vertices) }
func (b *Builder) NumTriangles() int { return len(b.triangles) }

// FindExisting returns the vertex already created for key
func (b *Builder) FindExisting(key SourceKey) (v int, ok bool) {
	if key.Kind == NoSource {
		return EmptyIndex, false
	}
	v, ok = b.lookup[key]
	if !ok {
		v = EmptyIndex
	}
	return
}

// InsertVertex creates a vertex at pos recorded under key. When key was
// inserted before, the existing vertex is returned and pos is ignored.
// Vertices with a NoSource key are never deduplicated.
func (b *Builder) InsertVertex(pos r3.Vec, key SourceKey) int {
	if b.finalized {
		return EmptyIndex
	}
	if v, ok := b.FindExisting(key); ok {
		return v
	}
	v := len(b.vertices)
	b.vertices = append(b.vertices, Vertex{Position: pos, Source: key})
	if key.Kind != NoSource {
		b.lookup[key] = v
	}
	return v
}

// InsertTriangle records the face (v0,v1,v2), the winding order is kept as given
func (b *Builder) InsertTriangle(v0, v1, v2 int) error {
	if b.finalized {
		return ErrFinalized
	}
	tri := [3]int{v0, v1, v2}
	for _, v := range tri {
		if v < 0 || v >= len(b.vertices) {
			return fmt.Errorf("%w: vertex %d out of range [0,%d)", ErrDegenerateTriangle, v, len(b.vertices))
		}
	}
	if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
		return fmt.Errorf("%w: repeated vertex in %v", ErrDegenerateTriangle, tri)
	}
	b.triangles = append(b.triangles, tri)
	return nil
}

// Finalize builds the half-edge connectivity, it may be called once
func (b *Builder) Finalize() (m *Mesh, err error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true
	b.lookup = nil

	var (
		nf       = len(b.triangles)
		directed = make(map[types.DirectedEdge]int, 3*nf)
	)
	m = &Mesh{
		Vertices: b.vertices,
		Edges:    make([]HalfEdge, 3*nf),
		Faces:    make([]Face, nf),
	}
	for f, tri := range b.triangles {
		base := 3 * f
		m.Faces[f] = Face{Edge: base}
		for i := 0; i < 3; i++ {
			e := base + i
			start, end := tri[i], tri[(i+1)%3]
			m.Edges[e] = HalfEdge{
				Start: start,
				End:   end,
				Next:  base + (i+1)%3,
				Prev:  base + (i+2)%3,
				Twin:  EmptyIndex,
				Face:  f,
			}
			de := types.NewDirectedEdge([2]int{start, end})
			if prior, exists := directed[de]; exists {
				// Three or more triangles on one edge always repeat a direction
				return nil, fmt.Errorf("%w: edge [%d,%d] traversed in the same direction by faces %d and %d",
					ErrNonManifold, start, end, m.Edges[prior].Face, f)
			}
			directed[de] = e
		}
	}

	for e := range m.Edges {
		he := &m.Edges[e]
		if twin, ok := directed[types.NewDirectedEdge([2]int{he.Start, he.End}).Reverse()]; ok {
			he.Twin = twin
		} else if b.requireClosed {
			return nil, fmt.Errorf("%w: edge [%d,%d] of face %d has no opposite half-edge",
				ErrNonManifold, he.Start, he.End, he.Face)
		}
	}
	return m, nil
}

// NewMeshFromTriangles builds a mesh from positions and counter-clockwise triangles
func NewMeshFromTriangles(positions []r3.Vec, tris [][3]int) (m *Mesh, err error) {
	bld := NewBuilder()
	for _, p := range positions {
		bld.InsertVertex(p, SourceKey{})
	}
	for k, tri := range tris {
		if err = bld.InsertTriangle(tri[0], tri[1], tri[2]); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", k, err)
		}
	}
	return bld.Finalize()
}
