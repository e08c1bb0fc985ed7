package subdivision

import (
	"github.com/notargets/butterfly/halfedge"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTension is the classical tension weight of the Butterfly scheme
const DefaultTension = 1. / 16.

type link uint8

const (
	linkNext link = iota
	linkPrev
	linkTwin
)

func (l link) String() string {
	return [...]string{"next", "prev", "twin"}[l]
}

/*
Paths from the subdivided half-edge e to the 8 stencil points:

	P0 = e.start                    P1 = e.end                      (weight 1/2)
	P2 = e.next.end                 P3 = e.twin.next.end            (weight 2w)
	P4 = e.next.twin.prev.start     P5 = e.prev.twin.prev.start     (weight -w)
	P6 = e.twin.prev.twin.prev.start
	P7 = e.twin.next.twin.prev.start
*/
var stencilPaths = [8]struct {
	links []link
	end   bool // Take the end vertex of the final half-edge instead of the start
}{
	{nil, false},
	{nil, true},
	{[]link{linkNext}, true},
	{[]link{linkTwin, linkNext}, true},
	{[]link{linkNext, linkTwin, linkPrev}, false},
	{[]link{linkPrev, linkTwin, linkPrev}, false},
	{[]link{linkTwin, linkPrev, linkTwin, linkPrev}, false},
	{[]link{linkTwin, linkNext, linkTwin, linkPrev}, false},
}

// Weights returns the stencil weights matching the points of EdgeStencil, they sum to 1 for any w
func Weights(w float64) [8]float64 {
	return [8]float64{0.5, 0.5, 2 * w, 2 * w, -w, -w, -w, -w}
}

// VertexRule returns the position of the refined vertex for source vertex v.
// The scheme interpolates, so original vertices are kept verbatim.
func VertexRule(m *halfedge.Mesh, v int) r3.Vec {
	return m.Position(v)
}

// EdgeStencil collects the vertex indices P0..P7 around half-edge e
func EdgeStencil(m *halfedge.Mesh, e int) (stencil [8]int, err error) {
	for i, path := range stencilPaths {
		he := e
		for _, l := range path.links {
			var nxt int
			switch l {
			case linkNext:
				nxt = m.Next(he)
			case linkPrev:
				nxt = m.Prev(he)
			case linkTwin:
				nxt = m.Twin(he)
			}
			if nxt == halfedge.EmptyIndex {
				err = &NeighborhoodError{Edge: e, Point: i, Link: l.String(), At: he}
				return
			}
			he = nxt
		}
		if path.end {
			stencil[i] = m.End(he)
		} else {
			stencil[i] = m.Start(he)
		}
	}
	return
}

// EdgeRule returns the position of the vertex inserted on the edge of half-edge e with tension w.
// Evaluating on e or on its twin gives the same point up to rounding.
func EdgeRule(m *halfedge.Mesh, e int, w float64) (pos r3.Vec, err error) {
	var (
		stencil [8]int
		weights = Weights(w)
	)
	if stencil, err = EdgeStencil(m, e); err != nil {
		return
	}
	for i, v := range stencil {
		pos = r3.Add(pos, r3.Scale(weights[i], m.Position(v)))
	}
	return
}
