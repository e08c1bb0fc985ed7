package halfedge

import "fmt"

// CheckInvariants validates the half-edge structure of m and returns the first
// violation found, wrapped around ErrInvariantViolation.
// Boundary half-edges (Twin == EmptyIndex) are allowed.
func CheckInvariants(m *Mesh) error {
	var (
		nv, ne, nf = len(m.Vertices), len(m.Edges), len(m.Faces)
	)
	violation := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
	}
	inRange := func(i, n int) bool { return i >= 0 && i < n }

	for e, he := range m.Edges {
		if !inRange(he.Start, nv) || !inRange(he.End, nv) {
			return violation("half-edge %d: vertex [%d,%d] out of range", e, he.Start, he.End)
		}
		if he.Start == he.End {
			return violation("half-edge %d: starts and ends at vertex %d", e, he.Start)
		}
		if !inRange(he.Next, ne) || !inRange(he.Prev, ne) {
			return violation("half-edge %d: next/prev %d/%d out of range", e, he.Next, he.Prev)
		}
		if !inRange(he.Face, nf) {
			return violation("half-edge %d: face %d out of range", e, he.Face)
		}
		if m.Edges[he.Next].Prev != e || m.Edges[he.Prev].Next != e {
			return violation("half-edge %d: next and prev are not inverse", e)
		}
		if m.Edges[he.Next].Start != he.End {
			return violation("half-edge %d: ends at %d but next starts at %d", e, he.End, m.Edges[he.Next].Start)
		}
		if m.Edges[he.Next].Face != he.Face {
			return violation("half-edge %d: next belongs to face %d, not %d", e, m.Edges[he.Next].Face, he.Face)
		}
		if he.Twin == EmptyIndex {
			continue
		}
		if !inRange(he.Twin, ne) {
			return violation("half-edge %d: twin %d out of range", e, he.Twin)
		}
		twin := m.Edges[he.Twin]
		if twin.Twin != e {
			return violation("half-edge %d: twin %d is not mutual (points to %d)", e, he.Twin, twin.Twin)
		}
		if twin.Start != he.End || twin.End != he.Start {
			return violation("half-edge %d: twin %d runs [%d,%d], expected [%d,%d]",
				e, he.Twin, twin.Start, twin.End, he.End, he.Start)
		}
	}

	for f, face := range m.Faces {
		if !inRange(face.Edge, ne) {
			return violation("face %d: edge %d out of range", f, face.Edge)
		}
		if m.Edges[face.Edge].Face != f {
			return violation("face %d: representative edge %d belongs to face %d", f, face.Edge, m.Edges[face.Edge].Face)
		}
		e, count := face.Edge, 0
		for {
			e = m.Edges[e].Next
			count++
			if e == face.Edge || count > 3 {
				break
			}
		}
		if count != 3 {
			return violation("face %d: loop is not a triangle", f)
		}
	}
	return nil
}
