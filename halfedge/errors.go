package halfedge

import "errors"

// Callers branch on these with errors.Is, context is attached with %w.
var (
	// ErrNonManifold is returned by Finalize when an edge cannot be paired
	// with exactly one opposite half-edge: it is used by more than two
	// triangles, the triangles disagree on orientation, or the edge is left
	// open on a mesh required to be closed.
	ErrNonManifold = errors.New("halfedge: non-manifold result")

	// ErrInvariantViolation is returned by CheckInvariants.
	ErrInvariantViolation = errors.New("halfedge: invariant violation")

	// ErrDegenerateTriangle is returned by InsertTriangle for out of range
	// or repeated corners.
	ErrDegenerateTriangle = errors.New("halfedge: degenerate triangle")

	// ErrFinalized is returned when a Builder is used after Finalize.
	ErrFinalized = errors.New("halfedge: builder already finalized")
)
