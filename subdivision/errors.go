package subdivision

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNeighborhood is matched by every NeighborhoodError.
	ErrMalformedNeighborhood = errors.New("subdivision: malformed edge neighborhood")

	// ErrBadLevels is returned by Refine for a negative level count.
	ErrBadLevels = errors.New("subdivision: number of levels must be >= 0")
)

// NeighborhoodError reports an edge whose 8 point stencil can not be resolved
// because a link along the path to stencil point Point is absent.
type NeighborhoodError struct {
	Edge  int    // Half-edge the rule was evaluated on
	Point int    // Stencil point index, 0-7
	Link  string // Missing link
	At    int    // Half-edge whose link is missing
}

func (ne *NeighborhoodError) Error() string {
	return fmt.Sprintf("subdivision: edge %d: stencil point P%d unreachable, half-edge %d has no %s",
		ne.Edge, ne.Point, ne.At, ne.Link)
}

func (ne *NeighborhoodError) Unwrap() error { return ErrMalformedNeighborhood }
