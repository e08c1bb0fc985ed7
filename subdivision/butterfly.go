package subdivision

import (
	"fmt"

	"github.com/notargets/butterfly/halfedge"
	"github.com/notargets/butterfly/utils"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Stats counts the work done by one refinement pass
type Stats struct {
	Faces                 int // Source faces visited
	VertexRuleEvaluations int
	EdgeRuleEvaluations   int
	VertexLookupHits      int // Corners found already computed by an earlier face
	EdgeLookupHits        int
}

// Subdivide applies one pass of the modified Butterfly scheme with tension w to src
// and returns the refined mesh. src is not modified.
func Subdivide(src *halfedge.Mesh, w float64, opts ...Option) (*halfedge.Mesh, error) {
	dst, _, err := SubdivideWithStats(src, w, opts...)
	return dst, err
}

/*
SubdivideWithStats splits every face of src into four:

	        V2
	       /  \
	     m2----m1
	     / \  / \
	   V0---m0---V1

Corners keep their positions (VertexRule), one vertex is inserted per edge (EdgeRule).
Vertices shared between faces are looked up by source key and computed exactly once.
Any failure aborts the pass, no partial mesh is returned.
*/
func SubdivideWithStats(src *halfedge.Mesh, w float64, opts ...Option) (dst *halfedge.Mesh, stats Stats, err error) {
	var (
		cfg           = newConfig(opts...)
		bld           = halfedge.NewBuilder().RequireClosed(src.IsClosed())
		edgePositions []r3.Vec // Indexed by canonical half-edge, set when the rules were evaluated up front
	)
	if cfg.workers > 1 {
		var evaluated int
		if edgePositions, evaluated, err = evaluateEdgesParallel(src, w, cfg.workers); err != nil {
			return nil, stats, err
		}
		stats.EdgeRuleEvaluations = evaluated
	}

	vertexOf := func(v int) int {
		key := halfedge.VertexKey(v)
		if dv, ok := bld.FindExisting(key); ok {
			stats.VertexLookupHits++
			return dv
		}
		stats.VertexRuleEvaluations++
		return bld.InsertVertex(VertexRule(src, v), key)
	}
	edgeOf := func(e int) (dv int, err error) {
		var (
			ok  bool
			pos r3.Vec
			key = halfedge.EdgeKey(src.Start(e), src.End(e))
		)
		if dv, ok = bld.FindExisting(key); ok {
			stats.EdgeLookupHits++
			return
		}
		c := canonicalEdge(src, e)
		if edgePositions != nil {
			pos = edgePositions[c]
		} else {
			if pos, err = EdgeRule(src, c, w); err != nil {
				return halfedge.EmptyIndex, err
			}
			stats.EdgeRuleEvaluations++
		}
		dv = bld.InsertVertex(pos, key)
		return
	}

	for f := range src.Faces {
		var (
			e0         = src.Faces[f].Edge
			e1         = src.Next(e0)
			e2         = src.Prev(e0)
			v0         = vertexOf(src.Start(e0))
			v1         = vertexOf(src.End(e0))
			v2         = vertexOf(src.End(e1))
			m0, m1, m2 int
		)
		if m0, err = edgeOf(e0); err != nil {
			return nil, stats, fmt.Errorf("face %d: %w", f, err)
		}
		if m1, err = edgeOf(e1); err != nil {
			return nil, stats, fmt.Errorf("face %d: %w", f, err)
		}
		if m2, err = edgeOf(e2); err != nil {
			return nil, stats, fmt.Errorf("face %d: %w", f, err)
		}
		for _, tri := range [4][3]int{
			{v0, m0, m2}, // Corner at V0
			{m0, v1, m1}, // Corner at V1
			{m2, m1, v2}, // Corner at V2
			{m0, m1, m2}, // Center
		} {
			if err = bld.InsertTriangle(tri[0], tri[1], tri[2]); err != nil {
				return nil, stats, fmt.Errorf("face %d: %w", f, err)
			}
		}
		stats.Faces++
	}

	if dst, err = bld.Finalize(); err != nil {
		return nil, stats, fmt.Errorf("finalize refined mesh: %w", err)
	}
	if err = halfedge.CheckInvariants(dst); err != nil {
		return nil, stats, fmt.Errorf("refined mesh rejected: %w", err)
	}
	cfg.logger.Debug("subdivision pass",
		"faces", stats.Faces,
		"vertexRules", stats.VertexRuleEvaluations,
		"edgeRules", stats.EdgeRuleEvaluations,
		"vertexHits", stats.VertexLookupHits,
		"edgeHits", stats.EdgeLookupHits,
		"workers", cfg.workers)
	return dst, stats, nil
}

// Refine applies levels passes of Subdivide, levels == 0 returns src
func Refine(src *halfedge.Mesh, w float64, levels int, opts ...Option) (m *halfedge.Mesh, err error) {
	if levels < 0 {
		return nil, fmt.Errorf("%w: have %d", ErrBadLevels, levels)
	}
	cfg := newConfig(opts...)
	m = src
	for level := 1; level <= levels; level++ {
		if m, err = Subdivide(m, w, opts...); err != nil {
			return nil, fmt.Errorf("level %d: %w", level, err)
		}
		cfg.logger.Info("refined mesh",
			"level", level, "vertices", m.NumVertices(), "faces", m.NumFaces())
	}
	return
}

// canonicalEdge picks one half-edge of a twin pair so both sides evaluate the rule identically
func canonicalEdge(m *halfedge.Mesh, e int) int {
	if twin := m.Twin(e); twin != halfedge.EmptyIndex && twin < e {
		return twin
	}
	return e
}

// evaluateEdgesParallel runs the edge rule once per undirected edge, the source mesh is only read.
// Each worker writes a disjoint set of slots in positions.
func evaluateEdgesParallel(src *halfedge.Mesh, w float64, workers int) (positions []r3.Vec, evaluated int, err error) {
	var (
		canon []int
		g     errgroup.Group
	)
	for e := range src.Edges {
		if canonicalEdge(src, e) == e {
			canon = append(canon, e)
		}
	}
	positions = make([]r3.Vec, src.NumEdges())
	if len(canon) == 0 {
		return
	}
	if workers > len(canon) {
		workers = len(canon)
	}
	pm := utils.NewPartitionMap(workers, len(canon))
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		kMin, kMax := pm.GetBucketRange(bn)
		g.Go(func() error {
			for _, e := range canon[kMin:kMax] {
				pos, err := EdgeRule(src, e, w)
				if err != nil {
					return err
				}
				positions[e] = pos
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, 0, err
	}
	return positions, len(canon), nil
}
