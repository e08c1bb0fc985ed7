package subdivision

import (
	"errors"
	"testing"

	"github.com/notargets/butterfly/halfedge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVecNear(t *testing.T, expected, actual r3.Vec, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t,
		scalar.EqualWithinAbs(expected.X, actual.X, tol) &&
			scalar.EqualWithinAbs(expected.Y, actual.Y, tol) &&
			scalar.EqualWithinAbs(expected.Z, actual.Z, tol),
		append([]interface{}{"expected %v, got %v", expected, actual}, msgAndArgs...)...)
}

// perturbed returns an icosahedron with every vertex moved differently so no stencil is symmetric
func perturbed() *halfedge.Mesh {
	m := halfedge.Icosahedron()
	for i := range m.Vertices {
		fi := float64(i)
		m.Vertices[i].Position = r3.Add(m.Vertices[i].Position,
			r3.Vec{X: 0.01 * fi, Y: -0.02 * fi, Z: 0.003 * fi * fi})
	}
	return m
}

func TestWeights(t *testing.T) {
	for _, w := range []float64{0, DefaultTension, 0.1, -0.3, 1, 12.5} {
		weights := Weights(w)
		assert.True(t, scalar.EqualWithinAbs(1, floats.Sum(weights[:]), 1e-12), "w = %v", w)
		assert.Equal(t, [8]float64{0.5, 0.5, 2 * w, 2 * w, -w, -w, -w, -w}, weights)
	}
}

func TestVertexRule(t *testing.T) {
	m := perturbed()
	for v := range m.Vertices {
		assert.Equal(t, m.Position(v), VertexRule(m, v))
	}
}

func TestEdgeStencil_Octahedron(t *testing.T) {
	m := halfedge.Octahedron()
	// Face 0 is (+x,+y,+z), its first half-edge runs +x -> +y
	e := m.Faces[0].Edge
	require.Equal(t, 0, m.Start(e))
	require.Equal(t, 2, m.End(e))
	stencil, err := EdgeStencil(m, e)
	require.NoError(t, err)
	// Apexes +z and -z, wings -x,-y reached from both sides
	assert.Equal(t, [8]int{0, 2, 4, 5, 1, 3, 1, 3}, stencil)

	for _, w := range []float64{0, DefaultTension, 0.25} {
		pos, err := EdgeRule(m, e, w)
		require.NoError(t, err)
		// 0.5(+x) + 0.5(+y) + 2w(+z) + 2w(-z) - w(-x -y -x -y)
		assertVecNear(t, r3.Vec{X: 0.5 + 2*w, Y: 0.5 + 2*w}, pos, 1e-15)
	}
}

func TestEdgeStencil_DistinctPoints(t *testing.T) {
	m := halfedge.Icosahedron()
	for e := range m.Edges {
		stencil, err := EdgeStencil(m, e)
		require.NoError(t, err)
		seen := make(map[int]bool)
		for _, v := range stencil {
			seen[v] = true
		}
		assert.Len(t, seen, 8, "edge %d: icosahedron butterflies have 8 distinct points", e)
		assert.Equal(t, m.Start(e), stencil[0])
		assert.Equal(t, m.End(e), stencil[1])
	}
}

func TestEdgeRule_AffineCombination(t *testing.T) {
	var (
		m     = perturbed()
		shift = r3.Vec{X: 3, Y: -2, Z: 5}
		w     = 0.11
	)
	moved := perturbed()
	for i := range moved.Vertices {
		moved.Vertices[i].Position = r3.Add(moved.Vertices[i].Position, shift)
	}
	for e := range m.Edges {
		stencil, err := EdgeStencil(m, e)
		require.NoError(t, err)
		var (
			weights  = Weights(w)
			expected r3.Vec
		)
		for i, v := range stencil {
			p := m.Position(v)
			expected.X += weights[i] * p.X
			expected.Y += weights[i] * p.Y
			expected.Z += weights[i] * p.Z
		}
		pos, err := EdgeRule(m, e, w)
		require.NoError(t, err)
		assertVecNear(t, expected, pos, 1e-12, "edge %d", e)

		// Weights sum to one, so translating the mesh translates the new vertex
		movedPos, err := EdgeRule(moved, e, w)
		require.NoError(t, err)
		assertVecNear(t, r3.Add(pos, shift), movedPos, 1e-12, "edge %d", e)
	}
}

func TestEdgeRule_TwinSymmetry(t *testing.T) {
	m := perturbed()
	for e := range m.Edges {
		twin := m.Twin(e)
		for _, w := range []float64{0, DefaultTension, 0.3} {
			a, err := EdgeRule(m, e, w)
			require.NoError(t, err)
			b, err := EdgeRule(m, twin, w)
			require.NoError(t, err)
			assertVecNear(t, a, b, 1e-12, "edge %d, w %v", e, w)
		}
	}
}

func TestEdgeRule_Midpoint(t *testing.T) {
	m := perturbed()
	for e := range m.Edges {
		pos, err := EdgeRule(m, e, 0)
		require.NoError(t, err)
		mid := r3.Scale(0.5, r3.Add(m.Position(m.Start(e)), m.Position(m.End(e))))
		assertVecNear(t, mid, pos, 1e-15)
	}
}

func TestEdgeRule_Boundary(t *testing.T) {
	m := halfedge.TwoTriangles()
	for e := range m.Edges {
		_, err := EdgeRule(m, e, DefaultTension)
		require.Error(t, err, "every stencil of an open two triangle mesh reaches the boundary")
		assert.True(t, errors.Is(err, ErrMalformedNeighborhood))
		var ne *NeighborhoodError
		require.True(t, errors.As(err, &ne))
		assert.Equal(t, e, ne.Edge)
		assert.Equal(t, "twin", ne.Link)
		assert.Contains(t, err.Error(), "has no twin")
	}
}
