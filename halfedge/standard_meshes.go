package halfedge

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Standard meshes, all faces counter-clockwise seen from outside

// Tetrahedron returns the regular tetrahedron inscribed in the cube [-1,1]^3
func Tetrahedron() *Mesh {
	return mustMesh([]r3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}, [][3]int{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	})
}

// Octahedron returns the unit octahedron with vertices on the axes
func Octahedron() *Mesh {
	return mustMesh([]r3.Vec{
		{X: 1}, {X: -1}, // 0, 1
		{Y: 1}, {Y: -1}, // 2, 3
		{Z: 1}, {Z: -1}, // 4, 5
	}, [][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4}, // Top
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5}, // Bottom
	})
}

// Icosahedron returns the regular icosahedron with vertices at (0,±1,±φ) and cyclic permutations
func Icosahedron() *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	return mustMesh([]r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}, [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	})
}

// TwoTriangles returns the open unit square in the z=0 plane split along its diagonal
func TwoTriangles() *Mesh {
	return mustMesh([]r3.Vec{
		{}, {X: 1}, {X: 1, Y: 1}, {Y: 1},
	}, [][3]int{
		{0, 1, 2},
		{0, 2, 3},
	})
}

var standardMeshes = map[string]func() *Mesh{
	"tetrahedron": Tetrahedron,
	"octahedron":  Octahedron,
	"icosahedron": Icosahedron,
}

// StandardMesh returns a closed standard mesh by name, TwoTriangles is not listed since it can not be refined
func StandardMesh(name string) (*Mesh, error) {
	gen, ok := standardMeshes[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q, have %v", name, StandardMeshNames())
	}
	return gen(), nil
}

func StandardMeshNames() (names []string) {
	for name := range standardMeshes {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func mustMesh(positions []r3.Vec, tris [][3]int) *Mesh {
	m, err := NewMeshFromTriangles(positions, tris)
	if err != nil {
		panic(err)
	}
	return m
}
