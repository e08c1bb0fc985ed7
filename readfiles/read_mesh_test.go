package readfiles

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/butterfly/halfedge"
	"github.com/notargets/butterfly/subdivision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tetGmsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
$PhysicalNames
1
2 1 "surface"
$EndPhysicalNames
$Nodes
4
10 1 1 1
20 1 -1 -1
30 -1 1 -1
40 -1 -1 1
$EndNodes
$Elements
6
1 15 2 0 10 10
2 1 2 0 1 10 20
3 2 2 0 1 10 20 30
4 2 2 0 1 10 40 20
5 2 2 0 1 10 30 40
6 2 2 0 1 20 40 30
$EndElements
`

const tetSU2 = `% Tetrahedron surface
NDIME= 3
NELEM= 4
5 0 1 2 0
5 0 3 1 1
5 0 2 3 2
5 1 3 2 3
NPOIN= 4
1 1 1 0
1 -1 -1 1
-1 1 -1 2
-1 -1 1 3
NMARK= 0
`

func assertSameMesh(t *testing.T, expected, actual *halfedge.Mesh) {
	t.Helper()
	require.Equal(t, expected.NumVertices(), actual.NumVertices())
	require.Equal(t, expected.NumFaces(), actual.NumFaces())
	for v := range expected.Vertices {
		assert.Equal(t, expected.Position(v), actual.Position(v), "vertex %d", v)
	}
	for f := range expected.Faces {
		assert.Equal(t, expected.FaceVertices(f), actual.FaceVertices(f), "face %d", f)
	}
}

func TestReadGmsh22(t *testing.T) {
	m, err := ReadGmsh22(strings.NewReader(tetGmsh))
	require.NoError(t, err)
	require.NoError(t, halfedge.CheckInvariants(m))
	// Points and lines are skipped, node ids are remapped to array indices
	assertSameMesh(t, halfedge.Tetrahedron(), m)
	assert.True(t, m.IsClosed())
}

func TestReadGmsh22_Errors(t *testing.T) {
	cases := map[string]string{
		"binary":       "$MeshFormat\n2.2 1 8\n$EndMeshFormat\n",
		"version":      "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n",
		"no nodes":     "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n",
		"truncated":    "$Nodes\n3\n1 0 0 0\n",
		"duplicate id": "$Nodes\n2\n1 0 0 0\n1 1 0 0\n$EndNodes\n",
		"unknown node": "$Nodes\n3\n1 0 0 0\n2 1 0 0\n3 0 1 0\n$EndNodes\n$Elements\n1\n1 2 0 1 2 4\n$EndElements\n",
		"bad coord":    "$Nodes\n1\n1 0 x 0\n$EndNodes\n",
		"nan coord":    "$Nodes\n1\n1 0 NaN 0\n$EndNodes\n",
		"bad type":     "$Nodes\n3\n1 0 0 0\n2 1 0 0\n3 0 1 0\n$EndNodes\n$Elements\n1\n1 x 0 1 2 3\n$EndElements\n",
		"bad tags":     "$Nodes\n3\n1 0 0 0\n2 1 0 0\n3 0 1 0\n$EndNodes\n$Elements\n1\n1 2 two 0 1 2 3\n$EndElements\n",
		"bad node id":  "$Nodes\n3\n1 0 0 0\n2 1 0 0\n3 0 1 0\n$EndNodes\n$Elements\n1\n1 2 0 1 2 3a\n$EndElements\n",
	}
	for name, input := range cases {
		_, err := ReadGmsh22(strings.NewReader(input))
		assert.Error(t, err, name)
	}
}

func TestReadSU2(t *testing.T) {
	m, err := ReadSU2(strings.NewReader(tetSU2))
	require.NoError(t, err)
	assertSameMesh(t, halfedge.Tetrahedron(), m)

	// A planar mesh gets z = 0
	planar := "NDIME= 2\nNELEM= 2\n5 0 1 2 0\n5 0 2 3 1\nNPOIN= 4\n0 0\n1 0\n1 1\n0 1\nNMARK= 1\nMARKER_TAG= wall\nMARKER_ELEMS= 1\n3 0 1\n"
	m, err = ReadSU2(strings.NewReader(planar))
	require.NoError(t, err)
	assertSameMesh(t, halfedge.TwoTriangles(), m)
	assert.False(t, m.IsClosed())
}

func TestReadSU2_Errors(t *testing.T) {
	cases := map[string]string{
		"dimension":   "NDIME= 4\n",
		"quad":        "NDIME= 3\nNELEM= 1\n9 0 1 2 3 0\n",
		"no dim":      "NPOIN= 1\n0 0 0\n",
		"no points":   "NDIME= 3\nNELEM= 0\n",
		"short point": "NDIME= 3\nNPOIN= 1\n0 0\n",
		"garbage":     "NDIME= 3\nhello\n",
		"nan point":   "NDIME= 3\nNELEM= 0\nNPOIN= 1\nnan 0 0\n",
	}
	for name, input := range cases {
		_, err := ReadSU2(strings.NewReader(input))
		assert.Error(t, err, name)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	// Irrational coordinates check the float formatting
	src, err := subdivision.Subdivide(halfedge.Icosahedron(), subdivision.DefaultTension)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, name := range []string{"ico.msh", "ico.su2"} {
		t.Run(name, func(t *testing.T) {
			filename := filepath.Join(dir, name)
			require.NoError(t, WriteMeshFile(filename, src))
			m, err := ReadMeshFile(filename)
			require.NoError(t, err)
			assertSameMesh(t, src, m)

			// The read mesh refines like the one it was written from
			a, err := subdivision.Subdivide(src, subdivision.DefaultTension)
			require.NoError(t, err)
			b, err := subdivision.Subdivide(m, subdivision.DefaultTension)
			require.NoError(t, err)
			assertSameMesh(t, a, b)
		})
	}
}

func TestWriteGmsh22_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGmsh22(&buf, halfedge.TwoTriangles()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n"))
	assert.Contains(t, out, "$Nodes\n4\n1 0 0 0\n")
	assert.Contains(t, out, "$Elements\n2\n1 2 1 0 1 2 3\n2 2 1 0 1 3 4\n$EndElements\n")
}

func TestMeshFile_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadMeshFile(filepath.Join(dir, "mesh.obj"))
	assert.Error(t, err)
	_, err = ReadMeshFile(filepath.Join(dir, "missing.msh"))
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, WriteMeshFile(filepath.Join(dir, "mesh.stl"), halfedge.Tetrahedron()))

	// Parse errors carry the file name
	bad := filepath.Join(dir, "bad.su2")
	require.NoError(t, os.WriteFile(bad, []byte("NDIME= 7\n"), 0644))
	_, err = ReadMeshFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	// Non-manifold input is rejected by the builder
	fan := filepath.Join(dir, "fan.msh")
	require.NoError(t, os.WriteFile(fan, []byte("$Nodes\n5\n1 0 0 0\n2 1 0 0\n3 0 1 0\n4 0 -1 0\n5 0 0 1\n$EndNodes\n"+
		"$Elements\n3\n1 2 0 1 2 3\n2 2 0 1 2 4\n3 2 0 2 1 5\n$EndElements\n"), 0644))
	_, err = ReadMeshFile(fan)
	assert.ErrorIs(t, err, halfedge.ErrNonManifold)
}
