package InputParameters

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubdivisionParameters_Parse(t *testing.T) {
	fileInput := []byte(`
Title: Refined sphere
Tension: 0.05
Levels: 3
InputMesh: sphere.msh # Gmsh 2.2 or SU2
OutputMesh: sphere_L3.su2
`)
	ip := NewSubdivisionParameters()
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Refined sphere", ip.Title)
	assert.Equal(t, 0.05, ip.Tension)
	assert.Equal(t, 3, ip.Levels)
	assert.Equal(t, 1, ip.Workers, "absent fields keep the default")
	assert.Equal(t, "sphere.msh", ip.InputMesh)
	assert.Equal(t, "sphere_L3.su2", ip.OutputMesh)
	assert.NoError(t, ip.Validate())

	var buf bytes.Buffer
	ip.Print(&buf)
	assert.Contains(t, buf.String(), "\"Refined sphere\"")
	assert.Contains(t, buf.String(), " 0.05000\t\t= Tension")
	assert.Contains(t, buf.String(), "[sphere.msh]\t= Input Mesh")

	assert.Error(t, ip.Parse([]byte("Levels: [1, 2]")))
}

func TestSubdivisionParameters_Validate(t *testing.T) {
	ip := NewSubdivisionParameters()
	assert.Error(t, ip.Validate(), "no input")
	ip.Shape = "octahedron"
	assert.NoError(t, ip.Validate())
	ip.InputMesh = "mesh.msh"
	assert.Error(t, ip.Validate(), "both inputs")
	ip.InputMesh = ""
	ip.Levels = -1
	assert.Error(t, ip.Validate())
	ip.Levels = 2
	ip.Workers = 0
	assert.Error(t, ip.Validate())
	ip.Workers = 1
	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		ip.Tension = w
		assert.Error(t, ip.Validate(), "tension %v", w)
	}
	ip.Tension = -0.5
	assert.NoError(t, ip.Validate(), "any finite tension is accepted")
}
