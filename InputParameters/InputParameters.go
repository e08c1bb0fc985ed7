package InputParameters

import (
	"fmt"
	"math"
	"io"

	"github.com/ghodss/yaml"
	"github.com/notargets/butterfly/utils"
)

// Parameters obtained from the YAML input file
type SubdivisionParameters struct {
	Title      string  `yaml:"Title"`
	Tension    float64 `yaml:"Tension"`
	Levels     int     `yaml:"Levels"`
	Workers    int     `yaml:"Workers"`
	InputMesh  string  `yaml:"InputMesh"`
	OutputMesh string  `yaml:"OutputMesh"`
	Shape      string  `yaml:"Shape"` // Standard mesh used when InputMesh is empty
}

// NewSubdivisionParameters returns the defaults: one level with the classical tension, serial
func NewSubdivisionParameters() *SubdivisionParameters {
	return &SubdivisionParameters{
		Tension: 1. / 16.,
		Levels:  1,
		Workers: 1,
	}
}

// Parse overlays the fields present in data onto ip
func (ip *SubdivisionParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *SubdivisionParameters) Validate() error {
	if utils.IsNan(ip.Tension) || math.IsInf(ip.Tension, 0) {
		return fmt.Errorf("tension must be finite, have %v", ip.Tension)
	}
	if ip.Levels < 0 {
		return fmt.Errorf("levels must be non-negative, have %d", ip.Levels)
	}
	if ip.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, have %d", ip.Workers)
	}
	if len(ip.InputMesh) == 0 && len(ip.Shape) == 0 {
		return fmt.Errorf("must supply an input mesh or a standard shape")
	}
	if len(ip.InputMesh) != 0 && len(ip.Shape) != 0 {
		return fmt.Errorf("input mesh %q and shape %q are exclusive", ip.InputMesh, ip.Shape)
	}
	return nil
}

func (ip *SubdivisionParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "%8.5f\t\t= Tension\n", ip.Tension)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Levels\n", ip.Levels)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Workers\n", ip.Workers)
	if len(ip.InputMesh) != 0 {
		fmt.Fprintf(w, "[%s]\t= Input Mesh\n", ip.InputMesh)
	} else {
		fmt.Fprintf(w, "[%s]\t= Shape\n", ip.Shape)
	}
	if len(ip.OutputMesh) != 0 {
		fmt.Fprintf(w, "[%s]\t= Output Mesh\n", ip.OutputMesh)
	}
}
