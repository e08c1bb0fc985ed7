/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"log/slog"
	"os"

	"github.com/notargets/butterfly/InputParameters"
	"github.com/notargets/butterfly/halfedge"
	"github.com/notargets/butterfly/readfiles"
	"github.com/notargets/butterfly/subdivision"
	"github.com/notargets/butterfly/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubdivideCmd represents the subdivide command
var SubdivideCmd = &cobra.Command{
	Use:   "subdivide",
	Short: "Refine a closed triangle mesh with the Butterfly scheme",
	Long: `
Reads a triangulated surface (Gmsh 2.2 .msh or SU2 .su2) or builds a standard shape,
applies the requested number of Butterfly levels and optionally writes the result.

Values come from, lowest priority first: defaults, the input parameters file (-I),
$HOME/.butterfly.yaml and BUTTERFLY_* environment variables, command line flags.

butterfly subdivide -F surface.msh -l 2 -o refined.su2`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip          *InputParameters.SubdivisionParameters
			profileMode string
			verbose     bool
		)
		if ip, err = resolveParameters(cmd); err != nil {
			return
		}
		profileMode, _ = cmd.Flags().GetString("profile")
		switch profileMode {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		default:
			return fmt.Errorf("unknown profile mode %q, use cpu or mem", profileMode)
		}
		if verbose, _ = cmd.Flags().GetBool("verbose"); verbose {
			subdivision.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: slog.LevelDebug})))
			defer subdivision.SetLogger(nil)
		}
		return RunSubdivide(ip, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(SubdivideCmd)
	def := InputParameters.NewSubdivisionParameters()
	SubdivideCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read in Gmsh 2.2 (.msh) or SU2 (.su2) format")
	SubdivideCmd.Flags().String("shape", "", fmt.Sprintf("Standard mesh to refine instead of a file, one of %v", halfedge.StandardMeshNames()))
	SubdivideCmd.Flags().Float64P("tension", "w", def.Tension, "Tension weight w, 0 gives linear midpoint subdivision")
	SubdivideCmd.Flags().IntP("levels", "l", def.Levels, "Number of subdivision levels")
	SubdivideCmd.Flags().IntP("workers", "j", def.Workers, "Number of goroutines evaluating the edge rule")
	SubdivideCmd.Flags().StringP("output", "o", "", "Output mesh file, format from the extension (.msh or .su2)")
	SubdivideCmd.Flags().StringP("inputParameters", "I", "", "YAML file for input parameters like:\n\t- Tension\n\t- Levels\n\t- InputMesh")
	SubdivideCmd.Flags().String("profile", "", "Write a pprof profile to the current directory: cpu or mem")
	SubdivideCmd.Flags().BoolP("verbose", "v", false, "Log every subdivision pass")
}

// resolveParameters layers the parameter sources, later ones override earlier ones
func resolveParameters(cmd *cobra.Command) (ip *InputParameters.SubdivisionParameters, err error) {
	ip = InputParameters.NewSubdivisionParameters()
	if fileName, _ := cmd.Flags().GetString("inputParameters"); len(fileName) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(fileName); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
	}
	flags := cmd.Flags()
	pick := func(flag, key string) bool {
		return flags.Changed(flag) || viper.IsSet(key)
	}
	getString := func(flag, key string) string {
		if flags.Changed(flag) {
			s, _ := flags.GetString(flag)
			return s
		}
		return viper.GetString(key)
	}
	getInt := func(flag, key string) int {
		if flags.Changed(flag) {
			i, _ := flags.GetInt(flag)
			return i
		}
		return viper.GetInt(key)
	}
	if pick("tension", "tension") {
		if flags.Changed("tension") {
			ip.Tension, _ = flags.GetFloat64("tension")
		} else {
			ip.Tension = viper.GetFloat64("tension")
		}
	}
	if pick("levels", "levels") {
		ip.Levels = getInt("levels", "levels")
	}
	if pick("workers", "workers") {
		ip.Workers = getInt("workers", "workers")
	}
	if pick("output", "output") {
		ip.OutputMesh = getString("output", "output")
	}
	// An input on the command line replaces both inputs from the lower layers
	if flags.Changed("meshFile") || flags.Changed("shape") {
		ip.InputMesh, _ = flags.GetString("meshFile")
		ip.Shape, _ = flags.GetString("shape")
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

// RunSubdivide loads the source mesh, refines it and writes the result when an output is named
func RunSubdivide(ip *InputParameters.SubdivisionParameters, out io.Writer) (err error) {
	var src, m *halfedge.Mesh
	ip.Print(out)
	if len(ip.InputMesh) != 0 {
		log.Printf("Reading mesh from %s", ip.InputMesh)
		if src, err = readfiles.ReadMeshFile(ip.InputMesh); err != nil {
			return fmt.Errorf("failed to read mesh: %w", err)
		}
	} else if src, err = halfedge.StandardMesh(ip.Shape); err != nil {
		return
	}
	fmt.Fprintln(out, "Source")
	src.PrintStatistics(out)

	log.Printf("Subdividing %d levels with tension %g on %d workers", ip.Levels, ip.Tension, ip.Workers)
	if m, err = subdivision.Refine(src, ip.Tension, ip.Levels, subdivision.WithWorkers(ip.Workers)); err != nil {
		return fmt.Errorf("subdivision failed: %w", err)
	}
	log.Printf("Memory usage: %s", utils.GetMemUsage())
	fmt.Fprintln(out, "Refined")
	m.PrintStatistics(out)

	if len(ip.OutputMesh) != 0 {
		log.Printf("Writing mesh to %s", ip.OutputMesh)
		if err = readfiles.WriteMeshFile(ip.OutputMesh, m); err != nil {
			return fmt.Errorf("failed to write mesh: %w", err)
		}
	}
	return
}
