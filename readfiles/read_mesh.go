package readfiles

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/butterfly/halfedge"
)

// ReadMeshFile reads a triangulated surface based on the file extension
func ReadMeshFile(filename string) (*halfedge.Mesh, error) {
	var read func(io.Reader) (*halfedge.Mesh, error)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".msh":
		read = ReadGmsh22
	case ".su2":
		read = ReadSU2
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// WriteMeshFile writes m in the format given by the file extension
func WriteMeshFile(filename string, m *halfedge.Mesh) (err error) {
	var write func(io.Writer, *halfedge.Mesh) error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".msh":
		write = WriteGmsh22
	case ".su2":
		write = WriteSU2
	default:
		return fmt.Errorf("unsupported mesh format: %s", ext)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return write(file, m)
}
