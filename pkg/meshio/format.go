package meshio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// Import reads a mesh, picking the format from the file extension
// (.json or .off).
func Import(path string) (*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ImportJSON(path)
	case ".off":
		return ImportOFF(path)
	}
	return nil, fmt.Errorf("unsupported mesh format %q (want .json or .off)", filepath.Ext(path))
}

// Export writes a mesh, picking the format from the file extension
// (.json, .off or .vtk).
func Export(m *mesh.Mesh, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ExportJSON(m, path)
	case ".off":
		return ExportOFF(m, path)
	case ".vtk":
		return ExportVTK(m, path)
	}
	return fmt.Errorf("unsupported mesh format %q (want .json, .off or .vtk)", filepath.Ext(path))
}
