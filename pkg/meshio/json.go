package meshio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

type jsonMesh struct {
	Points [][]float64 `json:"points"`
	Cells  [][3]int    `json:"cells"`
}

// WriteJSON encodes a mesh as JSON and writes it to w. Planar meshes (all
// Z zero) are written with two coordinates per point, surface meshes with
// three. The output round-trips through [ReadJSON].
func WriteJSON(m *mesh.Mesh, w io.Writer) error {
	dim := 2
	for _, p := range m.Points {
		if p.Z != 0 {
			dim = 3
			break
		}
	}

	out := jsonMesh{
		Points: make([][]float64, len(m.Points)),
		Cells:  m.Cells,
	}
	for i, p := range m.Points {
		if dim == 2 {
			out.Points[i] = []float64{p.X, p.Y}
		} else {
			out.Points[i] = []float64{p.X, p.Y, p.Z}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a mesh to a JSON file at path.
func ExportJSON(m *mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}

// ReadJSON decodes a JSON mesh from r. Points may carry two or three
// coordinates; cells are validated against the point range. ReadJSON does
// not close r.
func ReadJSON(r io.Reader) (*mesh.Mesh, error) {
	var data jsonMesh
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	points := make([]mesh.Vec, len(data.Points))
	for i, p := range data.Points {
		switch len(p) {
		case 2:
			points[i] = mesh.Vec{X: p[0], Y: p[1]}
		case 3:
			points[i] = mesh.Vec{X: p[0], Y: p[1], Z: p[2]}
		default:
			return nil, fmt.Errorf("point %d: want 2 or 3 coordinates, got %d", i, len(p))
		}
	}
	return mesh.New(points, data.Cells)
}

// ImportJSON reads a mesh from a JSON file at path.
func ImportJSON(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
