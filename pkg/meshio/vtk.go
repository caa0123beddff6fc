package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// WriteVTK writes a mesh as legacy ASCII VTK PolyData with per-cell
// radius-ratio quality attached, so step snapshots can be colored by
// quality in standard viewers.
func WriteVTK(m *mesh.Mesh, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# vtk DataFile Version 3.0")
	fmt.Fprintln(bw, "optimesh snapshot")
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET POLYDATA")

	fmt.Fprintf(bw, "POINTS %d double\n", len(m.Points))
	for _, p := range m.Points {
		fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z)
	}

	fmt.Fprintf(bw, "POLYGONS %d %d\n", len(m.Cells), 4*len(m.Cells))
	for _, c := range m.Cells {
		fmt.Fprintf(bw, "3 %d %d %d\n", c[0], c[1], c[2])
	}

	fmt.Fprintf(bw, "CELL_DATA %d\n", len(m.Cells))
	fmt.Fprintln(bw, "SCALARS quality double 1")
	fmt.Fprintln(bw, "LOOKUP_TABLE default")
	for ci := range m.Cells {
		fmt.Fprintf(bw, "%g\n", m.CellQuality(ci))
	}
	return bw.Flush()
}

// ExportVTK writes a mesh to a VTK file at path.
func ExportVTK(m *mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteVTK(m, f)
}
