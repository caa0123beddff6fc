package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// WriteOFF writes a mesh in the Object File Format.
func WriteOFF(m *mesh.Mesh, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "OFF")
	fmt.Fprintf(bw, "%d %d 0\n", len(m.Points), len(m.Cells))
	for _, p := range m.Points {
		fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, c := range m.Cells {
		fmt.Fprintf(bw, "3 %d %d %d\n", c[0], c[1], c[2])
	}
	return bw.Flush()
}

// ExportOFF writes a mesh to an OFF file at path.
func ExportOFF(m *mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteOFF(m, f)
}

// ReadOFF decodes an OFF mesh from r. Only triangular faces are accepted.
// Comment lines (#) and blank lines are skipped.
func ReadOFF(r io.Reader) (*mesh.Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	tok, err := nextLine(sc)
	if err != nil {
		return nil, err
	}
	if len(tok) != 1 || tok[0] != "OFF" {
		return nil, fmt.Errorf("not an OFF file (header %q)", strings.Join(tok, " "))
	}

	tok, err = nextLine(sc)
	if err != nil {
		return nil, err
	}
	if len(tok) < 2 {
		return nil, fmt.Errorf("malformed count line %q", strings.Join(tok, " "))
	}
	nv, err1 := strconv.Atoi(tok[0])
	nf, err2 := strconv.Atoi(tok[1])
	if err1 != nil || err2 != nil || nv < 0 || nf < 0 {
		return nil, fmt.Errorf("malformed count line %q", strings.Join(tok, " "))
	}

	points := make([]mesh.Vec, nv)
	for i := 0; i < nv; i++ {
		tok, err = nextLine(sc)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if len(tok) < 2 {
			return nil, fmt.Errorf("vertex %d: want 2 or 3 coordinates, got %d", i, len(tok))
		}
		coords := make([]float64, 0, 3)
		for _, t := range tok[:min(3, len(tok))] {
			v, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			coords = append(coords, v)
		}
		points[i] = mesh.Vec{X: coords[0], Y: coords[1]}
		if len(coords) == 3 {
			points[i].Z = coords[2]
		}
	}

	cells := make([][3]int, nf)
	for i := 0; i < nf; i++ {
		tok, err = nextLine(sc)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		if len(tok) < 4 || tok[0] != "3" {
			return nil, fmt.Errorf("face %d: only triangles are supported", i)
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.Atoi(tok[j+1])
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			cells[i][j] = v
		}
	}

	return mesh.New(points, cells)
}

// ImportOFF reads a mesh from an OFF file at path.
func ImportOFF(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadOFF(f)
}

// nextLine returns the tokens of the next non-blank, non-comment line.
func nextLine(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
