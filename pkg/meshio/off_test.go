package meshio

import (
	"bytes"
	"strings"
	"testing"
)

func TestOFFRoundTrip(t *testing.T) {
	m := surfaceMesh(t)
	var buf bytes.Buffer
	if err := WriteOFF(m, &buf); err != nil {
		t.Fatalf("WriteOFF: %v", err)
	}
	got, err := ReadOFF(&buf)
	if err != nil {
		t.Fatalf("ReadOFF: %v", err)
	}
	sameMesh(t, m, got)
}

func TestReadOFFSkipsCommentsAndBlanks(t *testing.T) {
	in := `OFF
# a comment

3 1 0
0 0 0
# vertex two
1 0 0
0 1 0
3 0 1 2
`
	m, err := ReadOFF(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadOFF: %v", err)
	}
	if m.NumPoints() != 3 || m.NumCells() != 1 {
		t.Errorf("got %d points, %d cells", m.NumPoints(), m.NumCells())
	}
}

func TestReadOFFTwoCoordinateVertices(t *testing.T) {
	in := "OFF\n3 1 0\n0 0\n1 0\n0 1\n3 0 1 2\n"
	m, err := ReadOFF(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadOFF: %v", err)
	}
	if m.Points[1].Z != 0 {
		t.Errorf("Z = %g, want 0", m.Points[1].Z)
	}
}

func TestReadOFFErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong header", "PLY\n3 1 0\n"},
		{"bad counts", "OFF\nx y 0\n"},
		{"truncated vertices", "OFF\n3 1 0\n0 0 0\n"},
		{"quad face", "OFF\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n"},
		{"bad vertex index", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadOFF(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadOFF succeeded, want error")
			}
		})
	}
}
