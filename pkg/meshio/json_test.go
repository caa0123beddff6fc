package meshio

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

func planarMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(
		[]mesh.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.7, Y: 0.6}},
		[][3]int{{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}},
	)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func surfaceMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(
		[]mesh.Vec{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0.5}, {X: 0, Y: 1, Z: 0.25}},
		[][3]int{{0, 1, 2}},
	)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func sameMesh(t *testing.T, a, b *mesh.Mesh) {
	t.Helper()
	if len(a.Points) != len(b.Points) || len(a.Cells) != len(b.Cells) {
		t.Fatalf("sizes differ: (%d, %d) vs (%d, %d)",
			len(a.Points), len(a.Cells), len(b.Points), len(b.Cells))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Errorf("point %d: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Errorf("cell %d: %v vs %v", i, a.Cells[i], b.Cells[i])
		}
	}
}

func TestJSONRoundTripPlanar(t *testing.T) {
	m := planarMesh(t)
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	// Planar meshes serialize with two coordinates per point.
	var raw jsonMesh
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(raw.Points[0]) != 2 {
		t.Errorf("planar point has %d coordinates, want 2", len(raw.Points[0]))
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	sameMesh(t, m, got)
}

func TestJSONRoundTripSurface(t *testing.T) {
	m := surfaceMesh(t)
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	sameMesh(t, m, got)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "not json at all"},
		{"bad coordinate count", `{"points": [[1, 2, 3, 4]], "cells": []}`},
		{"bad cell index", `{"points": [[0, 0], [1, 0], [0, 1]], "cells": [[0, 1, 5]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadJSON succeeded, want error")
			}
		})
	}
}
