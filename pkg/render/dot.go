package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// ToDOT converts a mesh's edge connectivity to Graphviz DOT with every
// vertex pinned to its mesh coordinates, so the neato engine reproduces
// the mesh geometry instead of inventing a layout. Boundary vertices are
// drawn filled.
func ToDOT(m *mesh.Mesh) string {
	var buf bytes.Buffer
	buf.WriteString("graph mesh {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  node [shape=point, width=0.06];\n")
	buf.WriteString("  edge [color=gray40];\n")
	buf.WriteString("\n")

	boundary := m.BoundaryPoints()
	for i, p := range m.Points {
		attrs := fmt.Sprintf("pos=\"%g,%g!\"", p.X, p.Y)
		if boundary[i] {
			attrs += ", color=black"
		} else {
			attrs += ", color=gray60"
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	neighbors := m.Neighbors()
	for i, nb := range neighbors {
		for _, j := range nb {
			if i < j {
				fmt.Fprintf(&buf, "  v%d -- v%d;\n", i, j)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
