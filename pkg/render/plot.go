package render

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// Format constants for [Plot].
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// PlotOptions configures the quality plot.
type PlotOptions struct {
	// Format is "png" or "svg". Defaults to "png".
	Format string

	// Size is the square figure edge in inches. Defaults to 6.
	Size float64

	// Edges draws cell outlines. Defaults to true when unset via NewPlotOptions;
	// the zero value disables them.
	Edges bool

	// Title is drawn above the figure when set.
	Title string
}

// Plot renders the mesh with cells colored by radius-ratio quality on a
// fixed [0, 1] scale and returns the encoded image.
func Plot(m *mesh.Mesh, opts PlotOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	if opts.Format != FormatPNG && opts.Format != FormatSVG {
		return nil, fmt.Errorf("unsupported plot format %q", opts.Format)
	}
	if opts.Size == 0 {
		opts.Size = 6
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.HideAxes()

	cm := moreland.Kindlmann()
	cm.SetMin(0)
	cm.SetMax(1)

	for ci, c := range m.Cells {
		xys := plotter.XYs{
			{X: m.Points[c[0]].X, Y: m.Points[c[0]].Y},
			{X: m.Points[c[1]].X, Y: m.Points[c[1]].Y},
			{X: m.Points[c[2]].X, Y: m.Points[c[2]].Y},
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", ci, err)
		}

		q := m.CellQuality(ci)
		fill, err := cm.At(clamp01(q))
		if err != nil {
			return nil, fmt.Errorf("cell %d quality %v: %w", ci, q, err)
		}
		poly.Color = fill
		if opts.Edges {
			poly.LineStyle.Color = color.Black
			poly.LineStyle.Width = vg.Points(0.5)
		} else {
			poly.LineStyle.Width = 0
		}
		p.Add(poly)
	}

	size := vg.Length(opts.Size) * vg.Inch
	wt, err := p.WriterTo(size, size, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return buf.Bytes(), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
