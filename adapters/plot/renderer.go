package plot

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"occustats/internal/charts"
	"occustats/internal/errors"

	"golang.org/x/sync/errgroup"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Renderer draws chart specs with gonum/plot
type Renderer struct {
	Width     vg.Length
	Height    vg.Length
	Format    string
	MinRadius vg.Length
	MaxRadius vg.Length
}

// NewRenderer returns an SVG renderer sized for the dashboard grid
func NewRenderer() *Renderer {
	return &Renderer{
		Width:     7 * vg.Inch,
		Height:    5 * vg.Inch,
		Format:    "svg",
		MinRadius: vg.Points(4),
		MaxRadius: vg.Points(22),
	}
}

// ContentType is the MIME type of the rendered bytes
func (r *Renderer) ContentType() string {
	switch r.Format {
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	default:
		return "image/svg+xml"
	}
}

// Render draws one spec
func (r *Renderer) Render(spec charts.Spec) ([]byte, error) {
	p := gplot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.X.Column
	p.Y.Label.Text = spec.Y.Column
	p.Add(plotter.NewGrid())

	var err error
	switch spec.Kind {
	case charts.KindScatter:
		err = r.drawScatter(p, spec)
	case charts.KindBar:
		err = r.drawBars(p, spec)
	default:
		err = fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, errors.RenderFailed(spec.ID, err)
	}

	if spec.X.Range != nil {
		p.X.Min, p.X.Max = spec.X.Range.Min, spec.X.Range.Max
	}
	if spec.Y.Range != nil {
		p.Y.Min, p.Y.Max = spec.Y.Range.Min, spec.Y.Range.Max
	}

	w, err := p.WriterTo(r.Width, r.Height, r.Format)
	if err != nil {
		return nil, errors.RenderFailed(spec.ID, err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, errors.RenderFailed(spec.ID, err)
	}
	return buf.Bytes(), nil
}

// drawScatter adds one bubble per occupation so each gets its own color and legend entry
func (r *Renderer) drawScatter(p *gplot.Plot, spec charts.Spec) error {
	sizes := make([]float64, len(spec.Points))
	for i, pt := range spec.Points {
		sizes[i] = pt.Size
	}
	radius := r.radiusScale(sizes)

	p.Legend.Top = true
	for i, pt := range spec.Points {
		s, err := plotter.NewScatter(plotter.XYs{{X: pt.X, Y: pt.Y}})
		if err != nil {
			return fmt.Errorf("point %q: %w", pt.Label, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = radius(pt.Size)
		p.Add(s)
		p.Legend.Add(pt.Label, s)
	}
	return nil
}

func (r *Renderer) drawBars(p *gplot.Plot, spec charts.Spec) error {
	values := make(plotter.Values, len(spec.Points))
	labels := make([]string, len(spec.Points))
	for i, pt := range spec.Points {
		values[i] = pt.Y
		labels[i] = pt.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return nil
}

// radiusScale maps bubble sizes to radii by square root, so bubble area tracks the value
func (r *Renderer) radiusScale(sizes []float64) func(float64) vg.Length {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range sizes {
		if math.IsNaN(s) {
			continue
		}
		v := math.Sqrt(math.Max(s, 0))
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return func(size float64) vg.Length {
		if math.IsNaN(size) || math.IsInf(lo, 0) {
			return r.MinRadius
		}
		if hi == lo {
			return (r.MinRadius + r.MaxRadius) / 2
		}
		t := (math.Sqrt(math.Max(size, 0)) - lo) / (hi - lo)
		return r.MinRadius + vg.Length(t)*(r.MaxRadius-r.MinRadius)
	}
}

// RenderAll renders every spec concurrently and returns the images keyed by chart id
func (r *Renderer) RenderAll(ctx context.Context, specs []charts.Spec) (map[string][]byte, error) {
	var mu sync.Mutex
	out := make(map[string][]byte, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, spec := range specs {
		spec := spec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := r.Render(spec)
			if err != nil {
				return err
			}
			mu.Lock()
			out[spec.ID] = img
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
