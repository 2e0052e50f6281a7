package views

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"golang.org/x/image/colornames"

	"vehicle-telemetry/models"
)

// Series is one line of a SeriesPanel: Channel values multiplied by Scale
// (1 when zero) against the panel's X channel.
type Series struct {
	Channel string
	Scale   float64
	Color   color.Color
}

// Threshold is a dashed horizontal reference line.
type Threshold struct {
	Value float64
	Label string
}

// SeriesPanel plots one or more channels over time.
type SeriesPanel struct {
	Title      string
	XChannel   string
	YLabel     string
	Series     []Series
	Thresholds []Threshold

	// Optional renders an empty, captioned panel when a series channel is
	// absent instead of failing with a SchemaError.
	Optional bool
}

// Plot implements Panel.
func (sp *SeriesPanel) Plot(t *models.Table) (*plot.Plot, error) {
	var absent []string
	if !t.Has(sp.XChannel) {
		absent = append(absent, sp.XChannel)
	}
	for _, s := range sp.Series {
		if !t.Has(s.Channel) {
			absent = append(absent, s.Channel)
		}
	}

	p := plot.New()
	p.Title.Text = sp.Title
	p.X.Label.Text = sp.XChannel
	p.Y.Label.Text = sp.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if len(absent) > 0 {
		if !sp.Optional {
			return nil, models.MissingColumns(absent...)
		}
		p.Title.Text = fmt.Sprintf("%s (not logged)", sp.Title)
		return p, nil
	}

	xs, _ := t.Column(sp.XChannel)
	for _, s := range sp.Series {
		ys, _ := t.Column(s.Channel)
		pts := points(xs, ys, s.Scale)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", sp.Title, err)
		}
		line.Color = s.Color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.Channel, line)
	}

	if len(sp.Thresholds) > 0 {
		lo, hi, ok := finiteRange(xs)
		if ok {
			for _, th := range sp.Thresholds {
				ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: th.Value}, {X: hi, Y: th.Value}})
				if err != nil {
					return nil, fmt.Errorf("panel %q threshold: %w", sp.Title, err)
				}
				ref.Color = colornames.Dimgray
				ref.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
				p.Add(ref)
				p.Legend.Add(th.Label, ref)
			}
		}
	}

	return p, nil
}

// points pairs x and scaled y, dropping rows where either is missing.
func points(xs, ys []float64, scale float64) plotter.XYs {
	if scale == 0 {
		scale = 1
	}
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		x, y := xs[i], ys[i]*scale
		if models.IsMissing(x) || models.IsMissing(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

// finiteRange returns the smallest and largest finite value in xs.
func finiteRange(xs []float64) (lo, hi float64, ok bool) {
	for _, v := range xs {
		if models.IsMissing(v) || math.IsInf(v, 0) {
			continue
		}
		if !ok || v < lo {
			lo = v
		}
		if !ok || v > hi {
			hi = v
		}
		ok = true
	}
	return lo, hi, ok
}

// SummaryPanel renders the min/max table of every column.
type SummaryPanel struct {
	Title string
}

// Plot implements Panel.
func (sp *SummaryPanel) Plot(t *models.Table) (*plot.Plot, error) {
	stats := models.Summarize(t)

	p := plot.New()
	p.Title.Text = sp.Title
	p.HideAxes()

	n := len(stats) + 1 // plus the column-heading line
	pts := make(plotter.XYs, 0, 3*n)
	labels := make([]string, 0, 3*n)
	add := func(row int, name, lo, hi string) {
		y := float64(n - row)
		pts = append(pts,
			plotter.XY{X: 0, Y: y},
			plotter.XY{X: 0.62, Y: y},
			plotter.XY{X: 0.82, Y: y},
		)
		labels = append(labels, name, lo, hi)
	}

	add(0, "", "Min", "Max")
	for i, s := range stats {
		add(i+1, s.Name, s.FormatMin(), s.FormatMax())
	}

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("summary labels: %w", err)
	}
	size := vg.Points(8)
	if n > 30 {
		size = vg.Points(5)
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].Font.Size = size
	}
	p.Add(lbl)

	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, float64(n+1)
	return p, nil
}
