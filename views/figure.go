package views

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"vehicle-telemetry/models"
	"vehicle-telemetry/utils"
)

// Panel builds one tile of a Figure from a normalized table.
type Panel interface {
	Plot(t *models.Table) (*plot.Plot, error)
}

// Size is the rendered image size.
type Size struct {
	Width, Height vg.Length
	DPI           int
}

// SizeFromConfig converts the plot section (inches, dpi).
func SizeFromConfig(cfg utils.PlotConfig) Size {
	return Size{
		Width:  vg.Length(cfg.WidthIn) * vg.Inch,
		Height: vg.Length(cfg.HeightIn) * vg.Inch,
		DPI:    cfg.DPI,
	}
}

// Figure is a grid of panels laid out row-major. A nil panel leaves its
// tile empty.
type Figure struct {
	Title  string
	Rows   int
	Cols   int
	Panels []Panel

	// SharedX gives every panel the union of their X ranges.
	SharedX bool
}

// Build runs every panel against t and returns the plots in grid order.
func (f *Figure) Build(t *models.Table) ([][]*plot.Plot, error) {
	if len(f.Panels) > f.Rows*f.Cols {
		return nil, fmt.Errorf("figure %q: %d panels do not fit a %dx%d grid", f.Title, len(f.Panels), f.Rows, f.Cols)
	}
	grid := make([][]*plot.Plot, f.Rows)
	for r := range grid {
		grid[r] = make([]*plot.Plot, f.Cols)
	}
	for i, pn := range f.Panels {
		if pn == nil {
			continue
		}
		p, err := pn.Plot(t)
		if err != nil {
			return nil, err
		}
		grid[i/f.Cols][i%f.Cols] = p
	}
	if f.SharedX {
		shareX(grid)
	}
	return grid, nil
}

func shareX(grid [][]*plot.Plot) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range grid {
		for _, p := range row {
			if p == nil || math.IsInf(p.X.Min, 0) || math.IsInf(p.X.Max, 0) {
				continue
			}
			lo = math.Min(lo, p.X.Min)
			hi = math.Max(hi, p.X.Max)
		}
	}
	if lo > hi {
		return
	}
	for _, row := range grid {
		for _, p := range row {
			if p != nil {
				p.X.Min, p.X.Max = lo, hi
			}
		}
	}
}

// WritePNG renders the figure for t and encodes it as PNG.
func (f *Figure) WritePNG(w io.Writer, t *models.Table, size Size) error {
	grid, err := f.Build(t)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(size.Width, size.Height), vgimg.UseDPI(size.DPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      f.Rows,
		Cols:      f.Cols,
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	if f.Title != "" {
		tiles.PadTop = vg.Millimeter * 14
		drawTitle(&dc, f.Title)
	}

	for r, row := range grid {
		for c, p := range row {
			if p == nil {
				continue
			}
			p.Draw(tiles.At(dc, c, r))
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawTitle(dc *draw.Canvas, title string) {
	fnt := plot.DefaultFont
	fnt.Size = vg.Points(16)
	sty := text.Style{
		Color:   color.Black,
		Font:    fnt,
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	pt := vg.Point{
		X: (dc.Min.X + dc.Max.X) / 2,
		Y: dc.Max.Y - vg.Millimeter*4,
	}
	dc.FillText(sty, pt, title)
}
