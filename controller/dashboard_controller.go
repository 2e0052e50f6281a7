package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vehicle-telemetry/models"
	"vehicle-telemetry/services/normalize"
	"vehicle-telemetry/utils"
	"vehicle-telemetry/views"
)

// Kind selects the vehicle variant and therefore the dashboard layout.
type Kind int

const (
	KindEV Kind = iota
	KindCombustion
)

var kindNames = map[Kind]string{
	KindEV:         "ev",
	KindCombustion: "combustion",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKind maps "ev" / "combustion" (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return k, nil
		}
	}
	return KindEV, fmt.Errorf("unknown dashboard kind %q (want ev or combustion)", s)
}

// DashboardController runs one export through the pipeline:
//
//	raw CSV ──► normalize ──► models.Table ──► views.Figure ──► PNG
type DashboardController struct {
	opts normalize.Options
	plot utils.PlotConfig
	size views.Size
}

// NewDashboardController builds a controller from the loaded config.
func NewDashboardController(cfg *utils.Config) *DashboardController {
	return &DashboardController{
		opts: normalize.OptionsFromConfig(cfg),
		plot: cfg.Plot,
		size: views.SizeFromConfig(cfg.Plot),
	}
}

// Load normalizes r. The EV variant gets the derived distance columns; the
// combustion variant is parsed only.
func (dc *DashboardController) Load(ctx context.Context, r io.Reader, kind Kind) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var (
		t   *models.Table
		err error
	)
	switch kind {
	case KindEV:
		t, err = normalize.Normalize(r, dc.opts)
	case KindCombustion:
		t, err = normalize.Parse(r, dc.opts)
	default:
		return nil, fmt.Errorf("unsupported dashboard kind %v", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("normalize %s export: %w", kind, err)
	}

	utils.L().Info("loaded %s export: %d rows, %d columns in %s",
		kind, t.Len(), len(t.Columns()), time.Since(start).Round(time.Millisecond))
	return t, nil
}

// Figure returns the dashboard layout for kind.
func (dc *DashboardController) Figure(kind Kind) *views.Figure {
	if kind == KindCombustion {
		return views.TemperatureDashboard()
	}
	return views.EVDashboard(dc.plot)
}

// Render normalizes r and writes the dashboard PNG to w. The table is
// returned so callers can report on it.
func (dc *DashboardController) Render(ctx context.Context, r io.Reader, kind Kind, w io.Writer) (*models.Table, error) {
	t, err := dc.Load(ctx, r, kind)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := dc.Figure(kind).WritePNG(w, t, dc.size); err != nil {
		return nil, fmt.Errorf("render %s dashboard: %w", kind, err)
	}
	utils.L().Debug("rendered %s dashboard in %s", kind, time.Since(start).Round(time.Millisecond))
	return t, nil
}
