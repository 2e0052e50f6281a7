package views

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"

	"vehicle-telemetry/models"
	"vehicle-telemetry/utils"
)

var testSize = Size{Width: 6 * vg.Inch, Height: 4 * vg.Inch, DPI: 50}

func evTable(t *testing.T) *models.Table {
	t.Helper()
	tbl := models.NewTable(4)
	cols := []struct {
		name string
		vals []float64
	}{
		{models.ChanTime, []float64{0, 0.5, 1, 1.5}},
		{models.ChanBrakeFront, []float64{1000, 6500, models.Missing, 200}},
		{models.ChanBrakeRear, []float64{900, 5000, 3000, 100}},
		{models.ChanEnginePower, []float64{3, 18, 22, 5}},
		{models.ChanCumDistance, []float64{0, 5, 12, 20}},
	}
	for _, c := range cols {
		if err := tbl.AppendColumn(c.name, c.vals); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func TestEVDashboardWritesPNG(t *testing.T) {
	var buf bytes.Buffer
	fig := EVDashboard(utils.DefaultConfig().Plot)
	if err := fig.WritePNG(&buf, evTable(t), testSize); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Errorf("expected 300x200 image, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestEVDashboardMissingChannel(t *testing.T) {
	tbl := models.NewTable(2)
	if err := tbl.AppendColumn(models.ChanTime, []float64{0, 1}); err != nil {
		t.Fatal(err)
	}
	_, err := EVDashboard(utils.DefaultConfig().Plot).Build(tbl)
	var se *models.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestTemperatureDashboardToleratesAbsentChannels(t *testing.T) {
	tbl := models.NewTable(3)
	if err := tbl.AppendColumn(models.ChanTime, []float64{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AppendColumn(models.ChanEngOilTemp, []float64{80, 85, 90}); err != nil {
		t.Fatal(err)
	}

	fig := TemperatureDashboard()
	grid, err := fig.Build(tbl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("expected 3 stacked panels, got %d", len(grid))
	}
	for r, row := range grid {
		if row[0].X.Min != 0 || row[0].X.Max != 2 {
			t.Errorf("panel %d does not share the time axis: [%v, %v]", r, row[0].X.Min, row[0].X.Max)
		}
	}
	if !strings.Contains(grid[1][0].Title.Text, "not logged") {
		t.Errorf("absent channel should be captioned, got %q", grid[1][0].Title.Text)
	}

	var buf bytes.Buffer
	if err := fig.WritePNG(&buf, tbl, testSize); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
}

func TestFigureTooManyPanels(t *testing.T) {
	fig := &Figure{Rows: 1, Cols: 1, Panels: []Panel{&SummaryPanel{}, &SummaryPanel{}}}
	if _, err := fig.Build(evTable(t)); err == nil {
		t.Error("expected an error for panels that do not fit the grid")
	}
}

func TestPointsDropMissing(t *testing.T) {
	pts := points([]float64{0, 1, models.Missing, 3}, []float64{10, models.Missing, 5, 2000}, 1.0/1000)
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[1].X != 3 || pts[1].Y != 2 {
		t.Errorf("unexpected scaled point %+v", pts[1])
	}
}

func TestThresholdsFollowConfig(t *testing.T) {
	cfg := utils.DefaultConfig().Plot
	fig := EVDashboard(cfg)
	brake := fig.Panels[1].(*SeriesPanel)
	if len(brake.Thresholds) != 1 {
		t.Fatalf("expected a brake threshold, got %d", len(brake.Thresholds))
	}
	if got, want := brake.Thresholds[0].Value, 900*6.895/1000; got != want {
		t.Errorf("brake threshold = %v, want %v", got, want)
	}

	cfg.ShowThresholds = false
	if n := len(EVDashboard(cfg).Panels[2].(*SeriesPanel).Thresholds); n != 0 {
		t.Errorf("thresholds should be off, got %d", n)
	}
}

func TestExportTable(t *testing.T) {
	var buf bytes.Buffer
	rows, err := ExportTable(&buf, evTable(t))
	if err != nil {
		t.Fatalf("ExportTable: %v", err)
	}
	if rows != 4 {
		t.Errorf("expected 4 rows, got %d", rows)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Time (s),Brake Pressure Front (kPa)") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[3] != "1,,3000,22,12" {
		t.Errorf("missing cell should export empty, got %q", lines[3])
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if _, err := ExportFile(path, evTable(t)); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("Time (s),")) {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, evTable(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Engine Power (kW)") || !strings.Contains(out, "22.00") {
		t.Errorf("summary missing expected content:\n%s", out)
	}
}
