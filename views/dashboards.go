package views

import (
	"fmt"

	"golang.org/x/image/colornames"

	"vehicle-telemetry/models"
	"vehicle-telemetry/utils"
)

// EVDashboard is the 2×2 electric-variant dashboard: min/max table, brake
// pressure, engine power and cumulative distance.
func EVDashboard(cfg utils.PlotConfig) *Figure {
	brake := &SeriesPanel{
		Title:    fmt.Sprintf("Brake Pressure >= %g psi (converted to kPa)", cfg.BrakeThresholdPSI),
		XChannel: models.ChanTime,
		YLabel:   "Brake Pressure (1000s kPa)",
		Series: []Series{
			{Channel: models.ChanBrakeFront, Scale: 1.0 / 1000, Color: colornames.Blue},
			{Channel: models.ChanBrakeRear, Scale: 1.0 / 1000, Color: colornames.Red},
		},
	}
	power := &SeriesPanel{
		Title:    fmt.Sprintf("Engine Power >= %g kW", cfg.PowerThresholdKW),
		XChannel: models.ChanTime,
		YLabel:   "Engine Power (kW)",
		Series:   []Series{{Channel: models.ChanEnginePower, Color: colornames.Blue}},
	}
	if cfg.ShowThresholds {
		brake.Thresholds = []Threshold{{
			Value: cfg.BrakeThresholdKPa() / 1000,
			Label: fmt.Sprintf("%g psi", cfg.BrakeThresholdPSI),
		}}
		power.Thresholds = []Threshold{{
			Value: cfg.PowerThresholdKW,
			Label: fmt.Sprintf("%g kW", cfg.PowerThresholdKW),
		}}
	}

	return &Figure{
		Rows: 2,
		Cols: 2,
		Panels: []Panel{
			&SummaryPanel{Title: "Min and Max Values"},
			brake,
			power,
			&SeriesPanel{
				Title:    "Cumulative Distance Traveled",
				XChannel: models.ChanTime,
				YLabel:   "Distance (m)",
				Series:   []Series{{Channel: models.ChanCumDistance, Color: colornames.Blue}},
			},
		},
	}
}

// TemperatureDashboard stacks the combustion-variant temperature traces on
// a shared time axis. Channels the logger did not record leave a blank
// panel.
func TemperatureDashboard() *Figure {
	panels := make([]Panel, 0, len(models.TemperatureChannels))
	for _, ch := range models.TemperatureChannels {
		panels = append(panels, &SeriesPanel{
			Title:    ch,
			XChannel: models.ChanTime,
			YLabel:   "Temperature (°C)",
			Series:   []Series{{Channel: ch, Color: colornames.Blue}},
			Optional: true,
		})
	}

	return &Figure{
		Title:   "Temperature Profile Over Time",
		Rows:    len(panels),
		Cols:    1,
		SharedX: true,
		Panels:  panels,
	}
}
