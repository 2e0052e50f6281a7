package normalize

import (
	"fmt"

	"vehicle-telemetry/models"
)

// Derive appends wheel speed in m/s, time difference, distance traveled and
// cumulative distance. Source columns are left untouched.
func Derive(t *models.Table, opts Options) error {
	var absent []string
	for _, c := range []string{models.ChanTime, models.ChanWheelSpeedFRKmh} {
		if !t.Has(c) {
			absent = append(absent, c)
		}
	}
	if len(absent) > 0 {
		return models.MissingColumns(absent...)
	}

	var clash []string
	for _, c := range models.DerivedChannels {
		if t.Has(c) {
			clash = append(clash, c)
		}
	}
	if len(clash) > 0 {
		return &models.SchemaError{Reason: "derived columns already present in source", Columns: clash}
	}

	kmh, _ := t.Column(models.ChanWheelSpeedFRKmh)
	tm, _ := t.Column(models.ChanTime)

	speed := Scale(kmh, opts.KmhToMs)
	dt := Diff(tm)
	dist := Mul(speed, dt)
	cum := CumSum(dist)

	for i, vals := range [][]float64{speed, dt, dist, cum} {
		if err := t.AppendColumn(models.DerivedChannels[i], vals); err != nil {
			return fmt.Errorf("derive: %w", err)
		}
	}
	return nil
}

// Scale multiplies every value by k. Missing stays missing.
func Scale(xs []float64, k float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = v * k
	}
	return out
}

// Diff returns xs[i]-xs[i-1], with 0 for the first row and wherever either
// operand is missing.
func Diff(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i := 1; i < len(xs); i++ {
		d := xs[i] - xs[i-1]
		if models.IsMissing(d) {
			d = 0
		}
		out[i] = d
	}
	return out
}

// Mul is the element-wise product of two equal-length series.
func Mul(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

// CumSum is the running sum over valid values. A missing input leaves a
// missing output at that row and does not reset the sum.
func CumSum(xs []float64) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	for i, v := range xs {
		if models.IsMissing(v) {
			out[i] = models.Missing
			continue
		}
		sum += v
		out[i] = sum
	}
	return out
}
