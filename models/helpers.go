package models

import (
	"math"
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Missing marks a cell that could not be coerced to a number.
var Missing = math.NaN()

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// CSVTableWriter is the interface every exportable table must satisfy.
type CSVTableWriter interface {
	CSVHeader() []string
	Len() int
	CSVRow(i int) []string
}
