package models

// ColumnStats is one line of the min/max summary table.
type ColumnStats struct {
	Name    string
	Min     float64 // Missing if the column has no valid cells
	Max     float64
	Valid   int
	Missing int
}

// FormatMin renders Min with two decimals, or "nan" when absent.
func (s ColumnStats) FormatMin() string { return formatStat(s.Min) }

// FormatMax renders Max with two decimals, or "nan" when absent.
func (s ColumnStats) FormatMax() string { return formatStat(s.Max) }

func formatStat(v float64) string {
	if IsMissing(v) {
		return "nan"
	}
	return ftoa(v, 2)
}

// Summarize computes per-column min/max over valid cells, in column order.
func Summarize(t *Table) []ColumnStats {
	out := make([]ColumnStats, 0, len(t.columns))
	for c, name := range t.columns {
		s := ColumnStats{Name: name, Min: Missing, Max: Missing}
		for _, v := range t.data[c] {
			if IsMissing(v) {
				s.Missing++
				continue
			}
			if s.Valid == 0 || v < s.Min {
				s.Min = v
			}
			if s.Valid == 0 || v > s.Max {
				s.Max = v
			}
			s.Valid++
		}
		out = append(out, s)
	}
	return out
}
