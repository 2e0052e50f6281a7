package normalize

import (
	"fmt"
	"strings"
)

// ColumnName pairs a metric with its unit: "<Metric> (<Unit>)", or just
// "<Metric>" when the unit is blank.
func ColumnName(metric, unit string) string {
	metric = strings.TrimSpace(metric)
	unit = strings.TrimSpace(unit)
	if unit == "" || isPlaceholder(unit) {
		return metric
	}
	return fmt.Sprintf("%s (%s)", metric, unit)
}

// isPlaceholder matches the "Unnamed: 3_level_1" cells some exporters
// leave in place of a blank unit.
func isPlaceholder(cell string) bool {
	return strings.HasPrefix(cell, "Unnamed:")
}

// buildColumnNames zips the metric and unit rows. A repeated name gets a
// ".N" suffix on its metric; a blank metric becomes "Unnamed: <index>".
func buildColumnNames(metrics, units []string) []string {
	names := make([]string, len(metrics))
	used := make(map[string]bool, len(metrics))

	for i, m := range metrics {
		m = strings.TrimSpace(m)
		if m == "" || isPlaceholder(m) {
			m = fmt.Sprintf("Unnamed: %d", i)
		}
		var u string
		if i < len(units) {
			u = units[i]
		}

		name := ColumnName(m, u)
		for k := 1; used[name]; k++ {
			name = ColumnName(fmt.Sprintf("%s.%d", m, k), u)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
