// Package normalize turns a raw telemetry CSV export into a models.Table
// and computes the derived distance columns.
package normalize

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vehicle-telemetry/models"
	"vehicle-telemetry/utils"
)

// Options describes the export layout and conversion constants.
type Options struct {
	PreambleLines int     // lines before the metric header row
	MetadataRows  int     // non-numeric rows after the unit row
	KmhToMs       float64 // km/h → m/s factor
}

// DefaultOptions matches the data logger's standard export.
func DefaultOptions() Options {
	return Options{
		PreambleLines: 14,
		MetadataRows:  2,
		KmhToMs:       0.277778,
	}
}

// OptionsFromConfig maps the input and derive config sections.
func OptionsFromConfig(cfg *utils.Config) Options {
	return Options{
		PreambleLines: cfg.Input.PreambleLines,
		MetadataRows:  cfg.Input.MetadataRows,
		KmhToMs:       cfg.Derive.KmhToMs,
	}
}

// Normalize parses r and appends the derived columns.
func Normalize(r io.Reader, opts Options) (*models.Table, error) {
	t, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}
	if err := Derive(t, opts); err != nil {
		return nil, err
	}
	return t, nil
}

// Parse skips the preamble, reads the two header rows, drops the metadata
// rows and coerces every remaining cell to a float. Cells that do not
// parse become models.Missing; rows are never dropped.
func Parse(r io.Reader, opts Options) (*models.Table, error) {
	br := bufio.NewReader(r)
	if err := skipLines(br, opts.PreambleLines); err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	metrics, err := readHeaderRow(cr, "metric")
	if err != nil {
		return nil, err
	}
	units, err := readHeaderRow(cr, "unit")
	if err != nil {
		return nil, err
	}
	names := buildColumnNames(metrics, units)

	cols := make([][]float64, len(names))
	rows := 0
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read data row %d: %w", line+1, err)
		}
		if line < opts.MetadataRows {
			continue
		}
		for c := range cols {
			v := models.Missing
			if c < len(rec) {
				v = parseCell(rec[c])
			}
			cols[c] = append(cols[c], v)
		}
		rows++
	}

	t := models.NewTable(rows)
	for c, name := range names {
		vals := cols[c]
		if vals == nil {
			vals = make([]float64, 0)
		}
		if err := t.AppendColumn(name, vals); err != nil {
			return nil, fmt.Errorf("build table: %w", err)
		}
		if n := t.MissingCount(name); n > 0 {
			utils.L().Debug("normalize: %q has %d/%d missing cells", name, n, rows)
		}
	}

	utils.L().Debug("normalize: parsed %d rows × %d columns", rows, len(names))
	return t, nil
}

func skipLines(br *bufio.Reader, n int) error {
	for i := 0; i < n; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return &models.SchemaError{
					Reason: fmt.Sprintf("input ended after %d of %d preamble lines", i, n),
				}
			}
			return fmt.Errorf("read preamble: %w", err)
		}
	}
	return nil
}

func readHeaderRow(cr *csv.Reader, which string) ([]string, error) {
	rec, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.SchemaError{Reason: "fewer than two header rows, no " + which + " row"}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", which, err)
	}
	return rec, nil
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Missing
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Missing
	}
	return v
}
