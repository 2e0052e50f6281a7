package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"vehicle-telemetry/models"
)

// CSVWriter is a buffered CSV encoder for exporting normalized tables.
//
// The bufio.Writer absorbs syscall overhead; errors from individual rows
// are held by encoding/csv and reported by Flush.
type CSVWriter struct {
	closer io.Closer
	buf    *bufio.Writer
	csv    *csv.Writer
	rows   uint64
}

// NewCSVWriter wraps w and writes the header row, if one is given.
func NewCSVWriter(w io.Writer, bufSizeBytes int, header []string) (*CSVWriter, error) {
	if bufSizeBytes <= 0 {
		bufSizeBytes = 256 * 1024 // 256 KB default
	}

	bw := bufio.NewWriterSize(w, bufSizeBytes)
	cw := csv.NewWriter(bw)

	cwr := &CSVWriter{buf: bw, csv: cw}
	if c, ok := w.(io.Closer); ok {
		cwr.closer = c
	}

	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}
	return cwr, nil
}

// CreateCSVWriter creates (or truncates) path and returns a writer on it.
func CreateCSVWriter(path string, bufSizeBytes int, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}
	w, err := NewCSVWriter(f, bufSizeBytes, header)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WriteRow appends a single CSV row.
func (w *CSVWriter) WriteRow(row []string) {
	_ = w.csv.Write(row) // error is buffered; checked on Flush
	w.rows++
}

// Flush pushes the buffered data to the underlying writer.
func (w *CSVWriter) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return w.buf.Flush()
}

// Close flushes remaining data and closes the underlying file, if any.
func (w *CSVWriter) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 { return w.rows }

// ExportTable writes every row of t, header first, to out.
func ExportTable(out io.Writer, t models.CSVTableWriter) (uint64, error) {
	w, err := NewCSVWriter(out, 0, t.CSVHeader())
	if err != nil {
		return 0, err
	}
	for i := 0; i < t.Len(); i++ {
		w.WriteRow(t.CSVRow(i))
	}
	return w.Rows(), w.Flush()
}

// ExportFile writes t to a new CSV file at path.
func ExportFile(path string, t models.CSVTableWriter) (uint64, error) {
	w, err := CreateCSVWriter(path, 0, t.CSVHeader())
	if err != nil {
		return 0, err
	}
	for i := 0; i < t.Len(); i++ {
		w.WriteRow(t.CSVRow(i))
	}
	return w.Rows(), w.Close()
}
