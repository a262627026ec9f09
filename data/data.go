// Package data loads records into datasets and summarizes their columns.
package data

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vdobler/gridplot"
)

// ReadCSV reads comma separated records with a header line. Every record
// becomes a map from column name to value. Cells parsing as a number are
// stored as float64, empty cells as nil and everything else as string.
func ReadCSV(r io.Reader) (*gridplot.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("data: missing CSV header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "data: cannot read CSV header")
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		if header[i] == "" {
			return nil, errors.Errorf("data: empty name of CSV column %d", i+1)
		}
	}

	var records []any
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "data: cannot read CSV record %d", line)
		}
		rec := make(map[string]any, len(header))
		for i, cell := range row {
			rec[header[i]] = parseCell(cell)
		}
		records = append(records, rec)
	}
	return gridplot.NewDataset(records, map[string]any{"columns": header}), nil
}

func parseCell(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// LoadCSV reads the CSV file at path, see ReadCSV.
func LoadCSV(path string) (*gridplot.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "data")
	}
	defer f.Close()
	ds, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return ds, nil
}

// Columns returns the column names of a dataset read by ReadCSV.
func Columns(ds *gridplot.Dataset) []string {
	if m, ok := ds.Metadata().(map[string]any); ok {
		if cols, ok := m["columns"].([]string); ok {
			return cols
		}
	}
	return nil
}

// Range returns the minimum and maximum of the valid numeric values of
// the given fields over all records of ds.
func Range(ds *gridplot.Dataset, fields ...string) gridplot.Interval {
	iv := gridplot.UnsetInterval()
	for i, d := range ds.Data() {
		for _, field := range fields {
			iv.Update(gridplot.Float(gridplot.Field(field).Resolve()(d, i, gridplot.Context{})))
		}
	}
	return iv
}
