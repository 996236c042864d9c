package marketdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SeriesStore holds historical price series loaded once at startup.
// One column per instrument; rows are ordered oldest to newest.
// The store is read-only after load.
type SeriesStore struct {
	columns map[string][]float64
}

// NewSeriesStore builds a store from pre-parsed columns. Used by tests
// and by callers that source series elsewhere.
func NewSeriesStore(columns map[string][]float64) *SeriesStore {
	if columns == nil {
		columns = map[string][]float64{}
	}
	return &SeriesStore{columns: columns}
}

// LoadSeries reads a CSV price table (header row of column names, one
// column per instrument). Cells that do not parse as numbers are skipped,
// so columns of unequal effective length are fine.
func LoadSeries(path string) (*SeriesStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read series csv: %w", err)
	}
	if len(records) < 2 {
		return NewSeriesStore(nil), nil
	}

	header := records[0]
	columns := make(map[string][]float64, len(header))
	for col, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var prices []float64
		for _, row := range records[1:] {
			if col >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				continue
			}
			prices = append(prices, v)
		}
		columns[name] = prices
	}
	return &SeriesStore{columns: columns}, nil
}

// Prices returns the series for a column, or nil when absent.
func (s *SeriesStore) Prices(column string) []float64 {
	if s == nil {
		return nil
	}
	return s.columns[column]
}

// Columns lists the loaded column names.
func (s *SeriesStore) Columns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.columns))
	for name := range s.columns {
		out = append(out, name)
	}
	return out
}
