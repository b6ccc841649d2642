package classify

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/raster"
)

// SampleSet is a table of numeric rows with named columns. Feature vectors
// and labels are both columns; Train picks which is which.
type SampleSet struct {
	columns []string
	index   map[string]int
	rows    [][]float64
}

// NewSampleSet returns an empty set with the given unique column names.
func NewSampleSet(columns ...string) (*SampleSet, error) {
	s := &SampleSet{columns: append([]string(nil), columns...), index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("column %d has no name: %w", i, raster.ErrInvalidArgument)
		}
		if _, dup := s.index[c]; dup {
			return nil, fmt.Errorf("column %q: %w", c, raster.ErrDuplicateBand)
		}
		s.index[c] = i
	}

	return s, nil
}

// Add appends one row holding a value per column, in column order.
func (s *SampleSet) Add(values ...float64) error {
	if len(values) != len(s.columns) {
		return fmt.Errorf("row of %d values for %d columns: %w", len(values), len(s.columns), raster.ErrShapeMismatch)
	}
	s.rows = append(s.rows, append([]float64(nil), values...))

	return nil
}

// Columns returns the column names.
func (s *SampleSet) Columns() []string { return append([]string(nil), s.columns...) }

// Len returns the number of rows.
func (s *SampleSet) Len() int { return len(s.rows) }

// Row returns a copy of row i.
func (s *SampleSet) Row(i int) []float64 { return append([]float64(nil), s.rows[i]...) }

// Column returns a copy of the named column.
func (s *SampleSet) Column(name string) ([]float64, error) {
	j, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, raster.ErrBandNotFound)
	}
	out := make([]float64, len(s.rows))
	for i, row := range s.rows {
		out[i] = row[j]
	}

	return out, nil
}

// design extracts the feature matrix and integer labels. Rows holding NaN in
// any selected column are skipped. Labels must be integral.
func (s *SampleSet) design(features []string, label string) ([][]float64, []int, error) {
	fi := make([]int, len(features))
	for k, f := range features {
		j, ok := s.index[f]
		if !ok {
			return nil, nil, fmt.Errorf("feature %q: %w: %w", f, raster.ErrFeatureMismatch, raster.ErrBandNotFound)
		}
		fi[k] = j
	}
	li, ok := s.index[label]
	if !ok {
		return nil, nil, fmt.Errorf("label %q: %w", label, raster.ErrBandNotFound)
	}

	X := make([][]float64, 0, len(s.rows))
	y := make([]int, 0, len(s.rows))
rows:
	for i, row := range s.rows {
		lv := row[li]
		if math.IsNaN(lv) {
			continue
		}
		if lv != math.Trunc(lv) || math.IsInf(lv, 0) {
			return nil, nil, fmt.Errorf("row %d: label %g is not a class: %w", i, lv, raster.ErrInvalidArgument)
		}
		x := make([]float64, len(fi))
		for k, j := range fi {
			if math.IsNaN(row[j]) {
				continue rows
			}
			x[k] = row[j]
		}
		X = append(X, x)
		y = append(y, int(lv))
	}

	return X, y, nil
}
