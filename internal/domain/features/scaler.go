package features

import (
	"math"

	crerr "github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"
)

var ErrScalerColumnMismatch = crerr.New("scaler columns do not match input")

// StandardScaler standardizes numeric columns to zero mean and unit variance.
// Variance is the population variance; a constant column keeps a scale of 1.
type StandardScaler struct {
	columns []string
	means   map[string]float64
	scales  map[string]float64
}

// FitStandardScaler learns per-column mean and scale from every numeric column of
// frame. Null values are ignored while fitting.
func FitStandardScaler(frame *Frame) *StandardScaler {
	s := &StandardScaler{
		means:  make(map[string]float64),
		scales: make(map[string]float64),
	}
	for _, col := range frame.Columns() {
		if col.Kind != Numeric {
			continue
		}

		values := make([]float64, 0, len(col.Floats))
		for _, v := range col.Floats {
			if isMissing(v) {
				continue
			}
			values = append(values, v)
		}

		mean, scale := 0.0, 1.0
		if len(values) > 0 {
			var variance float64
			mean, variance = stat.PopMeanVariance(values, nil)
			if sd := math.Sqrt(variance); sd > 0 {
				scale = sd
			}
		}

		s.columns = append(s.columns, col.Name)
		s.means[col.Name] = mean
		s.scales[col.Name] = scale
	}

	return s
}

func (s *StandardScaler) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

func (s *StandardScaler) Mean(column string) (float64, bool) {
	v, ok := s.means[column]
	return v, ok
}

func (s *StandardScaler) Scale(column string) (float64, bool) {
	v, ok := s.scales[column]
	return v, ok
}

// Transform standardizes the numeric columns of frame. The numeric columns must be
// exactly the fitted columns; categorical columns pass through unchanged.
func (s *StandardScaler) Transform(frame *Frame) (*Frame, error) {
	numeric := 0
	cols := frame.Columns()
	for i, col := range cols {
		if col.Kind != Numeric {
			continue
		}
		numeric++

		mean, ok := s.means[col.Name]
		if !ok {
			return nil, crerr.Wrapf(ErrScalerColumnMismatch, "column %q was not fitted", col.Name)
		}
		scale := s.scales[col.Name]

		scaled := make([]float64, len(col.Floats))
		for row, v := range col.Floats {
			if isMissing(v) {
				scaled[row] = v
				continue
			}
			scaled[row] = (v - mean) / scale
		}
		cols[i] = NumericColumn(col.Name, scaled)
	}
	if numeric != len(s.columns) {
		return nil, crerr.Wrapf(ErrScalerColumnMismatch, "input has %d numeric columns, scaler has %d", numeric, len(s.columns))
	}

	out, err := NewFrame(cols...)
	if err != nil {
		return nil, crerr.Wrap(err, "build scaled frame")
	}
	if len(cols) == 0 {
		out.rows = frame.Nrow()
	}
	return out, nil
}
