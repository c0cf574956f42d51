package features

import (
	"fmt"
	"math"
	"sort"

	crerr "github.com/cockroachdb/errors"
)

var ErrUnfittedColumn = crerr.New("column was not seen when the encoder was fitted")

// OneHotEncoder expands categorical columns into one indicator column per
// training-time category. Categories that were not seen at fit time encode as an
// all-zero vector.
type OneHotEncoder struct {
	fields     []string
	categories map[string][]string
	positions  map[string]map[string]int
}

// FitOneHot learns the sorted distinct non-null categories of every categorical
// column in frame.
func FitOneHot(frame *Frame) *OneHotEncoder {
	enc := &OneHotEncoder{
		categories: make(map[string][]string),
		positions:  make(map[string]map[string]int),
	}
	for _, col := range frame.Columns() {
		if col.Kind != Categorical {
			continue
		}

		seen := make(map[string]struct{})
		for _, label := range col.Labels {
			if label == "" {
				continue
			}
			seen[label] = struct{}{}
		}
		cats := make([]string, 0, len(seen))
		for label := range seen {
			cats = append(cats, label)
		}
		sort.Strings(cats)

		pos := make(map[string]int, len(cats))
		for i, label := range cats {
			pos[label] = i
		}
		enc.fields = append(enc.fields, col.Name)
		enc.categories[col.Name] = cats
		enc.positions[col.Name] = pos
	}

	return enc
}

func (e *OneHotEncoder) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

func (e *OneHotEncoder) Categories(field string) []string {
	cats := e.categories[field]
	out := make([]string, len(cats))
	copy(out, cats)
	return out
}

// EncodedNames returns the indicator column names for field: field_1..field_k.
func (e *OneHotEncoder) EncodedNames(field string) []string {
	cats := e.categories[field]
	out := make([]string, len(cats))
	for i := range cats {
		out[i] = fmt.Sprintf("%s_%d", field, i+1)
	}
	return out
}

// Transform replaces every categorical column with its indicator columns, keeping
// column order. Rows that are entirely null afterwards are dropped; the returned
// indexes are the kept rows of frame.
func (e *OneHotEncoder) Transform(frame *Frame) (*Frame, []int, error) {
	cols := make([]Column, 0, frame.Ncol())
	for _, col := range frame.Columns() {
		if col.Kind != Categorical {
			cols = append(cols, col)
			continue
		}

		pos, ok := e.positions[col.Name]
		if !ok {
			return nil, nil, crerr.Wrapf(ErrUnfittedColumn, "encode %q", col.Name)
		}
		names := e.EncodedNames(col.Name)
		indicators := make([][]float64, len(names))
		for i := range indicators {
			indicators[i] = make([]float64, col.Len())
		}
		for row, label := range col.Labels {
			if idx, known := pos[label]; known {
				indicators[idx][row] = 1
			}
		}
		for i, name := range names {
			cols = append(cols, NumericColumn(name, indicators[i]))
		}
	}

	encoded, err := NewFrame(cols...)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "build encoded frame")
	}
	if encoded.Ncol() == 0 {
		rows := make([]int, frame.Nrow())
		for i := range rows {
			rows[i] = i
		}
		encoded.rows = frame.Nrow()
		return encoded, rows, nil
	}

	out, kept := encoded.Filter(func(row int) bool {
		return !encoded.RowIsNull(row)
	})
	return out, kept, nil
}

func isMissing(v float64) bool {
	return math.IsNaN(v)
}
