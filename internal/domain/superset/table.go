package superset

import (
	"math"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-superset/internal/domain/features"
)

// Table is the reconciled superset of one season. Rows are ordered by player id
// then date and are never mutated after Reconcile returns.
type Table struct {
	Season string
	Rows   []Row
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Value returns the cell at row i. Numeric cells are float64, categorical cells are
// string, and a missing numeric cell is nil.
func (t Table) Value(i int, column string) (any, error) {
	idx, ok := columnIndex[column]
	if !ok {
		return nil, crerr.Wrapf(features.ErrUnknownColumn, "column %q", column)
	}
	if i < 0 || i >= len(t.Rows) {
		return nil, crerr.Newf("row %d out of range", i)
	}

	def := columnDefs[idx]
	if def.info.Kind == features.Categorical {
		return def.label(&t.Rows[i]), nil
	}
	v := def.num(&t.Rows[i])
	if math.IsNaN(v) {
		return nil, nil
	}
	return v, nil
}

// Frame projects the named columns, or every column when none are named.
func (t Table) Frame(names ...string) (*features.Frame, error) {
	if len(names) == 0 {
		names = make([]string, len(columnDefs))
		for i, def := range columnDefs {
			names[i] = def.info.Name
		}
	}

	cols := make([]features.Column, 0, len(names))
	for _, name := range names {
		idx, ok := columnIndex[name]
		if !ok {
			return nil, crerr.Wrapf(features.ErrUnknownColumn, "column %q", name)
		}
		def := columnDefs[idx]
		if def.info.Kind == features.Categorical {
			labels := make([]string, len(t.Rows))
			for i := range t.Rows {
				labels[i] = def.label(&t.Rows[i])
			}
			cols = append(cols, features.CategoricalColumn(name, labels))
			continue
		}
		values := make([]float64, len(t.Rows))
		for i := range t.Rows {
			values[i] = def.num(&t.Rows[i])
		}
		cols = append(cols, features.NumericColumn(name, values))
	}

	return features.NewFrame(cols...)
}

// Records renders the table with a header row. Missing numeric cells are empty.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(columnDefs))
	for i, def := range columnDefs {
		header[i] = def.info.Name
	}
	out = append(out, header)

	for r := range t.Rows {
		record := make([]string, len(columnDefs))
		for c, def := range columnDefs {
			if def.info.Kind == features.Categorical {
				record[c] = def.label(&t.Rows[r])
				continue
			}
			if v := def.num(&t.Rows[r]); !math.IsNaN(v) {
				record[c] = formatFloat(v)
			}
		}
		out = append(out, record)
	}
	return out
}

func (t Table) Rounds() []int {
	seen := make(map[int]struct{})
	out := make([]int, 0, 38)
	for _, row := range t.Rows {
		if _, ok := seen[row.Round]; ok {
			continue
		}
		seen[row.Round] = struct{}{}
		out = append(out, row.Round)
	}
	sort.Ints(out)
	return out
}

func (t Table) Teams() []string {
	return t.distinct(func(r *Row) string { return r.Team })
}

func (t Table) Positions() []string {
	return t.distinct(func(r *Row) string { return r.Position })
}

func (t Table) distinct(fn func(r *Row) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range t.Rows {
		v := fn(&t.Rows[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
