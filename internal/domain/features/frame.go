package features

import (
	"math"
	"strconv"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrUnknownColumn   = crerr.New("unknown column")
	ErrDuplicateColumn = crerr.New("duplicate column")
	ErrColumnLength    = crerr.New("column length mismatch")
)

type ColumnKind int

const (
	Numeric ColumnKind = iota
	Categorical
)

func (k ColumnKind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Column holds one named column. Numeric columns use NaN for null, categorical
// columns use the empty string.
type Column struct {
	Name   string
	Kind   ColumnKind
	Floats []float64
	Labels []string
}

func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Numeric, Floats: values}
}

func CategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Kind: Categorical, Labels: values}
}

func (c Column) Len() int {
	if c.Kind == Categorical {
		return len(c.Labels)
	}
	return len(c.Floats)
}

func (c Column) IsNull(row int) bool {
	if c.Kind == Categorical {
		return c.Labels[row] == ""
	}
	return math.IsNaN(c.Floats[row])
}

func (c Column) String(row int) string {
	if c.Kind == Categorical {
		return c.Labels[row]
	}
	if c.IsNull(row) {
		return ""
	}
	return strconv.FormatFloat(c.Floats[row], 'f', -1, 64)
}

func (c Column) subset(rows []int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == Categorical {
		out.Labels = make([]string, len(rows))
		for i, row := range rows {
			out.Labels[i] = c.Labels[row]
		}
		return out
	}
	out.Floats = make([]float64, len(rows))
	for i, row := range rows {
		out.Floats[i] = c.Floats[row]
	}
	return out
}

// Frame is a small column-oriented table. Operations return new frames and never
// mutate the receiver.
type Frame struct {
	columns []Column
	index   map[string]int
	rows    int
}

func NewFrame(columns ...Column) (*Frame, error) {
	f := &Frame{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, exists := f.index[col.Name]; exists {
			return nil, crerr.Wrapf(ErrDuplicateColumn, "column %q", col.Name)
		}
		if i == 0 {
			f.rows = col.Len()
		} else if col.Len() != f.rows {
			return nil, crerr.Wrapf(ErrColumnLength, "column %q has %d rows, want %d", col.Name, col.Len(), f.rows)
		}
		f.index[col.Name] = len(f.columns)
		f.columns = append(f.columns, col)
	}

	return f, nil
}

func (f *Frame) Nrow() int {
	if f == nil {
		return 0
	}
	return f.rows
}

func (f *Frame) Ncol() int {
	if f == nil {
		return 0
	}
	return len(f.columns)
}

func (f *Frame) Names() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.columns))
	for _, col := range f.columns {
		out = append(out, col.Name)
	}
	return out
}

func (f *Frame) Column(name string) (Column, bool) {
	if f == nil {
		return Column{}, false
	}
	idx, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.columns[idx], true
}

func (f *Frame) Columns() []Column {
	if f == nil {
		return nil
	}
	out := make([]Column, len(f.columns))
	copy(out, f.columns)
	return out
}

// Select projects the frame onto names, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, ok := f.Column(name)
		if !ok {
			return nil, crerr.Wrapf(ErrUnknownColumn, "select %q", name)
		}
		cols = append(cols, col)
	}
	out, err := NewFrame(cols...)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		out.rows = f.Nrow()
	}
	return out, nil
}

// Subset keeps the given row indexes, in order.
func (f *Frame) Subset(rows []int) *Frame {
	out := &Frame{
		columns: make([]Column, 0, len(f.columns)),
		index:   make(map[string]int, len(f.columns)),
		rows:    len(rows),
	}
	for _, col := range f.columns {
		out.index[col.Name] = len(out.columns)
		out.columns = append(out.columns, col.subset(rows))
	}
	return out
}

// Filter keeps rows for which keep returns true and reports the kept row indexes.
func (f *Frame) Filter(keep func(row int) bool) (*Frame, []int) {
	rows := make([]int, 0, f.Nrow())
	for row := 0; row < f.Nrow(); row++ {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return f.Subset(rows), rows
}

// RowIsNull reports whether every column is null at row.
func (f *Frame) RowIsNull(row int) bool {
	for _, col := range f.columns {
		if !col.IsNull(row) {
			return false
		}
	}
	return true
}

// Records renders the frame as a header row followed by string rows.
func (f *Frame) Records() [][]string {
	out := make([][]string, 0, f.Nrow()+1)
	out = append(out, f.Names())
	for row := 0; row < f.Nrow(); row++ {
		record := make([]string, len(f.columns))
		for i, col := range f.columns {
			record[i] = col.String(row)
		}
		out = append(out, record)
	}
	return out
}
