package features

// RowFilter reports whether row of frame is kept.
type RowFilter func(frame *Frame, row int) bool

// ExcludeValues drops rows whose categorical column holds one of values. Frames
// without the column are left untouched.
func ExcludeValues(column string, values ...string) RowFilter {
	excluded := make(map[string]struct{}, len(values))
	for _, v := range values {
		excluded[v] = struct{}{}
	}
	return func(frame *Frame, row int) bool {
		col, ok := frame.Column(column)
		if !ok || col.Kind != Categorical {
			return true
		}
		_, drop := excluded[col.Labels[row]]
		return !drop
	}
}

// Clean applies the use case filters and projects frame onto spec's columns.
func Clean(frame *Frame, spec VariableSpec, filters ...RowFilter) (*Frame, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	filtered := frame
	if len(filters) > 0 {
		filtered, _ = frame.Filter(func(row int) bool {
			for _, keep := range filters {
				if !keep(frame, row) {
					return false
				}
			}
			return true
		})
	}

	return filtered.Select(spec.Columns()...)
}
