package features

import crerr "github.com/cockroachdb/errors"

var ErrInvalidVariableSpec = crerr.New("invalid variable spec")

// VariableSpec declares the independent and dependent columns of a model use case.
type VariableSpec struct {
	Independent []string
	Dependent   []string
}

func (s VariableSpec) Validate() error {
	if len(s.Independent) == 0 {
		return crerr.Wrap(ErrInvalidVariableSpec, "independent variables are required")
	}
	if len(s.Dependent) == 0 {
		return crerr.Wrap(ErrInvalidVariableSpec, "dependent variables are required")
	}
	return nil
}

// Columns is the ordered union of independent and dependent variables.
func (s VariableSpec) Columns() []string {
	seen := make(map[string]struct{}, len(s.Independent)+len(s.Dependent))
	out := make([]string, 0, len(s.Independent)+len(s.Dependent))
	for _, group := range [][]string{s.Independent, s.Dependent} {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
