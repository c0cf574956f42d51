package features

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

// UseCase is a modeling use case: it declares its variables, cleans a reconciled
// frame to them, explores the result and prepares a design matrix.
type UseCase interface {
	Name() string
	Spec() VariableSpec
	Clean(frame *Frame) (*Frame, error)
	Explore(cleaned *Frame) []Exploration
	Prepare(cleaned *Frame) (*PreparedMatrix, error)
}

type RunResult struct {
	Cleaned      *Frame
	Explorations []Exploration
	Matrix       *PreparedMatrix
}

// Run cleans frame, optionally explores it, and prepares the design matrix.
func Run(uc UseCase, frame *Frame, explore bool) (RunResult, error) {
	cleaned, err := uc.Clean(frame)
	if err != nil {
		return RunResult{}, crerr.Wrapf(err, "clean %s", uc.Name())
	}

	result := RunResult{Cleaned: cleaned}
	if explore {
		result.Explorations = uc.Explore(cleaned)
	}

	matrix, err := uc.Prepare(cleaned)
	if err != nil {
		return RunResult{}, crerr.Wrapf(err, "prepare %s", uc.Name())
	}
	result.Matrix = matrix
	return result, nil
}

const (
	ColumnPosition = "position"

	positionGoalkeeper = "GK"
	positionDefender   = "DEF"
)

// ValueModel regresses total points on advanced metrics, team and opponent for
// attacking players.
type ValueModel struct {
	spec VariableSpec
}

func NewValueModel() ValueModel {
	return ValueModel{spec: VariableSpec{
		Independent: []string{
			"xG", "xA", "xP", "key_passes", "xGChain",
			"creativity", "influence", "threat",
			"team", "opposition_team", ColumnPosition,
		},
		Dependent: []string{"total_points"},
	}}
}

func (ValueModel) Name() string {
	return "value"
}

func (m ValueModel) Spec() VariableSpec {
	return VariableSpec{
		Independent: append([]string(nil), m.spec.Independent...),
		Dependent:   append([]string(nil), m.spec.Dependent...),
	}
}

func (m ValueModel) Clean(frame *Frame) (*Frame, error) {
	return Clean(frame, m.spec, ExcludeValues(ColumnPosition, positionGoalkeeper, positionDefender))
}

// Explore views each known position separately, in sorted order, then all rows
// together. Rows without a position only appear in the overall view.
func (m ValueModel) Explore(cleaned *Frame) []Exploration {
	out := make([]Exploration, 0, 4)
	if col, ok := cleaned.Column(ColumnPosition); ok && col.Kind == Categorical {
		seen := make(map[string]struct{})
		for _, label := range col.Labels {
			if label == "" {
				continue
			}
			seen[label] = struct{}{}
		}
		positions := make([]string, 0, len(seen))
		for label := range seen {
			positions = append(positions, label)
		}
		sort.Strings(positions)

		for _, pos := range positions {
			sub, _ := cleaned.Filter(func(row int) bool {
				return col.Labels[row] == pos
			})
			out = append(out, Explore(sub, pos))
		}
	}

	return append(out, Explore(cleaned, "Overall"))
}

// Prepare encodes then scales the independent variables.
func (m ValueModel) Prepare(cleaned *Frame) (*PreparedMatrix, error) {
	matrix, err := NewPreparedMatrix(cleaned, m.spec)
	if err != nil {
		return nil, err
	}
	if _, err := matrix.EncodeCategoricals(false); err != nil {
		return nil, crerr.Wrap(err, "encode categoricals")
	}
	if _, err := matrix.Scale(false, false); err != nil {
		return nil, crerr.Wrap(err, "scale")
	}
	return matrix, nil
}
