package features

import (
	crerr "github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNonNumericMatrix = crerr.New("matrix has non-numeric columns")
	ErrEmptyMatrix      = crerr.New("matrix is empty")
)

type Stage string

const (
	StageRaw     Stage = "RAW"
	StageEncoded Stage = "ENCODED"
	StageScaled  Stage = "SCALED"
)

// PreparedMatrix carries a use case's design matrix through encoding and scaling.
// X and Y are never modified; XProcessed, Scaler and Encoder are replaced by each
// pipeline call. Calls on one matrix must be serialized by the caller.
type PreparedMatrix struct {
	X          *Frame
	Y          *Frame
	XProcessed *Frame
	Scaler     *StandardScaler
	Encoder    *OneHotEncoder

	// rows maps XProcessed rows back to X rows.
	rows    []int
	encoded bool
	scaled  bool
}

func NewPreparedMatrix(cleaned *Frame, spec VariableSpec) (*PreparedMatrix, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	x, err := cleaned.Select(spec.Independent...)
	if err != nil {
		return nil, crerr.Wrap(err, "slice independent variables")
	}
	y, err := cleaned.Select(spec.Dependent...)
	if err != nil {
		return nil, crerr.Wrap(err, "slice dependent variables")
	}

	return &PreparedMatrix{X: x, Y: y}, nil
}

func (m *PreparedMatrix) Stage() Stage {
	switch {
	case m.scaled:
		return StageScaled
	case m.encoded:
		return StageEncoded
	default:
		return StageRaw
	}
}

// Encoded reports whether XProcessed holds one-hot encoded categoricals.
func (m *PreparedMatrix) Encoded() bool {
	return m.encoded
}

// Scaled reports whether XProcessed holds standardized numerics.
func (m *PreparedMatrix) Scaled() bool {
	return m.scaled
}

func (m *PreparedMatrix) input(fromOriginal bool) (*Frame, []int) {
	if fromOriginal || m.XProcessed == nil {
		rows := make([]int, m.X.Nrow())
		for i := range rows {
			rows[i] = i
		}
		return m.X, rows
	}
	return m.XProcessed, m.rows
}

// EncodeCategoricals one-hot encodes the categorical columns. With overwrite the
// encoder is refitted on X and X is the input; otherwise the current XProcessed is
// encoded with the existing encoder, fitting one if none exists yet.
func (m *PreparedMatrix) EncodeCategoricals(overwrite bool) (*Frame, error) {
	in, baseRows := m.input(overwrite)
	if m.Encoder == nil || overwrite {
		m.Encoder = FitOneHot(in)
	}

	out, kept, err := m.Encoder.Transform(in)
	if err != nil {
		return nil, err
	}

	rows := make([]int, len(kept))
	for i, row := range kept {
		rows[i] = baseRows[row]
	}

	if in == m.X {
		m.scaled = false
	}
	m.encoded = true
	m.XProcessed = out
	m.rows = rows
	return out, nil
}

// Scale standardizes the numeric columns. The scaler is fitted when absent or when
// forceRefit is set; forceOverwrite scales X instead of XProcessed.
func (m *PreparedMatrix) Scale(forceRefit, forceOverwrite bool) (*Frame, error) {
	in, baseRows := m.input(forceOverwrite)
	if m.Scaler == nil || forceRefit {
		m.Scaler = FitStandardScaler(in)
	}

	out, err := m.Scaler.Transform(in)
	if err != nil {
		return nil, err
	}

	if in == m.X {
		m.encoded = false
	}
	m.scaled = true
	m.XProcessed = out
	m.rows = append([]int(nil), baseRows...)
	return out, nil
}

// DesignMatrix returns the processed independent variables as a dense matrix.
func (m *PreparedMatrix) DesignMatrix() (*mat.Dense, error) {
	frame := m.XProcessed
	if frame == nil {
		frame = m.X
	}
	return denseFrom(frame)
}

// Target returns the dependent variables aligned with the processed rows.
func (m *PreparedMatrix) Target() (*mat.Dense, error) {
	if m.XProcessed == nil {
		return denseFrom(m.Y)
	}
	return denseFrom(m.Y.Subset(m.rows))
}

func denseFrom(frame *Frame) (*mat.Dense, error) {
	r, c := frame.Nrow(), frame.Ncol()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}

	data := make([]float64, r*c)
	for j, col := range frame.Columns() {
		if col.Kind != Numeric {
			return nil, crerr.Wrapf(ErrNonNumericMatrix, "column %q", col.Name)
		}
		for i, v := range col.Floats {
			data[i*c+j] = v
		}
	}
	return mat.NewDense(r, c, data), nil
}
