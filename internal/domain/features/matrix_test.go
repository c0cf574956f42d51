package features

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func valueFrame(t *testing.T) *Frame {
	t.Helper()

	return mustFrame(t,
		CategoricalColumn("player_name", []string{"Salah", "Kane", "Robertson", "Alisson", "Son"}),
		NumericColumn("xG", []float64{0.9, 0.7, 0.1, 0, 0.4}),
		NumericColumn("xA", []float64{0.3, 0.2, 0.4, 0, 0.3}),
		NumericColumn("xP", []float64{6.1, 5.2, 4.3, 3.9, 4.8}),
		NumericColumn("key_passes", []float64{3, 1, 2, 0, 2}),
		NumericColumn("xGChain", []float64{1.2, 0.8, 0.6, 0, 0.7}),
		NumericColumn("creativity", []float64{40, 12, 33, 0, 25}),
		NumericColumn("influence", []float64{60, 45, 20, 10, 30}),
		NumericColumn("threat", []float64{80, 70, 10, 0, 50}),
		CategoricalColumn("team", []string{"Liverpool", "Spurs", "Liverpool", "Liverpool", "Spurs"}),
		CategoricalColumn("opposition_team", []string{"Norwich", "Man City", "Norwich", "Norwich", "Man City"}),
		CategoricalColumn(ColumnPosition, []string{"MID", "FWD", "DEF", "GK", "MID"}),
		NumericColumn("total_points", []float64{13, 2, 6, 6, 5}),
	)
}

func TestClean_ProjectsAndExcludesPositions(t *testing.T) {
	t.Parallel()

	model := NewValueModel()
	cleaned, err := model.Clean(valueFrame(t))
	require.NoError(t, err)

	require.Equal(t, model.Spec().Columns(), cleaned.Names())
	require.Equal(t, 3, cleaned.Nrow())

	pos, _ := cleaned.Column(ColumnPosition)
	require.Equal(t, []string{"MID", "FWD", "MID"}, pos.Labels)
}

func TestClean_UnknownColumnFails(t *testing.T) {
	t.Parallel()

	_, err := Clean(valueFrame(t), VariableSpec{Independent: []string{"npxG"}, Dependent: []string{"total_points"}})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestRun_ValueModel(t *testing.T) {
	t.Parallel()

	result, err := Run(NewValueModel(), valueFrame(t), true)
	require.NoError(t, err)

	titles := make([]string, 0, len(result.Explorations))
	for _, exp := range result.Explorations {
		titles = append(titles, exp.Title)
	}
	require.Equal(t, []string{"FWD", "MID", "Overall"}, titles)

	matrix := result.Matrix
	require.Equal(t, StageScaled, matrix.Stage())
	require.Equal(t, []string{
		"xG", "xA", "xP", "key_passes", "xGChain", "creativity", "influence", "threat",
		"team_1", "team_2", "opposition_team_1", "opposition_team_2", "position_1", "position_2",
	}, matrix.XProcessed.Names())

	design, err := matrix.DesignMatrix()
	require.NoError(t, err)
	rows, cols := design.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 14, cols)

	target, err := matrix.Target()
	require.NoError(t, err)
	require.Equal(t, []float64{13, 2, 5}, []float64{target.At(0, 0), target.At(1, 0), target.At(2, 0)})
}

func TestValueModel_ExploreSkipsMissingPositions(t *testing.T) {
	t.Parallel()

	cleaned := mustFrame(t,
		NumericColumn("xG", []float64{0.9, 0.2, 0.7, 0.1}),
		NumericColumn("total_points", []float64{13, 2, 6, 1}),
		CategoricalColumn(ColumnPosition, []string{"MID", "", "FWD", ""}),
	)

	exps := NewValueModel().Explore(cleaned)
	titles := make([]string, 0, len(exps))
	for _, exp := range exps {
		titles = append(titles, exp.Title)
	}
	require.Equal(t, []string{"FWD", "MID", "Overall"}, titles)
	require.Equal(t, 4, exps[2].Rows)

	exps = NewValueModel().Explore(mustFrame(t,
		NumericColumn("xG", []float64{0.9, 0.2}),
		CategoricalColumn(ColumnPosition, []string{"", ""}),
	))
	require.Len(t, exps, 1)
	require.Equal(t, "Overall", exps[0].Title)
}

func TestPreparedMatrix_ForceOverwriteScalesOriginal(t *testing.T) {
	t.Parallel()

	cleaned := mustFrame(t,
		NumericColumn("xG", []float64{1, 2, 3}),
		CategoricalColumn("team", []string{"A", "B", "A"}),
		NumericColumn("total_points", []float64{1, 2, 3}),
	)
	matrix, err := NewPreparedMatrix(cleaned, VariableSpec{Independent: []string{"xG", "team"}, Dependent: []string{"total_points"}})
	require.NoError(t, err)
	require.Equal(t, StageRaw, matrix.Stage())

	_, err = matrix.EncodeCategoricals(false)
	require.NoError(t, err)
	_, err = matrix.Scale(false, false)
	require.NoError(t, err)
	require.Equal(t, StageScaled, matrix.Stage())

	// The fitted scaler covers the encoded columns, so rescaling the raw input
	// needs a refit.
	_, err = matrix.Scale(false, true)
	require.ErrorIs(t, err, ErrScalerColumnMismatch)

	out, err := matrix.Scale(true, true)
	require.NoError(t, err)
	require.Equal(t, []string{"xG", "team"}, out.Names())

	_, err = matrix.DesignMatrix()
	require.ErrorIs(t, err, ErrNonNumericMatrix)

	xg, _ := out.Column("xG")
	require.InDelta(t, -math.Sqrt(1.5), xg.Floats[0], 1e-12)
}

func orderFrame(t *testing.T) *Frame {
	t.Helper()

	return mustFrame(t,
		NumericColumn("xG", []float64{1, 2, 3}),
		CategoricalColumn("team", []string{"A", "B", "A"}),
		NumericColumn("xA", []float64{0, 0, 3}),
		NumericColumn("total_points", []float64{10, 20, 30}),
	)
}

var orderSpec = VariableSpec{Independent: []string{"xG", "team", "xA"}, Dependent: []string{"total_points"}}

func TestPreparedMatrix_ScaleThenEncode(t *testing.T) {
	t.Parallel()

	matrix, err := NewPreparedMatrix(orderFrame(t), orderSpec)
	require.NoError(t, err)

	_, err = matrix.Scale(false, false)
	require.NoError(t, err)
	require.True(t, matrix.Scaled())
	require.False(t, matrix.Encoded())

	out, err := matrix.EncodeCategoricals(false)
	require.NoError(t, err)
	require.True(t, matrix.Scaled())
	require.True(t, matrix.Encoded())
	require.Equal(t, StageScaled, matrix.Stage())
	require.Equal(t, []string{"xG", "team_1", "team_2", "xA"}, out.Names())

	xg, _ := out.Column("xG")
	require.InDelta(t, -math.Sqrt(1.5), xg.Floats[0], 1e-12)
	team, _ := out.Column("team_1")
	require.Equal(t, []float64{1, 0, 1}, team.Floats)

	design, err := matrix.DesignMatrix()
	require.NoError(t, err)
	rows, cols := design.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 4, cols)

	target, err := matrix.Target()
	require.NoError(t, err)
	require.Equal(t, []float64{10, 20, 30}, []float64{target.At(0, 0), target.At(1, 0), target.At(2, 0)})
}

func TestPreparedMatrix_EncodeAfterOverwriteScale(t *testing.T) {
	t.Parallel()

	matrix, err := NewPreparedMatrix(orderFrame(t), orderSpec)
	require.NoError(t, err)

	_, err = matrix.EncodeCategoricals(false)
	require.NoError(t, err)
	encoder := matrix.Encoder

	out, err := matrix.Scale(true, true)
	require.NoError(t, err)
	require.False(t, matrix.Encoded())
	require.True(t, matrix.Scaled())
	require.Equal(t, []string{"xG", "team", "xA"}, out.Names())

	out, err = matrix.EncodeCategoricals(false)
	require.NoError(t, err)
	require.Same(t, encoder, matrix.Encoder)
	require.True(t, matrix.Encoded())
	require.True(t, matrix.Scaled())
	require.Equal(t, []string{"xG", "team_1", "team_2", "xA"}, out.Names())

	xg, _ := out.Column("xG")
	require.InDelta(t, -math.Sqrt(1.5), xg.Floats[0], 1e-12)

	design, err := matrix.DesignMatrix()
	require.NoError(t, err)
	_, cols := design.Dims()
	require.Equal(t, 4, cols)
}

func TestPreparedMatrix_ScaleThenEncodeKeepsTargetAligned(t *testing.T) {
	t.Parallel()

	cleaned := mustFrame(t,
		NumericColumn("xG", []float64{1, math.NaN(), 3, 5}),
		NumericColumn("xA", []float64{0.5, math.NaN(), 0.1, 0.3}),
		NumericColumn("total_points", []float64{10, 20, 30, 40}),
	)
	matrix, err := NewPreparedMatrix(cleaned, VariableSpec{Independent: []string{"xG", "xA"}, Dependent: []string{"total_points"}})
	require.NoError(t, err)

	_, err = matrix.Scale(false, false)
	require.NoError(t, err)
	out, err := matrix.EncodeCategoricals(false)
	require.NoError(t, err)
	require.Equal(t, 3, out.Nrow())

	target, err := matrix.Target()
	require.NoError(t, err)
	rows, _ := target.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, []float64{10, 30, 40}, []float64{target.At(0, 0), target.At(1, 0), target.At(2, 0)})
}

func TestExplore_CorrelationAndPairs(t *testing.T) {
	t.Parallel()

	exp := Explore(mustFrame(t,
		NumericColumn("a", []float64{1, 2, 3, 4}),
		NumericColumn("b", []float64{2, 4, 6, 8}),
		NumericColumn("c", []float64{5, 5, 5, 5}),
		CategoricalColumn("team", []string{"A", "B", "A", "B"}),
	), "Overall")

	require.Equal(t, []string{"a", "b", "c"}, exp.Columns)
	require.InDelta(t, 1.0, exp.Correlation[0][1], 1e-12)
	require.Len(t, exp.Pairs, 3)

	ab := exp.Pairs[0]
	require.True(t, ab.Defined)
	require.InDelta(t, 2.0, ab.Slope, 1e-12)
	require.InDelta(t, 0.0, ab.Intercept, 1e-12)

	ac := exp.Pairs[1]
	require.False(t, ac.Defined)
	require.Equal(t, 0.0, exp.Correlation[0][2])
}
