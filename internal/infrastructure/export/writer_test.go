package export

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-superset/internal/domain/features"
	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

func sampleTable() superset.Table {
	day := time.Date(2020, time.September, 12, 0, 0, 0, 0, time.UTC)
	return superset.Table{Season: "2020-21", Rows: []superset.Row{
		{PlayerID: 4, PlayerName: "Pierre-Emerick Aubameyang", Round: 1, FixtureID: 2, Team: "Arsenal", OppositionTeam: "Fulham", Position: "FWD", Date: day, Stats: superset.PrimaryStats{Value: 12, TotalPoints: 8}},
		{PlayerID: 9, PlayerName: "Aleksandar Mitrovic", Round: 1, FixtureID: 2, Team: "Fulham", OppositionTeam: "Arsenal", Position: "FWD", Date: day, Stats: superset.PrimaryStats{Value: 6, TotalPoints: 1}},
	}}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatCSV},
		{in: "CSV", want: FormatCSV},
		{in: " json ", want: FormatJSON},
		{in: "parquet", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrUnsupportedFormat)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestWriter_WriteTableCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := NewWriter(dir, logging.NewNop())

	path, err := writer.WriteTable(context.Background(), sampleTable(), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "2020-21", "superset.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	require.NoError(t, df.Err)
	require.Equal(t, 2, df.Nrow())
	require.Equal(t, len(superset.Columns()), df.Ncol())
	require.Equal(t, []string{"Arsenal", "Fulham"}, df.Col("team").Records())
	require.Equal(t, []string{"Fulham", "Arsenal"}, df.Col("opposition_team").Records())
	require.Equal(t, []string{"12", "6"}, df.Col("value").Records())
}

func TestWriter_WriteTableCSV_EmptyTableKeepsHeader(t *testing.T) {
	t.Parallel()

	writer := NewWriter(t.TempDir(), logging.NewNop())
	path, err := writer.WriteTable(context.Background(), superset.Table{Season: "2020-21"}, FormatCSV)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "player_id,"))
}

func TestWriter_WriteTableJSON(t *testing.T) {
	t.Parallel()

	writer := NewWriter(t.TempDir(), logging.NewNop())
	path, err := writer.WriteTable(context.Background(), sampleTable(), FormatJSON)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &rows))
	require.Len(t, rows, 2)
	require.Equal(t, "Pierre-Emerick Aubameyang", rows[0]["player_name"])
	require.InDelta(t, 8, rows[0]["total_points"], 1e-9)
	require.Equal(t, "2020-09-12", rows[0]["date"])
}

func TestWriter_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	writer := NewWriter(t.TempDir(), logging.NewNop())
	_, err := writer.WriteTable(context.Background(), superset.Table{Season: "../etc"}, FormatCSV)
	require.Error(t, err)
}

func TestWriter_WriteMatrix(t *testing.T) {
	t.Parallel()

	cleaned, err := features.NewFrame(
		features.NumericColumn("xG", []float64{1, 2, 3}),
		features.CategoricalColumn("team", []string{"Arsenal", "Fulham", "Arsenal"}),
		features.NumericColumn("total_points", []float64{2, 5, 9}),
	)
	require.NoError(t, err)
	matrix, err := features.NewPreparedMatrix(cleaned, features.VariableSpec{
		Independent: []string{"xG", "team"},
		Dependent:   []string{"total_points"},
	})
	require.NoError(t, err)
	_, err = matrix.EncodeCategoricals(false)
	require.NoError(t, err)

	writer := NewWriter(t.TempDir(), logging.NewNop())
	path, err := writer.WriteMatrix(context.Background(), "2020-21", "value", matrix)
	require.NoError(t, err)
	require.Equal(t, "value_design.csv", filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasSuffix(lines[0], ",total_points"))
	require.True(t, strings.HasSuffix(lines[3], ",9"))
}

func TestWriter_WriteMatrix_MissingValuesAreEmpty(t *testing.T) {
	t.Parallel()

	cleaned, err := features.NewFrame(
		features.NumericColumn("xG", []float64{1, 2, 3}),
		features.NumericColumn("xP", []float64{math.NaN(), 4, math.NaN()}),
		features.NumericColumn("total_points", []float64{2, 5, 9}),
	)
	require.NoError(t, err)
	matrix, err := features.NewPreparedMatrix(cleaned, features.VariableSpec{
		Independent: []string{"xG", "xP"},
		Dependent:   []string{"total_points"},
	})
	require.NoError(t, err)

	writer := NewWriter(t.TempDir(), logging.NewNop())
	path, err := writer.WriteMatrix(context.Background(), "2020-21", "value", matrix)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "NaN")
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Equal(t, []string{"xG,xP,total_points", "1,,2", "2,4,5", "3,,9"}, lines)
}

func TestWriter_WriteMatrix_RawCategoricalsFail(t *testing.T) {
	t.Parallel()

	cleaned, err := features.NewFrame(
		features.CategoricalColumn("team", []string{"Arsenal", "Fulham"}),
		features.NumericColumn("total_points", []float64{2, 5}),
	)
	require.NoError(t, err)
	matrix, err := features.NewPreparedMatrix(cleaned, features.VariableSpec{
		Independent: []string{"team"},
		Dependent:   []string{"total_points"},
	})
	require.NoError(t, err)

	writer := NewWriter(t.TempDir(), logging.NewNop())
	_, err = writer.WriteMatrix(context.Background(), "2020-21", "value", matrix)
	require.ErrorIs(t, err, features.ErrNonNumericMatrix)
}
