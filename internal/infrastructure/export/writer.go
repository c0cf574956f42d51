// Package export writes reconciled season tables and prepared design matrices to
// flat files under a per-season directory.
package export

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/fpl-superset/internal/domain/features"
	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

var ErrUnsupportedFormat = crerr.New("unsupported export format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", crerr.Wrapf(ErrUnsupportedFormat, "format %q", raw)
	}
}

type Writer struct {
	dir    string
	logger *logging.Logger
}

func NewWriter(dir string, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// WriteTable writes <dir>/<season>/superset.<format> and returns its path.
func (w *Writer) WriteTable(ctx context.Context, table superset.Table, format Format) (string, error) {
	path, err := w.path(table.Season, "superset."+string(format))
	if err != nil {
		return "", err
	}

	switch format {
	case FormatCSV:
		err = writeRecordsCSV(path, table.Records())
	case FormatJSON:
		err = writeTableJSON(path, table)
	default:
		return "", crerr.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}
	if err != nil {
		return "", err
	}

	w.logger.InfoContext(ctx, "superset exported", "season", table.Season, "rows", table.Len(), "format", string(format), "path", path)
	return path, nil
}

// WriteMatrix writes the processed design matrix with its aligned targets to
// <dir>/<season>/<model>_design.csv.
func (w *Writer) WriteMatrix(ctx context.Context, season, model string, matrix *features.PreparedMatrix) (string, error) {
	if matrix == nil {
		return "", crerr.New("matrix is nil")
	}
	x, err := matrix.DesignMatrix()
	if err != nil {
		return "", crerr.Wrap(err, "design matrix")
	}
	y, err := matrix.Target()
	if err != nil {
		return "", crerr.Wrap(err, "target")
	}

	processed := matrix.XProcessed
	if processed == nil {
		processed = matrix.X
	}
	header := append(processed.Names(), matrix.Y.Names()...)

	rows, xCols := x.Dims()
	_, yCols := y.Dims()
	records := make([][]string, 0, rows+1)
	records = append(records, header)
	for i := 0; i < rows; i++ {
		record := make([]string, 0, xCols+yCols)
		for j := 0; j < xCols; j++ {
			record = append(record, formatCell(x.At(i, j)))
		}
		for j := 0; j < yCols; j++ {
			record = append(record, formatCell(y.At(i, j)))
		}
		records = append(records, record)
	}

	path, err := w.path(season, model+"_design.csv")
	if err != nil {
		return "", err
	}
	if err := writeRecordsCSV(path, records); err != nil {
		return "", err
	}

	w.logger.InfoContext(ctx, "design matrix exported", "season", season, "model", model, "rows", rows, "columns", xCols, "path", path)
	return path, nil
}

// formatCell renders a matrix value. Missing values are written as empty cells.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (w *Writer) path(season, name string) (string, error) {
	season = strings.TrimSpace(season)
	if season == "" || strings.ContainsAny(season, `/\`) || strings.Contains(season, "..") {
		return "", crerr.Newf("invalid season %q", season)
	}
	dir := filepath.Join(w.dir, season)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crerr.Wrapf(err, "create %s", dir)
	}
	return filepath.Join(dir, name), nil
}

func writeRecordsCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return crerr.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	// gota cannot load a header without rows.
	if len(records) < 2 {
		if len(records) == 1 {
			_, err = f.WriteString(strings.Join(records[0], ",") + "\n")
		}
		return crerr.Wrapf(err, "write %s", path)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return crerr.Wrapf(df.Err, "frame %s", path)
	}
	if err := df.WriteCSV(f); err != nil {
		return crerr.Wrapf(err, "write %s", path)
	}
	return f.Sync()
}

// writeTableJSON emits one object per row. Missing numeric cells are null.
func writeTableJSON(path string, table superset.Table) error {
	columns := superset.Columns()
	rows := make([]map[string]any, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := make(map[string]any, len(columns))
		for _, col := range columns {
			v, err := table.Value(i, col.Name)
			if err != nil {
				return crerr.Wrapf(err, "row %d", i)
			}
			row[col.Name] = v
		}
		rows = append(rows, row)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(rows); err != nil {
		return crerr.Wrap(err, "encode rows")
	}
	if err := os.WriteFile(path, buf.B, 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", path)
	}
	return nil
}
