package csvfile

import (
	"bytes"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var nullTokens = map[string]struct{}{
	"":     {},
	"NaN":  {},
	"nan":  {},
	"NA":   {},
	"None": {},
	"null": {},
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// table is a string view of one CSV file. Header names are trimmed.
type table struct {
	path   string
	header map[string]int
	rows   [][]string
}

func readTable(path string) (table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return table{}, err
	}

	out := table{path: path, header: map[string]int{}}
	if countLines(data) < 2 {
		return out, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return table{}, crerr.Wrapf(df.Err, "read csv %s", path)
	}

	records := df.Records()
	for i, name := range records[0] {
		out.header[strings.TrimSpace(name)] = i
	}
	out.rows = records[1:]
	return out, nil
}

func countLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

func (t table) len() int {
	return len(t.rows)
}

func (t table) require(columns ...string) error {
	if len(t.rows) == 0 {
		return nil
	}
	for _, c := range columns {
		if _, ok := t.header[c]; !ok {
			return crerr.Newf("%s: missing column %q", t.path, c)
		}
	}
	return nil
}

func (t table) text(row int, column string) string {
	i, ok := t.header[column]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	v := strings.TrimSpace(t.rows[row][i])
	if _, null := nullTokens[v]; null {
		return ""
	}
	return v
}

func (t table) number(row int, column string) float64 {
	v := t.text(row, column)
	if v == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (t table) integer(row int, column string) (int, bool) {
	f := t.number(row, column)
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// flag parses a boolean cell. ok is false for blank or unrecognized values.
func (t table) flag(row int, column string) (value, ok bool) {
	switch strings.ToLower(t.text(row, column)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

func (t table) timestamp(row int, column string) time.Time {
	v := t.text(row, column)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
