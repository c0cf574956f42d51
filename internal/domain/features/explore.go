package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PairView summarizes the relationship between two numeric columns. Defined is
// false when fewer than two complete rows exist or either column is constant; the
// statistics are zero in that case.
type PairView struct {
	X           string  `json:"x"`
	Y           string  `json:"y"`
	N           int     `json:"n"`
	Defined     bool    `json:"defined"`
	Correlation float64 `json:"correlation"`
	Intercept   float64 `json:"intercept"`
	Slope       float64 `json:"slope"`
}

// Exploration is a diagnostic view of a frame: a correlation matrix and a
// pairwise view over its numeric columns.
type Exploration struct {
	Title       string      `json:"title"`
	Rows        int         `json:"rows"`
	Columns     []string    `json:"columns"`
	Correlation [][]float64 `json:"correlation"`
	Pairs       []PairView  `json:"pairs"`
}

func Explore(frame *Frame, title string) Exploration {
	numeric := make([]Column, 0, frame.Ncol())
	for _, col := range frame.Columns() {
		if col.Kind == Numeric {
			numeric = append(numeric, col)
		}
	}

	out := Exploration{
		Title:       title,
		Rows:        frame.Nrow(),
		Columns:     make([]string, len(numeric)),
		Correlation: make([][]float64, len(numeric)),
	}
	for i, col := range numeric {
		out.Columns[i] = col.Name
		out.Correlation[i] = make([]float64, len(numeric))
		out.Correlation[i][i] = 1
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			pair := explorePair(numeric[i], numeric[j])
			out.Pairs = append(out.Pairs, pair)
			out.Correlation[i][j] = pair.Correlation
			out.Correlation[j][i] = pair.Correlation
		}
	}

	return out
}

func explorePair(a, b Column) PairView {
	xs := make([]float64, 0, len(a.Floats))
	ys := make([]float64, 0, len(b.Floats))
	for row := range a.Floats {
		if a.IsNull(row) || b.IsNull(row) {
			continue
		}
		xs = append(xs, a.Floats[row])
		ys = append(ys, b.Floats[row])
	}

	view := PairView{X: a.Name, Y: b.Name, N: len(xs)}
	if len(xs) < 2 || stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return view
	}

	corr := stat.Correlation(xs, ys, nil)
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(corr) || math.IsNaN(intercept) || math.IsNaN(slope) {
		return view
	}

	view.Defined = true
	view.Correlation = corr
	view.Intercept = intercept
	view.Slope = slope
	return view
}
