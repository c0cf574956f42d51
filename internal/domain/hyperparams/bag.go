package hyperparams

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

// ErrUnknownAlphaMark marks a regularization slider position outside the mark table.
var ErrUnknownAlphaMark = crerr.New("unknown alpha mark")

const (
	MethodParametric    = "parametric"
	MethodDBSCAN        = "dbscan"
	MethodXThreshold    = "x_threshold"
	MethodContamination = "contamination"
)

// alphaMarks maps slider positions to regularization strengths.
var alphaMarks = map[float64]float64{
	-3:  0.001,
	-2:  0.01,
	-1:  0.1,
	0:   1,
	0.5: 5,
	1:   10,
	2:   100,
}

// AlphaMarks returns the slider positions in ascending order.
func AlphaMarks() []float64 {
	out := make([]float64, 0, len(alphaMarks))
	for mark := range alphaMarks {
		out = append(out, mark)
	}
	sort.Float64s(out)
	return out
}

// AlphaForMark resolves a slider position to its regularization strength.
func AlphaForMark(mark float64) (float64, error) {
	alpha, ok := alphaMarks[mark]
	if !ok {
		return 0, crerr.Wrapf(ErrUnknownAlphaMark, "mark %v", mark)
	}
	return alpha, nil
}

// Outlier holds outlier-detection settings. They are collected and never applied.
type Outlier struct {
	XAxisThreshold    float64  `json:"x_axis_threshold" validate:"gte=0,lte=4"`
	StdErrorThreshold float64  `json:"std_error_threshold" validate:"gte=0,lte=3"`
	DBSCANEps         float64  `json:"dbscan_eps" validate:"gte=0,lte=5"`
	DBSCANMinSamples  int      `json:"dbscan_min_samples" validate:"gte=0,lte=6"`
	Methods           []string `json:"methods" validate:"dive,oneof=parametric dbscan x_threshold contamination"`
}

// Bag is the hyperparameter set a modeling front-end collects. Alpha is derived from
// AlphaMark by Resolve.
type Bag struct {
	AlphaMark        float64 `json:"alpha_mark"`
	Alpha            float64 `json:"alpha"`
	L1Ratio          float64 `json:"l1_ratio" validate:"gte=0,lte=1"`
	PolynomialDegree int     `json:"polynomial_degree" validate:"gte=1,lte=10"`
	Outlier          Outlier `json:"outlier"`
}

func Default() Bag {
	return Bag{
		AlphaMark:        -2,
		Alpha:            0.01,
		L1Ratio:          0,
		PolynomialDegree: 3,
		Outlier: Outlier{
			XAxisThreshold:    1,
			StdErrorThreshold: 2,
			DBSCANEps:         2,
			DBSCANMinSamples:  2,
			Methods:           []string{MethodParametric, MethodContamination},
		},
	}
}

// Resolve sets Alpha from AlphaMark and removes duplicate methods, keeping the first
// occurrence.
func (b Bag) Resolve() (Bag, error) {
	alpha, err := AlphaForMark(b.AlphaMark)
	if err != nil {
		return Bag{}, err
	}
	b.Alpha = alpha

	seen := make(map[string]struct{}, len(b.Outlier.Methods))
	methods := make([]string, 0, len(b.Outlier.Methods))
	for _, m := range b.Outlier.Methods {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		methods = append(methods, m)
	}
	b.Outlier.Methods = methods
	return b, nil
}
