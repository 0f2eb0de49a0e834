package profiling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation is a Pearson correlation with its two-sided significance
type Correlation struct {
	R        float64 `json:"r"`
	PValue   float64 `json:"p_value"`
	N        int     `json:"n"`
	Strength string  `json:"strength"`
}

// Direction is "positive" or "negative"
func (c Correlation) Direction() string {
	if c.R < 0 {
		return "negative"
	}
	return "positive"
}

// Significant reports p < alpha
func (c Correlation) Significant(alpha float64) bool {
	return c.PValue < alpha
}

// Correlate computes Pearson's r over the pairs where both values are present.
func Correlate(x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("length mismatch: %d vs %d", len(x), len(y))
	}

	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	n := len(xs)
	if n < 3 {
		return Correlation{N: n}, fmt.Errorf("need at least 3 complete pairs, have %d", n)
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return Correlation{N: n}, fmt.Errorf("correlation undefined for a constant column")
	}

	return Correlation{
		R:        r,
		PValue:   pValue(r, n),
		N:        n,
		Strength: strength(r),
	}, nil
}

// pValue is the two-sided p-value of r under a Student's t with n-2 degrees of freedom
func pValue(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - dist.CDF(math.Abs(t)))
}

func strength(r float64) string {
	switch a := math.Abs(r); {
	case a >= 0.7:
		return "strong"
	case a >= 0.3:
		return "moderate"
	default:
		return "weak"
	}
}
