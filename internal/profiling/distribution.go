package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ColumnSummary describes one numeric column
type ColumnSummary struct {
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
}

// Summarize computes summary statistics over the non-NaN values.
// It fails when no value is left.
func Summarize(values []float64) (ColumnSummary, error) {
	data, missing := dropNaN(values)
	summary := ColumnSummary{Count: len(data), Missing: missing}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.StdDev, err = stats.StandardDeviation(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	if summary.Q25, err = stats.Percentile(data, 25); err != nil {
		return summary, err
	}
	if summary.Q75, err = stats.Percentile(data, 75); err != nil {
		return summary, err
	}
	summary.Skewness = calculateSkewness(data, summary.Mean, summary.StdDev)

	return summary, nil
}

func dropNaN(values []float64) ([]float64, int) {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	return data, len(values) - len(data)
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n
	return skewness * math.Sqrt(n*(n-1)) / (n - 2)
}
