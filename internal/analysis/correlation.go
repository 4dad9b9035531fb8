package analysis

import (
	"github.com/montanaflynn/stats"

	"cspspay/internal/dataset"
	"cspspay/internal/pivot"
)

// Correlations computes the Pearson correlation of yLabel against each of
// xLabels across the table's rows, dropping pairs with a missing value.
// Labels with fewer than two valid pairs report missing.
func Correlations(t *pivot.WideTable, yLabel string, xLabels []string) map[string]float64 {
	ys := t.Column(yLabel)
	out := make(map[string]float64, len(xLabels))

	for _, xLabel := range xLabels {
		xs := t.Column(xLabel)
		var px, py []float64
		for i := range xs {
			if dataset.IsMissing(xs[i]) || dataset.IsMissing(ys[i]) {
				continue
			}
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
		if len(px) < 2 {
			out[xLabel] = dataset.Missing()
			continue
		}
		r, err := stats.Correlation(px, py)
		if err != nil {
			out[xLabel] = dataset.Missing()
			continue
		}
		out[xLabel] = r
	}
	return out
}
