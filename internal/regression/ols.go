// Package regression fits the statistical models of the analysis: simple
// bivariate OLS and two-way fixed-effects panel regressions. Both
// estimators are stateless pure functions of their input.
package regression

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"cspspay/internal/dataset"
)

// Result holds the statistics of a fitted bivariate OLS model. When fewer
// than two valid paired observations remain after missing-value removal,
// Insufficient is true and the coefficients are meaningless.
type Result struct {
	Intercept    float64
	Slope        float64
	RSquared     float64
	PValue       float64
	NObs         int
	Insufficient bool
}

// SimpleOLS fits y = a + b*x by ordinary least squares with an intercept,
// after dropping pairs where either value is missing. The p-value is the
// F-test of overall model significance.
func SimpleOLS(x, y []float64) Result {
	xs, ys := dropMissingPairs(x, y)
	n := len(xs)
	if n < 2 {
		return Result{NObs: n, Insufficient: true}
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)

	return Result{
		Intercept: intercept,
		Slope:     slope,
		RSquared:  r2,
		PValue:    fTestPValue(r2, n),
		NObs:      n,
	}
}

// fTestPValue computes the p-value of the overall F test for a
// single-predictor model: F = R²/(1-R²) * (n-2) on (1, n-2) degrees of
// freedom. With no residual degrees of freedom the test is undefined and
// the p-value is missing.
func fTestPValue(r2 float64, n int) float64 {
	df2 := n - 2
	if df2 < 1 {
		return dataset.Missing()
	}
	if r2 >= 1 {
		return 0
	}
	if r2 <= 0 {
		return 1
	}
	f := r2 / (1 - r2) * float64(df2)
	dist := distuv.F{D1: 1, D2: float64(df2)}
	return dist.Survival(f)
}

// dropMissingPairs returns the subset of (x, y) pairs where both values are
// present. Slices of unequal length are truncated to the shorter.
func dropMissingPairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if dataset.IsMissing(x[i]) || dataset.IsMissing(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// BestFitLine returns two points spanning the fitted line over the observed
// x range, for plotting. ok is false when the fit was insufficient.
func BestFitLine(x []float64, res Result) (x0, y0, x1, y1 float64, ok bool) {
	if res.Insufficient {
		return 0, 0, 0, 0, false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range x {
		if dataset.IsMissing(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 0, 0, 0, false
	}
	return lo, res.Intercept + res.Slope*lo, hi, res.Intercept + res.Slope*hi, true
}
