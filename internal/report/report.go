// Package report formats regression results and legends for the console.
// The significance stars and R-squared bands are part of the observable
// contract of the analysis output and must not change.
package report

import (
	"fmt"
	"io"

	"cspspay/internal/dataset"
	"cspspay/internal/pivot"
	"cspspay/internal/regression"
)

// SignificanceStars returns the star marker for a p-value. Boundaries are
// strict: p equal to a threshold does not earn that threshold's stars.
func SignificanceStars(p float64) string {
	switch {
	case dataset.IsMissing(p):
		return ""
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	default:
		return ""
	}
}

// RSquaredBand names the strength band of an R-squared value. The interior
// boundaries are inclusive on the upper side: exactly 0.1 is weak, exactly
// 0.35 is moderate.
func RSquaredBand(r2 float64) string {
	switch {
	case dataset.IsMissing(r2) || r2 <= 0:
		return "none"
	case r2 <= 0.1:
		return "weak"
	case r2 <= 0.35:
		return "moderate"
	default:
		return "strong"
	}
}

// Sink writes formatted analysis output to a single destination.
type Sink struct {
	w io.Writer
}

// NewSink creates a report sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// SimpleOLS prints the results of one bivariate regression. Insufficient
// fits are reported as a skip, keeping the batch going.
func (s *Sink) SimpleOLS(yVar, xVar, description string, res regression.Result) {
	if res.Insufficient {
		s.InsufficientData(yVar, xVar, description)
		return
	}
	fmt.Fprintf(s.w, "Regression results for %s vs %s (%s):\n", yVar, xVar, description)
	fmt.Fprintf(s.w, "  R-squared: %.4f (%s)\n", res.RSquared, RSquaredBand(res.RSquared))
	fmt.Fprintf(s.w, "  P-value: %.4e %s\n", res.PValue, SignificanceStars(res.PValue))
	fmt.Fprintf(s.w, "  Equation: %s = %.4f + %.4f * %s\n", yVar, res.Intercept, res.Slope, xVar)
	fmt.Fprintf(s.w, "  Observations: %d\n\n", res.NObs)
}

// FixedEffects prints the results of one two-way fixed-effects regression.
func (s *Sink) FixedEffects(yVar, xVar, description string, res regression.FixedEffectsResult) {
	if res.Insufficient {
		s.InsufficientData(yVar, xVar, description)
		return
	}
	fmt.Fprintf(s.w, "Two-way fixed effects results for %s vs %s (%s):\n", yVar, xVar, description)
	fmt.Fprintf(s.w, "  Coefficient on %s: %.6f %s\n", xVar, res.Coefficient, SignificanceStars(res.PValue))
	fmt.Fprintf(s.w, "  Std. error: %.6f, t-statistic: %.4f, P-value: %.4e\n", res.StdErr, res.TStat, res.PValue)
	fmt.Fprintf(s.w, "  Within R-squared: %.4f (%s)\n", res.WithinR2, RSquaredBand(res.WithinR2))
	fmt.Fprintf(s.w, "  Observations: %d (%d entities, %d periods)\n\n", res.NObs, res.NEntities, res.NPeriods)
}

// InsufficientData reports a regression skipped for lack of valid pairs.
func (s *Sink) InsufficientData(yVar, xVar, description string) {
	fmt.Fprintf(s.w, "Insufficient data for regression: %s vs %s (%s)\n\n", yVar, xVar, description)
}

// Correlations prints one correlation per label, in the given label order.
func (s *Sink) Correlations(yVar, description string, labels []string, corr map[string]float64) {
	fmt.Fprintf(s.w, "Correlations with %s (%s):\n", yVar, description)
	for _, label := range labels {
		fmt.Fprintf(s.w, "  %s: %.4f\n", label, corr[label])
	}
	fmt.Fprintln(s.w)
}

// MissingValues lists the rows of a wide table with a missing value in the
// given column, so suppressed records are visible alongside the results.
func (s *Sink) MissingValues(t *pivot.WideTable, label, description string) {
	var printed bool
	for _, row := range t.Rows {
		if !dataset.IsMissing(row.Value(label)) {
			continue
		}
		if !printed {
			fmt.Fprintf(s.w, "Records with missing %s (%s):\n", label, description)
			printed = true
		}
		switch t.Axis {
		case pivot.AxisByOrganisation:
			fmt.Fprintf(s.w, "  %d\n", row.Year)
		case pivot.AxisByYear:
			fmt.Fprintf(s.w, "  %s\n", row.Organisation)
		default:
			fmt.Fprintf(s.w, "  %s, %d\n", row.Organisation, row.Year)
		}
	}
	if printed {
		fmt.Fprintln(s.w)
	}
}

// Legend prints the significance and R-squared threshold legends.
func (s *Sink) Legend() {
	fmt.Fprintln(s.w, "Significance levels:")
	fmt.Fprintln(s.w, "*** p < 0.001")
	fmt.Fprintln(s.w, "**  p < 0.01")
	fmt.Fprintln(s.w, "*   p < 0.05")
	fmt.Fprintln(s.w, "    p >= 0.05 (not significant)")
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, "R-squared thresholds:")
	fmt.Fprintln(s.w, "R-squared = 0 = none")
	fmt.Fprintln(s.w, "0 < R-squared <= 0.1 = weak")
	fmt.Fprintln(s.w, "0.1 < R-squared <= 0.35 = moderate")
	fmt.Fprintln(s.w, "R-squared > 0.35 = strong")
}
