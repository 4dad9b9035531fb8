// Package deflate converts nominal monetary series into constant-price
// terms using a consumer price index series.
package deflate

import (
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// Series maps years to deflators relative to a base year:
// deflator(year) = CPI(base) / CPI(year). The base year's deflator is
// exactly 1.0, since x/x is exact in floating point for finite non-zero x.
type Series struct {
	baseYear int
	byYear   map[int]float64
}

// NewSeries builds a deflator series from CPI observations, one per year.
// The base year must be present; duplicate years are a precondition
// violation since the caller is expected to have filtered to a single
// reference month.
func NewSeries(observations []dataset.CPIObservation, baseYear int) (*Series, error) {
	index := make(map[int]float64, len(observations))
	for _, obs := range observations {
		if _, ok := index[obs.Year]; ok {
			return nil, ierrors.Newf(ierrors.CodePrecondition,
				"multiple CPI observations for year %d; filter to one reference month first", obs.Year)
		}
		if obs.Value <= 0 {
			return nil, ierrors.Newf(ierrors.CodePrecondition,
				"non-positive CPI value %v for year %d", obs.Value, obs.Year)
		}
		index[obs.Year] = obs.Value
	}

	base, ok := index[baseYear]
	if !ok {
		return nil, ierrors.Newf(ierrors.CodePrecondition,
			"base year %d not present in CPI series", baseYear)
	}

	byYear := make(map[int]float64, len(index))
	for year, value := range index {
		byYear[year] = base / value
	}
	return &Series{baseYear: baseYear, byYear: byYear}, nil
}

// BaseYear returns the base year of the series.
func (s *Series) BaseYear() int {
	return s.baseYear
}

// Deflator returns the deflator for year and whether the year is covered.
func (s *Series) Deflator(year int) (float64, bool) {
	d, ok := s.byYear[year]
	return d, ok
}

// Apply converts a nominal value for the given year into base-year prices.
// Years outside the series and missing nominals yield missing, not an
// error: the pay data may span years the CPI series does not cover.
func (s *Series) Apply(year int, nominal float64) float64 {
	if dataset.IsMissing(nominal) {
		return dataset.Missing()
	}
	d, ok := s.byYear[year]
	if !ok {
		return dataset.Missing()
	}
	return nominal * d
}

// DeflatePay returns a copy of the pay records with median salaries
// converted to base-year prices via a left join on year.
func DeflatePay(records []dataset.PayRecord, s *Series) []dataset.PayRecord {
	out := make([]dataset.PayRecord, len(records))
	for i, r := range records {
		r.MedianSalary = s.Apply(r.Year, r.MedianSalary)
		out[i] = r
	}
	return out
}
