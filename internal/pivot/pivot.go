// Package pivot reshapes filtered long-format records into wide per-entity
// or per-year feature tables: one row per key, one column per metric label.
package pivot

import (
	"fmt"
	"sort"

	"cspspay/internal/config"
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// Axis identifies the pivot key. The zero value is deliberately invalid:
// callers must choose an axis explicitly via one of the selector
// constructors.
type Axis int

const (
	axisUnset Axis = iota
	// AxisByOrganisation filters to named organisations and keys rows by Year.
	AxisByOrganisation
	// AxisByYear filters to given years and keys rows by Organisation.
	AxisByYear
	// AxisPanel keys rows by (Organisation, Year) without a primary filter.
	AxisPanel
)

func (a Axis) String() string {
	switch a {
	case AxisByOrganisation:
		return "by-organisation"
	case AxisByYear:
		return "by-year"
	case AxisPanel:
		return "panel"
	default:
		return "unset"
	}
}

// Selector is the tagged axis selection. Exactly one mode applies; a
// zero-value Selector is a usage error, never a silent default.
type Selector struct {
	axis          Axis
	organisations []string
	years         []int
}

// ByOrganisation selects rows for the named organisations and keys the
// result by Year.
func ByOrganisation(organisations ...string) Selector {
	return Selector{axis: AxisByOrganisation, organisations: organisations}
}

// ByYear selects rows for the given years and keys the result by
// Organisation.
func ByYear(years ...int) Selector {
	return Selector{axis: AxisByYear, years: years}
}

// Panel selects all rows and keys the result by (Organisation, Year).
func Panel() Selector {
	return Selector{axis: AxisPanel}
}

// Axis returns the selected axis.
func (s Selector) Axis() Axis {
	return s.axis
}

// LongRow is the pivot engine's long-format input: one metric value for one
// organisation and year.
type LongRow struct {
	Organisation string
	OrgType      string
	Year         int
	Label        string
	Value        float64
}

// FromSurvey adapts cleaned survey records to pivot input.
func FromSurvey(records []dataset.SurveyRecord) []LongRow {
	rows := make([]LongRow, len(records))
	for i, r := range records {
		rows[i] = LongRow{
			Organisation: r.Organisation,
			OrgType:      r.OrgType,
			Year:         r.Year,
			Label:        r.Label,
			Value:        r.Value,
		}
	}
	return rows
}

// FromPay adapts cleaned pay records to pivot input, exposing the median
// salary under its metric label.
func FromPay(records []dataset.PayRecord) []LongRow {
	rows := make([]LongRow, len(records))
	for i, r := range records {
		rows[i] = LongRow{
			Organisation: r.Organisation,
			OrgType:      r.OrgType,
			Year:         r.Year,
			Label:        config.MedianSalaryLabel,
			Value:        r.MedianSalary,
		}
	}
	return rows
}

// Options carries the secondary filters and column preservation flags.
// OrgTypeFilter admits rows whose type is listed or whose organisation is in
// IncludeOrgs; ExcludeOrgs is applied last and unconditionally.
type Options struct {
	OrgTypeFilter   []string
	IncludeOrgs     []string
	ExcludeOrgs     []string
	PreserveOrgType bool
}

// Row is one wide-table row. Organisation is set unless the axis is
// by-organisation; Year is set unless the axis is by-year. Values maps
// metric label to value; absent labels read as missing.
type Row struct {
	Organisation string
	Year         int
	OrgType      string
	Values       map[string]float64
}

// Value returns the value for label, or missing when absent.
func (r Row) Value(label string) float64 {
	if v, ok := r.Values[label]; ok {
		return v
	}
	return dataset.Missing()
}

// WideTable is the pivot output: rows keyed by the non-selected axis with
// one column per metric label seen in the input.
type WideTable struct {
	Axis   Axis
	Labels []string
	Rows   []Row
}

// Column returns the values of one label across all rows, in row order.
func (t *WideTable) Column(label string) []float64 {
	col := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row.Value(label)
	}
	return col
}

// Years returns the Year of each row, in row order.
func (t *WideTable) Years() []int {
	years := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		years[i] = row.Year
	}
	return years
}

// Organisations returns the Organisation of each row, in row order.
func (t *WideTable) Organisations() []string {
	orgs := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		orgs[i] = row.Organisation
	}
	return orgs
}

// Pivot filters rows per the selector and options, then spreads the label
// column into one wide column per distinct label. An empty post-filter
// result and duplicate (key, label) pairs are errors, never silent.
func Pivot(rows []LongRow, sel Selector, opts Options) (*WideTable, error) {
	if sel.axis == axisUnset {
		return nil, ierrors.New(ierrors.CodeUsage,
			"pivot axis not selected: use ByOrganisation, ByYear or Panel")
	}

	filtered := applyFilters(rows, sel, opts)
	if len(filtered) == 0 {
		return nil, ierrors.Newf(ierrors.CodeEmptyResult,
			"no rows left after filtering for %s pivot", sel.axis)
	}

	type key struct {
		org  string
		year int
	}

	byKey := make(map[key]*Row)
	var order []key
	labelSet := make(map[string]bool)
	var duplicates []string

	for _, r := range filtered {
		k := key{}
		switch sel.axis {
		case AxisByOrganisation:
			k.year = r.Year
		case AxisByYear:
			k.org = r.Organisation
		case AxisPanel:
			k.org = r.Organisation
			k.year = r.Year
		}

		row, ok := byKey[k]
		if !ok {
			row = &Row{
				Organisation: k.org,
				Year:         k.year,
				Values:       make(map[string]float64),
			}
			if opts.PreserveOrgType {
				row.OrgType = r.OrgType
			}
			byKey[k] = row
			order = append(order, k)
		}

		if _, exists := row.Values[r.Label]; exists {
			duplicates = append(duplicates, fmt.Sprintf("(%s, %d, %s)", r.Organisation, r.Year, r.Label))
			continue
		}
		row.Values[r.Label] = r.Value
		labelSet[r.Label] = true
	}

	if len(duplicates) > 0 {
		return nil, ierrors.NewWithDetails(ierrors.CodeDuplicateKey,
			"pivot input is not unique per (key, label)",
			ierrors.DuplicateKeys{Pairs: duplicates})
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].org != order[j].org {
			return order[i].org < order[j].org
		}
		return order[i].year < order[j].year
	})

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	table := &WideTable{Axis: sel.axis, Labels: labels}
	for _, k := range order {
		table.Rows = append(table.Rows, *byKey[k])
	}
	return table, nil
}

// Melt is the inverse reshape: it recovers the (key, label, value) triples
// of a wide table as long rows, omitting absent cells.
func Melt(t *WideTable) []LongRow {
	var rows []LongRow
	for _, row := range t.Rows {
		for _, label := range t.Labels {
			v, ok := row.Values[label]
			if !ok {
				continue
			}
			rows = append(rows, LongRow{
				Organisation: row.Organisation,
				OrgType:      row.OrgType,
				Year:         row.Year,
				Label:        label,
				Value:        v,
			})
		}
	}
	return rows
}

func applyFilters(rows []LongRow, sel Selector, opts Options) []LongRow {
	orgFilter := toSet(sel.organisations)
	yearFilter := make(map[int]bool, len(sel.years))
	for _, y := range sel.years {
		yearFilter[y] = true
	}
	types := toSet(opts.OrgTypeFilter)
	include := toSet(opts.IncludeOrgs)
	exclude := toSet(opts.ExcludeOrgs)

	out := make([]LongRow, 0, len(rows))
	for _, r := range rows {
		if sel.axis == AxisByOrganisation && !orgFilter[r.Organisation] {
			continue
		}
		if sel.axis == AxisByYear && !yearFilter[r.Year] {
			continue
		}
		if len(types) > 0 && !types[r.OrgType] && !include[r.Organisation] {
			continue
		}
		if exclude[r.Organisation] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
