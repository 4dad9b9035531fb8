// Package cleaning projects raw long-format datasets down to the rows and
// columns the analysis needs: section/grade projection, year bounds, drop
// lists and numeric coercion. Every function returns a new slice and never
// mutates its input.
package cleaning

import (
	"strconv"
	"strings"

	"cspspay/internal/dataset"
)

// SurveyFilter configures EditSurvey. A zero MinYear or MaxYear leaves that
// bound open; the two bounds apply independently.
type SurveyFilter struct {
	DeptGroupsToDrop []string
	OrgsToDrop       []string
	MinYear          int
	MaxYear          int
}

// PayFilter configures EditPay. TargetGrade selects the single grade band
// analysed; year bounds behave as in SurveyFilter.
type PayFilter struct {
	TargetGrade      string
	DeptGroupsToDrop []string
	OrgsToDrop       []string
	MinYear          int
	MaxYear          int
}

// EditSurvey restricts records to the engagement-index and theme-score
// sections, then applies the drop lists and year bounds.
func EditSurvey(records []dataset.SurveyRecord, f SurveyFilter) []dataset.SurveyRecord {
	groups := toSet(f.DeptGroupsToDrop)
	orgs := toSet(f.OrgsToDrop)

	out := make([]dataset.SurveyRecord, 0, len(records))
	for _, r := range records {
		if r.Section != dataset.SectionEngagementIndex && r.Section != dataset.SectionThemeScores {
			continue
		}
		if !yearInBounds(r.Year, f.MinYear, f.MaxYear) {
			continue
		}
		if groups[r.DeptGroup] || orgs[r.Organisation] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// EditPay restricts records to the target grade band, then applies the drop
// lists and year bounds.
func EditPay(records []dataset.PayRecord, f PayFilter) []dataset.PayRecord {
	groups := toSet(f.DeptGroupsToDrop)
	orgs := toSet(f.OrgsToDrop)

	out := make([]dataset.PayRecord, 0, len(records))
	for _, r := range records {
		if f.TargetGrade != "" && r.Grade != f.TargetGrade {
			continue
		}
		if !yearInBounds(r.Year, f.MinYear, f.MaxYear) {
			continue
		}
		if groups[r.DeptGroup] || orgs[r.Organisation] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ParseNumeric coerces a cell value to float64. Blank cells and any of the
// sentinel tokens parse to missing; anything else must be a number.
func ParseNumeric(cell string, sentinels []string) (float64, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return dataset.Missing(), nil
	}
	for _, s := range sentinels {
		if trimmed == s {
			return dataset.Missing(), nil
		}
	}
	// Thousands separators appear in some exported cells.
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	return strconv.ParseFloat(trimmed, 64)
}

// ParseYear coerces a cell value to an integer year. Some exports carry
// years as floats ("2024.0").
func ParseYear(cell string) (int, error) {
	trimmed := strings.TrimSpace(cell)
	if year, err := strconv.Atoi(trimmed); err == nil {
		return year, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func yearInBounds(year, min, max int) bool {
	if min != 0 && year < min {
		return false
	}
	if max != 0 && year > max {
		return false
	}
	return true
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
