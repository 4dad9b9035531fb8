// Package validation checks that a raw dataset meets the assumptions the
// rest of the pipeline relies on. Each check aggregates every failure in its
// category into one structured error, so a single failed run names
// everything that is missing.
package validation

import (
	"errors"
	"fmt"

	"cspspay/internal/config"
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// SurveyExpectations describes what a survey dataset must contain before it
// can be cleaned and analysed.
type SurveyExpectations struct {
	MinYear     int
	MaxYear     int
	MeanMinYear int

	DeptGroupsToDrop []string
	OrgsToDrop       []string
	DeptOnly         config.Conditions

	MedianOrganisation string
	MeanOrganisation   string

	EEILabel    string
	ThemeLabels []string

	// Renames is the side's canonicalisation map. Rule organisations may be
	// written in canonical spelling; they count as present when a raw name
	// renames to them.
	Renames map[string]string
}

// CheckSurvey validates the raw survey dataset against exp. The returned
// error joins one structured error per failed category.
func CheckSurvey(records []dataset.SurveyRecord, exp SurveyExpectations) error {
	var problems []error

	if err := checkYearCoverage(dataset.SurveyYears(records), exp.MinYear, exp.MaxYear); err != nil {
		problems = append(problems, err)
	}

	groups := make(map[string]bool)
	orgs := make(map[string]bool)
	orgTypes := make(map[string]bool)
	for _, r := range records {
		groups[r.DeptGroup] = true
		orgs[r.Organisation] = true
		orgTypes[r.OrgType] = true
		if canonical, ok := exp.Renames[r.Organisation]; ok {
			orgs[canonical] = true
		}
	}

	if missing := absentFrom(groups, exp.DeptGroupsToDrop); len(missing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"departmental groups to drop are not all present",
			ierrors.MissingItems{Category: "departmental groups", Items: missing}))
	}
	if missing := absentFrom(orgs, exp.OrgsToDrop); len(missing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"organisations to drop are not all present",
			ierrors.MissingItems{Category: "organisations", Items: missing}))
	}
	if missing := absentFrom(orgTypes, exp.DeptOnly.OrgTypeFilter); len(missing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"organisation types for the department-only analysis are not all present",
			ierrors.MissingItems{Category: "organisation types", Items: missing}))
	}
	ruleOrgs := append(append([]string{}, exp.DeptOnly.IncludeOrgs...), exp.DeptOnly.ExcludeOrgs...)
	if missing := absentFrom(orgs, ruleOrgs); len(missing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"organisations for the department-only analysis are not all present",
			ierrors.MissingItems{Category: "organisations", Items: missing}))
	}

	orgsByYear := make(map[int]map[string]bool)
	labelsByYear := make(map[int]map[string]bool)
	for _, r := range records {
		if orgsByYear[r.Year] == nil {
			orgsByYear[r.Year] = make(map[string]bool)
			labelsByYear[r.Year] = make(map[string]bool)
		}
		orgsByYear[r.Year][r.Organisation] = true
		labelsByYear[r.Year][r.Label] = true
	}

	var medianMissing, meanMissing []int
	for year := exp.MinYear; year <= exp.MaxYear; year++ {
		if !orgsByYear[year][exp.MedianOrganisation] {
			medianMissing = append(medianMissing, year)
		}
		if year >= exp.MeanMinYear && !orgsByYear[year][exp.MeanOrganisation] {
			meanMissing = append(meanMissing, year)
		}
	}
	if len(medianMissing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"median benchmark missing for some years",
			ierrors.MissingYears{Item: exp.MedianOrganisation, Years: medianMissing}))
	}
	if len(meanMissing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"mean benchmark missing for some years",
			ierrors.MissingYears{Item: exp.MeanOrganisation, Years: meanMissing}))
	}

	required := append([]string{exp.EEILabel}, exp.ThemeLabels...)
	var labelProblems []ierrors.MissingLabels
	for year := exp.MinYear; year <= exp.MaxYear; year++ {
		var missing []string
		for _, label := range required {
			if !labelsByYear[year][label] {
				missing = append(missing, label)
			}
		}
		if len(missing) > 0 {
			labelProblems = append(labelProblems, ierrors.MissingLabels{Year: year, Labels: missing})
		}
	}
	if len(labelProblems) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"EEI and theme score labels missing for some years", labelProblems))
	}

	return errors.Join(problems...)
}

func checkYearCoverage(present []int, minYear, maxYear int) error {
	seen := make(map[int]bool, len(present))
	for _, y := range present {
		seen[y] = true
	}
	var missing []int
	for year := minYear; year <= maxYear; year++ {
		if !seen[year] {
			missing = append(missing, year)
		}
	}
	if len(missing) > 0 {
		return ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			fmt.Sprintf("not all years in [%d, %d] are present", minYear, maxYear),
			ierrors.MissingYears{Item: "dataset", Years: missing})
	}
	return nil
}

func absentFrom(present map[string]bool, wanted []string) []string {
	var missing []string
	for _, w := range wanted {
		if !present[w] {
			missing = append(missing, w)
		}
	}
	return missing
}
