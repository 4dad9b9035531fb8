package validation

import (
	"errors"

	"cspspay/internal/config"
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// PayExpectations describes what a pay dataset must contain before it can
// be cleaned and analysed.
type PayExpectations struct {
	MinYear int
	MaxYear int

	DeptGroupsToDrop []string
	DeptOnly         config.Conditions

	SummaryOrganisation string
	TargetGrade         string

	// Renames is the side's canonicalisation map; rule organisations in
	// canonical spelling count as present when a raw name renames to them.
	Renames map[string]string
}

// CheckPay validates the raw pay dataset against exp. The returned error
// joins one structured error per failed category.
func CheckPay(records []dataset.PayRecord, exp PayExpectations) error {
	var problems []error

	if err := checkYearCoverage(dataset.PayYears(records), exp.MinYear, exp.MaxYear); err != nil {
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
	gradesByYear := make(map[int]map[string]bool)
	for _, r := range records {
		if orgsByYear[r.Year] == nil {
			orgsByYear[r.Year] = make(map[string]bool)
			gradesByYear[r.Year] = make(map[string]bool)
		}
		orgsByYear[r.Year][r.Organisation] = true
		gradesByYear[r.Year][r.Grade] = true
	}

	var summaryMissing, gradeMissing []int
	for year := exp.MinYear; year <= exp.MaxYear; year++ {
		if !orgsByYear[year][exp.SummaryOrganisation] {
			summaryMissing = append(summaryMissing, year)
		}
		if !gradesByYear[year][exp.TargetGrade] {
			gradeMissing = append(gradeMissing, year)
		}
	}
	if len(summaryMissing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"pay summary row missing for some years",
			ierrors.MissingYears{Item: exp.SummaryOrganisation, Years: summaryMissing}))
	}
	if len(gradeMissing) > 0 {
		problems = append(problems, ierrors.NewWithDetails(ierrors.CodeIncompleteData,
			"target grade missing for some years",
			ierrors.MissingYears{Item: exp.TargetGrade, Years: gradeMissing}))
	}

	return errors.Join(problems...)
}
