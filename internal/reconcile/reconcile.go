// Package reconcile aligns the organisation taxonomies of two independently
// curated datasets before they are joined. Renames collapse known synonyms
// to one canonical spelling, the include/exclude rules trim each side to the
// comparable entity set, and VerifyMatched proves that an inner join on the
// surviving identifiers would be lossless. Silent truncation of unmatched
// rows is forbidden here: any asymmetry is a hard failure naming the
// offenders and the side they came from.
package reconcile

import (
	"sort"

	"cspspay/internal/config"
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// RenameSurvey returns a copy of records with the rename map applied to the
// organisation column. Order matters: renames run before any rule matching.
func RenameSurvey(records []dataset.SurveyRecord, renames map[string]string) []dataset.SurveyRecord {
	out := make([]dataset.SurveyRecord, len(records))
	for i, r := range records {
		if canonical, ok := renames[r.Organisation]; ok {
			r.Organisation = canonical
		}
		out[i] = r
	}
	return out
}

// RenamePay returns a copy of records with the rename map applied to the
// organisation column.
func RenamePay(records []dataset.PayRecord, renames map[string]string) []dataset.PayRecord {
	out := make([]dataset.PayRecord, len(records))
	for i, r := range records {
		if canonical, ok := renames[r.Organisation]; ok {
			r.Organisation = canonical
		}
		out[i] = r
	}
	return out
}

// FilterSurvey applies the conditions to survey records: a row passes if its
// organisation type is allowed (or no type filter is set) or its
// organisation is explicitly included; explicit exclusion is applied last
// and always wins.
func FilterSurvey(records []dataset.SurveyRecord, cond config.Conditions) []dataset.SurveyRecord {
	types := toSet(cond.OrgTypeFilter)
	include := toSet(cond.IncludeOrgs)
	exclude := toSet(cond.ExcludeOrgs)

	out := make([]dataset.SurveyRecord, 0, len(records))
	for _, r := range records {
		if !passes(r.OrgType, r.Organisation, types, include, exclude) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterPay applies the conditions to pay records with the same precedence
// as FilterSurvey.
func FilterPay(records []dataset.PayRecord, cond config.Conditions) []dataset.PayRecord {
	types := toSet(cond.OrgTypeFilter)
	include := toSet(cond.IncludeOrgs)
	exclude := toSet(cond.ExcludeOrgs)

	out := make([]dataset.PayRecord, 0, len(records))
	for _, r := range records {
		if !passes(r.OrgType, r.Organisation, types, include, exclude) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func passes(orgType, org string, types, include, exclude map[string]bool) bool {
	if len(types) > 0 && !types[orgType] && !include[org] {
		return false
	}
	return !exclude[org]
}

// VerifyMatched computes both one-sided differences between the two
// organisation sets and fails if either is non-empty. leftName and
// rightName identify the sides in the error details.
func VerifyMatched(left, right []string, leftName, rightName string) error {
	leftSet := toSet(left)
	rightSet := toSet(right)

	leftOnly := difference(leftSet, rightSet)
	rightOnly := difference(rightSet, leftSet)

	if len(leftOnly) == 0 && len(rightOnly) == 0 {
		return nil
	}

	var details []ierrors.UnmatchedOrganisations
	if len(leftOnly) > 0 {
		details = append(details, ierrors.UnmatchedOrganisations{
			Side: leftName, MissingFrom: rightName, Organisations: leftOnly,
		})
	}
	if len(rightOnly) > 0 {
		details = append(details, ierrors.UnmatchedOrganisations{
			Side: rightName, MissingFrom: leftName, Organisations: rightOnly,
		})
	}
	return ierrors.NewWithDetails(ierrors.CodeReconciliation,
		"organisation sets do not match between sources", details)
}

func difference(a, b map[string]bool) []string {
	var only []string
	for v := range a {
		if !b[v] {
			only = append(only, v)
		}
	}
	sort.Strings(only)
	return only
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
