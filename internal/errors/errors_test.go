package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisErrorIsMatchesByCode(t *testing.T) {
	err := NewWithDetails(CodeIncompleteData, "years missing",
		MissingYears{Item: "dataset", Years: []int{2011, 2012}})

	assert.True(t, errors.Is(err, New(CodeIncompleteData, "")))
	assert.False(t, errors.Is(err, New(CodeReconciliation, "")))

	// Matching survives wrapping.
	wrapped := fmt.Errorf("survey data validation: %w", err)
	assert.True(t, errors.Is(wrapped, New(CodeIncompleteData, "")))
}

func TestAnalysisErrorMessage(t *testing.T) {
	err := New(CodeUsage, "pivot axis not selected")
	assert.Equal(t, "USAGE_ERROR: pivot axis not selected", err.Error())

	withDetails := NewWithDetails(CodeReconciliation, "sets do not match",
		UnmatchedOrganisations{Side: "survey", MissingFrom: "pay", Organisations: []string{"OrgA"}})
	assert.Contains(t, withDetails.Error(), "RECONCILIATION_MISMATCH")
	assert.Contains(t, withDetails.Error(), "OrgA")
}

func TestDetailStrings(t *testing.T) {
	tests := []struct {
		name    string
		detail  fmt.Stringer
		wantAll []string
	}{
		{
			name:    "missing years",
			detail:  MissingYears{Item: "Civil Service benchmark", Years: []int{2013, 2014}},
			wantAll: []string{"Civil Service benchmark", "2013", "2014"},
		},
		{
			name:    "missing items",
			detail:  MissingItems{Category: "organisation types", Items: []string{"Ministerial department"}},
			wantAll: []string{"organisation types", "Ministerial department"},
		},
		{
			name:    "missing labels",
			detail:  MissingLabels{Year: 2020, Labels: []string{"My work", "My team"}},
			wantAll: []string{"2020", "My work", "My team"},
		},
		{
			name:    "duplicate keys",
			detail:  DuplicateKeys{Pairs: []string{"(OrgA, 2024, EEI)"}},
			wantAll: []string{"(OrgA, 2024, EEI)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.wantAll {
				assert.Contains(t, tt.detail.String(), want)
			}
		})
	}
}
