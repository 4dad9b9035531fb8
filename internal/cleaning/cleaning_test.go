package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cspspay/internal/dataset"
)

func TestParseNumeric(t *testing.T) {
	sentinels := []string{"[c]", "[n]", "-", ".."}

	tests := []struct {
		name        string
		cell        string
		want        float64
		wantMissing bool
		wantErr     bool
	}{
		{name: "plain number", cell: "64.5", want: 64.5},
		{name: "integer", cell: "35000", want: 35000},
		{name: "thousands separator", cell: "35,000", want: 35000},
		{name: "surrounding whitespace", cell: " 42 ", want: 42},
		{name: "blank is missing", cell: "", wantMissing: true},
		{name: "whitespace only is missing", cell: "   ", wantMissing: true},
		{name: "suppression sentinel", cell: "[c]", wantMissing: true},
		{name: "not applicable sentinel", cell: "[n]", wantMissing: true},
		{name: "dash sentinel", cell: "-", wantMissing: true},
		{name: "double dot sentinel", cell: "..", wantMissing: true},
		{name: "garbage errors", cell: "n/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumeric(tt.cell, sentinels)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantMissing {
				assert.True(t, dataset.IsMissing(got))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumericWithoutSentinels(t *testing.T) {
	// Survey cells carry no sentinel tokens; a token must be an error there.
	_, err := ParseNumeric("[c]", nil)
	assert.Error(t, err)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    int
		wantErr bool
	}{
		{name: "plain year", cell: "2024", want: 2024},
		{name: "float export", cell: "2024.0", want: 2024},
		{name: "whitespace", cell: " 2019 ", want: 2019},
		{name: "garbage", cell: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYear(tt.cell)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEditSurvey(t *testing.T) {
	records := []dataset.SurveyRecord{
		{Organisation: "OrgA", DeptGroup: "GroupA", Year: 2024, Section: dataset.SectionEngagementIndex, Label: "Employee Engagement Index", Value: 70},
		{Organisation: "OrgA", DeptGroup: "GroupA", Year: 2024, Section: dataset.SectionThemeScores, Label: "My work", Value: 75},
		{Organisation: "OrgA", DeptGroup: "GroupA", Year: 2024, Section: "Response rates", Label: "Response rate", Value: 60},
		{Organisation: "OrgB", DeptGroup: "Scot Gov", Year: 2024, Section: dataset.SectionThemeScores, Label: "My work", Value: 68},
		{Organisation: "OrgC", DeptGroup: "GroupA", Year: 2024, Section: dataset.SectionThemeScores, Label: "My work", Value: 66},
		{Organisation: "OrgA", DeptGroup: "GroupA", Year: 2009, Section: dataset.SectionThemeScores, Label: "My work", Value: 64},
		{Organisation: "OrgA", DeptGroup: "GroupA", Year: 2026, Section: dataset.SectionThemeScores, Label: "My work", Value: 71},
	}

	got := EditSurvey(records, SurveyFilter{
		DeptGroupsToDrop: []string{"Scot Gov"},
		OrgsToDrop:       []string{"OrgC"},
		MinYear:          2010,
		MaxYear:          2024,
	})

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "OrgA", r.Organisation)
		assert.Equal(t, 2024, r.Year)
	}
}

func TestEditSurveyOpenBounds(t *testing.T) {
	records := []dataset.SurveyRecord{
		{Organisation: "OrgA", Year: 1999, Section: dataset.SectionThemeScores, Label: "My work", Value: 1},
		{Organisation: "OrgA", Year: 2030, Section: dataset.SectionThemeScores, Label: "My work", Value: 2},
	}

	// Zero bounds keep everything.
	got := EditSurvey(records, SurveyFilter{})
	assert.Len(t, got, 2)
}

func TestEditPay(t *testing.T) {
	records := []dataset.PayRecord{
		{Organisation: "OrgA", Year: 2024, Grade: "SEO/HEO", MedianSalary: 35000},
		{Organisation: "OrgA", Year: 2024, Grade: "AO/AA", MedianSalary: 25000},
		{Organisation: "OrgB", DeptGroup: "Welsh Gov", Year: 2024, Grade: "SEO/HEO", MedianSalary: 34000},
		{Organisation: "OrgA", Year: 2009, Grade: "SEO/HEO", MedianSalary: 28000},
	}

	got := EditPay(records, PayFilter{
		TargetGrade:      "SEO/HEO",
		DeptGroupsToDrop: []string{"Welsh Gov"},
		MinYear:          2010,
		MaxYear:          2025,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "OrgA", got[0].Organisation)
	assert.Equal(t, 35000.0, got[0].MedianSalary)
}
