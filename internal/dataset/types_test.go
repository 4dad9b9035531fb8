package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingSentinel(t *testing.T) {
	assert.True(t, IsMissing(Missing()))
	assert.False(t, IsMissing(0))
	assert.False(t, IsMissing(-1.5))

	// NaN never equals itself; IsMissing is the only safe check.
	assert.NotEqual(t, Missing(), Missing())
}

func TestSurveyYears(t *testing.T) {
	records := []SurveyRecord{
		{Year: 2024}, {Year: 2010}, {Year: 2024}, {Year: 2019},
	}
	assert.Equal(t, []int{2010, 2019, 2024}, SurveyYears(records))
	assert.Empty(t, SurveyYears(nil))
}

func TestPayOrganisations(t *testing.T) {
	records := []PayRecord{
		{Organisation: "OrgB"}, {Organisation: "OrgA"}, {Organisation: "OrgB"},
	}
	assert.Equal(t, []string{"OrgA", "OrgB"}, PayOrganisations(records))
}

func TestSurveyOrganisations(t *testing.T) {
	records := []SurveyRecord{
		{Organisation: "Zeta"}, {Organisation: "Alpha"},
	}
	assert.Equal(t, []string{"Alpha", "Zeta"}, SurveyOrganisations(records))
}
