package dataset

import (
	"math"
	"sort"
)

// Survey sections retained by the cleaning stage. Everything else in the
// workbook (response rates, question-level results) is out of scope.
const (
	SectionEngagementIndex = "Employee Engagement Index"
	SectionThemeScores     = "Theme scores"
)

// SurveyRecord is one long-format row of the People Survey organisation
// workbook: a single metric value for one organisation in one survey year.
type SurveyRecord struct {
	Organisation string
	DeptGroup    string
	OrgType      string
	Year         int
	Section      string
	Label        string
	Value        float64 // NaN when the source value is blank or suppressed
}

// PayRecord is one long-format row of the Civil Service Statistics pay
// workbook: the median salary for one organisation, grade band and year.
// MedianSalary is NaN when the source suppresses small-sample figures.
type PayRecord struct {
	Organisation string
	DeptGroup    string
	OrgType      string
	Year         int
	Grade        string
	MedianSalary float64
}

// CPIObservation is a single monthly index value from a published price
// index series.
type CPIObservation struct {
	Year  int
	Month string
	Value float64
}

// Missing returns the sentinel used for absent or suppressed numeric values.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// SurveyYears returns the distinct years present in the records, ascending.
func SurveyYears(records []SurveyRecord) []int {
	seen := make(map[int]bool)
	for _, r := range records {
		seen[r.Year] = true
	}
	return sortedYears(seen)
}

// PayYears returns the distinct years present in the records, ascending.
func PayYears(records []PayRecord) []int {
	seen := make(map[int]bool)
	for _, r := range records {
		seen[r.Year] = true
	}
	return sortedYears(seen)
}

// SurveyOrganisations returns the distinct organisation names, sorted.
func SurveyOrganisations(records []SurveyRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.Organisation] = true
	}
	return sortedStrings(seen)
}

// PayOrganisations returns the distinct organisation names, sorted.
func PayOrganisations(records []PayRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.Organisation] = true
	}
	return sortedStrings(seen)
}

func sortedYears(seen map[int]bool) []int {
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func sortedStrings(seen map[string]bool) []string {
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
