package config

// Survey and pay data coverage. The mean benchmark series starts later than
// the median series, so it has its own minimum year.
const (
	SurveyMinYear     = 2010
	SurveyMaxYear     = 2024
	SurveyMeanMinYear = 2019

	PayMinYear = 2010
	PayMaxYear = 2025

	// CrossSectionYear is the survey year used for the organisation-level
	// cross-sectional regressions.
	CrossSectionYear = 2024

	// CPIBaseYear is the base year for real-terms pay figures.
	CPIBaseYear = 2024
)

// Benchmark rows published inside the organisation-level datasets.
const (
	MedianBenchmarkOrganisation = "Civil Service benchmark"
	MeanBenchmarkOrganisation   = "All employees"
	PaySummaryOrganisation      = "All employees"
)

// PayTargetGrade is the single grade band analysed. SEO/HEO is the biggest
// band overall and in the departments of interest, which limits the effect
// of differing grade distributions between organisations.
const PayTargetGrade = "SEO/HEO"

// EEILabel is the Employee Engagement Index metric label.
const EEILabel = "Employee Engagement Index"

// MedianSalaryLabel is the pay measure carried into joined wide tables.
const MedianSalaryLabel = "Median salary"

// ThemeScoreLabels lists the nine survey theme scores. Report order follows
// this list.
var ThemeScoreLabels = []string{
	"Inclusion and fair treatment",
	"Leadership and managing change",
	"Learning and development",
	"My manager",
	"My team",
	"My work",
	"Organisational objectives and purpose",
	"Pay and benefits",
	"Resources and workload",
}

// DeptGroupsToDrop removes devolved-administration organisations so that
// cross-organisation comparisons stay within the national civil service.
var DeptGroupsToDrop = []string{
	"Scot Gov",
	"Welsh Gov",
}

// ThemeScoreOrgsToDrop prevents double-counting in the theme-score analysis:
// each dropped row has its constituents reported separately in the dataset.
var ThemeScoreOrgsToDrop = []string{
	"Ministry of Justice group (including agencies)",
	"UK Statistics Authority (excluding Office for National Statistics)",
}

// PayAnalysisSurveyOrgsToDrop is the survey-side drop list for the pay
// analysis, wider than the theme-score list because the pay data reports the
// ONS inside the UK Statistics Authority.
var PayAnalysisSurveyOrgsToDrop = []string{
	"Ministry of Justice group (including agencies)",
	"Ministry of Justice arm's length bodies",
	"Office for National Statistics",
	"UK Statistics Authority (excluding Office for National Statistics)",
}

// Conditions narrows an analysis to a subset of organisations. Rows pass if
// their organisation type is in OrgTypeFilter (when set) or the organisation
// is explicitly included; explicit exclusion always wins and applies last.
type Conditions struct {
	OrgTypeFilter []string
	IncludeOrgs   []string
	ExcludeOrgs   []string
}

// SurveyOrganisationOnly drops survey organisations that cannot be matched
// to the pay data (absent there, or split differently across entities).
var SurveyOrganisationOnly = Conditions{
	ExcludeOrgs: []string{
		"Scotland, Wales and Northern Ireland Offices, and the Office of the Advocate General for Scotland",
		"HM Prison and Probation Service (excluding HM Prison Service and National Probation Service/Probation Service)",
		"HM Prison Service",
		"Probation Service",
		"HM Inspectorate of Constabulary and Fire and Rescue Services",
	},
}

// PayOrganisationOnly drops pay organisations absent from the survey data or
// split differently across entities.
var PayOrganisationOnly = Conditions{
	ExcludeOrgs: []string{
		"Office of the Secretary of State for Scotland",
		"Office of the Secretary of State for Wales",
		"Northern Ireland Office",
		"HM Prison and Probation Service",
		"Security and Intelligence Services",
		"Central Civil Service Fast Stream",
		"Defence Electronics and Components Agency",
		"Government Commercial Organisation",
		"Office for Budget Responsibility",
		"Queen Elizabeth II Centre",
		"Royal Fleet Auxiliary",
		"UK Supreme Court",
		"Education and Skills Funding Agency",
		"Standards and Testing Agency",
		"Teaching Regulation Agency",
	},
}

// SurveyDeptOnly restricts the survey side to ministerial departments, with
// HMRC and the DfE group force-included and two atypical departments
// excluded. Organisation names here are canonical (post-rename) spellings,
// since reconciliation renames run before these rules.
var SurveyDeptOnly = Conditions{
	OrgTypeFilter: []string{"Ministerial department"},
	ExcludeOrgs: []string{
		"Attorney General's Office",
		"Export Credits Guarantee Department",
	},
	IncludeOrgs: []string{
		"Department for Education/Department for Education group",
		"HM Revenue and Customs",
	},
}

// PayDeptOnly restricts the pay side to ministerial departments, excluding
// the territorial offices which cannot be matched to the survey data.
var PayDeptOnly = Conditions{
	OrgTypeFilter: []string{"Ministerial department"},
	ExcludeOrgs: []string{
		"Attorney General's Office",
		"Export Credits Guarantee Department",
		"Office of the Secretary of State for Scotland",
		"Office of the Secretary of State for Wales",
		"Northern Ireland Office",
	},
	IncludeOrgs: []string{
		"HM Revenue and Customs",
	},
}

// SurveyRenames collapses survey-side synonyms to canonical spellings before
// matching against the pay data.
var SurveyRenames = map[string]string{
	"Ministry of Housing, Communities & Local Government - 2024 iteration": "Ministry of Housing, Communities & Local Government",
	"Department for Education group (including agencies)":                  "Department for Education/Department for Education group",
}

// PayRenames collapses pay-side synonyms to the same canonical spellings.
var PayRenames = map[string]string{
	"Department for Levelling Up, Housing and Communities": "Ministry of Housing, Communities & Local Government",
	"Department for Education":                             "Department for Education/Department for Education group",
	"Medicines and Healthcare Products Regulatory Agency":  "Medicines and Healthcare products Regulatory Agency",
}

// PayNASentinels are the suppression and not-applicable markers used in the
// pay workbook. They parse to missing, never to an error.
var PayNASentinels = []string{"[c]", "[n]", "-", ".."}
