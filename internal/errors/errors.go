// Package errors provides structured, coded errors for the analysis
// pipeline. Every failure carries a code identifying the taxonomy entry and,
// where useful, typed details naming exactly which keys are affected, so a
// failed run can be diagnosed from its output alone.
package errors

import (
	"fmt"
	"strings"
)

// Error codes for the failure taxonomy.
const (
	CodePrecondition      = "PRECONDITION_VIOLATION"
	CodeIncompleteData    = "INCOMPLETE_DATA"
	CodeReconciliation    = "RECONCILIATION_MISMATCH"
	CodeUsage             = "USAGE_ERROR"
	CodeEmptyResult       = "EMPTY_RESULT"
	CodeDuplicateKey      = "DUPLICATE_KEY"
	CodeSourceUnavailable = "SOURCE_UNAVAILABLE"
)

// AnalysisError is a structured pipeline error with a stable code and
// optional typed details.
type AnalysisError struct {
	Code    string
	Message string
	Details any
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes AnalysisError values with the same code match under errors.Is.
func (e *AnalysisError) Is(target error) bool {
	t, ok := target.(*AnalysisError)
	return ok && t.Code == e.Code
}

// New creates an AnalysisError with the given code and message.
func New(code, message string) *AnalysisError {
	return &AnalysisError{Code: code, Message: message}
}

// Newf creates an AnalysisError with a formatted message.
func Newf(code, format string, args ...any) *AnalysisError {
	return &AnalysisError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewWithDetails creates an AnalysisError carrying typed details.
func NewWithDetails(code, message string, details any) *AnalysisError {
	return &AnalysisError{Code: code, Message: message, Details: details}
}

// MissingYears names an expected item absent for specific years.
type MissingYears struct {
	Item  string
	Years []int
}

func (m MissingYears) String() string {
	return fmt.Sprintf("%s missing for years %v", m.Item, m.Years)
}

// MissingItems names expected category values absent from a dataset.
type MissingItems struct {
	Category string
	Items    []string
}

func (m MissingItems) String() string {
	return fmt.Sprintf("%s not present: %s", m.Category, strings.Join(m.Items, "; "))
}

// MissingLabels names metric labels absent for a given year.
type MissingLabels struct {
	Year   int
	Labels []string
}

func (m MissingLabels) String() string {
	return fmt.Sprintf("year %d missing labels: %s", m.Year, strings.Join(m.Labels, "; "))
}

// UnmatchedOrganisations names organisations present on one side of a
// reconciliation but absent from the other.
type UnmatchedOrganisations struct {
	Side          string
	MissingFrom   string
	Organisations []string
}

func (u UnmatchedOrganisations) String() string {
	return fmt.Sprintf("%s organisations missing from %s data: %s",
		u.Side, u.MissingFrom, strings.Join(u.Organisations, "; "))
}

// DuplicateKeys names (key, label) pairs that appeared more than once
// during a pivot.
type DuplicateKeys struct {
	Pairs []string
}

func (d DuplicateKeys) String() string {
	return fmt.Sprintf("duplicate (key, label) pairs: %s", strings.Join(d.Pairs, "; "))
}
