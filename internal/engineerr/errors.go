// Package engineerr defines the stable error taxonomy the payroll engine
// reports to callers. Every failure the engine returns is one of these
// kinds; the engine never returns a bare error and never partially
// succeeds.
package engineerr

import "fmt"

// Kind is a stable, machine-matchable error category.
type Kind string

const (
	// UnsupportedJurisdiction is QC or any code outside the 12 supported.
	UnsupportedJurisdiction Kind = "UnsupportedJurisdiction"
	// UnknownEdition is a pay date outside the known (year, edition) map.
	UnknownEdition Kind = "UnknownEdition"
	// MissingTaxTable is an edition known but its table file not loaded.
	MissingTaxTable Kind = "MissingTaxTable"
	// InvalidTaxTable is a table failing schema or bracket-continuity
	// invariants, raised at load time; the bracket lookup also raises it
	// mid-calculation when no bracket covers the annual income.
	InvalidTaxTable Kind = "InvalidTaxTable"
	// InvalidInput covers negative monetary fields, inconsistent YTD, and
	// claim amounts below the statutory floor.
	InvalidInput Kind = "InvalidInput"
	// YtdExceedsCap is YTD already above the annual cap on entry.
	YtdExceedsCap Kind = "YtdExceedsCap"
	// InternalConsistency is the net-pay identity failing after
	// calculation; never expected in production.
	InternalConsistency Kind = "InternalConsistency"
)

// Error is the structured diagnostic every engine failure is returned as.
type Error struct {
	Kind    Kind
	Field   string
	Value   any
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s, value=%v)", e.Kind, e.Message, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.Wrapped }

// New constructs an Error with no offending field attached.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithField returns a copy of the error carrying a field/value diagnostic.
func (e *Error) WithField(field string, value any) *Error {
	cp := *e
	cp.Field = field
	cp.Value = value
	return &cp
}

// Wrap attaches an underlying cause for errors.Unwrap/errors.Is chaining.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Wrapped = cause
	return &cp
}
