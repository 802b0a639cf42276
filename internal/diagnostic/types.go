package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"record-generator/internal/common"
)

// Diagnostics collects the findings of one resolve pass, split by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding. It is also an error.
type Diagnostic struct {
	Severity Severity
	// Code is stable across releases; tests and tooling match on it.
	Code    string
	Message string
	// Record and Field locate the declaration, when known.
	Record      string
	Field       string
	Suggestions []string
	// Err is the sentinel category matched by errors.Is.
	Err error
}

// Severity orders diagnostics from informational to fatal.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return common.UnknownStr
	}

	return severityNames[s]
}

// Add files diag under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) add(sev Severity, code, message, record, field string) {
	d.Add(Diagnostic{Severity: sev, Code: code, Message: message, Record: record, Field: field})
}

func (d *Diagnostics) AddError(code, message, record, field string) {
	d.add(SeverityError, code, message, record, field)
}

func (d *Diagnostics) AddWarning(code, message, record, field string) {
	d.add(SeverityWarning, code, message, record, field)
}

func (d *Diagnostics) AddInfo(code, message, record, field string) {
	d.add(SeverityInfo, code, message, record, field)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Err returns all error diagnostics joined into one error, or nil if valid.
// Each diagnostic stays reachable through errors.Is and errors.As.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e)
	}

	return errors.Join(errs...)
}

// Error implements error.
func (d Diagnostic) Error() string {
	return d.String()
}

// Unwrap returns the sentinel category of the diagnostic.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// String renders "[Record] Field: [code] message (did you mean ...?)",
// leaving out the parts that are empty.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Record != "" {
		fmt.Fprintf(&b, "[%s]", d.Record)
	}

	if d.Field != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(d.Field)
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}
