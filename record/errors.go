package record

import (
	"errors"
	"fmt"
	"strings"

	"record-generator/internal/diagnostic"
	"record-generator/internal/fieldspec"
)

var (
	// ErrConfiguration is matched by definition errors caused by
	// self-contradictory record or field declarations.
	ErrConfiguration = fieldspec.ErrConfiguration
	// ErrDuplicatedValidator is matched when one Transform is attached to
	// several fields of a record.
	ErrDuplicatedValidator = fieldspec.ErrDuplicatedValidator
	// ErrMissingArgument is matched when a field without a default received no value.
	ErrMissingArgument = errors.New("missing argument")
	// ErrUnexpectedArgument is matched for surplus, unknown or repeated arguments.
	ErrUnexpectedArgument = errors.New("unexpected argument")
	// ErrArgumentType is matched when a value cannot be stored in, or passed
	// on behalf of, a field.
	ErrArgumentType = errors.New("argument type mismatch")
	// ErrNoConstructor is returned by constructors of records defined WithInit(false).
	ErrNoConstructor = errors.New("record has no constructor")
)

// Problem is a single decoration-time diagnostic.
type Problem = diagnostic.Diagnostic

// DefinitionError is returned by Define when the declarations are invalid.
type DefinitionError struct {
	Record   string
	Problems []Problem
}

func (e *DefinitionError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.String())
	}

	return fmt.Sprintf("record: cannot define %s: %s", e.Record, strings.Join(msgs, "; "))
}

// Unwrap exposes every problem, so errors.Is matches their categories.
func (e *DefinitionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Problems))
	for _, p := range e.Problems {
		errs = append(errs, p)
	}

	return errs
}

// MissingArgumentError lists the fields that received neither an argument
// nor a default.
type MissingArgumentError struct {
	Record string
	Fields []string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("record: %s: missing %d required argument(s): %s",
		e.Record, len(e.Fields), strings.Join(e.Fields, ", "))
}

func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}

// ArgumentError describes a rejected argument or an unstorable value.
type ArgumentError struct {
	Record string
	Field  string
	Err    error
	Detail string
}

func (e *ArgumentError) Error() string {
	subject := e.Record
	if e.Field != "" {
		subject += "." + e.Field
	}

	return fmt.Sprintf("record: %s: %v: %s", subject, e.Err, e.Detail)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}
