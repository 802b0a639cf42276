package fieldspec

import (
	"errors"
	"fmt"
	"strings"

	"record-generator/internal/diagnostic"
)

var (
	// ErrConfiguration marks self-contradictory field or record declarations.
	ErrConfiguration = errors.New("configuration error")
	// ErrDuplicatedValidator marks one validator identity shared by several fields.
	ErrDuplicatedValidator = errors.New("duplicated validator")
)

// Diagnostic codes produced by Check.
const (
	CodeConflictingDefaults = "conflicting_defaults"
	CodeInitWithoutDefault  = "init_without_default"
	CodeConstructorDisabled = "constructor_disabled"
	CodeDuplicatedValidator = "duplicated_validator"
)

// Decl is the rule-relevant view of one declared field.
type Decl[K comparable] struct {
	Name string
	// HasDefault is set when a literal default is declared.
	HasDefault bool
	// HasFactory is set when a default factory is declared.
	HasFactory bool
	// Init reports whether the field is a constructor argument.
	Init bool
	// InitExplicit is set when Init was stated rather than defaulted.
	InitExplicit bool
	// HasValidator is set when Validator holds a validator identity.
	HasValidator bool
	Validator    K
}

// Defaulted reports whether the field can obtain a value without an argument.
func (d Decl[K]) Defaulted() bool {
	return d.HasDefault || d.HasFactory
}

// Check validates decls for the record named record and returns the filled
// validator registry along with any diagnostics.
func Check[K comparable](record string, recordInit bool, decls []Decl[K]) (*Registry[K], diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	registry := NewRegistry[K]()

	for _, d := range decls {
		if d.HasDefault && d.HasFactory {
			diags.Add(configError(CodeConflictingDefaults, record, d.Name,
				fmt.Sprintf("field %q declares both a default and a default factory", d.Name)))
		}

		if !d.Init && !d.Defaulted() {
			diags.Add(configError(CodeInitWithoutDefault, record, d.Name,
				fmt.Sprintf("field %q is excluded from the constructor and has no default", d.Name)))
		}

		if !recordInit && d.Init {
			switch {
			case d.InitExplicit:
				diags.Add(configError(CodeConstructorDisabled, record, d.Name,
					fmt.Sprintf("field %q is declared as a constructor argument but the record has no constructor", d.Name)))
			case !d.Defaulted():
				diags.Add(configError(CodeConstructorDisabled, record, d.Name,
					fmt.Sprintf("field %q has no default and the record has no constructor", d.Name)))
			}
		}

		if d.HasValidator {
			registry.Register(d.Validator, d.Name)
		}
	}

	for _, dup := range registry.Duplicates() {
		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     CodeDuplicatedValidator,
			Message: fmt.Sprintf("validator %v is attached to fields %s; create one validator per field",
				dup.Key, strings.Join(dup.Fields, ", ")),
			Record: record,
			Field:  dup.Fields[1],
			Err:    ErrDuplicatedValidator,
		})
	}

	return registry, diags
}

func configError(code, record, field, msg string) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     code,
		Message:  msg,
		Record:   record,
		Field:    field,
		Err:      ErrConfiguration,
	}
}
