package plan

import (
	"record-generator/internal/analyze"
	"record-generator/record"
)

// Plan is the final output of the resolution pipeline. It contains
// everything needed for code generation.
type Plan struct {
	// PkgPath is the import path of the record package.
	PkgPath string
	// PkgName is the package clause name generated files use.
	PkgName string
	// Dir is the directory of the record package.
	Dir string
	// Records holds one plan per declared record, in declaration order.
	Records []RecordPlan
}

// RecordPlan describes the declarations generated for one record type.
type RecordPlan struct {
	// TypeName is the struct type name.
	TypeName string
	// Filename is the name of the generated file.
	Filename string
	// Constructor names the constructor, empty when init is disabled.
	Constructor string
	// DefaultsFunc names the all-defaults builder, empty unless every field
	// has a default.
	DefaultsFunc string
	// OptionType names the functional option type, empty without options.
	OptionType string
	// ArgsType names the unexported argument struct.
	ArgsType string
	// BuildFunc names the unexported builder shared by all entry points.
	BuildFunc string
	// PostInit is set when the builder calls (*T).PostInit.
	PostInit bool
	// Vars are package variables holding validator and factory values.
	Vars []VarPlan
	// Fields holds every struct field in declaration order.
	Fields []FieldPlan
	// Imports lists the import paths the generated file needs, sorted.
	Imports []string
}

// Required returns the fields taken as positional constructor arguments.
func (r *RecordPlan) Required() []FieldPlan {
	return r.withParam(ParamRequired)
}

// Options returns the fields set through functional options.
func (r *RecordPlan) Options() []FieldPlan {
	return r.withParam(ParamOption)
}

func (r *RecordPlan) withParam(k ParamKind) []FieldPlan {
	var out []FieldPlan

	for _, f := range r.Fields {
		if f.Param == k {
			out = append(out, f)
		}
	}

	return out
}

// VarPlan is a package variable evaluated once at package initialization.
type VarPlan struct {
	Name string
	Expr string
	// Doc names what the value is used for ("validator of Account.Age").
	Doc string
}

// FieldPlan describes how the builder populates one struct field.
type FieldPlan struct {
	// Name is the struct field name.
	Name string
	// Param is how the raw value is supplied.
	Param ParamKind
	// ArgName is the constructor parameter and args struct field name.
	ArgName string
	// SetName is the args struct flag recording an applied option.
	SetName string
	// Option names the option function (ParamOption only).
	Option string
	// RawType is the type of the raw value, relative to the record package.
	RawType string
	// DefaultMode is how a missing raw value is obtained.
	DefaultMode record.DefaultMode
	// Literal is the default as a Go expression (ModeLiteral).
	Literal string
	// Factory is the expression called to produce the default (ModeFactory).
	Factory string
	// FactoryErr is set when the factory also returns an error.
	FactoryErr bool
	// Validator is the expression called with the raw value, empty if none.
	Validator string
	// Shape is the result shape of the validator.
	Shape analyze.CallShape
}

// ParamKind tells how a field's raw value reaches the builder.
type ParamKind int

//go:generate go tool stringer -type=ParamKind -linecomment -output=paramkind_string.go

const (
	// ParamNone - the field is computed from its default.
	ParamNone ParamKind = iota // none
	// ParamRequired - a positional constructor argument.
	ParamRequired // required
	// ParamOption - an optional argument falling back to the default.
	ParamOption // option
)
