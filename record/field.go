package record

import (
	"reflect"
)

// FieldSpec is the compiled description of one record field.
type FieldSpec struct {
	// Name is the Go field name; named arguments use it as the key.
	Name string
	// Index is the position of the field in the struct.
	Index int
	// DeclaredType is the Go type of the field.
	DeclaredType reflect.Type
	// DefaultMode tells how the field obtains a value without an argument.
	DefaultMode DefaultMode
	// Default holds the literal default when DefaultMode is ModeLiteral.
	Default any
	// IncludeInInit reports whether the field is a constructor argument.
	IncludeInInit bool
	// Transform is applied to the raw value before it is stored, if set.
	Transform *Transform

	factory *factory
}

// Defaulted reports whether the field can be populated without an argument.
func (f FieldSpec) Defaulted() bool {
	return f.DefaultMode != ModeNone
}

// defaultValue returns the literal or a fresh factory value.
func (f FieldSpec) defaultValue() (any, error) {
	if f.DefaultMode == ModeFactory {
		return f.factory.produce()
	}

	return f.Default, nil
}

// FieldOption configures a field declared with Field.
type FieldOption func(*fieldDecl)

type fieldDecl struct {
	def        any
	hasDefault bool
	// literal is the unparsed tag default, set when fromTag.
	literal    string
	fromTag    bool
	factory    any
	hasFactory bool
	init       bool
	initSet    bool
	transform  *Transform
}

// Default sets a literal default. Slices and maps are refused; use
// DefaultFactory so instances do not share them.
func Default(v any) FieldOption {
	return func(d *fieldDecl) {
		d.def, d.hasDefault = v, true
	}
}

// DefaultFactory sets a function called once per instance to produce the
// default. It must be func() V or func() (V, error).
func DefaultFactory(fn any) FieldOption {
	return func(d *fieldDecl) {
		d.factory, d.hasFactory = fn, true
	}
}

// Init controls whether the field is a constructor argument (default true).
func Init(include bool) FieldOption {
	return func(d *fieldDecl) {
		d.init, d.initSet = include, true
	}
}

// Validator attaches t to the field. A nil t leaves the field without one.
func Validator(t *Transform) FieldOption {
	return func(d *fieldDecl) {
		d.transform = t
	}
}

// FieldDescriptor carries the options of one field to Define.
type FieldDescriptor struct {
	name string
	opts []FieldOption
}

// Field declares options for the struct field called name.
func Field(name string, opts ...FieldOption) FieldDescriptor {
	return FieldDescriptor{name: name, opts: opts}
}

// Name returns the described field name.
func (f FieldDescriptor) Name() string {
	return f.name
}

func (f FieldDescriptor) apply(c *config) {
	c.fields = append(c.fields, f)
}

func (f FieldDescriptor) decl() fieldDecl {
	var d fieldDecl
	for _, opt := range f.opts {
		opt(&d)
	}

	return d
}

// merge overlays explicit options on tag-derived settings. Explicit default
// options replace both tag defaults.
func (d fieldDecl) merge(explicit fieldDecl) fieldDecl {
	if explicit.hasDefault || explicit.hasFactory {
		d.def, d.hasDefault = explicit.def, explicit.hasDefault
		d.literal, d.fromTag = "", false
		d.factory, d.hasFactory = explicit.factory, explicit.hasFactory
	}

	if explicit.initSet {
		d.init, d.initSet = explicit.init, true
	}

	if explicit.transform != nil {
		d.transform = explicit.transform
	}

	return d
}
