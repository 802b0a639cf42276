package record

import (
	"fmt"
	"reflect"

	"record-generator/internal/diagnostic"
	"record-generator/internal/fieldspec"
	"record-generator/internal/match"
)

// Decoration diagnostic codes, in addition to the fieldspec ones.
const (
	CodeNotAStruct            = "not_a_struct"
	CodeUnexportedField       = "unexported_field"
	CodeMalformedTag          = "malformed_tag"
	CodeUnknownField          = "unknown_field"
	CodeDuplicateField        = "duplicate_field"
	CodeInvalidFactory        = "invalid_factory"
	CodeMutableDefault        = "mutable_default"
	CodeDefaultTypeMismatch   = "default_type_mismatch"
	CodeFactoryTypeMismatch   = "factory_type_mismatch"
	CodeTransformTypeMismatch = "transform_type_mismatch"
)

// Option configures Define.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

type config struct {
	init   bool
	tagKey string
	fields []FieldDescriptor
}

// WithInit controls whether the record has a constructor (default true).
// Records without one are populated from defaults only, see Record.Defaults.
func WithInit(enabled bool) Option {
	return optionFunc(func(c *config) {
		c.init = enabled
	})
}

// WithTagKey changes the struct tag key read for field settings.
func WithTagKey(key string) Option {
	return optionFunc(func(c *config) {
		c.tagKey = key
	})
}

// PostIniter is implemented by record types that need a final check once
// every field is set. An error aborts construction and is returned unchanged.
type PostIniter interface {
	PostInit() error
}

// Record is the compiled field table of struct type T. It is immutable and
// safe for concurrent use.
type Record[T any] struct {
	typ        reflect.Type
	name       string
	init       bool
	fields     []FieldSpec
	byName     map[string]int
	initFields []int
	registry   *fieldspec.Registry[*Transform]
}

// Define compiles the field table of T. All declaration problems are
// reported together in a *DefinitionError.
func Define[T any](opts ...Option) (*Record[T], error) {
	cfg := config{init: true, tagKey: DefaultTagKey}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	typ := reflect.TypeFor[T]()

	r := &Record[T]{
		typ:    typ,
		name:   typ.String(),
		init:   cfg.init,
		byName: make(map[string]int),
	}

	if diags := r.compile(cfg); diags.HasErrors() {
		return nil, &DefinitionError{Record: r.name, Problems: diags.Errors}
	}

	return r, nil
}

// MustDefine is like Define but panics on invalid declarations.
func MustDefine[T any](opts ...Option) *Record[T] {
	r, err := Define[T](opts...)
	if err != nil {
		panic(err)
	}

	return r
}

func (r *Record[T]) compile(cfg config) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if r.typ.Kind() != reflect.Struct {
		diags.Add(r.problem(CodeNotAStruct, "", fmt.Sprintf("%s is not a struct type", r.typ)))
		return diags
	}

	decls := r.collect(cfg.tagKey, &diags)
	r.applyDescriptors(cfg.fields, decls, &diags)

	rules := make([]fieldspec.Decl[*Transform], 0, len(r.fields))

	for i := range r.fields {
		f := &r.fields[i]
		d := decls[i]

		r.resolveField(f, d, &diags)

		rules = append(rules, fieldspec.Decl[*Transform]{
			Name:         f.Name,
			HasDefault:   d.hasDefault,
			HasFactory:   d.hasFactory,
			Init:         d.init,
			InitExplicit: d.initSet,
			HasValidator: d.transform != nil,
			Validator:    d.transform,
		})
	}

	registry, ruleDiags := fieldspec.Check(r.name, r.init, rules)
	diags.Merge(ruleDiags)
	r.registry = registry

	for i, f := range r.fields {
		if r.init && f.IncludeInInit {
			r.initFields = append(r.initFields, i)
		}
	}

	return diags
}

// collect creates one FieldSpec per exported struct field and returns the
// tag-derived declarations, index-aligned with r.fields.
func (r *Record[T]) collect(tagKey string, diags *diagnostic.Diagnostics) []fieldDecl {
	var decls []fieldDecl

	for i := range r.typ.NumField() {
		sf := r.typ.Field(i)
		tag, tagged := sf.Tag.Lookup(tagKey)

		if !sf.IsExported() {
			if tagged {
				diags.Add(r.problem(CodeUnexportedField, sf.Name,
					fmt.Sprintf("unexported field %q cannot be a record field", sf.Name)))
			}

			continue
		}

		if tag == "-" {
			continue
		}

		d, err := parseTag(tag)
		if err != nil {
			diags.Add(r.problem(CodeMalformedTag, sf.Name,
				fmt.Sprintf("field %q has a malformed %s tag: %v", sf.Name, tagKey, err)))
		}

		r.byName[sf.Name] = len(r.fields)
		r.fields = append(r.fields, FieldSpec{
			Name:         sf.Name,
			Index:        i,
			DeclaredType: sf.Type,
		})
		decls = append(decls, d)
	}

	return decls
}

// applyDescriptors overlays Field options onto the tag declarations.
func (r *Record[T]) applyDescriptors(descs []FieldDescriptor, decls []fieldDecl, diags *diagnostic.Diagnostics) {
	seen := make(map[string]bool, len(descs))

	for _, desc := range descs {
		idx, ok := r.byName[desc.name]
		if !ok {
			p := r.problem(CodeUnknownField, desc.name, fmt.Sprintf("%s has no record field %q", r.name, desc.name))
			p.Suggestions = match.Suggest(desc.name, r.fieldNames(), 3)
			diags.Add(p)

			continue
		}

		if seen[desc.name] {
			diags.Add(r.problem(CodeDuplicateField, desc.name,
				fmt.Sprintf("field %q is declared more than once", desc.name)))

			continue
		}

		seen[desc.name] = true
		decls[idx] = decls[idx].merge(desc.decl())
	}
}

// resolveField fills f from d and type-checks defaults and the transform.
func (r *Record[T]) resolveField(f *FieldSpec, d fieldDecl, diags *diagnostic.Diagnostics) {
	f.IncludeInInit = d.init
	f.Transform = d.transform

	// Raw values reach the transform first, the field otherwise.
	rawType := f.DeclaredType
	if f.Transform != nil {
		rawType = f.Transform.in
	}

	switch {
	case d.hasDefault && d.hasFactory:
		// reported by fieldspec.Check
	case d.hasDefault && d.fromTag:
		v, err := parseLiteral(d.literal, rawType)
		if err != nil {
			diags.Add(r.problem(CodeDefaultTypeMismatch, f.Name,
				fmt.Sprintf("field %q: default %q: %v", f.Name, d.literal, err)))

			break
		}

		f.DefaultMode, f.Default = ModeLiteral, v
	case d.hasDefault:
		f.DefaultMode, f.Default = ModeLiteral, d.def
		r.checkLiteral(f, rawType, diags)
	case d.hasFactory:
		fac, err := newFactory(d.factory)
		if err != nil {
			diags.Add(r.problem(CodeInvalidFactory, f.Name, fmt.Sprintf("field %q: %v", f.Name, err)))
			break
		}

		f.DefaultMode, f.factory = ModeFactory, fac

		if statically(fac.out) && !compatible(fac.out, rawType) {
			diags.Add(r.problem(CodeFactoryTypeMismatch, f.Name,
				fmt.Sprintf("field %q: default factory returns %s, want %s", f.Name, fac.out, rawType)))
		}
	}

	if f.Transform != nil && statically(f.Transform.out) && !compatible(f.Transform.out, f.DeclaredType) {
		diags.Add(r.problem(CodeTransformTypeMismatch, f.Name,
			fmt.Sprintf("field %q: validator %s returns %s, which cannot be stored as %s",
				f.Name, f.Transform.name, f.Transform.out, f.DeclaredType)))
	}
}

func (r *Record[T]) checkLiteral(f *FieldSpec, rawType reflect.Type, diags *diagnostic.Diagnostics) {
	if f.Default == nil {
		if !nillable(rawType) {
			diags.Add(r.problem(CodeDefaultTypeMismatch, f.Name,
				fmt.Sprintf("field %q: nil default for non-nillable %s", f.Name, rawType)))
		}

		return
	}

	switch reflect.TypeOf(f.Default).Kind() {
	case reflect.Slice, reflect.Map:
		diags.Add(r.problem(CodeMutableDefault, f.Name,
			fmt.Sprintf("field %q: mutable default %T would be shared by every instance; use DefaultFactory", f.Name, f.Default)))

		return
	}

	if _, ok := coerce(f.Default, rawType); !ok {
		diags.Add(r.problem(CodeDefaultTypeMismatch, f.Name,
			fmt.Sprintf("field %q: default %v (%T) is not a %s", f.Name, f.Default, f.Default, rawType)))
	}
}

func (r *Record[T]) problem(code, field, msg string) Problem {
	return Problem{
		Severity: diagnostic.SeverityError,
		Code:     code,
		Message:  msg,
		Record:   r.name,
		Field:    field,
		Err:      ErrConfiguration,
	}
}

func (r *Record[T]) fieldNames() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}

	return names
}

// Name returns the record type name, e.g. "account.Account".
func (r *Record[T]) Name() string {
	return r.name
}

// Type returns the reflect.Type of T.
func (r *Record[T]) Type() reflect.Type {
	return r.typ
}

// HasInit reports whether the record has a constructor.
func (r *Record[T]) HasInit() bool {
	return r.init
}

// Fields returns a copy of the compiled field table in declaration order.
func (r *Record[T]) Fields() []FieldSpec {
	return append([]FieldSpec(nil), r.fields...)
}

// Field returns the compiled spec of the named field.
func (r *Record[T]) Field(name string) (FieldSpec, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return FieldSpec{}, false
	}

	return r.fields[idx], true
}

// Params returns the constructor argument names in positional order. It is
// empty when the record has no constructor.
func (r *Record[T]) Params() []string {
	names := make([]string, 0, len(r.initFields))
	for _, idx := range r.initFields {
		names = append(names, r.fields[idx].Name)
	}

	return names
}

// ValidatedFields returns the fields using t, or nil.
func (r *Record[T]) ValidatedFields(t *Transform) []string {
	return r.registry.Fields(t)
}
