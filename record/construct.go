package record

import (
	"fmt"
	"reflect"
	"sort"
)

// binding holds constructor arguments by field position.
type binding struct {
	values   []any
	supplied []bool
}

func (r *Record[T]) newBinding() binding {
	return binding{
		values:   make([]any, len(r.fields)),
		supplied: make([]bool, len(r.fields)),
	}
}

// New constructs an instance from positional arguments, one per constructor
// field in declaration order. Trailing fields with defaults may be omitted.
func (r *Record[T]) New(args ...any) (T, error) {
	return r.Build(args, nil)
}

// NewNamed constructs an instance from arguments keyed by field name.
func (r *Record[T]) NewNamed(args map[string]any) (T, error) {
	return r.Build(nil, args)
}

// Build constructs an instance from positional and named arguments.
//
// Arguments are bound before any factory or transform runs, so binding
// errors have no side effects. Fields are then populated in declaration
// order; the first factory, transform or PostInit error is returned as is
// together with the zero T.
func (r *Record[T]) Build(positional []any, named map[string]any) (T, error) {
	var zero T

	if !r.init {
		return zero, fmt.Errorf("record: %s: %w", r.name, ErrNoConstructor)
	}

	b, err := r.bind(positional, named)
	if err != nil {
		return zero, err
	}

	return r.construct(b)
}

// Defaults constructs an instance without arguments: every field takes its
// default and passes through its transform. It is the way to populate a
// record defined WithInit(false).
func (r *Record[T]) Defaults() (T, error) {
	var (
		zero    T
		missing []string
	)

	for _, f := range r.fields {
		if !f.Defaulted() {
			missing = append(missing, f.Name)
		}
	}

	if len(missing) > 0 {
		return zero, &MissingArgumentError{Record: r.name, Fields: missing}
	}

	return r.construct(r.newBinding())
}

// Replace builds a new instance through the constructor, taking unchanged
// constructor fields from v. Fields excluded from the constructor are
// re-initialized from their defaults and cannot be replaced.
func (r *Record[T]) Replace(v T, changes map[string]any) (T, error) {
	var zero T

	if !r.init {
		return zero, fmt.Errorf("record: %s: %w", r.name, ErrNoConstructor)
	}

	named := make(map[string]any, len(r.initFields))

	for name, value := range changes {
		if idx, ok := r.byName[name]; ok && !r.fields[idx].IncludeInInit {
			return zero, &ArgumentError{
				Record: r.name,
				Field:  name,
				Err:    ErrUnexpectedArgument,
				Detail: "field is excluded from the constructor and cannot be replaced",
			}
		}

		named[name] = value
	}

	src := reflect.ValueOf(v)
	for _, idx := range r.initFields {
		f := r.fields[idx]
		if _, ok := named[f.Name]; !ok {
			named[f.Name] = src.Field(f.Index).Interface()
		}
	}

	return r.NewNamed(named)
}

// AsMap returns the record fields of v keyed by field name.
func (r *Record[T]) AsMap(v T) map[string]any {
	src := reflect.ValueOf(v)

	out := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		out[f.Name] = src.Field(f.Index).Interface()
	}

	return out
}

func (r *Record[T]) bind(positional []any, named map[string]any) (binding, error) {
	b := r.newBinding()

	if len(positional) > len(r.initFields) {
		return b, &ArgumentError{
			Record: r.name,
			Err:    ErrUnexpectedArgument,
			Detail: fmt.Sprintf("takes %d positional argument(s) but %d were given", len(r.initFields), len(positional)),
		}
	}

	for i, v := range positional {
		idx := r.initFields[i]
		b.values[idx], b.supplied[idx] = v, true
	}

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		idx, ok := r.byName[name]

		var detail string

		switch {
		case !ok:
			detail = "unknown field"
		case !r.fields[idx].IncludeInInit:
			detail = "field is excluded from the constructor"
		case b.supplied[idx]:
			detail = "got multiple values"
		}

		if detail != "" {
			return b, &ArgumentError{Record: r.name, Field: name, Err: ErrUnexpectedArgument, Detail: detail}
		}

		b.values[idx], b.supplied[idx] = named[name], true
	}

	var missing []string

	for _, idx := range r.initFields {
		if f := r.fields[idx]; !b.supplied[idx] && !f.Defaulted() {
			missing = append(missing, f.Name)
		}
	}

	if len(missing) > 0 {
		return b, &MissingArgumentError{Record: r.name, Fields: missing}
	}

	return b, nil
}

// construct populates a new T from a complete binding.
func (r *Record[T]) construct(b binding) (T, error) {
	var (
		zero T
		out  T
	)

	dst := reflect.ValueOf(&out).Elem()

	for i := range r.fields {
		f := &r.fields[i]

		raw := b.values[i]
		if !b.supplied[i] {
			v, err := f.defaultValue()
			if err != nil {
				return zero, err
			}

			raw = v
		}

		value, err := r.transform(f, raw)
		if err != nil {
			return zero, err
		}

		stored, ok := coerce(value, f.DeclaredType)
		if !ok {
			return zero, &ArgumentError{
				Record: r.name,
				Field:  f.Name,
				Err:    ErrArgumentType,
				Detail: fmt.Sprintf("cannot store %T as %s", value, f.DeclaredType),
			}
		}

		dst.Field(f.Index).Set(stored)
	}

	if hook, ok := any(&out).(PostIniter); ok {
		if err := hook.PostInit(); err != nil {
			return zero, err
		}
	}

	return out, nil
}

func (r *Record[T]) transform(f *FieldSpec, raw any) (any, error) {
	if f.Transform == nil {
		return raw, nil
	}

	arg, ok := coerce(raw, f.Transform.in)
	if !ok {
		return nil, &ArgumentError{
			Record: r.name,
			Field:  f.Name,
			Err:    ErrArgumentType,
			Detail: fmt.Sprintf("validator %s cannot accept %T", f.Transform.name, raw),
		}
	}

	return f.Transform.call(arg, raw)
}
