package record

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

type transformShape int

const (
	shapeValue      transformShape = iota // func(In) Out
	shapeValueError                       // func(In) (Out, error)
	shapeCheck                            // func(In) error
)

var errorType = reflect.TypeFor[error]()

// Transform is a single-argument function applied to a field value before it
// is stored. It converts the value, validates it, or both; a non-nil error
// rejects the value.
//
// A Transform has identity: each constructor call returns a distinct handle,
// and Define refuses a handle attached to more than one field.
type Transform struct {
	name  string
	fn    reflect.Value
	in    reflect.Type
	out   reflect.Type
	shape transformShape
}

// NewTransform wraps fn, which must be one of
//
//	func(In) Out
//	func(In) (Out, error)
//	func(In) error
//
// The last form only validates: the value is stored unchanged.
func NewTransform(fn any) (*Transform, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: transform function is nil", ErrConfiguration)
	}

	v := reflect.ValueOf(fn)
	t := v.Type()

	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: transform must be a function, got %s", ErrConfiguration, t)
	}

	if v.IsNil() {
		return nil, fmt.Errorf("%w: transform function is nil", ErrConfiguration)
	}

	if t.NumIn() != 1 || t.IsVariadic() {
		return nil, fmt.Errorf("%w: transform %s must take exactly one argument", ErrConfiguration, t)
	}

	tr := &Transform{name: funcName(v), fn: v, in: t.In(0)}

	switch {
	case t.NumOut() == 1 && t.Out(0) == errorType:
		tr.shape, tr.out = shapeCheck, tr.in
	case t.NumOut() == 1:
		tr.shape, tr.out = shapeValue, t.Out(0)
	case t.NumOut() == 2 && t.Out(1) == errorType:
		tr.shape, tr.out = shapeValueError, t.Out(0)
	default:
		return nil, fmt.Errorf("%w: transform %s must return a value, an error, or both", ErrConfiguration, t)
	}

	return tr, nil
}

// MustTransform is like NewTransform but panics on a malformed function.
func MustTransform(fn any) *Transform {
	t, err := NewTransform(fn)
	if err != nil {
		panic(err)
	}

	return t
}

// Convert wraps a converting validator.
func Convert[In, Out any](fn func(In) (Out, error)) *Transform {
	return typed(fn, reflect.TypeFor[In](), reflect.TypeFor[Out](), shapeValueError)
}

// Map wraps a conversion that cannot fail.
func Map[In, Out any](fn func(In) Out) *Transform {
	return typed(fn, reflect.TypeFor[In](), reflect.TypeFor[Out](), shapeValue)
}

// Check wraps a validator that leaves the value unchanged.
func Check[T any](fn func(T) error) *Transform {
	t := reflect.TypeFor[T]()

	return typed(fn, t, t, shapeCheck)
}

func typed(fn any, in, out reflect.Type, shape transformShape) *Transform {
	v := reflect.ValueOf(fn)
	if v.IsNil() {
		panic(fmt.Errorf("%w: transform function is nil", ErrConfiguration))
	}

	return &Transform{name: funcName(v), fn: v, in: in, out: out, shape: shape}
}

// Name returns the short name of the wrapped function.
func (t *Transform) Name() string {
	return t.name
}

// In returns the argument type.
func (t *Transform) In() reflect.Type {
	return t.in
}

// Out returns the type of the stored value.
func (t *Transform) Out() reflect.Type {
	return t.out
}

// String implements fmt.Stringer.
func (t *Transform) String() string {
	return t.name
}

// Apply runs the transform on v outside of any record.
func (t *Transform) Apply(v any) (any, error) {
	arg, ok := coerce(v, t.in)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot accept %T", ErrArgumentType, t.name, v)
	}

	return t.call(arg, v)
}

// call invokes the function. raw is returned as-is by check-only transforms.
// Errors returned by the function are passed through unchanged.
func (t *Transform) call(arg reflect.Value, raw any) (any, error) {
	res := t.fn.Call([]reflect.Value{arg})

	switch t.shape {
	case shapeCheck:
		if err, _ := res[0].Interface().(error); err != nil {
			return nil, err
		}

		return raw, nil
	case shapeValueError:
		if err, _ := res[1].Interface().(error); err != nil {
			return nil, err
		}

		return res[0].Interface(), nil
	default:
		return res[0].Interface(), nil
	}
}

// funcName trims the package path from a function's runtime name:
// "record-generator/examples/account.ValidateEmail" -> "account.ValidateEmail".
func funcName(v reflect.Value) string {
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return v.Type().String()
	}

	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return name
}
