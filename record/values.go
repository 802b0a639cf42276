package record

import (
	"reflect"
)

// nillable reports whether the zero value of t is nil.
func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func integer(k reflect.Kind) bool {
	return numeric(k) && k != reflect.Float32 && k != reflect.Float64
}

func unsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	default:
		return false
	}
}

// compatible reports whether values of type from may be stored as type to:
// assignable, or a conversion between two numeric, two string or two bool kinds.
func compatible(from, to reflect.Type) bool {
	if from.AssignableTo(to) {
		return true
	}

	if !from.ConvertibleTo(to) {
		return false
	}

	fk, tk := from.Kind(), to.Kind()

	switch {
	case numeric(fk) && numeric(tk):
		return true
	case fk == reflect.String && tk == reflect.String:
		return true
	case fk == reflect.Bool && tk == reflect.Bool:
		return true
	default:
		return false
	}
}

// statically reports whether a value of type from can be checked against to
// before construction. Interface-typed producers are checked per value.
func statically(from reflect.Type) bool {
	return from.Kind() != reflect.Interface
}

// coerce turns v into a value of type t. Conversions to integer kinds must be
// lossless: 300 does not fit an int8, -1 is not a uint and 2.5 is not an int.
func coerce(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		if nillable(t) {
			return reflect.Zero(t), true
		}

		return reflect.Value{}, false
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}

	if !compatible(rv.Type(), t) {
		return reflect.Value{}, false
	}

	if unsigned(t.Kind()) && negative(rv) {
		return reflect.Value{}, false
	}

	out := rv.Convert(t)
	if out.CanInt() && rv.CanUint() && out.Int() < 0 {
		return reflect.Value{}, false
	}

	if integer(t.Kind()) && !out.Convert(rv.Type()).Equal(rv) {
		return reflect.Value{}, false
	}

	return out, true
}
