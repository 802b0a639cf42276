package schema

import (
	"fmt"
	"go/types"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Literal renders the YAML scalar v as a Go constant expression assignable
// to t. Named types with a basic underlying type accept the literals of that
// type; time.Duration also accepts duration strings such as "1m30s".
func Literal(v any, t types.Type) (string, error) {
	if v == nil {
		if Nillable(t) {
			return "nil", nil
		}

		return "", fmt.Errorf("nil is not a valid %s", t)
	}

	if isDuration(t) {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return "", err
		}

		return strconv.FormatInt(int64(d), 10), nil
	}

	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return "", fmt.Errorf("literal defaults are not supported for %s", t)
	}

	info := b.Info()

	switch {
	case info&types.IsString != 0:
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", err
		}

		return strconv.Quote(s), nil

	case info&types.IsBoolean != 0:
		bv, err := cast.ToBoolE(v)
		if err != nil {
			return "", err
		}

		return strconv.FormatBool(bv), nil

	case info&types.IsInteger != 0:
		return integerLiteral(v, b)

	case info&types.IsFloat != 0:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return "", err
		}

		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%v is not a constant", f)
		}

		return strconv.FormatFloat(f, 'g', -1, 64), nil

	default:
		return "", fmt.Errorf("literal defaults are not supported for %s", t)
	}
}

func integerLiteral(v any, b *types.Basic) (string, error) {
	if f, ok := v.(float64); ok && f != math.Trunc(f) {
		return "", fmt.Errorf("%v is not an integer", f)
	}

	bits := intBits(b.Kind())

	if b.Info()&types.IsUnsigned != 0 {
		if i, err := cast.ToInt64E(v); err == nil && i < 0 {
			return "", fmt.Errorf("%d overflows %s", i, b)
		}

		u, err := cast.ToUint64E(v)
		if err != nil {
			return "", err
		}

		if bits < 64 && u >= 1<<bits {
			return "", fmt.Errorf("%d overflows %s", u, b)
		}

		return strconv.FormatUint(u, 10), nil
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return "", err
	}

	if bits < 64 && (i < -(1<<(bits-1)) || i >= 1<<(bits-1)) {
		return "", fmt.Errorf("%d overflows %s", i, b)
	}

	return strconv.FormatInt(i, 10), nil
}

func intBits(k types.BasicKind) uint {
	switch k {
	case types.Int8, types.Uint8:
		return 8
	case types.Int16, types.Uint16:
		return 16
	case types.Int32, types.Uint32:
		return 32
	default:
		return 64
	}
}

func isDuration(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Duration"
}

// Nillable reports whether nil is assignable to t.
func Nillable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return true
	default:
		return false
	}
}
