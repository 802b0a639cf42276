package record

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultTagKey is the struct tag key read by Define.
const DefaultTagKey = "record"

var durationType = reflect.TypeFor[time.Duration]()

// parseTag decodes `init=<bool>,default=<literal>`. Items are separated by
// commas; a default containing commas is written in single quotes, as in
// `default='a, b'`. The literal is kept as text until the type it must fit
// is known.
func parseTag(tag string) (fieldDecl, error) {
	d := fieldDecl{init: true}

	rest := tag
	for rest != "" {
		rest = strings.TrimLeft(rest, " ")

		var part string
		if quoted, ok := strings.CutPrefix(rest, "default='"); ok {
			value, after, closed := strings.Cut(quoted, "'")
			if !closed {
				return d, fmt.Errorf("default %q: missing closing quote", rest)
			}

			after = strings.TrimLeft(after, " ")
			if after != "" && after[0] != ',' {
				return d, fmt.Errorf("default %q: unexpected %q after closing quote", value, after)
			}

			d.literal, d.hasDefault, d.fromTag = value, true, true
			rest = strings.TrimPrefix(after, ",")

			continue
		}

		part, rest, _ = strings.Cut(rest, ",")
		key, value, hasValue := strings.Cut(part, "=")

		switch strings.TrimSpace(key) {
		case "":
			continue
		case "default":
			d.literal, d.hasDefault, d.fromTag = value, true, true
		case "init":
			include := true
			if hasValue {
				b, err := cast.ToBoolE(strings.TrimSpace(value))
				if err != nil {
					return d, fmt.Errorf("init %q: %w", value, err)
				}

				include = b
			}

			d.init, d.initSet = include, true
		default:
			return d, fmt.Errorf("unknown key %q", key)
		}
	}

	return d, nil
}

// parseLiteral converts a tag literal into a value of type t.
func parseLiteral(s string, t reflect.Type) (any, error) {
	var (
		v   any
		err error
	)

	switch k := t.Kind(); {
	case t == durationType:
		v, err = cast.ToDurationE(s)
	case k == reflect.String, k == reflect.Interface && t.NumMethod() == 0:
		v = s
	case k == reflect.Bool:
		v, err = cast.ToBoolE(s)
	case k == reflect.Float32 || k == reflect.Float64:
		v, err = cast.ToFloat64E(s)
	case unsigned(k):
		v, err = cast.ToUint64E(s)
	case integer(k):
		v, err = cast.ToInt64E(s)
	default:
		return nil, fmt.Errorf("literal defaults are not supported for %s", t)
	}

	if err != nil {
		return nil, err
	}

	out, ok := coerce(v, t)
	if !ok {
		return nil, fmt.Errorf("%v does not fit %s", v, t)
	}

	return out.Interface(), nil
}
