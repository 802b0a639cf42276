package record

import (
	"errors"
	"fmt"
	"reflect"
)

// factory produces a fresh default per instance.
type factory struct {
	fn        reflect.Value
	out       reflect.Type
	withError bool
}

// newFactory accepts func() V and func() (V, error).
func newFactory(fn any) (*factory, error) {
	if fn == nil {
		return nil, errors.New("default factory is nil")
	}

	v := reflect.ValueOf(fn)
	t := v.Type()

	if t.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("default factory must be a function, got %s", t)
	}

	if t.NumIn() != 0 {
		return nil, fmt.Errorf("default factory %s must take no arguments", t)
	}

	switch {
	case t.NumOut() == 1 && t.Out(0) != errorType:
		return &factory{fn: v, out: t.Out(0)}, nil
	case t.NumOut() == 2 && t.Out(1) == errorType:
		return &factory{fn: v, out: t.Out(0), withError: true}, nil
	default:
		return nil, fmt.Errorf("default factory %s must return a value, optionally with an error", t)
	}
}

// produce calls the factory. Its error is returned unchanged.
func (f *factory) produce() (any, error) {
	res := f.fn.Call(nil)
	if f.withError {
		if err, _ := res[1].Interface().(error); err != nil {
			return nil, err
		}
	}

	return res[0].Interface(), nil
}
