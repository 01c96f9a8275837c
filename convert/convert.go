package convert

import (
	"errors"
	"fmt"
	"reflect"

	"struct-mapper/caster"
)

// ErrCannotConvert is returned by converters that do not handle a pair.
var ErrCannotConvert = errors.New("cannot convert")

// Converter converts src into a value assignable to dst.
type Converter interface {
	Convert(src reflect.Value, dst reflect.Type) (reflect.Value, error)
}

// Typed is a converter that knows statically which pairs it handles.
type Typed interface {
	Converter
	Supports(src, dst reflect.Type) bool
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc func(src reflect.Value, dst reflect.Type) (reflect.Value, error)

func (f ConverterFunc) Convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return f(src, dst)
}

// Supports reports whether c handles src -> dst. Untyped converters are
// assumed to handle nothing statically.
func Supports(c Converter, src, dst reflect.Type) bool {
	typed, ok := c.(Typed)
	return ok && typed.Supports(src, dst)
}

// Cannot builds an ErrCannotConvert error for a pair.
func Cannot(src reflect.Type, dst reflect.Type) error {
	return fmt.Errorf("%w: %s -> %s", ErrCannotConvert, typeString(src), typeString(dst))
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

type funcConverter struct {
	caster caster.Caster
}

// Func wraps a typed function as a converter. See caster.Parse for the
// accepted shapes. A false bool result is reported as ErrCannotConvert.
func Func(fn any) (Typed, error) {
	c, err := caster.Parse(fn)
	if err != nil {
		return nil, err
	}

	return &funcConverter{caster: c}, nil
}

// MustFunc is like Func but panics on error.
func MustFunc(fn any) Typed {
	c, err := Func(fn)
	if err != nil {
		panic(err)
	}

	return c
}

func (f *funcConverter) Supports(src, dst reflect.Type) bool {
	return f.caster.Supports(src, dst)
}

// Convert calls the function. The result is not checked against dst;
// callers adapt it.
func (f *funcConverter) Convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	out, err := f.caster.Call(src)
	if errors.Is(err, caster.ErrRejected) || errors.Is(err, caster.ErrSourceMismatch) {
		return reflect.Value{}, fmt.Errorf("%w: %w", ErrCannotConvert, err)
	}

	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s: %w", f.caster, err)
	}

	return out, nil
}

func (f *funcConverter) String() string {
	return f.caster.String()
}
