package caster

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"struct-mapper/utils"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
	ErrRejected             = errors.New("caster rejected the value")
	ErrSourceMismatch       = errors.New("value does not match caster source type")
)

// Caster is a typed conversion function recognized by Parse.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// Parse inspects the provided function and returns a Caster struct if it is a valid caster function.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func Parse(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Ptr && src.Elem().Kind() == reflect.Ptr {
		return Caster{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return Caster{}, ErrDoublePointer
	}

	alias, name := utils.Unpack2(strings.SplitN(runtime.FuncForPC(fnVal.Pointer()).Name(), ".", 2))

	caster := Caster{
		Src:          src,
		Dst:          dst,
		Name:         name,
		PackageAlias: utils.Second(path.Split(alias)),
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}

		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true

		return caster, nil
	}
}

// Call invokes the caster. An invalid src stands for the zero source value.
// A false bool result is reported as ErrRejected.
func (c Caster) Call(src reflect.Value) (reflect.Value, error) {
	if !c.fn.IsValid() {
		return reflect.Value{}, ErrIsNotACaster
	}

	switch {
	case !src.IsValid():
		src = reflect.Zero(c.Src)
	case src.Type().AssignableTo(c.Src):
	case src.Type().ConvertibleTo(c.Src) && src.Kind() == c.Src.Kind():
		src = src.Convert(c.Src)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s is not %s", ErrSourceMismatch, src.Type(), c.Src)
	}

	out := c.fn.Call([]reflect.Value{src})

	if c.HasErr {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return reflect.Value{}, errVal.Interface().(error)
		}
	}

	if c.HasBool && !out[1].Bool() {
		return reflect.Value{}, ErrRejected
	}

	return out[0], nil
}

// Supports reports whether the caster accepts src and produces a value assignable to dst.
func (c Caster) Supports(src, dst reflect.Type) bool {
	return src.AssignableTo(c.Src) && c.Dst.AssignableTo(dst)
}

// String returns a qualified function name, e.g. "strconv.Itoa".
func (c Caster) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}
