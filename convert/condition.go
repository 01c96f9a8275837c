package convert

import "reflect"

// Condition gates a mapping on the current source value.
type Condition func(src reflect.Value) bool

func NotNil(src reflect.Value) bool { return !IsNil(src) }

// IsNil reports invalid values and nil pointers, maps, slices, interfaces,
// funcs and channels.
func IsNil(src reflect.Value) bool {
	if !src.IsValid() {
		return true
	}

	switch src.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return src.IsNil()
	default:
		return false
	}
}

func NotZero(src reflect.Value) bool {
	return src.IsValid() && !src.IsZero()
}

// Not negates a condition.
func Not(c Condition) Condition {
	return func(src reflect.Value) bool { return !c(src) }
}

// Conditions lists the built-in named conditions.
func Conditions() map[string]Condition {
	return map[string]Condition{
		"not_nil":  NotNil,
		"nil":      IsNil,
		"not_zero": NotZero,
	}
}
