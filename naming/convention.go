package naming

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeFor[error]()

// Convention decides which methods are property accessors.
// Method types include the receiver as the first input.
type Convention interface {
	// Getter returns the property name exposed by a getter method.
	Getter(method string, fn reflect.Type) (string, bool)
	// Setter returns the property name assigned by a setter method.
	Setter(method string, fn reflect.Type) (string, bool)
}

var (
	// Go accepts Name(), GetName() and IsName() getters and SetName(v) setters.
	Go Convention = goConvention{}
	// Prefixed accepts only GetName()/IsName() getters and SetName(v) setters.
	Prefixed Convention = prefixedConvention{}
	// None disables method accessors entirely.
	None Convention = noneConvention{}
)

// Methods that look like getters but describe the value rather than a property.
var reservedGetters = map[string]struct{}{
	"String":        {},
	"GoString":      {},
	"Error":         {},
	"MarshalJSON":   {},
	"MarshalText":   {},
	"MarshalBinary": {},
	"MarshalYAML":   {},
	"Validate":      {},
}

type goConvention struct{}

func (goConvention) Getter(method string, fn reflect.Type) (string, bool) {
	if !isGetterShape(fn) {
		return "", false
	}

	if _, reserved := reservedGetters[method]; reserved {
		return "", false
	}

	if name, ok := prefixedGetterName(method, fn); ok {
		return name, true
	}

	if strings.HasPrefix(method, "Must") {
		return "", false
	}

	return method, true
}

func (goConvention) Setter(method string, fn reflect.Type) (string, bool) {
	return setterName(method, fn)
}

type prefixedConvention struct{}

func (prefixedConvention) Getter(method string, fn reflect.Type) (string, bool) {
	if !isGetterShape(fn) {
		return "", false
	}

	return prefixedGetterName(method, fn)
}

func (prefixedConvention) Setter(method string, fn reflect.Type) (string, bool) {
	return setterName(method, fn)
}

type noneConvention struct{}

func (noneConvention) Getter(string, reflect.Type) (string, bool) { return "", false }
func (noneConvention) Setter(string, reflect.Type) (string, bool) { return "", false }

// ParseConvention returns the convention registered under name.
func ParseConvention(name string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "go":
		return Go, nil
	case "prefixed":
		return Prefixed, nil
	case "none":
		return None, nil
	default:
		return nil, fmt.Errorf("unknown naming convention %q", name)
	}
}

func isGetterShape(fn reflect.Type) bool {
	if fn.NumIn() != 1 {
		return false
	}

	switch fn.NumOut() {
	case 1:
		return fn.Out(0) != errorType
	case 2:
		return fn.Out(1) == errorType
	default:
		return false
	}
}

func prefixedGetterName(method string, fn reflect.Type) (string, bool) {
	if rest, ok := strings.CutPrefix(method, "Get"); ok && startsWord(rest) {
		return rest, true
	}

	if rest, ok := strings.CutPrefix(method, "Is"); ok && startsWord(rest) && fn.Out(0).Kind() == reflect.Bool {
		return rest, true
	}

	return "", false
}

func startsWord(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsUpper(r)
}

func setterName(method string, fn reflect.Type) (string, bool) {
	rest, ok := strings.CutPrefix(method, "Set")
	if !ok || !startsWord(rest) || fn.NumIn() != 2 {
		return "", false
	}

	switch fn.NumOut() {
	case 0:
		return rest, true
	case 1:
		return rest, fn.Out(0) == errorType
	default:
		return "", false
	}
}
