package common

import (
	"path"
	"reflect"
	"strconv"
)

// UnknownStr is the fallback name for enum values without a label.
const UnknownStr = "unknown"

// pkgAlias returns the last element of a package path.
func pkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// TypeName returns a short, readable name for t, qualified with the package alias
// for named types (e.g. "store.Order", "[]*warehouse.Item").
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + TypeName(t.Elem())
	case reflect.Slice:
		if t.Name() == "" {
			return "[]" + TypeName(t.Elem())
		}
	case reflect.Array:
		if t.Name() == "" {
			return "[" + strconv.Itoa(t.Len()) + "]" + TypeName(t.Elem())
		}
	case reflect.Map:
		if t.Name() == "" {
			return "map[" + TypeName(t.Key()) + "]" + TypeName(t.Elem())
		}
	default:
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return pkgAlias(t.PkgPath()) + "." + t.Name()
}

// Base strips every pointer level from t.
func Base(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}
