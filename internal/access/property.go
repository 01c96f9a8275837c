package access

import (
	"reflect"
	"strings"

	"struct-mapper/internal/common"
)

// Side selects the readable or the writable view of a type.
type Side int

const (
	Read Side = iota
	Write
)

func (s Side) String() string {
	if s == Write {
		return "write"
	}

	return "read"
}

// Kind tells how a property is reached.
type Kind int

const (
	KindField Kind = iota
	KindGetter
	KindSetter
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	default:
		return common.UnknownStr
	}
}

// Property is one step of a Path.
type Property struct {
	Name     string
	Owner    reflect.Type
	Type     reflect.Type
	Kind     Kind
	Index    []int
	Method   string
	Exported bool
}

// IsMethod reports whether the property is reached through a method call.
func (p Property) IsMethod() bool {
	return p.Kind != KindField
}

// Equal compares two properties by owner, kind and name.
func (p Property) Equal(other Property) bool {
	return p.Owner == other.Owner && p.Kind == other.Kind && p.Name == other.Name && p.Method == other.Method
}

func (p Property) String() string {
	if p.IsMethod() {
		return p.Method + "()"
	}

	return p.Name
}

// Path is an ordered, non-empty route from a root type to a value.
type Path []Property

// String joins property names with dots.
func (p Path) String() string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}

	return strings.Join(names, ".")
}

// Type returns the type of the last property, or nil for an empty path.
func (p Path) Type() reflect.Type {
	if len(p) == 0 {
		return nil
	}

	return p[len(p)-1].Type
}

// Root returns the owner of the first property, or nil for an empty path.
func (p Path) Root() reflect.Type {
	if len(p) == 0 {
		return nil
	}

	return p[0].Owner
}

// Last returns the final property.
func (p Path) Last() Property {
	return p[len(p)-1]
}

// Names lists the property names in order.
func (p Path) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}

	return names
}

// Equal compares two paths step by step.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// HasPrefix reports whether prefix is a strict or equal prefix of p by name.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}

	for i := range prefix {
		if p[i].Name != prefix[i].Name {
			return false
		}
	}

	return true
}

// Append returns a new path with prop added, never sharing p's backing array.
func (p Path) Append(prop Property) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, prop)
}
