package mapping

import (
	"fmt"
	"reflect"

	"struct-mapper/convert"
	"struct-mapper/internal/access"
	"struct-mapper/internal/common"
	"struct-mapper/internal/match"
)

// Kind tells where a mapping takes its value from.
type Kind int

const (
	// KindProperty reads a source property path.
	KindProperty Kind = iota
	// KindConstant writes a value supplied in the declaration.
	KindConstant
	// KindSource converts the source root itself.
	KindSource
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindConstant:
		return "constant"
	case KindSource:
		return "source"
	default:
		return common.UnknownStr
	}
}

// Origin tells whether a mapping was declared or discovered.
type Origin int

const (
	OriginImplicit Origin = iota
	OriginExplicit
)

func (o Origin) String() string {
	if o == OriginExplicit {
		return "explicit"
	}

	return "implicit"
}

// Mapping correlates a source value with one destination path.
type Mapping struct {
	Kind        Kind
	Source      access.Path
	Destination access.Path
	// Constant is the value of a constant mapping; invalid means zero.
	Constant reflect.Value

	Skip      bool
	Converter convert.Converter
	Condition convert.Condition
	Provider  convert.Provider
	Origin    Origin
}

// FromCandidate turns an accepted match into an implicit property mapping.
func FromCandidate(c match.Candidate) Mapping {
	return Mapping{
		Kind:        KindProperty,
		Source:      c.Source,
		Destination: c.Destination,
		Origin:      OriginImplicit,
	}
}

// Path returns the dotted destination path.
func (m Mapping) Path() string {
	return m.Destination.String()
}

// SourceType returns the type of the value the mapping reads.
func (m Mapping) SourceType(root reflect.Type) reflect.Type {
	switch m.Kind {
	case KindProperty:
		return m.Source.Type()
	case KindConstant:
		if m.Constant.IsValid() {
			return m.Constant.Type()
		}

		return m.Destination.Type()
	default:
		return root
	}
}

func (m Mapping) String() string {
	if m.Skip {
		return "skip " + m.Path()
	}

	switch m.Kind {
	case KindConstant:
		if !m.Constant.IsValid() {
			return "zero -> " + m.Path()
		}

		return fmt.Sprintf("%#v -> %s", m.Constant.Interface(), m.Path())
	case KindSource:
		return ". -> " + m.Path()
	default:
		return m.Source.String() + " -> " + m.Path()
	}
}

// Equal reports whether two mappings have the same effect. Functions are
// compared by code pointer, so converters built from the same literal are equal.
func (m Mapping) Equal(other Mapping) bool {
	if m.Kind != other.Kind || m.Skip != other.Skip || m.Origin != other.Origin {
		return false
	}

	if !m.Destination.Equal(other.Destination) || !m.Source.Equal(other.Source) {
		return false
	}

	if m.Constant.IsValid() != other.Constant.IsValid() {
		return false
	}

	if m.Constant.IsValid() && !reflect.DeepEqual(m.Constant.Interface(), other.Constant.Interface()) {
		return false
	}

	return sameValue(m.Converter, other.Converter) &&
		sameValue(m.Condition, other.Condition) &&
		sameValue(m.Provider, other.Provider)
}

func sameValue(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)

	switch {
	case !va.IsValid() || !vb.IsValid():
		return va.IsValid() == vb.IsValid()
	case va.Type() != vb.Type():
		return false
	case va.Kind() == reflect.Func:
		return va.Pointer() == vb.Pointer()
	case va.Comparable():
		return va.Equal(vb)
	default:
		return false
	}
}
