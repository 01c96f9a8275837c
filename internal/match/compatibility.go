package match

import (
	"reflect"

	"struct-mapper/internal/common"
	"struct-mapper/primitive"
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means no conversion route exists.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means the value is carried structurally: pointer
	// wrapping, nested plans or element-wise collections.
	TypeNeedsTransform
	// TypeConvertible means a registered or built-in converter handles the pair.
	TypeConvertible
	// TypeAssignable means the source type can be directly assigned to the target.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return common.UnknownStr
	}
}

// Score returns a 0-1 weight used by the fuzzy strategy.
func (c TypeCompatibility) Score() float64 {
	switch c {
	case TypeIdentical:
		return 1.0
	case TypeAssignable:
		return 0.9
	case TypeConvertible:
		return 0.7
	case TypeNeedsTransform:
		return 0.4
	default:
		return 0
	}
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    string // String representation of source type
	TargetType    string // String representation of target type
}

// Converters reports which scalar pairs a converter chain handles.
type Converters interface {
	CanConvert(src, dst reflect.Type) bool
}

// ScoreTypeCompatibility determines how a source value reaches a target type.
// conv may be nil.
func ScoreTypeCompatibility(source, target reflect.Type, conv Converters) TypeCompatibilityResult {
	result := TypeCompatibilityResult{
		SourceType: common.TypeName(source),
		TargetType: common.TypeName(target),
	}

	switch {
	case source == target:
		result.Compatibility, result.Reason = TypeIdentical, "types are identical"
	case source.AssignableTo(target):
		result.Compatibility, result.Reason = TypeAssignable, "source is assignable to target"
	case conv != nil && conv.CanConvert(source, target):
		result.Compatibility, result.Reason = TypeConvertible, "a converter handles the pair"
	default:
		result.Compatibility, result.Reason = needsTransform(source, target, conv, map[[2]reflect.Type]struct{}{})
	}

	return result
}

// needsTransform checks routes that the engine resolves structurally.
func needsTransform(source, target reflect.Type, conv Converters, seen map[[2]reflect.Type]struct{}) (TypeCompatibility, string) {
	key := [2]reflect.Type{source, target}
	if _, ok := seen[key]; ok {
		return TypeNeedsTransform, "recursive type"
	}

	seen[key] = struct{}{}

	srcBase, dstBase := common.Base(source), common.Base(target)

	if srcBase != source || dstBase != target {
		if srcBase == dstBase || srcBase.AssignableTo(dstBase) || (conv != nil && conv.CanConvert(srcBase, dstBase)) {
			return TypeNeedsTransform, "requires pointer dereference or taking address"
		}
	}

	if dstBase.Kind() == reflect.Interface {
		if srcBase.Implements(dstBase) || reflect.PointerTo(srcBase).Implements(dstBase) {
			return TypeNeedsTransform, "source implements target interface"
		}

		return TypeIncompatible, "source does not implement target interface"
	}

	switch {
	case isStructural(srcBase) && isStructural(dstBase):
		return TypeNeedsTransform, "struct to struct"

	case isList(srcBase) && isList(dstBase):
		if c, _ := elemCompatibility(srcBase.Elem(), dstBase.Elem(), conv, seen); c >= TypeNeedsTransform {
			return TypeNeedsTransform, "element-wise collection"
		}

		return TypeIncompatible, "collection elements are not compatible"

	case srcBase.Kind() == reflect.Map && dstBase.Kind() == reflect.Map:
		keys, _ := elemCompatibility(srcBase.Key(), dstBase.Key(), conv, seen)
		elems, _ := elemCompatibility(srcBase.Elem(), dstBase.Elem(), conv, seen)

		if keys >= TypeNeedsTransform && elems >= TypeNeedsTransform {
			return TypeNeedsTransform, "entry-wise map"
		}

		return TypeIncompatible, "map keys or values are not compatible"
	}

	return TypeIncompatible, "types are not compatible"
}

func elemCompatibility(source, target reflect.Type, conv Converters, seen map[[2]reflect.Type]struct{}) (TypeCompatibility, string) {
	switch {
	case source == target:
		return TypeIdentical, ""
	case source.AssignableTo(target):
		return TypeAssignable, ""
	case conv != nil && conv.CanConvert(source, target):
		return TypeConvertible, ""
	default:
		return needsTransform(source, target, conv, seen)
	}
}

// isStructural reports struct types mapped property by property. Structs
// with a primitive kind, such as time.Time, are scalars.
func isStructural(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && primitive.FromReflectType(t) == 0
}

func isList(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}
