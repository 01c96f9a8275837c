package plan

import (
	"reflect"

	"struct-mapper/internal/common"
	"struct-mapper/internal/mapping"
	"struct-mapper/internal/match"
)

// ConversionStrategy describes how a mapping carries its value.
type ConversionStrategy int

const (
	// StrategyDirectAssign - the value is assigned as is.
	StrategyDirectAssign ConversionStrategy = iota
	// StrategyConvert - a converter of the chain handles the pair.
	StrategyConvert
	// StrategyPointerDeref - dereference the source pointer, nil leaves the destination alone.
	StrategyPointerDeref
	// StrategyPointerWrap - allocate a destination pointer around the value.
	StrategyPointerWrap
	// StrategySliceMap - map slice or array elements one by one.
	StrategySliceMap
	// StrategyMap - map keys and values entry by entry.
	StrategyMap
	// StrategyNestedCast - map a nested struct with its own plan.
	StrategyNestedCast
	// StrategyPointerNestedCast - nested plan behind pointers, cycle aware.
	StrategyPointerNestedCast
	// StrategyInterface - the source implements the destination interface.
	StrategyInterface
	// StrategyTransform - the mapping's own converter.
	StrategyTransform
	// StrategyDefault - a constant from the declaration.
	StrategyDefault
	// StrategyIgnore - explicitly skipped.
	StrategyIgnore
	// StrategyUnresolved - no route known at compile time; a converter
	// registered later may still handle it.
	StrategyUnresolved
)

// String returns a human-readable strategy name.
func (s ConversionStrategy) String() string {
	switch s {
	case StrategyDirectAssign:
		return "direct_assign"
	case StrategyConvert:
		return "convert"
	case StrategyPointerDeref:
		return "pointer_deref"
	case StrategyPointerWrap:
		return "pointer_wrap"
	case StrategySliceMap:
		return "slice_map"
	case StrategyMap:
		return "map"
	case StrategyNestedCast:
		return "nested_cast"
	case StrategyPointerNestedCast:
		return "pointer_nested_cast"
	case StrategyInterface:
		return "interface"
	case StrategyTransform:
		return "transform"
	case StrategyDefault:
		return "default"
	case StrategyIgnore:
		return "ignore"
	case StrategyUnresolved:
		return "unresolved"
	default:
		return common.UnknownStr
	}
}

// Step is a mapping with the strategy chosen for it at compile time.
type Step struct {
	mapping.Mapping
	Strategy    ConversionStrategy
	Explanation string
}

// determineStrategy picks the strategy of m, reading from a srcRoot value.
func determineStrategy(m mapping.Mapping, srcRoot reflect.Type, conv match.Converters) (ConversionStrategy, string) {
	switch {
	case m.Skip:
		return StrategyIgnore, "skipped"
	case m.Converter != nil:
		return StrategyTransform, "mapping converter"
	case m.Kind == mapping.KindConstant && !m.Constant.IsValid():
		return StrategyDefault, "zero value"
	}

	source, target := m.SourceType(srcRoot), m.Destination.Type()
	compat := match.ScoreTypeCompatibility(source, target, conv)

	var strategy ConversionStrategy

	switch compat.Compatibility {
	case match.TypeIdentical, match.TypeAssignable:
		strategy = StrategyDirectAssign
	case match.TypeConvertible:
		strategy = StrategyConvert
	case match.TypeNeedsTransform:
		strategy = structuralStrategy(source, target)
	default:
		strategy = StrategyUnresolved
	}

	if m.Kind == mapping.KindConstant && strategy != StrategyUnresolved {
		return StrategyDefault, "constant, " + compat.Reason
	}

	return strategy, compat.Reason
}

func structuralStrategy(source, target reflect.Type) ConversionStrategy {
	srcPtr, dstPtr := source.Kind() == reflect.Ptr, target.Kind() == reflect.Ptr
	srcBase, dstBase := common.Base(source), common.Base(target)

	switch {
	case dstBase.Kind() == reflect.Interface:
		return StrategyInterface
	case srcBase.Kind() == reflect.Struct && dstBase.Kind() == reflect.Struct && srcBase != dstBase:
		if srcPtr || dstPtr {
			return StrategyPointerNestedCast
		}

		return StrategyNestedCast
	case srcPtr && !dstPtr:
		return StrategyPointerDeref
	case !srcPtr && dstPtr:
		return StrategyPointerWrap
	case srcBase.Kind() == reflect.Map:
		return StrategyMap
	case srcBase.Kind() == reflect.Slice || srcBase.Kind() == reflect.Array:
		return StrategySliceMap
	default:
		return StrategyPointerNestedCast
	}
}
