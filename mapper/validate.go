package mapper

import (
	"fmt"
	"reflect"

	"struct-mapper/caster"
	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/plan"
)

// Validate reports every stored type map that leaves destination paths
// unmapped. Skipped paths are not reported.
func (m *Mapper) Validate() error {
	var diags diagnostic.Diagnostics

	for _, tm := range m.store.All() {
		if tm.Converter() != nil {
			continue
		}

		pair := tm.Pair().String()
		for _, p := range tm.Unmapped() {
			diags.AddError(diagnostic.CodeUnmapped, "destination path has no source", pair, p.String())
		}
	}

	return diags.Err()
}

// Prepare compiles the type map of the pair and of every struct pair
// reachable through its steps, so that mapping calls find them stored.
// The type maps are returned in the order they were compiled.
func (m *Mapper) Prepare(src, dst reflect.Type) ([]*TypeMap, error) {
	var (
		dealer caster.Dealer
		out    []*TypeMap
	)

	root := plan.NewTypePair(src, dst)
	dealer.Needs(root.Source, root.Destination)

	for {
		s, d, ok := dealer.NextNeeds()
		if !ok {
			break
		}

		tm, err := m.store.GetOrCreate(s, d, Definition{})
		if err != nil {
			return out, fmt.Errorf("prepare %s: %w", root, err)
		}

		out = append(out, tm)

		if tm.Converter() != nil {
			continue
		}

		for _, step := range tm.Steps() {
			switch step.Strategy {
			case plan.StrategyNestedCast, plan.StrategyPointerNestedCast,
				plan.StrategySliceMap, plan.StrategyMap,
				plan.StrategyPointerWrap, plan.StrategyPointerDeref:
			default:
				continue
			}

			if ns, nd, ok := nestedPair(step.SourceType(s), step.Destination.Type()); ok {
				dealer.Needs(ns, nd)
			}
		}
	}

	return out, nil
}

// nestedPair unwraps pointers and containers down to a struct pair that
// needs a plan of its own.
func nestedPair(src, dst reflect.Type) (reflect.Type, reflect.Type, bool) {
	for src != nil && dst != nil {
		if src.AssignableTo(dst) {
			return nil, nil, false
		}

		switch caster.DispatchBase(src, dst) {
		case caster.DispatcherStruct:
			_, s := caster.PtrDepthAndBase(src)
			_, d := caster.PtrDepthAndBase(dst)

			return s, d, !s.AssignableTo(d)
		case caster.DispatcherSlice:
			_, s := caster.PtrDepthAndBase(src)
			_, d := caster.PtrDepthAndBase(dst)
			src, dst = s.Elem(), d.Elem()
		case caster.DispatcherMap:
			_, s := caster.PtrDepthAndBase(src)
			_, d := caster.PtrDepthAndBase(dst)
			src, dst = s.Elem(), d.Elem()
		default:
			return nil, nil, false
		}
	}

	return nil, nil, false
}
