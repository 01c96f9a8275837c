package plan

import (
	"fmt"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"struct-mapper/convert"
	"struct-mapper/internal/access"
	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/mapping"
)

// TypeMap is the compiled plan of one type pair. Its state is an immutable
// snapshot replaced as a whole, so readers need no lock.
type TypeMap struct {
	pair  TypePair
	state atomic.Pointer[typeMapState]
}

type typeMapState struct {
	steps     []Step
	converter convert.Converter
	provider  convert.Provider
	unmapped  []access.Path
	warnings  diagnostic.Diagnostics
}

func newTypeMap(pair TypePair, st *typeMapState) *TypeMap {
	tm := &TypeMap{pair: pair}
	tm.state.Store(st)

	return tm
}

func (tm *TypeMap) load() *typeMapState { return tm.state.Load() }

// Pair returns the type pair the plan was stored under.
func (tm *TypeMap) Pair() TypePair { return tm.pair }

// Steps returns the mappings in execution order with their strategies.
// The slice is shared and must not be modified.
func (tm *TypeMap) Steps() []Step { return tm.load().steps }

// Mappings returns the mappings in execution order.
func (tm *TypeMap) Mappings() []mapping.Mapping {
	return stepMappings(tm.load().steps)
}

// Converter returns the whole-plan converter, or nil.
func (tm *TypeMap) Converter() convert.Converter { return tm.load().converter }

// Provider returns the plan provider, or nil.
func (tm *TypeMap) Provider() convert.Provider { return tm.load().provider }

// Unmapped returns the destination paths nothing maps to.
func (tm *TypeMap) Unmapped() []access.Path { return tm.load().unmapped }

// Warnings returns the non-fatal diagnostics of the last compile or merge.
func (tm *TypeMap) Warnings() diagnostic.Diagnostics { return tm.load().warnings }

// Explain renders the plan as an aligned table.
func (tm *TypeMap) Explain() string {
	st := tm.load()

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", tm.pair)

	if st.converter != nil {
		fmt.Fprintf(&sb, "  converter: %v\n", st.converter)
	}

	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	for _, s := range st.steps {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", s.Mapping.String(), s.Origin, s.Strategy, s.Explanation)
	}

	_ = w.Flush()

	for _, p := range st.unmapped {
		fmt.Fprintf(&sb, "  unmapped: %s\n", p)
	}

	return sb.String()
}

func (st *typeMapState) clone() *typeMapState {
	cp := *st
	return &cp
}
