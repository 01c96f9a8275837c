package plan

import (
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"struct-mapper/convert"
	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/mapping"
)

// Definition is what a caller contributes to a plan.
type Definition struct {
	// Declarations are merged as explicit mappings.
	Declarations []mapping.Declaration
	// Converter replaces the whole plan; a new plan then skips the matcher.
	Converter convert.Converter
	// Provider instantiates the plan's destination values.
	Provider convert.Provider
}

func (d Definition) empty() bool {
	return len(d.Declarations) == 0 && d.Converter == nil && d.Provider == nil
}

// Observer is told about plan lifecycle events. Calls happen under the
// store's writer lock and must not call back into the store.
type Observer interface {
	PlanCompiled(tm *TypeMap, elapsed time.Duration)
	PlanMerged(tm *TypeMap)
	PlanFailed(pair TypePair, err error)
}

type nopObserver struct{}

func (nopObserver) PlanCompiled(*TypeMap, time.Duration) {}
func (nopObserver) PlanMerged(*TypeMap)                  {}
func (nopObserver) PlanFailed(TypePair, error)           {}

// Store caches type maps by type pair. Reads use the published snapshot
// without locking; writers are serialized by one mutex.
type Store struct {
	compiler *Compiler
	observer Observer

	mu    sync.Mutex
	state atomic.Pointer[storeState]
}

type storeState struct {
	byPair map[TypePair]*TypeMap
	order  []*TypeMap
}

// NewStore returns an empty store. observer may be nil.
func NewStore(compiler *Compiler, observer Observer) *Store {
	if observer == nil {
		observer = nopObserver{}
	}

	s := &Store{compiler: compiler, observer: observer}
	s.state.Store(&storeState{byPair: map[TypePair]*TypeMap{}})

	return s
}

// Compiler returns the compiler the store builds plans with.
func (s *Store) Compiler() *Compiler { return s.compiler }

// Get returns the plan stored for exactly (src, dst), else the first plan in
// registration order whose pair accepts them, else nil.
func (s *Store) Get(src, dst reflect.Type) *TypeMap {
	return s.state.Load().find(NewTypePair(src, dst))
}

func (st *storeState) find(pair TypePair) *TypeMap {
	if tm, ok := st.byPair[pair]; ok {
		return tm
	}

	for _, tm := range st.order {
		if tm.pair.Accepts(pair.Source, pair.Destination) {
			return tm
		}
	}

	return nil
}

// All returns every plan in registration order.
func (s *Store) All() []*TypeMap {
	return slices.Clone(s.state.Load().order)
}

// Create compiles an implicit plan for (src, dst) and stores it under the
// exact pair, replacing any previous one.
func (s *Store) Create(src, dst reflect.Type) (*TypeMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := NewTypePair(src, dst)

	tm, err := s.build(pair, Definition{})
	if err != nil {
		return nil, err
	}

	s.publish(tm)

	return tm, nil
}

// GetOrCreate returns the plan Get finds, compiling and storing a new one
// for the exact pair when there is none. A definition is merged into an
// existing plan; its converter and provider replace the plan's. Nothing is
// published when compiling or merging fails.
func (s *Store) GetOrCreate(src, dst reflect.Type, def Definition) (*TypeMap, error) {
	pair := NewTypePair(src, dst)

	if def.empty() {
		if tm := s.state.Load().find(pair); tm != nil {
			return tm, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tm := s.state.Load().find(pair)
	if tm == nil {
		created, err := s.build(pair, def)
		if err != nil {
			return nil, err
		}

		s.publish(created)

		return created, nil
	}

	if def.empty() {
		return tm, nil
	}

	if err := s.merge(tm, def); err != nil {
		return nil, err
	}

	return tm, nil
}

// Reset drops every plan.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Store(&storeState{byPair: map[TypePair]*TypeMap{}})
}

// build compiles a new plan. Callers hold s.mu.
func (s *Store) build(pair TypePair, def Definition) (*TypeMap, error) {
	start := time.Now()

	c := s.compiler.compile(pair, def.Converter == nil, def.Declarations)

	steps, warnings := s.compiler.steps(pair, c.mappings)
	c.diags.Merge(warnings)

	if err := c.diags.Err(); err != nil {
		s.observer.PlanFailed(pair, err)
		return nil, err
	}

	tm := newTypeMap(pair, &typeMapState{
		steps:     steps,
		converter: def.Converter,
		provider:  def.Provider,
		unmapped:  c.unmapped,
		warnings:  c.diags,
	})

	s.observer.PlanCompiled(tm, time.Since(start))

	return tm, nil
}

// merge folds def into an existing plan. Callers hold s.mu.
func (s *Store) merge(tm *TypeMap, def Definition) error {
	st := tm.load().clone()

	if len(def.Declarations) > 0 {
		explicit, diags := mapping.Explicit(tm.pair.Source, tm.pair.Destination, s.compiler.accessor, def.Declarations...)

		merged, mergeDiags := mapping.Merge(stepMappings(st.steps), explicit, tm.pair.String())
		diags.Merge(mergeDiags)

		steps, warnings := s.compiler.steps(tm.pair, merged)
		diags.Merge(warnings)

		if err := diags.Err(); err != nil {
			s.observer.PlanFailed(tm.pair, err)
			return err
		}

		st.steps = steps
		st.unmapped = unmapped(st.unmapped, merged)
		var all diagnostic.Diagnostics
		all.Merge(st.warnings)
		all.Merge(diags)
		st.warnings = all
	}

	if def.Converter != nil {
		st.converter = def.Converter
	}

	if def.Provider != nil {
		st.provider = def.Provider
	}

	tm.state.Store(st)
	s.observer.PlanMerged(tm)

	return nil
}

// publish stores tm under its exact pair, keeping the registration slot of
// a plan it replaces. Callers hold s.mu.
func (s *Store) publish(tm *TypeMap) {
	cur := s.state.Load()

	next := &storeState{
		byPair: maps.Clone(cur.byPair),
		order:  slices.Clone(cur.order),
	}

	if idx := slices.IndexFunc(next.order, func(e *TypeMap) bool { return e.pair == tm.pair }); idx >= 0 {
		next.order[idx] = tm
	} else {
		next.order = append(next.order, tm)
	}

	next.byPair[tm.pair] = tm

	s.state.Store(next)
}

func stepMappings(steps []Step) []mapping.Mapping {
	out := make([]mapping.Mapping, len(steps))
	for i, st := range steps {
		out[i] = st.Mapping
	}

	return out
}
