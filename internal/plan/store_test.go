package plan_test

import (
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"struct-mapper/convert"
	"struct-mapper/internal/access"
	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/mapping"
	"struct-mapper/internal/plan"
	"struct-mapper/options"
)

type Animal interface{ Sound() string }

type Dog struct{ Name string }

func (Dog) Sound() string { return "woof" }

type Cat struct{ Name string }

func (Cat) Sound() string { return "meow" }

type AnimalView struct{ Sound string }

type Person struct {
	FirstName string
	LastName  string
	Age       int
	Secret    string
}

type PersonView struct {
	FirstName string
	LastName  string
	Age       string
	Secret    string
	Nickname  string
}

var (
	personT     = reflect.TypeFor[Person]()
	personViewT = reflect.TypeFor[PersonView]()
)

type recorder struct {
	mu       sync.Mutex
	compiled []string
	merged   []string
	failed   []string
}

func (r *recorder) PlanCompiled(tm *plan.TypeMap, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compiled = append(r.compiled, tm.Pair().String())
}

func (r *recorder) PlanMerged(tm *plan.TypeMap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merged = append(r.merged, tm.Pair().String())
}

func (r *recorder) PlanFailed(pair plan.TypePair, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, pair.String())
}

func newStore(t *testing.T, opts ...options.Option) (*plan.Store, *recorder) {
	t.Helper()

	cfg := options.New(opts...)
	rec := &recorder{}
	compiler := plan.NewCompiler(cfg, access.New(cfg), convert.NewRegistry(cfg.Conversions))

	return plan.NewStore(compiler, rec), rec
}

func destinations(tm *plan.TypeMap) []string {
	var out []string
	for _, m := range tm.Mappings() {
		out = append(out, m.Path())
	}

	return out
}

func TestStore_Create(t *testing.T) {
	s, rec := newStore(t)

	tm, err := s.Create(personT, reflect.PointerTo(personViewT))
	require.NoError(t, err)

	assert.Equal(t, plan.NewTypePair(personT, personViewT), tm.Pair())
	assert.Equal(t, "plan_test.Person -> plan_test.PersonView", tm.Pair().String())
	assert.Equal(t, []string{"FirstName", "LastName", "Age", "Secret"}, destinations(tm))
	require.Len(t, tm.Unmapped(), 1)
	assert.Equal(t, "Nickname", tm.Unmapped()[0].String())
	warnings := tm.Warnings()
	assert.True(t, warnings.HasCode(diagnostic.CodeUnmapped))

	assert.Same(t, tm, s.Get(personT, personViewT))
	assert.Equal(t, []string{"plan_test.Person -> plan_test.PersonView"}, rec.compiled)

	again, err := s.Create(personT, personViewT)
	require.NoError(t, err)
	assert.NotSame(t, tm, again, "Create overwrites")
	assert.Len(t, s.All(), 1)
}

func TestStore_Strategies(t *testing.T) {
	s, _ := newStore(t)

	tm, err := s.GetOrCreate(personT, personViewT, plan.Definition{
		Declarations: []mapping.Declaration{func(b *mapping.Builder) {
			b.Using(convert.MustFunc(strings.ToUpper)).Map(b.Source().Get("LastName")).To("Nickname")
			b.Map("n/a").To("Secret")
		}},
	})
	require.NoError(t, err)

	got := map[string]plan.ConversionStrategy{}
	for _, st := range tm.Steps() {
		got[st.Path()] = st.Strategy
	}

	assert.Equal(t, map[string]plan.ConversionStrategy{
		"Nickname":  plan.StrategyTransform,
		"Secret":    plan.StrategyDefault,
		"FirstName": plan.StrategyDirectAssign,
		"LastName":  plan.StrategyDirectAssign,
		"Age":       plan.StrategyConvert,
	}, got)

	assert.Empty(t, tm.Unmapped())
	assert.Contains(t, tm.Explain(), "Nickname")
	assert.Contains(t, tm.Explain(), "explicit")
}

func TestStore_GetAssignable(t *testing.T) {
	s, _ := newStore(t)

	sound := convert.ConverterFunc(func(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
		a := src.Interface().(Animal)
		return reflect.ValueOf(AnimalView{Sound: a.Sound()}), nil
	})

	tm, err := s.GetOrCreate(reflect.TypeFor[Animal](), reflect.TypeFor[AnimalView](), plan.Definition{Converter: sound})
	require.NoError(t, err)
	assert.Empty(t, tm.Mappings(), "a converter skips the matcher")

	assert.Same(t, tm, s.Get(reflect.TypeFor[Dog](), reflect.TypeFor[AnimalView]()))
	assert.Same(t, tm, s.Get(reflect.TypeFor[*Cat](), reflect.TypeFor[AnimalView]()))
	assert.Nil(t, s.Get(reflect.TypeFor[Person](), reflect.TypeFor[AnimalView]()))

	// GetOrCreate finds the interface plan instead of compiling a new one.
	dogPlan, err := s.GetOrCreate(reflect.TypeFor[Dog](), reflect.TypeFor[AnimalView](), plan.Definition{})
	require.NoError(t, err)
	assert.Same(t, tm, dogPlan)
	assert.Len(t, s.All(), 1)
}

func TestStore_GetFirstRegistered(t *testing.T) {
	s, _ := newStore(t)

	type Named interface{ Sound() string }

	first, err := s.GetOrCreate(reflect.TypeFor[Animal](), reflect.TypeFor[AnimalView](), plan.Definition{
		Converter: convert.ConverterFunc(func(reflect.Value, reflect.Type) (reflect.Value, error) {
			return reflect.ValueOf(AnimalView{Sound: "first"}), nil
		}),
	})
	require.NoError(t, err)

	second, err := s.Create(reflect.TypeFor[Named](), reflect.TypeFor[AnimalView]())
	require.NoError(t, err)
	assert.Same(t, second, s.Get(reflect.TypeFor[Named](), reflect.TypeFor[AnimalView]()))

	assert.Same(t, first, s.Get(reflect.TypeFor[Dog](), reflect.TypeFor[AnimalView]()),
		"the first accepting plan wins, not the most specific")

	// A definition for a pair an existing plan accepts is merged into that plan.
	merged, err := s.GetOrCreate(reflect.TypeFor[*Dog](), reflect.TypeFor[AnimalView](), plan.Definition{
		Provider: convert.For(func() *AnimalView { return &AnimalView{} }),
	})
	require.NoError(t, err)
	assert.Same(t, first, merged)
	assert.NotNil(t, first.Provider())
	assert.Len(t, s.All(), 2)
}

func TestStore_GetOrCreateMerge(t *testing.T) {
	s, rec := newStore(t)

	upper := convert.ConverterFunc(func(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
		return reflect.ValueOf(strings.ToUpper(src.String())), nil
	})
	nickname := func(b *mapping.Builder) {
		b.Using(upper).Map(b.Source().Get("FirstName")).To("Nickname")
	}

	tm, err := s.Create(personT, personViewT)
	require.NoError(t, err)

	merged, err := s.GetOrCreate(personT, personViewT, plan.Definition{Declarations: []mapping.Declaration{nickname}})
	require.NoError(t, err)
	assert.Same(t, tm, merged, "merging keeps the plan identity")
	assert.Equal(t, []string{"Nickname", "FirstName", "LastName", "Age", "Secret"}, destinations(tm),
		"explicit mappings run before implicit ones")
	assert.Empty(t, tm.Unmapped())

	// Re-applying the same declaration is a no-op.
	_, err = s.GetOrCreate(personT, personViewT, plan.Definition{Declarations: []mapping.Declaration{nickname}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Nickname", "FirstName", "LastName", "Age", "Secret"}, destinations(tm))

	// An explicit mapping replaces an implicit one and moves ahead of it.
	_, err = s.GetOrCreate(personT, personViewT, plan.Definition{Declarations: []mapping.Declaration{
		func(b *mapping.Builder) { b.Skip().To("Secret") },
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Nickname", "Secret", "FirstName", "LastName", "Age"}, destinations(tm))
	assert.True(t, tm.Mappings()[1].Skip)

	before := tm.Mappings()

	// A conflicting explicit mapping fails and leaves the plan unchanged.
	_, err = s.GetOrCreate(personT, personViewT, plan.Definition{Declarations: []mapping.Declaration{
		func(b *mapping.Builder) { b.Map(b.Source().Get("LastName")).To("Nickname") },
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrConfiguration)

	var report *diagnostic.Report
	require.ErrorAs(t, err, &report)
	assert.Equal(t, []string{diagnostic.CodeDuplicateMapping}, report.Codes())
	after := tm.Mappings()
	require.Len(t, after, len(before))
	for i := range before {
		assert.True(t, before[i].Equal(after[i]), "mapping %d changed: %s", i, after[i])
	}

	assert.Len(t, rec.merged, 3)
	assert.Len(t, rec.failed, 1)
}

func TestStore_ConverterReplaced(t *testing.T) {
	s, _ := newStore(t)

	tm, err := s.Create(personT, personViewT)
	require.NoError(t, err)
	assert.Nil(t, tm.Converter())

	conv := convert.ConverterFunc(func(reflect.Value, reflect.Type) (reflect.Value, error) {
		return reflect.ValueOf(PersonView{Nickname: "whole"}), nil
	})
	provider := convert.For(func() *PersonView { return &PersonView{Nickname: "provided"} })

	_, err = s.GetOrCreate(personT, personViewT, plan.Definition{Converter: conv, Provider: provider})
	require.NoError(t, err)
	assert.NotNil(t, tm.Converter())
	assert.NotNil(t, tm.Provider())
	assert.Len(t, tm.Mappings(), 4, "mappings stay when only the converter changes")
}

func TestStore_FailedCompilePublishesNothing(t *testing.T) {
	s, rec := newStore(t)

	_, err := s.GetOrCreate(personT, personViewT, plan.Definition{Declarations: []mapping.Declaration{
		func(b *mapping.Builder) {
			b.Map(b.Source().Get("Missing")).To("Nickname")
			b.Map(b.Source().Get("FirstName"))
		},
	}})

	var report *diagnostic.Report
	require.ErrorAs(t, err, &report)
	assert.Equal(t, []string{diagnostic.CodeInvalidPath, diagnostic.CodeMissingDestination}, report.Codes())

	assert.Nil(t, s.Get(personT, personViewT))
	assert.Empty(t, s.All())
	assert.Equal(t, []string{"plan_test.Person -> plan_test.PersonView"}, rec.failed)
}

func TestStore_Ambiguity(t *testing.T) {
	type Source struct {
		FirstName string
		First     string
	}

	type Dest struct{ First string }

	s, _ := newStore(t, options.WithStrategy(options.StrategyLoose))

	_, err := s.Create(reflect.TypeFor[Source](), reflect.TypeFor[Dest]())

	var report *diagnostic.Report
	require.ErrorAs(t, err, &report)
	assert.Equal(t, []string{diagnostic.CodeAmbiguousMatch}, report.Codes())

	s, _ = newStore(t, options.WithStrategy(options.StrategyLoose), options.WithIgnoreAmbiguity(true))

	tm, err := s.Create(reflect.TypeFor[Source](), reflect.TypeFor[Dest]())
	require.NoError(t, err)
	assert.Empty(t, tm.Mappings())
	require.Len(t, tm.Unmapped(), 1)
	assert.Equal(t, "First", tm.Unmapped()[0].String())
}

func TestStore_Deterministic(t *testing.T) {
	var plans []string

	for range 5 {
		s, _ := newStore(t)

		tm, err := s.Create(personT, personViewT)
		require.NoError(t, err)

		plans = append(plans, tm.Explain())
	}

	for _, p := range plans[1:] {
		assert.Equal(t, plans[0], p)
	}
}

func TestStore_Concurrent(t *testing.T) {
	s, rec := newStore(t)

	var g errgroup.Group

	results := make([]*plan.TypeMap, 32)
	for i := range results {
		g.Go(func() error {
			tm, err := s.GetOrCreate(personT, personViewT, plan.Definition{})
			results[i] = tm

			return err
		})
	}

	require.NoError(t, g.Wait())

	for _, tm := range results {
		assert.Same(t, results[0], tm)
	}

	assert.Len(t, rec.compiled, 1, "concurrent callers compile once")

	s.Reset()
	assert.Empty(t, s.All())
}
