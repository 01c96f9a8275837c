package options_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-mapper/naming"
	"struct-mapper/options"
)

type widget struct{}

func TestDefault(t *testing.T) {
	cfg := options.Default()

	assert.Equal(t, options.AccessPublic, cfg.FieldAccess)
	assert.True(t, cfg.FieldMatching)
	assert.Equal(t, options.StrategyStandard, cfg.Strategy)
	assert.False(t, cfg.IgnoreAmbiguity)
	assert.True(t, cfg.ResolveCircular)
	assert.Equal(t, options.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, options.CategoryDefault, cfg.Conversions)
	assert.Equal(t, naming.Go, cfg.Source.Convention)
	assert.Empty(t, cfg.Inhibited())
}

func TestWith_CopiesSnapshot(t *testing.T) {
	base := options.New(options.WithInhibited(reflect.TypeFor[widget]()))
	derived := base.With(
		options.WithStrategy(options.StrategyLoose),
		options.WithInhibited(reflect.TypeFor[*int]()),
		options.WithMaxDepth(0),
	)

	assert.Equal(t, options.StrategyStandard, base.Strategy)
	assert.Equal(t, options.StrategyLoose, derived.Strategy)
	assert.Equal(t, 1, derived.MaxDepth)

	assert.True(t, base.IsInhibited(reflect.TypeFor[*widget]()))
	assert.False(t, base.IsInhibited(reflect.TypeFor[int]()))
	assert.True(t, derived.IsInhibited(reflect.TypeFor[int]()))
	assert.True(t, derived.IsInhibited(reflect.TypeFor[widget]()))
}

func TestSide_Tokens(t *testing.T) {
	cfg := options.New(options.WithSourceNaming(options.Side{Transformer: naming.StripAccessorPrefix}))

	assert.Equal(t, []string{"first", "name"}, cfg.Source.Tokens("GetFirstName"))
	assert.Equal(t, []string{"get", "first", "name"}, cfg.Destination.Tokens("GetFirstName"))
	assert.Equal(t, []string{"a", "b"}, options.Side{}.Tokens("aB"))
}

func TestParseEnums(t *testing.T) {
	for _, s := range []options.MatchingStrategy{
		options.StrategyStandard, options.StrategyLoose, options.StrategyStrict, options.StrategyFuzzy,
	} {
		parsed, err := options.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := options.ParseStrategy("greedy")
	require.Error(t, err)

	level, err := options.ParseAccessLevel("private")
	require.NoError(t, err)
	assert.Equal(t, options.AccessPrivate, level)
	assert.Equal(t, "private", level.String())

	_, err = options.ParseAccessLevel("protected")
	require.Error(t, err)
}

func TestCategories(t *testing.T) {
	c, err := options.ParseCategories("safe_number", "text_number")
	require.NoError(t, err)
	assert.True(t, c.Has(options.CategorySafeNumber))
	assert.False(t, c.Has(options.CategoryUnsafeNumber))
	assert.False(t, c.Has(options.CategoryNone))
	assert.Equal(t, "safe_number|text_number", c.String())

	all, err := options.ParseCategories("all")
	require.NoError(t, err)
	assert.Equal(t, "all", all.String())

	none, err := options.ParseCategories("none")
	require.NoError(t, err)
	assert.Equal(t, "none", none.String())

	_, err = options.ParseCategories("bogus")
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	cfg, err := options.Parse([]byte(`
strategy: loose
field_access: private
field_matching: false
ignore_ambiguity: true
resolve_circular: false
max_depth: 3
conversions: [default, unsafe_number]
source:
  convention: prefixed
  transformer: [strip_accessor_prefix]
destination:
  tokenizer: underscore
`))
	require.NoError(t, err)

	assert.Equal(t, options.StrategyLoose, cfg.Strategy)
	assert.Equal(t, options.AccessPrivate, cfg.FieldAccess)
	assert.False(t, cfg.FieldMatching)
	assert.True(t, cfg.IgnoreAmbiguity)
	assert.False(t, cfg.ResolveCircular)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.True(t, cfg.Conversions.Has(options.CategoryUnsafeNumber|options.CategorySafeNumber))
	assert.Equal(t, naming.Prefixed, cfg.Source.Convention)
	assert.Equal(t, []string{"name"}, cfg.Source.Tokens("GetName"))
	assert.Equal(t, []string{"firstname"}, cfg.Destination.Tokens("FirstName"))
	assert.Equal(t, naming.Go, cfg.Destination.Convention)
}

func TestParse_ReportsEveryError(t *testing.T) {
	_, err := options.Parse([]byte(`
strategy: greedy
field_access: protected
source:
  convention: beans
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown matching strategy "greedy"`)
	assert.Contains(t, err.Error(), `unknown access level "protected"`)
	assert.Contains(t, err.Error(), `unknown naming convention "beans"`)

	_, err = options.Parse([]byte("strategy: [1"))
	require.Error(t, err)

	_, err = options.LoadFile("testdata/missing.yaml")
	require.Error(t, err)
}
