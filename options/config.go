package options

import (
	"fmt"
	"reflect"
	"strings"

	"struct-mapper/internal/common"
	"struct-mapper/naming"
)

// AccessLevel limits which struct fields are visible to the mapper.
type AccessLevel int

const (
	// AccessPublic exposes exported fields only.
	AccessPublic AccessLevel = iota
	// AccessPrivate exposes unexported fields too.
	AccessPrivate
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// ParseAccessLevel converts "public" or "private".
func ParseAccessLevel(s string) (AccessLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return AccessPublic, nil
	case "private":
		return AccessPrivate, nil
	default:
		return AccessPublic, fmt.Errorf("unknown access level %q", s)
	}
}

// MatchingStrategy selects how source and destination tokens must line up.
type MatchingStrategy int

const (
	// StrategyStandard requires every destination token to be matched and
	// every source path segment to contribute a matched token.
	StrategyStandard MatchingStrategy = iota
	// StrategyLoose only requires the last destination segment to be
	// matched by the last source segment.
	StrategyLoose
	// StrategyStrict requires identical token sequences.
	StrategyStrict
	// StrategyFuzzy scores normalized edit distance combined with type compatibility.
	StrategyFuzzy
)

func (s MatchingStrategy) String() string {
	switch s {
	case StrategyStandard:
		return "standard"
	case StrategyLoose:
		return "loose"
	case StrategyStrict:
		return "strict"
	case StrategyFuzzy:
		return "fuzzy"
	default:
		return common.UnknownStr
	}
}

// ParseStrategy converts a strategy name.
func ParseStrategy(s string) (MatchingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return StrategyStandard, nil
	case "loose":
		return StrategyLoose, nil
	case "strict":
		return StrategyStrict, nil
	case "fuzzy":
		return StrategyFuzzy, nil
	default:
		return StrategyStandard, fmt.Errorf("unknown matching strategy %q", s)
	}
}

// Side carries the naming policy of one side of a mapping.
type Side struct {
	Convention  naming.Convention
	Tokenizer   naming.Tokenizer
	Transformer naming.Transformer
}

// Tokens transforms and tokenizes a property name.
func (s Side) Tokens(name string) []string {
	if s.Transformer != nil {
		name = s.Transformer(name)
	}

	if s.Tokenizer == nil {
		return naming.CamelCase.Tokenize(name)
	}

	return s.Tokenizer.Tokenize(name)
}

// Config is an immutable snapshot of mapping policy.
type Config struct {
	FieldAccess        AccessLevel
	FieldMatching      bool
	Strategy           MatchingStrategy
	IgnoreAmbiguity    bool
	ResolveCircular    bool
	MaxDepth           int
	MinConfidence      float64
	AmbiguityThreshold float64
	Conversions        CategoryEnum
	Source             Side
	Destination        Side

	inhibited map[reflect.Type]struct{}
}

// Option modifies a Config copy.
type Option func(*Config)

// Defaults for the tunable thresholds.
const (
	DefaultMaxDepth           = 5
	DefaultMinConfidence      = 0.7
	DefaultAmbiguityThreshold = 0.1
)

// Default returns the baseline policy.
func Default() Config {
	return Config{
		FieldAccess:        AccessPublic,
		FieldMatching:      true,
		Strategy:           StrategyStandard,
		ResolveCircular:    true,
		MaxDepth:           DefaultMaxDepth,
		MinConfidence:      DefaultMinConfidence,
		AmbiguityThreshold: DefaultAmbiguityThreshold,
		Conversions:        CategoryDefault,
		Source:             Side{Convention: naming.Go, Tokenizer: naming.CamelCase, Transformer: naming.Identity},
		Destination:        Side{Convention: naming.Go, Tokenizer: naming.CamelCase, Transformer: naming.Identity},
	}
}

// New applies opts on top of Default.
func New(opts ...Option) Config {
	return Default().With(opts...)
}

// With returns a copy of c with opts applied.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// IsInhibited reports whether the mapper may not instantiate t.
func (c Config) IsInhibited(t reflect.Type) bool {
	_, ok := c.inhibited[common.Base(t)]
	return ok
}

// Inhibited lists the types the mapper may not instantiate.
func (c Config) Inhibited() []reflect.Type {
	out := make([]reflect.Type, 0, len(c.inhibited))
	for t := range c.inhibited {
		out = append(out, t)
	}

	return out
}

func WithFieldAccess(level AccessLevel) Option {
	return func(c *Config) { c.FieldAccess = level }
}

func WithFieldMatching(enabled bool) Option {
	return func(c *Config) { c.FieldMatching = enabled }
}

func WithStrategy(s MatchingStrategy) Option {
	return func(c *Config) { c.Strategy = s }
}

func WithIgnoreAmbiguity(ignore bool) Option {
	return func(c *Config) { c.IgnoreAmbiguity = ignore }
}

func WithResolveCircular(enabled bool) Option {
	return func(c *Config) { c.ResolveCircular = enabled }
}

// WithMaxDepth bounds how deep source paths are flattened and destination
// paths are expanded. Values below 1 are raised to 1.
func WithMaxDepth(depth int) Option {
	return func(c *Config) { c.MaxDepth = max(depth, 1) }
}

func WithMinConfidence(score float64) Option {
	return func(c *Config) { c.MinConfidence = score }
}

func WithAmbiguityThreshold(threshold float64) Option {
	return func(c *Config) { c.AmbiguityThreshold = threshold }
}

func WithConversions(categories CategoryEnum) Option {
	return func(c *Config) { c.Conversions = categories }
}

func WithSourceNaming(side Side) Option {
	return func(c *Config) { c.Source = mergeSide(c.Source, side) }
}

func WithDestinationNaming(side Side) Option {
	return func(c *Config) { c.Destination = mergeSide(c.Destination, side) }
}

// WithInhibited forbids instantiating the given types. Pointer types are
// reduced to their base type.
func WithInhibited(types ...reflect.Type) Option {
	return func(c *Config) {
		next := make(map[reflect.Type]struct{}, len(c.inhibited)+len(types))
		for t := range c.inhibited {
			next[t] = struct{}{}
		}

		for _, t := range types {
			if t != nil {
				next[common.Base(t)] = struct{}{}
			}
		}

		c.inhibited = next
	}
}

func mergeSide(cur, next Side) Side {
	if next.Convention != nil {
		cur.Convention = next.Convention
	}

	if next.Tokenizer != nil {
		cur.Tokenizer = next.Tokenizer
	}

	if next.Transformer != nil {
		cur.Transformer = next.Transformer
	}

	return cur
}
