package plan

import (
	"fmt"
	"reflect"

	"struct-mapper/internal/access"
	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/mapping"
	"struct-mapper/internal/match"
	"struct-mapper/options"
)

// Compiler turns declarations and the matcher's findings into plan steps.
type Compiler struct {
	cfg      options.Config
	accessor access.Accessor
	conv     match.Converters
	matcher  *match.Matcher
}

// NewCompiler returns a compiler bound to one configuration snapshot.
func NewCompiler(cfg options.Config, accessor access.Accessor, conv match.Converters) *Compiler {
	return &Compiler{
		cfg:      cfg,
		accessor: accessor,
		conv:     conv,
		matcher:  match.New(cfg, accessor, conv),
	}
}

// Config returns the configuration snapshot the compiler was built with.
func (c *Compiler) Config() options.Config { return c.cfg }

// Accessor returns the property accessor used for paths.
func (c *Compiler) Accessor() access.Accessor { return c.accessor }

// compiled is the outcome of one compile before it is published.
type compiled struct {
	mappings []mapping.Mapping
	unmapped []access.Path
	diags    diagnostic.Diagnostics
}

// compile runs the declarations and, unless implicit is false, the matcher.
func (c *Compiler) compile(pair TypePair, implicit bool, decls []mapping.Declaration) compiled {
	explicit, diags := mapping.Explicit(pair.Source, pair.Destination, c.accessor, decls...)

	out := compiled{diags: diags}

	if !implicit {
		out.mappings = explicit
		return out
	}

	res := c.matcher.Match(pair.Source, pair.Destination, mapping.Coverage(explicit))
	out.diags.Merge(res.Diagnostics)
	out.mappings = mapping.Compose(explicit, res)
	out.unmapped = res.Unmapped

	return out
}

// steps annotates mappings with their strategy. Mappings without a known
// route are reported as warnings; the engine still tries the converter chain.
func (c *Compiler) steps(pair TypePair, ms []mapping.Mapping) ([]Step, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	out := make([]Step, 0, len(ms))

	for _, m := range ms {
		strategy, expl := determineStrategy(m, pair.Source, c.conv)
		if strategy == StrategyUnresolved {
			diags.AddWarning(diagnostic.CodeNoRoute,
				fmt.Sprintf("no conversion route from %s: %s", typeString(m.SourceType(pair.Source)), expl),
				pair.String(), m.Path())
		}

		out = append(out, Step{Mapping: m, Strategy: strategy, Explanation: expl})
	}

	return out, diags
}

// unmapped drops the paths an explicit mapping now covers.
func unmapped(paths []access.Path, ms []mapping.Mapping) []access.Path {
	coverage := mapping.Coverage(ms)

	out := make([]access.Path, 0, len(paths))
	for _, p := range paths {
		if !coverage.Covers(p) {
			out = append(out, p)
		}
	}

	return out
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
