package match

import (
	"fmt"
	"reflect"
	"slices"

	"struct-mapper/internal/access"
	"struct-mapper/internal/common"
	"struct-mapper/internal/diagnostic"
	"struct-mapper/options"
)

// Result is the implicit mapping set for one type pair.
type Result struct {
	// Matches holds the accepted candidates in destination enumeration order.
	Matches CandidateList
	// Unmapped lists destination paths left without a source.
	Unmapped []access.Path

	Diagnostics diagnostic.Diagnostics
}

// Matcher discovers implicit property correspondences between two types.
type Matcher struct {
	cfg      options.Config
	accessor access.Accessor
	conv     Converters
}

// New creates a matcher. conv may be nil, in which case only assignable and
// structural routes are accepted.
func New(cfg options.Config, accessor access.Accessor, conv Converters) *Matcher {
	return &Matcher{cfg: cfg, accessor: accessor, conv: conv}
}

type sourcePath struct {
	path   access.Path
	tokens segments
}

type walk struct {
	pair     string
	sources  []sourcePath
	coverage Coverage
	res      *Result
}

// Match enumerates destination paths of dst and picks the best source path
// of src for each one not covered explicitly.
func (m *Matcher) Match(src, dst reflect.Type, coverage Coverage) Result {
	var res Result

	src, dst = common.Base(src), common.Base(dst)

	w := &walk{
		pair:     common.TypeName(src) + " -> " + common.TypeName(dst),
		sources:  m.sourcePaths(src),
		coverage: coverage,
		res:      &res,
	}

	m.matchInto(w, dst, nil, nil, []reflect.Type{dst})

	return res
}

// Sources lists the readable paths of t considered by the matcher.
func (m *Matcher) Sources(t reflect.Type) []access.Path {
	sources := m.sourcePaths(common.Base(t))

	out := make([]access.Path, len(sources))
	for i, s := range sources {
		out[i] = s.path
	}

	return out
}

func (m *Matcher) sourcePaths(root reflect.Type) []sourcePath {
	var out []sourcePath

	var visit func(owner reflect.Type, prefix access.Path, prefixTokens segments, stack []reflect.Type)

	visit = func(owner reflect.Type, prefix access.Path, prefixTokens segments, stack []reflect.Type) {
		for _, prop := range m.accessor.Properties(owner, access.Read) {
			if !m.considered(prop) {
				continue
			}

			path := prefix.Append(prop)
			tokens := slices.Concat(prefixTokens, segments{m.cfg.Source.Tokens(prop.Name)})
			out = append(out, sourcePath{path: path, tokens: tokens})

			if base := common.Base(prop.Type); m.canDescend(path, base, stack) {
				visit(base, path, tokens, slices.Concat(stack, []reflect.Type{base}))
			}
		}
	}

	visit(root, nil, nil, []reflect.Type{root})

	return out
}

func (m *Matcher) matchInto(w *walk, owner reflect.Type, prefix access.Path, prefixTokens segments, stack []reflect.Type) {
	for _, prop := range m.accessor.Properties(owner, access.Write) {
		if !m.considered(prop) {
			continue
		}

		path := prefix.Append(prop)
		if w.coverage.Covers(path) {
			continue
		}

		tokens := slices.Concat(prefixTokens, segments{m.cfg.Destination.Tokens(prop.Name)})
		base := common.Base(prop.Type)
		descend := prop.Kind == access.KindField && m.canDescend(path, base, stack)

		if w.coverage.Descends(path) {
			if descend {
				m.matchInto(w, base, path, tokens, slices.Concat(stack, []reflect.Type{base}))
			}

			continue
		}

		candidates := m.rank(w.sources, path, tokens)
		threshold := m.threshold()

		switch {
		case len(candidates) == 0 && descend:
			m.matchInto(w, base, path, tokens, slices.Concat(stack, []reflect.Type{base}))

		case len(candidates) == 0:
			w.res.Unmapped = append(w.res.Unmapped, path)
			w.res.Diagnostics.AddWarning(diagnostic.CodeUnmapped,
				"no source property matches destination", w.pair, path.String())

		case candidates.IsAmbiguous(threshold):
			tied := candidates.Tied(threshold).Sources()
			msg := fmt.Sprintf("%d source properties match destination equally well", len(tied))

			if m.cfg.IgnoreAmbiguity {
				w.res.Unmapped = append(w.res.Unmapped, path)
				w.res.Diagnostics.AddInfo(diagnostic.CodeAmbiguousMatch, msg+"; left unmapped", w.pair, path.String())

				continue
			}

			w.res.Diagnostics.AddErrorWithSuggestions(diagnostic.CodeAmbiguousMatch, msg, w.pair, path.String(), tied)

		default:
			w.res.Matches = append(w.res.Matches, *candidates.Best())
		}
	}
}

// rank scores every source path against one destination path.
func (m *Matcher) rank(sources []sourcePath, dst access.Path, dstTokens segments) CandidateList {
	var out CandidateList

	for _, src := range sources {
		compat := ScoreTypeCompatibility(src.path.Type(), dst.Type(), m.conv)
		if compat.Compatibility == TypeIncompatible {
			continue
		}

		var name, score float64

		if m.cfg.Strategy == options.StrategyFuzzy {
			name = fuzzyNameScore(src.tokens, dstTokens)
			score = combinedScore(name, compat.Compatibility)

			if score < m.cfg.MinConfidence {
				continue
			}
		} else {
			var ok bool
			if name, ok = nameScore(m.cfg.Strategy, src.tokens, dstTokens); !ok {
				continue
			}

			score = name
		}

		out = append(out, Candidate{
			Source:      src.path,
			Destination: dst,
			NameScore:   name,
			TypeCompat:  compat,
			Score:       score,
		})
	}

	return out.Rank()
}

func (m *Matcher) threshold() float64 {
	if m.cfg.Strategy == options.StrategyFuzzy {
		return m.cfg.AmbiguityThreshold
	}

	return 0
}

// considered filters fields out when field matching is disabled.
func (m *Matcher) considered(prop access.Property) bool {
	return prop.Kind != access.KindField || m.cfg.FieldMatching
}

func (m *Matcher) canDescend(path access.Path, base reflect.Type, stack []reflect.Type) bool {
	return len(path) < max(m.cfg.MaxDepth, 1) && isStructural(base) && !slices.Contains(stack, base)
}
