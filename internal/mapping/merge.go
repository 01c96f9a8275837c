package mapping

import (
	"fmt"
	"slices"

	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/match"
)

// Coverage returns the destination paths declared by explicit mappings.
func Coverage(explicit []Mapping) match.Coverage {
	paths := make([]string, 0, len(explicit))
	for _, m := range explicit {
		paths = append(paths, m.Path())
	}

	return match.NewCoverage(paths...)
}

// Compose appends the implicit matches to the explicit mappings. The matcher
// is expected to have been run with Coverage(explicit).
func Compose(explicit []Mapping, implicit match.Result) []Mapping {
	out := make([]Mapping, 0, len(explicit)+len(implicit.Matches))
	out = append(out, explicit...)

	coverage := Coverage(explicit)
	for _, c := range implicit.Matches {
		if coverage.Covers(c.Destination) {
			continue
		}

		out = append(out, FromCandidate(c))
	}

	return out
}

// Merge folds newly declared explicit mappings into an existing list:
//   - an identical explicit mapping already present is a no-op
//   - an explicit mapping replaces the implicit one with the same destination
//   - a different explicit mapping for an explicit destination is a duplicate
//   - anything else is added, dropping implicit mappings below its destination
//
// Added and replacing mappings go after the existing explicit ones and before
// the first implicit one, so the list keeps the order Compose produces.
//
// On error the returned list must be discarded.
func Merge(existing, incoming []Mapping, pair string) ([]Mapping, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	out := slices.Clone(existing)

	for _, m := range incoming {
		idx := slices.IndexFunc(out, func(e Mapping) bool { return e.Path() == m.Path() })

		switch {
		case idx < 0:
			prefix := m.Path() + "."
			out = slices.DeleteFunc(out, func(e Mapping) bool {
				return e.Origin == OriginImplicit && len(e.Path()) > len(prefix) && e.Path()[:len(prefix)] == prefix
			})
			out = insertExplicit(out, m)

		case out[idx].Origin == OriginImplicit:
			out = insertExplicit(slices.Delete(out, idx, idx+1), m)

		case out[idx].Equal(m):
			// already present

		default:
			diags.AddError(diagnostic.CodeDuplicateMapping,
				fmt.Sprintf("destination already mapped by %q", out[idx].String()), pair, m.Path())
		}
	}

	return out, diags
}

func insertExplicit(ms []Mapping, m Mapping) []Mapping {
	at := slices.IndexFunc(ms, func(e Mapping) bool { return e.Origin == OriginImplicit })
	if at < 0 {
		return append(ms, m)
	}

	return slices.Insert(ms, at, m)
}
