package match

import (
	"slices"

	"struct-mapper/options"
)

// depthPenalty makes shallower source paths win ties within one strategy.
const depthPenalty = 0.001

// segments holds the tokens of every path segment.
type segments [][]string

func (s segments) flatten() []string {
	var out []string
	for _, seg := range s {
		out = append(out, seg...)
	}

	return out
}

// nameScore scores source against destination under strategy. ok is false
// when the strategy rejects the pair. Fuzzy scoring is handled separately.
func nameScore(strategy options.MatchingStrategy, src, dst segments) (float64, bool) {
	switch strategy {
	case options.StrategyStrict:
		return strictScore(src, dst)
	case options.StrategyLoose:
		return looseScore(src, dst)
	default:
		return standardScore(src, dst)
	}
}

// strictScore requires identical token sequences.
func strictScore(src, dst segments) (float64, bool) {
	if !slices.Equal(src.flatten(), dst.flatten()) {
		return 0, false
	}

	return 1 - depthPenalty*float64(len(src)-1), true
}

// standardScore requires every destination token to be matched and every
// source segment to contribute a matched token. The score is the share of
// source tokens that were matched.
func standardScore(src, dst segments) (float64, bool) {
	want := map[string]struct{}{}
	for _, tok := range dst.flatten() {
		want[tok] = struct{}{}
	}

	matched := map[string]struct{}{}

	var used, total int

	for _, seg := range src {
		contributes := false

		for _, tok := range seg {
			total++

			if _, ok := want[tok]; ok {
				matched[tok] = struct{}{}
				contributes = true
				used++
			}
		}

		if !contributes {
			return 0, false
		}
	}

	if len(matched) != len(want) || total == 0 {
		return 0, false
	}

	return float64(used)/float64(total) - depthPenalty*float64(len(src)-1), true
}

// looseScore only requires the last destination segment's tokens to appear
// in the last source segment.
func looseScore(src, dst segments) (float64, bool) {
	if len(src) == 0 || len(dst) == 0 {
		return 0, false
	}

	last := src[len(src)-1]
	for _, tok := range dst[len(dst)-1] {
		if !slices.Contains(last, tok) {
			return 0, false
		}
	}

	return 1 - depthPenalty*float64(len(src)-1), true
}

// fuzzyNameScore is the normalized Levenshtein similarity of the flattened
// token sequences, with or without a trailing id/at suffix.
func fuzzyNameScore(src, dst segments) float64 {
	a, b := src.flatten(), dst.flatten()
	return max(TokenSimilarity(a, b), TokenSimilarityWithSuffixStrip(a, b))
}

// combinedScore computes the fuzzy score from name similarity and type compatibility.
// Weights:
//   - Name similarity: 60% (0.0-0.6)
//   - Type compatibility: 40% (0.0-0.4)
func combinedScore(name float64, typeCompat TypeCompatibility) float64 {
	const (
		nameWeight = 0.6
		typeWeight = 0.4
	)

	return name*nameWeight + typeCompat.Score()*typeWeight
}
