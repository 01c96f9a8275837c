package match

import (
	"sort"

	"struct-mapper/internal/access"
)

// Candidate represents a potential mapping from a source path to a destination path.
type Candidate struct {
	Source      access.Path
	Destination access.Path

	// Scoring components
	NameScore  float64                 // Strategy-specific name score (0-1)
	TypeCompat TypeCompatibilityResult // Type compatibility result

	// Combined score for ranking (higher is better)
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by shallower source path, then by source
// path string for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	if len(c[i].Source) != len(c[j].Source) {
		return len(c[i].Source) < len(c[j].Source)
	}

	return c[i].Source.String() < c[j].Source.String()
}

// Rank sorts the list in place and returns it.
func (c CandidateList) Rank() CandidateList {
	sort.Stable(c)
	return c
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the
// threshold. A zero threshold means an exact tie.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	diff := c[0].Score - c[1].Score
	if threshold <= 0 {
		return diff == 0
	}

	return diff < threshold
}

// Tied returns the leading candidates that make the list ambiguous.
func (c CandidateList) Tied(threshold float64) CandidateList {
	if len(c) == 0 {
		return nil
	}

	out := CandidateList{c[0]}
	for _, cand := range c[1:] {
		diff := c[0].Score - cand.Score
		if (threshold <= 0 && diff != 0) || (threshold > 0 && diff >= threshold) {
			break
		}

		out = append(out, cand)
	}

	return out
}

// AboveThreshold returns candidates with score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Sources lists the source paths of the candidates.
func (c CandidateList) Sources() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Source.String()
	}

	return out
}
