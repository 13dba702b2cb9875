package match

import (
	"sort"
)

// Candidate represents a known property name that may be what the caller meant.
type Candidate struct {
	Name string

	// NameScore is the best normalized Levenshtein similarity (0-1)
	NameScore float64

	// Metadata for debugging/explanation
	NormalizedName   string
	NormalizedTarget string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against target.
// Returns candidates sorted by score (descending), then by name.
func RankCandidates(target string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))

	targetNorm := NormalizeIdent(target)
	targetNormStripped := NormalizeIdentWithSuffixStrip(target)

	for _, name := range names {
		norm := NormalizeIdent(name)
		normStripped := NormalizeIdentWithSuffixStrip(name)

		// Use max of accessor-aware and suffix-stripped similarity
		score := NormalizedLevenshteinScore(name, target)
		if stripped := LevenshteinNormalized(normStripped, targetNormStripped); stripped > score {
			score = stripped
		}

		candidates = append(candidates, Candidate{
			Name:             name,
			NameScore:        score,
			NormalizedName:   norm,
			NormalizedTarget: targetNorm,
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to n names whose similarity to target reaches DefaultMinScore.
func Suggest(target string, names []string, n int) []string {
	ranked := RankCandidates(target, names).AboveThreshold(DefaultMinScore).Top(n)
	if len(ranked) == 0 {
		return nil
	}

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.Name
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].NameScore != c[j].NameScore {
		return c[i].NameScore > c[j].NameScore
	}
	return c[i].Name < c[j].Name
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

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}
	diff := c[0].NameScore - c[1].NameScore
	return diff < threshold
}

// AboveThreshold returns candidates with score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.NameScore >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// Confidence thresholds for suggestions.
const (
	// DefaultMinScore is the minimum similarity for a suggestion.
	DefaultMinScore = 0.6
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)
