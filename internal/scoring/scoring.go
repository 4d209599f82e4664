// Package scoring ranks Gemini model identifiers by desirability. The score
// is an additive rule table over recognized substrings: newer generations
// beat older ones, "pro" beats "flash", and vision-capable models always
// outrank non-vision models of the same generation.
package scoring

import "strings"

// rule awards weight when the predicate matches the lowercased identifier.
type rule struct {
	match  func(id string) bool
	weight int
}

func contains(sub string) func(string) bool {
	return func(id string) bool { return strings.Contains(id, sub) }
}

// Evaluated in order; weights are additive. Vision dominates every
// generation gap so a vision-capable model is never outranked by a
// non-vision one.
var rules = []rule{
	{contains("2.0"), 200},
	{contains("1.5"), 100},
	{contains("ultra"), 40},
	{contains("1.0"), 20},
	{contains("pro"), 25},
	{contains("flash"), 10},
	{contains("vision"), 1000},
}

// Score returns the desirability of a model identifier. Deterministic and
// total: unrecognized identifiers get a minimal baseline of 1.
func Score(modelID string) int {
	id := strings.ToLower(modelID)
	score := 1
	for _, r := range rules {
		if r.match(id) {
			score += r.weight
		}
	}
	return score
}

// IsBetterModel reports whether a scores strictly higher than b. Strictness
// matters: on equal score the incumbent wins, which keeps model selection
// reproducible when the upstream list order is unstable.
func IsBetterModel(a, b string) bool {
	return Score(a) > Score(b)
}

// IsVisionName reports whether the identifier is marked as vision-capable.
func IsVisionName(modelID string) bool {
	return strings.Contains(strings.ToLower(modelID), "vision")
}
