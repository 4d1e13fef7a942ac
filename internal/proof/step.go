// Package proof implements rule application, the normal-proof stack
// machine, and the compressed-proof decoder.
package proof

import "github.com/cwbudde/mmverify/internal/mm"

// Step is a node in the proof DAG produced during verification: the result
// of applying a Rule to an ordered list of dependency steps (or, for a leaf,
// a bare hypothesis statement).
//
// A Step is created once and treated as immutable. Two applications
// yielding the same conclusion within one proof may share a Step;
// deduplication (see Cache) is an optimization, not required for
// correctness.
type Step struct {
	// Conclusion is the resulting symbol string.
	Conclusion []string

	// Rule is the rule applied to produce this step. For a hypothesis leaf,
	// where Conclusion is simply the hypothesis's tokens, VerifyNormal sets
	// it to the degenerate hypothesis rule and VerifyCompressed leaves it nil.
	Rule *mm.Rule

	// Dependencies maps each hypothesis label the rule was applied to, to
	// the step that satisfied it.
	Dependencies map[string]*Step

	// Substitution is the variable -> token-string map that unified the
	// rule's hypotheses with the dependencies.
	Substitution map[string][]string

	// InheritedDisjoint is the set of disjoint-variable requirements this
	// application demands of the enclosing claim.
	InheritedDisjoint mm.PairSet
}

// Cache memoizes proof steps by conclusion token string within a single
// theorem's verification, an optimization rather than a correctness
// requirement. It is per-theorem and per-goroutine; never share one across
// concurrently-verified theorems.
type Cache struct {
	byConclusion map[string]*Step
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{byConclusion: make(map[string]*Step)}
}

func conclusionKey(tokens []string) string {
	// A length-prefixed join avoids the (practically nonexistent, but
	// cheap to rule out) ambiguity of two distinct token sequences joining
	// to the same string.
	key := make([]byte, 0, 64)
	for _, t := range tokens {
		key = append(key, byte(len(t)), ' ')
		key = append(key, t...)
		key = append(key, 0)
	}
	return string(key)
}

// Intern returns the cached Step equal to candidate's conclusion, recording
// candidate as canonical the first time that conclusion is seen.
func (c *Cache) Intern(candidate *Step) *Step {
	key := conclusionKey(candidate.Conclusion)
	if existing, ok := c.byConclusion[key]; ok {
		return existing
	}
	c.byConclusion[key] = candidate
	return candidate
}
