package mm

// Pair is a canonicalized unordered pair of distinct variable tokens: Lo is
// always the lexicographically smaller of the two under plain string
// ordering. Canonicalizing the order lets a Pair key a plain map for O(1)
// membership instead of needing a custom hash for an unordered pair.
type Pair struct {
	Lo, Hi string
}

// NewPair canonicalizes u and v into a Pair. Callers must ensure u != v.
func NewPair(u, v string) Pair {
	if u <= v {
		return Pair{Lo: u, Hi: v}
	}
	return Pair{Lo: v, Hi: u}
}

// PairSet is a set of disjoint-variable pairs with O(1) membership.
type PairSet map[Pair]struct{}

// Add inserts the canonical form of {u, v}. A no-op if u == v: a variable is
// never disjoint from itself, and a $d statement requires distinct
// members.
func (s PairSet) Add(u, v string) {
	if u == v {
		return
	}
	s[NewPair(u, v)] = struct{}{}
}

// Has reports whether {u, v} is a member.
func (s PairSet) Has(u, v string) bool {
	if u == v {
		return false
	}
	_, ok := s[NewPair(u, v)]
	return ok
}

// Union adds every member of other to s.
func (s PairSet) Union(other PairSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Rule is the canonical inference object built at every $a/$p statement
// (and, degenerately, for every $f/$e statement used as a proof leaf, see
// NewHypothesisRule).
type Rule struct {
	// Consequent is the statement being asserted.
	Consequent *Statement

	// MandatoryFloatings are the in-scope floating hypotheses whose
	// variable occurs in the consequent or in any essential hypothesis,
	// ordered outer-frame-first, then by declaration order within a frame.
	MandatoryFloatings []*Statement

	// Essentials are all essential hypotheses in scope, outermost first.
	Essentials []*Statement

	// DisjointPairs is the set of variable pairs that must remain disjoint
	// under any substitution, built from every $d in scope.
	DisjointPairs PairSet

	// Variables is the set of variable tokens in scope at the rule's
	// declaration site. Whether a substituted token counts as a variable
	// for disjoint-variable propagation is decided against this set, fixed
	// at rule-build time, not against whatever is in scope where the rule
	// is later cited.
	Variables map[string]bool
}

// Hypotheses returns MandatoryFloatings ++ Essentials: the fixed order that
// defines dependency order on the proof stack.
func (r *Rule) Hypotheses() []*Statement {
	out := make([]*Statement, 0, len(r.MandatoryFloatings)+len(r.Essentials))
	out = append(out, r.MandatoryFloatings...)
	out = append(out, r.Essentials...)
	return out
}

// NewHypothesisRule builds the degenerate, zero-hypothesis rule a $f or $e
// statement represents when cited as a proof leaf: its "conclusion" is
// simply its own token string.
func NewHypothesisRule(stmt *Statement) *Rule {
	return &Rule{Consequent: stmt, DisjointPairs: PairSet{}, Variables: map[string]bool{}}
}
