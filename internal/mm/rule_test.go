package mm

import "testing"

func TestPairCanonicalizesRegardlessOfArgumentOrder(t *testing.T) {
	a := NewPair("ps", "ph")
	b := NewPair("ph", "ps")
	if a != b {
		t.Fatalf("NewPair(ps, ph) = %+v, NewPair(ph, ps) = %+v, want equal", a, b)
	}
	if a.Lo != "ph" || a.Hi != "ps" {
		t.Fatalf("Pair = %+v, want Lo=ph Hi=ps", a)
	}
}

func TestPairSetAddIsANoOpForEqualVariables(t *testing.T) {
	s := PairSet{}
	s.Add("ph", "ph")
	if len(s) != 0 {
		t.Fatalf("PairSet after Add(ph, ph) has %d members, want 0", len(s))
	}
	if s.Has("ph", "ph") {
		t.Fatal("a variable must never be disjoint from itself")
	}
}

func TestPairSetHasIsOrderIndependent(t *testing.T) {
	s := PairSet{}
	s.Add("ph", "ps")
	if !s.Has("ps", "ph") {
		t.Fatal("Has(ps, ph) should find a pair added as Add(ph, ps)")
	}
}

func TestPairSetUnion(t *testing.T) {
	s := PairSet{}
	s.Add("ph", "ps")
	other := PairSet{}
	other.Add("ph", "ch")
	s.Union(other)
	if !s.Has("ph", "ps") || !s.Has("ph", "ch") {
		t.Fatalf("union missing a member: %v", s)
	}
}

func TestRuleHypothesesOrdersFloatingsBeforeEssentials(t *testing.T) {
	wph := &Statement{Label: "wph", Kind: Floating, Tokens: []string{"wff", "ph"}}
	min := &Statement{Label: "min", Kind: Essential, Tokens: []string{"|-", "ph"}}
	rule := &Rule{
		Consequent:         &Statement{Tokens: []string{"|-", "ph"}},
		MandatoryFloatings: []*Statement{wph},
		Essentials:         []*Statement{min},
	}
	hyps := rule.Hypotheses()
	if len(hyps) != 2 || hyps[0].Label != "wph" || hyps[1].Label != "min" {
		t.Fatalf("Hypotheses() = %v, want [wph, min]", hyps)
	}
}

func TestNewHypothesisRuleHasNoHypothesesOfItsOwn(t *testing.T) {
	stmt := &Statement{Label: "wph", Kind: Floating, Tokens: []string{"wff", "ph"}}
	rule := NewHypothesisRule(stmt)
	if len(rule.Hypotheses()) != 0 {
		t.Fatalf("NewHypothesisRule produced %d hypotheses, want 0", len(rule.Hypotheses()))
	}
	if rule.Consequent != stmt {
		t.Fatal("NewHypothesisRule's Consequent must be the hypothesis statement itself")
	}
}
