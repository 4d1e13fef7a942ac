package proof

import (
	"fmt"

	verr "github.com/cwbudde/mmverify/internal/errors"
	"github.com/cwbudde/mmverify/internal/mm"
	"github.com/cwbudde/mmverify/internal/subst"
	"github.com/cwbudde/mmverify/internal/token"
)

// Perform applies rule to an ordered list of dependency steps, one per
// rule.Hypotheses() entry. It builds the unifying substitution (one binding
// per mandatory floating hypothesis, taken from the matching dependency's
// conclusion), enforces typecode agreement and essential-hypothesis
// unification, checks disjoint-variable side conditions, and produces the
// resulting conclusion. The caller (the normal or compressed verifier) is
// responsible for checking the returned step's InheritedDisjoint against
// the enclosing theorem's own declared disjoint set.
func Perform(rule *mm.Rule, deps []*Step) (*Step, error) {
	hyps := rule.Hypotheses()
	if len(deps) != len(hyps) {
		return nil, verr.New(verr.ArityMismatch, token.Position{},
			fmt.Sprintf("rule for %q expects %d hypotheses, got %d", labelOf(rule), len(hyps), len(deps)))
	}

	sigma := subst.Map{}
	for i, h := range hyps {
		dep := deps[i]
		switch h.Kind {
		case mm.Floating:
			typecode, variable := h.TypedVariable()
			if len(dep.Conclusion) == 0 || dep.Conclusion[0] != typecode {
				return nil, verr.New(verr.TypeMismatch, h.Pos,
					fmt.Sprintf("hypothesis %q expects typecode %q", h.Label, typecode), dep.Conclusion...)
			}
			sigma[variable] = append([]string(nil), dep.Conclusion[1:]...)
		case mm.Essential:
			got := subst.Apply(h.Tokens, sigma)
			if !subst.Equal(got, dep.Conclusion) {
				return nil, verr.New(verr.EssentialMismatch, h.Pos,
					fmt.Sprintf("essential hypothesis %q does not unify", h.Label), dep.Conclusion...)
			}
		default:
			return nil, verr.New(verr.ArityMismatch, h.Pos, fmt.Sprintf("hypothesis %q is not floating or essential", h.Label))
		}
	}

	inherited := mm.PairSet{}
	for pair := range rule.DisjointPairs {
		su, okU := sigma[pair.Lo]
		sw, okW := sigma[pair.Hi]
		if !okU || !okW {
			continue
		}
		varsU := varsIn(rule.Variables, su)
		varsW := varsIn(rule.Variables, sw)
		for x := range varsU {
			if varsW[x] {
				return nil, verr.New(verr.DisjointViolation, token.Position{},
					fmt.Sprintf("substitution collapses disjoint pair {%s, %s}", pair.Lo, pair.Hi), pair.Lo, pair.Hi)
			}
		}
		for x := range varsU {
			for y := range varsW {
				inherited.Add(x, y)
			}
		}
	}

	conclusion := subst.Apply(rule.Consequent.Tokens, sigma)

	depMap := make(map[string]*Step, len(hyps))
	for i, h := range hyps {
		depMap[h.Label] = deps[i]
	}

	return &Step{
		Conclusion:        conclusion,
		Rule:              rule,
		Dependencies:      depMap,
		Substitution:      sigma,
		InheritedDisjoint: inherited,
	}, nil
}

// varsIn returns the subset of tokens that are members of vars, as a set.
func varsIn(vars map[string]bool, tokens []string) map[string]bool {
	out := make(map[string]bool)
	for _, t := range tokens {
		if vars[t] {
			out[t] = true
		}
	}
	return out
}

func labelOf(rule *mm.Rule) string {
	if rule == nil || rule.Consequent == nil {
		return "<nil>"
	}
	return rule.Consequent.Label
}
