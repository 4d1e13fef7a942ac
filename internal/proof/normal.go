package proof

import (
	"fmt"

	verr "github.com/cwbudde/mmverify/internal/errors"
	"github.com/cwbudde/mmverify/internal/mm"
	"github.com/cwbudde/mmverify/internal/subst"
	"github.com/cwbudde/mmverify/internal/token"
)

// VerifyNormal executes the stack machine over a proposition's uncompressed,
// label-sequence proof: each label in turn either pushes a hypothesis's own
// statement or pops its rule's hypothesis count off the stack and pushes the
// resulting conclusion. db supplies rule lookups for every cited label;
// claim is the Rule built for the theorem itself (used for its
// disjoint-pairs and its expected conclusion).
func VerifyNormal(db *mm.Database, claim *mm.Rule, labels []string) (*Step, error) {
	cache := NewCache()
	var stack []*Step

	for i, label := range labels {
		rule, ok := db.RuleFor(label)
		if !ok {
			return nil, verr.New(verr.UnknownLabel, token.Position{},
				fmt.Sprintf("proof cites unknown label %q", label)).WithTheorem(labelOf(claim), i)
		}

		hyps := rule.Hypotheses()
		if len(hyps) == 0 {
			step := cache.Intern(&Step{Conclusion: rule.Consequent.Tokens, Rule: rule})
			stack = append(stack, step)
			continue
		}

		if len(stack) < len(hyps) {
			return nil, verr.New(verr.ArityMismatch, token.Position{},
				fmt.Sprintf("stack underflow applying %q: need %d, have %d", label, len(hyps), len(stack))).WithTheorem(labelOf(claim), i)
		}
		n := len(hyps)
		deps := append([]*Step(nil), stack[len(stack)-n:]...)
		stack = stack[:len(stack)-n]

		step, err := Perform(rule, deps)
		if err != nil {
			return nil, annotateErr(err, labelOf(claim), i)
		}
		if !isSubset(step.InheritedDisjoint, claim.DisjointPairs) {
			return nil, verr.New(verr.MissingDisjoint, token.Position{},
				fmt.Sprintf("step applying %q demands a disjoint pair the theorem does not declare", label)).WithTheorem(labelOf(claim), i)
		}

		stack = append(stack, cache.Intern(step))
	}

	return finish(stack, claim)
}

// finish applies the acceptance check shared by both verifiers once their
// stack machine runs out of instructions: exactly one item must remain on
// the stack, and its conclusion must match the theorem's declared one.
func finish(stack []*Step, claim *mm.Rule) (*Step, error) {
	if len(stack) != 1 {
		return nil, verr.New(verr.StackNotSingleton, token.Position{},
			fmt.Sprintf("proof of %q left %d items on the stack, want 1", labelOf(claim), len(stack))).WithTheorem(labelOf(claim), -1)
	}
	got := stack[0]
	if !subst.Equal(got.Conclusion, claim.Consequent.Tokens) {
		return nil, verr.New(verr.WrongConclusion, token.Position{},
			fmt.Sprintf("proof of %q concludes %q, want %q", labelOf(claim), token.JoinSymbols(got.Conclusion), token.JoinSymbols(claim.Consequent.Tokens))).WithTheorem(labelOf(claim), -1)
	}
	return got, nil
}

func isSubset(small, big mm.PairSet) bool {
	for p := range small {
		if _, ok := big[p]; !ok {
			return false
		}
	}
	return true
}

func annotateErr(err error, theorem string, step int) error {
	if ve, ok := err.(*verr.VerifyError); ok {
		return ve.WithTheorem(theorem, step)
	}
	return err
}
