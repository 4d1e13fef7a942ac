package proof

import (
	"fmt"
	"strings"

	verr "github.com/cwbudde/mmverify/internal/errors"
	"github.com/cwbudde/mmverify/internal/mm"
	"github.com/cwbudde/mmverify/internal/token"
)

// instrKind discriminates a decoded compressed-proof instruction.
type instrKind int

const (
	instrPointer instrKind = iota
	instrTag
)

type instr struct {
	kind  instrKind
	value int // pointer value; unused for instrTag
}

// SplitCompressed separates a raw compressed-proof token sequence ("(" L1
// L2 ... Lk ")" letters...) into its cited-label list and letter string.
// Tokenization may split the letter run into several tokens; they are
// concatenated in order, since whitespace within the run carries no
// meaning.
func SplitCompressed(proofTokens []string) (cited []string, letters string, err error) {
	if len(proofTokens) == 0 || proofTokens[0] != "(" {
		return nil, "", fmt.Errorf("compressed proof must start with (")
	}
	i := 1
	for ; i < len(proofTokens); i++ {
		if proofTokens[i] == ")" {
			break
		}
		cited = append(cited, proofTokens[i])
	}
	if i == len(proofTokens) {
		return nil, "", fmt.Errorf("compressed proof missing closing )")
	}
	var sb strings.Builder
	for _, t := range proofTokens[i+1:] {
		sb.WriteString(t)
	}
	return cited, sb.String(), nil
}

// decodeLetters turns the mixed-radix letter string into the ordered
// sequence of pointer/tag instructions it encodes. Letters A-T are
// terminal: each closes out a base-20 digit run and emits a dereference
// pointer, resetting the accumulator. Letters U-Y are continuations: each
// contributes a base-5 digit to the next pointer's high-order bits. Z
// emits a back-reference tag, standing in for whatever step was most
// recently pushed, rather than a fresh dereference.
func decodeLetters(letters string) ([]instr, error) {
	var out []instr
	p := 0
	anyPointer := false

	for i := 0; i < len(letters); i++ {
		ch := letters[i]
		switch {
		case ch >= 'A' && ch < 'U':
			p = 20*p + int(ch-'A')
			out = append(out, instr{kind: instrPointer, value: p})
			anyPointer = true
			p = 0
		case ch >= 'U' && ch < 'Z':
			p = 5*p + int(ch-'U') + 1
		case ch == 'Z':
			if !anyPointer {
				return nil, verr.New(verr.OrphanTag, token.Position{}, "Z tag before any pointer was emitted")
			}
			out = append(out, instr{kind: instrTag})
		default:
			return nil, verr.New(verr.TruncatedProof, token.Position{}, fmt.Sprintf("letter %q is outside A-Z", string(ch)))
		}
	}
	if p != 0 {
		return nil, verr.New(verr.TruncatedProof, token.Position{}, "compressed proof ends mid-continuation")
	}
	return out, nil
}

// VerifyCompressed executes the decoder-plus-stack-machine over a
// compressed proof. The dereference buffer is built up front as the
// theorem's own mandatory hypotheses followed by the cited label list, so
// each decoded pointer resolves to either a hypothesis's own statement, a
// previously cited rule's label, or (once the buffer grows past the cited
// labels) an already-computed proof step. claim is the theorem's own Rule
// (used for its mandatory hypotheses, disjoint pairs, and expected
// conclusion).
func VerifyCompressed(db *mm.Database, claim *mm.Rule, proofTokens []string) (*Step, error) {
	cited, letters, err := SplitCompressed(proofTokens)
	if err != nil {
		return nil, verr.New(verr.TruncatedProof, token.Position{}, err.Error()).WithTheorem(labelOf(claim), -1)
	}
	instrs, err := decodeLetters(letters)
	if err != nil {
		return nil, annotateErr(err, labelOf(claim), -1)
	}

	hyps := claim.Hypotheses()
	m := len(hyps)
	n := len(cited)

	b := make([]any, 0, m+n)
	for _, h := range hyps {
		b = append(b, &Step{Conclusion: h.Tokens})
	}
	for _, label := range cited {
		b = append(b, label)
	}

	cache := NewCache()
	var stack []*Step
	var lastPushed *Step

	for idx, ins := range instrs {
		if ins.kind == instrTag {
			if lastPushed == nil {
				return nil, verr.New(verr.OrphanTag, token.Position{}, "Z tag with no preceding step").WithTheorem(labelOf(claim), idx)
			}
			b = append(b, lastPushed)
			continue
		}

		p := ins.value
		if p >= len(b) {
			return nil, verr.New(verr.PointerOutOfRange, token.Position{},
				fmt.Sprintf("pointer %d out of range (buffer has %d entries)", p, len(b))).WithTheorem(labelOf(claim), idx)
		}

		switch v := b[p].(type) {
		case *Step:
			stack = append(stack, v)
			lastPushed = v
		case string:
			label := v
			rule, ok := db.RuleFor(label)
			if !ok {
				return nil, verr.New(verr.UnknownLabel, token.Position{},
					fmt.Sprintf("proof cites unknown label %q", label)).WithTheorem(labelOf(claim), idx)
			}
			ruleHyps := rule.Hypotheses()
			if len(stack) < len(ruleHyps) {
				return nil, verr.New(verr.ArityMismatch, token.Position{},
					fmt.Sprintf("stack underflow applying %q: need %d, have %d", label, len(ruleHyps), len(stack))).WithTheorem(labelOf(claim), idx)
			}
			k := len(ruleHyps)
			deps := append([]*Step(nil), stack[len(stack)-k:]...)
			stack = stack[:len(stack)-k]

			step, perr := Perform(rule, deps)
			if perr != nil {
				return nil, annotateErr(perr, labelOf(claim), idx)
			}
			if !isSubset(step.InheritedDisjoint, claim.DisjointPairs) {
				return nil, verr.New(verr.MissingDisjoint, token.Position{},
					fmt.Sprintf("step applying %q demands a disjoint pair the theorem does not declare", label)).WithTheorem(labelOf(claim), idx)
			}
			step = cache.Intern(step)
			stack = append(stack, step)
			lastPushed = step
		default:
			return nil, verr.New(verr.PointerOutOfRange, token.Position{}, "malformed dereference buffer entry")
		}
	}

	return finish(stack, claim)
}
