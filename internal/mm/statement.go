// Package mm holds the in-memory data model of a parsed Metamath database:
// statements, inference rules, and the database registry that indexes them
// by label. The model is built once by internal/scope and is read-only
// thereafter; internal/proof consumes it to verify proofs.
package mm

import "github.com/cwbudde/mmverify/internal/token"

// Kind discriminates the seven statement forms the grammar allows.
type Kind int

const (
	// Constant is a $c declaration.
	Constant Kind = iota
	// Variable is a $v declaration.
	Variable
	// Disjoint is a $d declaration.
	Disjoint
	// Floating is a $f hypothesis: exactly two tokens, (typecode, variable).
	Floating
	// Essential is a $e hypothesis: an arbitrary symbol string.
	Essential
	// Axiom is a $a assertion: a symbol string requiring no proof.
	Axiom
	// Proposition is a $p assertion: a symbol string with an accompanying proof.
	Proposition
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Variable:
		return "variable"
	case Disjoint:
		return "disjoint"
	case Floating:
		return "floating"
	case Essential:
		return "essential"
	case Axiom:
		return "axiom"
	case Proposition:
		return "proposition"
	default:
		return "unknown"
	}
}

// Statement is the atomic unit of the database: a $c/$v/$d/$f/$e/$a/$p
// declaration together with its math-symbol string.
//
// Label is empty for Constant, Variable, and Disjoint statements, which are
// never cited by a proof. Proof is populated only for Proposition
// statements and holds the raw, un-decoded proof token sequence (normal or
// compressed) so either verifier can process it.
type Statement struct {
	Label  string
	Kind   Kind
	Tokens []string
	Proof  []string
	Pos    token.Position
}

// TypedVariable reports the (typecode, variable) pair of a Floating
// statement. It does not check s.Kind: it returns the first two tokens of
// any statement and panics only if s has fewer than two. Callers are
// expected to have already checked s.Kind, relying on the invariant that a
// Floating statement always has exactly two tokens.
func (s *Statement) TypedVariable() (typecode, variable string) {
	return s.Tokens[0], s.Tokens[1]
}
