// Package scope implements the Scoper / Rule Builder: a state machine that
// consumes the tokenizer's output, maintains a stack of nested ${ ... $}
// frames, and at each $a/$p emits a Rule with exactly its mandatory
// floating hypotheses, in-scope essential hypotheses, and inherited
// disjoint-variable constraints.
package scope

import (
	"fmt"

	verr "github.com/cwbudde/mmverify/internal/errors"
	"github.com/cwbudde/mmverify/internal/mm"
	"github.com/cwbudde/mmverify/internal/token"
)

type state int

const (
	stTop state = iota
	stAwaitingSymbols
	stAwaitingProof
)

// Scoper drives the parse of a flat token sequence into a *mm.Database.
type Scoper struct {
	interner *token.Interner
	db       *mm.Database
	frames   []*frame

	st              state
	pendingKind     mm.Kind
	pendingLabelSet bool
	pendingLabel    string

	curLabel  string
	curKind   mm.Kind
	curPos    token.Position
	curTokens []string
	curProof  []string
}

// New returns a Scoper ready to consume tokens. interner is used to
// deduplicate every symbol and label string stored in the resulting
// database.
func New(interner *token.Interner) *Scoper {
	return &Scoper{
		interner: interner,
		db:       mm.NewDatabase(),
		frames:   []*frame{newFrame()},
		st:       stTop,
	}
}

func (s *Scoper) intern(t string) string { return s.interner.Intern(t) }

func (s *Scoper) top() *frame { return s.frames[len(s.frames)-1] }

// activeVariables unions the variable sets of every currently open frame.
func (s *Scoper) activeVariables() map[string]bool {
	out := make(map[string]bool)
	for _, f := range s.frames {
		for v := range f.variables {
			out[v] = true
		}
	}
	return out
}

// Parse consumes the whole token stream and returns the resulting database,
// or the first fatal scope error.
func (s *Scoper) Parse(tokens []token.Token) (*mm.Database, error) {
	for _, t := range tokens {
		if err := s.feed(t); err != nil {
			return nil, err
		}
	}
	if s.st != stTop {
		return nil, verr.New(verr.ScopeError, s.curPos, "unexpected end of file inside a statement")
	}
	if len(s.frames) != 1 {
		return nil, verr.New(verr.ScopeError, token.Position{}, fmt.Sprintf("unclosed ${ block(s): %d still open", len(s.frames)-1))
	}
	return s.db, nil
}

func (s *Scoper) feed(t token.Token) error {
	switch s.st {
	case stTop:
		return s.feedTop(t)
	case stAwaitingSymbols:
		return s.feedAwaitingSymbols(t)
	case stAwaitingProof:
		return s.feedAwaitingProof(t)
	}
	return nil
}

func (s *Scoper) feedTop(t token.Token) error {
	switch t.Text {
	case "${":
		s.frames = append(s.frames, newFrame())
		s.pendingLabelSet = false
		return nil
	case "$}":
		if len(s.frames) <= 1 {
			return verr.New(verr.ScopeError, t.Pos, "$} without matching ${")
		}
		s.frames = s.frames[:len(s.frames)-1]
		s.pendingLabelSet = false
		return nil
	case "$c":
		s.beginUnlabeled(mm.Constant, t.Pos)
		return nil
	case "$v":
		s.beginUnlabeled(mm.Variable, t.Pos)
		return nil
	case "$d":
		s.beginUnlabeled(mm.Disjoint, t.Pos)
		return nil
	case "$f", "$e", "$a", "$p":
		if !s.pendingLabelSet {
			return verr.New(verr.ScopeError, t.Pos, fmt.Sprintf("%s with no preceding label", t.Text))
		}
		kind := map[string]mm.Kind{"$f": mm.Floating, "$e": mm.Essential, "$a": mm.Axiom, "$p": mm.Proposition}[t.Text]
		s.curLabel = s.pendingLabel
		s.curKind = kind
		s.curPos = t.Pos
		s.curTokens = nil
		s.curProof = nil
		s.pendingLabelSet = false
		s.pendingKind = kind
		s.st = stAwaitingSymbols
		return nil
	case "$=", "$.":
		return verr.New(verr.ScopeError, t.Pos, fmt.Sprintf("unexpected %s", t.Text))
	default:
		s.pendingLabel = s.intern(t.Text)
		s.pendingLabelSet = true
		return nil
	}
}

func (s *Scoper) beginUnlabeled(kind mm.Kind, pos token.Position) {
	s.curLabel = ""
	s.curKind = kind
	s.curPos = pos
	s.curTokens = nil
	s.curProof = nil
	s.pendingKind = kind
	s.st = stAwaitingSymbols
}

func (s *Scoper) feedAwaitingSymbols(t token.Token) error {
	switch t.Text {
	case "$=":
		if s.pendingKind != mm.Proposition {
			return verr.New(verr.ScopeError, t.Pos, "$= used on a non-proposition statement")
		}
		s.st = stAwaitingProof
		return nil
	case "$.":
		return s.finalize(t.Pos)
	default:
		s.curTokens = append(s.curTokens, s.intern(t.Text))
		return nil
	}
}

func (s *Scoper) feedAwaitingProof(t token.Token) error {
	if t.Text == "$." {
		return s.finalize(t.Pos)
	}
	s.curProof = append(s.curProof, s.intern(t.Text))
	return nil
}

func (s *Scoper) finalize(pos token.Position) error {
	defer func() { s.st = stTop }()

	switch s.curKind {
	case mm.Constant:
		return s.registerUnlabeled(pos)
	case mm.Variable:
		for _, v := range s.curTokens {
			s.top().variables[v] = true
		}
		return s.registerUnlabeled(pos)
	case mm.Disjoint:
		group := make([]string, len(s.curTokens))
		copy(group, s.curTokens)
		s.top().disjointGroups = append(s.top().disjointGroups, group)
		return s.registerUnlabeled(pos)
	case mm.Floating:
		if len(s.curTokens) != 2 {
			return verr.New(verr.ScopeError, pos, fmt.Sprintf("$f statement %q must have exactly 2 tokens, got %d", s.curLabel, len(s.curTokens)))
		}
		stmt := &mm.Statement{Label: s.curLabel, Kind: mm.Floating, Tokens: s.curTokens, Pos: pos}
		if err := s.db.Register(stmt); err != nil {
			return verr.New(verr.DuplicateLabel, pos, err.Error(), s.curLabel)
		}
		s.top().floatings = append(s.top().floatings, stmt)
		s.db.SetRule(s.curLabel, mm.NewHypothesisRule(stmt))
		return nil
	case mm.Essential:
		stmt := &mm.Statement{Label: s.curLabel, Kind: mm.Essential, Tokens: s.curTokens, Pos: pos}
		if err := s.db.Register(stmt); err != nil {
			return verr.New(verr.DuplicateLabel, pos, err.Error(), s.curLabel)
		}
		s.top().essentials = append(s.top().essentials, stmt)
		s.db.SetRule(s.curLabel, mm.NewHypothesisRule(stmt))
		return nil
	case mm.Axiom, mm.Proposition:
		stmt := &mm.Statement{Label: s.curLabel, Kind: s.curKind, Tokens: s.curTokens, Pos: pos}
		if s.curKind == mm.Proposition {
			stmt.Proof = s.curProof
		}
		if err := s.db.Register(stmt); err != nil {
			return verr.New(verr.DuplicateLabel, pos, err.Error(), s.curLabel)
		}
		rule := s.buildRule(stmt)
		s.db.SetRule(s.curLabel, rule)
		return nil
	}
	return nil
}

// registerUnlabeled records a $c/$v/$d statement in the database's overall
// statement list for accounting purposes; it has no label and is never
// looked up by RuleFor/ByLabel.
func (s *Scoper) registerUnlabeled(pos token.Position) error {
	stmt := &mm.Statement{Kind: s.curKind, Tokens: s.curTokens, Pos: pos}
	s.db.RecordUnlabeled(stmt)
	return nil
}

// buildRule runs at every $a/$p: it narrows the currently active variables
// down to those actually mentioned in the consequent or an in-scope
// essential hypothesis (the mandatory variables), keeps only their floating
// hypotheses, collects every essential hypothesis still open, and unions
// the disjoint-variable pairs declared in any open frame.
func (s *Scoper) buildRule(consequent *mm.Statement) *mm.Rule {
	tokenSet := make(map[string]bool)
	for _, tok := range consequent.Tokens {
		tokenSet[tok] = true
	}
	for _, f := range s.frames {
		for _, e := range f.essentials {
			for _, tok := range e.Tokens {
				tokenSet[tok] = true
			}
		}
	}

	activeVars := s.activeVariables()
	mandatoryVars := make(map[string]bool)
	for v := range activeVars {
		if tokenSet[v] {
			mandatoryVars[v] = true
		}
	}

	rule := &mm.Rule{
		Consequent:    consequent,
		DisjointPairs: mm.PairSet{},
		Variables:     activeVars,
	}

	for _, f := range s.frames {
		rule.Essentials = append(rule.Essentials, f.essentials...)
		for _, h := range f.floatings {
			_, v := h.TypedVariable()
			if mandatoryVars[v] {
				rule.MandatoryFloatings = append(rule.MandatoryFloatings, h)
			}
		}
		for _, group := range f.disjointGroups {
			for i := 0; i < len(group); i++ {
				for j := i + 1; j < len(group); j++ {
					rule.DisjointPairs.Add(group[i], group[j])
				}
			}
		}
	}

	return rule
}
