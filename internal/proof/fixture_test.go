package proof

import (
	"strings"
	"testing"

	"github.com/cwbudde/mmverify/internal/lexer"
	"github.com/cwbudde/mmverify/internal/mm"
	"github.com/cwbudde/mmverify/internal/scope"
	"github.com/cwbudde/mmverify/internal/token"
)

// propCalcSource is the classic wi/ax-1/ax-mp propositional-calculus
// fragment plus one derived theorem, a1i: "from |- ph, derive |- (ps -> ph)".
// Its normal-form proof below is traced by hand in DESIGN.md.
const propCalcSource = `
$c wff |- ( -> ) $.
$v ph ps $.
wph $f wff ph $.
wps $f wff ps $.
wi $a wff ( ph -> ps ) $.
ax-1 $a |- ( ph -> ( ps -> ph ) ) $.
${
  min $e |- ph $.
  maj $e |- ( ph -> ps ) $.
  ax-mp $a |- ps $.
$}
${
  min.1 $e |- ph $.
  a1i $p |- ( ps -> ph ) $=
     wph wps wph wi min.1 wph wps ax-1 ax-mp $.
$}
`

func mustParse(t *testing.T, src string) *mm.Database {
	t.Helper()
	toks, err := lexer.New(strings.NewReader(src)).Tokens()
	if err != nil {
		t.Fatalf("Tokens() error: %v", err)
	}
	db, err := scope.New(token.NewInterner()).Parse(toks)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return db
}

func mustRule(t *testing.T, db *mm.Database, label string) *mm.Rule {
	t.Helper()
	rule, ok := db.RuleFor(label)
	if !ok {
		t.Fatalf("rule %q not found", label)
	}
	return rule
}
