package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/mmverify/internal/token"
)

func TestFormatIncludesKindAndMessage(t *testing.T) {
	err := New(DisjointViolation, token.Position{Line: 12}, "x and y are not disjoint", "x", "y")
	got := err.Format()
	if !strings.Contains(got, "DisjointViolation") {
		t.Errorf("Format() = %q, want it to contain the kind", got)
	}
	if !strings.Contains(got, "line 12") {
		t.Errorf("Format() = %q, want it to contain the line", got)
	}
	if !strings.Contains(got, "[x y]") {
		t.Errorf("Format() = %q, want it to contain the offending tokens", got)
	}
}

func TestWithTheoremAddsContextWithoutMutatingOriginal(t *testing.T) {
	base := New(WrongConclusion, token.Position{}, "mismatch")
	annotated := base.WithTheorem("mpd", 4)

	if strings.Contains(base.Format(), "theorem") {
		t.Errorf("base error was mutated: %q", base.Format())
	}
	got := annotated.Format()
	if !strings.Contains(got, "theorem mpd") || !strings.Contains(got, "step 4") {
		t.Errorf("Format() = %q, want theorem and step context", got)
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := TokenizeError; k <= WrongConclusion; k++ {
		if k.String() == "UnknownError" {
			t.Errorf("Kind %d has no String() case", k)
		}
	}
}
