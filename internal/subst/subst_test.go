package subst

import "testing"

func TestApplySubstitutesVariablesAndPassesConstantsThrough(t *testing.T) {
	sigma := Map{"ph": {"(", "ps", "->", "ph", ")"}}
	got := Apply([]string{"wff", "ph"}, sigma)
	want := []string{"wff", "(", "ps", "->", "ph", ")"}
	if !Equal(got, want) {
		t.Fatalf("Apply() = %v, want %v", got, want)
	}
}

func TestApplyWithEmptySigmaIsIdentity(t *testing.T) {
	in := []string{"wff", "(", "ph", "->", "ps", ")"}
	got := Apply(in, Map{})
	if !Equal(got, in) {
		t.Fatalf("Apply() with empty sigma = %v, want %v unchanged", got, in)
	}
}

func TestApplyDoesNotRecursivelyExpandIntoItsOwnOutput(t *testing.T) {
	// sigma maps ph -> [ps], ps -> [ph]: a naive recursive substitution
	// would chase this in a cycle; Apply must substitute once, left to
	// right, over the original token sequence only.
	sigma := Map{"ph": {"ps"}, "ps": {"ph"}}
	got := Apply([]string{"ph", "ps"}, sigma)
	want := []string{"ps", "ph"}
	if !Equal(got, want) {
		t.Fatalf("Apply() = %v, want %v", got, want)
	}
}

func TestApplyIsIdempotentOnceNoVariablesRemain(t *testing.T) {
	sigma := Map{"ph": {"ps"}}
	once := Apply([]string{"ph"}, sigma)
	twice := Apply(once, sigma)
	if !Equal(once, twice) {
		t.Fatalf("Apply() is not idempotent once no sigma keys remain: once=%v twice=%v", once, twice)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b []string
		want bool
	}{
		{[]string{"ph"}, []string{"ph"}, true},
		{[]string{"ph"}, []string{"ps"}, false},
		{[]string{"ph", "ps"}, []string{"ph"}, false},
		{nil, nil, true},
		{[]string{}, nil, true},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
