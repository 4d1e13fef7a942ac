package mm

import "testing"

func TestRegisterRejectsDuplicateLabels(t *testing.T) {
	db := NewDatabase()
	stmt := &Statement{Label: "ax-1", Kind: Axiom, Tokens: []string{"wff", "ph"}}
	if err := db.Register(stmt); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	if err := db.Register(stmt); err == nil {
		t.Fatal("expected an error registering a duplicate label")
	}
}

func TestRegisterRejectsEmptyLabel(t *testing.T) {
	db := NewDatabase()
	if err := db.Register(&Statement{Kind: Axiom}); err == nil {
		t.Fatal("expected an error registering a statement with no label")
	}
}

func TestAllStatementsPreservesDeclarationOrderAcrossLabeledAndUnlabeled(t *testing.T) {
	db := NewDatabase()
	db.RecordUnlabeled(&Statement{Kind: Constant})
	if err := db.Register(&Statement{Label: "wph", Kind: Floating, Tokens: []string{"wff", "ph"}}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	db.RecordUnlabeled(&Statement{Kind: Variable})
	if err := db.Register(&Statement{Label: "ax-1", Kind: Axiom}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	all := db.AllStatements()
	wantKinds := []Kind{Constant, Floating, Variable, Axiom}
	if len(all) != len(wantKinds) {
		t.Fatalf("AllStatements() len = %d, want %d", len(all), len(wantKinds))
	}
	for i, k := range wantKinds {
		if all[i].Kind != k {
			t.Errorf("statement %d kind = %s, want %s", i, all[i].Kind, k)
		}
	}
}

func TestLabelsPreservesRegistrationOrder(t *testing.T) {
	db := NewDatabase()
	for _, label := range []string{"wph", "wps", "ax-1"} {
		if err := db.Register(&Statement{Label: label, Kind: Axiom}); err != nil {
			t.Fatalf("Register(%s) error: %v", label, err)
		}
	}
	got := db.Labels()
	want := []string{"wph", "wps", "ax-1"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("Labels()[%d] = %s, want %s", i, got[i], w)
		}
	}
}

func TestPropositionsFiltersToProofBearingStatements(t *testing.T) {
	db := NewDatabase()
	must := func(stmt *Statement) {
		t.Helper()
		if err := db.Register(stmt); err != nil {
			t.Fatalf("Register(%s) error: %v", stmt.Label, err)
		}
	}
	must(&Statement{Label: "wph", Kind: Floating})
	must(&Statement{Label: "ax-1", Kind: Axiom})
	must(&Statement{Label: "thm1", Kind: Proposition, Proof: []string{"ax-1"}})

	props := db.Propositions()
	if len(props) != 1 || props[0].Label != "thm1" {
		t.Fatalf("Propositions() = %v, want [thm1]", props)
	}
}

func TestByLabelAndRuleForReportMissingEntries(t *testing.T) {
	db := NewDatabase()
	if _, ok := db.ByLabel("nope"); ok {
		t.Fatal("ByLabel found a statement that was never registered")
	}
	if _, ok := db.RuleFor("nope"); ok {
		t.Fatal("RuleFor found a rule that was never set")
	}
}
