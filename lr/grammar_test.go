package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	r1 := b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	r6 := b.LHS("D").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.Size() != 7 {
		t.Errorf("expected grammar to have 7 rules, has %d", g.Size())
	}
	if r1.Serial != 1 || r6.Serial != 6 {
		t.Errorf("expected rule serials 1 and 6, are %d and %d", r1.Serial, r6.Serial)
	}
	if start := g.Rule(0); start.LHS.Name != "S'" || start.RHS()[0] != r1.LHS {
		t.Errorf("expected rule 0 to be S' ➞ S, is %v", start)
	}
	if !r6.IsEps() {
		t.Errorf("expected rule 6 to be an epsilon-production")
	}
	if a := g.Terminal(1); a == nil || !a.IsTerminal() || a.Name != "a" {
		t.Errorf("expected terminal 'a' for token value 1, got %v", a)
	}
	if len(g.FindNonTermRules(g.NonTerminal("B"))) != 2 {
		t.Errorf("expected 2 rules for B")
	}
}

func TestUndefinedNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for undefined non-terminal A")
	}
	b = NewGrammarBuilder("Empty")
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for empty grammar")
	}
}

func TestTerminalAlias(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("x", 5).T("y", 5).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	rhs := g.Rule(1).RHS()
	if rhs[0] != rhs[1] {
		t.Errorf("expected terminals with equal token value to be the same symbol")
	}
	b = NewGrammarBuilder("G")
	b.LHS("S").T("x", nonTermBase).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for out-of-range token value")
	}
}

func TestItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	r := b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").T("b", 2).End()
	if _, err := b.Grammar(); err != nil {
		t.Fatal(err)
	}
	i, A := StartItem(r)
	if A.Name != "A" || i.Completed() {
		t.Errorf("expected start item to peek at A, peeks at %v", A)
	}
	j := i.Advance().Advance()
	if !j.Completed() || j.PeekSymbol() != nil || len(j.Prefix()) != 2 {
		t.Errorf("expected %v to be completed", j)
	}
	if j.Advance() != j {
		t.Errorf("expected advancing a completed item to be a no-op")
	}
	if j.Retreat().Retreat() != i {
		t.Errorf("expected retreating twice to reach the start item")
	}
	if i.WithOrigin(3) == i || i.WithOrigin(3).Origin != 3 {
		t.Errorf("expected origin to be part of the item's identity")
	}
	t.Logf("item = %v", j)
}

func TestDerivesEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	b.LHS("D").Epsilon()
	g, _ := b.Grammar()
	ga := Analysis(g)
	for _, name := range []string{"A", "B", "D"} {
		if !ga.DerivesEpsilon(g.NonTerminal(name)) {
			t.Errorf("expected %s to derive ε", name)
		}
	}
	if ga.DerivesEpsilon(g.NonTerminal("S")) {
		t.Errorf("expected S not to derive ε")
	}
}
