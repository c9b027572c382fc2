package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/alterlang"
)

// --- Symbols ---------------------------------------------------------------

// nonTermBase is the first value handed out to non-terminals. Token values of
// terminals have to be below this value.
const nonTermBase = 10000

// Symbol represents a grammar symbol (terminal or non-terminal).
type Symbol struct {
	Name     string // visible name
	Value    int    // token value for terminals, serial ID for non-terminals
	terminal bool
}

// IsTerminal returns true if this symbol represents a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

// TokenType returns the token type of a terminal. For non-terminals the serial
// ID is returned.
func (A *Symbol) TokenType() alterlang.TokType {
	return alterlang.TokType(A.Value)
}

func (A *Symbol) String() string {
	if A == nil {
		return "<nil>"
	}
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
type Rule struct {
	Serial int     // order number of this rule within a grammar
	LHS    *Symbol // symbol of left hand side
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEps is true for epsilon-productions.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%s ➞", r.LHS))
	for _, A := range r.rhs {
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if r.IsEps() {
		b.WriteString(" ε")
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a type for a context free grammar. Grammars are constructed with
// a GrammarBuilder. Rule 0 is always the synthetic start rule
//
//     S' ➞ S
//
// where S is the left hand side of the first rule the client defined.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    map[int]*Symbol    // terminals by token value
	nonterminals map[string]*Symbol // non-terminals by name
	symbols      []*Symbol          // all symbols in order of appearance
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:         name,
		rules:        make([]*Rule, 1, 32), // slot 0 is reserved for S'
		terminals:    make(map[int]*Symbol),
		nonterminals: make(map[string]*Symbol),
	}
}

// Rule gets a grammar rule by its serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules in the grammar, including S'.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Terminal returns the terminal symbol for a given token value, if it
// is defined in the grammar.
func (g *Grammar) Terminal(tokval int) *Symbol {
	return g.terminals[tokval]
}

// NonTerminal returns the non-terminal symbol with a given name, if it is
// defined in the grammar.
func (g *Grammar) NonTerminal(name string) *Symbol {
	return g.nonterminals[name]
}

// FindNonTermRules returns all rules with left hand side B.
func (g *Grammar) FindNonTermRules(B *Symbol) []*Rule {
	var R []*Rule
	for _, r := range g.rules {
		if r.LHS == B {
			R = append(R, r)
		}
	}
	return R
}

// EachNonTerminal iterates over all non-terminal symbols of the grammar.
// Return values of the mapper function are ignored.
func (g *Grammar) EachNonTerminal(mapper func(name string, N *Symbol) interface{}) {
	for _, A := range g.symbols {
		if !A.IsTerminal() {
			mapper(A.Name, A)
		}
	}
}

// Dump is a debugging helper, writing the rules of a grammar to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) terminal(name string, tokval int) (*Symbol, error) {
	if tokval >= nonTermBase {
		return nil, fmt.Errorf("token value %d of terminal %q out of range", tokval, name)
	}
	if A, ok := g.terminals[tokval]; ok {
		return A, nil // first name wins, others are aliases
	}
	A := &Symbol{Name: name, Value: tokval, terminal: true}
	g.terminals[tokval] = A
	g.symbols = append(g.symbols, A)
	return A, nil
}

func (g *Grammar) nonterminal(name string) *Symbol {
	if N, ok := g.nonterminals[name]; ok {
		return N
	}
	N := &Symbol{Name: name, Value: nonTermBase + len(g.nonterminals)}
	g.nonterminals[name] = N
	g.symbols = append(g.symbols, N)
	return N
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Clients add rules, consisting
// of non-terminal symbols and terminals. Terminals carry a token value of type
// int. Grammars may contain epsilon-productions.
//
//     b := lr.NewGrammarBuilder("G")
//     b.LHS("S").N("A").T("a", 1).End()  // S  ➞  A a
//     b.LHS("A").N("B").End()            // A  ➞  B
//     b.LHS("B").T("b", 2).End()         // B  ➞  b
//     b.LHS("B").Epsilon()               // B  ➞
//     g, err := b.Grammar()
//
type GrammarBuilder struct {
	g   *Grammar
	err error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{g: newGrammar(gname)}
}

// RuleBuilder is a builder type for a single rule. It is returned by
// GrammarBuilder.LHS and finished with End() or Epsilon().
type RuleBuilder struct {
	gb   *GrammarBuilder
	rule *Rule
}

// LHS starts a new rule, given the name of its left hand side non-terminal.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{
		gb:   gb,
		rule: &Rule{LHS: gb.g.nonterminal(s)},
	}
}

// N appends a non-terminal to the right hand side of a rule.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, rb.gb.g.nonterminal(s))
	return rb
}

// T appends a terminal to the right hand side of a rule.
func (rb *RuleBuilder) T(s string, tokval int) *RuleBuilder {
	A, err := rb.gb.g.terminal(s, tokval)
	if err != nil {
		if rb.gb.err == nil {
			rb.gb.err = err
		}
		return rb
	}
	rb.rule.rhs = append(rb.rule.rhs, A)
	return rb
}

// End finishes a rule and adds it to the grammar. It returns the rule, which
// carries its serial number.
func (rb *RuleBuilder) End() *Rule {
	g := rb.gb.g
	rb.rule.Serial = len(g.rules)
	g.rules = append(g.rules, rb.rule)
	return rb.rule
}

// Epsilon finishes a rule with an empty right hand side.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rule.rhs = nil
	return rb.End()
}

// Grammar returns the grammar built so far, after adding the start rule S'
// and checking that every non-terminal is defined by at least one rule.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	g := gb.g
	if len(g.rules) < 2 {
		return nil, fmt.Errorf("grammar %q has no rules", g.Name)
	}
	if g.rules[0] == nil {
		start := &Rule{
			Serial: 0,
			LHS:    g.nonterminal("S'"),
			rhs:    []*Symbol{g.rules[1].LHS},
		}
		g.rules[0] = start
	}
	defined := make(map[*Symbol]bool, len(g.nonterminals))
	for _, r := range g.rules {
		defined[r.LHS] = true
	}
	for _, A := range g.symbols {
		if !A.IsTerminal() && !defined[A] {
			return nil, fmt.Errorf("grammar %q: non-terminal %s has no rules", g.Name, A)
		}
	}
	return g, nil
}
