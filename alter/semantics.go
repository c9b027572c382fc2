package alter

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/alterlang"
	"github.com/npillmayer/alterlang/lr"
	"github.com/npillmayer/alterlang/lr/earley"
)

// contextSize is the number of trailing tokens kept for error messages.
const contextSize = 10

// Session holds the state of a single parse. It is the controller and the
// derivation listener of the Earley parser, and it assembles the statements
// from the grammar reductions.
//
// Clients have to call Consume for every token, before the token is fed to
// the parser. A session must not be re-used for another parse.
type Session struct {
	context *arraylist.List // trailing window of consumed tokens
	errors  []string        // syntax errors in order of occurence
	failed  bool            // parser could not recover
	phrases []Statement     // nil until start rule reduced
}

var _ earley.Controller = (*Session)(nil)
var _ earley.Listener = (*Session)(nil)

// NewSession creates a fresh parse session.
func NewSession() *Session {
	return &Session{context: arraylist.New()}
}

// Consume appends a token to the trailing context window.
func (s *Session) Consume(token alterlang.Token) {
	s.context.Add(token)
	for s.context.Size() > contextSize {
		s.context.Remove(0)
	}
}

// Context returns the tokens of the trailing context window, oldest first.
func (s *Session) Context() []alterlang.Token {
	tokens := make([]alterlang.Token, 0, s.context.Size())
	s.context.Each(func(_ int, x interface{}) {
		tokens = append(tokens, x.(alterlang.Token))
	})
	return tokens
}

// Errors returns the syntax errors collected so far.
func (s *Session) Errors() []string {
	return append([]string(nil), s.errors...)
}

// Failed is true if the parser could not recover from an error.
func (s *Session) Failed() bool {
	return s.failed
}

// Phrases returns the statements of an accepted input, or nil.
func (s *Session) Phrases() []Statement {
	return s.phrases
}

// Result returns the statements of a finished parse. If syntax errors have been
// reported, it returns a *ParseError listing all of them.
//
// Result panics if the parse neither failed nor produced statements.
func (s *Session) Result() ([]Statement, error) {
	if len(s.errors) > 0 {
		return nil, &ParseError{Messages: s.Errors()}
	}
	if s.failed {
		return nil, &ParseError{Messages: []string{ErrParseFailed.Error()}, err: ErrParseFailed}
	}
	if s.phrases == nil {
		panic("alter: parse finished without error, but no statements have been produced")
	}
	return s.phrases, nil
}

// --- Controller ------------------------------------------------------------

// Accept is part of interface earley.Controller.
func (s *Session) Accept() {}

// ParseFailed is part of interface earley.Controller.
func (s *Session) ParseFailed() {
	tracer().Infof("parse failed")
	s.failed = true
}

// SyntaxError is part of interface earley.Controller. It records an error
// message for a rejected token, mentioning the tokens consumed before it.
func (s *Session) SyntaxError(token alterlang.Token) {
	var msg string
	if token.TokType() == BadToken {
		msg = fmt.Sprintf("Bad token: %q", token.Lexeme())
	} else {
		ctx := s.Context()
		if len(ctx) > 0 {
			ctx = ctx[:len(ctx)-1]
		}
		lexemes := make([]string, len(ctx))
		for i, t := range ctx {
			lexemes[i] = t.Lexeme()
		}
		msg = fmt.Sprintf("Syntax error near [%s] after [%s]", token.Lexeme(), strings.Join(lexemes, " "))
	}
	tracer().Infof("%s", msg)
	s.errors = append(s.errors, msg)
}

// --- Listener --------------------------------------------------------------

// Reduce is part of interface earley.Listener. It dispatches to the semantic
// action of a grammar rule.
func (s *Session) Reduce(lhs *lr.Symbol, rule int, rhs []*earley.RuleNode, span alterlang.Span, level int) interface{} {
	action, ok := actions[rule]
	if !ok {
		if len(rhs) == 1 { // S' ➞ alter_start
			return rhs[0].Value
		}
		tracer().Errorf("no semantic action for rule %d (%s)", rule, lhs)
		return nil
	}
	tracer().Debugf("reduce %s %v", lhs, span)
	return action(s, rhs)
}

// Terminal is part of interface earley.Listener.
func (s *Session) Terminal(token alterlang.Token, level int) interface{} {
	return token
}

// --- Semantic actions ------------------------------------------------------

// AlterStart receives the statements of the whole input.
func (s *Session) AlterStart(ps []Statement) {
	if ps == nil {
		ps = []Statement{}
	}
	s.phrases = ps
}

// PhrasesOne starts a list of statements. Empty phrases are dropped.
func (s *Session) PhrasesOne(p Statement) []Statement {
	if p == nil {
		return []Statement{}
	}
	return []Statement{p}
}

// PhrasesMany appends a statement to a list. Empty phrases are dropped.
func (s *Session) PhrasesMany(ps []Statement, p Statement) []Statement {
	if p == nil {
		return ps
	}
	return append(ps[:len(ps):len(ps)], p)
}

// PhraseNone is the empty phrase.
func (s *Session) PhraseNone() Statement {
	return nil
}

// PhraseSetVarDependency: ENSURE columns dependency
func (s *Session) PhraseSetVarDependency(cols ColumnSet, dep Dependency) Statement {
	return SetVarDependency{Columns: cols, Dependency: dep}
}

// PhraseSetVarCluster: SET columns WITHIN CLUSTER OF VARIABLE column
func (s *Session) PhraseSetVarCluster(cols0 ColumnSet, col1 ColumnRef) Statement {
	return SetVarCluster{Columns0: cols0, Column1: col1}
}

// PhraseSetVarClusterSingleton: SET columns IN SINGLETON CLUSTER
func (s *Session) PhraseSetVarClusterSingleton(cols ColumnSet) Statement {
	return SetVarCluster{Columns0: cols, Column1: Singleton}
}

// PhraseSetVarClusterConc: SET VARIABLE CLUSTER CONCENTRATION PARAMETER TO conc
func (s *Session) PhraseSetVarClusterConc(conc Number) Statement {
	return SetVarClusterConc{Concentration: conc}
}

// PhraseSetRowCluster: SET rows WITHIN CLUSTER OF ROW row CONTEXT VARIABLE column
func (s *Session) PhraseSetRowCluster(rows0 RowSet, row1 RowRef, col ColumnRef) Statement {
	return SetRowCluster{Rows0: rows0, Row1: row1, Column: col}
}

// PhraseSetRowClusterSingleton: SET rows IN SINGLETON CLUSTER CONTEXT VARIABLE column
func (s *Session) PhraseSetRowClusterSingleton(rows0 RowSet, col ColumnRef) Statement {
	return SetRowCluster{Rows0: rows0, Row1: Singleton, Column: col}
}

// PhraseSetRowClusterConc: SET ROW CLUSTER CONCENTRATION PARAMETER FOR VARIABLE column TO conc
func (s *Session) PhraseSetRowClusterConc(col ColumnRef, conc Number) Statement {
	return SetRowClusterConc{Column: col, Concentration: conc}
}

// DependencyIndependent: INDEPENDENT
func (s *Session) DependencyIndependent() Dependency { return Independent }

// DependencyDependent: DEPENDENT
func (s *Session) DependencyDependent() Dependency { return Dependent }

// ColumnsOne is a single column.
func (s *Session) ColumnsOne(col ColumnRef) ColumnSet {
	return ColumnSet{Names: []ColumnRef{col}}
}

// ColumnsAll is `*`.
func (s *Session) ColumnsAll() ColumnSet {
	return AllColumns()
}

// ColumnsMany is a parenthesized list of columns.
func (s *Session) ColumnsMany(cols []ColumnRef) ColumnSet {
	return ColumnSet{Names: cols}
}

// ColumnsBare is a list of at least two columns without parentheses.
func (s *Session) ColumnsBare(cols []ColumnRef, col ColumnRef) ColumnSet {
	return ColumnSet{Names: s.ColumnListMany(cols, col)}
}

// ColumnListOne starts a list of columns.
func (s *Session) ColumnListOne(col ColumnRef) []ColumnRef {
	return []ColumnRef{col}
}

// ColumnListMany appends a column to a list.
func (s *Session) ColumnListMany(cols []ColumnRef, col ColumnRef) []ColumnRef {
	return append(cols[:len(cols):len(cols)], col)
}

// RowsOne is a single row.
func (s *Session) RowsOne(row RowRef) RowSet {
	return RowSet{Rows: []RowRef{row}}
}

// RowsAll is `*`.
func (s *Session) RowsAll() RowSet {
	return AllRows()
}

// RowsMany is a parenthesized list of rows.
func (s *Session) RowsMany(rows []RowRef) RowSet {
	return RowSet{Rows: rows}
}

// RowsBare is a list of at least two rows without parentheses.
func (s *Session) RowsBare(rows []RowRef, row RowRef) RowSet {
	return RowSet{Rows: s.RowListMany(rows, row)}
}

// RowListOne starts a list of rows.
func (s *Session) RowListOne(row RowRef) []RowRef {
	return []RowRef{row}
}

// RowListMany appends a row to a list.
func (s *Session) RowListMany(rows []RowRef, row RowRef) []RowRef {
	return append(rows[:len(rows):len(rows)], row)
}

// Concentration extracts the value of a NUMBER token.
func (s *Session) Concentration(token alterlang.Token) Number {
	return numberOf(token)
}

// ColumnName extracts the name of a NAME token.
func (s *Session) ColumnName(token alterlang.Token) ColumnRef {
	return ColumnRef(token.Lexeme())
}

// RowIndex creates a row reference from a NAME or NUMBER token.
func (s *Session) RowIndex(token alterlang.Token) RowRef {
	if token.TokType() == NUMBER {
		return RowNumber(numberOf(token))
	}
	return RowName(token.Lexeme())
}

func numberOf(token alterlang.Token) Number {
	if n, ok := token.Value().(Number); ok {
		return n
	}
	tracer().Errorf("token %q carries no number", token.Lexeme())
	return Number{}
}
