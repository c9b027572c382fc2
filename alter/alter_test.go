package alter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/alterlang"
	"github.com/npillmayer/alterlang/lr"
	"github.com/npillmayer/alterlang/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type group = []interface{}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	groups := group{
		group{"set", group{"(", "a", ",", "b", ")"}},
		[]string{"In", "x"},
		3.5,
	}
	tokens, err := NewTokenizer(groups).Tokens()
	if err != nil {
		t.Fatal(err)
	}
	expected := []alterlang.TokType{
		KwSet, LRound, NAME, Comma, NAME, RRound, Comma, KwIn, NAME, Comma, NUMBER, EOF,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, token := range tokens {
		if token.TokType() != expected[i] {
			t.Errorf("token #%d: expected %s, have %s", i, TokenString(expected[i]), TokenString(token.TokType()))
		}
	}
	if tokens[0].Lexeme() != "set" || tokens[7].Lexeme() != "In" {
		t.Errorf("expected keywords to keep their case, have %q and %q", tokens[0].Lexeme(), tokens[7].Lexeme())
	}
	if n, ok := tokens[10].Value().(Number); !ok || n != RealNumber(3.5) || tokens[10].Lexeme() != "3.5" {
		t.Errorf("expected number 3.5, have %v", tokens[10].Value())
	}
	if tokens[11].Lexeme() != "" {
		t.Errorf("expected EOF to have empty text")
	}
}

func TestTokenizeEmptyGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	tokens, _ := NewTokenizer(group{group{}, "a", group{}}).Tokens()
	expected := []alterlang.TokType{Comma, NAME, Comma, EOF}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, token := range tokens {
		if token.TokType() != expected[i] {
			t.Errorf("token #%d: expected %s, have %s", i, TokenString(expected[i]), TokenString(token.TokType()))
		}
	}
	tokens, _ = NewTokenizer(nil).Tokens()
	if len(tokens) != 1 || tokens[0].TokType() != EOF {
		t.Errorf("expected a single EOF token for empty input")
	}
}

func TestTokenizeNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	atoms := group{7, int8(-3), uint16(9), int64(1 << 40), float32(0.5), 2.0, uint64(1 << 63)}
	expected := []Number{
		IntNumber(7), IntNumber(-3), IntNumber(9), IntNumber(1 << 40),
		RealNumber(0.5), RealNumber(2), RealNumber(float64(uint64(1 << 63))),
	}
	tz := NewTokenizer(group{atoms})
	for i, n := range expected {
		token := tz.NextToken()
		if token.TokType() != NUMBER || token.Value().(Number) != n {
			t.Errorf("atom #%d: expected NUMBER %v, have %v", i, n, token.Value())
		}
	}
	if tz.NextToken().TokType() != EOF {
		t.Errorf("expected EOF after numbers")
	}
}

func TestInvalidToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	session := NewSession()
	_, err := ParseTokens(NewTokenizer(group{struct{}{}, "a"}), session)
	var invalid *InvalidTokenError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTokenError, have %v", err)
	}
	if len(session.Context()) != 0 {
		t.Errorf("expected no token to reach the session, have %d", len(session.Context()))
	}
	var reported error
	tz := NewTokenizer(group{"SET", group{"a", true}})
	tz.SetErrorHandler(func(e error) { reported = e })
	tokens, err := tz.Tokens()
	if err == nil || reported != err || len(tokens) != 3 {
		t.Errorf("expected error after 3 tokens, have %v after %d", err, len(tokens))
	}
	if tz.NextToken().TokType() != EOF {
		t.Errorf("expected tokenizer to return EOF after an error")
	}
	if _, err = Parse(group{"SET", nil}); !errors.As(err, &invalid) || invalid.Atom != nil {
		t.Errorf("expected InvalidTokenError for nil, have %v", err)
	}
}

// --- Phrases ---------------------------------------------------------------

var phraseTests = []struct {
	input    group
	expected Statement
}{
	{
		group{group{"ENSURE", "a"}, group{"b", "INDEPENDENT"}},
		SetVarDependency{Columns: Columns("a", "b"), Dependency: Independent},
	},
	{
		group{group{"ENSURE", group{"(", "a", ",", "b", ",", "a", ")"}, "dependent"}},
		SetVarDependency{Columns: Columns("a", "b", "a"), Dependency: Dependent},
	},
	{
		group{group{"ensure", "*", "Independent"}},
		SetVarDependency{Columns: AllColumns(), Dependency: Independent},
	},
	{
		group{group{"SET", "a", "WITHIN", "CLUSTER", "OF", "VARIABLE", "b"}},
		SetVarCluster{Columns0: Columns("a"), Column1: ColumnRef("b")},
	},
	{
		group{group{"SET", "*", "IN", "SINGLETON", "CLUSTER"}},
		SetVarCluster{Columns0: AllColumns(), Column1: Singleton},
	},
	{
		group{group{"SET", "VARIABLE", "CLUSTER", "CONCENTRATION", "PARAMETER", "TO", 3.5}},
		SetVarClusterConc{Concentration: RealNumber(3.5)},
	},
	{
		group{group{"SET", group{"(", 1, ",", "r", ")"}, "WITHIN", "CLUSTER", "OF", "ROW", 7,
			"CONTEXT", "VARIABLE", "c"}},
		SetRowCluster{
			Rows0:  Rows(RowNumber(IntNumber(1)), RowName("r")),
			Row1:   RowNumber(IntNumber(7)),
			Column: ColumnRef("c"),
		},
	},
	{
		group{group{"SET", 1}, 2, group{3, "IN", "SINGLETON", "CLUSTER", "CONTEXT", "VARIABLE", "c"}},
		SetRowCluster{
			Rows0:  Rows(RowNumber(IntNumber(1)), RowNumber(IntNumber(2)), RowNumber(IntNumber(3))),
			Row1:   Singleton,
			Column: ColumnRef("c"),
		},
	},
	{
		group{group{"SET", "*", "IN", "SINGLETON", "CLUSTER", "CONTEXT", "VARIABLE", "c"}},
		SetRowCluster{Rows0: AllRows(), Row1: Singleton, Column: ColumnRef("c")},
	},
	{
		group{group{"SET", "ROW", "CLUSTER", "CONCENTRATION", "PARAMETER", "FOR", "VARIABLE", "c", "TO", 2}},
		SetRowClusterConc{Column: ColumnRef("c"), Concentration: IntNumber(2)},
	},
}

func TestPhrases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	for i, test := range phraseTests {
		statements, err := Parse(test.input)
		if err != nil {
			t.Errorf("phrase #%d: %v", i, err)
			continue
		}
		if len(statements) != 1 {
			t.Errorf("phrase #%d: expected 1 statement, have %d", i, len(statements))
			continue
		}
		if !reflect.DeepEqual(statements[0], test.expected) {
			t.Errorf("phrase #%d: expected %#v, have %#v", i, test.expected, statements[0])
		}
	}
}

func TestParseString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	statements, err := ParseString(`ENSURE a, b INDEPENDENT,
		SET * IN SINGLETON CLUSTER,
		SET VARIABLE CLUSTER CONCENTRATION PARAMETER TO 3.5`)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Statement{
		SetVarDependency{Columns: Columns("a", "b"), Dependency: Independent},
		SetVarCluster{Columns0: AllColumns(), Column1: Singleton},
		SetVarClusterConc{Concentration: RealNumber(3.5)},
	}
	if !reflect.DeepEqual(statements, expected) {
		t.Errorf("expected %v, have %v", expected, statements)
	}
	if _, err = ParseString("SET (a"); err == nil {
		t.Errorf("expected splitter error to be returned")
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	for i, test := range phraseTests {
		text := test.expected.String()
		statements, err := ParseString(text)
		if err != nil {
			t.Errorf("phrase #%d %q: %v", i, text, err)
			continue
		}
		if len(statements) != 1 || !reflect.DeepEqual(statements[0], test.expected) {
			t.Errorf("phrase #%d: %q does not read back as %#v", i, text, test.expected)
		}
	}
	quoted := SetVarCluster{Columns0: Columns("my col", "b"), Column1: ColumnRef("9lives")}
	if s := quoted.String(); s != `SET ("my col", b) WITHIN CLUSTER OF VARIABLE "9lives"` {
		t.Errorf("unexpected rendering %s", s)
	}
	if statements, err := ParseString(quoted.String()); err != nil || !reflect.DeepEqual(statements[0], quoted) {
		t.Errorf("expected quoted names to read back, have %v, %v", statements, err)
	}
}

func TestUnwritableNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	kw := SetVarCluster{Columns0: Columns("set"), Column1: Singleton}
	if s := kw.String(); s != "SET set IN SINGLETON CLUSTER" {
		t.Errorf("unexpected rendering %s", s)
	}
	if _, err := ParseString(kw.String()); err == nil {
		t.Errorf("expected reserved word as a name to be rejected")
	}
	dq := SetVarCluster{Columns0: Columns(`a"b`), Column1: Singleton}
	if s := dq.String(); s != `SET "a"b" IN SINGLETON CLUSTER` {
		t.Errorf("unexpected rendering %s", s)
	}
	if _, err := ParseString(dq.String()); err == nil {
		t.Errorf("expected name with a double quote to be rejected")
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	input := group{
		group{"SET", group{"(", 1, ",", "r", ")"}, "IN", "SINGLETON", "CLUSTER", "CONTEXT", "VARIABLE", "c"},
		group{"ENSURE", "*", "DEPENDENT"},
	}
	first, err1 := ParseTokens(NewTokenizer(input), NewSession())
	second, err2 := ParseTokens(NewTokenizer(input), NewSession())
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors %v, %v", err1, err2)
	}
	if len(first) != 2 || !reflect.DeepEqual(first, second) {
		t.Errorf("expected two parses to yield identical statements, have %v and %v", first, second)
	}
}

func TestContextWindow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	s := NewSession()
	for i := 0; i < 50; i++ {
		s.Consume(scanner.MakeDefaultToken(NAME, "x", alterlang.Span{uint64(i), uint64(i + 1)}))
		if len(s.Context()) > contextSize {
			t.Fatalf("context window exceeds %d entries", contextSize)
		}
	}
	if s.Context()[0].Span().From() != 40 {
		t.Errorf("expected oldest tokens to be evicted first")
	}
	//
	input := group{group{"ENSURE", "c"}} // ENSURE c, c, …, c INDEPENDENT
	for i := 0; i < 53; i++ {
		input = append(input, "c")
	}
	input = append(input, group{"c", "INDEPENDENT"})
	session := NewSession()
	statements, err := ParseTokens(NewTokenizer(input), session)
	if err != nil {
		t.Fatal(err)
	}
	if len(statements) != 1 || len(statements[0].(SetVarDependency).Columns.Names) != 55 {
		t.Errorf("expected ENSURE statement for 55 columns")
	}
	ctx := session.Context()
	if len(ctx) != contextSize || ctx[len(ctx)-1].TokType() != EOF {
		t.Errorf("expected full context window ending with EOF, have %d tokens", len(ctx))
	}
	for _, token := range ctx[:len(ctx)-1] {
		if token.TokType() == EOF {
			t.Errorf("expected EOF to be the last token only")
		}
	}
}

func TestEmptyPhrases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	statements, err := Parse(nil)
	if err != nil || statements == nil || len(statements) != 0 {
		t.Errorf("expected empty input to yield an empty list, have %v, %v", statements, err)
	}
	statements, err = ParseString("SET * IN SINGLETON CLUSTER,")
	if err != nil || len(statements) != 1 {
		t.Errorf("expected trailing comma to contribute nothing, have %v, %v", statements, err)
	}
	statements, err = ParseString(", , ENSURE x DEPENDENT")
	if err != nil || len(statements) != 1 {
		t.Errorf("expected empty phrases to contribute nothing, have %v, %v", statements, err)
	}
	for _, st := range statements {
		if st == nil {
			t.Errorf("expected no nil statements")
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	statements, err := ParseString("SET * IN SINGLETON CLUSTER, SET a WITHIN")
	var perr *ParseError
	if !errors.As(err, &perr) || len(perr.Messages) == 0 || statements != nil {
		t.Fatalf("expected malformed phrase to fail the parse, have %v, %v", statements, err)
	}
	if errors.Is(err, ErrParseFailed) {
		t.Errorf("expected syntax errors not to be reported as mysterious failure")
	}
	t.Logf("error = %v", err)
	//
	_, err = Parse(group{group{"ENSURE", "a", "b", "INDEPENDENT"}})
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ParseError, have %v", err)
	}
	expected := []string{"Syntax error near [b] after [ENSURE a]"}
	if !reflect.DeepEqual(perr.Messages, expected) {
		t.Errorf("expected %v, have %v", expected, perr.Messages)
	}
	//
	_, err = Parse(group{"SET"})
	expected = []string{"Syntax error near [] after [SET]"}
	if !errors.As(err, &perr) || !reflect.DeepEqual(perr.Messages, expected) {
		t.Errorf("expected %v, have %v", expected, err)
	}
}

func TestAccumulatedSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	// ')' and 'x' are rejected; the second error is reported after three
	// tokens have been accepted again
	input := group{
		group{"SET", "*", ")", "IN", "SINGLETON", "CLUSTER"},
		group{"ENSURE", "a", "x", "DEPENDENT"},
	}
	_, err := Parse(input)
	var perr *ParseError
	if !errors.As(err, &perr) || len(perr.Messages) != 2 {
		t.Fatalf("expected 2 syntax errors, have %v", err)
	}
	if perr.Messages[1] != "Syntax error near [x] after [SET * ) IN SINGLETON CLUSTER , ENSURE a]" {
		t.Errorf("unexpected message %q", perr.Messages[1])
	}
}

func TestSessionResult(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	s := NewSession()
	s.ParseFailed()
	if _, err := s.Result(); !errors.Is(err, ErrParseFailed) || err.Error() != "parse failed mysteriously" {
		t.Errorf("expected ErrParseFailed, have %v", err)
	}
	s = NewSession()
	s.SyntaxError(scanner.MakeDefaultToken(BadToken, "§", alterlang.Span{0, 1}))
	s.ParseFailed()
	_, err := s.Result()
	if err == nil || err.Error() != `Bad token: "§"` || errors.Is(err, ErrParseFailed) {
		t.Errorf("expected bad token message to take precedence, have %v", err)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Result to panic without statements")
		}
	}()
	_, _ = NewSession().Result()
}

func TestSemanticActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	s := NewSession()
	if ps := s.PhrasesOne(s.PhraseNone()); ps == nil || len(ps) != 0 {
		t.Errorf("expected empty phrase to yield an empty list")
	}
	st := s.PhraseSetVarClusterConc(IntNumber(1))
	ps := s.PhrasesMany(s.PhrasesOne(st), nil)
	if len(ps) != 1 {
		t.Errorf("expected empty phrase to be dropped")
	}
	cols := s.ColumnListOne("a")
	b := s.ColumnListMany(cols, "b")
	c := s.ColumnListMany(cols, "c")
	if b[1] != "b" || c[1] != "c" || len(cols) != 1 {
		t.Errorf("expected column lists not to share elements")
	}
	if set := s.ColumnsBare(b, "d"); !reflect.DeepEqual(set, Columns("a", "b", "d")) {
		t.Errorf("expected bare list a, b, d, have %v", set)
	}
	rows := s.RowsBare(s.RowListOne(RowName("x")), RowNumber(IntNumber(2)))
	if rows.String() != "(x, 2)" {
		t.Errorf("expected rows (x, 2), have %s", rows)
	}
	if s.RowsAll().String() != "*" || !s.ColumnsAll().All {
		t.Errorf("expected '*' to denote all rows and columns")
	}
	if s.DependencyDependent() != Dependent || s.DependencyIndependent() != Independent {
		t.Errorf("unexpected dependency values")
	}
	num := scanner.MakeDefaultToken(NUMBER, "4", alterlang.Span{0, 1}).WithValue(IntNumber(4))
	name := scanner.MakeDefaultToken(NAME, "r4", alterlang.Span{0, 1})
	if s.Concentration(num) != IntNumber(4) || s.RowIndex(num) != RowNumber(IntNumber(4)) {
		t.Errorf("expected number 4 to be extracted from token")
	}
	if s.RowIndex(name) != RowName("r4") || s.ColumnName(name) != ColumnRef("r4") {
		t.Errorf("expected name r4 to be extracted from token")
	}
	st = s.PhraseSetRowClusterSingleton(AllRows(), "c")
	if st.String() != "SET * IN SINGLETON CLUSTER CONTEXT VARIABLE c" {
		t.Errorf("unexpected rendering %s", st)
	}
	if s.Phrases() != nil {
		t.Errorf("expected phrases to be nil before the start rule has been reduced")
	}
	s.AlterStart(nil)
	if s.Phrases() == nil {
		t.Errorf("expected start rule to set phrases")
	}
}

func TestGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alterlang.alter")
	defer teardown()
	//
	ga := Grammar()
	g := ga.Grammar()
	g.Dump()
	for serial := 1; serial < g.Size(); serial++ {
		if _, ok := actions[serial]; !ok {
			t.Errorf("no semantic action for rule %v", g.Rule(serial))
		}
	}
	g.EachNonTerminal(func(name string, N *lr.Symbol) interface{} {
		if len(g.FindNonTermRules(N)) == 0 {
			t.Errorf("no rules for %s", name)
		}
		return nil
	})
	if !ga.DerivesEpsilon(g.NonTerminal("phrase")) || !ga.DerivesEpsilon(g.NonTerminal("alter_start")) {
		t.Errorf("expected empty phrases to be allowed")
	}
	if name, id := Token("SET"); name != "SET" || id != int(KwSet) {
		t.Errorf("unexpected token value %d for SET", id)
	}
	if TokenString(KwWithin) != "WITHIN" || TokenString(EOF) != "<EOF>" || TokenString(4711) != "<4711>" {
		t.Errorf("unexpected token names")
	}
	if kws := Keywords(); len(kws) != 19 || kws[0] != "cluster" {
		t.Errorf("expected 19 keywords, have %v", kws)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		n    Number
		text string
	}{
		{IntNumber(42), "42"},
		{IntNumber(-1), "-1"},
		{RealNumber(3.5), "3.5"},
		{RealNumber(3), "3.0"},
		{RealNumber(1e21), "1e+21"},
	}
	for _, test := range tests {
		if test.n.String() != test.text {
			t.Errorf("expected %s, have %s", test.text, test.n)
		}
	}
	if RealNumber(2.7).Int64() != 2 || IntNumber(2).Float64() != 2.0 || RealNumber(2).IsInt() {
		t.Errorf("unexpected number conversions")
	}
	if IntNumber(2) == RealNumber(2) {
		t.Errorf("expected integral and real numbers to differ")
	}
}
