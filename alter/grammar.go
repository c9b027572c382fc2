package alter

import (
	"sync"

	"github.com/npillmayer/alterlang"
	"github.com/npillmayer/alterlang/lr"
	"github.com/npillmayer/alterlang/lr/earley"
)

// --- Grammar ---------------------------------------------------------------

// alter_start   ::=  phrases
// phrases       ::=  phrase  |  phrases ',' phrase
// phrase        ::=  ε
//                 |  ENSURE columns dependency
//                 |  SET columns WITHIN CLUSTER OF VARIABLE column_name
//                 |  SET columns IN SINGLETON CLUSTER
//                 |  SET VARIABLE CLUSTER CONCENTRATION PARAMETER TO concentration
//                 |  SET rows WITHIN CLUSTER OF ROW row_index CONTEXT VARIABLE column_name
//                 |  SET rows IN SINGLETON CLUSTER CONTEXT VARIABLE column_name
//                 |  SET ROW CLUSTER CONCENTRATION PARAMETER FOR VARIABLE column_name TO concentration
// dependency    ::=  INDEPENDENT  |  DEPENDENT
// columns       ::=  column_name  |  '*'  |  '(' column_list ')'  |  column_list ',' column_name
// column_list   ::=  column_name  |  column_list ',' column_name
// rows          ::=  row_index  |  '*'  |  '(' row_list ')'  |  row_list ',' row_index
// row_list      ::=  row_index  |  row_list ',' row_index
// concentration ::=  NUMBER
// column_name   ::=  NAME
// row_index     ::=  NAME  |  NUMBER
//
// Whether a phrase moves variables or rows is known only after the word
// CLUSTER, therefore the grammar is not LR(k) and we use an Earley parser.
//
func makeAlterGrammar() (*lr.LRAnalysis, map[int]reducer, error) {
	initTokens()
	b := lr.NewGrammarBuilder("ALTER")
	acts := make(map[int]reducer)
	on := func(r *lr.Rule, action reducer) {
		acts[r.Serial] = action
	}
	on(b.LHS("alter_start").N("phrases").End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		s.AlterStart(phrasesOf(rhs[0]))
		return nil
	})
	on(b.LHS("phrases").N("phrase").End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.PhrasesOne(statementOf(rhs[0]))
	})
	on(b.LHS("phrases").N("phrases").T(Token(",")).N("phrase").End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.PhrasesMany(phrasesOf(rhs[0]), statementOf(rhs[2]))
	})
	on(b.LHS("phrase").Epsilon(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.PhraseNone()
	})
	on(b.LHS("phrase").T(Token("ENSURE")).N("columns").N("dependency").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.PhraseSetVarDependency(rhs[1].Value.(ColumnSet), rhs[2].Value.(Dependency))
		})
	on(b.LHS("phrase").T(Token("SET")).N("columns").T(Token("WITHIN")).T(Token("CLUSTER")).
		T(Token("OF")).T(Token("VARIABLE")).N("column_name").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.PhraseSetVarCluster(rhs[1].Value.(ColumnSet), rhs[6].Value.(ColumnRef))
		})
	on(b.LHS("phrase").T(Token("SET")).N("columns").T(Token("IN")).T(Token("SINGLETON")).
		T(Token("CLUSTER")).End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.PhraseSetVarClusterSingleton(rhs[1].Value.(ColumnSet))
		})
	on(b.LHS("phrase").T(Token("SET")).T(Token("VARIABLE")).T(Token("CLUSTER")).
		T(Token("CONCENTRATION")).T(Token("PARAMETER")).T(Token("TO")).N("concentration").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.PhraseSetVarClusterConc(rhs[6].Value.(Number))
		})
	on(b.LHS("phrase").T(Token("SET")).N("rows").T(Token("WITHIN")).T(Token("CLUSTER")).
		T(Token("OF")).T(Token("ROW")).N("row_index").T(Token("CONTEXT")).T(Token("VARIABLE")).
		N("column_name").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.PhraseSetRowCluster(rhs[1].Value.(RowSet), rhs[6].Value.(RowRef), rhs[9].Value.(ColumnRef))
		})
	on(b.LHS("phrase").T(Token("SET")).N("rows").T(Token("IN")).T(Token("SINGLETON")).
		T(Token("CLUSTER")).T(Token("CONTEXT")).T(Token("VARIABLE")).N("column_name").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.PhraseSetRowClusterSingleton(rhs[1].Value.(RowSet), rhs[7].Value.(ColumnRef))
		})
	on(b.LHS("phrase").T(Token("SET")).T(Token("ROW")).T(Token("CLUSTER")).
		T(Token("CONCENTRATION")).T(Token("PARAMETER")).T(Token("FOR")).T(Token("VARIABLE")).
		N("column_name").T(Token("TO")).N("concentration").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.PhraseSetRowClusterConc(rhs[7].Value.(ColumnRef), rhs[9].Value.(Number))
		})
	on(b.LHS("dependency").T(Token("INDEPENDENT")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.DependencyIndependent()
	})
	on(b.LHS("dependency").T(Token("DEPENDENT")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.DependencyDependent()
	})
	// columns
	on(b.LHS("columns").N("column_name").End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.ColumnsOne(rhs[0].Value.(ColumnRef))
	})
	on(b.LHS("columns").T(Token("*")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.ColumnsAll()
	})
	on(b.LHS("columns").T(Token("(")).N("column_list").T(Token(")")).End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.ColumnsMany(rhs[1].Value.([]ColumnRef))
		})
	on(b.LHS("columns").N("column_list").T(Token(",")).N("column_name").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.ColumnsBare(rhs[0].Value.([]ColumnRef), rhs[2].Value.(ColumnRef))
		})
	on(b.LHS("column_list").N("column_name").End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.ColumnListOne(rhs[0].Value.(ColumnRef))
	})
	on(b.LHS("column_list").N("column_list").T(Token(",")).N("column_name").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.ColumnListMany(rhs[0].Value.([]ColumnRef), rhs[2].Value.(ColumnRef))
		})
	// rows
	on(b.LHS("rows").N("row_index").End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.RowsOne(rhs[0].Value.(RowRef))
	})
	on(b.LHS("rows").T(Token("*")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.RowsAll()
	})
	on(b.LHS("rows").T(Token("(")).N("row_list").T(Token(")")).End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.RowsMany(rhs[1].Value.([]RowRef))
		})
	on(b.LHS("rows").N("row_list").T(Token(",")).N("row_index").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.RowsBare(rhs[0].Value.([]RowRef), rhs[2].Value.(RowRef))
		})
	on(b.LHS("row_list").N("row_index").End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.RowListOne(rhs[0].Value.(RowRef))
	})
	on(b.LHS("row_list").N("row_list").T(Token(",")).N("row_index").End(),
		func(s *Session, rhs []*earley.RuleNode) interface{} {
			return s.RowListMany(rhs[0].Value.([]RowRef), rhs[2].Value.(RowRef))
		})
	// leafs
	on(b.LHS("concentration").T(Token("NUMBER")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.Concentration(tokenOf(rhs[0]))
	})
	on(b.LHS("column_name").T(Token("NAME")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.ColumnName(tokenOf(rhs[0]))
	})
	on(b.LHS("row_index").T(Token("NAME")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.RowIndex(tokenOf(rhs[0]))
	})
	on(b.LHS("row_index").T(Token("NUMBER")).End(), func(s *Session, rhs []*earley.RuleNode) interface{} {
		return s.RowIndex(tokenOf(rhs[0]))
	})
	g, err := b.Grammar()
	if err != nil {
		return nil, nil, err
	}
	return lr.Analysis(g), acts, nil
}

// reducer is the semantic action for a grammar rule.
type reducer func(s *Session, rhs []*earley.RuleNode) interface{}

var grammar *lr.LRAnalysis
var actions map[int]reducer // semantic actions by rule serial

var startOnce sync.Once // monitors one-time creation of grammar and actions

// Grammar returns the analysed ALTER grammar.
func Grammar() *lr.LRAnalysis {
	startOnce.Do(func() {
		var err error
		tracer().Infof("Creating grammar")
		if grammar, actions, err = makeAlterGrammar(); err != nil {
			panic("Cannot create ALTER grammar: " + err.Error())
		}
	})
	return grammar
}

func createParser(s *Session) *earley.Parser {
	return earley.NewParser(Grammar(), earley.WithListener(s), earley.WithController(s))
}

func tokenOf(node *earley.RuleNode) alterlang.Token {
	return node.Value.(alterlang.Token)
}

func statementOf(node *earley.RuleNode) Statement {
	st, _ := node.Value.(Statement)
	return st
}

func phrasesOf(node *earley.RuleNode) []Statement {
	ps, _ := node.Value.([]Statement)
	return ps
}
