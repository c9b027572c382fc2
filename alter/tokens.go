package alter

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/alterlang"
	"github.com/npillmayer/alterlang/lr/scanner"
)

// Token categories of the ALTER language. NAME and NUMBER share their values
// with the Go scanner's identifiers and floats, punctuation tokens use their
// character code.
const (
	BadToken alterlang.TokType = 0 // reserved for lexical errors
	EOF      alterlang.TokType = scanner.EOF
	NAME     alterlang.TokType = scanner.Ident
	NUMBER   alterlang.TokType = scanner.Float
	LRound   alterlang.TokType = '('
	RRound   alterlang.TokType = ')'
	Star     alterlang.TokType = '*'
	Comma    alterlang.TokType = ','
)

// Keyword token categories.
const (
	KwCluster alterlang.TokType = 0x100 + iota
	KwContext
	KwConcentration
	KwDependent
	KwEnsure
	KwFor
	KwIn
	KwIndependent
	KwOf
	KwParameter
	KwRow
	KwRows
	KwSet
	KwSingleton
	KwTo
	KwVariable
	KwVariables
	KwView
	KwWithin
)

// keywords maps the casefolded reserved words to their token categories.
// ROWS, VARIABLES and VIEW are reserved for future use.
var keywords = map[string]alterlang.TokType{
	"cluster":       KwCluster,
	"context":       KwContext,
	"concentration": KwConcentration,
	"dependent":     KwDependent,
	"ensure":        KwEnsure,
	"for":           KwFor,
	"in":            KwIn,
	"independent":   KwIndependent,
	"of":            KwOf,
	"parameter":     KwParameter,
	"row":           KwRow,
	"rows":          KwRows,
	"set":           KwSet,
	"singleton":     KwSingleton,
	"to":            KwTo,
	"variable":      KwVariable,
	"variables":     KwVariables,
	"view":          KwView,
	"within":        KwWithin,
}

var punctuation = map[string]alterlang.TokType{
	"(": LRound,
	")": RRound,
	"*": Star,
	",": Comma,
}

var tokenIds map[string]int   // grammar names of terminals ⇒ token values
var tokenNames map[int]string // token values ⇒ grammar names

var initOnce sync.Once // monitors one-time initialization
func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int, len(keywords)+len(punctuation)+2)
		tokenIds["NAME"] = int(NAME)
		tokenIds["NUMBER"] = int(NUMBER)
		for lit, t := range punctuation {
			tokenIds[lit] = int(t)
		}
		for kw, t := range keywords {
			tokenIds[strings.ToUpper(kw)] = int(t)
		}
		tokenNames = make(map[int]string, len(tokenIds)+2)
		for name, id := range tokenIds {
			tokenNames[id] = name
		}
		tokenNames[int(EOF)] = "<EOF>"
		tokenNames[int(BadToken)] = "<bad token>"
	})
}

// Token returns a token name and its value, suitable for adding terminals to
// a grammar. Keywords are given in upper case, i.e. Token("SET").
func Token(t string) (string, int) {
	initTokens()
	id, ok := tokenIds[t]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", t))
	}
	return t, id
}

// TokenString returns the grammar name of a token category. It is an
// alterlang.TokTypeStringer.
func TokenString(t alterlang.TokType) string {
	initTokens()
	if name, ok := tokenNames[int(t)]; ok {
		return name
	}
	return fmt.Sprintf("<%d>", t)
}

var _ alterlang.TokTypeStringer = TokenString

// Keywords returns the reserved words of the ALTER language in lower case,
// sorted alphabetically.
func Keywords() []string {
	kws := make([]string, 0, len(keywords))
	for kw := range keywords {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}
