/*
Package split splits ALTER statement strings into lexical groups.

A statement string is divided at its top level commas. Every part becomes a
group of atoms; parenthesized lists become nested groups, keeping their
parentheses and inner commas:

    ENSURE (a, b) INDEPENDENT, SET * IN SINGLETON CLUSTER

is split into

    [ [ENSURE [( a , b )] INDEPENDENT]  [SET * IN SINGLETON CLUSTER] ]

Atoms are strings, int64 or float64 values. Names may be quoted with double
quotes, and the quotes are removed. No keywords are recognized here; this is
left to the tokenizer of package alter.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package split

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/npillmayer/alterlang/lr/scanner"
	"github.com/npillmayer/alterlang/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'alterlang.alter'.
func tracer() tracing.Trace {
	return tracing.Select("alterlang.alter")
}

// The tokens representing literal one-char lexemes
var literals = []string{"(", ")", ",", "*"}

var tokenIds = map[string]int{
	"NAME":   scanner.Ident,
	"INT":    scanner.Int,
	"REAL":   scanner.Float,
	"STRING": scanner.String,
	"(":      '(',
	")":      ')',
	",":      ',',
	"*":      '*',
}

var lexer *lexmach.LMAdapter
var lexerErr error

var initOnce sync.Once // monitors one-time creation of the lexer
func createLexer() (*lexmach.LMAdapter, error) {
	initOnce.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`\"[^"]*\"`), lexmach.MakeToken("STRING", tokenIds["STRING"]))
			lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken("NAME", tokenIds["NAME"]))
			lexer.Add([]byte(`\-?[0-9]+`), lexmach.MakeToken("INT", tokenIds["INT"]))
			lexer.Add([]byte(`\-?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+(\.[0-9]*)?[eE][\+\-]?[0-9]+)`),
				lexmach.MakeToken("REAL", tokenIds["REAL"]))
			lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		}
		tracer().Infof("Creating splitter lexer")
		lexer, lexerErr = lexmach.NewLMAdapter(init, literals, nil, tokenIds)
	})
	return lexer, lexerErr
}

// Split splits a statement string into groups of atoms.
// The empty string results in no groups at all.
func Split(input string) ([]interface{}, error) {
	lm, err := createLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	var scanErr error
	sc.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	var groups []interface{}
	group := []interface{}{}
	var stack [][]interface{} // open parenthesized groups
	sawAny := false
	for {
		token := sc.NextToken()
		if scanErr != nil {
			return nil, fmt.Errorf("cannot split %q: %w", input, scanErr)
		}
		if token.TokType() == scanner.EOF {
			break
		}
		sawAny = true
		var atom interface{}
		switch token.TokType() {
		case scanner.Int:
			n, err := strconv.ParseInt(token.Lexeme(), 10, 64)
			if err != nil {
				return nil, err
			}
			atom = n
		case scanner.Float:
			f, err := strconv.ParseFloat(token.Lexeme(), 64)
			if err != nil {
				return nil, err
			}
			atom = f
		case scanner.String:
			lx := token.Lexeme()
			atom = lx[1 : len(lx)-1]
		case '(':
			stack = append(stack, group)
			group = []interface{}{"("}
			continue
		case ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced ')' at position %d", token.Span().From())
			}
			group = append(group, ")")
			outer := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group = append(outer, group)
			continue
		case ',':
			if len(stack) == 0 {
				groups = append(groups, group)
				group = []interface{}{}
				continue
			}
			atom = ","
		default:
			atom = token.Lexeme()
		}
		group = append(group, atom)
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unbalanced '(' in %q", input)
	}
	if !sawAny {
		return nil, nil
	}
	groups = append(groups, group)
	tracer().Debugf("split %q into %d groups", input, len(groups))
	return groups, nil
}
