package alter

import (
	"errors"
	"strings"

	"github.com/npillmayer/alterlang/alter/split"
)

// ErrParseFailed is reported if the parser could not recover from a syntax
// error, without a syntax error having been recorded.
var ErrParseFailed = errors.New("parse failed mysteriously")

// ParseError is returned for inputs which are not valid ALTER statements.
// Messages holds all syntax errors found in the input, in order of occurence.
type ParseError struct {
	Messages []string
	err      error
}

func (e *ParseError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Unwrap returns ErrParseFailed for parses which failed without syntax errors.
func (e *ParseError) Unwrap() error {
	return e.err
}

// Parse parses lexical groups as produced by an upstream splitter and returns
// the statements found.
//
// Atoms which are neither strings nor numbers stop parsing immediately with
// an *InvalidTokenError. Syntax errors are collected until the end of input
// and returned as a *ParseError.
func Parse(groups []interface{}) ([]Statement, error) {
	return ParseTokens(NewTokenizer(groups), NewSession())
}

// ParseTokens drives a parse for a tokenizer and a fresh session. Every token
// is handed to the session before the parser sees it.
func ParseTokens(tokenizer *Tokenizer, session *Session) ([]Statement, error) {
	parser := createParser(session)
	for !parser.Done() {
		token := tokenizer.NextToken()
		if err := tokenizer.Err(); err != nil {
			return nil, err
		}
		session.Consume(token)
		parser.Feed(token)
	}
	return session.Result()
}

// ParseString splits an ALTER statement string into lexical groups and
// parses them.
func ParseString(input string) ([]Statement, error) {
	groups, err := split.Split(input)
	if err != nil {
		return nil, err
	}
	return Parse(groups)
}
