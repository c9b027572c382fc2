/*
Package scanner defines an interface for tokenizers to be used with the parsers of package lr.

Token types of the Go std lib 'text/scanner' are replicated here, so that
tokenizers agree on the values for identifiers, numbers and end of input.
Package scanner provides a simple default token type; an adapter for
lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"text/scanner"

	"github.com/npillmayer/alterlang"
)

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. Tokenizers return a token of type EOF
// after the end of input has been reached.
type Tokenizer interface {
	NextToken() alterlang.Token
	SetErrorHandler(func(error))
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// LexMachine scanner and the ALTER tokenizer.
type DefaultToken struct {
	kind   alterlang.TokType
	lexeme string
	Val    interface{}
	span   alterlang.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ alterlang.TokType, lexeme string, span alterlang.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface alterlang.Token.
func (t DefaultToken) TokType() alterlang.TokType {
	return t.kind
}

// Value is part of interface alterlang.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface alterlang.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface alterlang.Token.
func (t DefaultToken) Span() alterlang.Span {
	return t.span
}

// WithValue returns a copy of the token carrying value v.
func (t DefaultToken) WithValue(v interface{}) DefaultToken {
	t.Val = v
	return t
}
