package alter

import (
	"fmt"
	"math"

	"github.com/npillmayer/alterlang"
	"github.com/npillmayer/alterlang/lr/scanner"
	"golang.org/x/text/cases"
)

// InvalidTokenError is returned for atoms which are neither text nor numbers.
// It signals a broken contract with the producer of the input groups and is
// not recoverable.
type InvalidTokenError struct {
	Atom interface{}
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %#v", e.Atom)
}

// Tokenizer turns lexical groups into ALTER tokens. It implements
// scanner.Tokenizer.
//
// Each group is either a nested group of atoms, a string or a number. Nested
// groups are of type []interface{} or []string and are flattened depth-first.
// Between two groups a comma token is inserted. After the last atom the
// tokenizer returns EOF tokens.
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	groups []interface{}
	next   int         // index of next group
	stack  []frame     // nested groups under way
	pos    uint64      // atom position, used for spans
	fold   cases.Caser // caser for keyword matching
	err    error       // first error encountered
	done   bool        // no more atoms will be read
	Error  func(error) // error handler
}

type frame struct {
	atoms []interface{}
	inx   int
}

var _ scanner.Tokenizer = (*Tokenizer)(nil)

// NewTokenizer creates a tokenizer for a sequence of lexical groups.
func NewTokenizer(groups []interface{}) *Tokenizer {
	return &Tokenizer{
		groups: groups,
		fold:   cases.Fold(),
		Error:  logError,
	}
}

func logError(e error) {
	tracer().Errorf("tokenizer error: %v", e)
}

// SetErrorHandler sets an error handler for the tokenizer.
func (t *Tokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// Err returns the error which stopped the tokenizer, if any.
func (t *Tokenizer) Err() error {
	return t.err
}

// NextToken is part of the scanner.Tokenizer interface. After an invalid atom
// has been reported to the error handler, NextToken returns EOF only.
func (t *Tokenizer) NextToken() alterlang.Token {
	for !t.done {
		atom, ok := t.nextAtom()
		if !ok {
			t.done = true
			break
		}
		token, err := t.classify(atom)
		if err != nil {
			t.err = err
			t.done = true
			t.Error(err)
			break
		}
		t.pos++
		tracer().Debugf("token %s %q", TokenString(token.TokType()), token.Lexeme())
		return token
	}
	return scanner.MakeDefaultToken(EOF, "", alterlang.Span{t.pos, t.pos})
}

// Tokens collects all tokens, including the final EOF token.
func (t *Tokenizer) Tokens() ([]alterlang.Token, error) {
	var tokens []alterlang.Token
	for {
		token := t.NextToken()
		if t.err != nil {
			return tokens, t.err
		}
		tokens = append(tokens, token)
		if token.TokType() == EOF {
			return tokens, nil
		}
	}
}

// nextAtom returns the next atom in depth-first order, a comma between two
// groups.
func (t *Tokenizer) nextAtom() (interface{}, bool) {
	for {
		if len(t.stack) == 0 {
			if t.next >= len(t.groups) {
				return nil, false
			}
			group := t.groups[t.next]
			t.next++
			atoms, ok := nested(group)
			if !ok {
				atoms = []interface{}{group}
			}
			t.stack = append(t.stack, frame{atoms: atoms})
			if t.next > 1 {
				return ",", true
			}
			continue
		}
		top := len(t.stack) - 1
		if t.stack[top].inx >= len(t.stack[top].atoms) {
			t.stack = t.stack[:top]
			continue
		}
		atom := t.stack[top].atoms[t.stack[top].inx]
		t.stack[top].inx++
		if atoms, ok := nested(atom); ok {
			t.stack = append(t.stack, frame{atoms: atoms})
			continue
		}
		return atom, true
	}
}

func nested(atom interface{}) ([]interface{}, bool) {
	switch g := atom.(type) {
	case []interface{}:
		return g, true
	case []string:
		atoms := make([]interface{}, len(g))
		for i, s := range g {
			atoms[i] = s
		}
		return atoms, true
	}
	return nil, false
}

func (t *Tokenizer) classify(atom interface{}) (scanner.DefaultToken, error) {
	span := alterlang.Span{t.pos, t.pos + 1}
	var n Number
	switch a := atom.(type) {
	case string:
		if kw, ok := keywords[t.fold.String(a)]; ok {
			return scanner.MakeDefaultToken(kw, a, span), nil
		}
		if p, ok := punctuation[a]; ok {
			return scanner.MakeDefaultToken(p, a, span), nil
		}
		return scanner.MakeDefaultToken(NAME, a, span), nil
	case int:
		n = IntNumber(int64(a))
	case int8:
		n = IntNumber(int64(a))
	case int16:
		n = IntNumber(int64(a))
	case int32:
		n = IntNumber(int64(a))
	case int64:
		n = IntNumber(a)
	case uint:
		n = uintNumber(uint64(a))
	case uint8:
		n = IntNumber(int64(a))
	case uint16:
		n = IntNumber(int64(a))
	case uint32:
		n = IntNumber(int64(a))
	case uint64:
		n = uintNumber(a)
	case float32:
		n = RealNumber(float64(a))
	case float64:
		n = RealNumber(a)
	case Number:
		n = a
	default:
		return scanner.DefaultToken{}, &InvalidTokenError{Atom: atom}
	}
	return scanner.MakeDefaultToken(NUMBER, n.String(), span).WithValue(n), nil
}

func uintNumber(u uint64) Number {
	if u > math.MaxInt64 {
		return RealNumber(float64(u))
	}
	return IntNumber(int64(u))
}
