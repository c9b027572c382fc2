/*
Package earley provides an Earley-Parser.

Earley's algorithm for parsing ambiguous grammars has been known since 1968.
Despite its benefits, until recently it has lead a reclusive life outside
the mainstream discussion about parsers. Many textbooks on parsing do not even
discuss it (the "Dragon book" only mentions it in the appendix).

A very accessible and practical discussion has been done by Loup Vaillant
in a superb blog series (http://loup-vaillant.fr/tutorials/earley-parsing/),
and it even boasts an implementation in Lua/OCaml.

Earley parsers do not need any lookahead to decide between rules, which makes
them a good fit for languages where the role of a token is determined only
far to the right of it. The ALTER language is such a case: whether

    SET (a, b, c) IN SINGLETON CLUSTER …

moves variables or rows is decided by what follows the word CLUSTER.

Input is pushed into the parser token by token with Feed. Clients who prefer
pulling tokens from a scanner may use Parse instead. A Controller receives the
outcome of a parse run, a Listener receives the reductions of the derivation.

Error Recovery

Input tokens which cannot be shifted are reported to the Controller and discarded,
then parsing continues with the next token. To avoid cascades of reports, further
syntax errors are reported only after three tokens have been shifted successfully.
If the end of input cannot be accepted, the parse has failed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/alterlang"
	"github.com/npillmayer/alterlang/lr"
	"github.com/npillmayer/alterlang/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alterlang.lr'.
func tracer() tracing.Trace {
	return tracing.Select("alterlang.lr")
}

// errorSuppression is the number of tokens which have to be shifted after a
// syntax error before the next syntax error is reported.
const errorSuppression = 3

// Controller is notified about the outcome of a parse run.
type Controller interface {
	Accept()                           // input accepted, derivation has been walked
	ParseFailed()                      // parser could not recover
	SyntaxError(token alterlang.Token) // token has been rejected and discarded
}

// Parser is an Earley-parser type. Create and initialize one with earley.NewParser(...)
type Parser struct {
	ga       *lr.LRAnalysis
	states   []*arraylist.List // Earley states S0…Sn, each holding lr.Items
	tokens   []alterlang.Token // tokens[i] leads from state i-1 to state i
	sc       uint64            // state counter
	listener Listener          // receives reductions after acceptance
	control  Controller        // receives control events
	errcnt   int               // shifts left until syntax errors are reported again
	done     bool              // end of input has been fed
	accepted bool              // input has been accepted
	memo     map[itemKey]*dnode
}

// Option configures a parser.
type Option func(p *Parser)

// WithListener sets a listener which will be called for the derivation of an
// accepted input.
func WithListener(l Listener) Option {
	return func(p *Parser) {
		p.listener = l
	}
}

// WithController sets a controller which will be notified of syntax errors,
// acceptance and failure.
func WithController(c Controller) Option {
	return func(p *Parser) {
		p.control = c
	}
}

// NewParser creates and initializes an Earley parser.
func NewParser(ga *lr.LRAnalysis, opts ...Option) *Parser {
	p := &Parser{ga: ga}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset()
	return p
}

// Reset prepares the parser for a new input, keeping grammar, listener and
// controller.
func (p *Parser) Reset() {
	p.states = []*arraylist.List{arraylist.New()}
	p.tokens = []alterlang.Token{nil}
	p.sc = 0
	p.errcnt = 0
	p.done, p.accepted = false, false
	p.memo = make(map[itemKey]*dnode)
	if p.ga == nil {
		return
	}
	start, _ := lr.StartItem(p.ga.Grammar().Rule(0))
	p.states[0].Add(start)
	p.closure(0)
}

// Parse starts a new parse, given a scanner tokenizing the input.
// Parse reads tokens until the scanner returns EOF.
// If listener is non-nil, it replaces the parser's listener.
//
// The parser returns true if the input string has been accepted. Syntax errors
// do not produce an error return value; they are reported to the controller.
func (p *Parser) Parse(scan scanner.Tokenizer, listener Listener) (bool, error) {
	if p.ga == nil {
		tracer().Errorf("Earley-parser not initialized")
		return false, fmt.Errorf("Earley-parser not initialized")
	}
	if listener != nil {
		p.listener = listener
	}
	p.Reset()
	for !p.done {
		p.Feed(scan.NextToken())
	}
	return p.accepted, nil
}

// Feed pushes the next input token into the parser. The end of input is
// signalled by a token of type scanner.EOF.
func (p *Parser) Feed(token alterlang.Token) {
	if p.done {
		tracer().Errorf("parser has already seen end of input, token %q ignored", token.Lexeme())
		return
	}
	tracer().Debugf("got token %q/%d", token.Lexeme(), token.TokType())
	if token.TokType() == scanner.EOF {
		p.finish(token)
		return
	}
	S := p.scan(token)
	if S.Empty() {
		p.reject(token)
		return
	}
	p.states = append(p.states, S)
	p.tokens = append(p.tokens, token)
	p.sc++
	p.closure(p.sc)
	if p.errcnt > 0 {
		p.errcnt--
	}
}

// Done is true after the end of input has been fed.
func (p *Parser) Done() bool {
	return p.done
}

// Accepted is true after the input has been accepted.
func (p *Parser) Accepted() bool {
	return p.accepted
}

// Expected returns the token values which would be accepted as the next input
// token, in increasing order. If the input seen so far is a complete sentence,
// scanner.EOF is among them.
func (p *Parser) Expected() []int {
	set := treeset.NewWith(utils.IntComparator)
	p.states[p.sc].Each(func(_ int, x interface{}) {
		if A := x.(lr.Item).PeekSymbol(); A != nil && A.IsTerminal() {
			set.Add(A.Value)
		}
	})
	if p.sentence() {
		set.Add(scanner.EOF)
	}
	values := set.Values()
	expected := make([]int, len(values))
	for i, v := range values {
		expected[i] = v.(int)
	}
	return expected
}

// --- Earley operations -----------------------------------------------------

// scan creates the successor state for token, consisting of all items of the
// current state which expect token after the dot, with the dot advanced.
func (p *Parser) scan(token alterlang.Token) *arraylist.List {
	S := arraylist.New()
	p.states[p.sc].Each(func(_ int, x interface{}) {
		item := x.(lr.Item)
		if A := item.PeekSymbol(); A != nil && A.IsTerminal() && A.TokenType() == token.TokType() {
			addItem(S, item.Advance())
		}
	})
	tracer().Debugf("scanned %q: %d items", token.Lexeme(), S.Size())
	return S
}

// closure completes and predicts items of state k until no more items are
// added. S grows while we iterate over it.
func (p *Parser) closure(k uint64) {
	S := p.states[k]
	for i := 0; i < S.Size(); i++ {
		x, _ := S.Get(i)
		item := x.(lr.Item)
		B := item.PeekSymbol()
		if B == nil {
			p.complete(item, k)
		} else if !B.IsTerminal() {
			p.predict(item, B, k)
		}
	}
	dumpState(p.states, k)
}

// complete advances all items of the origin state of a completed item which
// have been waiting for its LHS.
func (p *Parser) complete(item lr.Item, k uint64) {
	S := p.states[k]
	O := p.states[item.Origin]
	A := item.Rule().LHS
	for j := 0; j < O.Size(); j++ {
		x, _ := O.Get(j)
		jtem := x.(lr.Item)
		if jtem.PeekSymbol() == A {
			addItem(S, jtem.Advance())
		}
	}
}

// predict adds start items for all rules of B. If B derives ε, item is advanced
// over B immediately (Aycock & Horspool, "Practical Earley Parsing", 2002).
func (p *Parser) predict(item lr.Item, B *lr.Symbol, k uint64) {
	S := p.states[k]
	for _, r := range p.ga.Grammar().FindNonTermRules(B) {
		start, _ := lr.StartItem(r)
		addItem(S, start.WithOrigin(k))
	}
	if p.ga.DerivesEpsilon(B) {
		addItem(S, item.Advance())
	}
}

func (p *Parser) reject(token alterlang.Token) {
	tracer().Infof("syntax error at %q, expected one of %v", token.Lexeme(), p.Expected())
	if p.errcnt <= 0 && p.control != nil {
		p.control.SyntaxError(token)
	}
	p.errcnt = errorSuppression
}

func (p *Parser) finish(eof alterlang.Token) {
	p.done = true
	if p.sentence() {
		tracer().Infof("input accepted")
		p.accepted = true
		if p.listener != nil {
			p.WalkDerivation(p.listener)
		}
		if p.control != nil {
			p.control.Accept()
		}
		return
	}
	p.reject(eof)
	if p.control != nil {
		p.control.ParseFailed()
	}
}

// sentence is true if the input seen so far derives the start symbol.
func (p *Parser) sentence() bool {
	_, ok := p.acceptingItem()
	return ok
}

func (p *Parser) acceptingItem() (lr.Item, bool) {
	start := p.ga.Grammar().Rule(0)
	var found lr.Item
	ok := false
	p.states[p.sc].Each(func(_ int, x interface{}) {
		item := x.(lr.Item)
		if !ok && item.Rule() == start && item.Completed() && item.Origin == 0 {
			found, ok = item, true
		}
	})
	return found, ok
}

// addItem adds an item to an Earley state, if not already present.
func addItem(S *arraylist.List, item lr.Item) {
	if !S.Contains(item) {
		S.Add(item)
	}
}
