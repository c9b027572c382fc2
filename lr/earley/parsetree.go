package earley

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/alterlang"
	"github.com/npillmayer/alterlang/lr"
	"github.com/npillmayer/schuko/gconf"
)

// TokenAt returns the input token at position pos.
func (p *Parser) TokenAt(pos uint64) alterlang.Token {
	if pos+1 < uint64(len(p.tokens)) {
		return p.tokens[pos+1] // tokens start at index 1
	}
	return nil
}

// --- Derivation listener ---------------------------------------------------

// Listener is a type for walking a derivation. Reduce is called for every
// non-terminal reduction, Terminal for every input token. Calls occur
// bottom-up and left to right, i.e. in the order an LR-parser would reduce.
type Listener interface {
	Reduce(lhs *lr.Symbol, rule int, rhs []*RuleNode, span alterlang.Span, level int) interface{}
	Terminal(token alterlang.Token, level int) interface{}
}

// RuleNode represents a node occuring during a derivation walk.
type RuleNode struct {
	sym    *lr.Symbol
	Extent alterlang.Span // span of input symbols this rule reduced
	Value  interface{}    // user defined value
}

// Symbol returns the grammar symbol a RuleNode refers to.
// It is either a terminal or the LHS of a reduced rule.
func (rnode *RuleNode) Symbol() *lr.Symbol {
	return rnode.sym
}

// --- Tree Walker -----------------------------------------------------------

// dnode is a node of a derivation tree. Terminal nodes have no rule.
type dnode struct {
	sym      *lr.Symbol
	rule     *lr.Rule
	token    alterlang.Token
	extent   alterlang.Span
	children []*dnode
}

// WalkDerivation walks the derivation of an accepted input.
// It uses a listener, which gets called for every terminal and for every
// non-terminal reduction. WalkDerivation returns the node for the start rule
// S', or nil if the input has not been accepted.
func (p *Parser) WalkDerivation(listener Listener) *RuleNode {
	tracer().Debugf("=== Walk ===============================")
	item, ok := p.acceptingItem()
	if !ok {
		tracer().Errorf("cannot walk derivation: input not accepted")
		return nil
	}
	root := p.derive(item, p.sc, itemset{})
	if root == nil {
		stuck(fmt.Sprintf("no derivation found for accepting item %v", item))
		return nil
	}
	tracer().Debugf("TOKENS: %d", len(p.tokens)-1)
	return p.emit(root, listener, 0)
}

/*
Walk backwards over the items of Earley states.

A good overview of how to construct a parse forest from Earley-items may be found in
"Parsing Techniques" by  Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/), Section 7.2.1.2.

Imagine we have a completed item like this ('a', 'b', and 'c' are symbols, and 'i' is an integer),
sitting in state j:

    Foo -> a b c •  (i)

The fact that this item even exist means the following items also exist somewhere:

    Foo ->   a   b • c  (i)      in some state k, with c spanning k…j
    Foo ->   a • b   c  (i)
    Foo -> • a   b   c  (i)      in state i

For every symbol of the RHS, from right to left, we search for the split
position k. For a terminal, k = j-1. For a non-terminal c, we look for
completed items [c ➞ … •, k] in state j, for which the shorter item is present
in state k. If more than one candidate exists, the grammar is ambiguous and we
select the longest one first, then the one with the lower rule number.
*/
func (p *Parser) derive(item lr.Item, end uint64, visiting itemset) *dnode {
	key := itemKey{item, end}
	if node, ok := p.memo[key]; ok {
		return node
	}
	rule := item.Rule()
	children := make([]*dnode, len(rule.RHS()))
	visiting = visiting.add(item, end)
	defer visiting.delete(item, end)
	if !p.matchBackwards(item, end, children, visiting) {
		return nil
	}
	node := &dnode{
		sym:      rule.LHS,
		rule:     rule,
		extent:   alterlang.Span{item.Origin, end},
		children: children,
	}
	p.memo[key] = node
	return node
}

// matchBackwards finds children for the RHS symbols in front of the dot of
// item, with the last of them ending at pos.
func (p *Parser) matchBackwards(item lr.Item, pos uint64, children []*dnode, visiting itemset) bool {
	if item.Dot() == 0 {
		return pos == item.Origin
	}
	pre := item.Retreat()
	B := item.Rule().RHS()[pre.Dot()]
	if B.IsTerminal() {
		if pos == 0 || pos <= item.Origin || p.tokens[pos].TokType() != B.TokenType() {
			return false
		}
		if !p.states[pos-1].Contains(pre) {
			return false
		}
		if !p.matchBackwards(pre, pos-1, children, visiting) {
			return false
		}
		children[pre.Dot()] = &dnode{
			sym:    B,
			token:  p.tokens[pos],
			extent: alterlang.Span{pos - 1, pos},
		}
		return true
	}
	for _, c := range completions(p.states[pos], B, item.Origin) {
		if visiting.contains(c, pos) || !p.states[c.Origin].Contains(pre) {
			continue
		}
		child := p.derive(c, pos, visiting)
		if child == nil {
			continue
		}
		if p.matchBackwards(pre, c.Origin, children, visiting) {
			children[pre.Dot()] = child
			return true
		}
	}
	return false
}

// completions returns all completed items [B ➞ … •, k] of state S with k ≥ origin,
// longest first, then by rule number.
func completions(S *arraylist.List, B *lr.Symbol, origin uint64) []lr.Item {
	var R []lr.Item
	S.Each(func(_ int, x interface{}) {
		item := x.(lr.Item)
		if item.Completed() && item.Rule().LHS == B && item.Origin >= origin {
			R = append(R, item)
		}
	})
	sort.SliceStable(R, func(i, j int) bool {
		if R[i].Origin != R[j].Origin {
			return R[i].Origin < R[j].Origin
		}
		return R[i].Rule().Serial < R[j].Rule().Serial
	})
	return R
}

// emit calls the listener for a derivation tree, children first.
func (p *Parser) emit(node *dnode, listener Listener, level int) *RuleNode {
	if node.rule == nil {
		tracer().Debugf("Tree node    %d: %s", node.extent.From(), node.sym)
		return &RuleNode{
			sym:    node.sym,
			Extent: node.extent,
			Value:  listener.Terminal(node.token, level),
		}
	}
	rhs := make([]*RuleNode, len(node.children))
	for i, child := range node.children {
		rhs[i] = p.emit(child, listener, level+1)
	}
	tracer().Debugf("Tree node    %d|-----%s-----|%d", node.extent.From(), node.sym.Name, node.extent.To())
	return &RuleNode{
		sym:    node.sym,
		Extent: node.extent,
		Value:  listener.Reduce(node.sym, node.rule.Serial, rhs, node.extent, level),
	}
}

func stuck(msg string) bool {
	tracer().Errorf("%s", msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`Earley-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping 
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return true
}
