package lr

import (
	"bytes"
	"fmt"
)

// Item is an Earley item, i.e. a rule with a dot marking the recognized
// prefix of its right hand side, together with the input position where
// recognition of the rule started.
//
//     Sum ➞ Sum • + Product  (0)
//
// Items are values and may be compared with ==.
type Item struct {
	rule   *Rule
	dot    int
	Origin uint64 // input position where this item started
}

// StartItem returns an Earley item for a rule with the dot in front of the
// right hand side, together with the symbol after the dot.
func StartItem(r *Rule) (Item, *Symbol) {
	if r == nil {
		return Item{}, nil
	}
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the grammar rule of this item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot within the right hand side.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, if any.
func (i Item) PeekSymbol() *Symbol {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance returns a new item with the dot moved one symbol to the right.
// For completed items Advance returns the item unchanged.
func (i Item) Advance() Item {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1, Origin: i.Origin}
}

// Retreat returns a new item with the dot moved one symbol to the left.
// For items with the dot in front of the right hand side Retreat returns the item
// unchanged.
func (i Item) Retreat() Item {
	if i.dot == 0 {
		return i
	}
	return Item{rule: i.rule, dot: i.dot - 1, Origin: i.Origin}
}

// Completed is true if the dot is behind the right hand side.
func (i Item) Completed() bool {
	return i.rule != nil && i.dot >= len(i.rule.rhs)
}

// Prefix returns the symbols of the right hand side in front of the dot.
func (i Item) Prefix() []*Symbol {
	if i.rule == nil {
		return nil
	}
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	if i.rule == nil {
		return "[<none>]"
	}
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("[%s ➞", i.rule.LHS))
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.dot >= len(i.rule.rhs) {
		b.WriteString(" •")
	}
	b.WriteString(fmt.Sprintf("] (%d)", i.Origin))
	return b.String()
}

// WithOrigin returns a copy of the item with a different origin position.
func (i Item) WithOrigin(pos uint64) Item {
	i.Origin = pos
	return i
}
