package earley

import (
	"github.com/npillmayer/alterlang/lr"
)

// itemKey identifies a completed item together with the state it completed in.
type itemKey struct {
	item lr.Item
	end  uint64
}

// itemset holds the items currently under derivation. Cyclic grammars would
// otherwise send the derivation walk into an endless loop.
type itemset map[itemKey]struct{}

var exists = struct{}{}

func (set itemset) add(item lr.Item, end uint64) itemset {
	if set == nil {
		set = itemset{}
	}
	set[itemKey{item, end}] = exists
	return set
}

func (set itemset) contains(item lr.Item, end uint64) bool {
	if set == nil {
		return false
	}
	_, ok := set[itemKey{item, end}]
	return ok
}

func (set itemset) delete(item lr.Item, end uint64) {
	if set != nil {
		delete(set, itemKey{item, end})
	}
}
