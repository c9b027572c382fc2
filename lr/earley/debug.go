package earley

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/alterlang/lr"
	"github.com/npillmayer/schuko/tracing"
)

func dumpState(states []*arraylist.List, stateno uint64) {
	if tracer().GetTraceLevel() < tracing.LevelDebug {
		return
	}
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	states[stateno].Each(func(n int, x interface{}) {
		tracer().Debugf("[%2d] %s", n+1, x.(lr.Item))
	})
}
