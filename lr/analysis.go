package lr

// LRAnalysis is an object for the static analysis of a grammar. The Earley
// parser needs to know which non-terminals are able to derive ε, in order to
// handle epsilon-productions during prediction.
type LRAnalysis struct {
	g          *Grammar
	derivesEps map[*Symbol]bool
}

// Analysis creates an analysis object for a grammar. It computes the set of
// non-terminals which derive ε.
func Analysis(g *Grammar) *LRAnalysis {
	if g == nil {
		return nil
	}
	ga := &LRAnalysis{
		g:          g,
		derivesEps: make(map[*Symbol]bool),
	}
	ga.markEps()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// DerivesEpsilon returns true if A ⇒* ε.
func (ga *LRAnalysis) DerivesEpsilon(A *Symbol) bool {
	return ga.derivesEps[A]
}

// Fixpoint iteration: a rule derives ε if every symbol of its RHS does.
func (ga *LRAnalysis) markEps() {
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			if ga.derivesEps[r.LHS] {
				continue
			}
			eps := true
			for _, A := range r.rhs {
				if A.IsTerminal() || !ga.derivesEps[A] {
					eps = false
					break
				}
			}
			if eps {
				tracer().Debugf("%s derives ε", r.LHS)
				ga.derivesEps[r.LHS] = true
				changed = true
			}
		}
	}
}
