/*
Package lr implements prerequisites for parsing with package earley:
grammars, grammar rules, Earley items and a static grammar analysis.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->

This results in the following trivial grammar:

   g, _ := b.Grammar()
   g.Dump()

   0: S' ➞ S
   1: S ➞ A a
   2: A ➞ B D
   3: B ➞ b
   4: B ➞ ε
   5: D ➞ d
   6: D ➞ ε

End() and Epsilon() return the rule just created. Clients may use the rule's
serial number to attach semantic actions to it.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. The analysis
determines all epsilon-deriving non-terminals, which is what the Earley
parser needs for predicting epsilon-productions correctly.

    ga := lr.Analysis(g)
    ga.DerivesEpsilon(g.NonTerminal("A"))  // true

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alterlang.lr'.
func tracer() tracing.Trace {
	return tracing.Select("alterlang.lr")
}
