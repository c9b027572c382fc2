/*
Package alter implements the front end of the ALTER statement language.

ALTER statements mutate the clustering structure of a probabilistic mixture
model: they group variables and rows into clusters, set concentration
parameters and declare variables dependent or independent of each other.

    ENSURE (age, weight) INDEPENDENT,
    SET (1, 2, 3) IN SINGLETON CLUSTER CONTEXT VARIABLE age,
    SET VARIABLE CLUSTER CONCENTRATION PARAMETER TO 3.5

Input arrives as lexical groups, as produced by an upstream splitter (see
package alter/split): each group is a string, a number or a nested group of
atoms. The Tokenizer flattens the groups, re-inserts the commas between them
and classifies every atom as a keyword, punctuation, NAME or NUMBER.

Tokens are fed to an Earley parser (package lr/earley). A Session receives
the parser's callbacks: it tracks the last tokens consumed for diagnostics,
collects syntax errors and assembles a list of statements from the grammar
reductions. Syntax errors do not stop the parser; all of them are reported
together when the end of input has been reached.

    statements, err := alter.ParseString("SET * IN SINGLETON CLUSTER")

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package alter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alterlang.alter'.
func tracer() tracing.Trace {
	return tracing.Select("alterlang.alter")
}
