/*
Command arepl provides an interactive command line tool (A.REPL) for
statements of the ALTER language. A.REPL parses every line entered and
prints the statements found as a tree, or the syntax errors of the line.

    arepl -trace Debug -init setup.alter

Lines starting with a colon are commands:

    :keywords   list the reserved words
    :grammar    list the grammar rules
    :last       print the statements of the last successful parse again
    :quit       leave A.REPL

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alterlang.alter'
func tracer() tracing.Trace {
	return tracing.Select("alterlang.alter")
}
