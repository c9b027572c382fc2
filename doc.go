/*
Package alterlang is the front end of the ALTER statement language for
mixture-model populations.

ALTER statements re-arrange the clustering structure of a model: they group
variables and rows into clusters, set concentration parameters and declare
variables dependent or independent:

    ENSURE (a, b) INDEPENDENT,
    SET (x, y) IN SINGLETON CLUSTER,
    SET ROW CLUSTER CONCENTRATION PARAMETER FOR VARIABLE x TO 1.5

Package structure is as follows:

■ alter: Package alter implements the tokenizer, the semantic actions and the
statement data model (AST) of the ALTER language.

■ lr: Package lr implements grammars and grammar analysis, together with an
Earley parser (lr/earley) and scanner interfaces (lr/scanner).

■ cmd/arepl: An interactive command line tool for ALTER statements.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package alterlang
