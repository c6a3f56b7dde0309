// Package ast defines the typed abstract syntax tree produced by semantic
// analysis.
//
// Every node embeds a Decoration holding its resolved type, the index of
// the symbol it names in the analyzer's symbol table and that symbol's
// lexical level. Nodes own their subtrees; symbol indices refer into
// tables owned by the analyzer that produced the tree.
package ast
