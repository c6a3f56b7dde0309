// Package parser builds a parse tree from a token sequence.
//
// Parsing is recursive descent with one function per production of the
// grammar in grammar.ebnf. The parser looks one token ahead, plus a second
// token to tell an assignment from a call and to spot a call or array index
// after an identifier inside a factor. It never backtracks and stops at the
// first mismatch with an *Error naming the expected and the found token.
//
// # Tree shape
//
// Interior nodes are tagged with a production symbol such as "<program>"
// and hold their children in source order. Leaves wrap tokens; punctuation
// and keywords are kept so that the tree reflects the full token sequence,
// except for the program's final '.', which is consumed without a leaf, and
// comments, which are dropped before parsing.
//
//	<program>
//	  <program_header>
//	    KEYWORD(program)
//	    IDENTIFIER(Tes)
//	    SEMICOLON(;)
//	  <declaration_part>
//	  <compound_statement>
//	    KEYWORD(mulai)
//	    <statement_list>
//	    KEYWORD(selesai)
package parser
