// Package semantic resolves names and checks types in a parse tree.
//
// The analyzer keeps the classical table layout of Algol-family compilers:
//
//   - tab, a flat symbol table. Entries 1 to 29 are the built-in types,
//     the boolean constants and the standard routines. Entries of one scope
//     are chained most recent first through Link.
//   - btab, one block per scope. Last is the head of the scope's chain.
//     Block 0 is the global scope.
//   - atab, one descriptor per array type.
//   - display, the stack of visible blocks, one per lexical level.
//
// Program declarations live in block 0 at level 0. The main statement
// part and every procedure or function body open a new block one level
// deeper. Lookup walks the display from the innermost level outwards and
// falls back to the built-in entries.
//
// Analysis is a single pass: every identifier must be declared before it
// is used. The first violation aborts the walk with an *Error.
package semantic
