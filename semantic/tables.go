package semantic

import (
	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/lexer"
)

// Kind classifies a symbol table entry.
type Kind int

const (
	KindProgram Kind = iota
	KindConstant
	KindType
	KindVariable
	KindProcedure
	KindFunction
)

var kindNames = [...]string{
	KindProgram:   "program",
	KindConstant:  "constant",
	KindType:      "type",
	KindVariable:  "variable",
	KindProcedure: "procedure",
	KindFunction:  "function",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Entry is a row of the symbol table.
//
// Ref is the array table index for arrays and the block table index for
// procedures and functions. Adr holds a constant's value (or its index in
// the real or string table), a variable's offset within its block, or 0.
// Link is the index of the previous entry of the same scope, 0 ending the
// chain.
type Entry struct {
	ID    string
	Kind  Kind
	Type  ast.TypeCode
	Ref   int
	Level int
	Adr   int
	Link  int
	Pos   lexer.Position
}

// BlockEntry is a row of the block table, one per scope.
type BlockEntry struct {
	Last       int
	ParamCount int
	VarCount   int
}

// ArrayEntry describes one array type. ElementRef is the array table
// index of the element type when the elements are arrays themselves.
type ArrayEntry struct {
	IndexType   ast.TypeCode
	ElementType ast.TypeCode
	ElementRef  int
	Low         int
	High        int
	ElemSize    int
	Size        int
}

// Tables are the symbol, block and array tables built by one analysis,
// plus the constant pools referenced by real and string constants.
type Tables struct {
	Tab     []Entry
	Btab    []BlockEntry
	Atab    []ArrayEntry
	Reals   []float64
	Strings []string
}

// FirstUserIndex is the index of the first entry after the reserved ones.
const FirstUserIndex = 30

type builtin struct {
	id   string
	kind Kind
	typ  ast.TypeCode
	adr  int
}

// builtins occupy Tab[1:FirstUserIndex]. Functions typed TypeNone take
// the type of their argument.
var builtins = [FirstUserIndex - 1]builtin{
	{"integer", KindType, ast.TypeInteger, 0},
	{"boolean", KindType, ast.TypeBoolean, 0},
	{"char", KindType, ast.TypeChar, 0},
	{"real", KindType, ast.TypeReal, 0},
	{"string", KindType, ast.TypeString, 0},
	{"array", KindType, ast.TypeArray, 0},
	{"false", KindConstant, ast.TypeBoolean, 0},
	{"true", KindConstant, ast.TypeBoolean, 1},
	{"abs", KindFunction, ast.TypeNone, 0},
	{"sqr", KindFunction, ast.TypeNone, 0},
	{"odd", KindFunction, ast.TypeBoolean, 0},
	{"chr", KindFunction, ast.TypeChar, 0},
	{"ord", KindFunction, ast.TypeInteger, 0},
	{"succ", KindFunction, ast.TypeNone, 0},
	{"pred", KindFunction, ast.TypeNone, 0},
	{"round", KindFunction, ast.TypeInteger, 0},
	{"trunc", KindFunction, ast.TypeInteger, 0},
	{"sin", KindFunction, ast.TypeReal, 0},
	{"cos", KindFunction, ast.TypeReal, 0},
	{"exp", KindFunction, ast.TypeReal, 0},
	{"ln", KindFunction, ast.TypeReal, 0},
	{"sqrt", KindFunction, ast.TypeReal, 0},
	{"arctan", KindFunction, ast.TypeReal, 0},
	{"eof", KindFunction, ast.TypeBoolean, 0},
	{"eoln", KindFunction, ast.TypeBoolean, 0},
	{"write", KindProcedure, ast.TypeNone, 0},
	{"writeln", KindProcedure, ast.TypeNone, 0},
	{"read", KindProcedure, ast.TypeNone, 0},
	{"readln", KindProcedure, ast.TypeNone, 0},
}

func newTables() *Tables {
	t := &Tables{
		Tab:  make([]Entry, FirstUserIndex, 64),
		Btab: []BlockEntry{{}},
	}
	for i, b := range builtins {
		t.Tab[i+1] = Entry{ID: b.id, Kind: b.kind, Type: b.typ, Adr: b.adr}
	}
	return t
}

// IsReserved reports whether index is one of the built-in entries.
func IsReserved(index int) bool {
	return index > 0 && index < FirstUserIndex
}

// Reserved looks id up among the built-in entries.
func (t *Tables) Reserved(id string) (int, bool) {
	for i := 1; i < FirstUserIndex; i++ {
		if t.Tab[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// Chain returns the entries of block b, most recent first.
func (t *Tables) Chain(b int) []int {
	var out []int
	for i := t.Btab[b].Last; i != 0; i = t.Tab[i].Link {
		out = append(out, i)
	}
	return out
}

// Params returns the parameter entries of the procedure or function at
// index, in declaration order. Parameters are entered right after the
// routine itself.
func (t *Tables) Params(index int) []int {
	e := t.Tab[index]
	if IsReserved(index) || (e.Kind != KindProcedure && e.Kind != KindFunction) {
		return nil
	}
	n := t.Btab[e.Ref].ParamCount
	out := make([]int, 0, n)
	for i := index + 1; i <= index+n; i++ {
		out = append(out, i)
	}
	return out
}

// UserEntries returns the entries declared by the program.
func (t *Tables) UserEntries() []Entry {
	return t.Tab[FirstUserIndex:]
}

// Lookup finds the first user entry named id, in declaration order.
func (t *Tables) Lookup(id string) (int, bool) {
	for i := FirstUserIndex; i < len(t.Tab); i++ {
		if t.Tab[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
