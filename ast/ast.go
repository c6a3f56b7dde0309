package ast

import "github.com/dhamidi/paskal/lexer"

// Decoration is the semantic information attached to every node.
type Decoration struct {
	Type TypeCode
	// Symbol is an index into the symbol table, 0 when the node names no
	// symbol.
	Symbol int
	// Level is the lexical level of the symbol, -1 when there is none.
	Level int
	Pos   lexer.Position
}

// Decorate returns a decoration with no symbol.
func Decorate(t TypeCode, pos lexer.Position) Decoration {
	return Decoration{Type: t, Level: -1, Pos: pos}
}

func (d *Decoration) Info() *Decoration { return d }

// Node is implemented by every AST node type in this package.
type Node interface {
	Info() *Decoration
	node()
}

type (
	Program struct {
		Decoration
		Name  string
		Block *Block
	}

	// Block is a scope body, or a compound statement when Declarations
	// is empty and it opens no scope.
	Block struct {
		Decoration
		Declarations []Node
		Body         []Node
	}

	VarDecl struct {
		Decoration
		Name string
	}

	ConstDecl struct {
		Decoration
		Name  string
		Value Node
	}

	TypeDecl struct {
		Decoration
		Name string
	}

	ProcedureDecl struct {
		Decoration
		Name   string
		Params []*VarDecl
		Block  *Block
	}

	// FunctionDecl carries the result type in its decoration.
	FunctionDecl struct {
		Decoration
		Name   string
		Params []*VarDecl
		Block  *Block
	}

	// Assign stores Value into Target, a *Var or an *ArrayAccess.
	Assign struct {
		Decoration
		Target Node
		Value  Node
	}

	BinOp struct {
		Decoration
		Op    string
		Left  Node
		Right Node
	}

	UnaryOp struct {
		Decoration
		Op      string
		Operand Node
	}

	Var struct {
		Decoration
		Name string
	}

	Number struct {
		Decoration
		Text string
		Int  int64
		Real float64
	}

	String struct {
		Decoration
		Value string
	}

	Char struct {
		Decoration
		Value rune
	}

	Boolean struct {
		Decoration
		Value bool
	}

	ProcCall struct {
		Decoration
		Name string
		Args []Node
	}

	If struct {
		Decoration
		Cond Node
		Then Node
		Else Node
	}

	While struct {
		Decoration
		Cond Node
		Body Node
	}

	For struct {
		Decoration
		Var  *Var
		From Node
		To   Node
		Down bool
		Body Node
	}

	ArrayAccess struct {
		Decoration
		Name  string
		Index Node
	}
)

func (*Program) node()       {}
func (*Block) node()         {}
func (*VarDecl) node()       {}
func (*ConstDecl) node()     {}
func (*TypeDecl) node()      {}
func (*ProcedureDecl) node() {}
func (*FunctionDecl) node()  {}
func (*Assign) node()        {}
func (*BinOp) node()         {}
func (*UnaryOp) node()       {}
func (*Var) node()           {}
func (*Number) node()        {}
func (*String) node()        {}
func (*Char) node()          {}
func (*Boolean) node()       {}
func (*ProcCall) node()      {}
func (*If) node()            {}
func (*While) node()         {}
func (*For) node()           {}
func (*ArrayAccess) node()   {}
