package parser

import (
	"strings"

	"github.com/dhamidi/paskal/lexer"
)

// Symbol names the grammar production an interior node was built by.
type Symbol string

const (
	SymProgram            Symbol = "<program>"
	SymProgramHeader      Symbol = "<program_header>"
	SymDeclarationPart    Symbol = "<declaration_part>"
	SymConstDeclaration   Symbol = "<const_declaration>"
	SymConstant           Symbol = "<constant>"
	SymTypeDeclaration    Symbol = "<type_declaration>"
	SymTypeDefinition     Symbol = "<type_definition>"
	SymVarDeclaration     Symbol = "<var_declaration>"
	SymIdentifierList     Symbol = "<identifier_list>"
	SymType               Symbol = "<type>"
	SymArrayType          Symbol = "<array_type>"
	SymRecordType         Symbol = "<record_type>"
	SymRange              Symbol = "<range>"
	SymSubprogram         Symbol = "<subprogram_declaration>"
	SymProcedure          Symbol = "<procedure_declaration>"
	SymFunction           Symbol = "<function_declaration>"
	SymBlock              Symbol = "<block>"
	SymFormalParameters   Symbol = "<formal_parameter_list>"
	SymParameterGroup     Symbol = "<parameter_group>"
	SymCompoundStatement  Symbol = "<compound_statement>"
	SymStatementList      Symbol = "<statement_list>"
	SymStatement          Symbol = "<statement>"
	SymAssignment         Symbol = "<assignment_statement>"
	SymArrayIndex         Symbol = "<array_index>"
	SymIf                 Symbol = "<if_statement>"
	SymWhile              Symbol = "<while_statement>"
	SymFor                Symbol = "<for_statement>"
	SymCall               Symbol = "<procedure_function_call>"
	SymParameterList      Symbol = "<parameter_list>"
	SymExpression         Symbol = "<expression>"
	SymSimpleExpression   Symbol = "<simple_expression>"
	SymTerm               Symbol = "<term>"
	SymFactor             Symbol = "<factor>"
	SymRelationalOperator Symbol = "<relational_operator>"
	SymAdditiveOperator   Symbol = "<additive_operator>"
	SymMultiplicativeOp   Symbol = "<multiplicative_operator>"
)

// Node is a parse tree node: a *Leaf wrapping a token or an *Interior
// node built by a production.
type Node interface {
	Pos() lexer.Position
	String() string
	node()
}

type Leaf struct {
	Token lexer.Token
}

func (l *Leaf) Pos() lexer.Position {
	return l.Token.Pos
}

func (l *Leaf) String() string {
	return l.Token.String()
}

func (*Leaf) node() {}

type Interior struct {
	Symbol   Symbol
	Children []Node
	pos      lexer.Position
}

func NewInterior(sym Symbol, children ...Node) *Interior {
	n := &Interior{Symbol: sym}
	for _, child := range children {
		n.Add(child)
	}
	return n
}

// Add appends child. The node's position is taken from the first child
// with a known position and does not change afterwards.
func (n *Interior) Add(child Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if !n.pos.IsValid() {
		n.pos = child.Pos()
	}
}

func (n *Interior) Pos() lexer.Position {
	return n.pos
}

func (*Interior) node() {}

func (n *Interior) String() string {
	var b strings.Builder
	writeTree(&b, n, 0)
	return b.String()
}

func writeTree(b *strings.Builder, n Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	switch n := n.(type) {
	case *Leaf:
		b.WriteString(n.Token.String())
		b.WriteString("\n")
	case *Interior:
		b.WriteString(string(n.Symbol))
		b.WriteString("\n")
		for _, child := range n.Children {
			writeTree(b, child, indent+1)
		}
	}
}

// Child returns the i-th child or nil.
func (n *Interior) Child(i int) Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// FirstOf returns the first interior child built by sym.
func (n *Interior) FirstOf(sym Symbol) *Interior {
	for _, child := range n.Children {
		if in, ok := child.(*Interior); ok && in.Symbol == sym {
			return in
		}
	}
	return nil
}

// AllOf returns every interior child built by sym.
func (n *Interior) AllOf(sym Symbol) []*Interior {
	var result []*Interior
	for _, child := range n.Children {
		if in, ok := child.(*Interior); ok && in.Symbol == sym {
			result = append(result, in)
		}
	}
	return result
}

// Leaves returns the direct leaf children of kind.
func (n *Interior) Leaves(kind lexer.Kind) []*Leaf {
	var result []*Leaf
	for _, child := range n.Children {
		if leaf, ok := child.(*Leaf); ok && leaf.Token.Kind == kind {
			result = append(result, leaf)
		}
	}
	return result
}
