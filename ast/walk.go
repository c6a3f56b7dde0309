package ast

import (
	"fmt"
	"strconv"
)

// Children returns the direct subtrees of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		if n.Block != nil {
			add(n.Block)
		}
	case *Block:
		add(n.Declarations...)
		add(n.Body...)
	case *ConstDecl:
		add(n.Value)
	case *ProcedureDecl:
		for _, p := range n.Params {
			add(p)
		}
		if n.Block != nil {
			add(n.Block)
		}
	case *FunctionDecl:
		for _, p := range n.Params {
			add(p)
		}
		if n.Block != nil {
			add(n.Block)
		}
	case *Assign:
		add(n.Target, n.Value)
	case *BinOp:
		add(n.Left, n.Right)
	case *UnaryOp:
		add(n.Operand)
	case *ProcCall:
		add(n.Args...)
	case *If:
		add(n.Cond, n.Then, n.Else)
	case *While:
		add(n.Cond, n.Body)
	case *For:
		if n.Var != nil {
			add(n.Var)
		}
		add(n.From, n.To, n.Body)
	case *ArrayAccess:
		add(n.Index)
	}
	return out
}

// Inspect traverses the tree rooted at n in depth-first order, calling f
// for each node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Label is a one-line description of n without its children.
func Label(n Node) string {
	switch n := n.(type) {
	case *Program:
		return "Program " + n.Name
	case *Block:
		return "Block"
	case *VarDecl:
		return "VarDecl " + n.Name
	case *ConstDecl:
		return "ConstDecl " + n.Name
	case *TypeDecl:
		return "TypeDecl " + n.Name
	case *ProcedureDecl:
		return "ProcedureDecl " + n.Name
	case *FunctionDecl:
		return "FunctionDecl " + n.Name
	case *Assign:
		return "Assign"
	case *BinOp:
		return "BinOp " + n.Op
	case *UnaryOp:
		return "UnaryOp " + n.Op
	case *Var:
		return "Var " + n.Name
	case *Number:
		return "Number " + n.Text
	case *String:
		return "String " + strconv.Quote(n.Value)
	case *Char:
		return "Char " + strconv.QuoteRune(n.Value)
	case *Boolean:
		return "Boolean " + strconv.FormatBool(n.Value)
	case *ProcCall:
		return "ProcCall " + n.Name
	case *If:
		return "If"
	case *While:
		return "While"
	case *For:
		if n.Down {
			return "For turun_ke"
		}
		return "For ke"
	case *ArrayAccess:
		return "ArrayAccess " + n.Name
	}
	return fmt.Sprintf("%T", n)
}
