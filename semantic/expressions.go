package semantic

import (
	"strings"

	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
)

// expression handles simple_expr (relop simple_expr)?.
func (a *Analyzer) expression(n *parser.Interior) ast.Node {
	simples := n.AllOf(parser.SymSimpleExpression)
	left := a.simpleExpression(simples[0])
	relop := n.FirstOf(parser.SymRelationalOperator)
	if relop == nil {
		return left
	}

	right := a.simpleExpression(simples[1])
	op := relop.Child(0).(*parser.Leaf)
	lt, rt := left.Info().Type, right.Info().Type
	ok := (lt.IsNumeric() && rt.IsNumeric()) ||
		(lt == rt && lt != ast.TypeArray && lt != ast.TypeNone)
	if !ok {
		a.fail(op.Pos(), "Operator '%s' cannot compare %s and %s", op.Token.Text, lt, rt)
	}
	return &ast.BinOp{
		Decoration: ast.Decorate(ast.TypeBoolean, n.Pos()),
		Op:         op.Token.Text,
		Left:       left,
		Right:      right,
	}
}

// simpleExpression handles ('+'|'-')? term (addop term)*. The sign
// applies to the first term only.
func (a *Analyzer) simpleExpression(n *parser.Interior) ast.Node {
	var result ast.Node
	var sign, op *parser.Leaf
	for _, child := range n.Children {
		switch c := child.(type) {
		case *parser.Leaf:
			sign = c
		case *parser.Interior:
			switch c.Symbol {
			case parser.SymAdditiveOperator:
				op = c.Child(0).(*parser.Leaf)
			case parser.SymTerm:
				t := a.term(c)
				switch {
				case result == nil && sign != nil:
					result = a.signed(sign, t)
				case result == nil:
					result = t
				default:
					result = a.binary(op, result, t)
				}
			}
		}
	}
	return result
}

// term handles factor (mulop factor)*.
func (a *Analyzer) term(n *parser.Interior) ast.Node {
	var result ast.Node
	var op *parser.Leaf
	for _, child := range n.Children {
		c := child.(*parser.Interior)
		switch c.Symbol {
		case parser.SymMultiplicativeOp:
			op = c.Child(0).(*parser.Leaf)
		case parser.SymFactor:
			f := a.factor(c)
			if result == nil {
				result = f
			} else {
				result = a.binary(op, result, f)
			}
		}
	}
	return result
}

func (a *Analyzer) signed(sign *parser.Leaf, operand ast.Node) ast.Node {
	t := operand.Info().Type
	if !t.IsNumeric() {
		a.fail(sign.Pos(), "Operator '%s' requires a numeric operand, found %s", sign.Token.Text, t)
	}
	return &ast.UnaryOp{
		Decoration: ast.Decorate(t, sign.Pos()),
		Op:         sign.Token.Text,
		Operand:    operand,
	}
}

// binary type checks an additive or multiplicative operator.
func (a *Analyzer) binary(opLeaf *parser.Leaf, left, right ast.Node) ast.Node {
	op := strings.ToLower(opLeaf.Token.Text)
	lt, rt := left.Info().Type, right.Info().Type

	var result ast.TypeCode
	switch op {
	case "+", "-", "*":
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.fail(opLeaf.Pos(), "Operator '%s' requires numeric operands, found %s and %s", op, lt, rt)
		}
		result = ast.TypeReal
		if lt == ast.TypeInteger && rt == ast.TypeInteger {
			result = ast.TypeInteger
		}
	case "/":
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.fail(opLeaf.Pos(), "Operator '/' requires numeric operands, found %s and %s", lt, rt)
		}
		result = ast.TypeReal
	case "bagi", "mod":
		if lt != ast.TypeInteger || rt != ast.TypeInteger {
			a.fail(opLeaf.Pos(), "Operator '%s' requires integer operands, found %s and %s", op, lt, rt)
		}
		result = ast.TypeInteger
	case "atau", "dan":
		if lt != ast.TypeBoolean || rt != ast.TypeBoolean {
			a.fail(opLeaf.Pos(), "Operator '%s' requires boolean operands, found %s and %s", op, lt, rt)
		}
		result = ast.TypeBoolean
	default:
		a.fail(opLeaf.Pos(), "unknown operator '%s'", opLeaf.Token.Text)
	}

	return &ast.BinOp{
		Decoration: ast.Decorate(result, left.Info().Pos),
		Op:         op,
		Left:       left,
		Right:      right,
	}
}

// factor handles IDENTIFIER ('[' expression ']' | call)? | literals |
// '(' expression ')' | 'tidak' factor.
func (a *Analyzer) factor(n *parser.Interior) ast.Node {
	if call, ok := n.Child(0).(*parser.Interior); ok {
		return a.call(call, true)
	}

	leaf := n.Child(0).(*parser.Leaf)
	tok := leaf.Token
	switch {
	case tok.Kind == lexer.KindIdentifier:
		if subscript := n.FirstOf(parser.SymArrayIndex); subscript != nil {
			return a.arrayAccess(leaf, a.lookup(leaf), subscript)
		}
		return a.identifier(leaf)
	case tok.Kind == lexer.KindLParen:
		return a.expression(n.FirstOf(parser.SymExpression))
	case tok.Is(lexer.KindKeyword, "tidak"):
		operand := a.factor(n.FirstOf(parser.SymFactor))
		if t := operand.Info().Type; t != ast.TypeBoolean {
			a.fail(leaf.Pos(), "Operator 'tidak' requires a boolean operand, found %s", t)
		}
		return &ast.UnaryOp{
			Decoration: ast.Decorate(ast.TypeBoolean, leaf.Pos()),
			Op:         "tidak",
			Operand:    operand,
		}
	}
	return a.literal(leaf)
}

// identifier resolves a bare identifier used as a value. A function name
// is a call without arguments.
func (a *Analyzer) identifier(leaf *parser.Leaf) ast.Node {
	index := a.lookup(leaf)
	e := a.entry(index)
	switch e.Kind {
	case KindVariable, KindConstant:
		return &ast.Var{Decoration: a.decorate(index, leaf.Pos()), Name: e.ID}
	case KindFunction:
		return a.finishCall(index, leaf, nil)
	}
	a.fail(leaf.Pos(), "%s '%s' cannot be used as a value", e.Kind, e.ID)
	return nil
}

// arrayAccess handles name '[' expression ']' where name is the symbol at
// index.
func (a *Analyzer) arrayAccess(name *parser.Leaf, index int, subscript *parser.Interior) ast.Node {
	e := a.entry(index)
	if e.Type != ast.TypeArray || (e.Kind != KindVariable && e.Kind != KindConstant) {
		a.fail(name.Pos(), "'%s' is not an array", e.ID)
	}
	idx := a.expression(subscript.FirstOf(parser.SymExpression))
	if t := idx.Info().Type; t != ast.TypeInteger {
		a.fail(idx.Info().Pos, "Array index must be integer, found %s", t)
	}
	elem := a.tables.Atab[e.Ref]
	return &ast.ArrayAccess{
		Decoration: ast.Decoration{
			Type:   elem.ElementType,
			Symbol: index,
			Level:  e.Level,
			Pos:    name.Pos(),
		},
		Name:  e.ID,
		Index: idx,
	}
}
