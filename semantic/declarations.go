package semantic

import (
	"strconv"
	"strings"

	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
)

func (a *Analyzer) declarationPart(n *parser.Interior) []ast.Node {
	if n == nil {
		return nil
	}
	var out []ast.Node
	for _, child := range n.Children {
		decl, ok := child.(*parser.Interior)
		if !ok {
			continue
		}
		switch decl.Symbol {
		case parser.SymConstDeclaration:
			out = append(out, a.constDeclaration(decl)...)
		case parser.SymTypeDeclaration:
			out = append(out, a.typeDeclaration(decl)...)
		case parser.SymVarDeclaration:
			out = append(out, a.varDeclaration(decl)...)
		case parser.SymSubprogram:
			out = append(out, a.subprogram(decl))
		}
	}
	return out
}

// constDeclaration handles 'konstanta' (IDENTIFIER '=' constant ';')+.
func (a *Analyzer) constDeclaration(n *parser.Interior) []ast.Node {
	var out []ast.Node
	var name *parser.Leaf
	for _, child := range n.Children {
		switch c := child.(type) {
		case *parser.Leaf:
			if c.Token.Kind == lexer.KindIdentifier {
				name = c
			}
		case *parser.Interior:
			value := a.constant(c)
			index := a.declare(name.Token.Text, KindConstant, name.Pos())
			adr := a.constantValue(value)
			e := a.entry(index)
			e.Type, e.Adr = value.Info().Type, adr
			out = append(out, &ast.ConstDecl{
				Decoration: a.decorate(index, name.Pos()),
				Name:       name.Token.Text,
				Value:      value,
			})
		}
	}
	return out
}

// constant folds ('+'|'-')? NUMBER | STRING | CHAR | 'true' | 'false' into
// a literal node.
func (a *Analyzer) constant(n *parser.Interior) ast.Node {
	var sign *parser.Leaf
	for _, child := range n.Children {
		leaf := child.(*parser.Leaf)
		tok := leaf.Token
		switch {
		case tok.Kind == lexer.KindPlus || tok.Kind == lexer.KindMinus:
			sign = leaf
		case tok.Kind == lexer.KindNumber:
			num := a.number(leaf)
			if sign != nil {
				num.Pos = sign.Pos()
				if sign.Token.Kind == lexer.KindMinus {
					num.Text = "-" + num.Text
					num.Int, num.Real = -num.Int, -num.Real
				}
			}
			return num
		default:
			return a.literal(leaf)
		}
	}
	a.fail(n.Pos(), "malformed constant")
	return nil
}

// constantValue is the Adr of a constant entry holding value.
func (a *Analyzer) constantValue(value ast.Node) int {
	switch v := value.(type) {
	case *ast.Number:
		if v.Type == ast.TypeReal {
			a.tables.Reals = append(a.tables.Reals, v.Real)
			return len(a.tables.Reals) - 1
		}
		return int(v.Int)
	case *ast.String:
		a.tables.Strings = append(a.tables.Strings, v.Value)
		return len(a.tables.Strings) - 1
	case *ast.Char:
		return int(v.Value)
	case *ast.Boolean:
		if v.Value {
			return 1
		}
	}
	return 0
}

func (a *Analyzer) number(leaf *parser.Leaf) *ast.Number {
	text := leaf.Token.Text
	num := &ast.Number{Text: text}
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			a.fail(leaf.Pos(), "invalid real literal %s", text)
		}
		num.Decoration = ast.Decorate(ast.TypeReal, leaf.Pos())
		num.Real = f
		return num
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		a.fail(leaf.Pos(), "integer literal %s out of range", text)
	}
	num.Decoration = ast.Decorate(ast.TypeInteger, leaf.Pos())
	num.Int = i
	num.Real = float64(i)
	return num
}

// literal handles the non-numeric literal tokens.
func (a *Analyzer) literal(leaf *parser.Leaf) ast.Node {
	tok := leaf.Token
	switch {
	case tok.Kind == lexer.KindNumber:
		return a.number(leaf)
	case tok.Kind == lexer.KindString:
		return &ast.String{Decoration: ast.Decorate(ast.TypeString, leaf.Pos()), Value: unquote(tok.Text)}
	case tok.Kind == lexer.KindChar:
		r := []rune(unquote(tok.Text))
		if len(r) != 1 {
			a.fail(leaf.Pos(), "invalid character literal %s", tok.Text)
		}
		return &ast.Char{Decoration: ast.Decorate(ast.TypeChar, leaf.Pos()), Value: r[0]}
	case tok.Is(lexer.KindKeyword, "true"), tok.Is(lexer.KindKeyword, "false"):
		return &ast.Boolean{
			Decoration: ast.Decorate(ast.TypeBoolean, leaf.Pos()),
			Value:      strings.EqualFold(tok.Text, "true"),
		}
	}
	a.fail(leaf.Pos(), "unexpected %s in constant", tok.Kind)
	return nil
}

func unquote(text string) string {
	text = strings.TrimPrefix(text, "'")
	text = strings.TrimSuffix(text, "'")
	return strings.ReplaceAll(text, "''", "'")
}

// typeDeclaration handles 'tipe' (IDENTIFIER '=' type_definition ';')+.
// The definition is resolved before the name is entered, so a type
// cannot refer to itself.
func (a *Analyzer) typeDeclaration(n *parser.Interior) []ast.Node {
	var out []ast.Node
	var name *parser.Leaf
	for _, child := range n.Children {
		switch c := child.(type) {
		case *parser.Leaf:
			if c.Token.Kind == lexer.KindIdentifier {
				name = c
			}
		case *parser.Interior:
			if rec := c.FirstOf(parser.SymRecordType); rec != nil {
				a.fail(rec.Pos(), "record types are not supported")
			}
			typ, ref := a.resolveType(c.FirstOf(parser.SymType))
			index := a.declare(name.Token.Text, KindType, name.Pos())
			e := a.entry(index)
			e.Type, e.Ref = typ, ref
			out = append(out, &ast.TypeDecl{
				Decoration: a.decorate(index, name.Pos()),
				Name:       name.Token.Text,
			})
		}
	}
	return out
}

// varDeclaration handles 'variabel' (identifier_list ':' type ';')+.
func (a *Analyzer) varDeclaration(n *parser.Interior) []ast.Node {
	var out []ast.Node
	lists := n.AllOf(parser.SymIdentifierList)
	types := n.AllOf(parser.SymType)
	for i, list := range lists {
		for _, decl := range a.variables(list, types[i]) {
			out = append(out, decl)
		}
	}
	return out
}

// variables declares every identifier of list with type t.
func (a *Analyzer) variables(list, t *parser.Interior) []*ast.VarDecl {
	typ, ref := a.resolveType(t)
	var out []*ast.VarDecl
	for _, id := range list.Leaves(lexer.KindIdentifier) {
		index := a.declare(id.Token.Text, KindVariable, id.Pos())
		e := a.entry(index)
		e.Type, e.Ref = typ, ref
		out = append(out, &ast.VarDecl{
			Decoration: a.decorate(index, id.Pos()),
			Name:       id.Token.Text,
		})
	}
	return out
}

// resolveType returns the type code of a <type> node and, for arrays, its
// array table index.
func (a *Analyzer) resolveType(n *parser.Interior) (ast.TypeCode, int) {
	switch c := n.Child(0).(type) {
	case *parser.Interior:
		return a.arrayType(c)
	case *parser.Leaf:
		if c.Token.Kind == lexer.KindKeyword {
			index, ok := a.tables.Reserved(strings.ToLower(c.Token.Text))
			if !ok || a.entry(index).Kind != KindType {
				a.fail(c.Pos(), "Unknown type '%s'", c.Token.Text)
			}
			return a.entry(index).Type, 0
		}
		index, ok := a.find(c.Token.Text)
		if !ok {
			a.fail(c.Pos(), "Unknown type '%s'", c.Token.Text)
		}
		e := a.entry(index)
		if e.Kind != KindType {
			a.fail(c.Pos(), "'%s' is not a type", c.Token.Text)
		}
		if e.Type == ast.TypeArray && IsReserved(index) {
			a.fail(c.Pos(), "'%s' needs bounds, use larik[low..high] dari", c.Token.Text)
		}
		return e.Type, e.Ref
	}
	a.fail(n.Pos(), "malformed type")
	return ast.TypeNone, 0
}

// arrayType handles 'larik' '[' range ']' 'dari' type and appends an array
// table entry.
func (a *Analyzer) arrayType(n *parser.Interior) (ast.TypeCode, int) {
	rng := n.FirstOf(parser.SymRange)
	bounds := rng.AllOf(parser.SymExpression)
	low := a.bound(bounds[0])
	high := a.bound(bounds[1])
	size := high - low + 1
	if low > high || size <= 0 {
		a.fail(rng.Pos(), "malformed array bounds %d..%d", low, high)
	}

	elemType, elemRef := a.resolveType(n.FirstOf(parser.SymType))
	elemSize := 1
	if elemType == ast.TypeArray {
		elemSize = a.tables.Atab[elemRef].Size
	}

	a.tables.Atab = append(a.tables.Atab, ArrayEntry{
		IndexType:   ast.TypeInteger,
		ElementType: elemType,
		ElementRef:  elemRef,
		Low:         low,
		High:        high,
		ElemSize:    elemSize,
		Size:        size,
	})
	return ast.TypeArray, len(a.tables.Atab) - 1
}

// bound folds an array bound. Only a signed integer literal or an integer
// constant qualifies; anything else is handled by the bound policy.
func (a *Analyzer) bound(expr *parser.Interior) int {
	if v, ok := a.foldBound(expr); ok {
		return v
	}
	if a.bounds == BoundZero {
		log.Warningf("%s: array bound is not a constant integer, using 0", expr.Pos())
		return 0
	}
	a.fail(expr.Pos(), "array bound must be a constant integer")
	return 0
}

func (a *Analyzer) foldBound(expr *parser.Interior) (int, bool) {
	if len(expr.Children) != 1 {
		return 0, false
	}
	simple := expr.FirstOf(parser.SymSimpleExpression)
	negate := false
	var term *parser.Interior
	for _, child := range simple.Children {
		switch c := child.(type) {
		case *parser.Leaf:
			negate = c.Token.Kind == lexer.KindMinus
		case *parser.Interior:
			if term != nil || c.Symbol != parser.SymTerm {
				return 0, false
			}
			term = c
		}
	}
	if term == nil || len(term.Children) != 1 {
		return 0, false
	}
	factor := term.FirstOf(parser.SymFactor)
	if factor == nil || len(factor.Children) != 1 {
		return 0, false
	}
	leaf, ok := factor.Child(0).(*parser.Leaf)
	if !ok {
		return 0, false
	}

	var v int
	switch leaf.Token.Kind {
	case lexer.KindNumber:
		i, err := strconv.Atoi(leaf.Token.Text)
		if err != nil {
			return 0, false
		}
		v = i
	case lexer.KindIdentifier:
		index, found := a.find(leaf.Token.Text)
		if !found {
			a.fail(leaf.Pos(), "Identifier '%s' undeclared", leaf.Token.Text)
		}
		e := a.entry(index)
		if e.Kind != KindConstant || e.Type != ast.TypeInteger {
			return 0, false
		}
		v = e.Adr
	default:
		return 0, false
	}
	if negate {
		v = -v
	}
	return v, true
}

func (a *Analyzer) subprogram(n *parser.Interior) ast.Node {
	if fn := n.FirstOf(parser.SymFunction); fn != nil {
		return a.function(fn)
	}
	return a.procedure(n.FirstOf(parser.SymProcedure))
}

// procedure handles 'prosedur' IDENTIFIER formal_params? ';' block ';'.
func (a *Analyzer) procedure(n *parser.Interior) ast.Node {
	name := n.Leaves(lexer.KindIdentifier)[0]
	index := a.declare(name.Token.Text, KindProcedure, name.Pos())
	decl := &ast.ProcedureDecl{Name: name.Token.Text}
	decl.Params, decl.Block = a.routine(index, n)
	decl.Decoration = a.decorate(index, n.Pos())
	return decl
}

// function handles 'fungsi' IDENTIFIER formal_params? ':' type ';' block ';'.
// The result type is resolved in the enclosing scope.
func (a *Analyzer) function(n *parser.Interior) ast.Node {
	name := n.Leaves(lexer.KindIdentifier)[0]
	index := a.declare(name.Token.Text, KindFunction, name.Pos())
	result := n.FirstOf(parser.SymType)
	typ, _ := a.resolveType(result)
	if typ == ast.TypeArray {
		a.fail(result.Pos(), "function '%s' cannot return an array", name.Token.Text)
	}
	a.entry(index).Type = typ

	decl := &ast.FunctionDecl{Name: name.Token.Text}
	decl.Params, decl.Block = a.routine(index, n)
	decl.Decoration = a.decorate(index, n.Pos())
	return decl
}

// routine opens the scope of the procedure or function at index, enters
// its parameters and analyzes its block.
func (a *Analyzer) routine(index int, n *parser.Interior) ([]*ast.VarDecl, *ast.Block) {
	b := a.enterScope()
	a.entry(index).Ref = b

	var params []*ast.VarDecl
	if formal := n.FirstOf(parser.SymFormalParameters); formal != nil {
		for _, group := range formal.AllOf(parser.SymParameterGroup) {
			decls := a.variables(group.FirstOf(parser.SymIdentifierList), group.FirstOf(parser.SymType))
			a.tables.Btab[b].ParamCount += len(decls)
			params = append(params, decls...)
		}
	}

	block := a.block(n.FirstOf(parser.SymBlock))
	a.exitScope()
	return params, block
}

func (a *Analyzer) block(n *parser.Interior) *ast.Block {
	decls := a.declarationPart(n.FirstOf(parser.SymDeclarationPart))
	body := a.compound(n.FirstOf(parser.SymCompoundStatement))
	body.Declarations = decls
	body.Level = a.level
	body.Pos = n.Pos()
	return body
}
