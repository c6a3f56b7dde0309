package semantic

import (
	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
)

// compound analyzes 'mulai' statement_list 'selesai'. It opens no scope.
func (a *Analyzer) compound(n *parser.Interior) *ast.Block {
	block := &ast.Block{Decoration: ast.Decorate(ast.TypeNone, n.Pos())}
	list := n.FirstOf(parser.SymStatementList)
	for _, stmt := range list.AllOf(parser.SymStatement) {
		block.Body = append(block.Body, a.statement(stmt))
	}
	return block
}

func (a *Analyzer) statement(n *parser.Interior) ast.Node {
	inner := n.Child(0).(*parser.Interior)
	switch inner.Symbol {
	case parser.SymCompoundStatement:
		return a.compound(inner)
	case parser.SymAssignment:
		return a.assignment(inner)
	case parser.SymIf:
		return a.ifStatement(inner)
	case parser.SymWhile:
		return a.whileStatement(inner)
	case parser.SymFor:
		return a.forStatement(inner)
	case parser.SymCall:
		return a.call(inner, false)
	}
	a.fail(n.Pos(), "unexpected %s", inner.Symbol)
	return nil
}

// assignment handles IDENTIFIER ('[' expression ']')? ':=' expression.
func (a *Analyzer) assignment(n *parser.Interior) ast.Node {
	name := n.Child(0).(*parser.Leaf)
	index := a.lookup(name)
	e := a.entry(index)
	switch e.Kind {
	case KindVariable, KindFunction:
	case KindConstant:
		a.fail(name.Pos(), "Cannot assign to constant '%s'", e.ID)
	default:
		a.fail(name.Pos(), "cannot assign to %s '%s'", e.Kind, e.ID)
	}
	if e.Kind == KindFunction && IsReserved(index) {
		a.fail(name.Pos(), "cannot assign to built-in function '%s'", e.ID)
	}
	if e.Kind == KindFunction && !a.inBlock(e.Ref) {
		a.fail(name.Pos(), "cannot assign to function '%s' outside its body", e.ID)
	}

	var target ast.Node
	if subscript := n.FirstOf(parser.SymArrayIndex); subscript != nil {
		target = a.arrayAccess(name, index, subscript)
	} else {
		target = &ast.Var{Decoration: a.decorate(index, name.Pos()), Name: e.ID}
	}

	value := a.expression(n.FirstOf(parser.SymExpression))
	a.checkAssignable(value, target, value.Info().Pos, "assign")

	return &ast.Assign{
		Decoration: ast.Decoration{
			Type:   target.Info().Type,
			Symbol: index,
			Level:  a.entry(index).Level,
			Pos:    n.Pos(),
		},
		Target: target,
		Value:  value,
	}
}

// inBlock reports whether block b is open on the display.
func (a *Analyzer) inBlock(b int) bool {
	for _, open := range a.display {
		if open == b {
			return true
		}
	}
	return false
}

// checkAssignable fails unless value may be stored where target lives.
// Arrays must have the same shape.
func (a *Analyzer) checkAssignable(value, target ast.Node, pos lexer.Position, verb string) {
	vt, tt := value.Info().Type, target.Info().Type
	if !vt.AssignableTo(tt) || vt == ast.TypeNone {
		a.fail(pos, "Type mismatch: cannot %s %s to %s", verb, vt, tt)
	}
	if vt == ast.TypeArray && !a.sameArray(a.arrayRef(value), a.arrayRef(target)) {
		a.fail(pos, "Type mismatch: cannot %s arrays of different shape", verb)
	}
}

// arrayRef is the array table index describing the array-typed node n.
func (a *Analyzer) arrayRef(n ast.Node) int {
	switch n := n.(type) {
	case *ast.Var:
		return a.entry(n.Symbol).Ref
	case *ast.ArrayAccess:
		return a.tables.Atab[a.entry(n.Symbol).Ref].ElementRef
	}
	return -1
}

func (a *Analyzer) sameArray(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	if x == y {
		return true
	}
	ax, ay := a.tables.Atab[x], a.tables.Atab[y]
	if ax.Low != ay.Low || ax.High != ay.High || ax.ElementType != ay.ElementType {
		return false
	}
	if ax.ElementType == ast.TypeArray {
		return a.sameArray(ax.ElementRef, ay.ElementRef)
	}
	return true
}

func (a *Analyzer) requireBoolean(cond ast.Node, keyword string) {
	if t := cond.Info().Type; t != ast.TypeBoolean {
		a.fail(cond.Info().Pos, "Condition of %s must be boolean, found %s", keyword, t)
	}
}

// ifStatement handles 'jika' expression 'maka' statement ('selain_itu' statement)?.
func (a *Analyzer) ifStatement(n *parser.Interior) ast.Node {
	cond := a.expression(n.FirstOf(parser.SymExpression))
	a.requireBoolean(cond, "jika")

	stmts := n.AllOf(parser.SymStatement)
	node := &ast.If{
		Decoration: ast.Decorate(ast.TypeNone, n.Pos()),
		Cond:       cond,
		Then:       a.statement(stmts[0]),
	}
	if len(stmts) > 1 {
		node.Else = a.statement(stmts[1])
	}
	return node
}

// whileStatement handles 'selama' expression 'lakukan' statement.
func (a *Analyzer) whileStatement(n *parser.Interior) ast.Node {
	cond := a.expression(n.FirstOf(parser.SymExpression))
	a.requireBoolean(cond, "selama")
	return &ast.While{
		Decoration: ast.Decorate(ast.TypeNone, n.Pos()),
		Cond:       cond,
		Body:       a.statement(n.FirstOf(parser.SymStatement)),
	}
}

// forStatement handles 'untuk' IDENTIFIER ':=' expression ('ke'|'turun_ke')
// expression 'lakukan' statement.
func (a *Analyzer) forStatement(n *parser.Interior) ast.Node {
	name := n.Leaves(lexer.KindIdentifier)[0]
	index := a.lookup(name)
	e := a.entry(index)
	if e.Kind != KindVariable {
		a.fail(name.Pos(), "for loop variable '%s' must be a variable, not a %s", e.ID, e.Kind)
	}
	if e.Type != ast.TypeInteger && e.Type != ast.TypeChar {
		a.fail(name.Pos(), "for loop variable '%s' must be integer or char, found %s", e.ID, e.Type)
	}
	iter := &ast.Var{Decoration: a.decorate(index, name.Pos()), Name: e.ID}

	bounds := n.AllOf(parser.SymExpression)
	from := a.expression(bounds[0])
	a.checkAssignable(from, iter, from.Info().Pos, "assign")
	to := a.expression(bounds[1])
	a.checkAssignable(to, iter, to.Info().Pos, "assign")

	down := false
	for _, kw := range n.Leaves(lexer.KindKeyword) {
		if kw.Token.Is(lexer.KindKeyword, "turun_ke") {
			down = true
		}
	}

	return &ast.For{
		Decoration: ast.Decorate(ast.TypeNone, n.Pos()),
		Var:        iter,
		From:       from,
		To:         to,
		Down:       down,
		Body:       a.statement(n.FirstOf(parser.SymStatement)),
	}
}

// call handles IDENTIFIER ('(' param_list? ')')?. In a value context the
// callee must be a function.
func (a *Analyzer) call(n *parser.Interior, value bool) ast.Node {
	name := n.Child(0).(*parser.Leaf)
	index := a.lookup(name)
	e := a.entry(index)
	switch {
	case e.Kind == KindFunction:
	case e.Kind == KindProcedure && !value:
	case e.Kind == KindProcedure:
		a.fail(name.Pos(), "procedure '%s' has no value", e.ID)
	default:
		a.fail(name.Pos(), "%s '%s' is not a procedure or function", e.Kind, e.ID)
	}

	var args []ast.Node
	if list := n.FirstOf(parser.SymParameterList); list != nil {
		for _, expr := range list.AllOf(parser.SymExpression) {
			args = append(args, a.expression(expr))
		}
	}
	return a.finishCall(index, name, args)
}

// finishCall checks args against the routine at index and builds the call.
// Built-in routines accept any arguments; a built-in function without a
// fixed result type returns the type of its first argument.
func (a *Analyzer) finishCall(index int, name *parser.Leaf, args []ast.Node) *ast.ProcCall {
	e := a.entry(index)
	node := &ast.ProcCall{Decoration: a.decorate(index, name.Pos()), Name: e.ID, Args: args}
	if e.Kind == KindProcedure {
		node.Type = ast.TypeNone
	}

	if IsReserved(index) {
		if e.Kind == KindFunction && e.Type == ast.TypeNone && len(args) > 0 {
			node.Type = args[0].Info().Type
		}
		return node
	}

	params := a.tables.Params(index)
	if len(args) != len(params) {
		a.fail(name.Pos(), "'%s' expects %d argument(s), got %d", e.ID, len(params), len(args))
	}
	for i, arg := range args {
		p := a.entry(params[i])
		param := &ast.Var{Decoration: a.decorate(params[i], p.Pos), Name: p.ID}
		a.checkAssignable(arg, param, arg.Info().Pos, "pass")
	}
	return node
}
