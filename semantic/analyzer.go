package semantic

import (
	"errors"
	"fmt"

	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
)

// ErrReused is returned when an Analyzer is asked to analyze a second tree.
var ErrReused = errors.New("analyzer already used")

// Analyzer walks a parse tree once, building the symbol, block and array
// tables and a decorated AST. An Analyzer analyzes a single tree.
type Analyzer struct {
	tables  *Tables
	display []int
	level   int
	bounds  BoundPolicy
	used    bool
}

// New returns an analyzer with the built-in entries in place and the
// global block open at level 0.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		tables:  newTables(),
		display: []int{0},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs a fresh analyzer over tree.
func Analyze(tree *parser.Interior, opts ...Option) (*ast.Program, *Tables, error) {
	a := New(opts...)
	prog, err := a.Analyze(tree)
	if err != nil {
		return nil, nil, err
	}
	return prog, a.Tables(), nil
}

// Analyze decorates tree. Analysis stops at the first error, which is a
// *Error for every problem in the program.
func (a *Analyzer) Analyze(tree *parser.Interior) (prog *ast.Program, err error) {
	if a.used {
		return nil, ErrReused
	}
	a.used = true
	if tree == nil || tree.Symbol != parser.SymProgram {
		return nil, fmt.Errorf("analyze: expected a %s tree", parser.SymProgram)
	}

	defer func() {
		if r := recover(); r != nil {
			serr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			log.Debugf("analysis failed: %s", serr)
			prog, err = nil, serr
		}
	}()

	prog = a.program(tree)
	log.Debugf("analyzed %d symbols, %d blocks, %d arrays",
		len(a.tables.Tab)-FirstUserIndex, len(a.tables.Btab), len(a.tables.Atab))
	return prog, nil
}

// Tables returns the tables built so far.
func (a *Analyzer) Tables() *Tables {
	return a.tables
}

// Level is the current lexical level.
func (a *Analyzer) Level() int {
	return a.level
}

// Display returns a copy of the stack of visible block indices.
func (a *Analyzer) Display() []int {
	return append([]int(nil), a.display...)
}

func (a *Analyzer) fail(pos lexer.Position, format string, args ...any) {
	panic(&Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (a *Analyzer) enterScope() int {
	a.tables.Btab = append(a.tables.Btab, BlockEntry{})
	b := len(a.tables.Btab) - 1
	a.level++
	a.display = append(a.display, b)
	log.Debugf("enter block %d at level %d", b, a.level)
	return b
}

func (a *Analyzer) exitScope() {
	log.Debugf("exit block %d at level %d", a.currentBlock(), a.level)
	a.display = a.display[:len(a.display)-1]
	a.level--
}

func (a *Analyzer) currentBlock() int {
	return a.display[a.level]
}

// declare enters id into the current scope and returns its index.
func (a *Analyzer) declare(id string, kind Kind, pos lexer.Position) int {
	b := a.currentBlock()
	for i := a.tables.Btab[b].Last; i != 0; i = a.tables.Tab[i].Link {
		if a.tables.Tab[i].ID == id {
			a.fail(pos, "Duplicate identifier '%s'", id)
		}
	}

	e := Entry{
		ID:    id,
		Kind:  kind,
		Level: a.level,
		Link:  a.tables.Btab[b].Last,
		Pos:   pos,
	}
	if kind == KindVariable {
		e.Adr = a.tables.Btab[b].VarCount
		a.tables.Btab[b].VarCount++
	}
	a.tables.Tab = append(a.tables.Tab, e)
	index := len(a.tables.Tab) - 1
	a.tables.Btab[b].Last = index
	log.Debugf("declare %s %s as %d in block %d", kind, id, index, b)
	return index
}

// find searches the visible scopes innermost first, then the built-ins.
func (a *Analyzer) find(id string) (int, bool) {
	for l := a.level; l >= 0; l-- {
		for i := a.tables.Btab[a.display[l]].Last; i != 0; i = a.tables.Tab[i].Link {
			if a.tables.Tab[i].ID == id {
				return i, true
			}
		}
	}
	return a.tables.Reserved(id)
}

func (a *Analyzer) lookup(leaf *parser.Leaf) int {
	id := leaf.Token.Text
	index, ok := a.find(id)
	if !ok {
		a.fail(leaf.Pos(), "Identifier '%s' undeclared", id)
	}
	return index
}

func (a *Analyzer) entry(index int) *Entry {
	return &a.tables.Tab[index]
}

// decorate builds the decoration of a node that names the symbol at index.
func (a *Analyzer) decorate(index int, pos lexer.Position) ast.Decoration {
	e := a.entry(index)
	return ast.Decoration{Type: e.Type, Symbol: index, Level: e.Level, Pos: pos}
}

func (a *Analyzer) program(tree *parser.Interior) *ast.Program {
	header := tree.FirstOf(parser.SymProgramHeader)
	name := header.Leaves(lexer.KindIdentifier)[0]
	index := a.declare(name.Token.Text, KindProgram, name.Pos())

	decls := a.declarationPart(tree.FirstOf(parser.SymDeclarationPart))

	a.enterScope()
	body := a.compound(tree.FirstOf(parser.SymCompoundStatement))
	body.Declarations = decls
	body.Level = a.level
	a.exitScope()

	return &ast.Program{
		Decoration: a.decorate(index, tree.Pos()),
		Name:       name.Token.Text,
		Block:      body,
	}
}
