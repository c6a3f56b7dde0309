package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/frontend"
	"github.com/dhamidi/paskal/parser"
	"github.com/dhamidi/paskal/semantic"
)

// TextEncoder prints tables and trees for a terminal.
type TextEncoder struct {
	w        io.Writer
	sections Section
	styles   styles
	res      *frontend.Result
	err      error
}

func NewTextEncoder(w io.Writer, sections Section, color bool) *TextEncoder {
	return &TextEncoder{w: w, sections: sections, styles: newStyles(color)}
}

func (e *TextEncoder) Encode(res *frontend.Result, err error) error {
	e.res, e.err = res, err
	return write(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var parts []string
	if e.res != nil {
		parts = renderSections(e.res, e.sections, e.styles)
	}
	if e.err != nil {
		msg := e.err.Error()
		if d, ok := frontend.Diagnose(e.err); ok {
			msg = d.String()
		}
		parts = append(parts, e.styles.err.Render(msg))
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return []byte(strings.Join(parts, "\n\n") + "\n"), nil
}

// Render returns the text rendering of the selected sections of res.
// Sections whose stage did not complete are left out.
func Render(res *frontend.Result, sections Section, color bool) string {
	return strings.Join(renderSections(res, sections, newStyles(color)), "\n\n")
}

func renderSections(res *frontend.Result, sections Section, s styles) []string {
	var parts []string
	add := func(title, body string) {
		parts = append(parts, s.heading.Render(title)+"\n"+body)
	}
	if sections.Has(SectionTokens) && res.Tokens != nil {
		add("Tokens", tokenTable(res, s))
	}
	if sections.Has(SectionTree) && res.Tree != nil {
		add("Parse tree", parseTree(res.Tree))
	}
	if sections.Has(SectionTables) && res.Tables != nil {
		add("Symbol table", symbolTable(res.Tables, s))
		add("Block table", blockTable(res.Tables, s))
		if len(res.Tables.Atab) > 0 {
			add("Array table", arrayTable(res.Tables, s))
		}
		if pools := constantPools(res.Tables, s); pools != "" {
			add("Constants", pools)
		}
	}
	if sections.Has(SectionAST) && res.Program != nil {
		add("AST", astTree(res.Program, s))
	}
	return parts
}

func (s styles) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.muted).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
}

// tokenTable renders the token list as a table.
func tokenTable(res *frontend.Result, s styles) string {
	t := s.table("#", "Kind", "Text", "Line", "Col")
	for i, tok := range res.Tokens {
		t.Row(strconv.Itoa(i), string(tok.Kind), tok.Text,
			strconv.Itoa(tok.Pos.Line), strconv.Itoa(tok.Pos.Column))
	}
	return t.String()
}

// parseTree renders the parse tree with one line per node.
func parseTree(root *parser.Interior) string {
	return parseTreeNode(root).String()
}

func parseTreeNode(n *parser.Interior) *tree.Tree {
	t := tree.Root(string(n.Symbol))
	for _, child := range n.Children {
		switch c := child.(type) {
		case *parser.Leaf:
			t.Child(c.String())
		case *parser.Interior:
			t.Child(parseTreeNode(c))
		}
	}
	return t
}

// symbolTable renders the entries declared by the program. The built-in
// entries are summarized in one row.
func symbolTable(tables *semantic.Tables, s styles) string {
	t := s.table("#", "ID", "Kind", "Type", "Ref", "Level", "Adr", "Link")
	t.Row(fmt.Sprintf("1-%d", semantic.FirstUserIndex-1), "(built-in)", "", "", "", "", "", "")
	for i, e := range tables.UserEntries() {
		t.Row(strconv.Itoa(semantic.FirstUserIndex+i), e.ID, e.Kind.String(), e.Type.String(),
			strconv.Itoa(e.Ref), strconv.Itoa(e.Level), strconv.Itoa(e.Adr), strconv.Itoa(e.Link))
	}
	return t.String()
}

func blockTable(tables *semantic.Tables, s styles) string {
	t := s.table("#", "Last", "Params", "Vars")
	for i, b := range tables.Btab {
		t.Row(strconv.Itoa(i), strconv.Itoa(b.Last), strconv.Itoa(b.ParamCount), strconv.Itoa(b.VarCount))
	}
	return t.String()
}

func arrayTable(tables *semantic.Tables, s styles) string {
	t := s.table("#", "Index", "Element", "ERef", "Low", "High", "ElemSize", "Size")
	for i, a := range tables.Atab {
		t.Row(strconv.Itoa(i), a.IndexType.String(), a.ElementType.String(), strconv.Itoa(a.ElementRef),
			strconv.Itoa(a.Low), strconv.Itoa(a.High), strconv.Itoa(a.ElemSize), strconv.Itoa(a.Size))
	}
	return t.String()
}

// constantPools renders the real and string constant tables, or "" when
// both are empty.
func constantPools(tables *semantic.Tables, s styles) string {
	if len(tables.Reals) == 0 && len(tables.Strings) == 0 {
		return ""
	}
	t := s.table("Pool", "#", "Value")
	for i, r := range tables.Reals {
		t.Row("real", strconv.Itoa(i), strconv.FormatFloat(r, 'g', -1, 64))
	}
	for i, str := range tables.Strings {
		t.Row("string", strconv.Itoa(i), strconv.Quote(str))
	}
	return t.String()
}

// astTree renders the decorated tree. Each node shows its type and, when it
// names a symbol, the symbol index and level.
func astTree(prog *ast.Program, s styles) string {
	return astNode(prog, s).String()
}

func astNode(n ast.Node, s styles) *tree.Tree {
	t := tree.Root(astLabel(n, s))
	for _, child := range ast.Children(n) {
		t.Child(astNode(child, s))
	}
	return t
}

func astLabel(n ast.Node, s styles) string {
	d := n.Info()
	label := ast.Label(n)
	if d.Type != ast.TypeNone {
		label += " : " + s.typ.Render(d.Type.String())
	}
	if d.Symbol != 0 {
		label += s.muted.Render(fmt.Sprintf(" [sym %d, level %d]", d.Symbol, d.Level))
	}
	return label
}
