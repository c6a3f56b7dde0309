package lsp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/frontend"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/semantic"
)

// document is the state kept for one open file.
type document struct {
	diagnostics []protocol.Diagnostic
	// symbols is the index of the last text that analyzed cleanly, so
	// hover keeps working while the user is mid-edit.
	symbols *symbolIndex
}

// symbolIndex maps identifier tokens to the symbol table entry they name.
type symbolIndex struct {
	tokens []lexer.Token
	refs   map[lexer.Position]int
	tables *semantic.Tables
}

func newDocument(text string, opts ...frontend.Option) *document {
	res, err := frontend.Run(text, opts...)
	doc := &document{diagnostics: Diagnostics(res, err)}
	if err == nil {
		doc.symbols = indexSymbols(res)
	}
	return doc
}

// Diagnostics converts the error returned by frontend.Run into protocol
// diagnostics. The range covers the token at the error position, or one
// character when there is none.
func Diagnostics(res *frontend.Result, err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}
	d, ok := frontend.Diagnose(err)
	if !ok {
		return diagnostics
	}

	pos := d.Pos
	if !pos.IsValid() {
		pos = lexer.Position{Line: 1, Column: 1}
	}
	width := 1
	if res != nil {
		if tok, ok := tokenAt(res.Tokens, pos.Line, pos.Column); ok && tok.Pos == pos {
			width = utf8.RuneCountInString(tok.Text)
		}
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	code := protocol.IntegerOrString{Value: d.Kind()}
	return append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: toProtocol(pos.Line, pos.Column),
			End:   toProtocol(pos.Line, pos.Column+width),
		},
		Severity: &severity,
		Code:     &code,
		Source:   &source,
		Message:  d.Message,
	})
}

func toProtocol(line, column int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(line - 1),
		Character: protocol.UInteger(column - 1),
	}
}

// tokenAt finds the token covering the 1-based line and column.
func tokenAt(tokens []lexer.Token, line, column int) (lexer.Token, bool) {
	for _, tok := range tokens {
		if tok.Pos.Line != line {
			continue
		}
		end := tok.Pos.Column + utf8.RuneCountInString(tok.Text)
		if column >= tok.Pos.Column && column < end {
			return tok, true
		}
	}
	return lexer.Token{}, false
}

func indexSymbols(res *frontend.Result) *symbolIndex {
	idx := &symbolIndex{
		tokens: res.Tokens,
		refs:   make(map[lexer.Position]int),
		tables: res.Tables,
	}
	for i := semantic.FirstUserIndex; i < len(res.Tables.Tab); i++ {
		idx.refs[res.Tables.Tab[i].Pos] = i
	}
	ast.Inspect(res.Program, func(n ast.Node) bool {
		d := n.Info()
		if d.Symbol != 0 && d.Pos.IsValid() {
			if _, seen := idx.refs[d.Pos]; !seen {
				idx.refs[d.Pos] = d.Symbol
			}
		}
		return true
	})
	return idx
}

func (doc *document) hover(at protocol.Position) *protocol.Hover {
	idx := doc.symbols
	if idx == nil {
		return nil
	}
	tok, ok := tokenAt(idx.tokens, int(at.Line)+1, int(at.Character)+1)
	if !ok || tok.Kind != lexer.KindIdentifier {
		return nil
	}
	index, ok := idx.refs[tok.Pos]
	if !ok {
		return nil
	}
	start := toProtocol(tok.Pos.Line, tok.Pos.Column)
	end := toProtocol(tok.Pos.Line, tok.Pos.Column+utf8.RuneCountInString(tok.Text))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```\n" + describe(idx.tables, index) + "\n```",
		},
		Range: &protocol.Range{Start: start, End: end},
	}
}

// describe renders the declaration of the entry at index.
func describe(t *semantic.Tables, index int) string {
	e := t.Tab[index]
	switch e.Kind {
	case semantic.KindProgram:
		return "program " + e.ID
	case semantic.KindConstant:
		return fmt.Sprintf("konstanta %s = %s", e.ID, constantValue(t, e))
	case semantic.KindType:
		return fmt.Sprintf("tipe %s = %s", e.ID, typeName(t, e.Type, e.Ref))
	case semantic.KindVariable:
		return fmt.Sprintf("%s : %s", e.ID, typeName(t, e.Type, e.Ref))
	case semantic.KindProcedure:
		return "prosedur " + e.ID + params(t, index)
	case semantic.KindFunction:
		return fmt.Sprintf("fungsi %s%s : %s", e.ID, params(t, index), e.Type)
	}
	return e.ID
}

func params(t *semantic.Tables, index int) string {
	list := t.Params(index)
	if len(list) == 0 {
		return ""
	}
	parts := make([]string, len(list))
	for i, p := range list {
		e := t.Tab[p]
		parts[i] = e.ID + ": " + typeName(t, e.Type, e.Ref)
	}
	return "(" + strings.Join(parts, "; ") + ")"
}

func typeName(t *semantic.Tables, typ ast.TypeCode, ref int) string {
	if typ != ast.TypeArray || ref < 0 || ref >= len(t.Atab) {
		return typ.String()
	}
	a := t.Atab[ref]
	return fmt.Sprintf("larik[%d..%d] dari %s", a.Low, a.High, typeName(t, a.ElementType, a.ElementRef))
}

func constantValue(t *semantic.Tables, e semantic.Entry) string {
	switch e.Type {
	case ast.TypeReal:
		if e.Adr < len(t.Reals) {
			return strconv.FormatFloat(t.Reals[e.Adr], 'g', -1, 64)
		}
	case ast.TypeString:
		if e.Adr < len(t.Strings) {
			return "'" + strings.ReplaceAll(t.Strings[e.Adr], "'", "''") + "'"
		}
	case ast.TypeChar:
		return "'" + string(rune(e.Adr)) + "'"
	case ast.TypeBoolean:
		return strconv.FormatBool(e.Adr != 0)
	}
	return strconv.Itoa(e.Adr)
}
