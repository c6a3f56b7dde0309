package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/frontend"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
	"github.com/dhamidi/paskal/semantic"
)

type JSONEncoder struct {
	w        io.Writer
	sections Section
	res      *frontend.Result
	err      error
}

func NewJSONEncoder(w io.Writer, sections Section) *JSONEncoder {
	return &JSONEncoder{w: w, sections: sections}
}

func (e *JSONEncoder) Encode(res *frontend.Result, err error) error {
	e.res, e.err = res, err
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.buildReport(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type jsonReport struct {
	Tokens []jsonToken      `json:"tokens,omitempty"`
	Tree   *parser.Interior `json:"tree,omitempty"`
	Tables *jsonTables      `json:"tables,omitempty"`
	AST    *jsonAST         `json:"ast,omitempty"`
	Error  *jsonDiagnostic  `json:"error,omitempty"`
}

type jsonPos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonToken struct {
	Kind string  `json:"kind"`
	Text string  `json:"text"`
	Pos  jsonPos `json:"pos"`
}

type jsonTables struct {
	Tab     []jsonEntry `json:"tab"`
	Btab    []jsonBlock `json:"btab"`
	Atab    []jsonArray `json:"atab"`
	Reals   []float64   `json:"reals"`
	Strings []string    `json:"strings"`
}

type jsonEntry struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Type  string `json:"type"`
	Ref   int    `json:"ref"`
	Level int    `json:"level"`
	Adr   int    `json:"adr"`
	Link  int    `json:"link"`
}

type jsonBlock struct {
	Last       int `json:"last"`
	ParamCount int `json:"paramCount"`
	VarCount   int `json:"varCount"`
}

type jsonArray struct {
	IndexType   string `json:"indexType"`
	ElementType string `json:"elementType"`
	ElementRef  int    `json:"elementRef"`
	Low         int    `json:"low"`
	High        int    `json:"high"`
	ElemSize    int    `json:"elemSize"`
	Size        int    `json:"size"`
}

type jsonAST struct {
	Node     string     `json:"node"`
	Type     string     `json:"type,omitempty"`
	Symbol   int        `json:"symbol,omitempty"`
	Level    *int       `json:"level,omitempty"`
	Pos      *jsonPos   `json:"pos,omitempty"`
	Children []*jsonAST `json:"children,omitempty"`
}

type jsonDiagnostic struct {
	Kind    string   `json:"kind"`
	Stage   string   `json:"stage,omitempty"`
	Message string   `json:"message"`
	Pos     *jsonPos `json:"pos,omitempty"`
}

func (e *JSONEncoder) buildReport() jsonReport {
	var report jsonReport
	if res := e.res; res != nil {
		if e.sections.Has(SectionTokens) && res.Tokens != nil {
			report.Tokens = buildTokens(res.Tokens)
		}
		if e.sections.Has(SectionTree) {
			report.Tree = res.Tree
		}
		if e.sections.Has(SectionTables) && res.Tables != nil {
			report.Tables = buildTables(res.Tables)
		}
		if e.sections.Has(SectionAST) && res.Program != nil {
			report.AST = buildAST(res.Program)
		}
	}
	if e.err != nil {
		report.Error = buildDiagnostic(e.err)
	}
	return report
}

func position(p lexer.Position) *jsonPos {
	if !p.IsValid() {
		return nil
	}
	return &jsonPos{Line: p.Line, Column: p.Column}
}

func buildTokens(tokens []lexer.Token) []jsonToken {
	out := make([]jsonToken, len(tokens))
	for i, tok := range tokens {
		out[i] = jsonToken{
			Kind: string(tok.Kind),
			Text: tok.Text,
			Pos:  jsonPos{Line: tok.Pos.Line, Column: tok.Pos.Column},
		}
	}
	return out
}

func buildTables(t *semantic.Tables) *jsonTables {
	out := &jsonTables{
		Reals:   append([]float64{}, t.Reals...),
		Strings: append([]string{}, t.Strings...),
	}
	for i := 1; i < len(t.Tab); i++ {
		e := t.Tab[i]
		out.Tab = append(out.Tab, jsonEntry{
			Index: i,
			ID:    e.ID,
			Kind:  e.Kind.String(),
			Type:  e.Type.String(),
			Ref:   e.Ref,
			Level: e.Level,
			Adr:   e.Adr,
			Link:  e.Link,
		})
	}
	for _, b := range t.Btab {
		out.Btab = append(out.Btab, jsonBlock{Last: b.Last, ParamCount: b.ParamCount, VarCount: b.VarCount})
	}
	out.Atab = []jsonArray{}
	for _, a := range t.Atab {
		out.Atab = append(out.Atab, jsonArray{
			IndexType:   a.IndexType.String(),
			ElementType: a.ElementType.String(),
			ElementRef:  a.ElementRef,
			Low:         a.Low,
			High:        a.High,
			ElemSize:    a.ElemSize,
			Size:        a.Size,
		})
	}
	return out
}

func buildAST(n ast.Node) *jsonAST {
	d := n.Info()
	out := &jsonAST{Node: ast.Label(n), Pos: position(d.Pos)}
	if d.Type != ast.TypeNone {
		out.Type = d.Type.String()
	}
	if d.Symbol != 0 {
		out.Symbol = d.Symbol
		level := d.Level
		out.Level = &level
	}
	for _, child := range ast.Children(n) {
		out.Children = append(out.Children, buildAST(child))
	}
	return out
}

func buildDiagnostic(err error) *jsonDiagnostic {
	d, ok := frontend.Diagnose(err)
	if !ok {
		return &jsonDiagnostic{Kind: "Error", Message: err.Error()}
	}
	return &jsonDiagnostic{
		Kind:    d.Kind(),
		Stage:   d.Stage.String(),
		Message: d.Message,
		Pos:     position(d.Pos),
	}
}
