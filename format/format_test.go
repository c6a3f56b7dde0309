package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/paskal/frontend"
)

const program = `program Tes;
konstanta Pi = 3.14; Salam = 'halo';
variabel x : integer; v : larik[1..3] dari real;
mulai
  x := 1 + 2
selesai.`

func run(t *testing.T, src string) (*frontend.Result, error) {
	t.Helper()
	res, err := frontend.Run(src)
	require.NotNil(t, res)
	return res, err
}

func TestParseSections(t *testing.T) {
	tests := []struct {
		input string
		want  Section
	}{
		{"tokens", SectionTokens},
		{"tokens,tree", SectionTokens | SectionTree},
		{"tables, ast", SectionTables | SectionAST},
		{"all", SectionAll},
	}
	for _, tt := range tests {
		got, err := ParseSections(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.input)
	}
	_, err := ParseSections("tokens,bytes")
	assert.Error(t, err)
}

func TestTextEncoderAllSections(t *testing.T) {
	res, err := run(t, program)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTextEncoder(&buf, SectionAll, false).Encode(res, nil))
	out := buf.String()

	for _, want := range []string{
		"Tokens", "KEYWORD", "program",
		"Parse tree", "<program>", "<compound_statement>", "IDENTIFIER(Tes)",
		"Symbol table", "(built-in)", "variable", "constant",
		"Block table",
		"Array table",
		"Constants", "3.14", `"halo"`,
		"AST", "Program Tes", "Assign : integer", "BinOp + : integer",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextEncoderSelectedSections(t *testing.T) {
	res, err := run(t, program)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTextEncoder(&buf, SectionTokens, false).Encode(res, nil))
	assert.Contains(t, buf.String(), "Tokens")
	assert.NotContains(t, buf.String(), "Parse tree")
	assert.NotContains(t, buf.String(), "Symbol table")
}

func TestTextEncoderPrintsCompletedStagesAndError(t *testing.T) {
	res, err := run(t, "program Tes;\nmulai\n  y := 1\nselesai.")
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTextEncoder(&buf, SectionAll, false).Encode(res, err))
	out := buf.String()
	assert.Contains(t, out, "Tokens")
	assert.Contains(t, out, "Parse tree")
	assert.NotContains(t, out, "Symbol table")
	assert.Contains(t, out, "SemanticError at 3:3: Identifier 'y' undeclared")
}

func TestJSONEncoder(t *testing.T) {
	res, err := run(t, program)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, SectionAll).Encode(res, nil))

	var report struct {
		Tokens []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"tokens"`
		Tree struct {
			Symbol string `json:"symbol"`
		} `json:"tree"`
		Tables struct {
			Tab []struct {
				Index int    `json:"index"`
				ID    string `json:"id"`
				Kind  string `json:"kind"`
				Type  string `json:"type"`
			} `json:"tab"`
			Atab    []json.RawMessage `json:"atab"`
			Reals   []float64         `json:"reals"`
			Strings []string          `json:"strings"`
		} `json:"tables"`
		AST struct {
			Node string `json:"node"`
		} `json:"ast"`
		Error *struct{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	require.NotEmpty(t, report.Tokens)
	assert.Equal(t, "KEYWORD", report.Tokens[0].Kind)
	assert.Equal(t, "<program>", report.Tree.Symbol)
	assert.Equal(t, "integer", report.Tables.Tab[0].ID)
	assert.Len(t, report.Tables.Atab, 1)
	assert.Equal(t, []float64{3.14}, report.Tables.Reals)
	assert.Equal(t, []string{"halo"}, report.Tables.Strings)
	assert.Equal(t, "Program Tes", report.AST.Node)
	assert.Nil(t, report.Error)

	var x bool
	for _, e := range report.Tables.Tab {
		if e.ID == "x" {
			x = true
			assert.Equal(t, "variable", e.Kind)
			assert.Equal(t, "integer", e.Type)
		}
	}
	assert.True(t, x, "x missing from tab")
}

func TestJSONEncoderError(t *testing.T) {
	res, err := run(t, "program p; mulai x := selesai.")
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, SectionAll).Encode(res, err))

	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Contains(t, report, "tokens")
	assert.NotContains(t, report, "tree")

	var diag struct {
		Kind    string `json:"kind"`
		Stage   string `json:"stage"`
		Message string `json:"message"`
		Pos     struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"pos"`
	}
	require.NoError(t, json.Unmarshal(report["error"], &diag))
	assert.Equal(t, "SyntaxError", diag.Kind)
	assert.Equal(t, "parser", diag.Stage)
	assert.Equal(t, 1, diag.Pos.Line)
	assert.Equal(t, 23, diag.Pos.Column)
}

func TestNewEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc, err := New("json", &buf, SectionAll, false)
	require.NoError(t, err)
	assert.IsType(t, &JSONEncoder{}, enc)

	enc, err = New("", &buf, SectionAll, false)
	require.NoError(t, err)
	assert.IsType(t, &TextEncoder{}, enc)

	_, err = New("xml", &buf, SectionAll, false)
	assert.Error(t, err)
}
