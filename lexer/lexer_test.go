package lexer

import (
	"errors"
	"testing"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(src, DefaultRules())
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return tokens
}

func TestLexerKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []Kind
	}{
		{"", nil},
		{"x", []Kind{KindIdentifier}},
		{"selain_itu", []Kind{KindKeyword}},
		{"nilai_1", []Kind{KindIdentifier}},
		{"42", []Kind{KindNumber}},
		{"3.14", []Kind{KindNumber}},
		{"1..10", []Kind{KindNumber, KindRange, KindNumber}},
		{"'a'", []Kind{KindChar}},
		{"'halo'", []Kind{KindString}},
		{"''", []Kind{KindString}},
		{"'it''s'", []Kind{KindString}},
		{"''''", []Kind{KindChar}},
		{"''''''", []Kind{KindString}},
		{"'''a'", []Kind{KindString}},
		{"'''' x", []Kind{KindChar, KindIdentifier}},
		{":= : ; , .", []Kind{KindAssign, KindColon, KindSemicolon, KindComma, KindDot}},
		{"( ) [ ]", []Kind{KindLParen, KindRParen, KindLBracket, KindRBracket}},
		{"+ - * /", []Kind{KindPlus, KindMinus, KindStar, KindSlash}},
		{"= <> < <= > >=", []Kind{KindEqual, KindNotEqual, KindLess, KindLessEqual, KindGreater, KindGreaterEqual}},
		{"{ komentar }x", []Kind{KindComment, KindIdentifier}},
		{"(* komentar *)x", []Kind{KindComment, KindIdentifier}},
		{"(x)", []Kind{KindLParen, KindIdentifier, KindRParen}},
		{"a[i]", []Kind{KindIdentifier, KindLBracket, KindIdentifier, KindRBracket}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(tt.expected))
			}
			for i := range tokens {
				if tokens[i].Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerMaximalMunch(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{":=", KindAssign},
		{"<=", KindLessEqual},
		{"<>", KindNotEqual},
		{">=", KindGreaterEqual},
		{"..", KindRange},
		{"123.456", KindNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens %v, want 1", len(tokens), tokens)
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != tt.input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, tt.input)
			}
		})
	}
}

func TestLexerRewindsToLastAcceptingState(t *testing.T) {
	// "1." is not a number; the scanner must give back the dot.
	tokens := tokenize(t, "1.x")
	want := []Token{
		{Kind: KindNumber, Text: "1"},
		{Kind: KindDot, Text: "."},
		{Kind: KindIdentifier, Text: "x"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i].Kind != want[i].Kind || tokens[i].Text != want[i].Text {
			t.Errorf("token %d = %v, want %v", i, tokens[i], want[i])
		}
	}
	if tokens[1].Pos.Column != 2 {
		t.Errorf("dot column = %d, want 2", tokens[1].Pos.Column)
	}
}

func TestLexerKeywordOverride(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"program", KindKeyword},
		{"PROGRAM", KindKeyword},
		{"Mulai", KindKeyword},
		{"programku", KindIdentifier},
		{"writeln", KindIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1", len(tokens))
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != tt.input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, tt.input)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := tokenize(t, "  x := 5;\n  y")
	want := []struct {
		text   string
		line   int
		column int
	}{
		{"x", 1, 3},
		{":=", 1, 5},
		{"5", 1, 8},
		{";", 1, 9},
		{"y", 2, 3},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Text != w.text || tok.Pos.Line != w.line || tok.Pos.Column != w.column {
			t.Errorf("token %d = %q at %s, want %q at %d:%d", i, tok.Text, tok.Pos, w.text, w.line, w.column)
		}
	}
}

func TestLexerProgram(t *testing.T) {
	src := "program Tes;\nvariabel x : integer;\nmulai\n  x := 1 + 2\nselesai."
	want := []Token{
		{Kind: KindKeyword, Text: "program"},
		{Kind: KindIdentifier, Text: "Tes"},
		{Kind: KindSemicolon, Text: ";"},
		{Kind: KindKeyword, Text: "variabel"},
		{Kind: KindIdentifier, Text: "x"},
		{Kind: KindColon, Text: ":"},
		{Kind: KindKeyword, Text: "integer"},
		{Kind: KindSemicolon, Text: ";"},
		{Kind: KindKeyword, Text: "mulai"},
		{Kind: KindIdentifier, Text: "x"},
		{Kind: KindAssign, Text: ":="},
		{Kind: KindNumber, Text: "1"},
		{Kind: KindPlus, Text: "+"},
		{Kind: KindNumber, Text: "2"},
		{Kind: KindKeyword, Text: "selesai"},
		{Kind: KindDot, Text: "."},
	}

	tokens := tokenize(t, src)
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
	for i := range want {
		if tokens[i].Kind != want[i].Kind || tokens[i].Text != want[i].Text {
			t.Errorf("token %d = %v, want %v", i, tokens[i], want[i])
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		tokens int
	}{
		{"unexpected character", "x @ y", 1, 3, 1},
		{"unexpected on second line", "x\n  #", 2, 3, 1},
		{"unterminated string", "x := 'abc", 1, 6, 2},
		{"unterminated comment", "{ never closed", 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, DefaultRules())
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if lexErr.Pos.Line != tt.line || lexErr.Pos.Column != tt.column {
				t.Errorf("position = %s, want %d:%d", lexErr.Pos, tt.line, tt.column)
			}
			if len(tokens) != tt.tokens {
				t.Errorf("got %d tokens before the error, want %d", len(tokens), tt.tokens)
			}
		})
	}
}

func TestLexerNextTokenEnd(t *testing.T) {
	l := New("  \n\t ", DefaultRules())
	_, ok, err := l.NextToken()
	if err != nil {
		t.Fatalf("NextToken: %v", err)
	}
	if ok {
		t.Errorf("NextToken on blank input returned a token")
	}
}
