package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/paskal/lexer"
)

var conformancePrograms = []string{
	"program Tes; mulai selesai.",
	wrap("", "x := 1;"),
	wrap("konstanta N = 10; Pi = -3.14; Nama = 'halo'; C = 'c'; B = true;", "writeln(N)"),
	wrap("tipe Indeks = integer; Baris = larik[1..N] dari Indeks;", ""),
	wrap("tipe Titik = rekaman x, y : real; selesai;", ""),
	wrap("variabel a, b : integer; v : larik[0..9] dari larik[1..2] dari char;", "v[a] := b"),
	wrap(`prosedur tukar(x, y : integer; z : real);
variabel t : integer;
mulai t := x; x := y; y := t selesai;
fungsi kuadrat(n : integer) : integer;
mulai kuadrat := n * n selesai;`, "tukar(1, 2, 3.0); x := kuadrat(4)"),
	wrap("", `jika a < b maka x := a selain_itu jika tidak (a = b) dan c maka x := b;
selama i <= 10 lakukan mulai i := i + 1; selesai;
untuk i := 10 turun_ke 1 lakukan tulis;
untuk i := 1 ke n bagi 2 lakukan x := x mod 3 atau false`),
	wrap("", "{ komentar } x := -a * (b + c) / d - e <> +f"),
}

var rejectedPrograms = []string{
	"program p mulai selesai.",
	"program p; mulai selesai",
	"program p; mulai x := selesai.",
	"program p; mulai x := (1 + 2 selesai.",
	"program p; variabel x integer; mulai selesai.",
	"program p; mulai jika x maka selesai.",
	"program p; mulai untuk i := 1 sampai 2 lakukan x selesai.",
	"program p; mulai selesai. x",
	"",
}

func recognizer(t *testing.T) *Recognizer {
	t.Helper()
	r, err := DefaultRecognizer()
	if err != nil {
		t.Fatalf("DefaultRecognizer: %v", err)
	}
	return r
}

func lex(t *testing.T, src string) []lexer.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(src, lexer.DefaultRules())
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return tokens
}

// The grammar document and the hand-written parser must accept the same
// programs.
func TestGrammarAgreesWithParserOnValidPrograms(t *testing.T) {
	r := recognizer(t)
	for _, src := range conformancePrograms {
		tokens := lex(t, src)
		if _, err := Parse(tokens); err != nil {
			t.Errorf("Parse(%q): %v", src, err)
		}
		if err := r.Recognize(tokens); err != nil {
			t.Errorf("Recognize(%q): %v", src, err)
		}
	}
}

func TestGrammarAgreesWithParserOnErrors(t *testing.T) {
	r := recognizer(t)
	for _, src := range rejectedPrograms {
		t.Run(src, func(t *testing.T) {
			tokens := lex(t, src)
			_, parseErr := Parse(tokens)
			recognizeErr := r.Recognize(tokens)

			var want, got *Error
			if !errors.As(parseErr, &want) {
				t.Fatalf("Parse error = %v, want *Error", parseErr)
			}
			if !errors.As(recognizeErr, &got) {
				t.Fatalf("Recognize error = %v, want *Error", recognizeErr)
			}
			if got.Pos != want.Pos {
				t.Errorf("Recognize failed at %s, Parse at %s", got.Pos, want.Pos)
			}
		})
	}
}

func TestRecognizeExpected(t *testing.T) {
	err := recognizer(t).Recognize(lex(t, "program p; mulai x := selesai."))
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	for _, want := range []string{"IDENTIFIER", "NUMBER", "'tidak'", "'('"} {
		if !strings.Contains(rerr.Expected, want) {
			t.Errorf("Expected %q does not mention %s", rerr.Expected, want)
		}
	}
	if rerr.Found == nil || rerr.Found.Text != "selesai" {
		t.Errorf("Found = %v, want selesai", rerr.Found)
	}
}

func TestRecognizerOptionsAndRepetitions(t *testing.T) {
	g, err := LoadGrammar("ops", `S = "(" { "+" | "*" } [ "-" ] ")" .`, "S")
	if err != nil {
		t.Fatalf("LoadGrammar: %v", err)
	}
	r, err := NewRecognizer(g, "S")
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}

	tests := []struct {
		input string
		ok    bool
	}{
		{"()", true},
		{"(-)", true},
		{"(+*+)", true},
		{"(+ * -)", true},
		{"(- +)", false},
		{"(--)", false},
		{"(", false},
	}
	for _, tt := range tests {
		err := r.Recognize(lex(t, tt.input))
		if (err == nil) != tt.ok {
			t.Errorf("Recognize(%q) = %v, want ok=%v", tt.input, err, tt.ok)
		}
	}
}

func TestNewRecognizerErrors(t *testing.T) {
	g, err := LoadGrammar("word", `S = word . word = "a" … "z" .`, "S")
	if err != nil {
		t.Fatalf("LoadGrammar: %v", err)
	}
	if _, err := NewRecognizer(g, "S"); err == nil {
		t.Error("NewRecognizer accepted a lexical production without a token kind")
	}
	g, _ = Grammar()
	if _, err := NewRecognizer(g, "Missing"); err == nil {
		t.Error("NewRecognizer accepted an unknown start production")
	}
}
