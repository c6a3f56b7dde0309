package lexer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRulesMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"initial state", `{"final_states": {}, "transition": {}}`, "initial_state"},
		{"final states", `{"initial_state": "S", "transition": {}}`, "final_states"},
		{"transition", `{"initial_state": "S", "final_states": {}}`, "transition"},
		{"unparsable", `{"initial_state": `, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.input), "test")
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseRulesInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wildcard class", `{"char_classes": {"ANY": "a-z"}, "initial_state": "S", "final_states": {}, "transition": {}}`},
		{"bad pattern", `{"char_classes": {"X": "(unclosed"}, "initial_state": "S", "final_states": {}, "transition": {}}`},
		{"unknown final kind", `{"initial_state": "S", "final_states": {"S": "BANANA"}, "transition": {}}`},
		{"unknown lookup kind", `{"initial_state": "S", "final_states": {}, "transition": {}, "lookup": {"x": "BANANA"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRules([]byte(tt.input), "test"); err == nil {
				t.Errorf("ParseRules succeeded, want error")
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	src := `{
		"char_classes": {"VOWEL": "aeiou", "LETTER": "a-z", "SIGN": "[+\\-]"},
		"initial_state": "S",
		"final_states": {},
		"transition": {}
	}`
	rs, err := ParseRules([]byte(src), "test")
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}

	tests := []struct {
		ch   rune
		want string
	}{
		{'a', "VOWEL"},
		{'b', "LETTER"},
		{'u', "VOWEL"},
		{'+', "SIGN"},
		{'-', "SIGN"},
		{';', ";"},
		{'A', "A"},
		{'é', "é"},
	}
	for _, tt := range tests {
		if got := rs.Classify(tt.ch); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.ch, got, tt.want)
		}
	}
}

func TestRegexClassSpec(t *testing.T) {
	src := `{
		"char_classes": {"WHITESPACE": "\\s", "DIGIT": "^[0-9]$"},
		"initial_state": "S",
		"final_states": {},
		"transition": {}
	}`
	rs, err := ParseRules([]byte(src), "test")
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if got := rs.Classify('\t'); got != "WHITESPACE" {
		t.Errorf("Classify(tab) = %q, want WHITESPACE", got)
	}
	if got := rs.Classify('7'); got != "DIGIT" {
		t.Errorf("Classify('7') = %q, want DIGIT", got)
	}
}

func TestDefaultRulesClassification(t *testing.T) {
	rs := DefaultRules()
	tests := []struct {
		ch   rune
		want string
	}{
		{' ', ClassWhitespace},
		{'\n', ClassWhitespace},
		{'\t', ClassWhitespace},
		{'q', "LETTER"},
		{'Q', "LETTER"},
		{'_', "LETTER"},
		{'0', "DIGIT"},
		{':', ":"},
		{'\'', "'"},
	}
	for _, tt := range tests {
		if got := rs.Classify(tt.ch); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.ch, got, tt.want)
		}
	}
}

func TestNextFallsBackToWildcard(t *testing.T) {
	rs := DefaultRules()
	if next, ok := rs.Next("STR_BODY", "LETTER"); !ok || next != "STR_BODY" {
		t.Errorf("Next(STR_BODY, LETTER) = %q, %v", next, ok)
	}
	if next, ok := rs.Next("STR_BODY", "'"); !ok || next != "STR_END" {
		t.Errorf("Next(STR_BODY, ') = %q, %v", next, ok)
	}
	if _, ok := rs.Next("IDENT", "+"); ok {
		t.Errorf("Next(IDENT, +) found a transition")
	}
	if _, ok := rs.Next("NO_SUCH_STATE", "LETTER"); ok {
		t.Errorf("Next on unknown state found a transition")
	}
}

func TestLoadRulesYAML(t *testing.T) {
	src := `
char_classes:
  WHITESPACE: " "
  DIGIT: "0-9"
initial_state: S
final_states:
  N: NUMBER
transition:
  S:
    DIGIT: N
  N:
    DIGIT: N
`
	path := filepath.Join(t.TempDir(), "digits.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	tokens, err := Tokenize("12 345", rs)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(tokens) != 2 || tokens[1].Text != "345" || tokens[1].Pos.Column != 4 {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.json"))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
}

func TestReservedWordsSorted(t *testing.T) {
	words := DefaultRules().ReservedWords()
	for i := 1; i < len(words); i++ {
		if words[i-1] > words[i] {
			t.Fatalf("words not sorted at %d: %q > %q", i, words[i-1], words[i])
		}
	}
}

func TestDefaultRulesDecodedOnce(t *testing.T) {
	if DefaultRules() != DefaultRules() {
		t.Error("DefaultRules decoded the bundled rules twice")
	}
	rs, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rs != DefaultRules() {
		t.Error("LoadRules(\"\") did not return the bundled rule set")
	}
}
