package parser

import "testing"

func TestEmbeddedGrammarVerifies(t *testing.T) {
	g, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	for _, name := range []string{"Program", "Statement", "Factor", "identifier"} {
		if g[name] == nil {
			t.Errorf("production %s missing", name)
		}
	}
}

func TestProductionsInSourceOrder(t *testing.T) {
	names := Productions()
	if len(names) == 0 {
		t.Fatal("no productions")
	}
	if names[0] != StartProduction {
		t.Errorf("first production = %s, want %s", names[0], StartProduction)
	}
	for _, name := range names {
		if isLexical(name) {
			t.Errorf("lexical production %s listed", name)
		}
	}
}

func TestLoadGrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `Program = "a" `},
		{"undefined", `Program = Missing .`},
		{"unreachable", `Program = "a" . Other = "b" .`},
		{"lexical references syntax", `Program = word . word = Program .`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadGrammar(tt.name, tt.src, StartProduction); err == nil {
				t.Errorf("LoadGrammar succeeded, want error")
			}
		})
	}
}
