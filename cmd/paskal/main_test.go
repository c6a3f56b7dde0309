package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tes = `program Tes;
variabel x : integer;
mulai
  x := 1 + 2
selesai.`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--no-color", writeFile(t, "tes.pas", tes))
	require.NoError(t, err)
	assert.Contains(t, out, "Tokens")
	assert.Contains(t, out, "Parse tree")
	assert.Contains(t, out, "Symbol table")
	assert.Contains(t, out, "Program Tes")
}

func TestCheckReportsFirstError(t *testing.T) {
	path := writeFile(t, "bad.pas", "program Tes;\nmulai\n  y := 1\nselesai.")
	out, err := execute(t, "check", "--no-color", path)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Parse tree")
	assert.Contains(t, out, "SemanticError at 3:3: Identifier 'y' undeclared")
}

func TestCheckSections(t *testing.T) {
	out, err := execute(t, "check", "--no-color", "-s", "ast", writeFile(t, "tes.pas", tes))
	require.NoError(t, err)
	assert.Contains(t, out, "Program Tes")
	assert.NotContains(t, out, "Tokens")

	_, err = execute(t, "check", "-s", "bytecode", writeFile(t, "tes.pas", tes))
	assert.Error(t, err)
}

func TestTokensStopsAfterLexing(t *testing.T) {
	path := writeFile(t, "bad.pas", "program Tes;\nmulai\n  y := 1\nselesai.")
	out, err := execute(t, "tokens", "--no-color", path)
	require.NoError(t, err)
	assert.Contains(t, out, "IDENTIFIER")
	assert.NotContains(t, out, "Parse tree")
}

func TestParseJSON(t *testing.T) {
	out, err := execute(t, "parse", "-f", "json", writeFile(t, "tes.pas", tes))
	require.NoError(t, err)

	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Contains(t, report, "tree")
	assert.NotContains(t, report, "tokens")
	assert.NotContains(t, report, "ast")
}

func TestMissingSourceFile(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "absent.pas"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigBoundPolicy(t *testing.T) {
	src := writeFile(t, "arr.pas", "program p; variabel i : integer; a : larik[i..3] dari integer; mulai selesai.")

	_, err := execute(t, "check", "--no-color", src)
	assert.ErrorIs(t, err, errReported)

	cfg := writeFile(t, "paskal.toml", "[analysis]\nbounds = \"zero\"\n")
	_, err = execute(t, "--config", cfg, "check", "--no-color", src)
	assert.NoError(t, err)

	_, err = execute(t, "--bounds", "zero", "check", "--no-color", src)
	assert.NoError(t, err)

	_, err = execute(t, "--bounds", "maybe", "check", src)
	assert.Error(t, err)
}

func TestGrammar(t *testing.T) {
	out, err := execute(t, "grammar")
	require.NoError(t, err)
	assert.Contains(t, out, "Program")
	assert.Contains(t, out, `"mulai"`)

	out, err = execute(t, "grammar", "--check")
	require.NoError(t, err)
	assert.Equal(t, "grammar.ebnf: ok\n", out)

	out, err = execute(t, "grammar", "--productions")
	require.NoError(t, err)
	assert.Contains(t, out, "Program\nProgramHeader\n")

	bad := writeFile(t, "bad.ebnf", "Program = Missing .\n")
	out, err = execute(t, "grammar", bad)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Missing")
}

func TestRules(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "LETTER")
	assert.Contains(t, out, "IDENTIFIER")
	assert.Contains(t, out, "mulai")

	_, err = execute(t, "rules", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestGrammarRecognize(t *testing.T) {
	out, err := execute(t, "grammar", "--recognize", writeFile(t, "tes.pas", tes))
	require.NoError(t, err)
	assert.Contains(t, out, "tes.pas: ok")

	// Semantic errors are not the grammar's business.
	undeclared := writeFile(t, "undeclared.pas", "program Tes;\nmulai\n  y := 1\nselesai.")
	_, err = execute(t, "grammar", "--recognize", undeclared)
	require.NoError(t, err)

	out, err = execute(t, "grammar", "--recognize", writeFile(t, "bad.pas", "program p; mulai x := selesai."))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "SyntaxError at 1:23")
}
