package explore

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const program = `program Tes;
variabel x : integer;
mulai
  x := 1 + 2
selesai.`

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, src string) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tes.pas")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	m := New(path)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 60})
	m, _ = update(t, m, m.Init()())
	return m
}

func TestViewBeforeWindowSize(t *testing.T) {
	assert.Equal(t, "loading...", New("tes.pas").View())
}

func TestTabs(t *testing.T) {
	m := loaded(t, program)
	require.NoError(t, m.err)

	view := m.View()
	assert.Contains(t, view, "1 Tokens")
	assert.Contains(t, view, "KEYWORD")
	assert.Contains(t, view, "ok")

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, 1, m.active)
	assert.Contains(t, m.View(), "<program>")

	m, _ = update(t, m, key("4"))
	assert.Equal(t, 3, m.active)
	assert.Contains(t, m.View(), "Program Tes")

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, 0, m.active, "wraps to the first tab")

	m, _ = update(t, m, key("shift+tab"))
	assert.Equal(t, 3, m.active, "wraps to the last tab")

	m, _ = update(t, m, key("3"))
	assert.Contains(t, m.View(), "Symbol table")
}

func TestFailedStage(t *testing.T) {
	m := loaded(t, "program Tes;\nmulai\n  y := 1\nselesai.")
	require.Error(t, m.err)

	view := m.View()
	assert.Contains(t, view, "SemanticError at 3:3: Identifier 'y' undeclared")

	m, _ = update(t, m, key("3"))
	assert.Contains(t, m.View(), "not available: the semantic stage failed")

	m, _ = update(t, m, key("2"))
	assert.Contains(t, m.View(), "<program>")
}

func TestMissingFile(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "absent.pas"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, m.Init()())
	require.Error(t, m.err)
	assert.Nil(t, m.res)
	assert.Contains(t, m.View(), "read source")
}

func TestReload(t *testing.T) {
	m := loaded(t, program)
	_, cmd := update(t, m, key("r"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(resultMsg)
	require.True(t, ok)
	assert.NoError(t, msg.err)
}

func TestQuit(t *testing.T) {
	m := loaded(t, program)
	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
