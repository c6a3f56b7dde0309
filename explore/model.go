// Package explore is an interactive terminal viewer for the output of
// every front end stage.
package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/paskal/format"
	"github.com/dhamidi/paskal/frontend"
)

var log = commonlog.GetLogger("paskal.explore")

type tab struct {
	title   string
	section format.Section
}

var tabs = []tab{
	{"Tokens", format.SectionTokens},
	{"Parse tree", format.SectionTree},
	{"Tables", format.SectionTables},
	{"AST", format.SectionAST},
}

const (
	headerHeight = 2
	footerHeight = 2
)

// resultMsg carries a finished pipeline run.
type resultMsg struct {
	res *frontend.Result
	err error
}

type Model struct {
	path string
	opts []frontend.Option

	width  int
	height int
	ready  bool

	active   int
	viewport viewport.Model

	res *frontend.Result
	err error
}

// New returns a viewer for the source file at path. The file is analyzed
// when the program starts and again on every reload.
func New(path string, opts ...frontend.Option) Model {
	return Model{path: path, opts: opts}
}

// Run starts the viewer on the terminal's alternate screen.
func Run(path string, opts ...frontend.Option) error {
	p := tea.NewProgram(New(path, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	res, err := frontend.RunFile(m.path, m.opts...)
	return resultMsg{res: res, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.selectTab(m.active + 1)
			return m, nil
		case "shift+tab", "left", "h":
			m.selectTab(m.active - 1)
			return m, nil
		case "1", "2", "3", "4":
			m.selectTab(int(msg.Runes[0] - '1'))
			return m, nil
		case "r":
			return m, m.load
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := max(msg.Height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.updateContent()

	case resultMsg:
		m.res, m.err = msg.res, msg.err
		if msg.err != nil {
			log.Debugf("%s: %s", m.path, msg.err)
		}
		m.updateContent()
		m.viewport.GotoTop()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// selectTab activates tab i, wrapping around at both ends.
func (m *Model) selectTab(i int) {
	m.active = (i + len(tabs)) % len(tabs)
	m.updateContent()
	m.viewport.GotoTop()
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	if m.res == nil {
		if m.err != nil {
			return m.err.Error()
		}
		return "loading " + m.path + "..."
	}
	text := format.Render(m.res, tabs[m.active].section, true)
	if text == "" {
		return helpDescStyle.Render(fmt.Sprintf("not available: the %s stage failed", m.res.Reached))
	}
	return text
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabBar(),
		m.viewport.View(),
		m.statusBar(),
		m.help(),
	)
}

func (m Model) tabBar() string {
	titles := make([]string, len(tabs))
	for i, t := range tabs {
		title := fmt.Sprintf("%d %s", i+1, t.title)
		if i == m.active {
			titles[i] = activeTabStyle.Render(title)
		} else {
			titles[i] = tabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, titles...) + "\n"
}

func (m Model) statusBar() string {
	var status string
	switch {
	case m.err != nil:
		msg := m.err.Error()
		if d, ok := frontend.Diagnose(m.err); ok {
			msg = d.String()
		}
		status = format.ErrorStyle(true).Render(msg)
	case m.res != nil:
		status = okStyle.Render("ok")
	}
	line := fmt.Sprintf("%s  %s  %3.f%%", m.path, status, m.viewport.ScrollPercent()*100)
	return statusBarStyle.Width(m.width).Render(line)
}

func (m Model) help() string {
	return strings.Join([]string{
		keyHint("tab/1-4", "switch view"),
		keyHint("↑/↓", "scroll"),
		keyHint("r", "reload"),
		keyHint("q", "quit"),
	}, "  ")
}
