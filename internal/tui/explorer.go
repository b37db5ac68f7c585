package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

const maxHistory = 50

type explorerFocus int

const (
	focusInput explorerFocus = iota
	focusResult
)

type explorerKeyMap struct {
	Resolve key.Binding
	Prev    key.Binding
	Next    key.Binding
	Clear   key.Binding
	Focus   key.Binding
	Quit    key.Binding
}

func (k explorerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Resolve, k.Prev, k.Focus, k.Clear, k.Quit}
}

func (k explorerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Resolve, k.Prev, k.Next},
		{k.Focus, k.Clear, k.Quit},
	}
}

var explorerKeys = explorerKeyMap{
	Resolve: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "resolve"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑/↓", "history"),
	),
	Next: key.NewBinding(
		key.WithKeys("down"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Focus: key.NewBinding(
		key.WithKeys("esc", "tab"),
		key.WithHelp("esc", "switch focus"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type explorerModel struct {
	resolver Resolver
	base     string

	focus explorerFocus
	input textinput.Model
	vp    viewport.Model
	help  help.Model
	keys  explorerKeyMap

	width  int
	height int

	history []string
	// histPos indexes history while browsing; len(history) means "not browsing".
	histPos int
	last    string
	err     error
}

func newExplorerModel(r Resolver, base string) explorerModel {
	in := textinput.New()
	in.Placeholder = "/index.ios.bundle?dev=false"
	in.Prompt = "url> "
	in.CharLimit = 2048
	in.Focus()

	return explorerModel{
		resolver: r,
		base:     strings.TrimRight(strings.TrimSpace(base), "/"),
		focus:    focusInput,
		input:    in,
		vp:       viewport.New(0, 0),
		help:     help.New(),
		keys:     explorerKeys,
	}
}

func (m explorerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case m.focus == focusResult && key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			m.toggleFocus()
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			m.last = ""
			m.err = nil
			m.vp.SetContent("")
			return m, nil
		case m.focus == focusInput && key.Matches(msg, m.keys.Resolve):
			m.resolveInput()
			return m, nil
		case m.focus == focusInput && key.Matches(msg, m.keys.Prev):
			m.browseHistory(-1)
			return m, nil
		case m.focus == focusInput && key.Matches(msg, m.keys.Next):
			m.browseHistory(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusResult:
		m.vp, cmd = m.vp.Update(msg)
	}
	return m, cmd
}

func (m *explorerModel) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusResult
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *explorerModel) browseHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	pos := m.histPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.history) {
		m.histPos = len(m.history)
		m.input.SetValue("")
		return
	}
	m.histPos = pos
	m.input.SetValue(m.history[pos])
	m.input.CursorEnd()
}

func (m *explorerModel) resolveInput() {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return
	}
	m.remember(raw)

	full := m.expand(raw)
	m.last = full
	o, _, err := m.resolver.Resolve(full)
	if err != nil {
		m.err = err
		m.vp.SetContent("")
	} else {
		m.err = nil
		m.vp.SetContent(renderOptions(o))
	}
	m.vp.GotoTop()
	m.resize()
}

// expand prefixes path-only input with the base URL.
func (m explorerModel) expand(raw string) string {
	if strings.HasPrefix(raw, "/") && m.base != "" {
		return m.base + raw
	}
	return raw
}

func (m *explorerModel) remember(raw string) {
	if n := len(m.history); n == 0 || m.history[n-1] != raw {
		m.history = append(m.history, raw)
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
	}
	m.histPos = len(m.history)
}

func (m explorerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("bundleurl  root=%s  platforms=%s",
		m.resolver.ProjectRoot(), strings.Join(m.resolver.Platforms(), ","))))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.last != "" {
		b.WriteString(faintStyle.Render("resolved: " + m.last))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *explorerModel) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// title(2) + input(1) + resolved(1) + gap(1) + help(1)
	used := 6
	if m.err != nil {
		used += 2
	}
	avail := m.height - used
	if avail < 3 {
		avail = 3
	}
	m.vp.Width = m.width
	m.vp.Height = avail
	m.input.Width = m.width - len(m.input.Prompt) - 1
}

func renderOptions(o bundleurl.Options) string {
	rows := [][2]string{
		{"bundleType", o.BundleType.String()},
		{"entryFile", o.EntryFile},
		{"platform", orDash(o.Platform)},
		{"deltaBundleId", orDash(o.DeltaBundleID)},
		{"sourceMapUrl", orDash(o.SourceMapURL)},
		{"hot", fmt.Sprint(o.Hot)},
		{"dev", fmt.Sprint(o.Dev)},
		{"minify", fmt.Sprint(o.Minify)},
		{"excludeSource", fmt.Sprint(o.ExcludeSource)},
		{"inlineSourceMap", fmt.Sprint(o.InlineSourceMap)},
		{"runModule", fmt.Sprint(o.RunModule)},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render(fmt.Sprintf("%-16s", r[0])), r[1])
	}
	b.WriteString(keyStyle.Render("transformOptions"))
	if len(o.TransformOptions) == 0 {
		b.WriteString(" -\n")
		return b.String()
	}
	b.WriteString("\n")
	names := make([]string, 0, len(o.TransformOptions))
	for k := range o.TransformOptions {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(&b, "  %s = %v\n", k, o.TransformOptions[k])
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
