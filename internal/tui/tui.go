package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

// Resolver is the part of the resolve service the explorer needs.
type Resolver interface {
	Resolve(rawURL string) (bundleurl.Options, bool, error)
	ProjectRoot() string
	Platforms() []string
}

func Run(r Resolver, base string, in io.Reader, out io.Writer) error {
	m := newExplorerModel(r, base)
	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui run failed: %w", err)
	}
	return nil
}
