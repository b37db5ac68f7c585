package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

type fakeResolver struct {
	resolver *bundleurl.Resolver
	seen     []string
}

func (f *fakeResolver) Resolve(raw string) (bundleurl.Options, bool, error) {
	f.seen = append(f.seen, raw)
	o, err := f.resolver.Resolve(raw)
	return o, false, err
}

func (f *fakeResolver) ProjectRoot() string { return f.resolver.ProjectRoot() }

func (f *fakeResolver) Platforms() []string { return f.resolver.Platforms().Names() }

func newTestModel(t *testing.T) (explorerModel, *fakeResolver) {
	t.Helper()
	r := &fakeResolver{resolver: bundleurl.NewResolver("/srv/app", bundleurl.NewPlatformSet("ios", "android"))}
	m := newExplorerModel(r, "http://localhost:8081/")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(explorerModel), r
}

func submit(t *testing.T, m explorerModel, value string) explorerModel {
	t.Helper()
	m.input.SetValue(value)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(explorerModel)
}

func TestExplorer_ResolvesPathInput(t *testing.T) {
	m, r := newTestModel(t)
	m = submit(t, m, "/index.ios.bundle?transform.engine=hermes")

	if len(r.seen) != 1 || r.seen[0] != "http://localhost:8081/index.ios.bundle?transform.engine=hermes" {
		t.Fatalf("unexpected resolver input: %v", r.seen)
	}
	view := m.View()
	for _, want := range []string{
		"root=/srv/app",
		"platforms=android,ios",
		"/srv/app/index.js",
		"http://localhost:8081/index.ios.map?transform.engine=hermes",
		"engine = hermes",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestExplorer_ShowsErrors(t *testing.T) {
	m, _ := newTestModel(t)
	m = submit(t, m, "http://localhost/index.foo")
	if m.err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(m.View(), "error: unrecognized artifact kind") {
		t.Fatalf("error not rendered:\n%s", m.View())
	}

	m = submit(t, m, "http://localhost/index.bundle")
	if m.err != nil {
		t.Fatalf("error should clear: %v", m.err)
	}
}

func TestExplorer_History(t *testing.T) {
	m, _ := newTestModel(t)
	m = submit(t, m, "/a.bundle")
	m = submit(t, m, "/b.bundle")
	m = submit(t, m, "/b.bundle")
	if len(m.history) != 2 {
		t.Fatalf("duplicate entries should collapse: %v", m.history)
	}

	m.input.SetValue("")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(explorerModel)
	if m.input.Value() != "/b.bundle" {
		t.Fatalf("up: %q", m.input.Value())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(explorerModel)
	if m.input.Value() != "/a.bundle" {
		t.Fatalf("up again: %q", m.input.Value())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(explorerModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(explorerModel)
	if m.input.Value() != "" {
		t.Fatalf("down past the end should clear: %q", m.input.Value())
	}
}

func TestExplorer_QuitOnlyFromResult(t *testing.T) {
	m, _ := newTestModel(t)
	q := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}

	next, _ := m.Update(q)
	m = next.(explorerModel)
	if m.input.Value() != "q" {
		t.Fatalf("q should be typed into the input: %q", m.input.Value())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(explorerModel)
	if m.focus != focusResult {
		t.Fatalf("esc should move focus to the result")
	}
	_, cmd := m.Update(q)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestExplorer_Clear(t *testing.T) {
	m, _ := newTestModel(t)
	m = submit(t, m, "/a.bundle")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(explorerModel)
	if m.input.Value() != "" || m.last != "" || m.err != nil {
		t.Fatalf("clear did not reset state")
	}
}
