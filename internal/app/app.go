package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/exercise"
	"github.com/palabra-app/palabra/internal/progression"
	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	"github.com/palabra-app/palabra/internal/screens/home"
	"github.com/palabra-app/palabra/internal/screens/welcome"
	"github.com/palabra-app/palabra/internal/store"
	"github.com/palabra-app/palabra/internal/ui/layout"
)

// Deps carries everything the TUI needs to run.
type Deps struct {
	Catalog  *catalog.Catalog
	Config   exercise.Config
	Progress store.ProgressRepo
	Scores   store.ScoreRepo
}

// escOwner is implemented by screens that intercept esc themselves (the
// session screen turns it into a quit confirmation).
type escOwner interface {
	OwnsEsc() bool
}

// countsMsg refreshes the completed/total figures shown in the header.
type countsMsg struct {
	completed int
	total     int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int

	completed int
	total     int
}

// newAppModel creates a new AppModel starting on the welcome splash.
func newAppModel(deps Deps) AppModel {
	splash := welcome.New(func() screen.Screen {
		return home.New(deps.Catalog, deps.Config, deps.Progress, deps.Scores)
	})
	return AppModel{
		deps:   deps,
		router: router.New(splash),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadCounts())
}

// loadCounts recomputes the header's module completion figures.
func (m AppModel) loadCounts() tea.Cmd {
	cat, progress := m.deps.Catalog, m.deps.Progress
	return func() tea.Msg {
		completed, err := progress.CompletedModules(context.Background())
		if err != nil {
			completed = nil
		}
		stats := progression.New(cat, completed).OverallStats()
		return countsMsg{completed: stats.Completed, total: stats.Total}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countsMsg:
		m.completed = msg.completed
		m.total = msg.total
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg, router.ReplaceScreenMsg:
		// Navigation may follow a finished session; refresh the header.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.loadCounts())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				if o, ok := m.router.Active().(escOwner); !ok || !o.OwnsEsc() {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.completed, m.total, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
