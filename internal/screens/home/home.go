package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/exercise"
	"github.com/palabra-app/palabra/internal/progression"
	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	catalogscreen "github.com/palabra-app/palabra/internal/screens/catalogbrowse"
	"github.com/palabra-app/palabra/internal/screens/history"
	"github.com/palabra-app/palabra/internal/screens/scores"
	sessionscreen "github.com/palabra-app/palabra/internal/screens/session"
	"github.com/palabra-app/palabra/internal/store"
	"github.com/palabra-app/palabra/internal/ui/components"
)

// statsMsg carries the freshly loaded progression snapshot for the dashboard.
type statsMsg struct {
	stats   progression.Stats
	next    catalog.Module
	hasNext bool
}

// HomeScreen is the main menu and progression dashboard.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string

	cat      *catalog.Catalog
	cfg      exercise.Config
	progress store.ProgressRepo
	scores   store.ScoreRepo

	stats   progression.Stats
	next    catalog.Module
	hasNext bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Progression stats are loaded asynchronously
// on Init, and reloaded every time the screen becomes active again, so the
// dashboard reflects sessions finished since the app started.
func New(cat *catalog.Catalog, cfg exercise.Config, progress store.ProgressRepo, scoreRepo store.ScoreRepo) *HomeScreen {
	h := &HomeScreen{
		cat:      cat,
		cfg:      cfg,
		progress: progress,
		scores:   scoreRepo,
	}

	h.menuLabels = []string{"START LEARNING", "CATALOG", "BEST SCORES", "HISTORY", "EXIT"}
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: h.startRecommended},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: catalogscreen.New(cat, cfg, progress, scoreRepo),
				}
			}
		}},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: scores.New(cat, scoreRepo)}
			}
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(progress)}
			}
		}},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// loadStats queries the completed-module set and rebuilds the progression
// snapshot shown on the dashboard.
func (h *HomeScreen) loadStats() tea.Cmd {
	cat, progress := h.cat, h.progress
	return func() tea.Msg {
		completed, err := progress.CompletedModules(context.Background())
		if err != nil {
			completed = nil
		}
		engine := progression.New(cat, completed)
		next, ok := engine.NextRecommended()
		return statsMsg{stats: engine.OverallStats(), next: next, hasNext: ok}
	}
}

// startRecommended resolves the next recommended module at press time, so a
// session finished moments ago counts toward unlocks.
func (h *HomeScreen) startRecommended() tea.Cmd {
	cat, cfg, progress, scoreRepo := h.cat, h.cfg, h.progress, h.scores
	return func() tea.Msg {
		completed, err := progress.CompletedModules(context.Background())
		if err != nil {
			completed = nil
		}
		next, ok := progression.New(cat, completed).NextRecommended()
		if !ok {
			return router.PushScreenMsg{
				Screen: catalogscreen.New(cat, cfg, progress, scoreRepo),
			}
		}
		return router.PushScreenMsg{
			Screen: sessionscreen.New(next, cfg, progress, scoreRepo),
		}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsMsg); ok {
		h.stats = m.stats
		h.next = m.next
		h.hasNext = m.hasNext
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height by adding
	// back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	nextTitle, nextUnit := "", 0
	if h.hasNext {
		nextTitle, nextUnit = h.next.Title, h.next.Unit
	}
	sections = append(sections, renderNextUp(nextTitle, nextUnit, cw))

	sections = append(sections, renderStatsBar(
		h.stats.Completed, h.stats.Total, h.stats.Available,
		h.stats.Percentage, cw, compact))

	if compact {
		sections = append(sections, renderHomeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderHomeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")
	return renderFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
