package scores

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	"github.com/palabra-app/palabra/internal/store"
	"github.com/palabra-app/palabra/internal/ui/layout"
	"github.com/palabra-app/palabra/internal/ui/theme"
)

type scoresLoadedMsg struct {
	Records []store.UserScore
	Err     error
}

// ScoresScreen lists the learner's best score for every played module.
type ScoresScreen struct {
	cat          *catalog.Catalog
	scores       store.ScoreRepo
	records      []store.UserScore
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*ScoresScreen)(nil)
var _ screen.KeyHintProvider = (*ScoresScreen)(nil)

// New creates a new ScoresScreen.
func New(cat *catalog.Catalog, scores store.ScoreRepo) *ScoresScreen {
	return &ScoresScreen{cat: cat, scores: scores}
}

func (s *ScoresScreen) Init() tea.Cmd {
	scores := s.scores
	return func() tea.Msg {
		records, err := scores.All(context.Background())
		return scoresLoadedMsg{Records: records, Err: err}
	}
}

func (s *ScoresScreen) Title() string {
	return "Best Scores"
}

func (s *ScoresScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScoresScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
			return s, nil
		case "down", "j":
			if s.scrollOffset < len(s.records)-1 {
				s.scrollOffset++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *ScoresScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading scores...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No scores yet. Finish a session first!")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d modules played\n", len(s.records))))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	maxVisible := height - 8
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := s.scrollOffset
	end := start + maxVisible
	if end > len(s.records) {
		end = len(s.records)
	}

	for i := start; i < end; i++ {
		rec := s.records[i]
		dateStr := rec.LastPlayed.Local().Format("Jan 02, 2006")

		title := rec.ModuleID
		if m, err := s.cat.Get(rec.ModuleID); err == nil {
			title = m.Title
		}
		if len(title) > 30 {
			title = title[:29] + "…"
		}

		attempts := "attempt"
		if rec.Attempts != 1 {
			attempts += "s"
		}
		line := fmt.Sprintf("  %-30s %3d%%  %2d %-8s %s",
			title, rec.BestScore, rec.Attempts, attempts, dateStr)

		style := lipgloss.NewStyle().Foreground(scoreColor(rec.BestScore))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(s.records) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(s.records)-end)))
	}

	return b.String()
}

func scoreColor(score int) color.Color {
	switch {
	case score >= 90:
		return theme.Success
	case score >= 60:
		return theme.Text
	default:
		return theme.TextDim
	}
}
