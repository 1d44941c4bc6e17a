package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	"github.com/palabra-app/palabra/internal/store"
	"github.com/palabra-app/palabra/internal/ui/layout"
	"github.com/palabra-app/palabra/internal/ui/theme"
)

const (
	recentLimit = 50
	summaryDays = 30
)

type historyLoadedMsg struct {
	Recent []store.ProgressEntry
	Days   []store.DaySummary
	Err    error
}

// HistoryScreen displays past sessions and a per-day activity summary.
type HistoryScreen struct {
	progress store.ProgressRepo
	recent   []store.ProgressEntry
	days     []store.DaySummary
	selected int
	showDays bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(progress store.ProgressRepo) *HistoryScreen {
	return &HistoryScreen{progress: progress}
}

func (s *HistoryScreen) Init() tea.Cmd {
	progress := s.progress
	return func() tea.Msg {
		ctx := context.Background()

		recent, err := progress.Recent(ctx, recentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		days, err := progress.ByDay(ctx, summaryDays)
		if err != nil {
			return historyLoadedMsg{Recent: recent}
		}
		return historyLoadedMsg{Recent: recent, Days: days}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Sessions/Days"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.recent = msg.Recent
			s.days = msg.Days
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.showDays = !s.showDays
			s.selected = 0
			return s, nil
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < s.listLen()-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) listLen() int {
	if s.showDays {
		return len(s.days)
	}
	return len(s.recent)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.recent) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. ¡Vamos, start learning!")
	}

	if s.showDays {
		return s.viewDays(width)
	}
	return s.viewRecent(width)
}

func (s *HistoryScreen) viewRecent(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent sessions")))
	b.WriteString("\n\n")

	for i, e := range s.recent {
		dateStr := e.Timestamp.Local().Format("Jan 02, 15:04")
		mins := e.TimeSpentSecs / 60
		secs := e.TimeSpentSecs % 60

		answers := ""
		if e.TotalQuestions > 0 {
			answers = fmt.Sprintf("  %d/%d", e.CorrectAnswers, e.TotalQuestions)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s %3d%%%s  %d:%02d",
			prefix, dateStr, truncate(e.ModuleID, 24), e.Score, answers, mins, secs)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *HistoryScreen) viewDays(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Daily activity, last %d days", summaryDays))))
	b.WriteString("\n\n")

	if len(s.days) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("Nothing recorded in this window.")))
		return b.String()
	}

	for i, d := range s.days {
		mins := d.TimeSpentSecs / 60

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		sessions := "session"
		if d.Sessions != 1 {
			sessions += "s"
		}
		line := fmt.Sprintf("%s%s  %2d %s  avg %3.0f%%  %d min",
			prefix, d.Day, d.Sessions, sessions, d.AvgScore, mins)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
