package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/exercise"
	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	"github.com/palabra-app/palabra/internal/ui/layout"
	"github.com/palabra-app/palabra/internal/ui/theme"
)

// SummaryScreen displays the outcome of a finished exercise session.
type SummaryScreen struct {
	module catalog.Module
	result exercise.Result
	best   int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary for a finished run. best is the module's best score
// after this session was folded in.
func New(m catalog.Module, res exercise.Result, best int) *SummaryScreen {
	return &SummaryScreen{module: m, result: res, best: best}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The session screen replaced itself with this summary, so one
			// pop lands back where the session started.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("¡Muy bien! Session complete"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", s.module.Title, s.module.Mode.DisplayName())))
	b.WriteString("\n\n")

	// Big score.
	scoreStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(scoreColor(res.Score))
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d%%", res.Score)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 48)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	mins := int(res.TimeSpent.Minutes())
	secs := int(res.TimeSpent.Seconds()) % 60

	var stats []string
	if res.TotalQuestions > 0 {
		stats = append(stats, fmt.Sprintf("Answers: %d/%d",
			res.CorrectAnswers, res.TotalQuestions))
	}
	stats = append(stats, fmt.Sprintf("Time: %d:%02d", mins, secs))
	stats = append(stats, fmt.Sprintf("Best: %d%%", s.best))

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(strings.Join(stats, "        ")))
	b.WriteString("\n\n")

	if res.Score >= s.best && res.TotalQuestions > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render("New personal best for this module!"))
		b.WriteString("\n")
	}

	return b.String()
}

// scoreColor picks the score's color band.
func scoreColor(score int) color.Color {
	switch {
	case score >= 90:
		return theme.Success
	case score >= 60:
		return theme.Primary
	default:
		return theme.Error
	}
}
