package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/exercise"
	"github.com/palabra-app/palabra/internal/ui/components"
	"github.com/palabra-app/palabra/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.run.Phase == exercise.PhaseNoData:
		return renderNoData(width)
	case s.persisting:
		return centeredDim(width, "\n\n\n  Saving your session...")
	case s.showQuitConfirm:
		return renderQuitConfirm(width)
	case s.run.Phase == exercise.PhaseRevealed:
		return s.renderReveal(width)
	default:
		return s.renderItem(width)
	}
}

// renderItem renders the active item with its progress line.
func (s *SessionScreen) renderItem(width int) string {
	var b strings.Builder
	b.WriteString(s.renderProgressLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch item := s.run.Current().(type) {
	case exercise.CardItem:
		b.WriteString(s.renderCard(item, width))
	case exercise.QuestionItem:
		b.WriteString(s.renderQuestion(item, width))
	case exercise.GapItem:
		b.WriteString(s.renderGap(item, width))
	case exercise.SortingItem:
		b.WriteString(s.renderSorting(item, width))
	case exercise.MatchingItem:
		b.WriteString(s.renderMatching(item, width))
	case exercise.PassageItem:
		b.WriteString(s.renderPassage(item, width))
	}
	return b.String()
}

func (s *SessionScreen) renderProgressLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.run.Module.Mode.DisplayName())

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d  %s %d",
			s.run.Index+1,
			len(s.run.Items),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.run.Score.Correct,
		))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *SessionScreen) renderCard(item exercise.CardItem, width int) string {
	front := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(item.Card.Front)
	card := components.Card(front, components.ContentWidth(width))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card))
	b.WriteString("\n\n")
	b.WriteString(centeredDim(width, "Press Enter to flip"))
	return b.String()
}

func (s *SessionScreen) renderQuestion(item exercise.QuestionItem, width int) string {
	var b strings.Builder
	b.WriteString(centeredBold(width, item.Prompt))
	b.WriteString("\n\n")

	var opts strings.Builder
	for i, opt := range item.Options {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)
		if i == s.selected {
			opts.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			opts.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		opts.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.String()))
	return b.String()
}

func (s *SessionScreen) renderGap(item exercise.GapItem, width int) string {
	var b strings.Builder
	b.WriteString(centeredBold(width, item.Gap.Sentence))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))
	return b.String()
}

func (s *SessionScreen) renderSorting(item exercise.SortingItem, width int) string {
	var b strings.Builder
	b.WriteString(centeredBold(width, "Sort each word into its category"))
	b.WriteString("\n")
	b.WriteString(centeredDim(width, strings.Join(item.Categories, "  ·  ")))
	b.WriteString("\n\n")

	var rows strings.Builder
	for i, w := range item.Words {
		prefix := "  "
		if i == s.sortCursor {
			prefix = "▸ "
		}
		assigned := "—"
		if s.sortAssign[i] >= 0 {
			assigned = item.Categories[s.sortAssign[i]]
		}
		line := fmt.Sprintf("%s%-18s %s", prefix, w.Word, assigned)
		switch {
		case i == s.sortCursor:
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		case s.sortAssign[i] >= 0:
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		default:
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		}
		rows.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rows.String()))

	if allAssigned(s.sortAssign) {
		b.WriteString("\n")
		b.WriteString(centeredDim(width, "Enter to check"))
	}
	return b.String()
}

func (s *SessionScreen) renderMatching(item exercise.MatchingItem, width int) string {
	var b strings.Builder
	b.WriteString(centeredBold(width, "Match each word with its translation"))
	b.WriteString("\n\n")

	var rows strings.Builder
	for i, left := range item.Lefts {
		prefix := "  "
		if i == s.matchCursor {
			prefix = "▸ "
		}
		chosen := "—"
		if s.matchChoice[i] >= 0 {
			chosen = item.Rights[s.matchChoice[i]]
		}
		line := fmt.Sprintf("%s%-18s ⇄  %s", prefix, left, chosen)
		switch {
		case i == s.matchCursor:
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		case s.matchChoice[i] >= 0:
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		default:
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		}
		rows.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rows.String()))

	if allAssigned(s.matchChoice) {
		b.WriteString("\n")
		b.WriteString(centeredDim(width, "Enter to check"))
	}
	return b.String()
}

func (s *SessionScreen) renderPassage(item exercise.PassageItem, width int) string {
	var b strings.Builder
	if item.Passage.Title != "" {
		b.WriteString(centeredBold(width, item.Passage.Title))
		b.WriteString("\n\n")
	}
	text := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Render(item.Passage.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
	b.WriteString("\n\n")
	b.WriteString(centeredDim(width, "Press Enter when you have finished reading"))
	return b.String()
}

// renderReveal renders the feedback overlay after an answer.
func (s *SessionScreen) renderReveal(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	switch item := s.run.Current().(type) {
	case exercise.CardItem:
		b.WriteString(centeredBold(width, item.Card.Front))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Bold(true).
			Render(item.Card.Back))
		if item.Card.Example != "" {
			b.WriteString("\n\n")
			b.WriteString(centeredDim(width, item.Card.Example))
		}
	case exercise.PassageItem:
		b.WriteString(centeredDim(width, "Now answer the questions about what you read."))
	default:
		if s.run.LastCorrect {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render("¡Correcto!"))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Bold(true).
				Render("Not quite"))
			b.WriteString("\n")
			b.WriteString(centeredDim(width, s.revealAnswer()))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(centeredDim(width, "Press any key to continue..."))
	return b.String()
}

// revealAnswer formats the expected answer for the current item kind.
func (s *SessionScreen) revealAnswer() string {
	switch item := s.run.Current().(type) {
	case exercise.QuestionItem:
		return fmt.Sprintf("Correct answer: %s", item.Correct)
	case exercise.GapItem:
		return fmt.Sprintf("Correct answer: %s", item.Gap.Correct)
	case exercise.SortingItem:
		var parts []string
		for _, w := range item.Words {
			parts = append(parts, fmt.Sprintf("%s → %s", w.Word, w.Category))
		}
		return strings.Join(parts, "   ")
	case exercise.MatchingItem:
		var parts []string
		for _, left := range item.Lefts {
			parts = append(parts, fmt.Sprintf("%s → %s", left, item.CorrectRight(left)))
		}
		return strings.Join(parts, "   ")
	default:
		return ""
	}
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centeredBold(width, "Leave this exercise?"))
	b.WriteString("\n")
	b.WriteString(centeredDim(width, "An unfinished exercise is not recorded."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func renderNoData(width int) string {
	return centeredDim(width,
		"\n\n\n  This module has no exercises yet.\n\n  Press any key to go back.")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func centeredBold(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(text)
}

func centeredDim(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(text)
}
