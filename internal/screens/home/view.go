package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/ui/components"
	"github.com/palabra-app/palabra/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const homeTitleFull = ` ██████╗  █████╗ ██╗      █████╗ ██████╗ ██████╗  █████╗
 ██╔══██╗██╔══██╗██║     ██╔══██╗██╔══██╗██╔══██╗██╔══██╗
 ██████╔╝███████║██║     ███████║██████╔╝██████╔╝███████║
 ██╔═══╝ ██╔══██║██║     ██╔══██║██╔══██╗██╔══██╗██╔══██║
 ██║     ██║  ██║███████╗██║  ██║██████╔╝██║  ██║██║  ██║
 ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const homeTitleCompact = "P · A · L · A · B · R · A"

// contentWidth returns the uniform inner width used for all sections.
// All boxes are rendered at this width so they visually align.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := homeTitleFull
	if compact {
		art = homeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders catalog completion in a bordered box matching
// content width.
func renderStatsBar(completed, total, available, percentage, cw int, compact bool) string {
	completedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	availableStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	pctStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			completedStyle.Render(fmt.Sprintf("✓%d/%d", completed, total)),
			availableStyle.Render(fmt.Sprintf("◇%d", available)),
			pctStyle.Render(fmt.Sprintf("%d%%", percentage)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			completedStyle.Render(fmt.Sprintf("✓ %d/%d COMPLETED", completed, total)),
			availableStyle.Render(fmt.Sprintf("◇ %d UNLOCKED", available)),
			pctStyle.Render(fmt.Sprintf("%d%% OF THE COURSE", percentage)),
		)
		bar := components.NewProgressBar("", float64(percentage)/100, false, cw-6)
		stats += "\n" + bar.View()
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderNextUp renders the recommended-module line under the stats bar.
func renderNextUp(title string, unit, cw int) string {
	if title == "" {
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw).
			Align(lipgloss.Center).
			Render("Every unlocked module is done — browse the catalog to replay")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Up next · Unit %d:", unit)),
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title),
		))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderHomeMenu renders each menu item as a fixed-width button.
func renderHomeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderHomeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderHomeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderFrame wraps content in a double-border frame, centered vertically
// and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
