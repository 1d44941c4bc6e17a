package catalogbrowse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/exercise"
	"github.com/palabra-app/palabra/internal/progression"
	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	sessionscreen "github.com/palabra-app/palabra/internal/screens/session"
	"github.com/palabra-app/palabra/internal/store"
	"github.com/palabra-app/palabra/internal/ui/layout"
	"github.com/palabra-app/palabra/internal/ui/theme"
)

// ModuleDetailScreen shows one module with its prerequisites and lets the
// learner start a session when the module is unlocked.
type ModuleDetailScreen struct {
	module  catalog.Module
	status  progression.Status
	missing []catalog.Module
	prereqs []catalog.Module
	best    int

	cfg      exercise.Config
	progress store.ProgressRepo
	scores   store.ScoreRepo
}

var _ screen.Screen = (*ModuleDetailScreen)(nil)
var _ screen.KeyHintProvider = (*ModuleDetailScreen)(nil)

func newModuleDetail(
	m catalog.Module,
	status progression.Status,
	missing, prereqs []catalog.Module,
	best int,
	cfg exercise.Config,
	progress store.ProgressRepo,
	scores store.ScoreRepo,
) *ModuleDetailScreen {
	return &ModuleDetailScreen{
		module:   m,
		status:   status,
		missing:  missing,
		prereqs:  prereqs,
		best:     best,
		cfg:      cfg,
		progress: progress,
		scores:   scores,
	}
}

func (d *ModuleDetailScreen) Init() tea.Cmd { return nil }
func (d *ModuleDetailScreen) Title() string { return d.module.Title }

func (d *ModuleDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	if kmsg.String() == "enter" && d.status != progression.StatusLocked {
		m, cfg, progress, scores := d.module, d.cfg, d.progress, d.scores
		return d, func() tea.Msg {
			// Replace so the session pops straight back to the catalog.
			return router.ReplaceScreenMsg{
				Screen: sessionscreen.New(m, cfg, progress, scores),
			}
		}
	}
	return d, nil
}

func (d *ModuleDetailScreen) KeyHints() []layout.KeyHint {
	if d.status == progression.StatusLocked {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *ModuleDetailScreen) View(width, height int) string {
	m := d.module
	contentWidth := width - 8
	if contentWidth > 70 {
		contentWidth = 70
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", d.status.Icon(), m.Title)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  " + d.status.Label()))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	b.WriteString(dimStyle.Render("  Mode:   ") + valStyle.Render(m.Mode.DisplayName()) + "\n")
	b.WriteString(dimStyle.Render("  Unit:   ") + valStyle.Render(fmt.Sprintf("%d", m.Unit)) + "\n")
	b.WriteString(dimStyle.Render("  Items:  ") + valStyle.Render(fmt.Sprintf("%d", m.Data.ItemCount(m.Mode))) + "\n")
	if d.status == progression.StatusCompleted {
		b.WriteString(dimStyle.Render("  Best:   ") + valStyle.Render(fmt.Sprintf("%d%%", d.best)) + "\n")
	}
	b.WriteString("\n")

	if len(d.prereqs) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Prerequisites"))
		b.WriteString("\n")
		missing := make(map[string]bool, len(d.missing))
		for _, p := range d.missing {
			missing[p.ID] = true
		}
		for _, p := range d.prereqs {
			icon := "●"
			style := lipgloss.NewStyle().Foreground(theme.Success)
			if missing[p.ID] {
				icon = "○"
				style = dimStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %s", icon, p.Title)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if d.status == progression.StatusLocked && len(d.missing) > 0 {
		titles := make([]string, len(d.missing))
		for i, p := range d.missing {
			titles[i] = p.Title
		}
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Accent).
			PaddingLeft(2).
			Render("Complete " + strings.Join(titles, ", ") + " first."))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}
