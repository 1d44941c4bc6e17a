package catalogbrowse

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/exercise"
	"github.com/palabra-app/palabra/internal/progression"
	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	"github.com/palabra-app/palabra/internal/store"
	"github.com/palabra-app/palabra/internal/ui/layout"
	"github.com/palabra-app/palabra/internal/ui/theme"
)

type rowKind int

const (
	rowUnitHeader rowKind = iota
	rowModule
)

type row struct {
	kind   rowKind
	unit   int
	module *catalog.Module
}

// stateMsg carries freshly loaded progress used for lock states and best
// scores.
type stateMsg struct {
	completed map[string]bool
	best      map[string]int
}

// BrowseScreen displays the module catalog organized by unit.
type BrowseScreen struct {
	rows         []row
	cursor       int
	scrollOffset int

	cat      *catalog.Catalog
	cfg      exercise.Config
	progress store.ProgressRepo
	scores   store.ScoreRepo

	engine *progression.Engine
	best   map[string]int
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// New creates the catalog browser. Lock states render from an empty
// progress set until Init's load completes.
func New(cat *catalog.Catalog, cfg exercise.Config, progress store.ProgressRepo, scores store.ScoreRepo) *BrowseScreen {
	var rows []row
	for _, unit := range cat.Units() {
		rows = append(rows, row{kind: rowUnitHeader, unit: unit})
		modules := cat.ByUnit(unit)
		for i := range modules {
			rows = append(rows, row{kind: rowModule, unit: unit, module: &modules[i]})
		}
	}

	s := &BrowseScreen{
		rows:     rows,
		cat:      cat,
		cfg:      cfg,
		progress: progress,
		scores:   scores,
		engine:   progression.New(cat, nil),
		best:     map[string]int{},
	}

	// Set cursor to first module row
	for i, r := range s.rows {
		if r.kind == rowModule {
			s.cursor = i
			break
		}
	}

	return s
}

func (s *BrowseScreen) Init() tea.Cmd {
	progress, scores := s.progress, s.scores
	return func() tea.Msg {
		ctx := context.Background()
		completed, err := progress.CompletedModules(ctx)
		if err != nil {
			completed = nil
		}
		best := map[string]int{}
		if all, err := scores.All(ctx); err == nil {
			for _, sc := range all {
				best[sc.ModuleID] = sc.BestScore
			}
		}
		return stateMsg{completed: completed, best: best}
	}
}

func (s *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		s.engine = progression.New(s.cat, msg.completed)
		s.best = msg.best
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextUnit()
		case "shift+tab":
			s.prevUnit()
		case "enter":
			return s, s.selectModule()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *BrowseScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\nThe catalog is empty.")
	}

	s.adjustScroll(height)

	var lines []string
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}

		switch r.kind {
		case rowUnitHeader:
			lines = append(lines, s.renderUnitHeader(r.unit, width))
		case rowModule:
			lines = append(lines, s.renderModuleRow(r, i == s.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n")
}

func (s *BrowseScreen) Title() string {
	return "Catalog"
}

func (s *BrowseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Unit"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping unit headers.
func (s *BrowseScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowModule {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextUnit jumps the cursor to the first module of the next unit.
func (s *BrowseScreen) nextUnit() {
	current := s.rows[s.cursor].unit
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowModule && s.rows[i].unit != current {
			s.cursor = i
			return
		}
	}
}

// prevUnit jumps the cursor to the first module of the previous unit.
func (s *BrowseScreen) prevUnit() {
	current := s.rows[s.cursor].unit

	prevStart := -1
	prevUnit := 0
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowModule && s.rows[i].unit != current {
			prevUnit = s.rows[i].unit
			prevStart = i
			break
		}
	}
	if prevStart < 0 {
		return
	}

	for i := prevStart; i >= 0; i-- {
		if s.rows[i].kind != rowModule || s.rows[i].unit != prevUnit {
			s.cursor = i + 1
			return
		}
	}
	s.cursor = 0
	if s.rows[0].kind != rowModule {
		s.moveCursor(1)
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *BrowseScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	// Also show the unit header above the cursor if possible
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowUnitHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// selectModule opens the detail view for the module under the cursor.
func (s *BrowseScreen) selectModule() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowModule || r.module == nil {
		return nil
	}

	m := *r.module
	detail := newModuleDetail(
		m,
		s.engine.Status(m.ID),
		s.engine.MissingPrerequisites(m.ID),
		s.cat.Prerequisites(m.ID),
		s.best[m.ID],
		s.cfg, s.progress, s.scores,
	)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

// renderUnitHeader renders a unit section header with its completion count.
func (s *BrowseScreen) renderUnitHeader(unit, width int) string {
	us := s.engine.UnitCompletion(unit)
	name := fmt.Sprintf("UNIT %d  ·  %d/%d", unit, us.Completed, us.Total)
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(name)
}

// renderModuleRow renders a single module row.
func (s *BrowseScreen) renderModuleRow(r row, selected bool, width int) string {
	if r.module == nil {
		return ""
	}

	m := *r.module
	status := s.engine.Status(m.ID)
	icon := status.Icon()
	mode := m.Mode.DisplayName()

	tail := status.Label()
	if best, ok := s.best[m.ID]; ok && status == progression.StatusCompleted {
		tail = fmt.Sprintf("Best %d%%", best)
	}

	padding := 4
	iconWidth := 3
	modeWidth := 12
	tailWidth := 10
	spacing := 4
	nameWidth := width - padding - iconWidth - modeWidth - tailWidth - spacing
	if nameWidth < 10 {
		nameWidth = 10
	}

	name := m.Title
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	var nameStyle, modeStyle, tailStyle lipgloss.Style
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		modeStyle = lipgloss.NewStyle().Foreground(theme.Primary)
		tailStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	} else {
		switch status {
		case progression.StatusCompleted:
			nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
			modeStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
			tailStyle = lipgloss.NewStyle().Foreground(theme.Success)
		case progression.StatusAvailable:
			nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
			modeStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
			tailStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
		default:
			nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
			modeStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
			tailStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	namePadded := fmt.Sprintf("%-*s", nameWidth, name)
	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		icon,
		nameStyle.Render(namePadded),
		modeStyle.Render(fmt.Sprintf("%-*s", modeWidth, mode)),
		tailStyle.Render(fmt.Sprintf("%10s", tail)),
	)
}
