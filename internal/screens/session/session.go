package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/exercise"
	"github.com/palabra-app/palabra/internal/router"
	"github.com/palabra-app/palabra/internal/screen"
	"github.com/palabra-app/palabra/internal/screens/summary"
	"github.com/palabra-app/palabra/internal/store"
	"github.com/palabra-app/palabra/internal/ui/components"
	"github.com/palabra-app/palabra/internal/ui/layout"
)

// SessionScreen plays one module as an exercise run. The same screen serves
// every learning mode; only the input handling and rendering switch on the
// current item's type.
type SessionScreen struct {
	run      *exercise.Run
	progress store.ProgressRepo
	scores   store.ScoreRepo

	input    components.TextInput
	selected int // option cursor for multiple-choice items

	// Sorting: cursor over words, per-word category assignment (-1 when
	// unassigned).
	sortCursor int
	sortAssign []int

	// Matching: cursor over the left column, per-left right choice (-1
	// when unchosen).
	matchCursor int
	matchChoice []int

	showQuitConfirm bool
	persisting      bool
	errMsg          string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New starts a run for the module. The run's item order is fixed here; a
// module without usable data yields a no-data screen, which never persists
// anything.
func New(m catalog.Module, cfg exercise.Config, progress store.ProgressRepo, scores store.ScoreRepo) *SessionScreen {
	s := &SessionScreen{
		run:      exercise.NewRun(m, cfg, exercise.NewRand()),
		progress: progress,
		scores:   scores,
	}
	s.resetItemState()
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SessionScreen) Title() string {
	return s.run.Module.Title
}

// OwnsEsc keeps the app's esc-to-back fallback from bypassing the quit
// confirmation.
func (s *SessionScreen) OwnsEsc() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.run.Phase {
	case exercise.PhaseRevealed:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case exercise.PhaseNoData:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	switch s.run.Current().(type) {
	case exercise.SortingItem:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Word"},
			{Key: "←→", Description: "Category"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	case exercise.MatchingItem:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Word"},
			{Key: "←→", Description: "Match"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	case exercise.CardItem, exercise.PassageItem:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Flip"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case persistedMsg:
		return s.handlePersisted(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward non-key messages (cursor blink) to the text input while a
	// completion item is active.
	if s.typingActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// typingActive reports whether the text input owns the keyboard.
func (s *SessionScreen) typingActive() bool {
	if s.showQuitConfirm || s.run.Phase != exercise.PhasePresenting {
		return false
	}
	_, ok := s.run.Current().(exercise.GapItem)
	return ok
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.run.Phase == exercise.PhaseNoData {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.persisting {
		return s, nil
	}

	if s.showQuitConfirm {
		switch key {
		case "y", "Y":
			// Leaving early records nothing; completion requires a
			// finished run.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showQuitConfirm = false
		}
		return s, nil
	}

	if s.run.Phase == exercise.PhaseRevealed {
		s.run.Advance()
		if s.run.Finished() {
			s.persisting = true
			return s, s.persistResult()
		}
		s.resetItemState()
		return s, s.input.Init()
	}

	if key == "esc" {
		s.showQuitConfirm = true
		return s, nil
	}

	switch item := s.run.Current().(type) {
	case exercise.CardItem, exercise.PassageItem:
		if key == "enter" || key == "space" || key == " " {
			s.run.Answer(exercise.Input{})
		}
	case exercise.QuestionItem:
		return s.handleQuestionKey(item, key)
	case exercise.GapItem:
		if key == "enter" {
			if s.input.Value() != "" {
				s.run.Answer(exercise.Input{Text: s.input.Value()})
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	case exercise.SortingItem:
		return s.handleSortingKey(item, key)
	case exercise.MatchingItem:
		return s.handleMatchingKey(item, key)
	}
	return s, nil
}

func (s *SessionScreen) handleQuestionKey(item exercise.QuestionItem, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(item.Options)-1 {
			s.selected++
		}
	case "enter":
		s.run.Answer(exercise.Input{OptionIndex: s.selected})
	case "1", "2", "3", "4", "5":
		idx := int(key[0] - '1')
		if idx < len(item.Options) {
			s.selected = idx
			s.run.Answer(exercise.Input{OptionIndex: idx})
		}
	}
	return s, nil
}

func (s *SessionScreen) handleSortingKey(item exercise.SortingItem, key string) (screen.Screen, tea.Cmd) {
	n := len(item.Words)
	switch key {
	case "up", "k":
		if s.sortCursor > 0 {
			s.sortCursor--
		}
	case "down", "j":
		if s.sortCursor < n-1 {
			s.sortCursor++
		}
	case "left", "h":
		s.sortAssign[s.sortCursor] = cycle(s.sortAssign[s.sortCursor], len(item.Categories), -1)
	case "right", "l", "space", " ", "tab":
		s.sortAssign[s.sortCursor] = cycle(s.sortAssign[s.sortCursor], len(item.Categories), +1)
	case "enter":
		if !allAssigned(s.sortAssign) {
			return s, nil
		}
		buckets := make(map[string][]string, len(item.Categories))
		for i, w := range item.Words {
			c := item.Categories[s.sortAssign[i]]
			buckets[c] = append(buckets[c], w.Word)
		}
		s.run.Answer(exercise.Input{Buckets: buckets})
	}
	return s, nil
}

func (s *SessionScreen) handleMatchingKey(item exercise.MatchingItem, key string) (screen.Screen, tea.Cmd) {
	n := len(item.Lefts)
	switch key {
	case "up", "k":
		if s.matchCursor > 0 {
			s.matchCursor--
		}
	case "down", "j":
		if s.matchCursor < n-1 {
			s.matchCursor++
		}
	case "left", "h":
		s.matchChoice[s.matchCursor] = cycle(s.matchChoice[s.matchCursor], len(item.Rights), -1)
	case "right", "l", "space", " ", "tab":
		s.matchChoice[s.matchCursor] = cycle(s.matchChoice[s.matchCursor], len(item.Rights), +1)
	case "enter":
		if !allAssigned(s.matchChoice) {
			return s, nil
		}
		matches := make(map[string]string, n)
		for i, left := range item.Lefts {
			matches[left] = item.Rights[s.matchChoice[i]]
		}
		s.run.Answer(exercise.Input{Matches: matches})
	}
	return s, nil
}

// resetItemState prepares the per-item input state for the current item.
func (s *SessionScreen) resetItemState() {
	s.selected = 0
	switch item := s.run.Current().(type) {
	case exercise.GapItem:
		placeholder := "Type the missing word..."
		if item.Gap.Hint != "" {
			placeholder = "Hint: " + item.Gap.Hint
		}
		s.input = components.NewTextInput(placeholder, 40)
	case exercise.SortingItem:
		s.sortCursor = 0
		s.sortAssign = unassigned(len(item.Words))
	case exercise.MatchingItem:
		s.matchCursor = 0
		s.matchChoice = unassigned(len(item.Lefts))
	}
}

// persistResult writes the finished run to the store and resolves the best
// score for the summary.
func (s *SessionScreen) persistResult() tea.Cmd {
	res := s.run.Result()
	progress, scores := s.progress, s.scores
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now().UTC()

		entry := &store.ProgressEntry{
			SessionID:      uuid.NewString(),
			ModuleID:       res.ModuleID,
			LearningMode:   string(res.Mode),
			Score:          res.Score,
			TotalQuestions: res.TotalQuestions,
			CorrectAnswers: res.CorrectAnswers,
			TimeSpentSecs:  int(res.TimeSpent.Seconds()),
			Timestamp:      now,
		}
		if err := progress.Append(ctx, entry); err != nil {
			return persistedMsg{Err: err}
		}
		if err := scores.Record(ctx, res.ModuleID, res.Score, now); err != nil {
			return persistedMsg{Err: err}
		}

		best := res.Score
		if sc, err := scores.Get(ctx, res.ModuleID); err == nil && sc != nil {
			best = sc.BestScore
		}
		return persistedMsg{BestScore: best}
	}
}

func (s *SessionScreen) handlePersisted(msg persistedMsg) (screen.Screen, tea.Cmd) {
	s.persisting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	res := s.run.Result()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(s.run.Module, res, msg.BestScore),
		}
	}
}

// cycle steps an assignment index through [0, n), treating -1 (unassigned)
// as the position before 0.
func cycle(current, n, step int) int {
	if n == 0 {
		return -1
	}
	if current < 0 {
		if step > 0 {
			return 0
		}
		return n - 1
	}
	return ((current+step)%n + n) % n
}

func allAssigned(assign []int) bool {
	for _, a := range assign {
		if a < 0 {
			return false
		}
	}
	return true
}

func unassigned(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = -1
	}
	return a
}
