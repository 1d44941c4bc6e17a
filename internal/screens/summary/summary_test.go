package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/exercise"
)

func testModule() catalog.Module {
	return catalog.Module{
		ID:    "unit1-greetings-quiz",
		Title: "Greetings Quiz",
		Mode:  catalog.ModeQuiz,
		Unit:  1,
	}
}

func testResult() exercise.Result {
	return exercise.Result{
		ModuleID:       "unit1-greetings-quiz",
		Mode:           catalog.ModeQuiz,
		Score:          80,
		TotalQuestions: 10,
		CorrectAnswers: 8,
		TimeSpent:      3*time.Minute + 12*time.Second,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testModule(), testResult(), 80)
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testModule(), testResult(), 90)
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	for _, want := range []string{"80%", "8/10", "3:12", "Best: 90%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_PersonalBest(t *testing.T) {
	s := New(testModule(), testResult(), 80)
	if !strings.Contains(s.View(80, 24), "personal best") {
		t.Error("expected personal-best note when the score matches the best")
	}

	s = New(testModule(), testResult(), 95)
	if strings.Contains(s.View(80, 24), "personal best") {
		t.Error("did not expect personal-best note below the best score")
	}
}

func TestSummaryScreen_CompletionModeHidesAnswers(t *testing.T) {
	res := exercise.Result{
		ModuleID:  "unit1-cards",
		Mode:      catalog.ModeFlashcard,
		Score:     100,
		TimeSpent: time.Minute,
	}
	view := New(testModule(), res, 100).View(80, 24)
	if strings.Contains(view, "Answers:") {
		t.Error("completion-based modes have no answer tally to show")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testModule(), testResult(), 80)
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Errorf("expected a pop command for key %q", code)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testModule(), testResult(), 80)
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
