package exercise

import (
	"testing"

	"github.com/palabra-app/palabra/internal/catalog"
)

func quizModule(n int) catalog.Module {
	questions := make([]catalog.Question, n)
	for i := range questions {
		questions[i] = catalog.Question{
			Prompt:  "pick a",
			Options: []string{"a", "b", "c"},
			Correct: "a",
		}
	}
	return catalog.Module{
		ID:   "quiz-test",
		Mode: catalog.ModeQuiz,
		Unit: 1,
		Data: catalog.Data{Questions: questions},
	}
}

// answerCurrent submits either the correct or a wrong option for the
// current quiz item.
func answerCurrent(t *testing.T, r *Run, correct bool) {
	t.Helper()
	q, ok := r.Current().(QuestionItem)
	if !ok {
		t.Fatalf("current item is %T, want QuestionItem", r.Current())
	}
	idx := q.CorrectIndex()
	if idx < 0 {
		t.Fatal("correct answer missing from options")
	}
	if !correct {
		idx = (idx + 1) % len(q.Options)
	}
	r.Answer(Input{OptionIndex: idx})
}

func TestRun_StateMachine(t *testing.T) {
	r := NewRun(quizModule(2), Config{}, testRng())
	if r.Phase != PhasePresenting {
		t.Fatalf("initial phase = %v, want presenting", r.Phase)
	}

	answerCurrent(t, r, true)
	if r.Phase != PhaseRevealed {
		t.Fatalf("after answer, phase = %v, want revealed", r.Phase)
	}

	r.Advance()
	if r.Phase != PhasePresenting || r.Index != 1 {
		t.Fatalf("after advance, phase = %v index = %d", r.Phase, r.Index)
	}

	answerCurrent(t, r, true)
	r.Advance()
	if !r.Finished() {
		t.Fatalf("after last advance, phase = %v, want finished", r.Phase)
	}
}

func TestRun_AnswerDebounce(t *testing.T) {
	r := NewRun(quizModule(1), Config{}, testRng())
	answerCurrent(t, r, true)

	// A second answer while revealed must be a no-op.
	r.Answer(Input{OptionIndex: 0})
	if r.Score.Total() != 1 {
		t.Errorf("score total = %d, want 1 (repeat answer ignored)", r.Score.Total())
	}
}

func TestRun_AdvanceDebounce(t *testing.T) {
	r := NewRun(quizModule(2), Config{}, testRng())

	// Advance while still presenting must be a no-op.
	r.Advance()
	if r.Index != 0 || r.Phase != PhasePresenting {
		t.Errorf("advance while presenting moved state: index=%d phase=%v", r.Index, r.Phase)
	}
}

func TestRun_EmptyDataIsNoData(t *testing.T) {
	m := catalog.Module{ID: "empty", Mode: catalog.ModeQuiz, Unit: 1}
	r := NewRun(m, Config{}, testRng())
	if r.Phase != PhaseNoData {
		t.Fatalf("phase = %v, want no-data", r.Phase)
	}
	if r.Finished() {
		t.Error("no-data run must not count as finished")
	}
}

func TestRun_UnknownModeIsNoData(t *testing.T) {
	m := catalog.Module{ID: "weird", Mode: "karaoke", Unit: 1}
	r := NewRun(m, Config{}, testRng())
	if r.Phase != PhaseNoData {
		t.Fatalf("phase = %v, want no-data", r.Phase)
	}
}

func TestRun_QuizScoring_FourOfFive(t *testing.T) {
	r := NewRun(quizModule(5), Config{}, testRng())

	for i := 0; i < 5; i++ {
		answerCurrent(t, r, i != 0) // miss the first, hit the rest
		r.Advance()
	}

	if !r.Finished() {
		t.Fatal("run should be finished")
	}
	if got := r.FinalScore(); got != 80 {
		t.Errorf("final score = %d, want 80", got)
	}

	res := r.Result()
	if res.TotalQuestions != 5 || res.CorrectAnswers != 4 {
		t.Errorf("result = %+v", res)
	}
	if res.ModuleID != "quiz-test" || res.Mode != catalog.ModeQuiz {
		t.Errorf("result = %+v", res)
	}
}

func TestRun_FlashcardsAlwaysScore100(t *testing.T) {
	m := catalog.Module{
		ID:   "cards",
		Mode: catalog.ModeFlashcard,
		Unit: 1,
		Data: catalog.Data{Cards: []catalog.Card{
			{Front: "dog", Back: "perro"},
			{Front: "cat", Back: "gato"},
			{Front: "bird", Back: "pajaro"},
		}},
	}
	r := NewRun(m, Config{}, testRng())

	for !r.Finished() {
		r.Answer(Input{})
		r.Advance()
	}

	if r.Score.Incorrect != 0 {
		t.Errorf("flashcards recorded %d incorrect answers", r.Score.Incorrect)
	}
	if got := r.FinalScore(); got != 100 {
		t.Errorf("final score = %d, want 100", got)
	}
}

func TestRun_ItemCountWindow(t *testing.T) {
	r := NewRun(quizModule(10), Config{QuizCount: 4}, testRng())
	if len(r.Items) != 4 {
		t.Errorf("got %d items, want 4", len(r.Items))
	}
}
