package exercise

import (
	"time"

	"github.com/palabra-app/palabra/internal/catalog"
)

// Phase is the run state machine position.
//
//	loading -> presenting -> revealed -> (presenting | finished)
//
// A module with no usable data goes straight to no-data; nothing is
// persisted from that state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePresenting
	PhaseRevealed
	PhaseFinished
	PhaseNoData
)

// Run is the ephemeral randomized instance of a module's data for one
// play-through. Item order is fixed for the run's lifetime.
type Run struct {
	Module catalog.Module
	Items  []Item
	Index  int
	Phase  Phase
	Score  Score

	// LastCorrect records the outcome of the most recent answer, for the
	// reveal view.
	LastCorrect bool

	StartTime time.Time
}

// NewRun builds a run for the module. If the module's data is empty or
// fails shape checks, the run starts in PhaseNoData.
func NewRun(m catalog.Module, cfg Config, rng Rand) *Run {
	r := &Run{
		Module:    m,
		Phase:     PhaseNoData,
		StartTime: time.Now(),
	}

	strat := strategyFor(m.Mode)
	if strat == nil {
		return r
	}
	items := strat.BuildItems(m, cfg, rng)
	if len(items) == 0 {
		return r
	}

	r.Items = items
	r.Phase = PhasePresenting
	return r
}

// Current returns the active item, or nil outside the answerable phases.
func (r *Run) Current() Item {
	if r.Index < 0 || r.Index >= len(r.Items) {
		return nil
	}
	return r.Items[r.Index]
}

// Answer commits the learner's input for the current item, updates the
// score and transitions to revealed. A no-op unless the run is presenting,
// which also debounces repeated submissions of the same item.
func (r *Run) Answer(in Input) bool {
	if r.Phase != PhasePresenting {
		return false
	}
	item := r.Current()
	if item == nil {
		return false
	}

	r.LastCorrect = item.Check(in)
	r.Score.Record(r.LastCorrect)
	r.Phase = PhaseRevealed
	return r.LastCorrect
}

// Advance moves past a revealed item: to the next item, or to finished when
// the last item is exhausted. A no-op while still presenting.
func (r *Run) Advance() {
	if r.Phase != PhaseRevealed {
		return
	}
	if r.Index >= len(r.Items)-1 {
		r.Phase = PhaseFinished
		return
	}
	r.Index++
	r.Phase = PhasePresenting
}

// Finished reports whether the run reached its terminal completed state.
func (r *Run) Finished() bool {
	return r.Phase == PhaseFinished
}

// FinalScore returns the 0-100 score for a finished run. Completion-based
// modes always score 100 when the run was finished at all.
func (r *Run) FinalScore() int {
	if completionBased(r.Module.Mode) {
		return 100
	}
	return r.Score.Percent()
}

// Result summarizes one finished run for persistence and the summary view.
type Result struct {
	ModuleID       string
	Mode           catalog.LearningMode
	Score          int
	TotalQuestions int
	CorrectAnswers int
	TimeSpent      time.Duration
}

// Result builds the run's outcome. Only meaningful once Finished.
func (r *Run) Result() Result {
	return Result{
		ModuleID:       r.Module.ID,
		Mode:           r.Module.Mode,
		Score:          r.FinalScore(),
		TotalQuestions: r.Score.Total(),
		CorrectAnswers: r.Score.Correct,
		TimeSpent:      time.Since(r.StartTime),
	}
}
