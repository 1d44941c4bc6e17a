package exercise

import (
	"github.com/palabra-app/palabra/internal/catalog"
)

// Config holds the per-mode item counts read from settings. Zero means
// "use everything the module has".
type Config struct {
	FlashcardCount       int
	QuizCount            int
	CompletionCount      int
	SortingWordCount     int
	SortingCategoryCount int
	MatchingCount        int
}

// Input carries the learner's answer for one step. Only the field matching
// the current item kind is read.
type Input struct {
	// OptionIndex selects a quiz/reading option.
	OptionIndex int

	// Text is the typed completion answer.
	Text string

	// Buckets maps category name to the words the learner placed in it.
	Buckets map[string][]string

	// Matches maps each left value to the learner's chosen right value.
	Matches map[string]string
}

// Item is one answerable step in a run. Sorting and matching exercises are
// a single bulk-checked item; the other modes produce one item per record.
type Item interface {
	// Check evaluates the learner's input against this item.
	Check(in Input) bool
}

// Strategy builds the randomized item sequence for one mode. Each mode
// supplies a strategy rather than reimplementing the run state machine.
type Strategy interface {
	Mode() catalog.LearningMode
	BuildItems(m catalog.Module, cfg Config, rng Rand) []Item
}

// strategyFor returns the strategy for a learning mode, or nil for an
// unknown mode.
func strategyFor(mode catalog.LearningMode) Strategy {
	switch mode {
	case catalog.ModeFlashcard:
		return flashcardStrategy{}
	case catalog.ModeQuiz:
		return quizStrategy{}
	case catalog.ModeCompletion:
		return completionStrategy{}
	case catalog.ModeSorting:
		return sortingStrategy{}
	case catalog.ModeMatching:
		return matchingStrategy{}
	case catalog.ModeReading:
		return readingStrategy{}
	default:
		return nil
	}
}

// completionBased reports whether finishing the run alone yields full score.
// Flashcards and reading are self-paced: there is no "incorrect" concept,
// reaching the end records 100.
func completionBased(mode catalog.LearningMode) bool {
	return mode == catalog.ModeFlashcard || mode == catalog.ModeReading
}
