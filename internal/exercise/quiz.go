package exercise

import (
	"strings"

	"github.com/palabra-app/palabra/internal/catalog"
)

// QuestionItem presents one multiple-choice question with its options in
// run-specific order.
type QuestionItem struct {
	Prompt  string
	Options []string
	Correct string
}

// Check compares the selected option's text against the correct answer.
// The comparison is by text, not index: the correct answer is stored as the
// answer text, which appears verbatim in Options.
func (q QuestionItem) Check(in Input) bool {
	if in.OptionIndex < 0 || in.OptionIndex >= len(q.Options) {
		return false
	}
	return strings.EqualFold(
		strings.TrimSpace(q.Options[in.OptionIndex]),
		strings.TrimSpace(q.Correct),
	)
}

// CorrectIndex returns the position of the correct answer within Options,
// or -1 if the data is inconsistent.
func (q QuestionItem) CorrectIndex() int {
	for i, o := range q.Options {
		if strings.EqualFold(strings.TrimSpace(o), strings.TrimSpace(q.Correct)) {
			return i
		}
	}
	return -1
}

type quizStrategy struct{}

func (quizStrategy) Mode() catalog.LearningMode { return catalog.ModeQuiz }

func (quizStrategy) BuildItems(m catalog.Module, cfg Config, rng Rand) []Item {
	questions := window(shuffled(rng, m.Data.Questions), cfg.QuizCount)
	items := make([]Item, 0, len(questions))
	for _, q := range questions {
		items = append(items, QuestionItem{
			Prompt: q.Prompt,
			// Each question's options are shuffled independently.
			Options: shuffled(rng, q.Options),
			Correct: q.Correct,
		})
	}
	return items
}
