package exercise

import (
	"github.com/palabra-app/palabra/internal/catalog"
)

// PassageItem presents a reading text. Like a flashcard, reading through a
// passage counts as correct on advance.
type PassageItem struct {
	Passage catalog.Passage
}

func (PassageItem) Check(Input) bool { return true }

type readingStrategy struct{}

func (readingStrategy) Mode() catalog.LearningMode { return catalog.ModeReading }

// BuildItems keeps passages in authored order (texts build on each other)
// and interleaves each passage with its comprehension questions, options
// shuffled per run.
func (readingStrategy) BuildItems(m catalog.Module, cfg Config, rng Rand) []Item {
	var items []Item
	for _, p := range m.Data.Passages {
		items = append(items, PassageItem{Passage: p})
		for _, q := range p.Questions {
			items = append(items, QuestionItem{
				Prompt:  q.Prompt,
				Options: shuffled(rng, q.Options),
				Correct: q.Correct,
			})
		}
	}
	return items
}
