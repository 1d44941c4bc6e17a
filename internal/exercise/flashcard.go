package exercise

import (
	"github.com/palabra-app/palabra/internal/catalog"
)

// CardItem presents one flashcard. Flashcards are self-paced: there is no
// grading, flipping through a card counts as correct.
type CardItem struct {
	Card catalog.Card
}

func (CardItem) Check(Input) bool { return true }

type flashcardStrategy struct{}

func (flashcardStrategy) Mode() catalog.LearningMode { return catalog.ModeFlashcard }

func (flashcardStrategy) BuildItems(m catalog.Module, cfg Config, rng Rand) []Item {
	cards := window(shuffled(rng, m.Data.Cards), cfg.FlashcardCount)
	items := make([]Item, 0, len(cards))
	for _, c := range cards {
		items = append(items, CardItem{Card: c})
	}
	return items
}
