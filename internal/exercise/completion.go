package exercise

import (
	"strings"

	"github.com/palabra-app/palabra/internal/catalog"
)

// GapItem presents one sentence-completion blank.
type GapItem struct {
	Gap catalog.Gap
}

// Check compares the typed answer against the expected word,
// case-insensitively and ignoring surrounding whitespace.
func (g GapItem) Check(in Input) bool {
	typed := strings.TrimSpace(in.Text)
	if typed == "" {
		return false
	}
	return strings.EqualFold(typed, strings.TrimSpace(g.Gap.Correct))
}

type completionStrategy struct{}

func (completionStrategy) Mode() catalog.LearningMode { return catalog.ModeCompletion }

func (completionStrategy) BuildItems(m catalog.Module, cfg Config, rng Rand) []Item {
	gaps := window(shuffled(rng, m.Data.Gaps), cfg.CompletionCount)
	items := make([]Item, 0, len(gaps))
	for _, g := range gaps {
		items = append(items, GapItem{Gap: g})
	}
	return items
}
