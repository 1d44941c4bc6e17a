package exercise

import (
	"github.com/palabra-app/palabra/internal/catalog"
)

// MatchingItem is the single bulk-checked step of a matching exercise. The
// left and right columns are shuffled independently, so position never
// implies correctness.
type MatchingItem struct {
	Lefts  []string
	Rights []string

	want map[string]string
}

// Check passes only when every declared pair appears in the learner's match
// map. A single wrong or missing pair fails the whole exercise.
func (m MatchingItem) Check(in Input) bool {
	for left, right := range m.want {
		if in.Matches[left] != right {
			return false
		}
	}
	return true
}

// CorrectRight returns the expected right value for a left value, for the
// reveal view.
func (m MatchingItem) CorrectRight(left string) string {
	return m.want[left]
}

// Size returns the number of pairs in the run.
func (m MatchingItem) Size() int {
	return len(m.want)
}

type matchingStrategy struct{}

func (matchingStrategy) Mode() catalog.LearningMode { return catalog.ModeMatching }

func (matchingStrategy) BuildItems(m catalog.Module, cfg Config, rng Rand) []Item {
	pairs := window(shuffled(rng, m.Data.Pairs), cfg.MatchingCount)
	if len(pairs) == 0 {
		return nil
	}

	item := MatchingItem{want: make(map[string]string, len(pairs))}
	lefts := make([]string, 0, len(pairs))
	rights := make([]string, 0, len(pairs))
	for _, p := range pairs {
		item.want[p.Left] = p.Right
		lefts = append(lefts, p.Left)
		rights = append(rights, p.Right)
	}
	item.Lefts = shuffled(rng, lefts)
	item.Rights = shuffled(rng, rights)

	return []Item{item}
}
