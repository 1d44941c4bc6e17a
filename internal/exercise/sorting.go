package exercise

import (
	"github.com/palabra-app/palabra/internal/catalog"
)

// SortingItem is the single bulk-checked step of a sorting exercise: the
// learner distributes Words into Categories, then checks once.
type SortingItem struct {
	// Words is the shuffled selection for this run.
	Words []catalog.SortWord

	// Categories are exactly those with at least one selected word, in
	// order of first appearance.
	Categories []string

	expected map[string]map[string]bool
}

// Check passes only when every category's bucket is an exact set match
// against that category's expected words: same size, every word present.
// One extra or missing word anywhere fails the whole exercise.
func (s SortingItem) Check(in Input) bool {
	for _, category := range s.Categories {
		want := s.expected[category]
		got := make(map[string]bool, len(in.Buckets[category]))
		for _, w := range in.Buckets[category] {
			got[w] = true
		}
		if len(got) != len(want) {
			return false
		}
		for w := range got {
			if !want[w] {
				return false
			}
		}
	}
	return true
}

// ExpectedCategory returns the expected category for a word, for the reveal
// view.
func (s SortingItem) ExpectedCategory(word string) string {
	for _, w := range s.Words {
		if w.Word == word {
			return w.Category
		}
	}
	return ""
}

type sortingStrategy struct{}

func (sortingStrategy) Mode() catalog.LearningMode { return catalog.ModeSorting }

// BuildItems flattens all (word, category) pairs, shuffles, then selects the
// first N words drawn from at most categoryCount distinct categories.
func (sortingStrategy) BuildItems(m catalog.Module, cfg Config, rng Rand) []Item {
	all := shuffled(rng, m.Data.SortWords)
	if len(all) == 0 {
		return nil
	}

	maxWords := cfg.SortingWordCount
	if maxWords <= 0 {
		maxWords = len(all)
	}
	maxCategories := cfg.SortingCategoryCount

	item := SortingItem{expected: make(map[string]map[string]bool)}
	seen := make(map[string]bool)
	for _, w := range all {
		if len(item.Words) >= maxWords {
			break
		}
		if !seen[w.Category] {
			if maxCategories > 0 && len(item.Categories) >= maxCategories {
				continue
			}
			seen[w.Category] = true
			item.Categories = append(item.Categories, w.Category)
			item.expected[w.Category] = make(map[string]bool)
		}
		item.Words = append(item.Words, w)
		item.expected[w.Category][w.Word] = true
	}

	if len(item.Words) == 0 {
		return nil
	}
	return []Item{item}
}
