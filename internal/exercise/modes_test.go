package exercise

import (
	"testing"

	"github.com/palabra-app/palabra/internal/catalog"
)

func TestQuestionItem_CheckByText(t *testing.T) {
	q := QuestionItem{Prompt: "?", Options: []string{"a", "b", "c"}, Correct: "b"}

	if !q.Check(Input{OptionIndex: 1}) {
		t.Error("selecting the correct option's index should pass")
	}
	if q.Check(Input{OptionIndex: 0}) || q.Check(Input{OptionIndex: 2}) {
		t.Error("selecting any other option should fail")
	}
	if q.Check(Input{OptionIndex: -1}) || q.Check(Input{OptionIndex: 3}) {
		t.Error("out-of-range indices should fail")
	}
}

func TestQuizStrategy_OptionsShuffledTextStillMatches(t *testing.T) {
	m := catalog.Module{
		ID:   "q",
		Mode: catalog.ModeQuiz,
		Unit: 1,
		Data: catalog.Data{Questions: []catalog.Question{
			{Prompt: "?", Options: []string{"a", "b", "c", "d", "e"}, Correct: "c"},
		}},
	}
	r := NewRun(m, Config{}, testRng())
	q := r.Current().(QuestionItem)

	// Whatever position "c" landed at after shuffling, text matching must
	// still identify it.
	idx := q.CorrectIndex()
	if idx < 0 {
		t.Fatal("correct answer lost during shuffle")
	}
	if !q.Check(Input{OptionIndex: idx}) {
		t.Error("correct index should pass after option shuffle")
	}
}

func TestGapItem_CaseAndWhitespaceInsensitive(t *testing.T) {
	g := GapItem{Gap: catalog.Gap{Sentence: "La capital es ___.", Correct: "paris"}}

	tests := []struct {
		input string
		want  bool
	}{
		{"paris", true},
		{" Paris ", true},
		{"PARIS", true},
		{"pariss", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := g.Check(Input{Text: tt.input}); got != tt.want {
			t.Errorf("Check(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func sortingModule() catalog.Module {
	return catalog.Module{
		ID:   "sort",
		Mode: catalog.ModeSorting,
		Unit: 1,
		Data: catalog.Data{SortWords: []catalog.SortWord{
			{Word: "apple", Category: "Fruit"},
			{Word: "pear", Category: "Fruit"},
			{Word: "carrot", Category: "Vegetable"},
		}},
	}
}

func TestSortingItem_ExactSetMatch(t *testing.T) {
	r := NewRun(sortingModule(), Config{}, testRng())
	item := r.Current().(SortingItem)

	correct := Input{Buckets: map[string][]string{
		"Fruit":     {"apple", "pear"},
		"Vegetable": {"carrot"},
	}}
	if !item.Check(correct) {
		t.Error("exact bucket assignment should pass")
	}

	missing := Input{Buckets: map[string][]string{
		"Fruit":     {"apple"},
		"Vegetable": {"carrot"},
	}}
	if item.Check(missing) {
		t.Error("missing word should fail")
	}

	extra := Input{Buckets: map[string][]string{
		"Fruit":     {"apple", "pear", "carrot"},
		"Vegetable": {"carrot"},
	}}
	if item.Check(extra) {
		t.Error("extra word should fail")
	}

	swapped := Input{Buckets: map[string][]string{
		"Fruit":     {"apple", "carrot"},
		"Vegetable": {"pear"},
	}}
	if item.Check(swapped) {
		t.Error("swapped words should fail")
	}
}

func TestSortingStrategy_WordWindow(t *testing.T) {
	words := make([]catalog.SortWord, 0, 20)
	for i := 0; i < 10; i++ {
		words = append(words,
			catalog.SortWord{Word: string(rune('a' + i)), Category: "One"},
			catalog.SortWord{Word: string(rune('k' + i)), Category: "Two"},
		)
	}
	m := catalog.Module{ID: "s", Mode: catalog.ModeSorting, Unit: 1, Data: catalog.Data{SortWords: words}}

	r := NewRun(m, Config{SortingWordCount: 6}, testRng())
	item := r.Current().(SortingItem)
	if len(item.Words) != 6 {
		t.Errorf("got %d words, want 6", len(item.Words))
	}

	// Every included category must have at least one selected word.
	counts := make(map[string]int)
	for _, w := range item.Words {
		counts[w.Category]++
	}
	for _, c := range item.Categories {
		if counts[c] == 0 {
			t.Errorf("category %q included with no words", c)
		}
	}
}

func TestSortingStrategy_CategoryLimit(t *testing.T) {
	words := []catalog.SortWord{
		{Word: "a", Category: "One"},
		{Word: "b", Category: "Two"},
		{Word: "c", Category: "Three"},
		{Word: "d", Category: "One"},
		{Word: "e", Category: "Two"},
		{Word: "f", Category: "Three"},
	}
	m := catalog.Module{ID: "s", Mode: catalog.ModeSorting, Unit: 1, Data: catalog.Data{SortWords: words}}

	r := NewRun(m, Config{SortingCategoryCount: 2}, testRng())
	item := r.Current().(SortingItem)
	if len(item.Categories) > 2 {
		t.Errorf("got %d categories, want at most 2", len(item.Categories))
	}
	for _, w := range item.Words {
		found := false
		for _, c := range item.Categories {
			if w.Category == c {
				found = true
			}
		}
		if !found {
			t.Errorf("word %q belongs to excluded category %q", w.Word, w.Category)
		}
	}
}

func matchingModule() catalog.Module {
	return catalog.Module{
		ID:   "match",
		Mode: catalog.ModeMatching,
		Unit: 1,
		Data: catalog.Data{Pairs: []catalog.Pair{
			{Left: "A", Right: "1"},
			{Left: "B", Right: "2"},
		}},
	}
}

func TestMatchingItem_BulkCheck(t *testing.T) {
	r := NewRun(matchingModule(), Config{}, testRng())
	item := r.Current().(MatchingItem)

	if !item.Check(Input{Matches: map[string]string{"A": "1", "B": "2"}}) {
		t.Error("fully correct map should pass")
	}
	// A's mapping alone being right is not enough.
	if item.Check(Input{Matches: map[string]string{"A": "1", "B": "1"}}) {
		t.Error("one wrong pair must fail the whole check")
	}
	if item.Check(Input{Matches: map[string]string{"A": "1"}}) {
		t.Error("a missing pair must fail the whole check")
	}
}

func TestMatchingStrategy_ColumnsShuffledIndependently(t *testing.T) {
	pairs := make([]catalog.Pair, 12)
	for i := range pairs {
		pairs[i] = catalog.Pair{
			Left:  string(rune('A' + i)),
			Right: string(rune('a' + i)),
		}
	}
	m := catalog.Module{ID: "m", Mode: catalog.ModeMatching, Unit: 1, Data: catalog.Data{Pairs: pairs}}

	r := NewRun(m, Config{}, testRng())
	item := r.Current().(MatchingItem)

	if len(item.Lefts) != 12 || len(item.Rights) != 12 {
		t.Fatalf("columns sized %d/%d, want 12/12", len(item.Lefts), len(item.Rights))
	}

	// With 12 pairs the odds of both columns aligning by position after
	// independent shuffles are negligible; require at least one mismatch.
	aligned := true
	for i := range item.Lefts {
		if item.CorrectRight(item.Lefts[i]) != item.Rights[i] {
			aligned = false
			break
		}
	}
	if aligned {
		t.Error("left-to-right position still implies correctness after shuffle")
	}
}

func TestReadingStrategy_PassagesThenQuestions(t *testing.T) {
	m := catalog.Module{
		ID:   "read",
		Mode: catalog.ModeReading,
		Unit: 1,
		Data: catalog.Data{Passages: []catalog.Passage{
			{
				Title: "Mi casa",
				Text:  "Vivo en una casa azul.",
				Questions: []catalog.Question{
					{Prompt: "Color?", Options: []string{"blue", "red"}, Correct: "blue"},
				},
			},
		}},
	}
	r := NewRun(m, Config{}, testRng())

	if _, ok := r.Current().(PassageItem); !ok {
		t.Fatalf("first item is %T, want PassageItem", r.Current())
	}
	r.Answer(Input{})
	r.Advance()
	if _, ok := r.Current().(QuestionItem); !ok {
		t.Fatalf("second item is %T, want QuestionItem", r.Current())
	}

	// Finish, answering the question wrong: reading is completion-based,
	// the final score is still 100.
	q := r.Current().(QuestionItem)
	wrong := (q.CorrectIndex() + 1) % len(q.Options)
	r.Answer(Input{OptionIndex: wrong})
	r.Advance()

	if !r.Finished() {
		t.Fatal("run should be finished")
	}
	if got := r.FinalScore(); got != 100 {
		t.Errorf("final score = %d, want 100 for reading", got)
	}
}
