package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Content files have accumulated several field-name conventions over time:
// vocabulary pairs appear as en/es, term/definition, left/right or front/back,
// and sorting data exists both as flat {word, category} records and as
// {name, items} category groups. Normalization happens here, at the loading
// boundary, so the exercise engine only ever sees the canonical shapes.

// rawRecord is the permissive decode target for one data-file entry.
type rawRecord struct {
	// Vocabulary pair conventions, oldest first.
	En         string `json:"en"`
	Es         string `json:"es"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Left       string `json:"left"`
	Right      string `json:"right"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	Example    string `json:"example"`

	// Quiz fields. "question" is the legacy name for "prompt".
	Prompt   string   `json:"prompt"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`

	// Completion fields.
	Sentence string `json:"sentence"`
	Hint     string `json:"hint"`

	// Sorting fields, flat and grouped forms.
	Word       string        `json:"word"`
	Category   string        `json:"category"`
	Categories []rawCategory `json:"categories"`

	// Matching: some files embed all pairs in a single record.
	Pairs []rawRecord `json:"pairs"`

	// Reading fields.
	Title     string      `json:"title"`
	Text      string      `json:"text"`
	Questions []rawRecord `json:"questions"`
}

type rawCategory struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// pairFrom extracts a canonical pair from a record, trying each known
// convention in order. Returns false if no convention yields both sides.
func pairFrom(r rawRecord) (Pair, bool) {
	candidates := [][2]string{
		{r.Left, r.Right},
		{r.En, r.Es},
		{r.Term, r.Definition},
		{r.Front, r.Back},
	}
	for _, c := range candidates {
		left := strings.TrimSpace(c[0])
		right := strings.TrimSpace(c[1])
		if left != "" && right != "" {
			return Pair{Left: left, Right: right}, true
		}
	}
	return Pair{}, false
}

// questionFrom extracts a canonical question. Returns false if the record
// is missing a prompt, options or the correct answer.
func questionFrom(r rawRecord) (Question, bool) {
	prompt := strings.TrimSpace(r.Prompt)
	if prompt == "" {
		prompt = strings.TrimSpace(r.Question)
	}
	correct := strings.TrimSpace(r.Correct)
	if prompt == "" || correct == "" || len(r.Options) == 0 {
		return Question{}, false
	}
	options := make([]string, 0, len(r.Options))
	for _, o := range r.Options {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, o)
		}
	}
	if len(options) == 0 {
		return Question{}, false
	}
	return Question{Prompt: prompt, Options: options, Correct: correct}, true
}

// NormalizeData decodes a raw data file for the given mode and returns the
// canonical item set. Records that do not fit any known convention are
// skipped rather than rejected; a module whose records all fail to normalize
// simply ends up with empty data and renders as a no-data state.
func NormalizeData(mode LearningMode, raw []byte) (Data, error) {
	var records []rawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return Data{}, fmt.Errorf("decode data file: %w", err)
	}
	return normalizeRecords(mode, records), nil
}

func normalizeRecords(mode LearningMode, records []rawRecord) Data {
	var d Data
	switch mode {
	case ModeFlashcard:
		for _, r := range records {
			p, ok := pairFrom(r)
			if !ok {
				continue
			}
			d.Cards = append(d.Cards, Card{
				Front:   p.Left,
				Back:    p.Right,
				Example: strings.TrimSpace(r.Example),
			})
		}

	case ModeQuiz:
		for _, r := range records {
			if q, ok := questionFrom(r); ok {
				d.Questions = append(d.Questions, q)
			}
		}

	case ModeCompletion:
		for _, r := range records {
			sentence := strings.TrimSpace(r.Sentence)
			correct := strings.TrimSpace(r.Correct)
			if sentence == "" || correct == "" {
				continue
			}
			d.Gaps = append(d.Gaps, Gap{
				Sentence: sentence,
				Correct:  correct,
				Hint:     strings.TrimSpace(r.Hint),
			})
		}

	case ModeSorting:
		for _, r := range records {
			if len(r.Categories) > 0 {
				for _, c := range r.Categories {
					name := strings.TrimSpace(c.Name)
					if name == "" {
						continue
					}
					for _, item := range c.Items {
						if item = strings.TrimSpace(item); item != "" {
							d.SortWords = append(d.SortWords, SortWord{Word: item, Category: name})
						}
					}
				}
				continue
			}
			word := strings.TrimSpace(r.Word)
			category := strings.TrimSpace(r.Category)
			if word != "" && category != "" {
				d.SortWords = append(d.SortWords, SortWord{Word: word, Category: category})
			}
		}

	case ModeMatching:
		for _, r := range records {
			if len(r.Pairs) > 0 {
				for _, pr := range r.Pairs {
					if p, ok := pairFrom(pr); ok {
						d.Pairs = append(d.Pairs, p)
					}
				}
				continue
			}
			if p, ok := pairFrom(r); ok {
				d.Pairs = append(d.Pairs, p)
			}
		}

	case ModeReading:
		for _, r := range records {
			text := strings.TrimSpace(r.Text)
			if text == "" {
				continue
			}
			passage := Passage{
				Title: strings.TrimSpace(r.Title),
				Text:  text,
			}
			for _, qr := range r.Questions {
				if q, ok := questionFrom(qr); ok {
					passage.Questions = append(passage.Questions, q)
				}
			}
			d.Passages = append(d.Passages, passage)
		}
	}
	return d
}
