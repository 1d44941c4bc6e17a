package catalog

// LearningMode identifies the exercise type a module is played with.
type LearningMode string

const (
	ModeFlashcard  LearningMode = "flashcard"
	ModeQuiz       LearningMode = "quiz"
	ModeCompletion LearningMode = "completion"
	ModeSorting    LearningMode = "sorting"
	ModeMatching   LearningMode = "matching"
	ModeReading    LearningMode = "reading"
)

// AllModes returns all learning modes in display order.
func AllModes() []LearningMode {
	return []LearningMode{
		ModeFlashcard,
		ModeQuiz,
		ModeCompletion,
		ModeSorting,
		ModeMatching,
		ModeReading,
	}
}

// Valid reports whether m is a known learning mode.
func (m LearningMode) Valid() bool {
	switch m {
	case ModeFlashcard, ModeQuiz, ModeCompletion, ModeSorting, ModeMatching, ModeReading:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for a learning mode.
func (m LearningMode) DisplayName() string {
	switch m {
	case ModeFlashcard:
		return "Flashcards"
	case ModeQuiz:
		return "Quiz"
	case ModeCompletion:
		return "Sentence Completion"
	case ModeSorting:
		return "Word Sorting"
	case ModeMatching:
		return "Matching"
	case ModeReading:
		return "Reading"
	default:
		return string(m)
	}
}

// Level is a CEFR difficulty tag.
type Level string

const (
	LevelA1 Level = "a1"
	LevelA2 Level = "a2"
	LevelB1 Level = "b1"
	LevelB2 Level = "b2"
	LevelC1 Level = "c1"
	LevelC2 Level = "c2"
)

// AllLevels returns all CEFR levels in ascending order.
func AllLevels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
}

// Valid reports whether l is a known CEFR level.
func (l Level) Valid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

const (
	// MinUnit and MaxUnit bound the curriculum unit grouping.
	MinUnit = 1
	MaxUnit = 6
)

// Module is one catalog entry describing a single learning exercise.
// Modules are immutable after loading.
type Module struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Mode          LearningMode `json:"mode"`
	Levels        []Level      `json:"levels"`
	Unit          int          `json:"unit"`
	Prerequisites []string     `json:"prerequisites"`
	DataPath      string       `json:"dataPath"`

	// Data holds the normalized mode-specific items, populated at load time.
	Data Data `json:"-"`
}

// Card is a single flashcard.
type Card struct {
	Front   string `json:"front"`
	Back    string `json:"back"`
	Example string `json:"example,omitempty"`
}

// Question is a multiple-choice question. Correct holds the answer text,
// which must appear verbatim in Options.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}

// Gap is a sentence-completion item. The sentence contains a blank the
// learner fills with Correct.
type Gap struct {
	Sentence string `json:"sentence"`
	Correct  string `json:"correct"`
	Hint     string `json:"hint,omitempty"`
}

// SortWord is a single word with its expected category.
type SortWord struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

// Pair is a canonical left/right matching pair.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Passage is a reading text with comprehension questions.
type Passage struct {
	Title     string     `json:"title,omitempty"`
	Text      string     `json:"text"`
	Questions []Question `json:"questions,omitempty"`
}

// Data holds the normalized items for a module. Only the slice matching the
// module's mode is populated.
type Data struct {
	Cards     []Card
	Questions []Question
	Gaps      []Gap
	SortWords []SortWord
	Pairs     []Pair
	Passages  []Passage
}

// ItemCount returns the number of exercise items for the given mode.
func (d Data) ItemCount(mode LearningMode) int {
	switch mode {
	case ModeFlashcard:
		return len(d.Cards)
	case ModeQuiz:
		return len(d.Questions)
	case ModeCompletion:
		return len(d.Gaps)
	case ModeSorting:
		return len(d.SortWords)
	case ModeMatching:
		return len(d.Pairs)
	case ModeReading:
		return len(d.Passages)
	default:
		return 0
	}
}

// Empty reports whether the module has no playable items.
func (d Data) Empty(mode LearningMode) bool {
	return d.ItemCount(mode) == 0
}
