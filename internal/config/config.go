package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/palabra-app/palabra/internal/exercise"
)

// Config holds application configuration loaded from the config file and
// environment variables. Every field has a sane default; a missing config
// file is not an error.
type Config struct {
	Flashcard  Flashcard  `mapstructure:"flashcard"`
	Quiz       Quiz       `mapstructure:"quiz"`
	Completion Completion `mapstructure:"completion"`
	Sorting    Sorting    `mapstructure:"sorting"`
	Matching   Matching   `mapstructure:"matching"`
	UI         UI         `mapstructure:"ui"`
	Content    Content    `mapstructure:"content"`
}

type Flashcard struct {
	CardCount int `mapstructure:"card_count"`
}

type Quiz struct {
	QuestionCount int `mapstructure:"question_count"`
}

type Completion struct {
	SentenceCount int `mapstructure:"sentence_count"`
}

type Sorting struct {
	WordCount     int `mapstructure:"word_count"`
	CategoryCount int `mapstructure:"category_count"`
}

type Matching struct {
	PairCount int `mapstructure:"pair_count"`
}

type UI struct {
	Language string `mapstructure:"language"` // interface language: "en" or "es"
	Theme    string `mapstructure:"theme"`
}

type Content struct {
	Dir string `mapstructure:"dir"` // catalog directory; empty means bundled content
}

// Load reads configuration from the config file and environment variables.
// Lookup order for the file: $PALABRA_CONFIG, $XDG_CONFIG_HOME/palabra,
// ~/.config/palabra, then the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if p := os.Getenv("PALABRA_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("palabra")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.clamp()
	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// filesystem.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("unmarshal defaults: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("flashcard.card_count", 10)
	v.SetDefault("quiz.question_count", 10)
	v.SetDefault("completion.sentence_count", 10)
	v.SetDefault("sorting.word_count", 8)
	v.SetDefault("sorting.category_count", 3)
	v.SetDefault("matching.pair_count", 6)
	v.SetDefault("ui.language", "en")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("content.dir", "")
}

// clamp pulls every tunable back into its supported range. Out-of-range
// values come from hand-edited config files; silently correcting them
// beats refusing to start.
func (c *Config) clamp() {
	c.Flashcard.CardCount = clampInt(c.Flashcard.CardCount, 1, 50)
	c.Quiz.QuestionCount = clampInt(c.Quiz.QuestionCount, 1, 50)
	c.Completion.SentenceCount = clampInt(c.Completion.SentenceCount, 1, 50)
	c.Sorting.WordCount = clampInt(c.Sorting.WordCount, 2, 30)
	c.Sorting.CategoryCount = clampInt(c.Sorting.CategoryCount, 2, 6)
	c.Matching.PairCount = clampInt(c.Matching.PairCount, 2, 15)

	if c.UI.Language != "en" && c.UI.Language != "es" {
		c.UI.Language = "en"
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "default"
	}
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// ExerciseConfig translates the settings into per-mode item counts for the
// session engine.
func (c *Config) ExerciseConfig() exercise.Config {
	return exercise.Config{
		FlashcardCount:       c.Flashcard.CardCount,
		QuizCount:            c.Quiz.QuestionCount,
		CompletionCount:      c.Completion.SentenceCount,
		SortingWordCount:     c.Sorting.WordCount,
		SortingCategoryCount: c.Sorting.CategoryCount,
		MatchingCount:        c.Matching.PairCount,
	}
}

// configDir resolves the user config directory for palabra:
// $XDG_CONFIG_HOME/palabra, falling back to ~/.config/palabra.
func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "palabra")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "palabra")
}
