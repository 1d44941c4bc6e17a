package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEntry(moduleID string, score int, at time.Time) *ProgressEntry {
	return &ProgressEntry{
		SessionID:      uuid.NewString(),
		ModuleID:       moduleID,
		LearningMode:   "quiz",
		Score:          score,
		TotalQuestions: 10,
		CorrectAnswers: score / 10,
		TimeSpentSecs:  90,
		Timestamp:      at,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"progress_entries", "user_scores"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestProgressAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		e := testEntry("greetings-quiz", 70+i*10, base.Add(time.Duration(i)*time.Minute))
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if e.ID == 0 {
			t.Errorf("append %d: entry ID not set", i)
		}
	}

	entries, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Score != 90 || entries[1].Score != 80 {
		t.Errorf("scores = %d, %d; want 90, 80", entries[0].Score, entries[1].Score)
	}
}

func TestProgressCompletedModules(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	now := time.Now().UTC()
	for _, id := range []string{"a", "a", "b"} {
		if err := repo.Append(ctx, testEntry(id, 100, now)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	completed, err := repo.CompletedModules(ctx)
	if err != nil {
		t.Fatalf("completed modules: %v", err)
	}
	if len(completed) != 2 {
		t.Errorf("got %d completed modules, want 2", len(completed))
	}
	if !completed["a"] || !completed["b"] {
		t.Errorf("completed = %v", completed)
	}
}

func TestProgressByDay(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	today := time.Now().UTC()
	yesterday := today.AddDate(0, 0, -1)
	lastMonth := today.AddDate(0, -1, 0)

	for _, e := range []*ProgressEntry{
		testEntry("a", 80, today),
		testEntry("a", 100, today),
		testEntry("b", 60, yesterday),
		testEntry("c", 40, lastMonth), // outside the window
	} {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	days, err := repo.ByDay(ctx, 7)
	if err != nil {
		t.Fatalf("by day: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d day buckets, want 2", len(days))
	}
	// Newest day first, with both of today's sessions averaged.
	if days[0].Sessions != 2 || days[0].AvgScore != 90 {
		t.Errorf("today = %+v, want 2 sessions avg 90", days[0])
	}
	if days[1].Sessions != 1 || days[1].AvgScore != 60 {
		t.Errorf("yesterday = %+v, want 1 session avg 60", days[1])
	}
}

func TestProgressCountAndDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		if err := repo.Append(ctx, testEntry("a", 100, now)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 4 {
		t.Errorf("count = %d, want 4", n)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	n, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("count after delete: %v", err)
	}
	if n != 0 {
		t.Errorf("count after delete = %d, want 0", n)
	}
}

func TestScoreRecordKeepsBest(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, score := range []int{60, 90, 70} {
		at := base.Add(time.Duration(i) * time.Minute)
		if err := repo.Record(ctx, "greetings-quiz", score, at); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	got, err := repo.Get(ctx, "greetings-quiz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil score")
	}
	if got.BestScore != 90 {
		t.Errorf("best score = %d, want 90 (a lower later score must not win)", got.BestScore)
	}
	if got.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", got.Attempts)
	}
}

func TestScoreGetUnknownModule(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()

	got, err := repo.Get(context.Background(), "never-played")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for unknown module", got)
	}
}

func TestScoreAllOrderedByLastPlayed(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	if err := repo.Record(ctx, "older", 50, base); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(ctx, "newer", 80, base.Add(time.Hour)); err != nil {
		t.Fatalf("record: %v", err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d scores, want 2", len(all))
	}
	if all[0].ModuleID != "newer" {
		t.Errorf("first module = %q, want most recently played", all[0].ModuleID)
	}
}
