package progression

import (
	"testing"

	"github.com/palabra-app/palabra/internal/catalog"
)

// Catalog array order deliberately interleaves units so tests can verify
// recommendation respects unit ordering over array position.
func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Module{
		{ID: "u2-first", Mode: catalog.ModeQuiz, Unit: 2, Prerequisites: []string{"u1-flash"}},
		{ID: "u1-flash", Mode: catalog.ModeFlashcard, Unit: 1},
		{ID: "u1-quiz", Mode: catalog.ModeQuiz, Unit: 1, Prerequisites: []string{"u1-flash"}},
		{ID: "u2-match", Mode: catalog.ModeMatching, Unit: 2, Prerequisites: []string{"u1-quiz"}},
	})
}

func TestIsUnlocked_NoPrerequisites(t *testing.T) {
	e := New(testCatalog(), nil)
	if !e.IsUnlocked("u1-flash") {
		t.Error("module with no prerequisites should be unlocked")
	}
}

func TestIsUnlocked_RequiresAllPrerequisites(t *testing.T) {
	e := New(testCatalog(), nil)
	if e.IsUnlocked("u1-quiz") {
		t.Error("u1-quiz should be locked before u1-flash is completed")
	}

	e = New(testCatalog(), map[string]bool{"u1-flash": true})
	if !e.IsUnlocked("u1-quiz") {
		t.Error("u1-quiz should unlock once u1-flash is completed")
	}
}

func TestIsUnlocked_UnknownModule(t *testing.T) {
	e := New(testCatalog(), map[string]bool{"u1-flash": true})
	if e.IsUnlocked("nope") {
		t.Error("unknown module must report locked")
	}
}

func TestStatus(t *testing.T) {
	e := New(testCatalog(), map[string]bool{"u1-flash": true})

	tests := []struct {
		id   string
		want Status
	}{
		{"u1-flash", StatusCompleted},
		{"u1-quiz", StatusAvailable},
		{"u2-match", StatusLocked},
		{"unknown-id", StatusLocked},
	}
	for _, tt := range tests {
		if got := e.Status(tt.id); got != tt.want {
			t.Errorf("Status(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestStatus_Idempotent(t *testing.T) {
	e := New(testCatalog(), map[string]bool{"u1-flash": true})
	first := e.Status("u1-quiz")
	second := e.Status("u1-quiz")
	if first != second {
		t.Errorf("status changed between calls: %v then %v", first, second)
	}
}

func TestMissingPrerequisites(t *testing.T) {
	e := New(testCatalog(), nil)
	missing := e.MissingPrerequisites("u2-match")
	if len(missing) != 1 || missing[0].ID != "u1-quiz" {
		t.Errorf("missing = %v, want [u1-quiz]", missing)
	}

	e = New(testCatalog(), map[string]bool{"u1-quiz": true})
	if got := e.MissingPrerequisites("u2-match"); len(got) != 0 {
		t.Errorf("expected no missing prerequisites, got %v", got)
	}
}

func TestNextRecommended_UnitOrderBeatsArrayOrder(t *testing.T) {
	// u2-first comes first in the catalog array and is unlocked, but the
	// unit-1 module u1-quiz must win.
	e := New(testCatalog(), map[string]bool{"u1-flash": true})
	m, ok := e.NextRecommended()
	if !ok {
		t.Fatal("expected a recommendation")
	}
	if m.ID != "u1-quiz" {
		t.Errorf("recommended %q, want u1-quiz", m.ID)
	}
}

func TestNextRecommended_NeverLockedOrCompleted(t *testing.T) {
	e := New(testCatalog(), map[string]bool{"u1-flash": true, "u1-quiz": true})
	m, ok := e.NextRecommended()
	if !ok {
		t.Fatal("expected a recommendation")
	}
	if e.Status(m.ID) != StatusAvailable {
		t.Errorf("recommended module %q has status %v", m.ID, e.Status(m.ID))
	}
}

func TestNextRecommended_AllCompleted(t *testing.T) {
	e := New(testCatalog(), map[string]bool{
		"u1-flash": true, "u1-quiz": true, "u2-first": true, "u2-match": true,
	})
	if _, ok := e.NextRecommended(); ok {
		t.Error("expected no recommendation when everything is completed")
	}
}

func TestCompletedPrereqOnlyEverUnlocks(t *testing.T) {
	// Adding a completed prerequisite can move locked -> available,
	// never the reverse.
	cat := testCatalog()
	before := New(cat, nil)
	after := New(cat, map[string]bool{"u1-flash": true})

	for _, m := range cat.All() {
		b := before.Status(m.ID)
		a := after.Status(m.ID)
		if b == StatusAvailable && a == StatusLocked {
			t.Errorf("module %q regressed from available to locked", m.ID)
		}
	}
}

func TestUnitCompletion(t *testing.T) {
	e := New(testCatalog(), map[string]bool{"u1-flash": true})
	got := e.UnitCompletion(1)
	if got.Completed != 1 || got.Total != 2 || got.Percentage != 50 {
		t.Errorf("unit 1 stats = %+v", got)
	}

	empty := e.UnitCompletion(5)
	if empty.Total != 0 || empty.Percentage != 0 {
		t.Errorf("empty unit stats = %+v", empty)
	}
}

func TestOverallStats(t *testing.T) {
	e := New(testCatalog(), map[string]bool{"u1-flash": true})
	got := e.OverallStats()
	if got.Total != 4 || got.Completed != 1 {
		t.Errorf("stats = %+v", got)
	}
	// u1-quiz and u2-first are available, u2-match locked.
	if got.Available != 2 || got.Locked != 1 {
		t.Errorf("stats = %+v", got)
	}
	if got.Percentage != 25 {
		t.Errorf("percentage = %d, want 25", got.Percentage)
	}
}
