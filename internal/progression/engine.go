package progression

import (
	"math"

	"github.com/palabra-app/palabra/internal/catalog"
)

// Status represents a module's state relative to the learner.
type Status int

const (
	StatusLocked    Status = iota // One or more prerequisites not yet completed
	StatusAvailable               // All prerequisites completed; module not yet finished
	StatusCompleted               // At least one finished session recorded
)

// Icon returns the display icon for a module status.
func (s Status) Icon() string {
	switch s {
	case StatusLocked:
		return "🔒"
	case StatusAvailable:
		return "🔓"
	case StatusCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a module status.
func (s Status) Label() string {
	switch s {
	case StatusLocked:
		return "Locked"
	case StatusAvailable:
		return "Available"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// UnitStats summarizes completion within one curriculum unit.
type UnitStats struct {
	Completed  int
	Total      int
	Percentage int
}

// Stats aggregates completion across the whole catalog.
type Stats struct {
	Total      int
	Completed  int
	Available  int
	Locked     int
	Percentage int
}

// Engine answers lock/unlock and recommendation queries over a catalog and
// the learner's completed-module set. Finishing a session is the completion
// signal regardless of score; the progression model is deliberately
// non-punitive.
type Engine struct {
	catalog   *catalog.Catalog
	completed map[string]bool
}

// New creates an Engine. completed maps module IDs to whether a finished
// session exists for them; nil is treated as no progress.
func New(c *catalog.Catalog, completed map[string]bool) *Engine {
	if completed == nil {
		completed = make(map[string]bool)
	}
	return &Engine{catalog: c, completed: completed}
}

// IsUnlocked returns true if every prerequisite of the module is completed.
// A module with no prerequisites is always unlocked. Unknown IDs report
// locked, the fail-safe default.
func (e *Engine) IsUnlocked(id string) bool {
	m, err := e.catalog.Get(id)
	if err != nil {
		return false
	}
	for _, prereqID := range m.Prerequisites {
		if !e.completed[prereqID] {
			return false
		}
	}
	return true
}

// Status returns the module's current status. Unknown IDs report locked.
func (e *Engine) Status(id string) Status {
	if !e.catalog.Has(id) {
		return StatusLocked
	}
	if e.completed[id] {
		return StatusCompleted
	}
	if e.IsUnlocked(id) {
		return StatusAvailable
	}
	return StatusLocked
}

// MissingPrerequisites returns the prerequisite modules not yet completed,
// in catalog order. Used for "complete X first" messaging.
func (e *Engine) MissingPrerequisites(id string) []catalog.Module {
	var missing []catalog.Module
	for _, p := range e.catalog.Prerequisites(id) {
		if !e.completed[p.ID] {
			missing = append(missing, p)
		}
	}
	return missing
}

// NextRecommended returns the first available module scanning unit by unit,
// tie-broken by catalog order within a unit. Returns false if everything is
// completed or all remaining modules are locked.
func (e *Engine) NextRecommended() (catalog.Module, bool) {
	for _, unit := range e.catalog.Units() {
		for _, m := range e.catalog.ByUnit(unit) {
			if e.Status(m.ID) == StatusAvailable {
				return m, true
			}
		}
	}
	return catalog.Module{}, false
}

// UnitCompletion counts completed modules within a unit.
func (e *Engine) UnitCompletion(unit int) UnitStats {
	modules := e.catalog.ByUnit(unit)
	stats := UnitStats{Total: len(modules)}
	for _, m := range modules {
		if e.completed[m.ID] {
			stats.Completed++
		}
	}
	stats.Percentage = roundedPercent(stats.Completed, stats.Total)
	return stats
}

// OverallStats aggregates status counts across the catalog.
func (e *Engine) OverallStats() Stats {
	stats := Stats{Total: e.catalog.Len()}
	for _, m := range e.catalog.All() {
		switch e.Status(m.ID) {
		case StatusCompleted:
			stats.Completed++
		case StatusAvailable:
			stats.Available++
		default:
			stats.Locked++
		}
	}
	stats.Percentage = roundedPercent(stats.Completed, stats.Total)
	return stats
}

func roundedPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
