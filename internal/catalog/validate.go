package catalog

import (
	"fmt"
	"strings"
)

// validateModules performs all structural checks on the given module set.
// Returns a combined error describing all problems found, or nil if valid.
func validateModules(modules []Module) error {
	var errs []string

	idSet := make(map[string]bool, len(modules))

	// Check for duplicate IDs and basic field validity.
	for _, m := range modules {
		if m.ID == "" {
			errs = append(errs, "module with empty ID")
			continue
		}
		if idSet[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		idSet[m.ID] = true

		if !m.Mode.Valid() {
			errs = append(errs, fmt.Sprintf("module %q: unknown learning mode %q", m.ID, m.Mode))
		}
		if m.Unit < MinUnit || m.Unit > MaxUnit {
			errs = append(errs, fmt.Sprintf("module %q: unit must be in [%d, %d], got %d", m.ID, MinUnit, MaxUnit, m.Unit))
		}
		for _, l := range m.Levels {
			if !l.Valid() {
				errs = append(errs, fmt.Sprintf("module %q: unknown level %q", m.ID, l))
			}
		}
	}

	// Check for dangling prerequisites.
	for _, m := range modules {
		for _, prereqID := range m.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("module %q references nonexistent prerequisite %q", m.ID, prereqID))
			}
		}
	}

	// Check for prerequisite cycles using Kahn's algorithm. A cycle would
	// leave every module in it permanently locked.
	inDegree := make(map[string]int, len(modules))
	adjList := make(map[string][]string)
	for _, m := range modules {
		inDegree[m.ID] = len(m.Prerequisites)
		for _, prereqID := range m.Prerequisites {
			adjList[prereqID] = append(adjList[prereqID], m.ID)
		}
	}

	var queue []string
	for _, m := range modules {
		if inDegree[m.ID] == 0 {
			queue = append(queue, m.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(modules) {
		var cycleNodes []string
		for _, m := range modules {
			if inDegree[m.ID] > 0 {
				cycleNodes = append(cycleNodes, m.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("prerequisite cycle involving modules: %s", strings.Join(cycleNodes, ", ")))
	}

	// Per-mode data checks.
	for _, m := range modules {
		errs = append(errs, validateModuleData(m)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// validateModuleData checks the normalized data of a single module.
func validateModuleData(m Module) []string {
	var errs []string

	switch m.Mode {
	case ModeQuiz:
		for i, q := range m.Data.Questions {
			if !containsFold(q.Options, q.Correct) {
				errs = append(errs, fmt.Sprintf("module %q question %d: correct answer %q not present in options", m.ID, i, q.Correct))
			}
		}

	case ModeMatching:
		// Duplicate left or right values make a pair ambiguous to match.
		seenLeft := make(map[string]bool)
		seenRight := make(map[string]bool)
		for _, p := range m.Data.Pairs {
			if seenLeft[p.Left] {
				errs = append(errs, fmt.Sprintf("module %q: duplicate left value %q in matching data", m.ID, p.Left))
			}
			if seenRight[p.Right] {
				errs = append(errs, fmt.Sprintf("module %q: duplicate right value %q in matching data", m.ID, p.Right))
			}
			seenLeft[p.Left] = true
			seenRight[p.Right] = true
		}

	case ModeReading:
		for i, p := range m.Data.Passages {
			for j, q := range p.Questions {
				if !containsFold(q.Options, q.Correct) {
					errs = append(errs, fmt.Sprintf("module %q passage %d question %d: correct answer %q not present in options", m.ID, i, j, q.Correct))
				}
			}
		}
	}

	return errs
}

// containsFold reports whether want appears in options, ignoring case and
// surrounding whitespace.
func containsFold(options []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), want) {
			return true
		}
	}
	return false
}
