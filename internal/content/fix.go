package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/palabra-app/palabra/internal/catalog"
)

// FixResult summarizes what a fix pass changed.
type FixResult struct {
	FilesChanged      int
	DuplicatesDropped int
	Report            *Report
}

// Fix rewrites every data file in canonical form: legacy field names are
// normalized, exact-duplicate entries dropped and records that fit no known
// convention removed. The original file is kept next to the rewrite with a
// .backup suffix. Files already in canonical form are left untouched.
func Fix(dir string) (*FixResult, error) {
	cat, warnings, err := catalog.Load(dir)
	if err != nil {
		return nil, err
	}

	res := &FixResult{Report: &Report{}}
	for _, w := range warnings {
		res.Report.addIssue(w.Path, "module %q: %v (not fixable)", w.ModuleID, w.Err)
	}

	for _, m := range cat.All() {
		if m.DataPath == "" {
			continue
		}
		path := filepath.Join(dir, m.DataPath)
		original, err := os.ReadFile(path)
		if err != nil {
			continue // already reported as a load warning
		}
		res.Report.FilesChecked++

		data, dropped := dedup(m.Mode, m.Data)
		res.DuplicatesDropped += dropped

		fixed, err := marshalCanonical(m.Mode, data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", m.DataPath, err)
		}
		if bytes.Equal(bytes.TrimSpace(original), bytes.TrimSpace(fixed)) {
			continue
		}

		if err := os.WriteFile(path+".backup", original, 0o644); err != nil {
			return nil, fmt.Errorf("write backup for %s: %w", m.DataPath, err)
		}
		if err := os.WriteFile(path, fixed, 0o644); err != nil {
			return nil, fmt.Errorf("rewrite %s: %w", m.DataPath, err)
		}
		res.FilesChanged++
	}

	return res, nil
}

// dedup removes exact-duplicate items, preserving first occurrence order.
func dedup(mode catalog.LearningMode, d catalog.Data) (catalog.Data, int) {
	dropped := 0
	seen := make(map[string]bool)
	keep := func(item any) bool {
		key, err := json.Marshal(item)
		if err != nil || seen[string(key)] {
			dropped++
			return false
		}
		seen[string(key)] = true
		return true
	}

	var out catalog.Data
	switch mode {
	case catalog.ModeFlashcard:
		for _, c := range d.Cards {
			if keep(c) {
				out.Cards = append(out.Cards, c)
			}
		}
	case catalog.ModeQuiz:
		for _, q := range d.Questions {
			if keep(q) {
				out.Questions = append(out.Questions, q)
			}
		}
	case catalog.ModeCompletion:
		for _, g := range d.Gaps {
			if keep(g) {
				out.Gaps = append(out.Gaps, g)
			}
		}
	case catalog.ModeSorting:
		for _, w := range d.SortWords {
			if keep(w) {
				out.SortWords = append(out.SortWords, w)
			}
		}
	case catalog.ModeMatching:
		for _, p := range d.Pairs {
			if keep(p) {
				out.Pairs = append(out.Pairs, p)
			}
		}
	case catalog.ModeReading:
		for _, p := range d.Passages {
			if keep(p) {
				out.Passages = append(out.Passages, p)
			}
		}
	}
	return out, dropped
}

// marshalCanonical serializes the mode's item slice with stable two-space
// indentation and a trailing newline.
func marshalCanonical(mode catalog.LearningMode, d catalog.Data) ([]byte, error) {
	var items any
	switch mode {
	case catalog.ModeFlashcard:
		items = emptyAsList(d.Cards)
	case catalog.ModeQuiz:
		items = emptyAsList(d.Questions)
	case catalog.ModeCompletion:
		items = emptyAsList(d.Gaps)
	case catalog.ModeSorting:
		items = emptyAsList(d.SortWords)
	case catalog.ModeMatching:
		items = emptyAsList(d.Pairs)
	case catalog.ModeReading:
		items = emptyAsList(d.Passages)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// emptyAsList keeps a nil slice serializing as [] rather than null.
func emptyAsList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
