package content

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/palabra-app/palabra/internal/catalog"
)

// Issue is one problem found in a content directory.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Report collects the outcome of a maintenance action over a content
// directory.
type Report struct {
	FilesChecked int
	Issues       []Issue
}

// OK reports whether the action found no problems.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) addIssue(path, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a content directory: the catalog file and every data
// file against their schemas, then the loaded catalog's referential
// integrity (duplicate ids, dangling or cyclic prerequisites, per-mode
// data rules).
func Validate(dir string) (*Report, error) {
	r := &Report{}

	catalogPath := filepath.Join(dir, catalog.CatalogFile)
	raw, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	r.FilesChecked++
	if err := validateAgainst("catalog", catalogSchema, raw); err != nil {
		r.addIssue(catalog.CatalogFile, "schema: %v", err)
		return r, nil // the catalog is unusable, nothing more to check
	}

	cat, warnings, err := catalog.Load(dir)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		r.addIssue(w.Path, "module %q: %v", w.ModuleID, w.Err)
	}

	for _, m := range cat.All() {
		if m.DataPath == "" {
			continue
		}
		dataRaw, err := os.ReadFile(filepath.Join(dir, m.DataPath))
		if err != nil {
			continue // already reported as a load warning
		}
		r.FilesChecked++
		schema, ok := dataSchemas[m.Mode]
		if !ok {
			r.addIssue(m.DataPath, "module %q: no schema for mode %q", m.ID, m.Mode)
			continue
		}
		if err := validateAgainst(string(m.Mode), schema, dataRaw); err != nil {
			r.addIssue(m.DataPath, "schema: %v", err)
		}
	}

	if err := cat.Validate(); err != nil {
		r.addIssue(catalog.CatalogFile, "%v", err)
	}

	return r, nil
}
