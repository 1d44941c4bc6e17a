package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/palabra-app/palabra/internal/catalog"
)

// OptimizeResult summarizes what an optimize pass rewrote.
type OptimizeResult struct {
	FilesChanged int
	Report       *Report
}

// Optimize rewrites the catalog and every data file with stable formatting:
// sorted object keys, two-space indentation, trailing newline. Unlike Fix it
// never changes content, so diffing before and after shows formatting noise
// only.
func Optimize(dir string) (*OptimizeResult, error) {
	res := &OptimizeResult{Report: &Report{}}

	paths := []string{filepath.Join(dir, catalog.CatalogFile)}

	raw, err := os.ReadFile(paths[0])
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var modules []catalog.Module
	if err := json.Unmarshal(raw, &modules); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for _, m := range modules {
		if m.DataPath != "" {
			paths = append(paths, filepath.Join(dir, m.DataPath))
		}
	}

	for _, path := range paths {
		changed, err := reformat(path)
		if err != nil {
			res.Report.addIssue(filepath.Base(path), "%v", err)
			continue
		}
		res.Report.FilesChecked++
		if changed {
			res.FilesChanged++
		}
	}

	return res, nil
}

// reformat rewrites one JSON file with stable formatting. Decoding into any
// and re-encoding sorts object keys without touching values or field names.
func reformat(path string) (bool, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	var parsed any
	if err := json.Unmarshal(original, &parsed); err != nil {
		return false, fmt.Errorf("invalid JSON: %w", err)
	}
	formatted, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return false, err
	}
	formatted = append(formatted, '\n')

	if bytes.Equal(original, formatted) {
		return false, nil
	}
	return true, os.WriteFile(path, formatted, 0o644)
}
