package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// CatalogFile is the name of the catalog index within a content directory.
const CatalogFile = "catalog.json"

// LoadWarning records a non-fatal problem encountered while loading a
// module's data file. The module still loads, with empty data, and renders
// as a no-data state at runtime.
type LoadWarning struct {
	ModuleID string
	Path     string
	Err      error
}

func (w LoadWarning) String() string {
	return fmt.Sprintf("module %q (%s): %v", w.ModuleID, w.Path, w.Err)
}

// Load reads catalog.json from dir, then loads and normalizes each module's
// data file. A malformed or missing data file is a warning, not an error:
// authoring problems are caught by the offline content tools, and the app
// degrades to an empty-state view for the affected module.
func Load(dir string) (*Catalog, []LoadWarning, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS is Load over any fs.FS, which lets the app fall back to the
// content set compiled into the binary.
func LoadFS(fsys fs.FS) (*Catalog, []LoadWarning, error) {
	raw, err := fs.ReadFile(fsys, CatalogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}

	var modules []Module
	if err := json.Unmarshal(raw, &modules); err != nil {
		return nil, nil, fmt.Errorf("decode catalog: %w", err)
	}

	var warnings []LoadWarning
	for i := range modules {
		m := &modules[i]
		if m.DataPath == "" {
			warnings = append(warnings, LoadWarning{ModuleID: m.ID, Err: fmt.Errorf("no data path")})
			continue
		}
		dataRaw, err := fs.ReadFile(fsys, m.DataPath)
		if err != nil {
			warnings = append(warnings, LoadWarning{ModuleID: m.ID, Path: m.DataPath, Err: err})
			continue
		}
		data, err := NormalizeData(m.Mode, dataRaw)
		if err != nil {
			warnings = append(warnings, LoadWarning{ModuleID: m.ID, Path: m.DataPath, Err: err})
			continue
		}
		m.Data = data
	}

	return New(modules), warnings, nil
}
