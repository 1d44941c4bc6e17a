package content

import (
	"github.com/palabra-app/palabra/internal/catalog"
)

// ModuleStatus describes one catalog module for the status listing.
type ModuleStatus struct {
	ID        string
	Mode      catalog.LearningMode
	Unit      int
	DataPath  string
	ItemCount int
	Problem   string // empty when the module loaded cleanly
}

// StatusResult is the per-module inventory of a content directory.
type StatusResult struct {
	Modules []ModuleStatus
	Units   []int
}

// Problems counts the modules that failed to load cleanly.
func (s *StatusResult) Problems() int {
	n := 0
	for _, m := range s.Modules {
		if m.Problem != "" {
			n++
		}
	}
	return n
}

// Status inventories a content directory: every module with its item count,
// plus the load problem if its data file failed.
func Status(dir string) (*StatusResult, error) {
	cat, warnings, err := catalog.Load(dir)
	if err != nil {
		return nil, err
	}

	problems := make(map[string]string, len(warnings))
	for _, w := range warnings {
		problems[w.ModuleID] = w.Err.Error()
	}

	res := &StatusResult{Units: cat.Units()}
	for _, m := range cat.All() {
		st := ModuleStatus{
			ID:        m.ID,
			Mode:      m.Mode,
			Unit:      m.Unit,
			DataPath:  m.DataPath,
			ItemCount: m.Data.ItemCount(m.Mode),
			Problem:   problems[m.ID],
		}
		if st.Problem == "" && m.Data.Empty(m.Mode) {
			st.Problem = "no usable items"
		}
		res.Modules = append(res.Modules, st)
	}
	return res, nil
}
