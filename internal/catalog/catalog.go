package catalog

import (
	"fmt"
	"slices"
	"sort"
)

// Catalog holds the loaded module set with precomputed indices.
// Catalog order (the order modules appear in catalog.json) is authoritative
// for recommendation tie-breaking and user-facing listings.
type Catalog struct {
	modules []Module
	byID    map[string]*Module
	byUnit  map[int][]Module
	order   map[string]int
}

// New builds a Catalog from a slice of modules, preserving their order.
func New(modules []Module) *Catalog {
	c := &Catalog{
		modules: modules,
		byID:    make(map[string]*Module, len(modules)),
		byUnit:  make(map[int][]Module),
		order:   make(map[string]int, len(modules)),
	}

	for i := range c.modules {
		m := &c.modules[i]
		c.byID[m.ID] = m
		c.order[m.ID] = i
	}

	// Group by unit, keeping catalog order within each unit.
	for i := range c.modules {
		m := c.modules[i]
		c.byUnit[m.Unit] = append(c.byUnit[m.Unit], m)
	}

	return c
}

// Get returns a module by ID, or an error if not found.
func (c *Catalog) Get(id string) (Module, error) {
	m, ok := c.byID[id]
	if !ok {
		return Module{}, fmt.Errorf("module not found: %q", id)
	}
	return *m, nil
}

// Has reports whether the catalog contains a module with the given ID.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns all modules in catalog order.
func (c *Catalog) All() []Module {
	return slices.Clone(c.modules)
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// ByUnit returns the modules in a unit, in catalog order.
func (c *Catalog) ByUnit(unit int) []Module {
	return slices.Clone(c.byUnit[unit])
}

// Units returns the units that have at least one module, ascending.
func (c *Catalog) Units() []int {
	units := make([]int, 0, len(c.byUnit))
	for u := range c.byUnit {
		units = append(units, u)
	}
	sort.Ints(units)
	return units
}

// OrderIndex returns the catalog position of a module ID, or -1 if unknown.
func (c *Catalog) OrderIndex(id string) int {
	if i, ok := c.order[id]; ok {
		return i
	}
	return -1
}

// Prerequisites returns the prerequisite modules for a given module ID,
// in catalog order. Dangling prerequisite IDs are silently skipped; the
// content validator flags those offline.
func (c *Catalog) Prerequisites(id string) []Module {
	m, ok := c.byID[id]
	if !ok {
		return nil
	}
	result := make([]Module, 0, len(m.Prerequisites))
	for _, prereqID := range m.Prerequisites {
		if p, ok := c.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return c.order[result[i].ID] < c.order[result[j].ID]
	})
	return result
}

// Validate checks the catalog for structural issues.
func (c *Catalog) Validate() error {
	return validateModules(c.modules)
}
