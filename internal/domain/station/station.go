package station

import (
	"github.com/avern-labs/orbital-station/internal/domain/resource"
)

// Station aggregates the modules and the crew roster.
type Station struct {
	Name    string    `json:"name"`
	Modules []*Module `json:"modules"`
	Roster  *Roster   `json:"roster"`
}

// NewStation creates a station over the given modules and roster.
func NewStation(name string, modules []*Module, roster *Roster) *Station {
	return &Station{
		Name:    name,
		Modules: modules,
		Roster:  roster,
	}
}

// TotalResources sums CurrentAmount per resource type across every storage of
// every module. Computed on demand, never cached. A storage shared between
// two modules is counted once per module that references it; the aggregate is
// a per-module view, not a deduplicated physical inventory.
func (st *Station) TotalResources() map[resource.Type]float64 {
	totals := make(map[resource.Type]float64, len(resource.Types))
	for _, m := range st.Modules {
		for _, s := range m.Storages {
			for _, r := range s.Resources {
				totals[r.Type] += r.CurrentAmount
			}
		}
	}
	return totals
}

// Module returns the module with the given title, or false if absent.
func (st *Station) Module(title string) (*Module, bool) {
	for _, m := range st.Modules {
		if m.Title == title {
			return m, true
		}
	}
	return nil, false
}
