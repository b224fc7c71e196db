package station

import (
	"github.com/avern-labs/orbital-station/internal/domain/agent"
)

// Roster is the station's crew manifest. It applies astronaut consumption
// directly against every module's storages, independently of Module.Run:
// a driver that calls both per tick double-counts astronaut draw on any
// storage reachable from both paths.
type Roster struct {
	Astronauts []*agent.Astronaut `json:"astronauts"`
}

// NewRoster creates a roster over the given crew.
func NewRoster(astronauts ...*agent.Astronaut) *Roster {
	return &Roster{Astronauts: astronauts}
}

// Run withdraws each astronaut's rates, scaled by body mass, from every
// storage in every module of the station that holds the resource type.
// Missing types are skipped silently; levels may go negative.
func (r *Roster) Run(st *Station) {
	if st == nil {
		return
	}
	for _, a := range r.Astronauts {
		for t, rate := range a.Rates() {
			for _, m := range st.Modules {
				for _, s := range m.Storages {
					if _, ok := s.GetResource(t); !ok {
						continue
					}
					s.RemoveResource(t, rate*a.Mass)
				}
			}
		}
	}
}
