// Package station defines the functional units of the orbital station:
// modules grouping storages and agents, the crew roster, and the station
// aggregate itself.
// This package is PURE and must NOT import any infrastructure packages.
package station

import (
	"github.com/avern-labs/orbital-station/internal/domain/agent"
	"github.com/avern-labs/orbital-station/internal/domain/resource"
)

// Module groups resource storages with the agents that draw on them.
// Storages are held by reference: a storage may be shared with other modules,
// in which case each module applies its own withdrawals to the same tank.
type Module struct {
	Title    string              `json:"title"`
	Storages []*resource.Storage `json:"storages"`
	Agents   []agent.Agent       `json:"-"`
	Active   bool                `json:"active"`

	// MinRequired is the per-resource floor checked after each run. A module
	// whose storages drop below any of these levels shuts itself down.
	// Default scenarios leave it empty, which makes the check vacuously true
	// and self-deactivation unreachable.
	MinRequired map[resource.Type]float64 `json:"min_required,omitempty"`
}

// NewModule creates a module over the given storages and agents.
// Modules start inactive; the driver activates them explicitly.
func NewModule(title string, storages []*resource.Storage, agents []agent.Agent) *Module {
	return &Module{
		Title:       title,
		Storages:    storages,
		Agents:      agents,
		Active:      false,
		MinRequired: map[resource.Type]float64{},
	}
}

// Activate switches the module on. There is no resource check here: a module
// can always be re-enabled, even over drained storages.
func (m *Module) Activate() {
	m.Active = true
}

// Run advances the module by one tick. Inactive modules are a no-op.
//
// Every agent's rate for a resource type is applied against EVERY storage
// that holds the type, scaled by that storage's own resource count and the
// resource's maximum: withdrawal = rate * len(storage.Resources) * max.
// Rates are not split across storages; a module with two water tanks pays
// the full scaled rate into each.
//
// After all withdrawals, each storage is checked against MinRequired and the
// module deactivates if any storage falls short.
func (m *Module) Run() {
	if !m.Active {
		return
	}

	for _, ag := range m.Agents {
		for t, rate := range ag.Rates() {
			for _, s := range m.Storages {
				r, ok := s.GetResource(t)
				if !ok {
					continue
				}
				s.RemoveResource(t, rate*float64(len(s.Resources))*r.MaxAmount)
			}
		}
	}

	for _, s := range m.Storages {
		if !s.HasSufficientResources(m.MinRequired) {
			m.Active = false
		}
	}
}

// Charge tops up every storage owned by the module.
func (m *Module) Charge() {
	for _, s := range m.Storages {
		s.Charge()
	}
}

// AllStoragesCharged reports whether every storage is at capacity.
func (m *Module) AllStoragesCharged() bool {
	for _, s := range m.Storages {
		if !s.IsCharged() {
			return false
		}
	}
	return true
}
