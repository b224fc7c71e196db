// Package engine contains the simulation stepping logic.
// This is the heartbeat of the orbital station.
//
// ARCHITECTURAL RULE: the domain packages never emit events or log. The
// Simulator is the only writer to the SimLog, and every mutating entry point
// funnels through its mutex so transport layers cannot race the tick.
package engine

import (
	"sync"
	"time"

	"github.com/avern-labs/orbital-station/internal/domain/resource"
	"github.com/avern-labs/orbital-station/internal/domain/station"
	"github.com/avern-labs/orbital-station/internal/events"
	"github.com/avern-labs/orbital-station/internal/platform/logger"
	"github.com/avern-labs/orbital-station/internal/platform/metrics"
)

// TimeTickPayload is the data attached to each TimeTickEvent.
type TimeTickPayload struct {
	Tick          int64 `json:"tick"`
	ActiveModules int   `json:"active_modules"`
	CrewApplied   bool  `json:"crew_applied"`
}

// DeactivationPayload records why a module shut itself down.
type DeactivationPayload struct {
	Module string `json:"module"`
	Tick   int64  `json:"tick"`
}

// Simulator advances the station strictly on demand, one discrete step per
// Step call. It does not schedule real time; see Ticker for the wall-clock
// wrapper used by the server driver.
type Simulator struct {
	mu      sync.Mutex
	station *station.Station
	simLog  *events.SimLog
	logger  *logger.Logger
	tick    int64

	// CrewDraw applies Roster.Run after the module pass on every step.
	// This is a second, additive consumption path: storages reachable from
	// both a module's agents and the roster are drawn twice.
	CrewDraw bool
}

// NewSimulator wires the station to the event log.
func NewSimulator(st *station.Station, simLog *events.SimLog, log *logger.Logger) *Simulator {
	return &Simulator{
		station: st,
		simLog:  simLog,
		logger:  log,
	}
}

// Tick returns the number of completed steps.
func (s *Simulator) Tick() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Step advances the simulation by exactly one tick: every active module runs,
// then (if CrewDraw is set) the roster withdraws crew consumption, then a
// TIME_TICK and a STATION_SNAPSHOT event are appended.
func (s *Simulator) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	s.tick++

	active := 0
	for _, m := range s.station.Modules {
		wasActive := m.Active
		m.Run()
		if m.Active {
			active++
		}
		if wasActive && !m.Active {
			s.logger.Warn("Module self-deactivated on resource exhaustion: %s", m.Title)
			metrics.Get().RecordDeactivation()
			s.append(events.EventTypeModuleDeactivated, m.Title, DeactivationPayload{
				Module: m.Title,
				Tick:   s.tick,
			})
		}
	}

	if s.CrewDraw && s.station.Roster != nil {
		s.station.Roster.Run(s.station)
		s.append(events.EventTypeRosterRun, "STATION", len(s.station.Roster.Astronauts))
	}

	s.append(events.EventTypeTimeTick, "STATION", TimeTickPayload{
		Tick:          s.tick,
		ActiveModules: active,
		CrewApplied:   s.CrewDraw,
	})
	s.append(events.EventTypeStationSnapshot, "STATION", s.snapshotLocked())

	metrics.Get().RecordTick(time.Since(start))
}

// ActivateModule switches a module back on, unconditionally. Returns false
// if no module carries the title.
func (s *Simulator) ActivateModule(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.station.Module(title)
	if !ok {
		return false
	}
	m.Activate()
	s.logger.Info("Module activated: %s", title)
	s.append(events.EventTypeModuleActivated, title, nil)
	return true
}

// ChargeModule tops up every storage of the named module. Returns false if
// no module carries the title.
func (s *Simulator) ChargeModule(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.station.Module(title)
	if !ok {
		return false
	}
	m.Charge()
	metrics.Get().RecordCharge()
	for _, st := range m.Storages {
		s.append(events.EventTypeStorageCharged, st.ID, nil)
	}
	return true
}

// ChargeAll tops up every storage of every module.
func (s *Simulator) ChargeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.station.Modules {
		m.Charge()
	}
	metrics.Get().RecordCharge()
	s.append(events.EventTypeStorageCharged, "STATION", nil)
}

// RunRoster applies one round of crew consumption without advancing the tick.
func (s *Simulator) RunRoster() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.station.Roster == nil {
		return
	}
	s.station.Roster.Run(s.station)
	s.append(events.EventTypeRosterRun, "STATION", len(s.station.Roster.Astronauts))
}

// Snapshot returns a read-only view of the station for observers.
func (s *Simulator) Snapshot() StationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() StationSnapshot {
	snap := StationSnapshot{
		Name:   s.station.Name,
		Tick:   s.tick,
		Totals: s.station.TotalResources(),
	}
	for _, m := range s.station.Modules {
		ms := ModuleStatus{
			Title:      m.Title,
			Active:     m.Active,
			AllCharged: m.AllStoragesCharged(),
		}
		for _, st := range m.Storages {
			ss := StorageStatus{ID: st.ID, Charged: st.IsCharged()}
			for _, r := range st.Resources {
				ss.Resources = append(ss.Resources, ResourceStatus{
					Type:    r.Type,
					Current: r.CurrentAmount,
					Max:     r.MaxAmount,
					Charged: r.IsCharged(),
				})
			}
			ms.Storages = append(ms.Storages, ss)
		}
		snap.Modules = append(snap.Modules, ms)
	}
	return snap
}

func (s *Simulator) append(t events.EventType, source string, payload interface{}) {
	s.simLog.Append(events.SimEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      t,
		Source:    source,
		Payload:   payload,
		Tick:      s.tick,
	})
}

// StationSnapshot is the wire-friendly view of the full station state.
type StationSnapshot struct {
	Name    string                     `json:"name"`
	Tick    int64                      `json:"tick"`
	Totals  map[resource.Type]float64 `json:"totals"`
	Modules []ModuleStatus             `json:"modules"`
}

// ModuleStatus mirrors the read-only observers a presentation layer needs.
type ModuleStatus struct {
	Title      string          `json:"title"`
	Active     bool            `json:"active"`
	AllCharged bool            `json:"all_charged"`
	Storages   []StorageStatus `json:"storages"`
}

// StorageStatus is the per-storage slice of a snapshot.
type StorageStatus struct {
	ID        string           `json:"id"`
	Charged   bool             `json:"charged"`
	Resources []ResourceStatus `json:"resources"`
}

// ResourceStatus is the per-resource slice of a snapshot.
type ResourceStatus struct {
	Type    resource.Type `json:"type"`
	Current float64       `json:"current"`
	Max     float64       `json:"max"`
	Charged bool          `json:"charged"`
}
