package engine

import (
	"testing"

	"github.com/avern-labs/orbital-station/internal/domain/agent"
	"github.com/avern-labs/orbital-station/internal/domain/resource"
	"github.com/avern-labs/orbital-station/internal/domain/station"
	"github.com/avern-labs/orbital-station/internal/events"
	"github.com/avern-labs/orbital-station/internal/platform/logger"
)

func testStation() (*resource.Storage, *station.Station) {
	loop := resource.NewStorage("life-support-loop",
		resource.NewResource(resource.Water, 1000, 2000),
		resource.NewResource(resource.Oxygen, 800, 2000),
	)
	alice := agent.NewAstronaut("Alice", 60, 1.0, map[resource.Type]float64{
		resource.Water: 0.01,
	})
	m := station.NewModule("Habitation Module", []*resource.Storage{loop}, []agent.Agent{alice})
	m.Activate()

	return loop, station.NewStation("Outpost Ariel", []*station.Module{m}, station.NewRoster(alice))
}

func TestStepAdvancesTickAndEmitsEvents(t *testing.T) {
	_, st := testStation()
	simLog := events.NewSimLog(nil)
	sim := NewSimulator(st, simLog, logger.NewLogger())

	sim.Step()
	sim.Step()

	if sim.Tick() != 2 {
		t.Errorf("Expected tick 2 after two steps, got %d", sim.Tick())
	}
	if got := len(simLog.GetByType(events.EventTypeTimeTick)); got != 2 {
		t.Errorf("Expected 2 TIME_TICK events, got %d", got)
	}
	if got := len(simLog.GetByType(events.EventTypeStationSnapshot)); got != 2 {
		t.Errorf("Expected 2 STATION_SNAPSHOT events, got %d", got)
	}
}

func TestStepRunsModules(t *testing.T) {
	loop, st := testStation()
	sim := NewSimulator(st, events.NewSimLog(nil), logger.NewLogger())

	sim.Step()

	// rate 0.01 * 2 resources * max 2000 = 40 per step.
	w, _ := loop.GetResource(resource.Water)
	if w.CurrentAmount != 1000-40 {
		t.Errorf("Expected Water at 960 after one step, got %f", w.CurrentAmount)
	}
}

func TestStepCrewDrawIsAdditive(t *testing.T) {
	loop, st := testStation()
	sim := NewSimulator(st, events.NewSimLog(nil), logger.NewLogger())
	sim.CrewDraw = true

	sim.Step()

	// Module pass: 0.01 * 2 * 2000 = 40. Roster pass: 0.01 * mass 60 = 0.6.
	w, _ := loop.GetResource(resource.Water)
	want := 1000.0 - 40 - 0.6
	if w.CurrentAmount != want {
		t.Errorf("Expected Water at %f with crew draw, got %f", want, w.CurrentAmount)
	}
}

func TestStepEmitsDeactivationEvent(t *testing.T) {
	_, st := testStation()
	st.Modules[0].MinRequired = map[resource.Type]float64{resource.Water: 1000}

	simLog := events.NewSimLog(nil)
	sim := NewSimulator(st, simLog, logger.NewLogger())

	sim.Step()

	if st.Modules[0].Active {
		t.Fatalf("Module should have deactivated below the Water floor")
	}
	deacts := simLog.GetByType(events.EventTypeModuleDeactivated)
	if len(deacts) != 1 {
		t.Fatalf("Expected 1 MODULE_DEACTIVATED event, got %d", len(deacts))
	}
	if deacts[0].Source != "Habitation Module" {
		t.Errorf("Expected deactivation source Habitation Module, got %s", deacts[0].Source)
	}

	// Already-inactive modules emit no further deactivation events.
	sim.Step()
	if got := len(simLog.GetByType(events.EventTypeModuleDeactivated)); got != 1 {
		t.Errorf("Expected no extra deactivation events, got %d", got)
	}
}

func TestActivateAndChargeOperations(t *testing.T) {
	loop, st := testStation()
	st.Modules[0].Active = false

	simLog := events.NewSimLog(nil)
	sim := NewSimulator(st, simLog, logger.NewLogger())

	if sim.ActivateModule("Cargo Bay") {
		t.Errorf("Activating an unknown module must report failure")
	}
	if !sim.ActivateModule("Habitation Module") {
		t.Errorf("Activating a known module must succeed")
	}
	if !st.Modules[0].Active {
		t.Errorf("Module should be active after ActivateModule")
	}

	if sim.ChargeModule("Cargo Bay") {
		t.Errorf("Charging an unknown module must report failure")
	}
	if !sim.ChargeModule("Habitation Module") {
		t.Errorf("Charging a known module must succeed")
	}
	if !loop.IsCharged() {
		t.Errorf("Storage should be charged after ChargeModule")
	}
	if got := len(simLog.GetByType(events.EventTypeStorageCharged)); got != 1 {
		t.Errorf("Expected 1 STORAGE_CHARGED event, got %d", got)
	}

	loop.RemoveResource(resource.Water, 10)
	sim.ChargeAll()
	if !loop.IsCharged() {
		t.Errorf("Storage should be charged after ChargeAll")
	}
}

func TestSnapshotShape(t *testing.T) {
	_, st := testStation()
	sim := NewSimulator(st, events.NewSimLog(nil), logger.NewLogger())

	snap := sim.Snapshot()
	if snap.Name != "Outpost Ariel" {
		t.Errorf("Expected station name in snapshot, got %q", snap.Name)
	}
	if len(snap.Modules) != 1 {
		t.Fatalf("Expected 1 module in snapshot, got %d", len(snap.Modules))
	}
	ms := snap.Modules[0]
	if ms.Title != "Habitation Module" || !ms.Active {
		t.Errorf("Module status not mirrored: %+v", ms)
	}
	if len(ms.Storages) != 1 || len(ms.Storages[0].Resources) != 2 {
		t.Fatalf("Storage/resource breakdown missing from snapshot")
	}
	if snap.Totals[resource.Water] != 1000 {
		t.Errorf("Expected Water total 1000 in snapshot, got %f", snap.Totals[resource.Water])
	}
}
