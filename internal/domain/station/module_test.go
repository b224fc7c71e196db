package station

import (
	"testing"

	"github.com/avern-labs/orbital-station/internal/domain/agent"
	"github.com/avern-labs/orbital-station/internal/domain/resource"
)

func habitationFixture() (*resource.Storage, *Module) {
	loop := resource.NewStorage("life-support-loop",
		resource.NewResource(resource.Water, 1000, 2000),
		resource.NewResource(resource.Electricity, 5000, 10000),
		resource.NewResource(resource.Oxygen, 800, 2000),
		resource.NewResource(resource.CarbonDioxide, 0, 1000),
	)

	alice := agent.NewAstronaut("Alice", 60, 1.0, map[resource.Type]float64{
		resource.Water:         3,
		resource.Electricity:   100,
		resource.Oxygen:        0.8,
		resource.CarbonDioxide: -0.8,
	})
	bob := agent.NewAstronaut("Bob", 80, 1.2, map[resource.Type]float64{
		resource.Water:         2.5,
		resource.Electricity:   90,
		resource.Oxygen:        0.7,
		resource.CarbonDioxide: -0.7,
	})

	m := NewModule("Habitation Module", []*resource.Storage{loop}, []agent.Agent{alice, bob})
	m.Activate()
	return loop, m
}

func TestRunInactiveModuleIsNoOp(t *testing.T) {
	loop, m := habitationFixture()
	m.Active = false

	m.Run()

	w, _ := loop.GetResource(resource.Water)
	if w.CurrentAmount != 1000 {
		t.Errorf("Inactive module must not touch storage, Water went to %f", w.CurrentAmount)
	}
	if m.Active {
		t.Errorf("Inactive module must stay inactive after Run")
	}
}

func TestRunWithdrawalScaling(t *testing.T) {
	// Withdrawal per agent rate r against a storage holding n resources,
	// where the target resource has max m, is exactly r * n * m.
	loop, m := habitationFixture()

	m.Run()

	// Water: rates 3 + 2.5, n = 4 resources in the loop, max = 2000.
	w, _ := loop.GetResource(resource.Water)
	want := 1000.0 - (3+2.5)*4*2000
	if w.CurrentAmount != want {
		t.Errorf("Expected Water at %f after one run, got %f", want, w.CurrentAmount)
	}

	// Carbon dioxide rates are negative (production): level must rise.
	co2, _ := loop.GetResource(resource.CarbonDioxide)
	wantCO2 := 0.0 - (-0.8-0.7)*4*1000
	if co2.CurrentAmount != wantCO2 {
		t.Errorf("Expected CarbonDioxide at %f after one run, got %f", wantCO2, co2.CurrentAmount)
	}
}

func TestRunAppliesPerStorageIndependently(t *testing.T) {
	// Two storages holding the same type each pay the full scaled rate;
	// nothing is split between them.
	tankA := resource.NewStorage("tank-a", resource.NewResource(resource.Water, 500, 1000))
	tankB := resource.NewStorage("tank-b",
		resource.NewResource(resource.Water, 500, 1000),
		resource.NewResource(resource.Oxygen, 100, 200),
	)
	crew := agent.NewAstronaut("Solo", 70, 1.0, map[resource.Type]float64{resource.Water: 2})

	m := NewModule("Dual Tank", []*resource.Storage{tankA, tankB}, []agent.Agent{crew})
	m.Activate()
	m.Run()

	a, _ := tankA.GetResource(resource.Water)
	if a.CurrentAmount != 500-2*1*1000 {
		t.Errorf("tank-a: expected %f, got %f", 500-2*1*1000.0, a.CurrentAmount)
	}
	b, _ := tankB.GetResource(resource.Water)
	if b.CurrentAmount != 500-2*2*1000 {
		t.Errorf("tank-b: expected %f, got %f", 500-2*2*1000.0, b.CurrentAmount)
	}
}

func TestRunNeverDeactivatesWithEmptyRequirement(t *testing.T) {
	// With the default empty MinRequired, the post-run check is vacuously
	// true: the module stays active no matter how negative levels get.
	// This is current behavior, not desired behavior.
	_, m := habitationFixture()

	for i := 0; i < 50; i++ {
		m.Run()
	}
	if !m.Active {
		t.Errorf("Module must never self-deactivate under an empty requirement map")
	}
}

func TestRunDeactivatesWhenMinRequiredConfigured(t *testing.T) {
	loop, m := habitationFixture()
	m.MinRequired = map[resource.Type]float64{resource.Water: 0}

	m.Run()

	if m.Active {
		t.Errorf("Module must deactivate once Water drops below the configured floor")
	}
	w, _ := loop.GetResource(resource.Water)
	if w.CurrentAmount >= 0 {
		t.Errorf("Test premise broken: Water should be negative, got %f", w.CurrentAmount)
	}

	// Deactivation is a side effect of Run only; Activate flips it back
	// unconditionally, with no resource check.
	m.Activate()
	if !m.Active {
		t.Errorf("Activate must succeed over drained storages")
	}
}

func TestChargeAndAllStoragesCharged(t *testing.T) {
	loop, m := habitationFixture()

	if m.AllStoragesCharged() {
		t.Errorf("Fixture starts partially drained, must not report charged")
	}
	m.Charge()
	if !m.AllStoragesCharged() {
		t.Errorf("Expected all storages charged after Charge")
	}
	w, _ := loop.GetResource(resource.Water)
	if w.CurrentAmount != w.MaxAmount {
		t.Errorf("Expected Water at max after charge, got %f", w.CurrentAmount)
	}
}
