package resource

import "testing"

func sampleStorage() *Storage {
	return NewStorage("life-support-loop",
		NewResource(Water, 1000, 2000),
		NewResource(Electricity, 5000, 10000),
		NewResource(Oxygen, 800, 2000),
		NewResource(CarbonDioxide, 0, 1000),
	)
}

func TestChargeIdempotent(t *testing.T) {
	s := sampleStorage()

	s.Charge()
	if !s.IsCharged() {
		t.Errorf("Expected storage to be charged after Charge()")
	}

	w, _ := s.GetResource(Water)
	if w.CurrentAmount != 2000 {
		t.Errorf("Expected Water at 2000 after charge, got %f", w.CurrentAmount)
	}

	// Charging twice yields the same state as charging once.
	s.Charge()
	w, _ = s.GetResource(Water)
	if w.CurrentAmount != 2000 {
		t.Errorf("Expected Water still at 2000 after second charge, got %f", w.CurrentAmount)
	}
}

func TestAddResourceNoClamp(t *testing.T) {
	s := sampleStorage()

	// Overcharge past max is preserved as-is.
	s.AddResource(Water, 5000)
	w, _ := s.GetResource(Water)
	if w.CurrentAmount != 6000 {
		t.Errorf("Expected Water at 6000 (no clamping to max), got %f", w.CurrentAmount)
	}
	if !w.IsCharged() {
		t.Errorf("Overcharged resource should report charged")
	}

	// Missing type is a silent no-op, not an error.
	before := s.Resources
	s.AddResource(Type("PLASMA"), 100)
	for i, r := range s.Resources {
		if r != before[i] {
			t.Errorf("AddResource of unknown type must not alter storage")
		}
	}
}

func TestRemoveResourceGoesNegative(t *testing.T) {
	s := sampleStorage()

	s.RemoveResource(Oxygen, 1000)
	o, _ := s.GetResource(Oxygen)
	if o.CurrentAmount != -200 {
		t.Errorf("Expected Oxygen at -200 (no clamping to zero), got %f", o.CurrentAmount)
	}

	// Missing type: silent no-op.
	s.RemoveResource(Type("FUEL"), 50)
	o, _ = s.GetResource(Oxygen)
	if o.CurrentAmount != -200 {
		t.Errorf("Remove of unknown type must not alter other resources")
	}
}

func TestGetResourceMissing(t *testing.T) {
	s := NewStorage("empty")
	if _, ok := s.GetResource(Water); ok {
		t.Errorf("Expected GetResource to report missing on empty storage")
	}
}

func TestHasSufficientResourcesEmptyRequirement(t *testing.T) {
	// Vacuously true, even for a storage with zero resources.
	empty := NewStorage("empty")
	if !empty.HasSufficientResources(map[Type]float64{}) {
		t.Errorf("Empty requirement must be satisfied by an empty storage")
	}
	if !empty.HasSufficientResources(nil) {
		t.Errorf("Nil requirement must be satisfied by an empty storage")
	}

	s := sampleStorage()
	if !s.HasSufficientResources(map[Type]float64{}) {
		t.Errorf("Empty requirement must be satisfied by any storage")
	}
}

func TestHasSufficientResources(t *testing.T) {
	s := sampleStorage()

	if !s.HasSufficientResources(map[Type]float64{Water: 1000, Oxygen: 800}) {
		t.Errorf("Exact amounts should satisfy the requirement")
	}
	if s.HasSufficientResources(map[Type]float64{Water: 1000.5}) {
		t.Errorf("Requirement above current level must fail")
	}
	if s.HasSufficientResources(map[Type]float64{Type("FUEL"): 1}) {
		t.Errorf("Requirement on an absent type must fail")
	}
}

func TestIsChargedRequiresAllResources(t *testing.T) {
	s := sampleStorage()
	s.Charge()
	s.RemoveResource(CarbonDioxide, 1)
	if s.IsCharged() {
		t.Errorf("Storage with one drained resource must not report charged")
	}
}
