package resource

// Storage is a container holding one resource per type (by convention; the
// engine does not enforce uniqueness). Identity is the ID, never the contents:
// two modules referencing the same Storage pointer share one physical tank.
type Storage struct {
	ID        string      `json:"id"`
	Resources []*Resource `json:"resources"`
}

// NewStorage creates a storage owning the given resources.
func NewStorage(id string, resources ...*Resource) *Storage {
	return &Storage{
		ID:        id,
		Resources: resources,
	}
}

// Charge tops every resource up to its maximum. Idempotent; it also
// collapses any overcharge back down to max.
func (s *Storage) Charge() {
	for _, r := range s.Resources {
		r.CurrentAmount = r.MaxAmount
	}
}

// GetResource returns the resource of the given type, or false if the
// storage does not hold that type.
func (s *Storage) GetResource(t Type) (*Resource, bool) {
	for _, r := range s.Resources {
		if r.Type == t {
			return r, true
		}
	}
	return nil, false
}

// AddResource raises the level of the matching resource by amount.
// Silent no-op when the type is absent. There is NO clamping to MaxAmount:
// overcharge is a valid state and must be preserved as-is.
func (s *Storage) AddResource(t Type, amount float64) {
	r, ok := s.GetResource(t)
	if !ok {
		return
	}
	r.CurrentAmount += amount
}

// RemoveResource lowers the level of the matching resource by amount.
// Silent no-op when the type is absent. There is NO clamping to zero:
// levels may go negative, and the module deactivation check depends on
// seeing those negative values.
func (s *Storage) RemoveResource(t Type, amount float64) {
	r, ok := s.GetResource(t)
	if !ok {
		return
	}
	r.CurrentAmount -= amount
}

// HasSufficientResources reports whether, for every (type, amount) pair in
// required, the storage holds that type at or above the amount. An empty
// requirement map is vacuously true for any storage.
func (s *Storage) HasSufficientResources(required map[Type]float64) bool {
	for t, amount := range required {
		r, ok := s.GetResource(t)
		if !ok {
			return false
		}
		if r.CurrentAmount < amount {
			return false
		}
	}
	return true
}

// IsCharged reports whether every owned resource is at capacity.
func (s *Storage) IsCharged() bool {
	for _, r := range s.Resources {
		if !r.IsCharged() {
			return false
		}
	}
	return true
}
