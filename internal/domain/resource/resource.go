// Package resource defines the core domain entities for consumable station resources.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package resource

// Type represents the kind of a life-support resource. The set is closed:
// the station tracks exactly these four quantities.
type Type string

const (
	Water         Type = "WATER"
	Electricity   Type = "ELECTRICITY"
	Oxygen        Type = "OXYGEN"
	CarbonDioxide Type = "CARBON_DIOXIDE"
)

// Types lists every known resource type, in display order.
var Types = []Type{Water, Electricity, Oxygen, CarbonDioxide}

// Known reports whether t is one of the closed set of resource types.
func Known(t Type) bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

// Resource is a single bounded quantity of one type.
// MaxAmount is fixed at construction; only CurrentAmount is ever mutated.
type Resource struct {
	Type          Type    `json:"type"`
	CurrentAmount float64 `json:"current_amount"`
	MaxAmount     float64 `json:"max_amount"`
}

// NewResource creates a resource with the given starting level and capacity.
func NewResource(t Type, current, max float64) *Resource {
	return &Resource{
		Type:          t,
		CurrentAmount: current,
		MaxAmount:     max,
	}
}

// IsCharged reports whether the resource is at (or above) capacity.
// Overcharge counts as charged.
func (r *Resource) IsCharged() bool {
	return r.CurrentAmount >= r.MaxAmount
}
