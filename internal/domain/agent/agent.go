// Package agent defines the crew and biological entities that consume or
// produce station resources each tick.
// This package is PURE and must NOT import any infrastructure packages.
package agent

import "github.com/avern-labs/orbital-station/internal/domain/resource"

// Kind tags the closed set of agent variants.
type Kind string

const (
	KindAstronaut Kind = "ASTRONAUT"
	KindPlant     Kind = "PLANT"
)

// Agent is the single capability the engine cares about: a per-tick rate for
// each resource type. Positive rates consume, negative rates produce.
type Agent interface {
	// Rates returns the per-tick consumption/production mapping.
	Rates() map[resource.Type]float64
	// Kind identifies the concrete variant.
	Kind() Kind
}

// Astronaut is a crew member. Mass also drives the roster's separate
// consumption path (rate * mass per tick).
type Astronaut struct {
	Name       string                    `json:"name"`
	Mass       float64                   `json:"mass"`
	Metabolism float64                   `json:"metabolism"`
	Consumes   map[resource.Type]float64 `json:"consumes"`
}

// NewAstronaut creates a crew member with the given rate mapping.
func NewAstronaut(name string, mass, metabolism float64, rates map[resource.Type]float64) *Astronaut {
	return &Astronaut{
		Name:       name,
		Mass:       mass,
		Metabolism: metabolism,
		Consumes:   rates,
	}
}

func (a *Astronaut) Rates() map[resource.Type]float64 { return a.Consumes }

func (a *Astronaut) Kind() Kind { return KindAstronaut }

// Plant is greenhouse biomass. Plants typically carry negative oxygen rates
// (production) and positive carbon dioxide rates (uptake is modelled as
// consumption of CO2).
type Plant struct {
	Mass     float64                   `json:"mass"`
	Consumes map[resource.Type]float64 `json:"consumes"`
}

// NewPlant creates a plant with the given rate mapping.
func NewPlant(mass float64, rates map[resource.Type]float64) *Plant {
	return &Plant{
		Mass:     mass,
		Consumes: rates,
	}
}

func (p *Plant) Rates() map[resource.Type]float64 { return p.Consumes }

func (p *Plant) Kind() Kind { return KindPlant }
