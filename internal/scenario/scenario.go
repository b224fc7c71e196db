// Package scenario loads station definitions from YAML and owns the storage
// registry that makes cross-module tank sharing explicit: modules reference
// storages by id, and two modules naming the same id receive the same
// *resource.Storage instance.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avern-labs/orbital-station/internal/domain/agent"
	"github.com/avern-labs/orbital-station/internal/domain/resource"
	"github.com/avern-labs/orbital-station/internal/domain/station"
)

// ResourceSpec is one resource line inside a storage definition.
type ResourceSpec struct {
	Type    resource.Type `yaml:"type"`
	Current float64       `yaml:"current"`
	Max     float64       `yaml:"max"`
}

// StorageSpec defines one shared tank.
type StorageSpec struct {
	ID        string         `yaml:"id"`
	Resources []ResourceSpec `yaml:"resources"`
}

// AstronautSpec defines one crew member.
type AstronautSpec struct {
	Name       string                    `yaml:"name"`
	Mass       float64                   `yaml:"mass"`
	Metabolism float64                   `yaml:"metabolism"`
	Rates      map[resource.Type]float64 `yaml:"rates"`
}

// PlantSpec defines greenhouse biomass local to one module.
type PlantSpec struct {
	Mass  float64                   `yaml:"mass"`
	Rates map[resource.Type]float64 `yaml:"rates"`
}

// ModuleSpec defines one station module. Storages are referenced by id,
// astronauts by crew name.
type ModuleSpec struct {
	Title       string                    `yaml:"title"`
	Storages    []string                  `yaml:"storages"`
	Astronauts  []string                  `yaml:"astronauts"`
	Plants      []PlantSpec               `yaml:"plants"`
	Active      bool                      `yaml:"active"`
	MinRequired map[resource.Type]float64 `yaml:"min_required"`
}

// Scenario is the root YAML document.
type Scenario struct {
	Station         string          `yaml:"station"`
	TickRateSeconds int             `yaml:"tick_rate_seconds"`
	CrewDraw        bool            `yaml:"crew_draw"`
	Storages        []StorageSpec   `yaml:"storages"`
	Crew            []AstronautSpec `yaml:"crew"`
	Modules         []ModuleSpec    `yaml:"modules"`
	Roster          []string        `yaml:"roster"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario yaml: %w", err)
	}
	return &sc, nil
}

// Build constructs the station graph. Shared storage ids resolve to shared
// instances through the registry.
func (sc *Scenario) Build() (*station.Station, error) {
	registry := make(map[string]*resource.Storage, len(sc.Storages))
	for _, ss := range sc.Storages {
		if _, dup := registry[ss.ID]; dup {
			return nil, fmt.Errorf("duplicate storage id %q", ss.ID)
		}
		var resources []*resource.Resource
		for _, rs := range ss.Resources {
			if !resource.Known(rs.Type) {
				return nil, fmt.Errorf("storage %q: unknown resource type %q", ss.ID, rs.Type)
			}
			resources = append(resources, resource.NewResource(rs.Type, rs.Current, rs.Max))
		}
		registry[ss.ID] = resource.NewStorage(ss.ID, resources...)
	}

	crew := make(map[string]*agent.Astronaut, len(sc.Crew))
	for _, as := range sc.Crew {
		if err := checkRates(as.Rates); err != nil {
			return nil, fmt.Errorf("crew %q: %w", as.Name, err)
		}
		crew[as.Name] = agent.NewAstronaut(as.Name, as.Mass, as.Metabolism, as.Rates)
	}

	var modules []*station.Module
	for _, ms := range sc.Modules {
		var storages []*resource.Storage
		for _, id := range ms.Storages {
			s, ok := registry[id]
			if !ok {
				return nil, fmt.Errorf("module %q: unknown storage id %q", ms.Title, id)
			}
			storages = append(storages, s)
		}

		var agents []agent.Agent
		for _, name := range ms.Astronauts {
			a, ok := crew[name]
			if !ok {
				return nil, fmt.Errorf("module %q: unknown crew member %q", ms.Title, name)
			}
			agents = append(agents, a)
		}
		for _, ps := range ms.Plants {
			if err := checkRates(ps.Rates); err != nil {
				return nil, fmt.Errorf("module %q plant: %w", ms.Title, err)
			}
			agents = append(agents, agent.NewPlant(ps.Mass, ps.Rates))
		}

		m := station.NewModule(ms.Title, storages, agents)
		if ms.Active {
			m.Activate()
		}
		if len(ms.MinRequired) > 0 {
			if err := checkRates(ms.MinRequired); err != nil {
				return nil, fmt.Errorf("module %q min_required: %w", ms.Title, err)
			}
			m.MinRequired = ms.MinRequired
		}
		modules = append(modules, m)
	}

	var rosterCrew []*agent.Astronaut
	for _, name := range sc.Roster {
		a, ok := crew[name]
		if !ok {
			return nil, fmt.Errorf("roster: unknown crew member %q", name)
		}
		rosterCrew = append(rosterCrew, a)
	}

	return station.NewStation(sc.Station, modules, station.NewRoster(rosterCrew...)), nil
}

func checkRates(rates map[resource.Type]float64) error {
	for t := range rates {
		if !resource.Known(t) {
			return fmt.Errorf("unknown resource type %q", t)
		}
	}
	return nil
}

// Default returns the fixed sample station: one life-support loop shared by
// the habitation and greenhouse modules, crewed by Alice and Bob. The shared
// storage is deliberate: both modules draw on the same tanks, and station
// totals count the loop once per referencing module.
func Default() *Scenario {
	return &Scenario{
		Station:         "Outpost Ariel",
		TickRateSeconds: 5,
		CrewDraw:        false,
		Storages: []StorageSpec{
			{
				ID: "life-support-loop",
				Resources: []ResourceSpec{
					{Type: resource.Water, Current: 1000, Max: 2000},
					{Type: resource.Electricity, Current: 5000, Max: 10000},
					{Type: resource.Oxygen, Current: 800, Max: 2000},
					{Type: resource.CarbonDioxide, Current: 0, Max: 1000},
				},
			},
		},
		Crew: []AstronautSpec{
			{
				Name:       "Alice",
				Mass:       60,
				Metabolism: 1.0,
				Rates: map[resource.Type]float64{
					resource.Water:         3,
					resource.Electricity:   100,
					resource.Oxygen:        0.8,
					resource.CarbonDioxide: -0.8,
				},
			},
			{
				Name:       "Bob",
				Mass:       80,
				Metabolism: 1.2,
				Rates: map[resource.Type]float64{
					resource.Water:         2.5,
					resource.Electricity:   90,
					resource.Oxygen:        0.7,
					resource.CarbonDioxide: -0.7,
				},
			},
		},
		Modules: []ModuleSpec{
			{
				Title:      "Habitation Module",
				Storages:   []string{"life-support-loop"},
				Astronauts: []string{"Alice", "Bob"},
				Active:     true,
			},
			{
				Title:    "Greenhouse Module",
				Storages: []string{"life-support-loop"},
				Plants: []PlantSpec{
					{
						Mass: 40,
						Rates: map[resource.Type]float64{
							resource.Water:         0.2,
							resource.Electricity:   1.5,
							resource.Oxygen:        -0.5,
							resource.CarbonDioxide: 0.4,
						},
					},
				},
				Active: true,
			},
		},
		Roster: []string{"Alice", "Bob"},
	}
}
