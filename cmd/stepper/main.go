// Package main - stepper
// Headless batch driver: load a scenario, advance the station a fixed number
// of ticks, and print the resource totals per tick. Useful for balance
// experiments without bringing up the server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/avern-labs/orbital-station/internal/domain/resource"
	"github.com/avern-labs/orbital-station/internal/engine"
	"github.com/avern-labs/orbital-station/internal/events"
	"github.com/avern-labs/orbital-station/internal/platform/logger"
	"github.com/avern-labs/orbital-station/internal/scenario"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to scenario file (empty = built-in default)")
	steps := flag.Int("steps", 10, "number of ticks to run")
	crew := flag.Bool("crew", false, "apply roster consumption on every tick")
	charge := flag.Bool("charge", false, "charge all storages before stepping")
	flag.Parse()

	appLogger := logger.NewLogger()

	sc := scenario.Default()
	if *scenarioPath != "" {
		loaded, err := scenario.Load(*scenarioPath)
		if err != nil {
			appLogger.Error("Failed to load scenario: %v", err)
			os.Exit(1)
		}
		sc = loaded
	}

	st, err := sc.Build()
	if err != nil {
		appLogger.Error("Invalid scenario: %v", err)
		os.Exit(1)
	}

	simLog := events.NewSimLog(nil)
	sim := engine.NewSimulator(st, simLog, appLogger)
	sim.CrewDraw = *crew

	if *charge {
		sim.ChargeAll()
	}

	fmt.Printf("Station: %s (%d modules, %d crew)\n", st.Name, len(st.Modules), len(st.Roster.Astronauts))
	printHeader()
	printTotals(0, st.TotalResources())

	for i := 0; i < *steps; i++ {
		sim.Step()
		printTotals(sim.Tick(), st.TotalResources())
	}

	deactivations := simLog.GetByType(events.EventTypeModuleDeactivated)
	if len(deactivations) > 0 {
		fmt.Printf("\n%d module deactivation(s):\n", len(deactivations))
		for _, e := range deactivations {
			fmt.Printf("  tick %d: %s\n", e.Tick, e.Source)
		}
	}
}

func printHeader() {
	fmt.Printf("%6s", "tick")
	for _, t := range resource.Types {
		fmt.Printf(" %16s", t)
	}
	fmt.Println()
}

func printTotals(tick int64, totals map[resource.Type]float64) {
	fmt.Printf("%6d", tick)
	for _, t := range resource.Types {
		fmt.Printf(" %16.2f", totals[t])
	}
	fmt.Println()
}
