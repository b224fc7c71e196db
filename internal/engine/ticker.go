package engine

import (
	"context"
	"time"

	"github.com/avern-labs/orbital-station/internal/platform/logger"
)

// DefaultTickRate is the wall-clock interval between simulation steps when
// the server driver runs the station in real time.
const DefaultTickRate = 5 * time.Second

// Ticker drives a Simulator from wall-clock time. It is purely a convenience
// for the long-running server: the Simulator itself only ever advances when
// Step is called, and headless drivers call Step directly.
type Ticker struct {
	sim      *Simulator
	logger   *logger.Logger
	rate     time.Duration
	stopChan chan struct{}
}

// NewTicker creates a ticker over the simulator. A non-positive rate falls
// back to DefaultTickRate.
func NewTicker(sim *Simulator, log *logger.Logger, rate time.Duration) *Ticker {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Ticker{
		sim:      sim,
		logger:   log,
		rate:     rate,
		stopChan: make(chan struct{}),
	}
}

// Start begins the stepping loop. Call in a goroutine.
func (t *Ticker) Start(ctx context.Context) {
	t.logger.Info("Station ticker started (rate %s)", t.rate)

	ticker := time.NewTicker(t.rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Station ticker stopped by context.")
			return
		case <-t.stopChan:
			t.logger.Info("Station ticker stopped manually.")
			return
		case <-ticker.C:
			t.sim.Step()
		}
	}
}

// Stop gracefully stops the ticker.
func (t *Ticker) Stop() {
	close(t.stopChan)
}
