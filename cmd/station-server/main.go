// Package main is the entry point for the orbital station simulation server.
// It only handles dependency injection and server initialization.
// NO simulation logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/avern-labs/orbital-station/internal/engine"
	"github.com/avern-labs/orbital-station/internal/events"
	"github.com/avern-labs/orbital-station/internal/infra/storage"
	"github.com/avern-labs/orbital-station/internal/network"
	"github.com/avern-labs/orbital-station/internal/platform/logger"
	"github.com/avern-labs/orbital-station/internal/platform/metrics"
	"github.com/avern-labs/orbital-station/internal/scenario"
)

// SQLitePersisterAdapter translates simulation events to storage events.
type SQLitePersisterAdapter struct {
	repo  *storage.SQLiteTelemetryRepository
	runID string
}

func (a *SQLitePersisterAdapter) Append(event events.SimEvent) error {
	start := time.Now()

	payloadBytes, _ := json.Marshal(event.Payload)
	var payloadMap map[string]interface{}
	json.Unmarshal(payloadBytes, &payloadMap)

	err := a.repo.AppendEvent(context.Background(), storage.SimEvent{
		ID:        event.ID,
		RunID:     a.runID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		Source:    event.Source,
		Payload:   payloadMap,
		Tick:      event.Tick,
	})
	metrics.Get().RecordEventWrite(time.Since(start), err)
	return err
}

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "path to the station scenario file")
	dbPath := flag.String("db", "station.db", "path to the SQLite telemetry database")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	log.Println("[STATION-SERVER] Initializing orbital station simulation server...")

	appLogger := logger.NewLogger()
	runID := time.Now().UTC().Format("20060102T150405Z")

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		appLogger.Warn("Scenario file unavailable (%v), using built-in default", err)
		sc = scenario.Default()
	}

	st, err := sc.Build()
	if err != nil {
		appLogger.Error("Invalid scenario: %v", err)
		os.Exit(1)
	}

	appLogger.Info("Initializing SQLite telemetry database %q...", *dbPath)
	db, err := storage.InitSQLite(*dbPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: %v", err)
		os.Exit(1)
	}
	telemetryRepo := storage.NewSQLiteTelemetryRepository(db)
	persister := &SQLitePersisterAdapter{repo: telemetryRepo, runID: runID}

	appLogger.Info("Bootstrapping SimLog and Simulator...")
	simLog := events.NewSimLog(persister)
	sim := engine.NewSimulator(st, simLog, appLogger)
	sim.CrewDraw = sc.CrewDraw

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tickRate := time.Duration(sc.TickRateSeconds) * time.Second
	ticker := engine.NewTicker(sim, appLogger, tickRate)
	go ticker.Start(ctx)

	// Tick journal flush: record station totals after each completed step.
	go func() {
		flush := time.NewTicker(tickRate)
		defer flush.Stop()
		var lastRecorded int64
		for {
			select {
			case <-ctx.Done():
				return
			case <-flush.C:
				snap := sim.Snapshot()
				if snap.Tick == lastRecorded {
					continue
				}
				lastRecorded = snap.Tick
				totals := make(map[string]float64, len(snap.Totals))
				for t, v := range snap.Totals {
					totals[string(t)] = v
				}
				_ = telemetryRepo.RecordTick(ctx, storage.TickRecord{
					Tick:       snap.Tick,
					RunID:      runID,
					RecordedAt: time.Now(),
					Totals:     totals,
				})
			}
		}
	}()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(sim, appLogger)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, simLog)

	// Setup API Routes
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	mux.HandleFunc("GET /api/station", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sim.Snapshot())
	})

	mux.HandleFunc("POST /api/step", func(w http.ResponseWriter, r *http.Request) {
		sim.Step()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "tick": sim.Tick()})
	})

	mux.HandleFunc("POST /api/roster/run", func(w http.ResponseWriter, r *http.Request) {
		sim.RunRoster()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/modules/{title}/activate", func(w http.ResponseWriter, r *http.Request) {
		title := r.PathValue("title")
		if !sim.ActivateModule(title) {
			http.Error(w, "Unknown module", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "module": title})
	})

	mux.HandleFunc("POST /api/modules/{title}/charge", func(w http.ResponseWriter, r *http.Request) {
		title := r.PathValue("title")
		if !sim.ChargeModule(title) {
			http.Error(w, "Unknown module", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "module": title})
	})

	mux.HandleFunc("POST /api/charge", func(w http.ResponseWriter, r *http.Request) {
		sim.ChargeAll()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /metrics", metrics.PrometheusHandler())
	mux.HandleFunc("GET /metrics.json", metrics.Handler())

	go func() {
		log.Printf("[STATION-SERVER] HTTP API & WS Server listening on %s", *addr)
		if err := http.ListenAndServe(*addr, mux); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[STATION-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[STATION-SERVER] Shutting down...")
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Observers are trusted tooling; allow cross-origin dev UIs
	},
}

// serveWs handles websocket requests from observers.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
