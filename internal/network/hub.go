package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/avern-labs/orbital-station/internal/engine"
	"github.com/avern-labs/orbital-station/internal/events"
	"github.com/avern-labs/orbital-station/internal/platform/logger"
	"github.com/avern-labs/orbital-station/internal/platform/metrics"
)

// Hub maintains the set of connected observers and broadcasts simulation
// events to them. The hub never touches station state directly; it reads
// the SimLog and invokes the Simulator's public operations.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	sim        *engine.Simulator
}

// NewHub initializes a new WebSocket Hub over the simulator.
func NewHub(sim *engine.Simulator, log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		sim:        sim,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("New observer connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("Observer disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEvent serializes a SimEvent and sends it to all observers.
func (h *Hub) BroadcastEvent(event events.SimEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to serialize SimEvent for broadcast: %v", err)
		metrics.Get().RecordWSError()
		return
	}
	h.broadcast <- payload
}

// StartEventPoller spawns a goroutine that polls the SimLog and pushes new
// events to the Hub. Observers see every event exactly once, in order.
func (h *Hub) StartEventPoller(ctx context.Context, simLog *events.SimLog) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastProcessed := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				all := simLog.Replay()
				if len(all) > lastProcessed {
					for _, e := range all[lastProcessed:] {
						h.BroadcastEvent(e)
					}
					lastProcessed = len(all)
				}
			}
		}
	}()
}
