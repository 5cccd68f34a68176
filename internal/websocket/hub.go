package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"rfp-console/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	logModule      = "Hub"
	clusterChannel = "console_events"

	TypeState = "state"
	TypeToast = "toast"
)

// Message is the frame pushed to every connected client.
type Message struct {
	Type    string `json:"type"`
	Slice   string `json:"slice,omitempty"`
	Version uint64 `json:"version,omitempty"`
	Data    any    `json:"data"`
}

type clusterEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

type Hub struct {
	// Connected clients, one per browser tab.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Outbound frames waiting for the run loop.
	outbound chan []byte

	// Closed once Run returns.
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Nil runs single-instance.
	rdb    *redis.Client
	origin string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan []byte, 256),
		done:       make(chan struct{}),
		rdb:        rdb,
		origin:     uuid.NewString(),
		logger:     log,
	}
}

// Run serves registrations and outbound frames until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info(logModule, "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.remove(client)

		case data := <-h.outbound:
			h.deliver(data)
			if h.rdb != nil {
				payload, _ := json.Marshal(clusterEnvelope{Origin: h.origin, Message: data})
				if err := h.rdb.Publish(ctx, clusterChannel, payload).Err(); err != nil {
					h.logger.Warn(logModule, "Failed to publish to cluster", map[string]interface{}{"error": err.Error()})
				}
			}
		}
	}
}

// Publish queues msg for every client of every instance. It never blocks;
// frames are dropped when the queue is full.
func (h *Hub) Publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error(logModule, "Failed to encode frame", map[string]interface{}{"type": msg.Type, "error": err.Error()})
		return
	}
	select {
	case h.outbound <- data:
	default:
		h.logger.Warn(logModule, "Outbound queue full, dropping frame", map[string]interface{}{"type": msg.Type, "slice": msg.Slice})
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) deliver(data []byte) {
	var stale []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn(logModule, "Client send buffer full, dropping client", map[string]interface{}{"client_id": client.ID})
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	h.logger.Info(logModule, "Client unregistered", map[string]interface{}{"client_id": client.ID})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.Send)
	}
}

// subscribeToRedis delivers frames published by other instances.
func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env clusterEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				h.logger.Warn(logModule, "Cluster message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if env.Origin == h.origin {
				continue
			}
			h.deliver(env.Message)
		}
	}
}
