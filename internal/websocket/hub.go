package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-storefront-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "storefront_chat_events"

type clusterEnvelope struct {
	Origin     string          `json:"origin"`
	SessionKey string          `json:"session_key"`
	Message    json.RawMessage `json:"message"`
}

// Hub tracks open chat sockets per session key. A signed-in shopper shares one
// key across devices and instances, so every open tab sees each reply.
type Hub struct {
	id string

	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	// optional, fans replies out to other instances
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.NewString(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

// Run serves registrations until ctx is cancelled, then closes every client's Send.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	if h.rdb != nil {
		ready := make(chan struct{})
		go h.subscribeToRedis(ctx, ready)
		<-ready
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionKey] = append(h.clients[client.SessionKey], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session": client.SessionKey})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.SessionKey]
			for i, c := range clients {
				if c == client {
					h.clients[client.SessionKey] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.SessionKey]) == 0 {
				delete(h.clients, client.SessionKey)
				h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"session": client.SessionKey})
			}
			h.mu.Unlock()
		}
	}
}

// join registers c unless the hub has stopped. It reports whether c was registered.
func (h *Hub) join(ctx context.Context, c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-ctx.Done():
		return false
	case <-h.done:
		return false
	}
}

// leave unregisters c. After shutdown closeAll has already released it.
func (h *Hub) leave(ctx context.Context, c *Client) {
	select {
	case h.unregister <- c:
	case <-ctx.Done():
	case <-h.done:
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for key, clients := range h.clients {
		for _, c := range clients {
			close(c.Send)
			n++
		}
		delete(h.clients, key)
	}
	h.logger.Info("Hub", "Stopped", map[string]interface{}{"closed_clients": n})
}

// Deliver sends data to every socket of the session, here and on other instances.
func (h *Hub) Deliver(ctx context.Context, sessionKey string, data []byte) {
	h.deliverLocal(sessionKey, data)

	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(clusterEnvelope{Origin: h.id, SessionKey: sessionKey, Message: data})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(ctx, clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish to cluster", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) deliverLocal(sessionKey string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[sessionKey] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"session": sessionKey})
		}
	}
}

func (h *Hub) ClientCount(sessionKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionKey])
}

func (h *Hub) subscribeToRedis(ctx context.Context, ready chan<- struct{}) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	// Receive blocks until the subscription is confirmed.
	if _, err := pubsub.Receive(ctx); err != nil {
		h.logger.Error("Hub", "Redis subscribe failed", map[string]interface{}{"error": err.Error()})
	}
	close(ready)

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
				h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if env.Origin == h.id {
				continue
			}
			h.deliverLocal(env.SessionKey, env.Message)
		}
	}
}
