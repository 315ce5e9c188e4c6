package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"content-platform-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel is the redis channel instances use to fan out content
// messages to viewers connected elsewhere.
const ClusterChannel = "content_events"

// Message is what viewers receive.
type Message struct {
	Type      string    `json:"type"`
	ContentID uuid.UUID `json:"content_id"`
	HTML      string    `json:"html"`
}

type clusterEnvelope struct {
	Origin    string          `json:"origin"`
	ContentID uuid.UUID       `json:"content_id"`
	Message   json.RawMessage `json:"message"`
}

// Hub tracks live viewers per content id and pushes rendered content to them.
type Hub struct {
	// ContentID -> viewers of that content
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	// closed when Run returns
	done     chan struct{}
	stopOnce sync.Once

	mu sync.RWMutex

	// Optional: cross-instance delivery
	rdb      *redis.Client
	instance string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instance:   uuid.NewString(),
		logger:     log,
	}
}

// Run serves registrations until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ContentID] = append(h.clients[client.ContentID], client)
			h.mu.Unlock()
			h.logger.Debug("Hub", "Viewer registered", map[string]interface{}{"content_id": client.ContentID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.ContentID]
			for i, c := range clients {
				if c == client {
					h.clients[client.ContentID] = append(clients[:i:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.ContentID]) == 0 {
				delete(h.clients, client.ContentID)
			}
			h.mu.Unlock()
			h.logger.Debug("Hub", "Viewer unregistered", map[string]interface{}{"content_id": client.ContentID})
		}
	}
}

// add hands c to Run. It reports false once the hub has stopped.
func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// remove hands c to Run for removal, or gives up once the hub has stopped.
func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ViewerCount reports how many local viewers follow contentID.
func (h *Hub) ViewerCount(contentID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[contentID])
}

// BroadcastContent sends html to every viewer of contentID on this and,
// through redis, every other instance.
func (h *Hub) BroadcastContent(contentID uuid.UUID, event string, html string) {
	data, err := json.Marshal(Message{Type: event, ContentID: contentID, HTML: html})
	if err != nil {
		return
	}

	h.deliver(contentID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{Origin: h.instance, ContentID: contentID, Message: data})
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to cluster", map[string]interface{}{"error": err.Error()})
		}
	}
}

// deliver never blocks: a viewer whose buffer is full is dropped.
func (h *Hub) deliver(contentID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[contentID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Viewer buffer full, dropping connection", map[string]interface{}{"content_id": contentID})
			go h.remove(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var env clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if env.Origin == h.instance {
			continue
		}
		h.deliver(env.ContentID, env.Message)
	}
}
