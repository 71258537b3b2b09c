package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Message is the envelope for every frame sent to clients.
type Message struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

// Encode wraps payload in a Message stamped with the current time.
func Encode(typ string, payload any) ([]byte, error) {
	return json.Marshal(Message{
		Type:      typ,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Hub fans broadcasts out to every registered client. All client set
// changes happen on the Run goroutine.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	count      chan chan int
	done       chan struct{}
	stopOnce   sync.Once

	log     *zap.Logger
	clients map[*Client]bool
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		log:        log,
		clients:    map[*Client]bool{},
	}
}

// Run processes hub events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				h.removeClient(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			h.removeClient(c)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		case resp := <-h.count:
			resp <- len(h.clients)
		}
	}
}

// Stop makes Run return and turns every other method into a no-op.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a typed message for every client. It never blocks on a
// stopped hub.
func (h *Hub) Broadcast(typ string, payload any) {
	data, err := Encode(typ, payload)
	if err != nil {
		h.log.Error("ws broadcast marshal error", zap.String("type", typ), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// Clients reports the number of registered clients, or 0 once stopped.
func (h *Hub) Clients() int {
	resp := make(chan int, 1)
	select {
	case h.count <- resp:
		return <-resp
	case <-h.done:
		return 0
	}
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	delete(h.clients, c)
	c.closeSend()
}

func (h *Hub) fanOut(msg []byte) {
	for c := range h.clients {
		if !c.Enqueue(msg) {
			// Slow or dead client.
			h.log.Warn("ws client dropped", zap.String("client_id", c.ID))
			h.removeClient(c)
		}
	}
}
