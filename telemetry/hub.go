package telemetry

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/Nikitarc/mazerunner-core/mouse"
)

var _ mouse.Reporter = (*Hub)(nil)

// sendBuffer is how many records a subscriber may fall behind before
// records are dropped for it.
const sendBuffer = 16

// record is the wire form of one trace record.
type record struct {
	Action   string  `json:"action"`
	State    string  `json:"state"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Heading  string  `json:"heading"`
	Position float64 `json:"position"`
	FrontSum float64 `json:"front"`
}

// Hub broadcasts trace records to websocket subscribers. It serves the
// upgrade endpoint itself, so mounting it is one http.Handle call.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]*hubClient
	closed  bool
}

type hubClient struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan record
}

// NewHub returns a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[uuid.UUID]*hubClient),
	}
}

// ServeHTTP upgrades the request and registers the peer as a
// subscriber until it disconnects or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("telemetry: websocket upgrade failed")
		return
	}

	c := &hubClient{
		id:   uuid.New(),
		conn: conn,
		send: make(chan record, sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c.id] = c
	h.mu.Unlock()

	log.WithField("client", c.id).Info("telemetry: subscriber connected")
	go h.writeLoop(c)
	go h.readLoop(c)
}

// Report broadcasts one record. It never blocks: a subscriber whose
// buffer is full loses this record.
func (h *Hub) Report(rep mouse.Report) {
	rec := record{
		Action:   rep.Action.String(),
		State:    rep.State.String(),
		X:        rep.Location.X,
		Y:        rep.Location.Y,
		Heading:  rep.Heading.String(),
		Position: rep.Position,
		FrontSum: rep.FrontSum,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- rec:
		default:
			log.WithField("client", c.id).Debug("telemetry: subscriber behind, record dropped")
		}
	}
}

// ClientCount returns the number of live subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close drops every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	dropped := make([]*hubClient, 0, len(h.clients))
	for _, c := range h.clients {
		dropped = append(dropped, c)
	}
	h.clients = make(map[uuid.UUID]*hubClient)
	for _, c := range dropped {
		close(c.send)
	}
	h.mu.Unlock()

	for _, c := range dropped {
		c.conn.Close()
	}
}

// drop unregisters one subscriber. Safe to call twice; only the first
// call finds the client registered.
func (h *Hub) drop(c *hubClient) {
	h.mu.Lock()
	_, live := h.clients[c.id]
	if live {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()

	if live {
		c.conn.Close()
		log.WithField("client", c.id).Info("telemetry: subscriber dropped")
	}
}

// writeLoop drains the send buffer onto the socket. The channel closes
// when the subscriber is dropped or the hub shuts down.
func (h *Hub) writeLoop(c *hubClient) {
	for rec := range c.send {
		if err := c.conn.WriteJSON(rec); err != nil {
			log.WithError(err).WithField("client", c.id).Warn("telemetry: write failed")
			h.drop(c)
			return
		}
	}
}

// readLoop consumes whatever the peer sends, only to notice it going
// away.
func (h *Hub) readLoop(c *hubClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}
