package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The server binds to a local address and the viewer page comes
	// from the same process, so any origin on that address is fine.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub fans paint directives out to every connected viewer page and
// feeds their commands back into the session.
type Hub struct {
	session *Session
	mu      sync.Mutex
	clients map[uuid.UUID]*client
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an instance of a Hub over a session.
func NewHub(session *Session) *Hub {
	h := new(Hub)
	h.session = session
	h.clients = make(map[uuid.UUID]*client)
	return h
}

// Broadcast marshals v and queues it to every client. Clients that
// cannot keep up are dropped rather than allowed to stall the ticker.
func (h *Hub) Broadcast(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("api: marshal broadcast: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("api: client %s too slow, dropping", id)
			close(c.send)
			delete(h.clients, id)
		}
	}
}

// HandleWS upgrades the connection, greets the client with the loaded
// sequence, and pumps messages both ways until the peer goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("api: upgrade: %v", err)
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, 16)}

	// Queue the greeting before the client is visible to Broadcast,
	// so a concurrent drop can never close the channel under this
	// send and the hello is always the first message out.
	hello, _ := h.session.Hello()
	if data, err := json.Marshal(hello); err == nil {
		c.send <- data
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	log.Printf("api: client %s connected", c.id)

	go c.writePump()
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer h.drop(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			log.Printf("api: client %s: bad command: %v", c.id, err)
			continue
		}
		h.session.Apply(cmd)
		if cmd.Type == CmdReset {
			h.Broadcast(Hello{Type: "empty"})
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// drop removes a client after its read side ends.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		close(c.send)
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
	c.conn.Close()
	log.Printf("api: client %s disconnected", c.id)
}

// AnnounceReload re-greets every client after the watcher swapped in a
// new sequence.
func (h *Hub) AnnounceReload() {
	hello, ok := h.session.Hello()
	if !ok {
		h.Broadcast(Hello{Type: "empty"})
		return
	}
	h.Broadcast(hello)
}
