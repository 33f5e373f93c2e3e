package demo

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType is the kind of a message pushed to browsers.
type MessageType string

const (
	MessageHTML  MessageType = "html"
	MessageError MessageType = "error"
)

// Message is sent to browsers over the WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Event is a DOM event reported by a browser.
type Event struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
	Value string `json:"value"`
}

const (
	writeWait      = 5 * time.Second
	defaultOutbox  = 16
	maxMessageSize = 64 << 10
)

// LiveConfig configures a Live hub.
type LiveConfig struct {
	Logger *slog.Logger

	// OnEvent handles an event from any client. A returned error is sent
	// back to that client as an error message.
	OnEvent func(Event) error

	// Hello, if set, produces the first message sent to a new client.
	Hello func() (Message, error)

	// Outbox is the number of messages buffered per client before
	// further messages to it are dropped. Default: 16.
	Outbox int

	// CheckOrigin overrides the upgrader's same-origin check.
	CheckOrigin func(r *http.Request) bool
}

// Live manages the WebSocket connections of live pages.
type Live struct {
	config   LiveConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*liveClient]struct{}
	closed  bool
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewLive creates a hub.
func NewLive(config LiveConfig) *Live {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Outbox <= 0 {
		config.Outbox = defaultOutbox
	}
	return &Live{
		config: config,
		logger: config.Logger.With("component", "live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		clients: make(map[*liveClient]struct{}),
	}
}

// HandleWebSocket upgrades the connection and serves it until the client
// disconnects or the hub is closed.
func (l *Live) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &liveClient{conn: conn, send: make(chan []byte, l.config.Outbox)}
	if !l.add(c) {
		conn.Close()
		return
	}
	go l.writeLoop(c)

	if l.config.Hello != nil {
		msg, err := l.config.Hello()
		if err != nil {
			l.logger.Error("hello message failed", "error", err)
		} else {
			l.sendTo(c, msg)
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.logger.Debug("websocket read failed", "error", err)
			}
			break
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			l.sendTo(c, Message{Type: MessageError, Error: "malformed event"})
			continue
		}
		if l.config.OnEvent == nil {
			continue
		}
		if err := l.config.OnEvent(ev); err != nil {
			l.sendTo(c, Message{Type: MessageError, Error: err.Error()})
		}
	}

	l.remove(c)
}

// Broadcast sends msg to every client. Clients whose outbox is full miss it.
func (l *Live) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		l.logger.Error("encoding message failed", "error", err)
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	for c := range l.clients {
		l.enqueue(c, data)
	}
}

// Clients returns the number of connected clients.
func (l *Live) Clients() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Close disconnects every client and rejects new ones.
func (l *Live) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	for c := range l.clients {
		delete(l.clients, c)
		close(c.send)
	}
}

func (l *Live) add(c *liveClient) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.clients[c] = struct{}{}
	return true
}

func (l *Live) remove(c *liveClient) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.clients[c]; ok {
		delete(l.clients, c)
		close(c.send)
	}
}

func (l *Live) sendTo(c *liveClient, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.clients[c]; ok {
		l.enqueue(c, data)
	}
}

// enqueue must be called with mu held, so send is not closed concurrently.
func (l *Live) enqueue(c *liveClient, data []byte) {
	select {
	case c.send <- data:
	default:
		l.logger.Debug("dropping message for slow client")
	}
}

// writeLoop owns all writes to c.conn. It closes the connection once the
// outbox is closed.
func (l *Live) writeLoop(c *liveClient) {
	defer c.conn.Close()
	failed := false
	for data := range c.send {
		if failed {
			continue
		}
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			l.logger.Debug("websocket write failed", "error", err)
			failed = true
			// Unblocks the read loop, which removes the client.
			c.conn.Close()
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
