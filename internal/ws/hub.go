package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-holidaylights/internal/diagnostics"
)

const (
	writeWait  = 200 * time.Millisecond
	keepRecent = 32
)

// Status is what the scheduler last decided, reported by /health.
type Status struct {
	Program string    `json:"program"`
	Pinned  bool      `json:"pinned"`
	OnDuty  bool      `json:"on_duty"`
	Next    time.Time `json:"next"`
}

// Hub streams frames and diagnostics to browser previews. It is an LED driver
// in its own right, so it can sit in a led.Fanout beside the hardware.
type Hub struct {
	mu          sync.Mutex
	count       int
	driver      string
	frameID     uint64
	startTime   time.Time
	status      Status
	recent      []diag.Diagnostic
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
	up          websocket.Upgrader
	log         zerolog.Logger
}

// NewHub serves a strip of count LEDs. driver names the hardware output for
// the topology message.
func NewHub(count int, driver string) *Hub {
	return &Hub{
		count:       count,
		driver:      driver,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		up:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		log:         log.With().Str("component", "ws").Logger(),
	}
}

// Handler routes /ws, /diag and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiagWS)
	mux.HandleFunc("/health", h.HandleHealth)
	return mux
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("upgrade frames")
		return
	}
	h.mu.Lock()
	top, _ := json.Marshal(map[string]any{"count": h.count, "driver": h.driver})
	h.clients[conn] = true
	h.send(conn, top)
	h.mu.Unlock()
	go h.drain(conn, h.clients)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("upgrade diag")
		return
	}
	h.mu.Lock()
	h.diagClients[conn] = true
	for _, d := range h.recent {
		b, _ := json.Marshal(d)
		h.send(conn, b)
	}
	h.mu.Unlock()
	go h.drain(conn, h.diagClients)
}

// drain discards client messages until the connection drops.
func (h *Hub) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		h.mu.Lock()
		delete(set, conn)
		h.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.startTime).Seconds(),
		"count":    h.count,
		"driver":   h.driver,
		"clients":  len(h.clients),
		"status":   h.status,
	}
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// SetDriver renames the output reported to new clients.
func (h *Hub) SetDriver(name string) {
	h.mu.Lock()
	h.driver = name
	h.mu.Unlock()
}

func (h *Hub) SetStatus(s Status) {
	h.mu.Lock()
	h.status = s
	h.mu.Unlock()
}

// Write broadcasts one frame as {t, frame_id, rgb}.
func (h *Hub) Write(rgb []byte) error {
	type frame struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		RGB     []byte `json:"rgb"`
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frameID++
	if len(h.clients) == 0 {
		return nil
	}
	b, err := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: h.frameID, RGB: rgb})
	if err != nil {
		return err
	}
	for c := range h.clients {
		h.send(c, b)
	}
	return nil
}

// Push records d and forwards it to diagnostics clients.
func (h *Hub) Push(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recent = append(h.recent, d)
	if len(h.recent) > keepRecent {
		h.recent = h.recent[len(h.recent)-keepRecent:]
	}
	for c := range h.diagClients {
		h.send(c, b)
	}
}

// send writes one message; h.mu must be held.
func (h *Hub) send(c *websocket.Conn, b []byte) {
	_ = c.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
		h.log.Debug().Err(err).Msg("write")
	}
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
	}
	for c := range h.diagClients {
		c.Close()
	}
	return nil
}
