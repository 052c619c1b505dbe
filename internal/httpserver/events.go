// internal/httpserver/events.go
//
// Live game events over WebSocket.
//   GET /game/{id}/events
//
// The first frame is a snapshot of the session; every later frame carries
// one game.Event in emission order. Clients are read-only: inbound
// messages are discarded and only keep the connection alive.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
)

const (
	subscriberBuffer = 64
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = 30 * time.Second
)

// frame is the wire message sent to subscribers.
type frame struct {
	T     string         `json:"t"` // "snapshot" | "event"
	Game  *game.Snapshot `json:"game,omitempty"`
	Event *game.Event    `json:"event,omitempty"`
}

type subscriber struct {
	ch     chan []byte
	gameID string
}

// Hub fans game events out to the subscribers of each game.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Register adds a subscriber for a game.
func (h *Hub) Register(gameID string) *subscriber {
	sub := &subscriber{ch: make(chan []byte, subscriberBuffer), gameID: gameID}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unregister removes a subscriber and closes its channel. Safe to call twice.
func (h *Hub) Unregister(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// Publish sends an event to every subscriber of its game.
// Slow subscribers with a full buffer miss the frame.
func (h *Hub) Publish(e game.Event) {
	msg, err := json.Marshal(frame{T: "event", Event: &e})
	if err != nil {
		log.Error().Err(err).Msg("marshal event")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if sub.gameID != e.GameID {
			continue
		}
		select {
		case sub.ch <- msg:
		default:
			log.Warn().Str("game", e.GameID).Str("kind", string(e.Kind)).Msg("subscriber full, frame dropped")
		}
	}
}

// Close unregisters every subscriber of a game. Their write pumps send a
// close frame and hang up.
func (h *Hub) Close(gameID string) {
	h.mu.Lock()
	for sub := range h.subs {
		if sub.gameID == gameID {
			delete(h.subs, sub)
			close(sub.ch)
		}
	}
	h.mu.Unlock()
}

// Count returns the number of subscribers for a game.
func (h *Hub) Count(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for sub := range h.subs {
		if sub.gameID == gameID {
			n++
		}
	}
	return n
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: s.checkOrigin}
}

// checkOrigin admits same-host requests, the configured client origin,
// and non-browser clients that send no Origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	l.Touch(time.Now())

	// Register and queue the snapshot under the session lock so no event
	// can slip between the two.
	l.Lock()
	if _, err := s.store.Get(r.Context(), l.ID()); err != nil {
		// Evicted while we waited for the lock.
		l.Unlock()
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	sub := s.hub.Register(l.ID())
	snap := l.Session.Snapshot()
	first, _ := json.Marshal(frame{T: "snapshot", Game: &snap})
	sub.ch <- first
	l.Unlock()

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.hub.Unregister(sub)
		log.Debug().Err(err).Str("game", sub.gameID).Msg("websocket upgrade")
		return
	}
	log.Debug().Str("game", sub.gameID).Int("subscribers", s.hub.Count(sub.gameID)).Msg("subscriber joined")

	go writePump(conn, sub)
	readPump(conn)
	s.hub.Unregister(sub)
}

// readPump discards inbound frames until the peer goes away.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
