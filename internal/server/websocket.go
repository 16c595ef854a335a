package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/notify"
	"github.com/ziadkadry99/mockweb/internal/progress"
	"github.com/ziadkadry99/mockweb/internal/session"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type        string `json:"type"` // "generate" or "regenerate"
	Description string `json:"description,omitempty"`
}

// wsMessage is the outgoing WebSocket message format.
type wsMessage struct {
	Type         string               `json:"type"` // "progress", "result", "ignored" or "error"
	Percent      int                  `json:"percent,omitempty"`
	Label        string               `json:"label,omitempty"`
	Bundle       *templates.Bundle    `json:"bundle,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

// wsConn serializes writes from the read loop and the generation goroutines.
type wsConn struct {
	conn *websocket.Conn
	log  *zap.Logger
	mu   sync.Mutex
}

func (c *wsConn) send(msg wsMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.log.Warn("websocket write", zap.Error(err))
	}
}

func (c *wsConn) sendError(message string) {
	c.send(wsMessage{Type: "error", Notification: &notify.Notification{
		Level: notify.LevelDanger, Title: "Error", Message: message,
	}})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	// Generations run beside the read loop, so a request that arrives while
	// one is in flight reaches the session guard and is ignored.
	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	wc := &wsConn{conn: conn, log: s.log}
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read", zap.String("session_id", id), zap.Error(err))
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			wc.sendError("invalid message format")
			continue
		}

		var run func(progress.Reporter) (*templates.Bundle, error)
		switch req.Type {
		case "generate":
			run = func(rep progress.Reporter) (*templates.Bundle, error) {
				return sess.Generate(ctx, req.Description, rep)
			}
		case "regenerate":
			run = func(rep progress.Reporter) (*templates.Bundle, error) {
				return sess.Regenerate(ctx, rep)
			}
		default:
			wc.sendError("unknown message type: " + req.Type)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			rep := progress.Func(func(percent int, label string) {
				wc.send(wsMessage{Type: "progress", Percent: percent, Label: label})
			})
			b, err := run(rep)
			if err != nil && !errors.Is(err, generator.ErrEmptyInput) {
				s.log.Error("generation failed", zap.String("session_id", id), zap.Error(err))
			}
			wc.send(outcomeMessage(b, err))
		}()
	}
}

// outcomeMessage is the final message of a generation. An ignored request
// is answered without a notification.
func outcomeMessage(b *templates.Bundle, err error) wsMessage {
	switch {
	case err != nil:
		n := notify.FromError(err)
		return wsMessage{Type: "error", Notification: &n}
	case b == nil:
		return wsMessage{Type: "ignored"}
	default:
		n := notify.Success()
		return wsMessage{Type: "result", Bundle: b, Notification: &n}
	}
}
