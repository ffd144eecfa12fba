// Package ws exposes one reading session per WebSocket connection: intent
// messages in, full state snapshots out.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/zhairen/AItaluo/internal/domain"
	"github.com/zhairen/AItaluo/internal/ports"
	"github.com/zhairen/AItaluo/internal/session"
)

const writeTimeout = 5 * time.Second

// IntentMessage is what the presentation layer sends.
type IntentMessage struct {
	Type     string `json:"type"` // "start" | "select" | "reset"
	Question string `json:"question,omitempty"`
	CardID   string `json:"card_id,omitempty"`
}

// StateMessage carries a full session snapshot to the client.
type StateMessage struct {
	Type    string           `json:"type"` // "state"
	Session session.Snapshot `json:"session"`
}

// ErrorMessage reports a rejected intent without closing the connection.
type ErrorMessage struct {
	Type  string `json:"type"` // "error"
	Error string `json:"error"`
}

// Handler upgrades connections and drives a session per connection.
type Handler struct {
	catalog      []domain.Card
	rng          domain.RNG
	reader       ports.Reader
	shuffleDelay time.Duration
	logger       *slog.Logger
}

func NewHandler(catalog []domain.Card, rng domain.RNG, reader ports.Reader, shuffleDelay time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:      catalog,
		rng:          rng,
		reader:       reader,
		shuffleDelay: shuffleDelay,
		logger:       logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	sess := session.New(h.catalog, h.rng, h.reader, h.shuffleDelay, h.logger, func(snap session.Snapshot) {
		h.writeJSON(conn, StateMessage{Type: "state", Session: snap})
	})
	h.logger.Info("session started", "session_id", sess.ID())

	h.writeJSON(conn, StateMessage{Type: "state", Session: sess.Snapshot()})

	for {
		var msg IntentMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			h.logger.Debug("websocket read ended", "session_id", sess.ID(), "error", err)
			break
		}
		h.dispatch(ctx, sess, conn, msg)
	}

	h.logger.Info("session ended", "session_id", sess.ID())
	conn.Close(websocket.StatusNormalClosure, "session ended")
}

func (h *Handler) dispatch(ctx context.Context, sess *session.Session, conn *websocket.Conn, msg IntentMessage) {
	switch msg.Type {
	case "start":
		if err := sess.Start(msg.Question); err != nil {
			h.writeJSON(conn, ErrorMessage{Type: "error", Error: err.Error()})
		}
	case "select":
		// Failed guards are silent no-ops; the client simply sees no new state.
		sess.SelectCard(ctx, msg.CardID)
	case "reset":
		sess.Reset()
	default:
		h.writeJSON(conn, ErrorMessage{Type: "error", Error: "unknown intent type"})
	}
}

// writeJSON pushes a message with its own timeout so a stalled client cannot
// block a session mutation.
func (h *Handler) writeJSON(conn *websocket.Conn, v any) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, v); err != nil {
		h.logger.Debug("websocket write failed", "error", err)
	}
}
