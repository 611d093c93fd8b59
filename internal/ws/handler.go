package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/hub"
	"github.com/wordgrid/wordgrid-backend/internal/session"
	"github.com/wordgrid/wordgrid-backend/internal/types"
)

// ClientMessage is the small inbound surface of the socket: free chat. Moves
// go through the HTTP action endpoint.
type ClientMessage struct {
	Type    string `json:"type"` // "chat"
	Content string `json:"content,omitempty"`
}

func Handler(h *hub.Hub, notify *hub.NotifyAdapter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("game")
		playerID := r.URL.Query().Get("player")
		if gameID == "" || playerID == "" {
			http.Error(w, "missing game or player", http.StatusBadRequest)
			return
		}

		sess := h.Session(gameID)
		if sess == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan types.ServerEvent, 8)
		clientID := randID(6)

		sess.Inbox() <- session.Join{ClientID: clientID, PlayerID: playerID, Outbox: out}
		defer func() { sess.Inbox() <- session.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				payload, _ := json.Marshal(ev)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"bad json"}`))
				continue
			}

			switch cm.Type {
			case "chat":
				if cm.Content == "" {
					continue
				}
				msg := types.ChatMessage{Content: cm.Content, SenderID: playerID, GameID: gameID}
				if err := notify.BroadcastMessage(r.Context(), gameID, msg); err != nil {
					log.Warn("ws chat broadcast failed", zap.String("game_id", gameID), zap.Error(err))
				}
			default:
				_ = conn.Write(r.Context(), websocket.MessageText, []byte(`{"type":"Error","error":"unknown type"}`))
			}
		}
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
