package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/bot"
	"github.com/wordgrid/wordgrid-backend/internal/dispatch"
	"github.com/wordgrid/wordgrid-backend/internal/engine"
	"github.com/wordgrid/wordgrid-backend/internal/hub"
	"github.com/wordgrid/wordgrid-backend/internal/session"
	"github.com/wordgrid/wordgrid-backend/internal/types"
)

type createGameRequest struct {
	Players []string `json:"players,omitempty"`
	Player  string   `json:"player,omitempty"`
	VsBot   bool     `json:"vsBot,omitempty"`
}

type createGameResponse struct {
	GameID  string    `json:"gameId"`
	Players [2]string `json:"players"`
}

func CreateGame(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		var players [2]string
		switch {
		case req.VsBot && req.Player != "":
			players = [2]string{req.Player, bot.IDPrefix + "ada"}
		case len(req.Players) == 2 && req.Players[0] != "" && req.Players[1] != "":
			players = [2]string{req.Players[0], req.Players[1]}
		default:
			writeError(w, http.StatusBadRequest, "need two players or player+vsBot")
			return
		}

		gameID := uuid.NewString()
		state := engine.NewState(players[0], players[1], time.Now().UnixNano())

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.CreateSession{GameID: gameID, State: state, Reply: reply}
		if <-reply == nil {
			writeError(w, http.StatusInternalServerError, "failed to create game")
			return
		}
		log.Info("game created", zap.String("game_id", gameID),
			zap.String("player_a", players[0]), zap.String("player_b", players[1]))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createGameResponse{GameID: gameID, Players: players})
	}
}

type actionRequest struct {
	PlayerID string       `json:"playerId"`
	Action   types.Action `json:"action"`
}

func SubmitAction(d *dispatch.Dispatcher, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.PlayerID == "" {
			writeError(w, http.StatusBadRequest, "missing required field: playerId")
			return
		}

		if err := d.Dispatch(r.Context(), gameID, req.PlayerID, req.Action); err != nil {
			var vErr *types.ValidationError
			if errors.As(err, &vErr) {
				writeError(w, http.StatusBadRequest, vErr.Error())
				return
			}
			var engErr *types.EngineError
			if errors.As(err, &engErr) {
				// Only automated-actor failures propagate this far; keep the
				// engine's own classification.
				writeError(w, engErr.Status, engErr.Message)
				return
			}
			log.Error("dispatch failed", zap.String("game_id", gameID),
				zap.String("player_id", req.PlayerID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type chatRequest struct {
	PlayerID string `json:"playerId"`
	Message  struct {
		SenderID string `json:"senderId"`
		Content  string `json:"content"`
	} `json:"message"`
}

func SubmitChat(n *hub.NotifyAdapter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		req, ok := decodeChat(w, r)
		if !ok {
			return
		}
		msg := types.ChatMessage{Content: req.Message.Content, SenderID: req.Message.SenderID, GameID: gameID}
		if err := n.BroadcastMessage(r.Context(), gameID, msg); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SubmitErrorMessage delivers to the submitting player only; the sender is
// forced to the reserved system-error identity, the content is preserved.
func SubmitErrorMessage(n *hub.NotifyAdapter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		req, ok := decodeChat(w, r)
		if !ok {
			return
		}
		if req.PlayerID == "" {
			writeError(w, http.StatusBadRequest, "missing required field: playerId")
			return
		}
		msg := types.ChatMessage{Content: req.Message.Content, SenderID: types.SenderSystemError, GameID: gameID}
		if err := n.SendMessage(r.Context(), gameID, req.PlayerID, msg); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeChat(w http.ResponseWriter, r *http.Request) (chatRequest, bool) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return req, false
	}
	if req.Message.SenderID == "" {
		writeError(w, http.StatusBadRequest, "missing required field: message.senderId")
		return req, false
	}
	if req.Message.Content == "" {
		writeError(w, http.StatusBadRequest, "missing required field: message.content")
		return req, false
	}
	return req, true
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
}
