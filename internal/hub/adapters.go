package hub

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/engine"
	"github.com/wordgrid/wordgrid-backend/internal/history"
	"github.com/wordgrid/wordgrid-backend/internal/session"
	"github.com/wordgrid/wordgrid-backend/internal/types"
)

// The adapters below bridge the dispatcher's interfaces onto hub/session
// messaging. Failure kinds are tagged here, at the engine boundary.

type EngineAdapter struct {
	hub *Hub
}

func NewEngineAdapter(h *Hub) *EngineAdapter { return &EngineAdapter{hub: h} }

func (a *EngineAdapter) PlayAction(ctx context.Context, gameID, playerID string, action types.Action) (types.ActionOutcome, error) {
	sess := a.hub.Session(gameID)
	if sess == nil {
		return types.ActionOutcome{}, &types.EngineError{
			Kind:    types.EngineFailureGeneric,
			Status:  http.StatusNotFound,
			Message: fmt.Sprintf("game %s not found", gameID),
		}
	}
	reply := make(chan session.ApplyResult, 1)
	sess.Inbox() <- session.Apply{PlayerID: playerID, Action: action, Reply: reply}
	select {
	case res := <-reply:
		if res.Err != nil {
			return types.ActionOutcome{}, tagError(res.Err)
		}
		return res.Outcome, nil
	case <-ctx.Done():
		return types.ActionOutcome{}, ctx.Err()
	}
}

func (a *EngineAdapter) IsGameOver(ctx context.Context, gameID, playerID string) (bool, error) {
	sess := a.hub.Session(gameID)
	if sess == nil {
		return false, fmt.Errorf("game %s not found", gameID)
	}
	reply := make(chan bool, 1)
	sess.Inbox() <- session.IsOver{Reply: reply}
	select {
	case over := <-reply:
		return over, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (a *EngineAdapter) ResetObjectives(ctx context.Context, gameID, playerID string) (types.GameUpdate, error) {
	sess := a.hub.Session(gameID)
	if sess == nil {
		return types.GameUpdate{}, fmt.Errorf("game %s not found", gameID)
	}
	reply := make(chan session.ResetResult, 1)
	sess.Inbox() <- session.ResetObjectives{PlayerID: playerID, Reply: reply}
	select {
	case res := <-reply:
		return res.Update, res.Err
	case <-ctx.Done():
		return types.GameUpdate{}, ctx.Err()
	}
}

// tagError turns the engine's sentinel errors into tagged failures with a
// status classification. Word rejection gets its own kind so the dispatcher
// never has to inspect message text.
func tagError(err error) *types.EngineError {
	switch {
	case errors.Is(err, engine.ErrWordNotAllowed):
		return &types.EngineError{Kind: types.EngineWordRejected, Status: http.StatusUnprocessableEntity, Message: err.Error()}
	case errors.Is(err, engine.ErrBadPayload):
		return &types.EngineError{Kind: types.EngineFailureGeneric, Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, engine.ErrWrongTurn),
		errors.Is(err, engine.ErrGameAlreadyOver),
		errors.Is(err, engine.ErrTilesNotHeld),
		errors.Is(err, engine.ErrNotEnoughTiles),
		errors.Is(err, engine.ErrUnsupportedAction),
		errors.Is(err, engine.ErrUnknownPlayer):
		return &types.EngineError{Kind: types.EngineFailureGeneric, Status: http.StatusConflict, Message: err.Error()}
	default:
		return &types.EngineError{Kind: types.EngineFailureGeneric, Status: http.StatusInternalServerError, Message: err.Error()}
	}
}

type NotifyAdapter struct {
	hub     *Hub
	archive *history.Store // nil when persistence is disabled
	log     *zap.Logger
}

func NewNotifyAdapter(h *Hub, archive *history.Store, log *zap.Logger) *NotifyAdapter {
	return &NotifyAdapter{hub: h, archive: archive, log: log}
}

func (n *NotifyAdapter) SendMessage(ctx context.Context, gameID, playerID string, msg types.ChatMessage) error {
	sess := n.hub.Session(gameID)
	if sess == nil {
		return fmt.Errorf("game %s not found", gameID)
	}
	msg.GameID = gameID
	sess.Inbox() <- session.SendTo{PlayerID: playerID, Event: types.ServerEvent{Type: types.EventNewMessage, Message: &msg}}
	n.archive.RecordChat(msg, false)
	return nil
}

func (n *NotifyAdapter) BroadcastMessage(ctx context.Context, gameID string, msg types.ChatMessage) error {
	sess := n.hub.Session(gameID)
	if sess == nil {
		return fmt.Errorf("game %s not found", gameID)
	}
	msg.GameID = gameID
	sess.Inbox() <- session.Broadcast{Event: types.ServerEvent{Type: types.EventNewMessage, Message: &msg}}
	n.archive.RecordChat(msg, true)
	return nil
}

func (n *NotifyAdapter) BroadcastUpdate(ctx context.Context, gameID string, update types.GameUpdate) error {
	sess := n.hub.Session(gameID)
	if sess == nil {
		return fmt.Errorf("game %s not found", gameID)
	}
	sess.Inbox() <- session.Broadcast{Event: types.ServerEvent{Type: types.EventGameUpdate, Update: &update}}
	if update.Over {
		n.archive.RecordFinish(gameID, update)
	}
	return nil
}

type LookupAdapter struct {
	hub *Hub
}

func NewLookupAdapter(h *Hub) *LookupAdapter { return &LookupAdapter{hub: h} }

func (l *LookupAdapter) Opponent(gameID, playerID string) (string, error) {
	sess := l.hub.Session(gameID)
	if sess == nil {
		return "", fmt.Errorf("game %s not found", gameID)
	}
	return sess.Opponent(playerID)
}
