package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/types"
)

const (
	rejectedPrefix         = "Move rejected: "
	invalidWordOpponentMsg = "Your opponent tried to play an invalid word and has to pass this turn."
)

// recover applies the recovery policy for an engine failure.
//
// Automated actors get the failure back unchanged, with no chat traffic;
// their own control loop picks a different move. Humans always get a
// system-error notification, and a word rejection additionally starts the
// asynchronous invalid-word protocol. A human request still reports success
// to its caller: recovery is a side channel, not a request failure.
func (d *Dispatcher) recover(ctx context.Context, gameID, playerID string, action types.Action, cause error, mode dispatchMode) error {
	if d.isVirtual(playerID) {
		return cause
	}

	var engErr *types.EngineError
	if !errors.As(cause, &engErr) {
		engErr = &types.EngineError{
			Kind:    types.EngineFailureGeneric,
			Status:  http.StatusInternalServerError,
			Message: cause.Error(),
		}
	}

	// Generic notification, sent for every failure kind. A word rejection
	// additionally gets the specific message below, so the acting player
	// sees both.
	generic := types.ChatMessage{
		Content:  rejectedPrefix + engErr.Message,
		SenderID: types.SenderSystemError,
		GameID:   gameID,
	}
	if err := d.notify.SendMessage(ctx, gameID, playerID, generic); err != nil {
		d.log.Warn("failure notification failed",
			zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
	}

	if engErr.Kind != types.EngineWordRejected {
		return nil
	}
	if mode == modeRecovering {
		// A PASS must never be rejected as an invalid word. If the engine
		// violates that, absorbing it here keeps the recursion bounded.
		d.log.Error("synthetic pass rejected as invalid word",
			zap.String("game_id", gameID), zap.String("player_id", playerID), zap.String("message", engErr.Message))
		return nil
	}

	specific := types.ChatMessage{
		Content:  fmt.Sprintf("Invalid word %q: %s", action.RawInput, engErr.Message),
		SenderID: types.SenderSystemError,
		GameID:   gameID,
	}
	if err := d.notify.SendMessage(ctx, gameID, playerID, specific); err != nil {
		d.log.Warn("invalid word notification failed",
			zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
	}

	go d.finishInvalidWordRecovery(gameID, playerID)
	return nil
}

// finishInvalidWordRecovery runs the delayed tail of the invalid-word
// protocol: wait so the player can read the rejection, re-check game over,
// revert per-turn objectives, notify the opponent, and resubmit a synthetic
// PASS exactly once. It runs on the dispatcher's base context so it survives
// the originating request.
func (d *Dispatcher) finishInvalidWordRecovery(gameID, playerID string) {
	ctx := d.baseCtx

	timer := time.NewTimer(d.recoveryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}

	over, err := d.engine.IsGameOver(ctx, gameID, playerID)
	if err != nil {
		// The session may have been deleted while the delay was pending;
		// treat that as game over.
		d.log.Info("game over check failed during recovery, stopping",
			zap.String("game_id", gameID), zap.Error(err))
		return
	}
	if over {
		return
	}

	update, err := d.engine.ResetObjectives(ctx, gameID, playerID)
	if err != nil {
		d.log.Warn("objectives reset failed",
			zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
		return
	}
	d.broadcastUpdate(ctx, gameID, update)

	opponent, err := d.lookup.Opponent(gameID, playerID)
	if err != nil {
		d.log.Error("opponent lookup failed during recovery",
			zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
	} else {
		notice := types.ChatMessage{
			Content:  invalidWordOpponentMsg,
			SenderID: types.SenderSystem,
			GameID:   gameID,
		}
		if err := d.notify.SendMessage(ctx, gameID, opponent, notice); err != nil {
			d.log.Warn("opponent notice failed",
				zap.String("game_id", gameID), zap.String("player_id", opponent), zap.Error(err))
		}
	}

	pass := types.Action{Kind: types.ActionPass, Payload: json.RawMessage(`{}`)}
	if err := d.dispatch(ctx, gameID, playerID, pass, modeRecovering); err != nil {
		d.log.Warn("synthetic pass failed",
			zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
	}
}
