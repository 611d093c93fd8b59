package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/types"
)

// Engine evaluates one action against the current session state. Failures it
// returns are tagged (*types.EngineError) at its boundary.
type Engine interface {
	PlayAction(ctx context.Context, gameID, playerID string, action types.Action) (types.ActionOutcome, error)
	IsGameOver(ctx context.Context, gameID, playerID string) (bool, error)
	ResetObjectives(ctx context.Context, gameID, playerID string) (types.GameUpdate, error)
}

// Notifier delivers messages and updates to session participants.
type Notifier interface {
	SendMessage(ctx context.Context, gameID, playerID string, msg types.ChatMessage) error
	BroadcastMessage(ctx context.Context, gameID string, msg types.ChatMessage) error
	BroadcastUpdate(ctx context.Context, gameID string, update types.GameUpdate) error
}

// SessionLookup resolves participants of a game.
type SessionLookup interface {
	Opponent(gameID, playerID string) (string, error)
}

// VirtualTurnTrigger eventually causes the automated participant to submit
// exactly one action for the current round. It is scheduled, never awaited.
type VirtualTurnTrigger interface {
	TriggerTurn(update types.GameUpdate, gameID string)
}

const defaultRecoveryDelay = 3 * time.Second

type dispatchMode int

const (
	modeNormal dispatchMode = iota
	// modeRecovering marks the synthetic PASS resubmitted after an invalid
	// word; it must never start a second recovery.
	modeRecovering
)

type Dispatcher struct {
	engine        Engine
	notify        Notifier
	lookup        SessionLookup
	isVirtual     func(playerID string) bool
	trigger       VirtualTurnTrigger
	recoveryDelay time.Duration
	baseCtx       context.Context // outlives individual requests
	log           *zap.Logger
}

func New(ctx context.Context, eng Engine, notify Notifier, lookup SessionLookup, isVirtual func(string) bool, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		engine:        eng,
		notify:        notify,
		lookup:        lookup,
		isVirtual:     isVirtual,
		recoveryDelay: defaultRecoveryDelay,
		baseCtx:       ctx,
		log:           log,
	}
}

// SetVirtualTrigger wires the automated participant after construction; the
// trigger needs the dispatcher to submit moves, so the cycle is closed here.
func (d *Dispatcher) SetVirtualTrigger(t VirtualTurnTrigger) { d.trigger = t }

func (d *Dispatcher) SetRecoveryDelay(delay time.Duration) { d.recoveryDelay = delay }

// Dispatch runs one turn: structural validation, chat echo of the raw input,
// engine evaluation, then update broadcast and feedback routing on success or
// the recovery policy on failure.
func (d *Dispatcher) Dispatch(ctx context.Context, gameID, playerID string, action types.Action) error {
	return d.dispatch(ctx, gameID, playerID, action, modeNormal)
}

func (d *Dispatcher) dispatch(ctx context.Context, gameID, playerID string, action types.Action, mode dispatchMode) error {
	if action.Kind == "" {
		return &types.ValidationError{Field: "action.kind"}
	}
	if action.Payload == nil {
		return &types.ValidationError{Field: "action.payload"}
	}

	// Echo what the player typed before any result is produced, even if the
	// action fails later.
	if action.RawInput != "" {
		echo := types.ChatMessage{Content: action.RawInput, SenderID: playerID, GameID: gameID}
		if err := d.notify.BroadcastMessage(ctx, gameID, echo); err != nil {
			d.log.Warn("chat echo failed",
				zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
		}
	}

	outcome, err := d.engine.PlayAction(ctx, gameID, playerID, action)
	if err != nil {
		return d.recover(ctx, gameID, playerID, action, err, mode)
	}

	if outcome.Update != nil {
		d.broadcastUpdate(ctx, gameID, *outcome.Update)
	}
	if outcome.Feedback != nil {
		d.routeFeedback(ctx, gameID, playerID, *outcome.Feedback)
	}
	return nil
}

// broadcastUpdate sends the update to all participants and, when the next
// active participant is automated, schedules its turn without waiting on it.
func (d *Dispatcher) broadcastUpdate(ctx context.Context, gameID string, update types.GameUpdate) {
	if err := d.notify.BroadcastUpdate(ctx, gameID, update); err != nil {
		d.log.Warn("update broadcast failed", zap.String("game_id", gameID), zap.Error(err))
	}
	if update.Round != nil && d.trigger != nil && d.isVirtual(update.Round.ActivePlayer) {
		go d.trigger.TriggerTurn(update, gameID)
	}
}
