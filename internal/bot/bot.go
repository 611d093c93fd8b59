package bot

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/engine"
	"github.com/wordgrid/wordgrid-backend/internal/hub"
	"github.com/wordgrid/wordgrid-backend/internal/session"
	"github.com/wordgrid/wordgrid-backend/internal/types"
)

// IDPrefix marks automated participants. The classifier is queried, never
// mutated, by the orchestration core.
const IDPrefix = "bot:"

func IsBot(playerID string) bool { return strings.HasPrefix(playerID, IDPrefix) }

// Submitter is the entry point the bot resubmits through; satisfied by
// dispatch.Dispatcher.
type Submitter interface {
	Dispatch(ctx context.Context, gameID, playerID string, action types.Action) error
}

// Player generates turns for automated participants. It implements the
// dispatcher's VirtualTurnTrigger.
type Player struct {
	hub        *hub.Hub
	submit     Submitter
	thinkDelay time.Duration
	ctx        context.Context
	log        *zap.Logger
}

func New(ctx context.Context, h *hub.Hub, log *zap.Logger) *Player {
	return &Player{
		hub:        h,
		thinkDelay: 500 * time.Millisecond,
		ctx:        ctx,
		log:        log,
	}
}

// SetSubmitter closes the wiring cycle with the dispatcher.
func (p *Player) SetSubmitter(s Submitter) { p.submit = s }

func (p *Player) SetThinkDelay(d time.Duration) { p.thinkDelay = d }

// TriggerTurn submits one action for the active automated participant. The
// caller schedules it and does not wait; ordering with later requests for the
// same game is enforced by the session actor, not here.
func (p *Player) TriggerTurn(update types.GameUpdate, gameID string) {
	if update.Round == nil || !IsBot(update.Round.ActivePlayer) {
		return
	}
	botID := update.Round.ActivePlayer

	timer := time.NewTimer(p.thinkDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-p.ctx.Done():
		return
	}

	sess := p.hub.Session(gameID)
	if sess == nil {
		p.log.Info("game gone before bot turn", zap.String("game_id", gameID))
		return
	}
	view := viewOf(sess)
	if view.State.Over || view.State.ActivePlayer() != botID {
		return
	}

	action := chooseAction(view.State, botID)
	if err := p.submit.Dispatch(p.ctx, gameID, botID, action); err != nil {
		// Failures come back untouched for automated actors; try the one
		// move that always works.
		p.log.Warn("bot move rejected, passing",
			zap.String("game_id", gameID), zap.String("bot_id", botID), zap.Error(err))
		pass := types.Action{Kind: types.ActionPass, Payload: json.RawMessage(`{}`)}
		if err := p.submit.Dispatch(p.ctx, gameID, botID, pass); err != nil {
			p.log.Error("bot pass rejected",
				zap.String("game_id", gameID), zap.String("bot_id", botID), zap.Error(err))
		}
	}
}

// chooseAction plays the best word the rack allows, exchanges a couple of
// tiles while the bag permits, and passes otherwise.
func chooseAction(s engine.State, botID string) types.Action {
	rack := s.Racks[botID]
	if word := engine.BestPlayable(rack); word != "" {
		payload, _ := json.Marshal(types.PlayPayload{Word: word})
		return types.Action{Kind: types.ActionPlay, Payload: payload, RawInput: word}
	}
	if len(rack) >= 2 && len(s.Bag) >= 2 {
		payload, _ := json.Marshal(types.ExchangePayload{Letters: string(rack[:2])})
		return types.Action{Kind: types.ActionExchange, Payload: payload}
	}
	return types.Action{Kind: types.ActionPass, Payload: json.RawMessage(`{}`)}
}

func viewOf(sess *session.Session) session.View {
	reply := make(chan session.View, 1)
	sess.Inbox() <- session.GetView{Reply: reply}
	return <-reply
}
