package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/engine"
	"github.com/wordgrid/wordgrid-backend/internal/types"
)

type Msg interface{ isSessionMsg() }

type Join struct {
	ClientID string
	PlayerID string
	Outbox   chan types.ServerEvent // where this client wants to receive events
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Apply struct {
	PlayerID string
	Action   types.Action
	Reply    chan ApplyResult
}

func (Apply) isSessionMsg() {}

type ApplyResult struct {
	Outcome types.ActionOutcome
	Err     error
}

type ResetObjectives struct {
	PlayerID string
	Reply    chan ResetResult
}

func (ResetObjectives) isSessionMsg() {}

type ResetResult struct {
	Update types.GameUpdate
	Err    error
}

type IsOver struct {
	Reply chan bool
}

func (IsOver) isSessionMsg() {}

type SendTo struct {
	PlayerID string
	Event    types.ServerEvent
}

func (SendTo) isSessionMsg() {}

type Broadcast struct{ Event types.ServerEvent }

func (Broadcast) isSessionMsg() {}

type GetView struct {
	Reply chan View
}

func (GetView) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

// View reflects internal state without data races; test and bot use only.
type View struct {
	NumClients int
	State      engine.State
}

type client struct {
	playerID string
	outbox   chan types.ServerEvent
}

// Session owns the authoritative state of one game. All access goes through
// the inbox, so there is a single writer per game.
type Session struct {
	inbox   chan Msg
	state   engine.State
	players [2]string
	clients map[string]client
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.Logger
}

func NewSession(parent context.Context, initial engine.State, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		inbox:   make(chan Msg, 64), // Small buffer
		state:   initial,
		players: initial.Players,
		clients: make(map[string]client),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}

	go s.loop()
	return s
}

// Players is fixed at creation and safe to read from any goroutine.
func (s *Session) Players() [2]string { return s.players }

// Opponent resolves the other participant. A miss means session corruption
// and is reported as an error, never as an empty identifier.
func (s *Session) Opponent(playerID string) (string, error) {
	switch playerID {
	case s.players[0]:
		return s.players[1], nil
	case s.players[1]:
		return s.players[0], nil
	default:
		return "", engine.ErrUnknownPlayer
	}
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = client{playerID: msg.PlayerID, outbox: msg.Outbox}

			case Leave:
				delete(s.clients, msg.ClientID)

			case Apply:
				newState, outcome, err := engine.Apply(s.state, msg.PlayerID, msg.Action)
				if err == nil {
					s.state = newState
				}
				msg.Reply <- ApplyResult{Outcome: outcome, Err: err}

			case ResetObjectives:
				newState, update, err := engine.ResetObjectives(s.state, msg.PlayerID)
				if err == nil {
					s.state = newState
				}
				msg.Reply <- ResetResult{Update: update, Err: err}

			case IsOver:
				msg.Reply <- s.state.Over

			case SendTo:
				s.sendTo(msg.PlayerID, msg.Event)

			case Broadcast:
				s.broadcast(msg.Event)

			case GetView:
				msg.Reply <- View{NumClients: len(s.clients), State: s.state}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) shutdown() {
	for id, c := range s.clients {
		close(c.outbox) // Tell client no more events
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(ev types.ServerEvent) {
	for id, c := range s.clients {
		select {
		case c.outbox <- ev:
			// ok
		default:
			// Client is slow/full - drop them.
			s.log.Warn("dropping slow client", zap.String("client_id", id))
			close(c.outbox)
			delete(s.clients, id)
		}
	}
}

func (s *Session) sendTo(playerID string, ev types.ServerEvent) {
	for id, c := range s.clients {
		if c.playerID != playerID {
			continue
		}
		select {
		case c.outbox <- ev:
		default:
			s.log.Warn("dropping slow client", zap.String("client_id", id))
			close(c.outbox)
			delete(s.clients, id)
		}
	}
}

// Expose the inbox so tests or the transport layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }
