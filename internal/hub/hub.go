package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/engine"
	"github.com/wordgrid/wordgrid-backend/internal/session"
)

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	GameID string
	State  engine.State
	Reply  chan *session.Session
}

type GetSession struct {
	GameID string
	Reply  chan *session.Session
}

type RemoveSession struct {
	GameID string
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Session does the Get roundtrip; nil when the game does not exist.
func (h *Hub) Session(gameID string) *session.Session {
	reply := make(chan *session.Session, 1)
	h.inbox <- GetSession{GameID: gameID, Reply: reply}
	return <-reply
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if sess := h.sessions[msg.GameID]; sess != nil {
					msg.Reply <- sess
					break
				}
				sess := session.NewSession(h.ctx, msg.State, h.log)
				h.sessions[msg.GameID] = sess
				msg.Reply <- sess

			case GetSession:
				msg.Reply <- h.sessions[msg.GameID] // May be nil

			case RemoveSession:
				if sess := h.sessions[msg.GameID]; sess != nil {
					sess.Inbox() <- session.Shutdown{}
				}
				delete(h.sessions, msg.GameID)

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for _, sess := range h.sessions {
		sess.Inbox() <- session.Shutdown{}
	}
	clear(h.sessions)
	h.cancel()
}
