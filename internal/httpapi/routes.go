package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/dispatch"
	"github.com/wordgrid/wordgrid-backend/internal/hub"
	"github.com/wordgrid/wordgrid-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, d *dispatch.Dispatcher, n *hub.NotifyAdapter, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/games", CreateGame(h, log))
	r.Post("/games/{gameID}/actions", SubmitAction(d, log))
	r.Post("/games/{gameID}/chat", SubmitChat(n, log))
	r.Post("/games/{gameID}/errors", SubmitErrorMessage(n, log))
	r.Get("/ws", ws.Handler(h, n, log))
	r.Get("/healthz", Healthz)
	return r
}
