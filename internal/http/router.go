package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers the status routes.
func NewRouter(handler *Handler, mw ...func(nethttp.Handler) nethttp.Handler) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	for _, m := range mw {
		r.Use(m)
	}

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/info", handler.Info)
	r.Get("/games", handler.Games)
	r.Get("/games/{league}", handler.GamesByLeague)
	return r
}
