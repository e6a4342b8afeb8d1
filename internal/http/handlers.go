package http

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"football-scoreboard/internal/board"
	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/poller"
)

// InfoSource exposes the board's status report.
type InfoSource interface {
	Info(ctx context.Context) board.Info
}

// GameSource exposes the current game pools.
type GameSource interface {
	Games(league domain.League) []domain.Game
	AllGames() []domain.Game
}

// StatusSource exposes poller health per league.
type StatusSource interface {
	Status(league domain.League) poller.Status
	Ready() bool
}

// Handler wires the status routes to the board and poller.
type Handler struct {
	info    InfoSource
	games   GameSource
	status  StatusSource
	logger  *slog.Logger
	started time.Time
}

// NewHandler constructs a Handler.
func NewHandler(info InfoSource, games GameSource, status StatusSource, logger *slog.Logger) *Handler {
	return &Handler{
		info:    info,
		games:   games,
		status:  status,
		logger:  logger,
		started: time.Now(),
	}
}

func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	resp := map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Ready reports readiness for traffic, driven by poller health.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.status == nil || h.status.Ready() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	body := map[string]any{"status": "not ready"}
	for _, league := range domain.Leagues() {
		if s := h.status.Status(league); s.LastError != "" {
			body[string(league)] = s.LastError
		}
	}
	writeJSON(w, nethttp.StatusServiceUnavailable, body, h.logger)
}

// Info returns the board's rotation state and per-mode game counts.
func (h *Handler) Info(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.info == nil {
		writeError(w, nethttp.StatusServiceUnavailable, "board not running", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.info.Info(r.Context()), h.logger)
}

// Games returns the current pool, optionally scoped to one league.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	games := h.games.AllGames()
	writeJSON(w, nethttp.StatusOK, gamesResponse(games), h.logger)
}

// GamesByLeague returns one league's pool.
func (h *Handler) GamesByLeague(w nethttp.ResponseWriter, r *nethttp.Request) {
	league := domain.League(chi.URLParam(r, "league"))
	valid := false
	for _, l := range domain.Leagues() {
		if l == league {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, nethttp.StatusNotFound, "unknown league", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, gamesResponse(h.games.Games(league)), h.logger)
}

func gamesResponse(games []domain.Game) map[string]any {
	if games == nil {
		games = []domain.Game{}
	}
	return map[string]any{
		"count": len(games),
		"games": games,
	}
}
