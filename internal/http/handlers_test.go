package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"football-scoreboard/internal/board"
	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/metrics"
	"football-scoreboard/internal/poller"
)

type stubInfo struct{ info board.Info }

func (s *stubInfo) Info(ctx context.Context) board.Info { return s.info }

type stubGames struct {
	games map[domain.League][]domain.Game
}

func (s *stubGames) Games(league domain.League) []domain.Game { return s.games[league] }

func (s *stubGames) AllGames() []domain.Game {
	var out []domain.Game
	for _, league := range domain.Leagues() {
		out = append(out, s.games[league]...)
	}
	return out
}

type stubStatus struct {
	ready  bool
	status map[domain.League]poller.Status
}

func (s *stubStatus) Status(league domain.League) poller.Status { return s.status[league] }
func (s *stubStatus) Ready() bool                               { return s.ready }

func newTestRouter(info *stubInfo, games *stubGames, status *stubStatus) nethttp.Handler {
	handler := NewHandler(info, games, status, nil)
	return NewRouter(handler, Instrument(metrics.NewRecorder(), nil))
}

func defaultStubs() (*stubInfo, *stubGames, *stubStatus) {
	info := &stubInfo{info: board.Info{ActiveMode: "nfl_live", TotalGames: 1}}
	games := &stubGames{games: map[domain.League][]domain.Game{
		domain.LeagueNFL: {{ID: "g1", League: domain.LeagueNFL}},
	}}
	status := &stubStatus{ready: true}
	return info, games, status
}

func get(t *testing.T, h nethttp.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(defaultStubs()), "/health")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadyWhenPollerHealthy(t *testing.T) {
	rec := get(t, newTestRouter(defaultStubs()), "/ready")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadyReportsFailures(t *testing.T) {
	info, games, _ := defaultStubs()
	status := &stubStatus{status: map[domain.League]poller.Status{
		domain.LeagueNFL: {LastError: "feed down"},
	}}
	rec := get(t, newTestRouter(info, games, status), "/ready")
	if rec.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["nfl"] != "feed down" {
		t.Fatalf("body = %v, want nfl error surfaced", body)
	}
}

func TestInfo(t *testing.T) {
	rec := get(t, newTestRouter(defaultStubs()), "/info")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info board.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.ActiveMode != "nfl_live" {
		t.Fatalf("ActiveMode = %q, want nfl_live", info.ActiveMode)
	}
}

func TestGames(t *testing.T) {
	rec := get(t, newTestRouter(defaultStubs()), "/games")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Count int           `json:"count"`
		Games []domain.Game `json:"games"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 1 || body.Games[0].ID != "g1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGamesByLeague(t *testing.T) {
	router := newTestRouter(defaultStubs())

	if rec := get(t, router, "/games/nfl"); rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec := get(t, router, "/games/nhl"); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown league", rec.Code)
	}
}

func TestGamesEmptyPoolStillJSON(t *testing.T) {
	info, _, status := defaultStubs()
	rec := get(t, newTestRouter(info, &stubGames{}, status), "/games")

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["count"].(float64) != 0 {
		t.Fatalf("count = %v, want 0", body["count"])
	}
}
