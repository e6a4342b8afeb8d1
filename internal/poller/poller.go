package poller

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"football-scoreboard/internal/cache"
	"football-scoreboard/internal/config"
	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/logging"
	"football-scoreboard/internal/metrics"
	"football-scoreboard/internal/providers"
)

const (
	defaultInterval = 60 * time.Second
	cacheTTL        = 10 * time.Minute
)

// GameStore receives fetched pools. Deliveries are tagged with the
// sequence reserved before the fetch started, so a slow fetch finishing
// after a newer one is rejected rather than installed.
type GameStore interface {
	BeginFetch(league domain.League) uint64
	SetGames(league domain.League, games []domain.Game, seq uint64, fetchedAt time.Time) bool
}

// RankingWarmer refreshes the ranking snapshot outside the lazy path.
type RankingWarmer interface {
	Refresh(ctx context.Context)
}

// Poller runs one fetch loop per enabled league, delivering results to
// the store and writing through to the cache so a restart can show
// games before the first upstream fetch completes.
type Poller struct {
	provider providers.GameProvider
	warmer   RankingWarmer
	store    GameStore
	cache    cache.Cache
	board    *config.BoardConfig
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	done     chan struct{}
	kicks    map[domain.League]chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   map[domain.League]Status
}

// Status describes the recent health of one league's fetch loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. interval is the fallback fetch interval for
// leagues without their own update_interval_seconds.
func New(provider providers.GameProvider, warmer RankingWarmer, store GameStore, c cache.Cache, board *config.BoardConfig, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	p := &Poller{
		provider: provider,
		warmer:   warmer,
		store:    store,
		cache:    c,
		board:    board,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		kicks:    make(map[domain.League]chan struct{}),
		status:   make(map[domain.League]Status),
	}
	for _, league := range p.leagues() {
		p.kicks[league] = make(chan struct{}, 1)
	}
	return p
}

// Start launches one fetch loop per enabled league. Safe to call once;
// subsequent calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	if p.warmer != nil {
		go p.warmer.Refresh(ctx)
	}
	for _, league := range p.leagues() {
		go p.run(ctx, league)
	}
}

// Stop halts every fetch loop.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

// RefreshNow schedules an immediate out-of-band fetch for every league.
// A league already refreshing absorbs the request.
func (p *Poller) RefreshNow(ctx context.Context) {
	for _, kick := range p.kicks {
		select {
		case kick <- struct{}{}:
		default:
		}
	}
}

// Status returns a snapshot of one league's loop health.
func (p *Poller) Status(league domain.League) Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status[league]
}

// Ready reports whether every enabled league has data.
func (p *Poller) Ready() bool {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	for _, league := range p.leagues() {
		if !p.status[league].IsReady() {
			return false
		}
	}
	return true
}

func (p *Poller) run(ctx context.Context, league domain.League) {
	interval := p.board.League(league).UpdateInterval(p.interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logging.Info(p.logger, "poller started",
		logging.FieldLeague, string(league),
		logging.FieldDurationMS, interval.Milliseconds())

	p.warmFromCache(ctx, league)
	p.fetchOnce(ctx, league)

	for {
		select {
		case <-ctx.Done():
			logging.Info(p.logger, "poller stopped", logging.FieldLeague, string(league))
			return
		case <-p.done:
			logging.Info(p.logger, "poller stopped", logging.FieldLeague, string(league))
			return
		case <-p.kicks[league]:
			p.fetchOnce(ctx, league)
		case <-ticker.C:
			p.fetchOnce(ctx, league)
		}
	}
}

func (p *Poller) fetchOnce(ctx context.Context, league domain.League) {
	start := p.now()
	seq := p.store.BeginFetch(league)
	p.recordAttempt(league, start)

	games, err := p.provider.FetchGames(ctx, league)
	elapsed := p.now().Sub(start)
	p.metrics.RecordFetch(string(league), elapsed, len(games), err)
	if err != nil {
		logging.Error(p.logger, "poller fetch failed", err,
			logging.FieldLeague, string(league),
			logging.FieldDurationMS, elapsed.Milliseconds())
		p.recordFailure(league, err, start)
		return
	}

	if !p.store.SetGames(league, games, seq, p.now()) {
		p.metrics.RecordStaleDiscard(string(league))
		logging.Warn(p.logger, "poller discarded stale fetch result",
			logging.FieldLeague, string(league),
			logging.FieldSequence, seq)
		return
	}
	p.writeThrough(ctx, league, games)
	p.recordSuccess(league, start)
	logging.Info(p.logger, "poller refreshed games",
		logging.FieldLeague, string(league),
		logging.FieldCount, len(games),
		logging.FieldDurationMS, elapsed.Milliseconds())
}

// warmFromCache installs the cached pool so a restart shows games
// before the first upstream fetch completes. Cached data counts as a
// success for readiness; it is replaced as soon as a real fetch lands.
func (p *Poller) warmFromCache(ctx context.Context, league domain.League) {
	if p.cache == nil {
		return
	}
	raw, found, err := p.cache.Get(ctx, cacheKey(league))
	if err != nil {
		logging.Warn(p.logger, "cache warm read failed",
			logging.FieldLeague, string(league), "error", err)
		return
	}
	if !found {
		return
	}
	var games []domain.Game
	if err := json.Unmarshal(raw, &games); err != nil {
		logging.Warn(p.logger, "cache warm entry unreadable",
			logging.FieldLeague, string(league), "error", err)
		return
	}
	seq := p.store.BeginFetch(league)
	if p.store.SetGames(league, games, seq, p.now()) {
		p.recordSuccess(league, p.now())
		logging.Info(p.logger, "warmed games from cache",
			logging.FieldLeague, string(league),
			logging.FieldCount, len(games))
	}
}

func (p *Poller) writeThrough(ctx context.Context, league domain.League, games []domain.Game) {
	if p.cache == nil {
		return
	}
	raw, err := json.Marshal(games)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, cacheKey(league), raw, cacheTTL); err != nil {
		logging.Warn(p.logger, "cache write failed",
			logging.FieldLeague, string(league), "error", err)
	}
}

func (p *Poller) leagues() []domain.League {
	var out []domain.League
	for _, league := range domain.Leagues() {
		if lc := p.board.League(league); lc != nil && lc.Enabled {
			out = append(out, league)
		}
	}
	return out
}

func (p *Poller) recordAttempt(league domain.League, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	s := p.status[league]
	s.LastAttempt = at
	p.status[league] = s
}

func (p *Poller) recordSuccess(league domain.League, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	s := p.status[league]
	s.ConsecutiveFailures = 0
	s.LastError = ""
	s.LastSuccess = at
	p.status[league] = s
}

func (p *Poller) recordFailure(league domain.League, err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	s := p.status[league]
	s.ConsecutiveFailures++
	if err != nil {
		s.LastError = err.Error()
	}
	s.LastAttempt = at
	p.status[league] = s
}

func cacheKey(league domain.League) string {
	return "games:" + string(league)
}
