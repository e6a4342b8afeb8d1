package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"football-scoreboard/internal/config"
	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/filter"
	"football-scoreboard/internal/logging"
	"football-scoreboard/internal/metrics"
	"football-scoreboard/internal/render"
	"football-scoreboard/internal/rotation"
)

// GameSource provides the latest fetched game pool per league.
type GameSource interface {
	Games(league domain.League) []domain.Game
	AllGames() []domain.Game
}

// Refresher triggers an immediate data refresh outside the normal
// polling schedule.
type Refresher interface {
	RefreshNow(ctx context.Context)
}

// Board is the display plugin: it owns mode rotation, game selection,
// and frame pacing, and pushes frames to a render sink. All methods
// are called from the host's single display loop; the sources they
// read are internally synchronized.
type Board struct {
	cfg       *config.BoardConfig
	source    GameSource
	refresher Refresher
	filter    *filter.GameFilter
	scheduler *rotation.Scheduler
	tracker   *rotation.CycleTracker
	sink      render.Sink
	recorder  *metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time

	mu          sync.Mutex
	activeMode  domain.ModeDescriptor
	gameIndex   int
	gameShownAt time.Time
	lastShown   string
}

// New assembles a Board from its collaborators.
func New(cfg *config.BoardConfig, source GameSource, refresher Refresher, gameFilter *filter.GameFilter, sink render.Sink, recorder *metrics.Recorder, logger *slog.Logger) *Board {
	modes := cfg.EnabledDescriptors()
	engine := rotation.NewDurationEngine(cfg)
	fallback := time.Duration(cfg.DisplayDuration) * time.Second

	return &Board{
		cfg:       cfg,
		source:    source,
		refresher: refresher,
		filter:    gameFilter,
		scheduler: rotation.NewScheduler(modes, engine, fallback, logger),
		tracker:   rotation.NewCycleTracker(modes, cfg.DynamicDurationEnabled()),
		sink:      sink,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Update triggers an immediate data refresh.
func (b *Board) Update(ctx context.Context) {
	if b.refresher != nil {
		b.refresher.RefreshNow(ctx)
	}
}

// Display renders one frame and reports whether content was shown.
// A nil explicit mode lets the scheduler pick; forceClear blanks the
// sink before drawing.
func (b *Board) Display(ctx context.Context, explicit *domain.ModeDescriptor, forceClear bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()

	live := b.liveLeagues()

	var mode domain.ModeDescriptor
	switched := false
	if explicit != nil {
		mode = *explicit
		switched = mode != b.activeMode
	} else {
		var ok bool
		mode, switched, ok = b.scheduler.Advance(now, b.selectionSize(ctx), live)
		if !ok {
			return false
		}
	}

	if switched {
		b.recorder.RecordModeSwitch(mode.String(), mode.Type == domain.ModeLive && live[mode.League])
		b.activeMode = mode
		b.gameIndex = 0
		b.gameShownAt = now
		forceClear = true
	}

	games := b.filter.Select(ctx, b.source.Games(mode.League), mode, b.cfg)

	if forceClear {
		if err := b.sink.Clear(); err != nil {
			logging.Error(b.logger, "clearing display failed", err)
		}
	}

	if len(games) == 0 {
		b.tracker.MarkShown(mode, 0, 0)
		b.lastShown = ""
		return false
	}

	b.advanceGame(now, len(games))
	g := games[b.gameIndex]

	if switched {
		if err := b.sink.RenderSeparator(mode.League); err != nil {
			logging.Error(b.logger, "rendering separator failed", err)
		}
	}
	if err := b.sink.RenderGame(g, mode.Type); err != nil {
		logging.Error(b.logger, "rendering game failed", err,
			logging.FieldMode, mode.String())
		return false
	}

	b.tracker.MarkShown(mode, b.gameIndex, len(games))
	if g.ID != b.lastShown {
		b.recorder.RecordFrame(mode.String())
		b.lastShown = g.ID
	}
	return true
}

// IsCycleComplete reports whether a full pass over every enabled mode
// has been displayed since the last Reset.
func (b *Board) IsCycleComplete() bool {
	return b.tracker.IsCycleComplete()
}

// ResetCycle clears cycle progress at the start of a new outer
// rotation.
func (b *Board) ResetCycle() {
	b.tracker.Reset()
}

// Cleanup blanks the display when the host shuts the plugin down.
func (b *Board) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.sink.Clear(); err != nil {
		logging.Error(b.logger, "clearing display on shutdown failed", err)
	}
}

// advanceGame rotates to the next game within the active mode once the
// current one has been on screen for the per-game display duration.
// Callers hold b.mu.
func (b *Board) advanceGame(now time.Time, count int) {
	if b.gameIndex >= count {
		b.gameIndex = 0
		b.gameShownAt = now
		return
	}
	perGame := time.Duration(b.cfg.GameDisplayDuration) * time.Second
	if now.Sub(b.gameShownAt) >= perGame {
		b.gameIndex = (b.gameIndex + 1) % count
		b.gameShownAt = now
	}
}

// selectionSize feeds the scheduler current per-mode game counts for
// dynamic duration.
func (b *Board) selectionSize(ctx context.Context) func(domain.ModeDescriptor) int {
	return func(mode domain.ModeDescriptor) int {
		return len(b.filter.Select(ctx, b.source.Games(mode.League), mode, b.cfg))
	}
}

// liveLeagues reports which live-priority leagues have in-play games.
func (b *Board) liveLeagues() map[domain.League]bool {
	var out map[domain.League]bool
	for _, league := range domain.Leagues() {
		lc := b.cfg.League(league)
		if lc == nil || !lc.Enabled || !lc.LivePriority {
			continue
		}
		for _, g := range b.source.Games(league) {
			if g.State.InPlay() {
				if out == nil {
					out = make(map[domain.League]bool)
				}
				out[league] = true
				break
			}
		}
	}
	return out
}
