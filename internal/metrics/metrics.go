package metrics

import (
	"sync"
	"time"
)

type leagueStats struct {
	fetches        int
	errors         int
	lastFetchTime  time.Duration
	lastGameCount  int
	discardedStale int
}

// Recorder captures lightweight, in-memory metrics about fetches and the
// display loop. It is intentionally simple so it can be swapped for a
// real backend later.
type Recorder struct {
	mu         sync.Mutex
	leagues    map[string]*leagueStats
	frames     int
	modeSwitch int
	rankFetch  int
	rankErrors int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		leagues: make(map[string]*leagueStats),
		otel:    otel,
	}
}

// RecordFetch tracks one upstream fetch cycle for a league.
func (r *Recorder) RecordFetch(league string, duration time.Duration, gameCount int, err error) {
	if r == nil {
		return
	}
	stats := r.ensureStats(league)
	r.mu.Lock()
	stats.fetches++
	stats.lastFetchTime = duration
	if err != nil {
		stats.errors++
	} else {
		stats.lastGameCount = gameCount
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFetch(league, duration, err)
	}
}

// RecordStaleDiscard tracks a superseded fetch result being dropped.
func (r *Recorder) RecordStaleDiscard(league string) {
	if r == nil {
		return
	}
	stats := r.ensureStats(league)
	r.mu.Lock()
	stats.discardedStale++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordStaleDiscard(league)
	}
}

// RecordFrame tracks one rendered scoreboard frame.
func (r *Recorder) RecordFrame(mode string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFrame(mode)
	}
}

// RecordModeSwitch tracks the scheduler rotating to a new mode.
func (r *Recorder) RecordModeSwitch(mode string, preempted bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.modeSwitch++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordModeSwitch(mode, preempted)
	}
}

// RecordRankingRefresh tracks one ranking snapshot fetch.
func (r *Recorder) RecordRankingRefresh(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.rankFetch++
	if err != nil {
		r.rankErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRankingRefresh(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a read-only copy of a league's fetch stats.
type Snapshot struct {
	Fetches        int
	Errors         int
	LastFetchTime  time.Duration
	LastGameCount  int
	DiscardedStale int
}

// LeagueSnapshot returns a copy of the current stats for a league.
func (r *Recorder) LeagueSnapshot(league string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.leagues[league]; ok && stats != nil {
		return Snapshot{
			Fetches:        stats.fetches,
			Errors:         stats.errors,
			LastFetchTime:  stats.lastFetchTime,
			LastGameCount:  stats.lastGameCount,
			DiscardedStale: stats.discardedStale,
		}
	}
	return Snapshot{}
}

// Frames returns the total frames rendered.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// ModeSwitches returns the total scheduler rotations.
func (r *Recorder) ModeSwitches() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.modeSwitch
}

// RankingRefreshes returns total and failed ranking fetches.
func (r *Recorder) RankingRefreshes() (int, int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rankFetch, r.rankErrors
}

func (r *Recorder) ensureStats(league string) *leagueStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.leagues[league]
	if !ok {
		stats = &leagueStats{}
		r.leagues[league] = stats
	}
	return stats
}
