package rotation

import (
	"log/slog"
	"time"

	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/logging"
)

// Scheduler rotates through the enabled modes on a timer, preempting
// normal rotation whenever a live-priority league has in-play games.
// It is driven from a single render loop and keeps no background
// goroutines of its own.
type Scheduler struct {
	modes    []domain.ModeDescriptor
	engine   *DurationEngine
	fallback time.Duration
	logger   *slog.Logger

	idx       int
	started   bool
	modeStart time.Time
	preempt   domain.ModeDescriptor
}

// NewScheduler constructs a Scheduler. fallback is the fixed per-mode
// duration used when the duration engine states no preference.
func NewScheduler(modes []domain.ModeDescriptor, engine *DurationEngine, fallback time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{modes: modes, engine: engine, fallback: fallback, logger: logger}
}

// Advance returns the mode to display at now, whether the switch
// requires a forced redraw, and whether any mode is enabled at all.
// gameCount supplies the current selection size per mode; liveLeagues
// names the leagues that have live-priority content right now.
func (s *Scheduler) Advance(now time.Time, gameCount func(domain.ModeDescriptor) int, liveLeagues map[domain.League]bool) (domain.ModeDescriptor, bool, bool) {
	if len(s.modes) == 0 {
		return domain.ModeDescriptor{}, false, false
	}

	if target := s.preemptTarget(liveLeagues); !target.IsZero() {
		if s.preempt != target {
			logging.Info(s.logger, "live priority preempting rotation", logging.FieldMode, target.String())
			s.preempt = target
			s.started = true
			s.modeStart = now
			return target, true, true
		}
		return target, false, true
	}

	if !s.preempt.IsZero() {
		// Live content drained; resume the interrupted rotation with a
		// fresh timer.
		logging.Info(s.logger, "live priority released", logging.FieldMode, s.modes[s.idx].String())
		s.preempt = domain.ModeDescriptor{}
		s.modeStart = now
		return s.modes[s.idx], true, true
	}

	if !s.started {
		s.started = true
		s.modeStart = now
		return s.modes[s.idx], true, true
	}

	current := s.modes[s.idx]
	duration, ok := s.engine.DurationFor(current, gameCount(current))
	if !ok {
		duration = s.fallback
	}
	if now.Sub(s.modeStart) >= duration {
		s.idx = (s.idx + 1) % len(s.modes)
		s.modeStart = now
		next := s.modes[s.idx]
		logging.Debug(s.logger, "rotating display mode",
			logging.FieldMode, next.String(),
			logging.FieldDurationMS, duration.Milliseconds())
		return next, true, true
	}
	return current, false, true
}

// Current returns the active mode without advancing the rotation.
func (s *Scheduler) Current() (domain.ModeDescriptor, bool) {
	if len(s.modes) == 0 {
		return domain.ModeDescriptor{}, false
	}
	if !s.preempt.IsZero() {
		return s.preempt, true
	}
	return s.modes[s.idx], true
}

// preemptTarget picks the live descriptor to force, walking the enabled
// mode order so the outcome is deterministic when several leagues have
// live content.
func (s *Scheduler) preemptTarget(liveLeagues map[domain.League]bool) domain.ModeDescriptor {
	if len(liveLeagues) == 0 {
		return domain.ModeDescriptor{}
	}
	for _, mode := range s.modes {
		if mode.Type == domain.ModeLive && liveLeagues[mode.League] {
			return mode
		}
	}
	return domain.ModeDescriptor{}
}
