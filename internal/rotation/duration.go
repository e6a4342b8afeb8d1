package rotation

import (
	"time"

	"football-scoreboard/internal/config"
	"football-scoreboard/internal/domain"
)

// DurationEngine derives a mode's display duration from its game count
// and the layered dynamic-duration overrides. Layers are consulted most
// specific first (league+mode, league, global+mode, global); the first
// layer that states a preference wins.
type DurationEngine struct {
	cfg *config.BoardConfig
}

// NewDurationEngine constructs a DurationEngine over the board config.
func NewDurationEngine(cfg *config.BoardConfig) *DurationEngine {
	return &DurationEngine{cfg: cfg}
}

// DurationFor returns the dynamic duration for showing gameCount games
// in the mode. The second return is false when no layer enables dynamic
// duration, when the deciding layer disables it, or when there is
// nothing to display; the caller then falls back to the fixed default.
func (e *DurationEngine) DurationFor(mode domain.ModeDescriptor, gameCount int) (time.Duration, bool) {
	if gameCount <= 0 {
		return 0, false
	}

	var deciding *config.DurationLayer
	for _, layer := range e.cfg.DurationLayers(mode) {
		if layer != nil && layer.Enabled != nil {
			deciding = layer
			break
		}
	}
	if deciding == nil || !*deciding.Enabled {
		return 0, false
	}

	perGame := e.cfg.GameDisplayDuration
	seconds := gameCount * perGame
	if deciding.MaxSeconds > 0 && seconds > deciding.MaxSeconds {
		seconds = deciding.MaxSeconds
	}
	// Never shorter than one game's worth of display time.
	if seconds < perGame {
		seconds = perGame
	}
	if seconds < config.MinDurationFloorSeconds {
		seconds = config.MinDurationFloorSeconds
	}
	return time.Duration(seconds) * time.Second, true
}
