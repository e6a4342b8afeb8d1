package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"football-scoreboard/internal/domain"
)

// Defaults applied by Normalize.
const (
	DefaultDisplayDuration     = 30
	DefaultGameDisplayDuration = 15
	DefaultRecentLimit         = 5
	DefaultUpcomingLimit       = 10
	MinDurationFloorSeconds    = 1
)

// DurationLayer is one level of the dynamic-duration override cascade.
// A nil Enabled means the layer states no preference and resolution
// falls through to the next layer.
type DurationLayer struct {
	Enabled    *bool `json:"enabled,omitempty"`
	MaxSeconds int   `json:"max_duration_seconds,omitempty"`
}

// DisplayModes holds per-league mode enable flags. Absent flags default
// to enabled, matching the board's out-of-the-box behavior.
type DisplayModes struct {
	ShowLive     *bool `json:"show_live,omitempty"`
	ShowRecent   *bool `json:"show_recent,omitempty"`
	ShowUpcoming *bool `json:"show_upcoming,omitempty"`
}

// Live reports whether the live mode is enabled.
func (d DisplayModes) Live() bool { return d.ShowLive == nil || *d.ShowLive }

// Recent reports whether the recent mode is enabled.
func (d DisplayModes) Recent() bool { return d.ShowRecent == nil || *d.ShowRecent }

// Upcoming reports whether the upcoming mode is enabled.
func (d DisplayModes) Upcoming() bool { return d.ShowUpcoming == nil || *d.ShowUpcoming }

// Enabled reports whether the given mode type is enabled.
func (d DisplayModes) Enabled(t domain.ModeType) bool {
	switch t {
	case domain.ModeLive:
		return d.Live()
	case domain.ModeRecent:
		return d.Recent()
	case domain.ModeUpcoming:
		return d.Upcoming()
	}
	return false
}

// Filtering holds per-league game filtering flags.
type Filtering struct {
	FavoriteTeamsOnly bool `json:"show_favorite_teams_only"`
	ShowAllLive       bool `json:"show_all_live"`
}

// LeagueConfig is one league's display configuration.
type LeagueConfig struct {
	Enabled           bool                      `json:"enabled"`
	FavoriteTeams     []string                  `json:"favorite_teams"`
	DisplayModes      DisplayModes              `json:"display_modes"`
	Filtering         Filtering                 `json:"filtering"`
	LivePriority      bool                      `json:"live_priority"`
	RecencyWindowDays int                       `json:"recency_window_days,omitempty"`
	RecentLimit       int                       `json:"recent_games_to_show"`
	UpcomingLimit     int                       `json:"upcoming_games_to_show"`
	UpdateSeconds     int                       `json:"update_interval_seconds"`
	DynamicDuration   *DurationLayer            `json:"dynamic_duration,omitempty"`
	ModeDurations     map[string]*DurationLayer `json:"mode_durations,omitempty"`
}

// RecencyWindow returns the recent-games cutoff window, or zero when the
// league accepts all final games regardless of age.
func (l *LeagueConfig) RecencyWindow() time.Duration {
	if l == nil || l.RecencyWindowDays <= 0 {
		return 0
	}
	return time.Duration(l.RecencyWindowDays) * 24 * time.Hour
}

// UpdateInterval returns the league's fetch interval, or fallback when unset.
func (l *LeagueConfig) UpdateInterval(fallback time.Duration) time.Duration {
	if l == nil || l.UpdateSeconds <= 0 {
		return fallback
	}
	return time.Duration(l.UpdateSeconds) * time.Second
}

// BoardConfig is the display configuration surface: global display options
// plus a nested section per league.
type BoardConfig struct {
	DisplayDuration     int                             `json:"display_duration"`
	GameDisplayDuration int                             `json:"game_display_duration"`
	ShowRecords         bool                            `json:"show_records"`
	ShowRanking         bool                            `json:"show_ranking"`
	ShowOdds            bool                            `json:"show_odds"`
	DynamicDuration     *DurationLayer                  `json:"dynamic_duration,omitempty"`
	ModeDurations       map[string]*DurationLayer       `json:"mode_durations,omitempty"`
	Leagues             map[domain.League]*LeagueConfig `json:"leagues"`
}

// DefaultBoard returns the configuration used when no board file exists:
// NFL enabled with its usual 21-day recency window, college football off.
func DefaultBoard() BoardConfig {
	cfg := BoardConfig{
		Leagues: map[domain.League]*LeagueConfig{
			domain.LeagueNFL:    {Enabled: true, RecencyWindowDays: 21},
			domain.LeagueNCAAFB: {Enabled: false},
		},
	}
	cfg.Normalize()
	return cfg
}

// LoadBoard reads the board configuration from a JSON file. A missing file
// is not an error; defaults apply.
func LoadBoard(path string) (BoardConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultBoard(), nil
		}
		return BoardConfig{}, fmt.Errorf("read board config: %w", err)
	}

	var cfg BoardConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return BoardConfig{}, fmt.Errorf("parse board config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize fills defaults so downstream code never branches on zeroes.
func (c *BoardConfig) Normalize() {
	if c.DisplayDuration <= 0 {
		c.DisplayDuration = DefaultDisplayDuration
	}
	if c.GameDisplayDuration <= 0 {
		c.GameDisplayDuration = DefaultGameDisplayDuration
	}
	if c.Leagues == nil {
		c.Leagues = make(map[domain.League]*LeagueConfig)
	}
	for _, league := range domain.Leagues() {
		lc := c.Leagues[league]
		if lc == nil {
			lc = &LeagueConfig{}
			c.Leagues[league] = lc
		}
		if lc.RecentLimit <= 0 {
			lc.RecentLimit = DefaultRecentLimit
		}
		if lc.UpcomingLimit <= 0 {
			lc.UpcomingLimit = DefaultUpcomingLimit
		}
	}
}

// League returns the league section, never nil after Normalize.
func (c *BoardConfig) League(league domain.League) *LeagueConfig {
	if c.Leagues == nil {
		return nil
	}
	return c.Leagues[league]
}

// EnabledDescriptors returns the closed set of (league, mode) pairs the
// scheduler rotates through, in fixed configuration-derived order.
func (c *BoardConfig) EnabledDescriptors() []domain.ModeDescriptor {
	var out []domain.ModeDescriptor
	for _, league := range domain.Leagues() {
		lc := c.League(league)
		if lc == nil || !lc.Enabled {
			continue
		}
		for _, t := range domain.ModeTypes() {
			if lc.DisplayModes.Enabled(t) {
				out = append(out, domain.ModeDescriptor{League: league, Type: t})
			}
		}
	}
	return out
}

// DurationLayers returns the override cascade for a mode, most specific
// first: league+mode, league, global+mode, global.
func (c *BoardConfig) DurationLayers(mode domain.ModeDescriptor) []*DurationLayer {
	layers := make([]*DurationLayer, 0, 4)
	if lc := c.League(mode.League); lc != nil {
		layers = append(layers, lc.ModeDurations[string(mode.Type)], lc.DynamicDuration)
	} else {
		layers = append(layers, nil, nil)
	}
	layers = append(layers, c.ModeDurations[string(mode.Type)], c.DynamicDuration)
	return layers
}

// DynamicDurationEnabled reports whether any layer anywhere turns the
// dynamic-duration feature on. When false the cycle tracker yields to
// fixed-duration rotation.
func (c *BoardConfig) DynamicDurationEnabled() bool {
	check := func(l *DurationLayer) bool { return l != nil && l.Enabled != nil && *l.Enabled }
	if check(c.DynamicDuration) {
		return true
	}
	for _, l := range c.ModeDurations {
		if check(l) {
			return true
		}
	}
	for _, lc := range c.Leagues {
		if lc == nil {
			continue
		}
		if check(lc.DynamicDuration) {
			return true
		}
		for _, l := range lc.ModeDurations {
			if check(l) {
				return true
			}
		}
	}
	return false
}
