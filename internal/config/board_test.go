package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"football-scoreboard/internal/domain"
)

func boolPtr(v bool) *bool { return &v }

func TestLoadBoardMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadBoard(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nfl := cfg.League(domain.LeagueNFL)
	if nfl == nil || !nfl.Enabled {
		t.Fatalf("default board should enable nfl")
	}
	if nfl.RecencyWindow() != 21*24*time.Hour {
		t.Fatalf("default nfl recency window wrong: %v", nfl.RecencyWindow())
	}
	if ncaa := cfg.League(domain.LeagueNCAAFB); ncaa == nil || ncaa.Enabled {
		t.Fatalf("default board should disable ncaa_fb")
	}
	if cfg.DisplayDuration != DefaultDisplayDuration || cfg.GameDisplayDuration != DefaultGameDisplayDuration {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadBoardParsesNestedConfig(t *testing.T) {
	raw := `{
		"game_display_duration": 20,
		"dynamic_duration": {"enabled": true, "max_duration_seconds": 120},
		"leagues": {
			"nfl": {
				"enabled": true,
				"favorite_teams": ["TB", "DAL"],
				"display_modes": {"show_upcoming": false},
				"filtering": {"show_favorite_teams_only": true},
				"live_priority": true,
				"recency_window_days": 21
			},
			"ncaa_fb": {
				"enabled": true,
				"favorite_teams": ["AP_TOP_25"],
				"mode_durations": {"recent": {"enabled": false}}
			}
		}
	}`
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nfl := cfg.League(domain.LeagueNFL)
	if !nfl.Filtering.FavoriteTeamsOnly || !nfl.LivePriority {
		t.Fatalf("nfl flags not parsed: %+v", nfl)
	}
	if nfl.DisplayModes.Upcoming() {
		t.Fatalf("nfl upcoming should be disabled")
	}
	if !nfl.DisplayModes.Live() || !nfl.DisplayModes.Recent() {
		t.Fatalf("absent mode flags should default to enabled")
	}
	if nfl.RecentLimit != DefaultRecentLimit {
		t.Fatalf("recent limit default not applied: %d", nfl.RecentLimit)
	}
	if cfg.GameDisplayDuration != 20 {
		t.Fatalf("game display duration: %d", cfg.GameDisplayDuration)
	}
	if !cfg.DynamicDurationEnabled() {
		t.Fatalf("dynamic duration should be enabled globally")
	}
}

func TestEnabledDescriptorsCrossProduct(t *testing.T) {
	cfg := BoardConfig{
		Leagues: map[domain.League]*LeagueConfig{
			domain.LeagueNFL: {
				Enabled:      true,
				DisplayModes: DisplayModes{ShowUpcoming: boolPtr(false)},
			},
			domain.LeagueNCAAFB: {Enabled: true},
		},
	}
	cfg.Normalize()

	got := cfg.EnabledDescriptors()
	want := []domain.ModeDescriptor{
		{League: domain.LeagueNFL, Type: domain.ModeLive},
		{League: domain.LeagueNFL, Type: domain.ModeRecent},
		{League: domain.LeagueNCAAFB, Type: domain.ModeLive},
		{League: domain.LeagueNCAAFB, Type: domain.ModeRecent},
		{League: domain.LeagueNCAAFB, Type: domain.ModeUpcoming},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d descriptors, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descriptor %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDurationLayersOrder(t *testing.T) {
	leagueMode := &DurationLayer{Enabled: boolPtr(true)}
	league := &DurationLayer{Enabled: boolPtr(false)}
	globalMode := &DurationLayer{MaxSeconds: 40}
	global := &DurationLayer{Enabled: boolPtr(true)}

	cfg := BoardConfig{
		DynamicDuration: global,
		ModeDurations:   map[string]*DurationLayer{"recent": globalMode},
		Leagues: map[domain.League]*LeagueConfig{
			domain.LeagueNFL: {
				Enabled:         true,
				DynamicDuration: league,
				ModeDurations:   map[string]*DurationLayer{"recent": leagueMode},
			},
		},
	}
	cfg.Normalize()

	layers := cfg.DurationLayers(domain.ModeDescriptor{League: domain.LeagueNFL, Type: domain.ModeRecent})
	if len(layers) != 4 {
		t.Fatalf("expected 4 layers, got %d", len(layers))
	}
	if layers[0] != leagueMode || layers[1] != league || layers[2] != globalMode || layers[3] != global {
		t.Fatalf("layer order wrong: %v", layers)
	}
}
