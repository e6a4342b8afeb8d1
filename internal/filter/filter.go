package filter

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"football-scoreboard/internal/config"
	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/logging"
)

// TeamResolver expands favorite-team references, including ranking
// group tokens, into concrete team abbreviations.
type TeamResolver interface {
	ResolveTeams(ctx context.Context, refs []string, league domain.League) []string
}

// GameFilter selects and orders the games shown for a display mode.
// Selection is a pure function of the game pool, the mode, and the
// board configuration; the only shared state touched is the resolver's
// ranking cache.
type GameFilter struct {
	resolver TeamResolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewGameFilter constructs a GameFilter. The resolver may be nil, in
// which case favorite references are matched literally.
func NewGameFilter(resolver TeamResolver, logger *slog.Logger) *GameFilter {
	return &GameFilter{resolver: resolver, logger: logger, now: time.Now}
}

// Select returns the ordered games for the mode. Live games sort first,
// then ascending start time, with games lacking a start time last.
func (f *GameFilter) Select(ctx context.Context, all []domain.Game, mode domain.ModeDescriptor, cfg *config.BoardConfig) []domain.Game {
	lc := cfg.League(mode.League)
	if lc == nil || !lc.Enabled || !lc.DisplayModes.Enabled(mode.Type) {
		return nil
	}

	games := f.byMode(all, mode, lc)

	favoritesActive := lc.Filtering.FavoriteTeamsOnly && len(lc.FavoriteTeams) > 0
	if favoritesActive && mode.Type == domain.ModeLive && lc.Filtering.ShowAllLive {
		favoritesActive = false
	}
	if favoritesActive {
		favorites := f.resolveFavorites(ctx, lc.FavoriteTeams, mode.League)
		games = capPerFavorite(games, favorites, mode.Type)
	}

	sortGames(games)

	switch mode.Type {
	case domain.ModeRecent:
		games = truncate(games, lc.RecentLimit)
	case domain.ModeUpcoming:
		games = truncate(games, lc.UpcomingLimit)
	}
	return games
}

// byMode applies the mode predicate over the league's games.
func (f *GameFilter) byMode(all []domain.Game, mode domain.ModeDescriptor, lc *config.LeagueConfig) []domain.Game {
	var cutoff time.Time
	if window := lc.RecencyWindow(); window > 0 {
		cutoff = f.now().Add(-window)
	}

	var out []domain.Game
	for _, g := range all {
		if g.League != mode.League || g.ID == "" {
			continue
		}
		switch mode.Type {
		case domain.ModeLive:
			if !g.State.InPlay() {
				continue
			}
		case domain.ModeRecent:
			if g.State != domain.StateFinal {
				continue
			}
			if !cutoff.IsZero() && (g.StartTime == nil || g.StartTime.Before(cutoff)) {
				continue
			}
		case domain.ModeUpcoming:
			if g.State != domain.StateScheduled {
				continue
			}
		default:
			continue
		}
		out = append(out, g)
	}
	return out
}

// resolveFavorites expands the configured references. When resolution
// yields nothing (ranking feed down, no snapshot) the literal
// references are used instead, so a plain team list keeps working.
func (f *GameFilter) resolveFavorites(ctx context.Context, refs []string, league domain.League) []string {
	if f.resolver != nil {
		if resolved := f.resolver.ResolveTeams(ctx, refs, league); len(resolved) > 0 {
			return resolved
		}
		logging.Debug(f.logger, "favorite resolution empty, matching references literally",
			logging.FieldLeague, string(league))
	}
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, strings.ToUpper(strings.TrimSpace(ref)))
	}
	return out
}

// capPerFavorite keeps at most one game per favorite team, walking the
// favorites in configured order. Recent modes take the team's latest
// game, upcoming modes the soonest, live modes the first seen. A game
// involving two favorites appears once.
func capPerFavorite(games []domain.Game, favorites []string, t domain.ModeType) []domain.Game {
	var out []domain.Game
	taken := make(map[string]struct{})

	for _, fav := range favorites {
		var best *domain.Game
		for i := range games {
			g := &games[i]
			if !g.Involves(fav) {
				continue
			}
			if _, dup := taken[g.ID]; dup {
				best = nil
				break
			}
			if best == nil || prefer(g, best, t) {
				best = g
			}
		}
		if best == nil {
			continue
		}
		taken[best.ID] = struct{}{}
		out = append(out, *best)
	}
	return out
}

// prefer reports whether candidate should replace current for a mode.
// Ties keep the earlier candidate, so outcomes are stable across runs.
func prefer(candidate, current *domain.Game, t domain.ModeType) bool {
	switch t {
	case domain.ModeRecent:
		return after(candidate.StartTime, current.StartTime)
	case domain.ModeUpcoming:
		return before(candidate.StartTime, current.StartTime)
	}
	return false
}

func after(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a != nil && b == nil
	}
	return a.After(*b)
}

func before(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a != nil && b == nil
	}
	return a.Before(*b)
}

// sortGames orders live games first, then by start time ascending with
// missing start times last. The stable sort preserves pool order on
// ties.
func sortGames(games []domain.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		gi, gj := games[i], games[j]
		if li, lj := gi.State.InPlay(), gj.State.InPlay(); li != lj {
			return li
		}
		switch {
		case gi.StartTime == nil:
			return false
		case gj.StartTime == nil:
			return true
		}
		return gi.StartTime.Before(*gj.StartTime)
	})
}

func truncate(games []domain.Game, limit int) []domain.Game {
	if limit > 0 && len(games) > limit {
		return games[:limit]
	}
	return games
}
