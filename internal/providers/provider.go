package providers

import (
	"context"
	"errors"

	"football-scoreboard/internal/domain"
)

// ErrProviderUnavailable indicates a provider was not wired or refused
// the call before reaching the network.
var ErrProviderUnavailable = errors.New("provider unavailable")

// GameProvider defines how upstream game data is fetched and normalized.
// Implementations fetch the full season window for the given league and
// return league-tagged, validated game records.
type GameProvider interface {
	FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error)
}

// RankingProvider fetches the current poll rankings as a mapping from
// team abbreviation to rank (1 = best).
type RankingProvider interface {
	FetchRankings(ctx context.Context) (map[string]int, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	GameProvider
	RankingProvider
}
