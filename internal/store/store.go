package store

import (
	"sync"
	"time"

	"football-scoreboard/internal/domain"
)

type pool struct {
	games     []domain.Game
	seq       uint64
	fetchedAt time.Time
}

// PoolStore keeps the latest game pool per league. Pools are immutable
// snapshots: a completed fetch swaps the whole slice, and readers get a
// copy, so the render tick never observes a torn update. Each fetch is
// tagged with a monotonically increasing sequence; a result delivered
// after a newer fetch already landed is discarded.
type PoolStore struct {
	mu      sync.RWMutex
	pools   map[domain.League]pool
	nextSeq map[domain.League]uint64
}

// NewPoolStore constructs an empty PoolStore.
func NewPoolStore() *PoolStore {
	return &PoolStore{
		pools:   make(map[domain.League]pool),
		nextSeq: make(map[domain.League]uint64),
	}
}

// BeginFetch reserves the sequence number for a fetch that is about to
// start. Later fetches always get higher numbers.
func (s *PoolStore) BeginFetch(league domain.League) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq[league]++
	return s.nextSeq[league]
}

// SetGames installs a fetched pool. It reports false when the result is
// stale, i.e. a fetch with a higher sequence already delivered.
func (s *PoolStore) SetGames(league domain.League, games []domain.Game, seq uint64, fetchedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.pools[league]
	if seq <= current.seq {
		return false
	}
	snapshot := make([]domain.Game, len(games))
	copy(snapshot, games)
	s.pools[league] = pool{games: snapshot, seq: seq, fetchedAt: fetchedAt}
	return true
}

// Games returns a copy of the league's current pool.
func (s *PoolStore) Games(league domain.League) []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.pools[league].games
	out := make([]domain.Game, len(current))
	copy(out, current)
	return out
}

// AllGames returns every league's pool concatenated in league order.
func (s *PoolStore) AllGames() []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Game
	for _, league := range domain.Leagues() {
		out = append(out, s.pools[league].games...)
	}
	return out
}

// LastFetched returns when the league's pool was installed; the zero
// time means no fetch has ever landed.
func (s *PoolStore) LastFetched(league domain.League) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pools[league].fetchedAt
}
