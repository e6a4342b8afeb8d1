package store

import (
	"testing"
	"time"

	"football-scoreboard/internal/domain"
)

func game(id string, league domain.League) domain.Game {
	return domain.Game{ID: id, League: league}
}

func TestSetGamesAndRead(t *testing.T) {
	s := NewPoolStore()
	seq := s.BeginFetch(domain.LeagueNFL)
	now := time.Now()

	if !s.SetGames(domain.LeagueNFL, []domain.Game{game("1", domain.LeagueNFL)}, seq, now) {
		t.Fatal("expected first delivery to be accepted")
	}

	games := s.Games(domain.LeagueNFL)
	if len(games) != 1 || games[0].ID != "1" {
		t.Fatalf("unexpected pool: %+v", games)
	}
	if got := s.LastFetched(domain.LeagueNFL); !got.Equal(now) {
		t.Fatalf("LastFetched = %v, want %v", got, now)
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	s := NewPoolStore()
	first := s.BeginFetch(domain.LeagueNFL)
	second := s.BeginFetch(domain.LeagueNFL)

	if !s.SetGames(domain.LeagueNFL, []domain.Game{game("new", domain.LeagueNFL)}, second, time.Now()) {
		t.Fatal("newer fetch should land")
	}
	if s.SetGames(domain.LeagueNFL, []domain.Game{game("old", domain.LeagueNFL)}, first, time.Now()) {
		t.Fatal("older fetch should be discarded")
	}

	games := s.Games(domain.LeagueNFL)
	if len(games) != 1 || games[0].ID != "new" {
		t.Fatalf("stale result overwrote pool: %+v", games)
	}
}

func TestSequencesAreIndependentPerLeague(t *testing.T) {
	s := NewPoolStore()
	nfl := s.BeginFetch(domain.LeagueNFL)
	ncaa := s.BeginFetch(domain.LeagueNCAAFB)
	if nfl != 1 || ncaa != 1 {
		t.Fatalf("sequences not independent: nfl=%d ncaa=%d", nfl, ncaa)
	}
}

func TestAllGamesConcatenatesInLeagueOrder(t *testing.T) {
	s := NewPoolStore()
	s.SetGames(domain.LeagueNCAAFB, []domain.Game{game("c", domain.LeagueNCAAFB)}, s.BeginFetch(domain.LeagueNCAAFB), time.Now())
	s.SetGames(domain.LeagueNFL, []domain.Game{game("n", domain.LeagueNFL)}, s.BeginFetch(domain.LeagueNFL), time.Now())

	all := s.AllGames()
	if len(all) != 2 {
		t.Fatalf("expected 2 games, got %d", len(all))
	}
	if all[0].League != domain.LeagueNFL || all[1].League != domain.LeagueNCAAFB {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestReadersGetACopy(t *testing.T) {
	s := NewPoolStore()
	s.SetGames(domain.LeagueNFL, []domain.Game{game("1", domain.LeagueNFL)}, s.BeginFetch(domain.LeagueNFL), time.Now())

	games := s.Games(domain.LeagueNFL)
	games[0].ID = "mutated"

	if s.Games(domain.LeagueNFL)[0].ID != "1" {
		t.Fatal("caller mutation leaked into the store")
	}
}
