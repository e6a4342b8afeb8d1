package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"football-scoreboard/internal/domain"
)

type flakyProvider struct {
	failures int
	calls    int
}

func (f *flakyProvider) FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient")
	}
	return []domain.Game{{ID: "g1", League: league}}, nil
}

func TestRetryingProviderSucceedsAfterRetries(t *testing.T) {
	inner := &flakyProvider{failures: 2}
	p := NewRetryingProvider(inner, nil, 3, time.Millisecond)

	games, err := p.FetchGames(context.Background(), domain.LeagueNFL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 || games[0].League != domain.LeagueNFL {
		t.Fatalf("unexpected games: %v", games)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryingProviderExhaustsAttempts(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	p := NewRetryingProvider(inner, nil, 2, time.Millisecond)

	if _, err := p.FetchGames(context.Background(), domain.LeagueNFL); err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if inner.calls != 2 {
		t.Fatalf("calls = %d, want 2", inner.calls)
	}
}

func TestRetryingProviderHonorsContext(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	p := NewRetryingProvider(inner, nil, 5, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.FetchGames(ctx, domain.LeagueNFL); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryingProviderNilInner(t *testing.T) {
	p := NewRetryingProvider(nil, nil, 0, 0)
	if _, err := p.FetchGames(context.Background(), domain.LeagueNFL); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
