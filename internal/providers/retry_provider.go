package providers

import (
	"context"
	"log/slog"
	"time"

	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a GameProvider with retry/backoff behavior.
type retryingProvider struct {
	inner       GameProvider
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, maxAttempts int, backoff time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		games, err := r.inner.FetchGames(ctx, league)
		if err == nil {
			return games, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}
		logging.Warn(r.logger, "provider fetch retry",
			logging.FieldLeague, string(league),
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	logging.Warn(r.logger, "provider fetch failed",
		logging.FieldLeague, string(league),
		"attempts", r.maxAttempts,
		"err", lastErr,
	)
	return nil, lastErr
}
