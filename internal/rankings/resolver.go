package rankings

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/logging"
	"football-scoreboard/internal/metrics"
	"football-scoreboard/internal/providers"
)

// Group tokens accepted in favorite team lists. Each expands to the
// top-N college teams in the current AP poll.
const (
	GroupTop25 = "AP_TOP_25"
	GroupTop10 = "AP_TOP_10"
	GroupTop5  = "AP_TOP_5"
)

var groupSizes = map[string]int{
	GroupTop25: 25,
	GroupTop10: 10,
	GroupTop5:  5,
}

// IsGroup reports whether ref is a ranking group token.
func IsGroup(ref string) bool {
	_, ok := groupSizes[strings.ToUpper(strings.TrimSpace(ref))]
	return ok
}

const defaultTTL = time.Hour

type snapshot struct {
	ranks     map[string]int
	ordered   []string
	fetchedAt time.Time
}

// Resolver expands ranking group tokens into concrete team
// abbreviations, backed by a periodically refreshed AP poll snapshot.
// Resolution never fails: when a refresh errors the previous snapshot
// is served, and with no snapshot at all groups simply expand to
// nothing.
type Resolver struct {
	provider providers.RankingProvider
	logger   *slog.Logger
	recorder *metrics.Recorder
	ttl      time.Duration
	now      func() time.Time

	mu   sync.Mutex
	snap *snapshot
}

// NewResolver constructs a Resolver with the default one-hour refresh
// interval.
func NewResolver(provider providers.RankingProvider, logger *slog.Logger, recorder *metrics.Recorder) *Resolver {
	return &Resolver{
		provider: provider,
		logger:   logger,
		recorder: recorder,
		ttl:      defaultTTL,
		now:      time.Now,
	}
}

// ResolveTeams expands refs into a deduplicated, order-preserving list
// of team abbreviations for the given league. Literal abbreviations
// pass through uppercased; group tokens expand to the current top-N.
// Group tokens only make sense for college football and expand to
// nothing elsewhere.
func (r *Resolver) ResolveTeams(ctx context.Context, refs []string, league domain.League) []string {
	var out []string
	seen := make(map[string]struct{})

	add := func(abbr string) {
		if abbr == "" {
			return
		}
		if _, dup := seen[abbr]; dup {
			return
		}
		seen[abbr] = struct{}{}
		out = append(out, abbr)
	}

	for _, ref := range refs {
		token := strings.ToUpper(strings.TrimSpace(ref))
		size, isGroup := groupSizes[token]
		if !isGroup {
			add(token)
			continue
		}
		if league != domain.LeagueNCAAFB {
			logging.Warn(r.logger, "ranking group ignored for league",
				logging.FieldLeague, string(league),
				"group", token)
			continue
		}
		for _, abbr := range r.topN(ctx, size) {
			add(abbr)
		}
	}
	return out
}

// TeamRank returns the team's AP rank, or 0 when unranked or no
// snapshot is available.
func (r *Resolver) TeamRank(ctx context.Context, abbr string) int {
	snap := r.current(ctx)
	if snap == nil {
		return 0
	}
	return snap.ranks[strings.ToUpper(strings.TrimSpace(abbr))]
}

// IsRanked reports whether the team appears in the current AP poll.
func (r *Resolver) IsRanked(ctx context.Context, abbr string) bool {
	return r.TeamRank(ctx, abbr) > 0
}

// Invalidate drops the cached snapshot so the next resolution fetches
// fresh rankings.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = nil
}

// Refresh forces a fetch regardless of snapshot age, used to warm the
// resolver at startup.
func (r *Resolver) Refresh(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshLocked(ctx)
}

func (r *Resolver) topN(ctx context.Context, n int) []string {
	snap := r.current(ctx)
	if snap == nil {
		return nil
	}
	if n > len(snap.ordered) {
		n = len(snap.ordered)
	}
	return snap.ordered[:n]
}

func (r *Resolver) current(ctx context.Context) *snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snap == nil || r.now().Sub(r.snap.fetchedAt) >= r.ttl {
		r.refreshLocked(ctx)
	}
	return r.snap
}

// refreshLocked fetches a new snapshot, keeping the old one on error.
// Callers hold r.mu.
func (r *Resolver) refreshLocked(ctx context.Context) {
	if r.provider == nil {
		return
	}

	started := r.now()
	ranks, err := r.provider.FetchRankings(ctx)
	r.recorder.RecordRankingRefresh(r.now().Sub(started), err)
	if err != nil {
		logging.Warn(r.logger, "ranking refresh failed, keeping previous snapshot", "error", err)
		if r.snap != nil {
			// Bump the timestamp so a flapping provider is not
			// hammered on every resolution.
			r.snap.fetchedAt = r.now()
		}
		return
	}

	normalized := make(map[string]int, len(ranks))
	for abbr, rank := range ranks {
		abbr = strings.ToUpper(strings.TrimSpace(abbr))
		if abbr == "" || rank <= 0 {
			continue
		}
		normalized[abbr] = rank
	}

	ordered := make([]string, 0, len(normalized))
	for abbr := range normalized {
		ordered = append(ordered, abbr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		ri, rj := normalized[ordered[i]], normalized[ordered[j]]
		if ri != rj {
			return ri < rj
		}
		return ordered[i] < ordered[j]
	})

	r.snap = &snapshot{ranks: normalized, ordered: ordered, fetchedAt: r.now()}
	logging.Debug(r.logger, "ranking snapshot refreshed", logging.FieldCount, len(ordered))
}
