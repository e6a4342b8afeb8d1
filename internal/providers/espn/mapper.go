package espn

import (
	"strconv"
	"strings"
	"time"

	"football-scoreboard/internal/domain"
)

// espnDateLayout matches the truncated RFC3339 timestamps in the feed,
// e.g. "2025-11-09T18:00Z".
const espnDateLayout = "2006-01-02T15:04Z"

var scoringKeywords = []string{
	"touchdown",
	"field goal",
	"safety",
	"extra point",
	"two-point",
	"conversion",
}

// mapEvent converts one upstream event into a normalized game record.
// Events missing a home or away competitor are rejected.
func mapEvent(ev event, league domain.League) (domain.Game, bool) {
	if len(ev.Competitions) == 0 {
		return domain.Game{}, false
	}
	comp := ev.Competitions[0]

	var home, away *competitor
	for i := range comp.Competitors {
		switch comp.Competitors[i].HomeAway {
		case "home":
			home = &comp.Competitors[i]
		case "away":
			away = &comp.Competitors[i]
		}
	}
	if home == nil || away == nil || ev.ID == "" {
		return domain.Game{}, false
	}

	game := domain.Game{
		ID:     ev.ID,
		League: league,
		Home:   mapTeam(*home),
		Away:   mapTeam(*away),
		State:  mapState(comp.Status),
	}

	if start, ok := parseEventDate(ev.Date); ok {
		game.StartTime = &start
		if game.State == domain.StateScheduled {
			game.DateText = start.Format("Jan 2")
			game.TimeText = start.Format("3:04 PM")
		}
	}

	if game.State.InPlay() {
		game.Situation = mapSituation(comp, home.Team.ID, away.Team.ID)
	}
	if len(comp.Odds) > 0 {
		game.Odds = mapOdds(comp.Odds[0])
	}
	return game, true
}

func mapTeam(c competitor) domain.Team {
	t := domain.Team{
		Abbr:  strings.ToUpper(strings.TrimSpace(c.Team.Abbreviation)),
		Name:  c.Team.DisplayName,
		Score: parseScore(c.Score),
	}
	if len(c.Records) > 0 {
		t.Record = c.Records[0].Summary
	}
	if c.CuratedRank != nil && c.CuratedRank.Current > 0 && c.CuratedRank.Current <= 25 {
		t.Rank = c.CuratedRank.Current
	}
	return t
}

func mapState(s status) domain.GameState {
	switch s.Type.State {
	case "pre":
		return domain.StateScheduled
	case "post":
		return domain.StateFinal
	case "in":
		switch s.Type.Name {
		case "STATUS_HALFTIME":
			return domain.StateHalftime
		case "STATUS_END_PERIOD", "STATUS_END_OF_PERIOD":
			return domain.StatePeriodBreak
		}
		return domain.StateLive
	}
	// The feed occasionally reports postponed/canceled states; treat
	// them as scheduled with no start info so they sort last.
	return domain.StateScheduled
}

func mapSituation(comp competition, homeID, awayID string) *domain.Situation {
	sit := &domain.Situation{
		Period: comp.Status.Period,
		Clock:  comp.Status.DisplayClock,
	}
	sit.ScoringEvent = detectScoringEvent(comp.Status.Type)

	if comp.Situation != nil {
		sit.DownDistance = comp.Situation.ShortDownDistanceText
		sit.RedZone = comp.Situation.IsRedZone
		sit.HomeTimeouts = clampTimeouts(comp.Situation.HomeTimeouts)
		sit.AwayTimeouts = clampTimeouts(comp.Situation.AwayTimeouts)
		switch comp.Situation.Possession {
		case homeID:
			sit.Possession = domain.PossessionHome
		case awayID:
			sit.Possession = domain.PossessionAway
		}
	}
	return sit
}

func mapOdds(o odds) *domain.OddsSnapshot {
	if o.Details == "" && o.OverUnder == 0 && o.Spread == 0 {
		return nil
	}
	return &domain.OddsSnapshot{
		Details:    o.Details,
		HomeSpread: o.Spread,
		AwaySpread: -o.Spread,
		OverUnder:  o.OverUnder,
	}
}

// detectScoringEvent scans the status detail text for scoring plays so
// the renderer can call them out.
func detectScoringEvent(t statusType) string {
	detail := strings.ToLower(t.Detail + " " + t.ShortDetail)
	for _, keyword := range scoringKeywords {
		if strings.Contains(detail, keyword) {
			return keyword
		}
	}
	return ""
}

func parseScore(raw string) int {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || score < 0 {
		return 0
	}
	return score
}

func parseEventDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(espnDateLayout, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func clampTimeouts(n int) int {
	if n < 0 {
		return 0
	}
	if n > 3 {
		return 3
	}
	return n
}
