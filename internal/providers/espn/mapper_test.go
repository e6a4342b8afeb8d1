package espn

import (
	"testing"

	"football-scoreboard/internal/domain"
)

func sampleEvent() event {
	return event{
		ID:   "401547417",
		Date: "2025-11-09T18:00Z",
		Competitions: []competition{{
			Status: status{
				Period:       3,
				DisplayClock: "8:42",
				Type:         statusType{State: "in", Name: "STATUS_IN_PROGRESS", Detail: "3rd Quarter"},
			},
			Competitors: []competitor{
				{
					HomeAway:    "home",
					Score:       "21",
					Team:        team{ID: "27", DisplayName: "Tampa Bay Buccaneers", Abbreviation: "tb"},
					Records:     []record{{Summary: "6-2"}},
					CuratedRank: &curatedRank{Current: 99},
				},
				{
					HomeAway: "away",
					Score:    "17",
					Team:     team{ID: "6", DisplayName: "Dallas Cowboys", Abbreviation: "DAL"},
				},
			},
			Situation: &situation{
				ShortDownDistanceText: "3rd & 4",
				Possession:            "27",
				IsRedZone:             true,
				HomeTimeouts:          2,
				AwayTimeouts:          5,
			},
			Odds: []odds{{Details: "TB -3.5", OverUnder: 44.5, Spread: -3.5}},
		}},
	}
}

func TestMapEventLiveGame(t *testing.T) {
	game, ok := mapEvent(sampleEvent(), domain.LeagueNFL)
	if !ok {
		t.Fatalf("expected event to map")
	}
	if game.ID != "401547417" || game.League != domain.LeagueNFL {
		t.Fatalf("identity wrong: %+v", game)
	}
	if game.Home.Abbr != "TB" || game.Home.Score != 21 || game.Home.Record != "6-2" {
		t.Fatalf("home side wrong: %+v", game.Home)
	}
	if game.Home.Rank != 0 {
		t.Fatalf("rank 99 should not count as ranked")
	}
	if game.Away.Abbr != "DAL" || game.Away.Score != 17 {
		t.Fatalf("away side wrong: %+v", game.Away)
	}
	if game.State != domain.StateLive {
		t.Fatalf("state = %s, want LIVE", game.State)
	}
	if game.StartTime == nil || game.StartTime.Hour() != 18 {
		t.Fatalf("start time wrong: %v", game.StartTime)
	}

	sit := game.Situation
	if sit == nil {
		t.Fatalf("live game should carry a situation")
	}
	if sit.Period != 3 || sit.Clock != "8:42" || sit.DownDistance != "3rd & 4" {
		t.Fatalf("situation wrong: %+v", sit)
	}
	if sit.Possession != domain.PossessionHome {
		t.Fatalf("possession = %q, want home", sit.Possession)
	}
	if !sit.RedZone {
		t.Fatalf("redzone flag lost")
	}
	if sit.HomeTimeouts != 2 || sit.AwayTimeouts != 3 {
		t.Fatalf("timeouts wrong (away should clamp to 3): %+v", sit)
	}

	if game.Odds == nil || game.Odds.OverUnder != 44.5 || game.Odds.HomeSpread != -3.5 || game.Odds.AwaySpread != 3.5 {
		t.Fatalf("odds wrong: %+v", game.Odds)
	}
}

func TestMapEventRejectsMissingSide(t *testing.T) {
	ev := sampleEvent()
	ev.Competitions[0].Competitors = ev.Competitions[0].Competitors[:1]
	if _, ok := mapEvent(ev, domain.LeagueNFL); ok {
		t.Fatalf("event without away side must be rejected")
	}
}

func TestMapEventScheduled(t *testing.T) {
	ev := sampleEvent()
	ev.Competitions[0].Status = status{Type: statusType{State: "pre"}}
	ev.Competitions[0].Situation = nil

	game, ok := mapEvent(ev, domain.LeagueNFL)
	if !ok {
		t.Fatalf("expected event to map")
	}
	if game.State != domain.StateScheduled {
		t.Fatalf("state = %s, want SCHEDULED", game.State)
	}
	if game.Situation != nil {
		t.Fatalf("scheduled game should not carry a situation")
	}
	if game.DateText == "" || game.TimeText == "" {
		t.Fatalf("scheduled game should carry formatted date/time")
	}
}

func TestMapStateBreaks(t *testing.T) {
	halftime := status{Type: statusType{State: "in", Name: "STATUS_HALFTIME"}}
	if mapState(halftime) != domain.StateHalftime {
		t.Fatalf("halftime not mapped")
	}
	periodBreak := status{Type: statusType{State: "in", Name: "STATUS_END_PERIOD"}}
	if mapState(periodBreak) != domain.StatePeriodBreak {
		t.Fatalf("period break not mapped")
	}
	final := status{Type: statusType{State: "post"}}
	if mapState(final) != domain.StateFinal {
		t.Fatalf("final not mapped")
	}
	unknown := status{Type: statusType{State: "weird"}}
	if mapState(unknown) != domain.StateScheduled {
		t.Fatalf("unknown state should fall back to scheduled")
	}
}

func TestDetectScoringEvent(t *testing.T) {
	st := statusType{Detail: "Touchdown! TB scores"}
	if got := detectScoringEvent(st); got != "touchdown" {
		t.Fatalf("got %q", got)
	}
	st = statusType{ShortDetail: "42 yd Field Goal"}
	if got := detectScoringEvent(st); got != "field goal" {
		t.Fatalf("got %q", got)
	}
	st = statusType{Detail: "3rd and long"}
	if got := detectScoringEvent(st); got != "" {
		t.Fatalf("expected no scoring event, got %q", got)
	}
}

func TestParseScore(t *testing.T) {
	if parseScore("21") != 21 {
		t.Fatalf("numeric score")
	}
	if parseScore("") != 0 || parseScore("n/a") != 0 || parseScore("-3") != 0 {
		t.Fatalf("invalid scores should map to zero")
	}
}
