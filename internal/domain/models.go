package domain

import "time"

// League identifies which football league a game belongs to.
type League string

const (
	LeagueNFL    League = "nfl"
	LeagueNCAAFB League = "ncaa_fb"
)

// Leagues lists every league the service understands, in display order.
func Leagues() []League {
	return []League{LeagueNFL, LeagueNCAAFB}
}

// GameState mirrors the normalized lifecycle states for a game.
type GameState string

const (
	StateScheduled   GameState = "SCHEDULED"
	StateLive        GameState = "LIVE"
	StateHalftime    GameState = "HALFTIME"
	StatePeriodBreak GameState = "PERIOD_BREAK"
	StateFinal       GameState = "FINAL"
)

// InPlay reports whether the state counts as live content on the board.
func (s GameState) InPlay() bool {
	return s == StateLive || s == StateHalftime || s == StatePeriodBreak
}

// Possession indicates which side currently has the ball.
type Possession string

const (
	PossessionNone Possession = ""
	PossessionHome Possession = "home"
	PossessionAway Possession = "away"
)

// Team represents one side of a game.
type Team struct {
	Abbr   string `json:"abbr"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Record string `json:"record,omitempty"`
	Rank   int    `json:"rank,omitempty"`
}

// Situation carries live-game detail; meaningful only while InPlay.
type Situation struct {
	Period       int        `json:"period"`
	Clock        string     `json:"clock"`
	Possession   Possession `json:"possession"`
	DownDistance string     `json:"downDistance,omitempty"`
	RedZone      bool       `json:"redZone"`
	ScoringEvent string     `json:"scoringEvent,omitempty"`
	HomeTimeouts int        `json:"homeTimeouts"`
	AwayTimeouts int        `json:"awayTimeouts"`
}

// OddsSnapshot is an optional betting line attached to a game.
type OddsSnapshot struct {
	Details    string  `json:"details,omitempty"`
	HomeSpread float64 `json:"homeSpread"`
	AwaySpread float64 `json:"awaySpread"`
	OverUnder  float64 `json:"overUnder"`
}

// Game is the normalized, league-agnostic representation of one event.
// Records are rebuilt from the upstream feed on every fetch and never
// mutated in place.
type Game struct {
	ID        string        `json:"id"`
	League    League        `json:"league"`
	Home      Team          `json:"home"`
	Away      Team          `json:"away"`
	StartTime *time.Time    `json:"startTime,omitempty"`
	State     GameState     `json:"state"`
	Situation *Situation    `json:"situation,omitempty"`
	Odds      *OddsSnapshot `json:"odds,omitempty"`

	// Formatted strings for scheduled games.
	DateText string `json:"dateText,omitempty"`
	TimeText string `json:"timeText,omitempty"`
}

// Involves reports whether either side matches the given abbreviation.
func (g Game) Involves(abbr string) bool {
	return g.Home.Abbr == abbr || g.Away.Abbr == abbr
}
