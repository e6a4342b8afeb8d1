package domain

// ModeType is one of the three scoreboard display modes.
type ModeType string

const (
	ModeLive     ModeType = "live"
	ModeRecent   ModeType = "recent"
	ModeUpcoming ModeType = "upcoming"
)

// ModeTypes lists the display modes in rotation order.
func ModeTypes() []ModeType {
	return []ModeType{ModeLive, ModeRecent, ModeUpcoming}
}

// ModeDescriptor identifies a (league, mode) pair the scheduler can show.
type ModeDescriptor struct {
	League League   `json:"league"`
	Type   ModeType `json:"type"`
}

// String renders the descriptor in the "nfl_live" form used in config and logs.
func (m ModeDescriptor) String() string {
	return string(m.League) + "_" + string(m.Type)
}

// IsZero reports whether the descriptor is unset.
func (m ModeDescriptor) IsZero() bool {
	return m.League == "" && m.Type == ""
}

// Matches reports whether the game belongs in this descriptor's mode,
// ignoring league config (enable flags are the filter's concern).
func (m ModeDescriptor) Matches(g Game) bool {
	if g.League != m.League {
		return false
	}
	switch m.Type {
	case ModeLive:
		return g.State.InPlay()
	case ModeRecent:
		return g.State == StateFinal
	case ModeUpcoming:
		return g.State == StateScheduled
	}
	return false
}
