package board

import (
	"context"
)

// ModeInfo is one mode's slice of the status report.
type ModeInfo struct {
	Mode      string `json:"mode"`
	GameCount int    `json:"game_count"`
	Active    bool   `json:"active"`
}

// Info is the structured status the host exposes about the board.
type Info struct {
	ActiveMode    string     `json:"active_mode,omitempty"`
	Modes         []ModeInfo `json:"modes"`
	TotalGames    int        `json:"total_games"`
	CycleComplete bool       `json:"cycle_complete"`
}

// Info reports the board's current rotation state and per-mode game
// counts.
func (b *Board) Info(ctx context.Context) Info {
	b.mu.Lock()
	active := b.activeMode
	b.mu.Unlock()

	info := Info{
		TotalGames:    len(b.source.AllGames()),
		CycleComplete: b.tracker.IsCycleComplete(),
	}
	if !active.IsZero() {
		info.ActiveMode = active.String()
	}
	for _, mode := range b.cfg.EnabledDescriptors() {
		info.Modes = append(info.Modes, ModeInfo{
			Mode:      mode.String(),
			GameCount: len(b.filter.Select(ctx, b.source.Games(mode.League), mode, b.cfg)),
			Active:    mode == active,
		})
	}
	return info
}
