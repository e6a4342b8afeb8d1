package render

import (
	"football-scoreboard/internal/domain"
)

// Sink receives the frames the board decides to show. Implementations
// own the actual output medium: a terminal emulator, an in-memory
// frame buffer, eventually LED matrix hardware.
type Sink interface {
	// RenderGame shows one game in the context of a display mode.
	RenderGame(g domain.Game, mode domain.ModeType) error
	// RenderSeparator shows a league divider between game frames.
	RenderSeparator(league domain.League) error
	// Clear blanks the output, used on forced redraws.
	Clear() error
}
