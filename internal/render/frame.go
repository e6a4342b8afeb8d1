package render

import (
	"image"
	"sync"

	"football-scoreboard/internal/domain"
)

// FrameSink renders frames into an in-memory buffer holding the most
// recent bitmap. It stands in for matrix hardware: the display loop
// pushes frames, and whatever drives the panel pulls the latest one.
type FrameSink struct {
	mu       sync.Mutex
	renderer *BitmapRenderer
	frame    *image.RGBA
	frames   int
}

// NewFrameSink constructs a FrameSink with its own renderer.
func NewFrameSink(opts Options) *FrameSink {
	return &FrameSink{renderer: NewBitmapRenderer(opts)}
}

func (s *FrameSink) RenderGame(g domain.Game, mode domain.ModeType) error {
	img := s.renderer.RenderGame(g, mode)
	s.mu.Lock()
	s.frame = img
	s.frames++
	s.mu.Unlock()
	return nil
}

func (s *FrameSink) RenderSeparator(league domain.League) error {
	img := s.renderer.RenderSeparator(league)
	s.mu.Lock()
	s.frame = img
	s.frames++
	s.mu.Unlock()
	return nil
}

func (s *FrameSink) Clear() error {
	s.mu.Lock()
	s.frame = nil
	s.mu.Unlock()
	return nil
}

// Frame returns the most recently rendered bitmap, or nil after Clear.
func (s *FrameSink) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Frames returns how many frames have been rendered.
func (s *FrameSink) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
