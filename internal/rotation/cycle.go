package rotation

import (
	"sync"

	"football-scoreboard/internal/domain"
)

// CycleTracker records which game positions have been displayed for
// each enabled mode, so the host can tell when one full pass over every
// mode's current game list has completed. When dynamic duration is off
// the tracker short-circuits to always-complete and fixed-duration
// rotation takes over.
type CycleTracker struct {
	mu      sync.Mutex
	modes   []domain.ModeDescriptor
	dynamic bool
	seen    map[string]map[int]struct{}
	sizes   map[string]int
	visited map[string]bool
}

// NewCycleTracker constructs a tracker over the enabled mode set.
func NewCycleTracker(modes []domain.ModeDescriptor, dynamic bool) *CycleTracker {
	t := &CycleTracker{modes: modes, dynamic: dynamic}
	t.reset()
	return t
}

// MarkShown records that position index of the mode's current list of
// size games was displayed. The list size is recomputed on every call;
// positions seen beyond a shrunken list are discarded rather than
// counted toward completion.
func (t *CycleTracker) MarkShown(mode domain.ModeDescriptor, index, size int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := mode.String()
	t.visited[key] = true
	t.sizes[key] = size

	if t.seen[key] == nil {
		t.seen[key] = make(map[int]struct{})
	}
	if index >= 0 && index < size {
		t.seen[key][index] = struct{}{}
	}
	for pos := range t.seen[key] {
		if pos >= size {
			delete(t.seen[key], pos)
		}
	}
}

// IsCycleComplete reports whether every enabled mode has been visited
// and had all of its current positions displayed. Safe to call
// repeatedly; it never mutates progress.
func (t *CycleTracker) IsCycleComplete() bool {
	if !t.dynamic {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, mode := range t.modes {
		key := mode.String()
		if !t.visited[key] {
			return false
		}
		size := t.sizes[key]
		if size <= 1 {
			continue
		}
		if len(t.seen[key]) < size {
			return false
		}
	}
	return true
}

// Reset clears all progress at the start of a new outer rotation.
func (t *CycleTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

func (t *CycleTracker) reset() {
	t.seen = make(map[string]map[int]struct{})
	t.sizes = make(map[string]int)
	t.visited = make(map[string]bool)
}
