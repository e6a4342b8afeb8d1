package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"football-scoreboard/internal/domain"
)

// TextSink writes one line per frame to an io.Writer. It is the
// emulator output used when no display hardware is attached, and the
// format is meant for humans tailing the process.
type TextSink struct {
	mu   sync.Mutex
	w    io.Writer
	opts Options
}

// NewTextSink constructs a TextSink writing to w.
func NewTextSink(w io.Writer, opts Options) *TextSink {
	return &TextSink{w: w, opts: opts}
}

func (s *TextSink) RenderGame(g domain.Game, mode domain.ModeType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "[%s/%s] %s\n", g.League, mode, FormatGameLine(g, s.opts))
	return err
}

func (s *TextSink) RenderSeparator(league domain.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "---- %s ----\n", strings.ToUpper(string(league)))
	return err
}

func (s *TextSink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w)
	return err
}

// FormatGameLine renders a game as a single status line, shared by the
// text sink and the info endpoint.
func FormatGameLine(g domain.Game, opts Options) string {
	var b strings.Builder

	writeTeam := func(t domain.Team) {
		if opts.ShowRanking && t.Rank > 0 {
			fmt.Fprintf(&b, "#%d ", t.Rank)
		}
		b.WriteString(t.Abbr)
		if opts.ShowRecords && t.Record != "" {
			fmt.Fprintf(&b, " (%s)", t.Record)
		}
	}

	writeTeam(g.Away)
	if g.State == domain.StateScheduled {
		b.WriteString(" @ ")
		writeTeam(g.Home)
		if g.DateText != "" {
			fmt.Fprintf(&b, " %s %s", g.DateText, g.TimeText)
		}
		if opts.ShowOdds && g.Odds != nil && g.Odds.Details != "" {
			fmt.Fprintf(&b, " [%s]", g.Odds.Details)
		}
		return b.String()
	}

	fmt.Fprintf(&b, " %d - %d ", g.Away.Score, g.Home.Score)
	writeTeam(g.Home)

	switch {
	case g.State == domain.StateFinal:
		b.WriteString(" FINAL")
	case g.State == domain.StateHalftime:
		b.WriteString(" HALF")
	case g.Situation != nil:
		fmt.Fprintf(&b, " Q%d %s", g.Situation.Period, g.Situation.Clock)
		if g.Situation.DownDistance != "" {
			fmt.Fprintf(&b, " %s", g.Situation.DownDistance)
		}
		if g.Situation.RedZone {
			b.WriteString(" RZ")
		}
	}
	return b.String()
}
