package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"football-scoreboard/internal/domain"
)

func liveGame() domain.Game {
	start := time.Date(2025, 10, 5, 17, 0, 0, 0, time.UTC)
	return domain.Game{
		ID:        "401monday",
		League:    domain.LeagueNFL,
		Home:      domain.Team{Abbr: "KC", Score: 21, Record: "4-1"},
		Away:      domain.Team{Abbr: "TB", Score: 17, Record: "3-2"},
		StartTime: &start,
		State:     domain.StateLive,
		Situation: &domain.Situation{
			Period:       3,
			Clock:        "8:42",
			Possession:   domain.PossessionHome,
			DownDistance: "3rd & 4",
		},
	}
}

func scheduledGame() domain.Game {
	start := time.Date(2025, 10, 12, 17, 0, 0, 0, time.UTC)
	return domain.Game{
		ID:        "401sunday",
		League:    domain.LeagueNCAAFB,
		Home:      domain.Team{Abbr: "UGA", Rank: 1},
		Away:      domain.Team{Abbr: "ALA", Rank: 5},
		State:     domain.StateScheduled,
		StartTime: &start,
		DateText:  "Oct 12",
		TimeText:  "1:00 PM",
		Odds:      &domain.OddsSnapshot{Details: "UGA -3.5", OverUnder: 52.5},
	}
}

func TestFormatGameLineLive(t *testing.T) {
	line := FormatGameLine(liveGame(), Options{ShowRecords: true})

	for _, want := range []string{"TB (3-2)", "17 - 21", "KC (4-1)", "Q3 8:42", "3rd & 4"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestFormatGameLineScheduledWithRanksAndOdds(t *testing.T) {
	line := FormatGameLine(scheduledGame(), Options{ShowRanking: true, ShowOdds: true})

	for _, want := range []string{"#5 ALA", "@", "#1 UGA", "Oct 12 1:00 PM", "[UGA -3.5]"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestFormatGameLineFinal(t *testing.T) {
	g := liveGame()
	g.State = domain.StateFinal
	g.Situation = nil

	if line := FormatGameLine(g, Options{}); !strings.HasSuffix(line, "FINAL") {
		t.Fatalf("line %q should end with FINAL", line)
	}
}

func TestTextSinkWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf, Options{})

	if err := sink.RenderSeparator(domain.LeagueNFL); err != nil {
		t.Fatal(err)
	}
	if err := sink.RenderGame(liveGame(), domain.ModeLive); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "---- NFL ----") {
		t.Errorf("output missing separator: %q", out)
	}
	if !strings.Contains(out, "[nfl/live]") {
		t.Errorf("output missing frame header: %q", out)
	}
}

func TestBitmapRendererProducesPanelSizedFrame(t *testing.T) {
	r := NewBitmapRenderer(Options{})

	img := r.RenderGame(liveGame(), domain.ModeLive)
	bounds := img.Bounds()
	if bounds.Dx() != DefaultWidth || bounds.Dy() != DefaultHeight {
		t.Fatalf("frame is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), DefaultWidth, DefaultHeight)
	}

	lit := 0
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr|cg|cb != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("rendered frame is entirely black")
	}
}

func TestBitmapSeparatorCentersLeagueName(t *testing.T) {
	r := NewBitmapRenderer(Options{})

	img := r.RenderSeparator(domain.LeagueNCAAFB)
	if img.Bounds().Dx() != DefaultWidth {
		t.Fatalf("unexpected separator width %d", img.Bounds().Dx())
	}
}

func TestFrameSinkKeepsLatestFrame(t *testing.T) {
	sink := NewFrameSink(Options{})

	if err := sink.RenderGame(liveGame(), domain.ModeLive); err != nil {
		t.Fatal(err)
	}
	if sink.Frame() == nil {
		t.Fatal("expected a buffered frame")
	}
	if sink.Frames() != 1 {
		t.Fatalf("Frames = %d, want 1", sink.Frames())
	}

	if err := sink.Clear(); err != nil {
		t.Fatal(err)
	}
	if sink.Frame() != nil {
		t.Fatal("Clear should drop the buffered frame")
	}
}
