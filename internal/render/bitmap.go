package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"football-scoreboard/internal/domain"
)

// Options controls which optional elements frames include.
type Options struct {
	Width       int
	Height      int
	ShowRecords bool
	ShowRanking bool
	ShowOdds    bool
}

// Default panel geometry, two chained 64x32 matrices.
const (
	DefaultWidth  = 128
	DefaultHeight = 32
)

var (
	colorBackground = color.RGBA{A: 255}
	colorText       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorAccent     = color.RGBA{R: 255, G: 200, A: 255}
	colorLive       = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	colorSeparator  = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// BitmapRenderer draws scorebug frames into RGBA images sized for an
// LED matrix. The board does not interpret the pixels; a hardware sink
// pushes them to the panel and tests assert on drawn regions.
type BitmapRenderer struct {
	opts Options
	face font.Face
}

// NewBitmapRenderer constructs a renderer. Zero width/height fall back
// to the default panel geometry.
func NewBitmapRenderer(opts Options) *BitmapRenderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &BitmapRenderer{opts: opts, face: basicfont.Face7x13}
}

// RenderGame draws one game's scorebug.
func (r *BitmapRenderer) RenderGame(g domain.Game, mode domain.ModeType) *image.RGBA {
	img := r.blank()

	top := r.teamLabel(g.Away)
	bottom := r.teamLabel(g.Home)
	if g.State != domain.StateScheduled {
		top = fmt.Sprintf("%s %d", top, g.Away.Score)
		bottom = fmt.Sprintf("%s %d", bottom, g.Home.Score)
	}
	r.drawText(img, 2, 12, top, colorText)
	r.drawText(img, 2, 26, bottom, colorText)

	status, accent := r.statusLine(g)
	x := r.opts.Width - r.textWidth(status) - 2
	if x < 2 {
		x = 2
	}
	r.drawText(img, x, 19, status, accent)

	if g.State.InPlay() {
		r.drawPossession(img, g)
	}
	return img
}

// RenderSeparator draws the league divider used between frames in
// scrolling layouts.
func (r *BitmapRenderer) RenderSeparator(league domain.League) *image.RGBA {
	img := r.blank()
	label := strings.ToUpper(string(league))
	x := (r.opts.Width - r.textWidth(label)) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(img, x, r.opts.Height/2+4, label, colorAccent)
	for px := 0; px < r.opts.Width; px += 2 {
		img.Set(px, 0, colorSeparator)
		img.Set(px, r.opts.Height-1, colorSeparator)
	}
	return img
}

func (r *BitmapRenderer) teamLabel(t domain.Team) string {
	label := t.Abbr
	if r.opts.ShowRanking && t.Rank > 0 {
		label = fmt.Sprintf("%d %s", t.Rank, label)
	}
	if r.opts.ShowRecords && t.Record != "" {
		label = fmt.Sprintf("%s %s", label, t.Record)
	}
	return label
}

func (r *BitmapRenderer) statusLine(g domain.Game) (string, color.RGBA) {
	switch g.State {
	case domain.StateFinal:
		return "FINAL", colorAccent
	case domain.StateHalftime:
		return "HALF", colorLive
	case domain.StateScheduled:
		if r.opts.ShowOdds && g.Odds != nil && g.Odds.Details != "" {
			return g.Odds.Details, colorAccent
		}
		return strings.TrimSpace(g.DateText + " " + g.TimeText), colorText
	default:
		if g.Situation != nil {
			return fmt.Sprintf("Q%d %s", g.Situation.Period, g.Situation.Clock), colorLive
		}
		return "LIVE", colorLive
	}
}

// drawPossession marks the side with the ball with a small block next
// to its row.
func (r *BitmapRenderer) drawPossession(img *image.RGBA, g domain.Game) {
	if g.Situation == nil {
		return
	}
	var y int
	switch g.Situation.Possession {
	case domain.PossessionAway:
		y = 8
	case domain.PossessionHome:
		y = 22
	default:
		return
	}
	c := colorAccent
	if g.Situation.RedZone {
		c = colorLive
	}
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			img.Set(r.opts.Width-4+dx, y+dy, c)
		}
	}
}

func (r *BitmapRenderer) blank() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	return img
}

func (r *BitmapRenderer) drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func (r *BitmapRenderer) textWidth(text string) int {
	return font.MeasureString(r.face, text).Ceil()
}
