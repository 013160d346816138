package render

import (
	"crowdpath/core"
	"crowdpath/pathfinding"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Theme holds the tcell styles used by ScreenRenderer.
type Theme struct {
	Free     tcell.Style
	Wall     tcell.Style
	Open     tcell.Style
	Closed   tcell.Style
	Current  tcell.Style
	Path     tcell.Style
	Endpoint tcell.Style
	Status   tcell.Style
}

// DefaultTheme colours the search state for dark terminals.
var DefaultTheme = Theme{
	Free:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	Wall:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	Open:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
	Closed:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
	Current:  tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
	Path:     tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	Endpoint: tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	Status:   tcell.StyleDefault,
}

// MonochromeTheme avoids colour for terminals without it, marking search
// state with attributes alone.
var MonochromeTheme = Theme{
	Free:     tcell.StyleDefault.Dim(true),
	Wall:     tcell.StyleDefault.Bold(true),
	Open:     tcell.StyleDefault,
	Closed:   tcell.StyleDefault.Dim(true),
	Current:  tcell.StyleDefault.Reverse(true),
	Path:     tcell.StyleDefault.Bold(true),
	Endpoint: tcell.StyleDefault.Reverse(true),
	Status:   tcell.StyleDefault,
}

// Cell glyphs drawn by ScreenRenderer.
const (
	GlyphFree    = '.'
	GlyphWall    = '#'
	GlyphOpen    = '+'
	GlyphClosed  = '-'
	GlyphCurrent = '@'
	GlyphPath    = '*'
	GlyphStart   = 'S'
	GlyphGoal    = 'G'
)

// Frame is everything ScreenRenderer needs to draw one step of a search.
type Frame struct {
	Grid     pathfinding.GridMap
	Start    core.Point
	Goal     core.Point
	Snapshot pathfinding.Snapshot
	Status   []string // Lines drawn below the board
}

// ScreenRenderer draws search frames onto a tcell screen.
type ScreenRenderer struct {
	screen tcell.Screen
	theme  Theme
}

// NewScreenRenderer creates a renderer for screen using DefaultTheme.
func NewScreenRenderer(screen tcell.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, theme: DefaultTheme}
}

// SetTheme replaces the renderer's styles.
func (r *ScreenRenderer) SetTheme(theme Theme) {
	r.theme = theme
}

// Draw clears the screen, draws the board and status lines, and shows the
// result.
func (r *ScreenRenderer) Draw(f Frame) {
	r.screen.Clear()

	bounds := f.Grid.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := core.Point{X: x, Y: y}
			glyph, style := GlyphFree, r.theme.Free
			if !f.Grid.IsPassable(p) {
				glyph, style = GlyphWall, r.theme.Wall
			}
			r.setCell(bounds, p, glyph, style)
		}
	}

	for _, p := range f.Snapshot.Closed {
		r.setCell(bounds, p, GlyphClosed, r.theme.Closed)
	}
	for _, p := range f.Snapshot.Open {
		r.setCell(bounds, p, GlyphOpen, r.theme.Open)
	}
	for _, p := range f.Snapshot.Path.Points {
		r.setCell(bounds, p, GlyphPath, r.theme.Path)
	}
	if f.Snapshot.HasCurrent && f.Snapshot.State == pathfinding.Running {
		r.setCell(bounds, f.Snapshot.Current, GlyphCurrent, r.theme.Current)
	}
	r.setCell(bounds, f.Start, GlyphStart, r.theme.Endpoint)
	r.setCell(bounds, f.Goal, GlyphGoal, r.theme.Endpoint)

	row := bounds.Height() + 1
	for _, line := range f.Status {
		r.drawText(0, row, line, r.theme.Status)
		row++
	}

	r.screen.Show()
}

func (r *ScreenRenderer) setCell(bounds core.Bounds, p core.Point, glyph rune, style tcell.Style) {
	pos := cellPosition(bounds, p)
	r.screen.SetContent(pos.X, pos.Y, glyph, nil, style)
}

// drawText writes text at (x, y), advancing by each rune's display width.
func (r *ScreenRenderer) drawText(x, y int, text string, style tcell.Style) {
	width, _ := r.screen.Size()
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += w
	}
}
