// Package render draws grids, search state and paths for the console.
package render

import (
	"crowdpath/canvas"
	"crowdpath/core"
	"crowdpath/pathfinding"
	"strings"
)

// Style selects the characters used for each kind of cell.
type Style struct {
	Passable rune
	Blocked  rune
	Path     rune
	Start    rune
	Goal     rune
}

// DefaultStyle matches the classic board printout: P for passable, X for
// blocked, with the route marked by '*'.
var DefaultStyle = Style{
	Passable: 'P',
	Blocked:  'X',
	Path:     '*',
	Start:    'S',
	Goal:     'G',
}

// RenderGrid draws the board one row per line, cells separated by a space,
// with the path overlaid. An empty path draws the bare board.
func RenderGrid(g pathfinding.GridMap, path core.Path, style Style) string {
	bounds := g.Bounds()
	c, err := canvas.NewMatrixCanvas(bounds.Width()*2-1, bounds.Height())
	if err != nil {
		return ""
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			char := style.Passable
			if !g.IsPassable(core.Point{X: x, Y: y}) {
				char = style.Blocked
			}
			_ = c.Set(cellPosition(bounds, core.Point{X: x, Y: y}), char)
		}
	}

	for i, p := range path.Points {
		char := style.Path
		switch i {
		case 0:
			char = style.Start
		case len(path.Points) - 1:
			char = style.Goal
		}
		_ = c.Set(cellPosition(bounds, p), char)
	}

	return c.String() + "\n"
}

// cellPosition maps a grid cell to its canvas column, leaving a space
// between neighbouring cells.
func cellPosition(bounds core.Bounds, p core.Point) core.Point {
	return core.Point{X: (p.X - bounds.Min.X) * 2, Y: p.Y - bounds.Min.Y}
}

// FormatPath lists the path's points as "(x, y) (x, y) ...".
func FormatPath(path core.Path) string {
	if path.IsEmpty() {
		return "no path found"
	}
	parts := make([]string, len(path.Points))
	for i, p := range path.Points {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
