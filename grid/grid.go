// Package grid provides the fixed-size passability map searched by the
// pathfinding package.
//
// A Grid is mutable while obstacles are being placed and must be treated as
// read-only while a search over it is in progress.
package grid

import (
	"crowdpath/core"
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid grid size")
	ErrInvalidMap  = errors.New("invalid grid map")
)

// Grid is a width x height board of cells, each either passable or blocked.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
type Grid struct {
	width   int
	height  int
	blocked []bool // row-major, index y*width+x
}

// New creates a grid with every cell passable.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Grid{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Bounds returns the half-open rectangle [0,W) x [0,H).
func (g *Grid) Bounds() core.Bounds {
	return core.Bounds{Max: core.Point{X: g.width, Y: g.height}}
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsPassable reports whether p can be entered. Out-of-bounds points are
// never passable.
func (g *Grid) IsPassable(p core.Point) bool {
	if !g.InBounds(p) {
		return false
	}
	return !g.blocked[g.index(p)]
}

// Block marks every given point as impassable. No cell is modified if any
// point is out of bounds.
func (g *Grid) Block(points ...core.Point) error {
	return g.setBlocked(true, points)
}

// Unblock marks every given point as passable.
func (g *Grid) Unblock(points ...core.Point) error {
	return g.setBlocked(false, points)
}

func (g *Grid) setBlocked(blocked bool, points []core.Point) error {
	for _, p := range points {
		if !g.InBounds(p) {
			return fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfBounds, p, g.width, g.height)
		}
	}
	for _, p := range points {
		g.blocked[g.index(p)] = blocked
	}
	return nil
}

// Blocked returns the impassable cells in row-major order.
func (g *Grid) Blocked() []core.Point {
	var points []core.Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.blocked[y*g.width+x] {
				points = append(points, core.Point{X: x, Y: y})
			}
		}
	}
	return points
}

// String renders the grid as rows of "P" (passable) and "X" (blocked)
// separated by spaces.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if g.blocked[y*g.width+x] {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('P')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) index(p core.Point) int {
	return p.Y*g.width + p.X
}

// Parse builds a grid from an ASCII map, one row per line.
// '.', 'P' or ' ' = passable, 'X' or '#' = blocked.
// Leading and trailing blank lines are ignored; every row must have the
// same width.
func Parse(mapStr string) (*Grid, error) {
	lines := strings.Split(strings.Trim(mapStr, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidMap)
	}

	width := len([]rune(lines[0]))
	g, err := New(width, len(lines))
	if err != nil {
		return nil, err
	}

	for y, line := range lines {
		row := []rune(line)
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidMap, y, len(row), width)
		}
		for x, char := range row {
			switch char {
			case '.', 'P', ' ':
			case 'X', '#':
				g.blocked[y*width+x] = true
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d, %d)", ErrInvalidMap, char, x, y)
			}
		}
	}
	return g, nil
}
