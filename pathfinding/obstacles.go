package pathfinding

import (
	"crowdpath/core"
)

// RectangleObstacle represents a rectangular blocked area.
type RectangleObstacle struct {
	X, Y          int
	Width, Height int
	Padding       int // Extra blocked cells around the rectangle
}

// Points returns every cell covered by the rectangle that lies inside bounds.
// Only the overlap with bounds is visited, so the rectangle may be far larger
// than the board.
func (r RectangleObstacle) Points(bounds core.Bounds) []core.Point {
	minX := max(r.X-r.Padding, bounds.Min.X)
	maxX := min(r.X+r.Width+r.Padding, bounds.Max.X)
	minY := max(r.Y-r.Padding, bounds.Min.Y)
	maxY := min(r.Y+r.Height+r.Padding, bounds.Max.Y)
	if minX >= maxX || minY >= maxY {
		return nil
	}

	points := make([]core.Point, 0, (maxX-minX)*(maxY-minY))
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			points = append(points, core.Point{X: x, Y: y})
		}
	}
	return points
}
