package pathfinding

import (
	"crowdpath/core"
	"testing"
)

func TestRectangleObstacle_Points(t *testing.T) {
	bounds := core.Bounds{Max: core.Point{X: 10, Y: 10}}

	tests := []struct {
		name  string
		rect  RectangleObstacle
		first core.Point
		last  core.Point
		count int
	}{
		{"inside", RectangleObstacle{X: 2, Y: 3, Width: 3, Height: 2}, core.Point{X: 2, Y: 3}, core.Point{X: 4, Y: 4}, 6},
		{"padding", RectangleObstacle{X: 2, Y: 2, Width: 1, Height: 1, Padding: 1}, core.Point{X: 1, Y: 1}, core.Point{X: 3, Y: 3}, 9},
		// Padding extends to -1 on both axes; only the 3x3 in-bounds part remains
		{"clipped at origin", RectangleObstacle{X: 0, Y: 0, Width: 2, Height: 2, Padding: 1}, core.Point{X: 0, Y: 0}, core.Point{X: 2, Y: 2}, 9},
		{"far larger than bounds", RectangleObstacle{X: 0, Y: 5, Width: 200000, Height: 200000}, core.Point{X: 0, Y: 5}, core.Point{X: 9, Y: 9}, 50},
		{"huge padding", RectangleObstacle{X: 4, Y: 4, Width: 1, Height: 1, Padding: 1 << 30}, core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := tt.rect.Points(bounds)
			if len(points) != tt.count {
				t.Fatalf("Points() returned %d cells, want %d", len(points), tt.count)
			}
			if points[0] != tt.first || points[len(points)-1] != tt.last {
				t.Errorf("Points() spans %v..%v, want %v..%v", points[0], points[len(points)-1], tt.first, tt.last)
			}
			for _, p := range points {
				if !bounds.Contains(p) {
					t.Errorf("point %v outside bounds", p)
				}
			}
		})
	}
}

func TestRectangleObstacle_PointsOutsideBounds(t *testing.T) {
	bounds := core.Bounds{Max: core.Point{X: 10, Y: 10}}

	for _, rect := range []RectangleObstacle{
		{X: 10, Y: 0, Width: 5, Height: 5},
		{X: -8, Y: 0, Width: 5, Height: 5},
		{X: 0, Y: 0, Width: 0, Height: 5},
	} {
		if points := rect.Points(bounds); len(points) != 0 {
			t.Errorf("%+v: Points() = %v, want none", rect, points)
		}
	}
}
