// Package core contains the fundamental types used throughout crowdpath.
package core

import "fmt"

// Point represents a cell coordinate on the grid.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the orthogonal neighbour of p in direction d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// String returns the point formatted as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Direction represents a cardinal direction.
type Direction int

const (
	West Direction = iota
	East
	North
	South
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case West:
		return "West"
	case East:
		return "East"
	case North:
		return "North"
	case South:
		return "South"
	default:
		return "Unknown"
	}
}

// Delta returns the coordinate offset of one step in direction d.
// Y grows downward, so North is y-1.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case West:
		return -1, 0
	case East:
		return 1, 0
	case North:
		return 0, -1
	case South:
		return 0, 1
	default:
		return 0, 0
	}
}

// Path represents a route through the grid, start to goal inclusive.
type Path struct {
	Points []Point
	Cost   int // Accumulated cost of the final point
}

// Length returns the number of points in the path.
func (p Path) Length() int {
	return len(p.Points)
}

// Steps returns the number of moves in the path.
func (p Path) Steps() int {
	if len(p.Points) == 0 {
		return 0
	}
	return len(p.Points) - 1
}

// IsEmpty returns true if the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// Contains reports whether pt is part of the path.
func (p Path) Contains(pt Point) bool {
	for _, q := range p.Points {
		if q == pt {
			return true
		}
	}
	return false
}

// Bounds represents a rectangular area. Max is exclusive.
type Bounds struct {
	Min, Max Point
}

// Width returns the width of the bounds.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y
}
