// Package canvas provides a 2D character grid used to compose console output.
package canvas

import "crowdpath/core"

// Canvas represents a 2D grid for drawing.
type Canvas interface {
	Size() (width, height int)
	Get(p core.Point) rune
	Set(p core.Point, char rune) error
	String() string
}
