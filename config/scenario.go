package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"crowdpath/core"
	"crowdpath/grid"
	"crowdpath/pathfinding"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is returned for scenario files that fail to decode or
// validate.
var ErrInvalidScenario = errors.New("invalid scenario")

// Coordinate is a cell position in a scenario file, written either as a
// two-element list `[x, y]` or as a mapping `{x: 1, y: 2}`.
type Coordinate struct {
	X int `yaml:"x" validate:"gte=0"`
	Y int `yaml:"y" validate:"gte=0"`
}

// Point converts c to a core.Point.
func (c Coordinate) Point() core.Point {
	return core.Point{X: c.X, Y: c.Y}
}

// UnmarshalYAML accepts both the list and the mapping form.
func (c *Coordinate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var xy []int
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: coordinate needs 2 values, got %d", value.Line, len(xy))
		}
		c.X, c.Y = xy[0], xy[1]
		return nil
	}

	type plain Coordinate
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Coordinate(p)
	return nil
}

// MarshalYAML writes the list form.
func (c Coordinate) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{c.X, c.Y} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return node, nil
}

// Rect is a rectangular block of obstacles, optionally padded.
type Rect struct {
	X       int `yaml:"x"`
	Y       int `yaml:"y"`
	Width   int `yaml:"width" validate:"gte=1"`
	Height  int `yaml:"height" validate:"gte=1"`
	Padding int `yaml:"padding" validate:"gte=0"`
}

// Scenario describes one board and the searches to run on it.
//
// The board comes either from Width/Height plus obstacle lists, or from an
// ASCII Map (see grid.Parse). Obstacles and Rects are applied on top of the
// map when both are given, then Open cells are cleared last so doorways can
// be cut through walls.
type Scenario struct {
	Name        string        `yaml:"name,omitempty"`
	Width       int           `yaml:"width,omitempty" validate:"required_without=Map,gte=0,lte=4096"`
	Height      int           `yaml:"height,omitempty" validate:"required_without=Map,gte=0,lte=4096"`
	Map         string        `yaml:"map,omitempty"`
	Obstacles   []Coordinate  `yaml:"obstacles,omitempty" validate:"dive"`
	Rects       []Rect        `yaml:"rects,omitempty" validate:"dive"`
	Open        []Coordinate  `yaml:"open,omitempty" validate:"dive"`
	Start       Coordinate    `yaml:"start"`
	Goal        Coordinate    `yaml:"goal"`
	Runs        int           `yaml:"runs,omitempty" validate:"gte=1,lte=10000"`
	SharedUsage bool          `yaml:"shared_usage,omitempty"`
	Cost        *SearchConfig `yaml:"cost,omitempty"`
}

// DefaultScenario is the classic 10x10 board searched corner to corner.
func DefaultScenario() Scenario {
	return Scenario{
		Name:   "default",
		Width:  10,
		Height: 10,
		Obstacles: []Coordinate{
			{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1},
			{X: 3, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4},
		},
		Start: Coordinate{X: 0, Y: 0},
		Goal:  Coordinate{X: 9, Y: 9},
		Runs:  1,
	}
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates a YAML scenario. Unknown keys are
// rejected. Runs defaults to 1.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return Scenario{}, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if sc.Runs == 0 {
		sc.Runs = 1
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks the scenario's field constraints.
func (s Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return nil
}

// Grid builds the board described by the scenario.
func (s Scenario) Grid() (*grid.Grid, error) {
	var (
		g   *grid.Grid
		err error
	)
	if s.Map != "" {
		g, err = grid.Parse(s.Map)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		if (s.Width != 0 && s.Width != g.Width()) || (s.Height != 0 && s.Height != g.Height()) {
			return nil, fmt.Errorf("%w: map is %dx%d but width/height say %dx%d",
				ErrInvalidScenario, g.Width(), g.Height(), s.Width, s.Height)
		}
	} else {
		g, err = grid.New(s.Width, s.Height)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
	}

	points := make([]core.Point, 0, len(s.Obstacles))
	for _, c := range s.Obstacles {
		points = append(points, c.Point())
	}
	if err := g.Block(points...); err != nil {
		return nil, fmt.Errorf("%w: obstacle %w", ErrInvalidScenario, err)
	}

	for _, r := range s.Rects {
		rect := pathfinding.RectangleObstacle{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Padding: r.Padding}
		if err := g.Block(rect.Points(g.Bounds())...); err != nil {
			return nil, fmt.Errorf("%w: rect %w", ErrInvalidScenario, err)
		}
	}

	open := make([]core.Point, 0, len(s.Open))
	for _, c := range s.Open {
		open = append(open, c.Point())
	}
	if err := g.Unblock(open...); err != nil {
		return nil, fmt.Errorf("%w: open cell %w", ErrInvalidScenario, err)
	}
	return g, nil
}

// PathCost returns the scenario's cost override, or base when none is set.
func (s Scenario) PathCost(base SearchConfig) pathfinding.PathCost {
	if s.Cost != nil {
		return s.Cost.PathCost()
	}
	return base.PathCost()
}
