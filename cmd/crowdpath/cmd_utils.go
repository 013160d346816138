package main

import (
	"fmt"
	"strconv"
	"strings"

	"crowdpath/config"

	"github.com/spf13/cobra"
)

// endpointFlags are the --start/--goal overrides shared by run and watch.
type endpointFlags struct {
	start string
	goal  string
}

func (f *endpointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "Override the start cell (x,y)")
	cmd.Flags().StringVar(&f.goal, "goal", "", "Override the goal cell (x,y)")
}

// apply copies any overrides into sc.
func (f *endpointFlags) apply(sc *config.Scenario) error {
	if f.start != "" {
		c, err := parseCoordinate(f.start)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		sc.Start = c
	}
	if f.goal != "" {
		c, err := parseCoordinate(f.goal)
		if err != nil {
			return fmt.Errorf("--goal: %w", err)
		}
		sc.Goal = c
	}
	return nil
}

// parseCoordinate parses "x,y".
func parseCoordinate(s string) (config.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return config.Coordinate{}, fmt.Errorf("expected x,y but got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return config.Coordinate{}, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return config.Coordinate{}, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return config.Coordinate{X: x, Y: y}, nil
}

// loadScenario reads the scenario named by args, or the default board.
func loadScenario(args []string) (config.Scenario, error) {
	if len(args) == 0 {
		return config.DefaultScenario(), nil
	}
	return config.LoadScenario(args[0])
}
