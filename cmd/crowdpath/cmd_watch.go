package main

import (
	"fmt"

	"crowdpath/config"
	"crowdpath/core"
	"crowdpath/pathfinding"
	"crowdpath/render"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		endpoints endpointFlags
		mono      bool
	)

	cmd := &cobra.Command{
		Use:   "watch [scenario.yaml]",
		Short: "Step through a search interactively",
		Long: `Open a terminal view of the scenario and advance the search one
iteration at a time.

Keys:
  space, enter  advance one step
  r             run to completion
  q, esc        quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(args)
			if err != nil {
				return err
			}
			if err := endpoints.apply(&sc); err != nil {
				return err
			}
			if err := sc.Validate(); err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialise terminal: %w", err)
			}
			defer screen.Fini()

			theme := render.DefaultTheme
			if mono {
				theme = render.MonochromeTheme
			}
			return a.watch(screen, sc, theme)
		},
	}

	endpoints.register(cmd)
	cmd.Flags().BoolVar(&mono, "mono", false, "Draw without colour")
	return cmd
}

// watch drives a Stepper from keyboard events on screen until the user quits.
func (a *app) watch(screen tcell.Screen, sc config.Scenario, theme render.Theme) error {
	g, err := sc.Grid()
	if err != nil {
		return err
	}
	start, goal := sc.Start.Point(), sc.Goal.Point()

	logger := a.logger.With("run_id", uuid.NewString())
	finder := pathfinding.NewAStarPathFinder(
		pathfinding.WithPathCost(sc.PathCost(a.cfg.Search)),
		pathfinding.WithLogger(logger),
	)
	stepper, err := finder.NewStepper(g, start, goal)
	if err != nil {
		return err
	}

	renderer := render.NewScreenRenderer(screen)
	renderer.SetTheme(theme)
	snap := watchLoop(screen, renderer, stepper, g, start, goal)

	result := stepper.Result()
	logger.Debug("watch finished",
		"steps", snap.StepIndex,
		"state", result.State.String(),
		"expansions", result.Expansions,
		"cost", result.Path.Cost,
	)
	return nil
}

// watchLoop redraws after every event and returns the last snapshot shown.
func watchLoop(screen tcell.Screen, renderer *render.ScreenRenderer, stepper *pathfinding.Stepper, g pathfinding.GridMap, start, goal core.Point) pathfinding.Snapshot {
	snap := stepper.Snapshot()
	for {
		renderer.Draw(render.Frame{
			Grid:     g,
			Start:    start,
			Goal:     goal,
			Snapshot: snap,
			Status:   statusLines(snap),
		})

		switch ev := screen.PollEvent().(type) {
		case nil:
			return snap
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return snap
			case ev.Key() == tcell.KeyEnter:
				snap = stepper.Step()
			case ev.Key() == tcell.KeyRune:
				switch ev.Rune() {
				case ' ':
					snap = stepper.Step()
				case 'r':
					snap = stepper.Run()
				case 'q':
					return snap
				}
			}
		}
	}
}

func statusLines(snap pathfinding.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("step %d  %s  open=%d closed=%d expansions=%d",
			snap.StepIndex, snap.State, len(snap.Open), len(snap.Closed), snap.Expansions),
	}
	switch snap.State {
	case pathfinding.Succeeded:
		lines = append(lines, fmt.Sprintf("path cost=%d length=%d", snap.Path.Cost, snap.Path.Length()))
	case pathfinding.Exhausted:
		lines = append(lines, "no path found")
	}
	return append(lines, "space/enter: step  r: run  q: quit")
}
