package main

import (
	"encoding/json"
	"fmt"
	"io"

	"crowdpath/config"
	"crowdpath/core"
	"crowdpath/grid"
	"crowdpath/pathfinding"
	"crowdpath/render"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type runOptions struct {
	endpoints   endpointFlags
	runs        int
	sharedUsage bool
	format      string
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Run searches over a scenario and print the paths",
		Long: `Load a scenario (the built-in 10x10 board when omitted), print the
board, then run the configured number of searches from start to goal.

With --shared-usage every run records usage into the same counter, so later
runs avoid cells that earlier runs congested. Without it each run starts from
a clean counter and all runs find the same path.

Examples:
  crowdpath run
  crowdpath run board.yaml --runs 3 --shared-usage
  crowdpath run --goal 5,5 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(args)
			if err != nil {
				return err
			}
			if err := opts.endpoints.apply(&sc); err != nil {
				return err
			}
			if cmd.Flags().Changed("runs") {
				sc.Runs = opts.runs
			}
			if opts.sharedUsage {
				sc.SharedUsage = true
			}
			if err := sc.Validate(); err != nil {
				return err
			}
			return a.run(cmd, sc, opts.format)
		},
	}

	opts.endpoints.register(cmd)
	cmd.Flags().IntVar(&opts.runs, "runs", 1, "Number of searches to run (overrides the scenario)")
	cmd.Flags().BoolVar(&opts.sharedUsage, "shared-usage", false, "Share the usage counter across runs")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	return cmd
}

// runReport is one search in the JSON output.
type runReport struct {
	Run        int          `json:"run"`
	ID         string       `json:"id"`
	State      string       `json:"state"`
	Found      bool         `json:"found"`
	Cost       int          `json:"cost"`
	Length     int          `json:"length"`
	Expansions int          `json:"expansions"`
	Discovered int          `json:"discovered"`
	Path       []core.Point `json:"path"`
}

// scenarioReport is the JSON output of the run command.
type scenarioReport struct {
	Scenario    string               `json:"scenario,omitempty"`
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	Start       core.Point           `json:"start"`
	Goal        core.Point           `json:"goal"`
	Cost        pathfinding.PathCost `json:"cost"`
	SharedUsage bool                 `json:"shared_usage"`
	Runs        []runReport          `json:"runs"`
}

func (a *app) run(cmd *cobra.Command, sc config.Scenario, format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	g, err := sc.Grid()
	if err != nil {
		return err
	}
	costs := sc.PathCost(a.cfg.Search)
	start, goal := sc.Start.Point(), sc.Goal.Point()

	var usage *pathfinding.UsageCounter
	if sc.SharedUsage {
		usage = pathfinding.NewUsageCounter()
	}

	report := scenarioReport{
		Scenario:    sc.Name,
		Width:       g.Width(),
		Height:      g.Height(),
		Start:       start,
		Goal:        goal,
		Cost:        costs,
		SharedUsage: sc.SharedUsage,
	}

	for i := 0; i < sc.Runs; i++ {
		id := uuid.NewString()
		finder := pathfinding.NewAStarPathFinder(
			pathfinding.WithPathCost(costs),
			pathfinding.WithUsageCounter(usage),
			pathfinding.WithLogger(a.logger.With("run_id", id)),
		)

		result, err := finder.FindPath(cmd.Context(), g, start, goal)
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}

		report.Runs = append(report.Runs, runReport{
			Run:        i + 1,
			ID:         id,
			State:      result.State.String(),
			Found:      result.Found(),
			Cost:       result.Path.Cost,
			Length:     result.Path.Length(),
			Expansions: result.Expansions,
			Discovered: result.Discovered,
			Path:       result.Path.Points,
		})
	}

	a.logger.Info("scenario finished", "scenario", sc.Name, "runs", len(report.Runs), "shared_usage", sc.SharedUsage)

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	writeTextReport(cmd.OutOrStdout(), g, report)
	return nil
}

func writeTextReport(w io.Writer, g *grid.Grid, report scenarioReport) {
	fmt.Fprintf(w, "Board %dx%d, start %v, goal %v\n", report.Width, report.Height, report.Start, report.Goal)
	fmt.Fprint(w, render.RenderGrid(g, core.Path{}, render.DefaultStyle))

	for _, r := range report.Runs {
		path := core.Path{Points: r.Path, Cost: r.Cost}
		fmt.Fprintf(w, "\nRun %d: %s, cost=%d, length=%d, expansions=%d\n",
			r.Run, r.State, r.Cost, r.Length, r.Expansions)
		fmt.Fprintln(w, render.FormatPath(path))
		if r.Found {
			fmt.Fprint(w, render.RenderGrid(g, path, render.DefaultStyle))
		}
	}
}
