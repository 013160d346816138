// Command crowdpath runs congestion-aware A* searches over grid scenarios.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"crowdpath/config"
	"crowdpath/logging"

	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand once the root command has
// loaded the environment.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "crowdpath",
		Short: "Congestion-aware A* path finding on a 2D grid",
		Long: `crowdpath finds the cheapest route between two cells of a grid.

Every time a search discovers a cell, that cell becomes more expensive to
enter. Running several searches with a shared usage counter spreads routes
away from congested cells.

Environment:
  CROWDPATH_LOG_LEVEL           debug|info|warn|error (default info)
  CROWDPATH_LOG_FORMAT          text|json (default text)
  CROWDPATH_LOG_INCLUDE_CALLER  add source locations to log records
  CROWDPATH_STEP_COST           base cost of one move (default 1)
  CROWDPATH_USAGE_WEIGHT        cost added per recorded use (default 1)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.Logging, cmd.ErrOrStderr())
			return nil
		},
	}

	root.AddCommand(newRunCmd(a), newWatchCmd(a), newScenarioCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
