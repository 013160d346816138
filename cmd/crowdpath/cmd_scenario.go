package main

import (
	"crowdpath/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Print the built-in scenario as YAML, as a starting point for new boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(config.DefaultScenario()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
