package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var scenarioPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulations described in a YAML scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		if scenarioPath == "" {
			logrus.Fatalf("Scenario file not provided. Use --config <path>.")
		}
		if err := runScenario(cmd.Context(), cmd.OutOrStdout(), scenarioPath, currentOutputOptions()); err != nil {
			logrus.Fatalf("Scenario failed: %v", err)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "config", "", "Path to a YAML scenario file")
}
