package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	allocBlocks    string // Block sizes
	allocProcesses string // Process sizes
	allocPolicy    string // FF, NF, BF or WF
)

var allocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Simulate a fixed-partition placement policy",
	Example: `  memsim alloc --blocks "100 500 200 300 600" --processes "212 417 112 426" --policy BF`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAllocation(cmd.Context(), cmd.OutOrStdout(), allocBlocks, allocProcesses, allocPolicy, currentOutputOptions()); err != nil {
			logrus.Fatalf("Allocation simulation failed: %v", err)
		}
	},
}

func init() {
	allocCmd.Flags().StringVar(&allocBlocks, "blocks", "", "Block sizes separated by spaces or commas")
	allocCmd.Flags().StringVar(&allocProcesses, "processes", "", "Process sizes separated by spaces or commas")
	allocCmd.Flags().StringVar(&allocPolicy, "policy", "FF", "Placement policy (FF, NF, BF, WF)")
}
