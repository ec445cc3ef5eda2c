package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	pagingRefs   string // Page reference string
	pagingFrames int    // Number of physical frames
	pagingPolicy string // FIFO, LRU, OPT or SC
)

var pagingCmd = &cobra.Command{
	Use:   "paging",
	Short: "Simulate a page replacement policy over a reference string",
	Example: `  memsim paging --refs "7 0 1 2 0 3 0 4" --frames 3 --policy LRU
  memsim paging --refs 1,2,3,1,4 --frames 3 --policy SC --delay 500ms`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPaging(cmd.Context(), cmd.OutOrStdout(), pagingRefs, pagingFrames, pagingPolicy, currentOutputOptions()); err != nil {
			logrus.Fatalf("Paging simulation failed: %v", err)
		}
	},
}

func init() {
	pagingCmd.Flags().StringVar(&pagingRefs, "refs", "", "Page references separated by spaces or commas")
	pagingCmd.Flags().IntVar(&pagingFrames, "frames", 3, "Number of physical frames")
	pagingCmd.Flags().StringVar(&pagingPolicy, "policy", "FIFO", "Replacement policy (FIFO, LRU, OPT, SC)")
}
