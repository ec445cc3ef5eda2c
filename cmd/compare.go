package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/trace"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every policy on the same workload and compare summaries",
}

// --- memsim compare paging ---

var (
	comparePagingRefs   string
	comparePagingFrames int
)

var comparePagingCmd = &cobra.Command{
	Use:   "paging",
	Short: "Compare FIFO, LRU, OPT and SC on one reference string",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runComparePaging(cmd.Context(), cmd.OutOrStdout(), comparePagingRefs, comparePagingFrames, outputFormat); err != nil {
			logrus.Fatalf("Paging comparison failed: %v", err)
		}
	},
}

// --- memsim compare alloc ---

var (
	compareAllocBlocks    string
	compareAllocProcesses string
)

var compareAllocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Compare FF, NF, BF and WF on one block table and process list",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCompareAllocation(cmd.Context(), cmd.OutOrStdout(), compareAllocBlocks, compareAllocProcesses, outputFormat); err != nil {
			logrus.Fatalf("Allocation comparison failed: %v", err)
		}
	},
}

// PagingComparison is one policy's result in a paging comparison.
type PagingComparison struct {
	Policy  string               `json:"policy" yaml:"policy"`
	Summary *trace.PagingSummary `json:"summary" yaml:"summary"`
}

// AllocationComparison is one policy's result in an allocation comparison.
type AllocationComparison struct {
	Policy  string                   `json:"policy" yaml:"policy"`
	Summary *trace.AllocationSummary `json:"summary" yaml:"summary"`
}

// comparePaging simulates refs under every replacement policy, in display order.
func comparePaging(refs []int, frames int) ([]PagingComparison, error) {
	out := make([]PagingComparison, 0, len(sim.ReplacementPolicyNames))
	for _, policy := range sim.ReplacementPolicyNames {
		pt, err := sim.SimulatePaging(refs, frames, policy)
		if err != nil {
			return nil, err
		}
		out = append(out, PagingComparison{Policy: policy, Summary: trace.SummarizePaging(pt)})
	}
	return out, nil
}

// compareAllocation simulates the workload under every placement policy.
func compareAllocation(blocks, procs []int) ([]AllocationComparison, error) {
	out := make([]AllocationComparison, 0, len(sim.PlacementPolicyNames))
	for _, policy := range sim.PlacementPolicyNames {
		at, err := sim.SimulateAllocation(blocks, procs, policy)
		if err != nil {
			return nil, err
		}
		out = append(out, AllocationComparison{Policy: policy, Summary: trace.SummarizeAllocation(at)})
	}
	return out, nil
}

func runComparePaging(ctx context.Context, w io.Writer, rawRefs string, frames int, format string) error {
	refs, err := parseWorkload("a reference string", rawRefs)
	if err != nil {
		return err
	}
	results, err := comparePaging(refs, frames)
	if err != nil {
		return err
	}
	runLog.Infof("compared %d replacement policies over %d references", len(results), len(refs))
	if format != "table" {
		return encode(w, format, results)
	}
	tb := newTable("Policy", "Hits", "Misses", "Hit Ratio", "Miss Ratio")
	for _, r := range results {
		tb.add(r.Policy, strconv.Itoa(r.Summary.Hits), strconv.Itoa(r.Summary.Misses),
			fmt.Sprintf("%.2f", r.Summary.HitRatio), fmt.Sprintf("%.2f", r.Summary.MissRatio))
	}
	return tb.write(ctx, w, 0)
}

func runCompareAllocation(ctx context.Context, w io.Writer, rawBlocks, rawProcesses, format string) error {
	blocks, err := parseWorkload("block sizes", rawBlocks)
	if err != nil {
		return err
	}
	procs, err := parseWorkload("process sizes", rawProcesses)
	if err != nil {
		return err
	}
	results, err := compareAllocation(blocks, procs)
	if err != nil {
		return err
	}
	runLog.Infof("compared %d placement policies over %d processes", len(results), len(procs))
	if format != "table" {
		return encode(w, format, results)
	}
	tb := newTable("Policy", "Allocated", "Not Allocated", "Fragmentation")
	for _, r := range results {
		tb.add(r.Policy, strconv.Itoa(r.Summary.Allocated), strconv.Itoa(r.Summary.NotAllocated),
			strconv.Itoa(r.Summary.Fragmentation))
	}
	return tb.write(ctx, w, 0)
}

func init() {
	comparePagingCmd.Flags().StringVar(&comparePagingRefs, "refs", "", "Page references separated by spaces or commas")
	comparePagingCmd.Flags().IntVar(&comparePagingFrames, "frames", 3, "Number of physical frames")

	compareAllocCmd.Flags().StringVar(&compareAllocBlocks, "blocks", "", "Block sizes separated by spaces or commas")
	compareAllocCmd.Flags().StringVar(&compareAllocProcesses, "processes", "", "Process sizes separated by spaces or commas")

	compareCmd.AddCommand(comparePagingCmd, compareAllocCmd)
}
