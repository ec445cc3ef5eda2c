package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/trace"
)

var (
	logLevel     string        // Log verbosity level
	outputFormat string        // table, json or yaml
	revealDelay  time.Duration // Pause before each table row
	verifyTrace  bool          // Re-check every trace before printing it

	// runLog carries the per-invocation run id on every log entry.
	runLog = logrus.NewEntry(logrus.StandardLogger())
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Step-by-step simulator for page replacement and memory allocation policies",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)
		if !validOutputFormats[outputFormat] {
			return fmt.Errorf("unknown output format %q; valid: table, json, yaml", outputFormat)
		}
		if revealDelay < 0 {
			return fmt.Errorf("--delay must be non-negative, got %s", revealDelay)
		}
		runLog = logrus.WithField("run", xid.New().String())
		return nil
	},
	SilenceUsage: true,
}

func currentOutputOptions() outputOptions {
	return outputOptions{format: outputFormat, delay: revealDelay}
}

// checkTraces runs the trace consistency checks when --verify is set.
func checkTraces(pt *trace.PagingTrace, at *trace.AllocationTrace) error {
	if !verifyTrace {
		return nil
	}
	if pt != nil {
		if err := pt.Verify(); err != nil {
			return fmt.Errorf("paging trace failed verification: %w", err)
		}
	}
	if at != nil {
		if err := at.Verify(); err != nil {
			return fmt.Errorf("allocation trace failed verification: %w", err)
		}
	}
	runLog.Debug("trace verification passed")
	return nil
}

// runPaging parses the raw reference string, simulates and renders it.
func runPaging(ctx context.Context, w io.Writer, rawRefs string, frames int, policy string, opts outputOptions) error {
	refs, err := parseWorkload("a reference string", rawRefs)
	if err != nil {
		return err
	}
	pt, err := sim.SimulatePaging(refs, frames, normalizePolicy(policy))
	if err != nil {
		return err
	}
	if err := checkTraces(pt, nil); err != nil {
		return err
	}
	runLog.Infof("paging: %d references, %d frames, policy %s", len(refs), frames, pt.Policy)
	return render(ctx, w, pt, nil, opts)
}

// runAllocation parses the raw block and process sizes, simulates and renders them.
func runAllocation(ctx context.Context, w io.Writer, rawBlocks, rawProcesses, policy string, opts outputOptions) error {
	blocks, err := parseWorkload("block sizes", rawBlocks)
	if err != nil {
		return err
	}
	procs, err := parseWorkload("process sizes", rawProcesses)
	if err != nil {
		return err
	}
	at, err := sim.SimulateAllocation(blocks, procs, normalizePolicy(policy))
	if err != nil {
		return err
	}
	if err := checkTraces(nil, at); err != nil {
		return err
	}
	runLog.Infof("allocation: %d blocks, %d processes, policy %s", len(blocks), len(procs), at.Policy)
	return render(ctx, w, nil, at, opts)
}

// runScenario loads a YAML scenario and renders every section it contains.
func runScenario(ctx context.Context, w io.Writer, path string, opts outputOptions) error {
	scenario, err := sim.LoadScenario(path)
	if err != nil {
		return err
	}
	res, err := scenario.Run()
	if err != nil {
		return err
	}
	if err := checkTraces(res.Paging, res.Allocation); err != nil {
		return err
	}
	runLog.Infof("scenario %s complete", path)
	return render(ctx, w, res.Paging, res.Allocation, opts)
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().DurationVar(&revealDelay, "delay", 0, "Pause before each table row, e.g. 500ms")
	rootCmd.PersistentFlags().BoolVar(&verifyTrace, "verify", false, "Check trace consistency before printing")

	rootCmd.AddCommand(pagingCmd, allocCmd, runCmd, compareCmd)
}
