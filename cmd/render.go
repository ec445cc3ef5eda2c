package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/memsim/sim/trace"
)

// validOutputFormats is the set of recognized --output values.
var validOutputFormats = map[string]bool{"table": true, "json": true, "yaml": true}

// outputOptions controls how a finished trace is presented.
type outputOptions struct {
	format string
	delay  time.Duration // pause before each table row; 0 prints at once
}

// table is a fixed set of rows whose column widths are known up front, so
// rows can be revealed one at a time without realigning earlier output.
type table struct {
	headers []string
	rows    [][]string
	widths  []int
}

func newTable(headers ...string) *table {
	tb := &table{headers: headers, widths: make([]int, len(headers))}
	tb.fit(headers)
	return tb
}

func (tb *table) fit(cells []string) {
	for i, c := range cells {
		tb.widths[i] = max(tb.widths[i], len(c))
	}
}

func (tb *table) add(cells ...string) {
	tb.fit(cells)
	tb.rows = append(tb.rows, cells)
}

func (tb *table) line(w io.Writer, cells []string) error {
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(cells)-1 {
			sb.WriteString(c)
			continue
		}
		sb.WriteString(c)
		sb.WriteString(strings.Repeat(" ", tb.widths[i]-len(c)))
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// write prints the header, then each row after delay. It stops early
// if ctx is cancelled while waiting.
func (tb *table) write(ctx context.Context, w io.Writer, delay time.Duration) error {
	if err := tb.line(w, tb.headers); err != nil {
		return err
	}
	for _, row := range tb.rows {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := tb.line(w, row); err != nil {
			return err
		}
	}
	return nil
}

func cell(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// pagingTable lays out one row per reference and one column per frame.
// Second-Chance runs show each frame's reference bit.
func pagingTable(pt *trace.PagingTrace) *table {
	headers := []string{"Page"}
	for i := 1; i <= pt.FrameCount; i++ {
		headers = append(headers, fmt.Sprintf("Frame %d", i))
	}
	tb := newTable(append(headers, "Status")...)
	for _, s := range pt.All() {
		row := []string{strconv.Itoa(s.Page)}
		for i, f := range s.Frames {
			c := cell(f)
			if s.RefBits != nil {
				c += fmt.Sprintf(" R=%d", s.RefBits[i])
			}
			row = append(row, c)
		}
		tb.add(append(row, string(s.Outcome))...)
	}
	return tb
}

func allocationTable(at *trace.AllocationTrace) *table {
	tb := newTable("Process No.", "Process Size", "Block No.", "Block Size", "Fragment", "Status")
	for _, s := range at.All() {
		status := "Allocated"
		if s.Outcome == trace.NotAllocated {
			status = "Not Allocated"
		}
		tb.add(strconv.Itoa(s.ProcessID), strconv.Itoa(s.Size),
			cell(s.BlockID), cell(s.BlockSize), cell(s.Fragmentation), status)
	}
	return tb
}

func writePagingSummary(w io.Writer, s *trace.PagingSummary) error {
	_, err := fmt.Fprintf(w, "Hits: %d | Misses: %d\nHit Ratio: %.2f | Miss Ratio: %.2f\n",
		s.Hits, s.Misses, s.HitRatio, s.MissRatio)
	return err
}

func writeAllocationSummary(w io.Writer, s *trace.AllocationSummary) error {
	_, err := fmt.Fprintf(w, "Total Processes: %d\nAllocated: %d\nNot Allocated: %d\nTotal Fragmentation: %d\n",
		s.Total, s.Allocated, s.NotAllocated, s.Fragmentation)
	return err
}

// report is the structured form of a run for --output json|yaml.
type report struct {
	Paging            *trace.PagingTrace       `json:"paging,omitempty" yaml:"paging,omitempty"`
	PagingSummary     *trace.PagingSummary     `json:"pagingSummary,omitempty" yaml:"paging_summary,omitempty"`
	Allocation        *trace.AllocationTrace   `json:"allocation,omitempty" yaml:"allocation,omitempty"`
	AllocationSummary *trace.AllocationSummary `json:"allocationSummary,omitempty" yaml:"allocation_summary,omitempty"`
}

func newReport(pt *trace.PagingTrace, at *trace.AllocationTrace) *report {
	r := &report{Paging: pt, Allocation: at}
	if pt != nil {
		r.PagingSummary = trace.SummarizePaging(pt)
	}
	if at != nil {
		r.AllocationSummary = trace.SummarizeAllocation(at)
	}
	return r
}

// encode writes v as indented JSON or as YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// render prints whichever traces are non-nil in the requested format.
func render(ctx context.Context, w io.Writer, pt *trace.PagingTrace, at *trace.AllocationTrace, opts outputOptions) error {
	if opts.format != "table" {
		return encode(w, opts.format, newReport(pt, at))
	}
	if pt != nil {
		fmt.Fprintf(w, "Page replacement (%s, %d frames)\n", pt.Policy, pt.FrameCount)
		if err := pagingTable(pt).write(ctx, w, opts.delay); err != nil {
			return err
		}
		if err := writePagingSummary(w, trace.SummarizePaging(pt)); err != nil {
			return err
		}
	}
	if pt != nil && at != nil {
		fmt.Fprintln(w)
	}
	if at != nil {
		fmt.Fprintf(w, "Memory allocation (%s, %d blocks)\n", at.Policy, len(at.BlockSizes))
		if err := allocationTable(at).write(ctx, w, opts.delay); err != nil {
			return err
		}
		if err := writeAllocationSummary(w, trace.SummarizeAllocation(at)); err != nil {
			return err
		}
	}
	return nil
}
