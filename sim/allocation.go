package sim

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/memsim/sim/trace"
)

// blockTable is the mutable state of a single allocation run.
// Block sizes are fixed at construction; only occupancy changes.
type blockTable struct {
	sizes []int
	busy  []bool
	next  int // next-fit scan start; index of the last successful placement
}

func newBlockTable(sizes []int) *blockTable {
	return &blockTable{
		sizes: slices.Clone(sizes),
		busy:  make([]bool, len(sizes)),
	}
}

// fits reports whether block i is free and large enough for size.
func (bt *blockTable) fits(i, size int) bool {
	return !bt.busy[i] && bt.sizes[i] >= size
}

// SimulateAllocation places each request, in input order, into at most one
// free block chosen by the named placement policy. Blocks are never released.
// An empty request list yields an empty trace.
func SimulateAllocation(blockSizes, requests []int, policy string) (*trace.AllocationTrace, error) {
	for i, size := range blockSizes {
		if size < 1 {
			return nil, fmt.Errorf("%w: block %d size must be positive, got %d", ErrInvalidConfiguration, i+1, size)
		}
	}
	for i, size := range requests {
		if size < 1 {
			return nil, fmt.Errorf("%w: process %d size must be positive, got %d", ErrInvalidConfiguration, i+1, size)
		}
	}
	if !IsValidPlacementPolicy(policy) {
		return nil, fmt.Errorf("%w: unknown placement policy %q", ErrInvalidConfiguration, policy)
	}
	pp := newPlacementPolicy(policy)
	table := newBlockTable(blockSizes)
	at := trace.NewAllocationTrace(pp.name(), blockSizes, len(requests))

	for i, size := range requests {
		record := trace.AllocationRecord{
			ProcessID: i + 1,
			Size:      size,
			Outcome:   trace.NotAllocated,
		}
		if idx := pp.selectBlock(table, size); idx >= 0 {
			table.busy[idx] = true
			blockID, blockSize, frag := idx+1, table.sizes[idx], table.sizes[idx]-size
			record.BlockID = &blockID
			record.BlockSize = &blockSize
			record.Fragmentation = &frag
			record.Outcome = trace.Allocated
		} else {
			logrus.Tracef("[%s] process %d (size %d) not allocated", pp.name(), i+1, size)
		}
		at.Record(record)
	}

	logrus.Debugf("allocation run complete: policy=%s blocks=%d processes=%d", pp.name(), len(blockSizes), len(requests))
	return at, nil
}
