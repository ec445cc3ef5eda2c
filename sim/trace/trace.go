package trace

import (
	"fmt"
	"iter"
	"slices"
)

// PagingTrace is the ordered sequence of steps produced by one paging run.
type PagingTrace struct {
	Policy     string         `json:"policy" yaml:"policy"`
	FrameCount int            `json:"frameCount" yaml:"frame_count"`
	Steps      []PagingRecord `json:"steps" yaml:"steps"`
}

// NewPagingTrace creates a PagingTrace ready for recording.
// steps is a capacity hint.
func NewPagingTrace(policy string, frameCount, steps int) *PagingTrace {
	return &PagingTrace{
		Policy:     policy,
		FrameCount: frameCount,
		Steps:      make([]PagingRecord, 0, steps),
	}
}

// Record appends a paging step.
func (pt *PagingTrace) Record(record PagingRecord) {
	pt.Steps = append(pt.Steps, record)
}

// Len returns the number of recorded steps.
func (pt *PagingTrace) Len() int {
	return len(pt.Steps)
}

// All yields every step with its 0-based position. The sequence is finite
// and can be ranged over any number of times.
func (pt *PagingTrace) All() iter.Seq2[int, PagingRecord] {
	return func(yield func(int, PagingRecord) bool) {
		for i, s := range pt.Steps {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Verify replays the trace and checks that every outcome agrees with the
// frame bank as it stood before that step, and that hits leave the bank untouched.
func (pt *PagingTrace) Verify() error {
	prev := make([]*int, pt.FrameCount)
	for i, s := range pt.Steps {
		if len(s.Frames) != pt.FrameCount {
			return fmt.Errorf("step %d: %d frames recorded, want %d", i, len(s.Frames), pt.FrameCount)
		}
		if s.RefBits != nil && len(s.RefBits) != pt.FrameCount {
			return fmt.Errorf("step %d: %d reference bits recorded, want %d", i, len(s.RefBits), pt.FrameCount)
		}
		resident := slices.ContainsFunc(prev, func(f *int) bool { return f != nil && *f == s.Page })
		switch {
		case resident && s.Outcome != Hit:
			return fmt.Errorf("step %d: page %d was resident but recorded as %s", i, s.Page, s.Outcome)
		case !resident && s.Outcome != Miss:
			return fmt.Errorf("step %d: page %d was not resident but recorded as %s", i, s.Page, s.Outcome)
		}
		if resident && !sameFrames(prev, s.Frames) {
			return fmt.Errorf("step %d: hit on page %d changed the frame bank", i, s.Page)
		}
		if !slices.Contains(s.ResidentPages(), s.Page) {
			return fmt.Errorf("step %d: page %d not resident after its reference", i, s.Page)
		}
		prev = s.Frames
	}
	return nil
}

func sameFrames(a, b []*int) bool {
	return slices.EqualFunc(a, b, func(x, y *int) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	})
}

// AllocationTrace is the ordered sequence of steps produced by one allocation run.
type AllocationTrace struct {
	Policy     string             `json:"policy" yaml:"policy"`
	BlockSizes []int              `json:"blockSizes" yaml:"block_sizes"`
	Steps      []AllocationRecord `json:"steps" yaml:"steps"`
}

// NewAllocationTrace creates an AllocationTrace ready for recording.
// The block sizes are copied.
func NewAllocationTrace(policy string, blockSizes []int, steps int) *AllocationTrace {
	return &AllocationTrace{
		Policy:     policy,
		BlockSizes: slices.Clone(blockSizes),
		Steps:      make([]AllocationRecord, 0, steps),
	}
}

// Record appends an allocation step.
func (at *AllocationTrace) Record(record AllocationRecord) {
	at.Steps = append(at.Steps, record)
}

// Len returns the number of recorded steps.
func (at *AllocationTrace) Len() int {
	return len(at.Steps)
}

// All yields every step with its 0-based position.
func (at *AllocationTrace) All() iter.Seq2[int, AllocationRecord] {
	return func(yield func(int, AllocationRecord) bool) {
		for i, s := range at.Steps {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Verify checks that process ids follow input order, that each allocated
// step is consistent with the block table, and that no block is assigned twice.
func (at *AllocationTrace) Verify() error {
	busy := make([]bool, len(at.BlockSizes))
	for i, s := range at.Steps {
		if s.ProcessID != i+1 {
			return fmt.Errorf("step %d: process id %d, want %d", i, s.ProcessID, i+1)
		}
		if s.Outcome == NotAllocated {
			if s.BlockID != nil || s.BlockSize != nil || s.Fragmentation != nil {
				return fmt.Errorf("step %d: unallocated process %d carries block fields", i, s.ProcessID)
			}
			continue
		}
		if s.BlockID == nil || s.BlockSize == nil || s.Fragmentation == nil {
			return fmt.Errorf("step %d: allocated process %d is missing block fields", i, s.ProcessID)
		}
		idx := *s.BlockID - 1
		if idx < 0 || idx >= len(at.BlockSizes) {
			return fmt.Errorf("step %d: block id %d out of range", i, *s.BlockID)
		}
		if busy[idx] {
			return fmt.Errorf("step %d: block %d assigned twice", i, *s.BlockID)
		}
		busy[idx] = true
		if *s.BlockSize != at.BlockSizes[idx] {
			return fmt.Errorf("step %d: block %d size %d, want %d", i, *s.BlockID, *s.BlockSize, at.BlockSizes[idx])
		}
		if *s.Fragmentation != *s.BlockSize-s.Size || *s.Fragmentation < 0 {
			return fmt.Errorf("step %d: fragmentation %d inconsistent with block size %d and request %d",
				i, *s.Fragmentation, *s.BlockSize, s.Size)
		}
	}
	return nil
}
