package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/memsim/sim/trace"
)

// classicRefs is the textbook reference string used in most OS courses.
var classicRefs = []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}

// pagesOf flattens a frame snapshot, using -1 for empty slots.
func pagesOf(r trace.PagingRecord) []int {
	out := make([]int, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = -1
		if f != nil {
			out[i] = *f
		}
	}
	return out
}

func outcomesOf(pt *trace.PagingTrace) []trace.PagingOutcome {
	out := make([]trace.PagingOutcome, 0, pt.Len())
	for _, s := range pt.All() {
		out = append(out, s.Outcome)
	}
	return out
}

const (
	H = trace.Hit
	M = trace.Miss
)

func TestSimulatePaging_FIFO_EvictsInFillOrder(t *testing.T) {
	// GIVEN three frames filled with 1, 2, 3
	// WHEN 1 is hit and then 4 is referenced
	pt, err := SimulatePaging([]int{1, 2, 3, 1, 4}, 3, "FIFO")
	require.NoError(t, err)

	// THEN 4 replaces 1, the first page loaded, despite the hit
	assert.Equal(t, []trace.PagingOutcome{M, M, M, H, M}, outcomesOf(pt))
	assert.Equal(t, []int{4, 2, 3}, pagesOf(pt.Steps[4]))
}

func TestSimulatePaging_LRU_EvictsLeastRecentlyUsed(t *testing.T) {
	// GIVEN four frames holding 1..4, with 1 and 2 referenced again
	pt, err := SimulatePaging([]int{1, 2, 3, 4, 1, 2, 5}, 4, "LRU")
	require.NoError(t, err)

	// THEN 5 replaces 3, the least recently used page
	assert.Equal(t, []int{1, 2, 5, 4}, pagesOf(pt.Steps[6]))
	assert.Equal(t, []trace.PagingOutcome{M, M, M, M, H, H, M}, outcomesOf(pt))
}

func TestSimulatePaging_OPT_EvictsPageWithNoFutureUse(t *testing.T) {
	// GIVEN three frames holding 1, 2, 3 and future references [2, 1, 5]
	pt, err := SimulatePaging([]int{1, 2, 3, 4, 2, 1, 5}, 3, "OPT")
	require.NoError(t, err)

	// THEN 4 replaces 3, which is never referenced again
	assert.Equal(t, []int{1, 2, 4}, pagesOf(pt.Steps[3]))
	// AND with no future references at all, the first slot gives way
	assert.Equal(t, []int{5, 2, 4}, pagesOf(pt.Steps[6]))
}

func TestSimulatePaging_OPT_EvictsFarthestNextUse(t *testing.T) {
	// GIVEN frames 1, 2, 3 where 1 is next used last
	pt, err := SimulatePaging([]int{1, 2, 3, 4, 3, 2, 1}, 3, "OPT")
	require.NoError(t, err)

	// THEN 4 replaces 1
	assert.Equal(t, []int{4, 2, 3}, pagesOf(pt.Steps[3]))
}

func TestSimulatePaging_SC_GivesReferencedPageSecondChance(t *testing.T) {
	// GIVEN three frames filled with 1, 2, 3 and a hit on 1
	pt, err := SimulatePaging([]int{1, 2, 3, 1, 4}, 3, "SC")
	require.NoError(t, err)

	// THEN the hit sets 1's reference bit
	assert.Equal(t, []int{1, 0, 0}, pt.Steps[3].RefBits)
	// AND 4 skips 1 (clearing its bit) and replaces 2 with a clear bit
	assert.Equal(t, []int{1, 4, 3}, pagesOf(pt.Steps[4]))
	assert.Equal(t, []int{0, 0, 0}, pt.Steps[4].RefBits)
}

func TestSimulatePaging_SC_AllBitsSet_FullSweepThenEvictsAtPointer(t *testing.T) {
	// GIVEN two frames whose pages were both hit
	pt, err := SimulatePaging([]int{1, 2, 1, 2, 3}, 2, "SC")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, pt.Steps[3].RefBits)

	// WHEN a new page arrives
	// THEN the sweep clears every bit and evicts the frame it started from
	assert.Equal(t, []int{3, 2}, pagesOf(pt.Steps[4]))
	assert.Equal(t, []int{0, 0}, pt.Steps[4].RefBits)
}

func TestSimulatePaging_SC_EvictedSlotBitIsClear(t *testing.T) {
	pt, err := SimulatePaging(classicRefs, 3, "SC")
	require.NoError(t, err)

	prev := make([]int, 3)
	for i := range prev {
		prev[i] = -1
	}
	for i, s := range pt.All() {
		cur := pagesOf(s)
		for slot := range cur {
			if cur[slot] != prev[slot] {
				assert.Equal(t, 0, s.RefBits[slot], "step %d: newly loaded frame %d must start with bit 0", i, slot)
			}
		}
		prev = cur
	}
}

func TestSimulatePaging_ClassicString_FaultCounts(t *testing.T) {
	tests := []struct {
		policy string
		misses int
	}{
		{"FIFO", 15},
		{"LRU", 12},
		{"OPT", 9},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			pt, err := SimulatePaging(classicRefs, 3, tt.policy)
			require.NoError(t, err)
			summary := trace.SummarizePaging(pt)
			assert.Equal(t, tt.misses, summary.Misses)
			assert.Equal(t, len(classicRefs), summary.Hits+summary.Misses)
		})
	}
}

func TestSimulatePaging_AllPolicies_TraceIsSelfConsistent(t *testing.T) {
	workloads := [][]int{
		classicRefs,
		{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5},
		{-3, 0, -3, 42, 0, 7, -3},
	}
	for _, policy := range ReplacementPolicyNames {
		for frames := 1; frames <= 5; frames++ {
			for _, refs := range workloads {
				pt, err := SimulatePaging(refs, frames, policy)
				require.NoError(t, err)
				assert.Equal(t, len(refs), pt.Len())
				assert.NoError(t, pt.Verify(), "policy=%s frames=%d refs=%v", policy, frames, refs)
				for _, s := range pt.All() {
					assert.Len(t, s.Frames, frames)
					if policy == "SC" {
						assert.Len(t, s.RefBits, frames)
					} else {
						assert.Nil(t, s.RefBits)
					}
				}
			}
		}
	}
}

func TestSimulatePaging_MoreFramesThanPages_NeverEvicts(t *testing.T) {
	for _, policy := range ReplacementPolicyNames {
		pt, err := SimulatePaging([]int{1, 2, 1, 3}, 5, policy)
		require.NoError(t, err)
		assert.Equal(t, []trace.PagingOutcome{M, M, H, M}, outcomesOf(pt), policy)
		assert.Equal(t, []int{1, 2, 3, -1, -1}, pagesOf(pt.Steps[3]), policy)
	}
}

func TestSimulatePaging_SnapshotsAreIndependent(t *testing.T) {
	// GIVEN a run in which frame 0 is later overwritten
	pt, err := SimulatePaging([]int{1, 2, 3}, 1, "FIFO")
	require.NoError(t, err)

	// THEN earlier snapshots still show their own contents
	assert.Equal(t, []int{1}, pagesOf(pt.Steps[0]))
	assert.Equal(t, []int{2}, pagesOf(pt.Steps[1]))
	assert.Equal(t, []int{3}, pagesOf(pt.Steps[2]))
}

func TestSimulatePaging_InputNotRetained(t *testing.T) {
	// GIVEN a caller-owned reference slice
	refs := []int{1, 2, 3}
	pt, err := SimulatePaging(refs, 2, "OPT")
	require.NoError(t, err)

	// WHEN the caller mutates it afterwards
	refs[0] = 99

	// THEN the trace is unaffected
	assert.Equal(t, 1, pt.Steps[0].Page)
}

func TestSimulatePaging_Deterministic(t *testing.T) {
	for _, policy := range ReplacementPolicyNames {
		a, err := SimulatePaging(classicRefs, 4, policy)
		require.NoError(t, err)
		b, err := SimulatePaging(classicRefs, 4, policy)
		require.NoError(t, err)
		assert.Equal(t, a, b, policy)
	}
}

func TestSimulatePaging_EmptyReferences_EmptyTrace(t *testing.T) {
	pt, err := SimulatePaging(nil, 3, "LRU")
	require.NoError(t, err)
	require.NotNil(t, pt)
	assert.Equal(t, 0, pt.Len())
	assert.Equal(t, 0, trace.SummarizePaging(pt).Misses)
}

func TestSimulatePaging_EmptyPolicy_DefaultsToFIFO(t *testing.T) {
	pt, err := SimulatePaging([]int{1}, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "FIFO", pt.Policy)
}

func TestSimulatePaging_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		policy string
	}{
		{"zero frames", 0, "FIFO"},
		{"negative frames", -2, "LRU"},
		{"unknown policy", 3, "MRU"},
		{"lowercase policy", 3, "fifo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := SimulatePaging([]int{1, 2}, tt.frames, tt.policy)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, pt)
		})
	}
}

func TestNewReplacementPolicy_UnknownName_Panics(t *testing.T) {
	assert.Panics(t, func() { newReplacementPolicy("CLOCK") })
}
