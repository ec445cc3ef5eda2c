package sim

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/memsim/sim/trace"
)

// frameBank is the mutable state of a single paging run.
// It is created fresh by SimulatePaging and never shared between runs.
type frameBank struct {
	pages   []int
	loaded  []bool
	refBits []bool // nil unless the policy tracks reference bits
	pointer int    // circular pointer (FIFO, SC); always in [0, len(pages))
}

func newFrameBank(frameCount int, withRefBits bool) *frameBank {
	b := &frameBank{
		pages:  make([]int, frameCount),
		loaded: make([]bool, frameCount),
	}
	if withRefBits {
		b.refBits = make([]bool, frameCount)
	}
	return b
}

// find returns the slot holding page, or -1.
func (b *frameBank) find(page int) int {
	for i, p := range b.pages {
		if b.loaded[i] && p == page {
			return i
		}
	}
	return -1
}

// firstEmpty returns the lowest empty slot, or -1 when the bank is full.
func (b *frameBank) firstEmpty() int {
	return slices.Index(b.loaded, false)
}

// place overwrites slot with page. Newly placed pages start with reference bit 0.
func (b *frameBank) place(slot, page int) {
	b.pages[slot] = page
	b.loaded[slot] = true
	if b.refBits != nil {
		b.refBits[slot] = false
	}
}

func (b *frameBank) advance() {
	b.pointer = (b.pointer + 1) % len(b.pages)
}

// snapshot copies the bank into freshly allocated values so later
// mutations cannot reach records already handed out.
func (b *frameBank) snapshot() ([]*int, []int) {
	frames := make([]*int, len(b.pages))
	for i := range b.pages {
		if b.loaded[i] {
			page := b.pages[i]
			frames[i] = &page
		}
	}
	if b.refBits == nil {
		return frames, nil
	}
	bits := make([]int, len(b.refBits))
	for i, set := range b.refBits {
		if set {
			bits[i] = 1
		}
	}
	return frames, bits
}

// SimulatePaging runs the reference string through frameCount frames under the
// named replacement policy and returns one step per reference, in input order.
// An empty reference string yields an empty trace.
func SimulatePaging(refs []int, frameCount int, policy string) (*trace.PagingTrace, error) {
	if frameCount < 1 {
		return nil, fmt.Errorf("%w: frame count must be positive, got %d", ErrInvalidConfiguration, frameCount)
	}
	if !IsValidReplacementPolicy(policy) {
		return nil, fmt.Errorf("%w: unknown replacement policy %q", ErrInvalidConfiguration, policy)
	}
	refs = slices.Clone(refs)
	rp := newReplacementPolicy(policy)
	bank := newFrameBank(frameCount, rp.usesRefBits())
	pt := trace.NewPagingTrace(rp.name(), frameCount, len(refs))

	for t, page := range refs {
		outcome := trace.Miss
		if slot := bank.find(page); slot >= 0 {
			outcome = trace.Hit
			rp.touch(bank, slot)
		} else if slot := bank.firstEmpty(); slot >= 0 {
			bank.place(slot, page)
			rp.filled(bank, slot)
		} else {
			victim := rp.victim(bank, refs, t)
			logrus.Tracef("[%s] t=%d page %d evicts %d from frame %d", rp.name(), t, page, bank.pages[victim], victim)
			bank.place(victim, page)
		}
		frames, bits := bank.snapshot()
		pt.Record(trace.PagingRecord{
			Page:    page,
			Frames:  frames,
			RefBits: bits,
			Outcome: outcome,
		})
	}

	logrus.Debugf("paging run complete: policy=%s frames=%d references=%d", rp.name(), frameCount, len(refs))
	return pt, nil
}
