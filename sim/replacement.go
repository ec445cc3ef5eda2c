package sim

import (
	"fmt"
	"slices"
)

// ReplacementPolicyNames lists the page replacement policies in display order.
var ReplacementPolicyNames = []string{"FIFO", "LRU", "OPT", "SC"}

// ValidReplacementPolicies is the set of recognized replacement policy names.
// The empty string selects FIFO.
var ValidReplacementPolicies = map[string]bool{"": true, "FIFO": true, "LRU": true, "OPT": true, "SC": true}

// IsValidReplacementPolicy returns true if name is a recognized replacement policy.
func IsValidReplacementPolicy(name string) bool {
	return ValidReplacementPolicies[name]
}

// replacementPolicy decides which frame gives way on a miss against a full bank.
// Implementations are stateless; all per-run state lives in the frameBank.
type replacementPolicy interface {
	name() string
	usesRefBits() bool
	// touch is called when the page in slot is referenced again.
	touch(bank *frameBank, slot int)
	// filled is called after a miss loads a page into a previously empty slot.
	filled(bank *frameBank, slot int)
	// victim picks the slot to overwrite for the reference at position t.
	victim(bank *frameBank, refs []int, t int) int
}

// fifoPolicy evicts in load order using the circular pointer.
type fifoPolicy struct{}

func (fifoPolicy) name() string { return "FIFO" }
func (fifoPolicy) usesRefBits() bool { return false }
func (fifoPolicy) touch(_ *frameBank, _ int) {}
func (fifoPolicy) filled(b *frameBank, _ int) { b.advance() }

func (fifoPolicy) victim(b *frameBank, _ []int, _ int) int {
	v := b.pointer
	b.advance()
	return v
}

// lruPolicy evicts the page whose latest prior reference is oldest.
// Recency is recomputed from the reference string rather than stored per frame.
type lruPolicy struct{}

func (lruPolicy) name() string { return "LRU" }
func (lruPolicy) usesRefBits() bool { return false }
func (lruPolicy) touch(_ *frameBank, _ int) {}
func (lruPolicy) filled(_ *frameBank, _ int) {}

func (lruPolicy) victim(b *frameBank, refs []int, t int) int {
	victim, oldest := 0, t
	for slot, page := range b.pages {
		// -1 when never referenced before t, which ranks as least recent
		last := -1
		for i := t - 1; i >= 0; i-- {
			if refs[i] == page {
				last = i
				break
			}
		}
		if last < oldest {
			oldest, victim = last, slot
		}
	}
	return victim
}

// optPolicy evicts the page whose next reference is farthest in the future.
type optPolicy struct{}

func (optPolicy) name() string { return "OPT" }
func (optPolicy) usesRefBits() bool { return false }
func (optPolicy) touch(_ *frameBank, _ int) {}
func (optPolicy) filled(_ *frameBank, _ int) {}

func (optPolicy) victim(b *frameBank, refs []int, t int) int {
	victim, farthest := 0, -1
	future := refs[t+1:]
	for slot, page := range b.pages {
		next := slices.Index(future, page)
		if next < 0 {
			return slot
		}
		if next > farthest {
			farthest, victim = next, slot
		}
	}
	return victim
}

// secondChancePolicy is the clock algorithm: the pointer sweeps the bank,
// clearing set reference bits until it reaches a frame whose bit is clear.
type secondChancePolicy struct{}

func (secondChancePolicy) name() string { return "SC" }
func (secondChancePolicy) usesRefBits() bool { return true }
func (secondChancePolicy) touch(b *frameBank, s int) { b.refBits[s] = true }
func (secondChancePolicy) filled(b *frameBank, _ int) { b.advance() }

func (secondChancePolicy) victim(b *frameBank, _ []int, _ int) int {
	// Bits are cleared as they are passed, so this ends within two sweeps.
	for {
		if !b.refBits[b.pointer] {
			v := b.pointer
			b.advance()
			return v
		}
		b.refBits[b.pointer] = false
		b.advance()
	}
}

// newReplacementPolicy creates a replacement policy by name.
// Valid names are defined in ValidReplacementPolicies.
// Panics on unrecognized names.
func newReplacementPolicy(name string) replacementPolicy {
	if !IsValidReplacementPolicy(name) {
		panic(fmt.Sprintf("unknown replacement policy %q", name))
	}
	switch name {
	case "", "FIFO":
		return fifoPolicy{}
	case "LRU":
		return lruPolicy{}
	case "OPT":
		return optPolicy{}
	case "SC":
		return secondChancePolicy{}
	default:
		panic(fmt.Sprintf("unhandled replacement policy %q", name))
	}
}
