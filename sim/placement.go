package sim

import "fmt"

// PlacementPolicyNames lists the placement policies in display order.
var PlacementPolicyNames = []string{"FF", "NF", "BF", "WF"}

// ValidPlacementPolicies is the set of recognized placement policy names.
// The empty string selects First Fit.
var ValidPlacementPolicies = map[string]bool{"": true, "FF": true, "NF": true, "BF": true, "WF": true}

// IsValidPlacementPolicy returns true if name is a recognized placement policy.
func IsValidPlacementPolicy(name string) bool {
	return ValidPlacementPolicies[name]
}

// placementPolicy chooses a free block for a request.
// selectBlock returns the chosen index or -1; it must not mark the block busy.
type placementPolicy interface {
	name() string
	selectBlock(table *blockTable, size int) int
}

// firstFit takes the lowest-index block that fits.
type firstFit struct{}

func (firstFit) name() string { return "FF" }

func (firstFit) selectBlock(bt *blockTable, size int) int {
	for i := range bt.sizes {
		if bt.fits(i, size) {
			return i
		}
	}
	return -1
}

// nextFit scans circularly from the last successful placement. The block at
// that index is already busy, so the scan effectively starts one past it.
// A failed scan leaves the pointer where it was.
type nextFit struct{}

func (nextFit) name() string { return "NF" }

func (nextFit) selectBlock(bt *blockTable, size int) int {
	n := len(bt.sizes)
	for k := 0; k < n; k++ {
		i := (bt.next + k) % n
		if bt.fits(i, size) {
			bt.next = i
			return i
		}
	}
	return -1
}

// bestFit takes the block leaving the least leftover; lowest index wins ties.
type bestFit struct{}

func (bestFit) name() string { return "BF" }

func (bestFit) selectBlock(bt *blockTable, size int) int {
	best, minLeft := -1, 0
	for i := range bt.sizes {
		if !bt.fits(i, size) {
			continue
		}
		if left := bt.sizes[i] - size; best < 0 || left < minLeft {
			best, minLeft = i, left
		}
	}
	return best
}

// worstFit takes the block leaving the most leftover; lowest index wins ties.
type worstFit struct{}

func (worstFit) name() string { return "WF" }

func (worstFit) selectBlock(bt *blockTable, size int) int {
	worst, maxLeft := -1, -1
	for i := range bt.sizes {
		if !bt.fits(i, size) {
			continue
		}
		if left := bt.sizes[i] - size; left > maxLeft {
			worst, maxLeft = i, left
		}
	}
	return worst
}

// newPlacementPolicy creates a placement policy by name.
// Valid names are defined in ValidPlacementPolicies.
// Panics on unrecognized names.
func newPlacementPolicy(name string) placementPolicy {
	if !IsValidPlacementPolicy(name) {
		panic(fmt.Sprintf("unknown placement policy %q", name))
	}
	switch name {
	case "", "FF":
		return firstFit{}
	case "NF":
		return nextFit{}
	case "BF":
		return bestFit{}
	case "WF":
		return worstFit{}
	default:
		panic(fmt.Sprintf("unhandled placement policy %q", name))
	}
}
