// Package trace provides step records for memory-management simulation runs.
// It has no dependencies on sim/ and stores pure data types.
package trace

// PagingOutcome classifies a single page reference.
type PagingOutcome string

const (
	// Hit means the referenced page was already resident.
	Hit PagingOutcome = "Hit"
	// Miss means the page had to be loaded into a frame (page fault).
	Miss PagingOutcome = "Miss"
)

// AllocationOutcome classifies a single process placement request.
type AllocationOutcome string

const (
	Allocated    AllocationOutcome = "Allocated"
	NotAllocated AllocationOutcome = "NotAllocated"
)

// PagingRecord captures the frame bank right after one page reference.
// Frames holds one entry per frame slot; nil marks an empty slot.
// RefBits is nil unless the run used the Second-Chance policy.
type PagingRecord struct {
	Page    int           `json:"page" yaml:"page"`
	Frames  []*int        `json:"frames" yaml:"frames"`
	RefBits []int         `json:"refBits" yaml:"ref_bits"`
	Outcome PagingOutcome `json:"outcome" yaml:"outcome"`
}

// AllocationRecord captures the placement decision for one process.
// ProcessID and BlockID are 1-based. The block fields are nil when the
// process could not be placed.
type AllocationRecord struct {
	ProcessID     int               `json:"processId" yaml:"process_id"`
	Size          int               `json:"size" yaml:"size"`
	BlockID       *int              `json:"blockId" yaml:"block_id"`
	BlockSize     *int              `json:"blockSize" yaml:"block_size"`
	Fragmentation *int              `json:"fragmentation" yaml:"fragmentation"`
	Outcome       AllocationOutcome `json:"outcome" yaml:"outcome"`
}

// ResidentPages returns the page ids held by the snapshot, skipping empty slots.
func (r PagingRecord) ResidentPages() []int {
	pages := make([]int, 0, len(r.Frames))
	for _, f := range r.Frames {
		if f != nil {
			pages = append(pages, *f)
		}
	}
	return pages
}
