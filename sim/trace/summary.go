package trace

// PagingSummary aggregates statistics from a PagingTrace.
type PagingSummary struct {
	Total     int     `json:"total" yaml:"total"`
	Hits      int     `json:"hits" yaml:"hits"`
	Misses    int     `json:"misses" yaml:"misses"`
	HitRatio  float64 `json:"hitRatio" yaml:"hit_ratio"`
	MissRatio float64 `json:"missRatio" yaml:"miss_ratio"`
}

// SummarizePaging computes aggregate statistics from a PagingTrace.
// Safe for nil or empty traces (returns zero-value fields).
func SummarizePaging(pt *PagingTrace) *PagingSummary {
	summary := &PagingSummary{}
	if pt == nil {
		return summary
	}
	for _, s := range pt.Steps {
		if s.Outcome == Hit {
			summary.Hits++
		} else {
			summary.Misses++
		}
	}
	summary.Total = len(pt.Steps)
	if summary.Total > 0 {
		summary.HitRatio = float64(summary.Hits) / float64(summary.Total)
		summary.MissRatio = float64(summary.Misses) / float64(summary.Total)
	}
	return summary
}

// AllocationSummary aggregates statistics from an AllocationTrace.
type AllocationSummary struct {
	Total         int `json:"total" yaml:"total"`
	Allocated     int `json:"allocated" yaml:"allocated"`
	NotAllocated  int `json:"notAllocated" yaml:"not_allocated"`
	Fragmentation int `json:"fragmentation" yaml:"fragmentation"` // internal fragmentation summed over allocated blocks
}

// SummarizeAllocation computes aggregate statistics from an AllocationTrace.
// Safe for nil or empty traces.
func SummarizeAllocation(at *AllocationTrace) *AllocationSummary {
	summary := &AllocationSummary{}
	if at == nil {
		return summary
	}
	for _, s := range at.Steps {
		if s.Outcome != Allocated {
			summary.NotAllocated++
			continue
		}
		summary.Allocated++
		if s.Fragmentation != nil {
			summary.Fragmentation += *s.Fragmentation
		}
	}
	summary.Total = len(at.Steps)
	return summary
}
