package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/memsim/sim/trace"
)

// Scenario describes one or both simulations, loadable from a YAML file.
// A nil section means "not set in YAML" and is skipped by Run.
type Scenario struct {
	Paging     *PagingScenario     `yaml:"paging,omitempty"`
	Allocation *AllocationScenario `yaml:"allocation,omitempty"`
}

// PagingScenario holds a page-replacement workload and its configuration.
type PagingScenario struct {
	Policy     string `yaml:"policy"`
	Frames     int    `yaml:"frames"`
	References []int  `yaml:"references"`
}

// AllocationScenario holds a block-placement workload and its configuration.
type AllocationScenario struct {
	Policy    string `yaml:"policy"`
	Blocks    []int  `yaml:"blocks"`
	Processes []int  `yaml:"processes"`
}

// ScenarioResult holds the traces produced by Scenario.Run.
// A field is nil when the matching section was absent.
type ScenarioResult struct {
	Paging     *trace.PagingTrace
	Allocation *trace.AllocationTrace
}

// LoadScenario reads and parses a YAML scenario file. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Validate checks policy names, sizes and workloads in every present section.
func (s *Scenario) Validate() error {
	if s.Paging == nil && s.Allocation == nil {
		return fmt.Errorf("%w: scenario needs a paging or allocation section", ErrInvalidConfiguration)
	}
	if p := s.Paging; p != nil {
		if !IsValidReplacementPolicy(p.Policy) {
			return fmt.Errorf("%w: unknown replacement policy %q", ErrInvalidConfiguration, p.Policy)
		}
		if p.Frames < 1 {
			return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfiguration, p.Frames)
		}
		if len(p.References) == 0 {
			return fmt.Errorf("%w: paging references", ErrEmptyWorkload)
		}
	}
	if a := s.Allocation; a != nil {
		if !IsValidPlacementPolicy(a.Policy) {
			return fmt.Errorf("%w: unknown placement policy %q", ErrInvalidConfiguration, a.Policy)
		}
		if len(a.Blocks) == 0 {
			return fmt.Errorf("%w: allocation needs at least one block", ErrInvalidConfiguration)
		}
		for i, b := range a.Blocks {
			if b < 1 {
				return fmt.Errorf("%w: block %d size must be positive, got %d", ErrInvalidConfiguration, i+1, b)
			}
		}
		if len(a.Processes) == 0 {
			return fmt.Errorf("%w: allocation processes", ErrEmptyWorkload)
		}
		for i, p := range a.Processes {
			if p < 1 {
				return fmt.Errorf("%w: process %d size must be positive, got %d", ErrInvalidConfiguration, i+1, p)
			}
		}
	}
	return nil
}

// Run validates the scenario and simulates every present section.
// Nothing is simulated if validation fails.
func (s *Scenario) Run() (*ScenarioResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	res := &ScenarioResult{}
	if p := s.Paging; p != nil {
		pt, err := SimulatePaging(p.References, p.Frames, p.Policy)
		if err != nil {
			return nil, fmt.Errorf("paging: %w", err)
		}
		res.Paging = pt
	}
	if a := s.Allocation; a != nil {
		at, err := SimulateAllocation(a.Blocks, a.Processes, a.Policy)
		if err != nil {
			return nil, fmt.Errorf("allocation: %w", err)
		}
		res.Allocation = at
	}
	return res, nil
}
