// Package sim provides the two memory-management simulation engines.
//
// # Reading Guide
//
//   - paging.go: SimulatePaging and the per-run frame bank
//   - replacement.go: FIFO, LRU, OPT and Second-Chance victim selection
//   - allocation.go: SimulateAllocation and the per-run block table
//   - placement.go: First, Next, Best and Worst Fit block selection
//   - scenario.go: YAML scenario files describing either or both runs
//
// Both engines are pure functions of their inputs. Every call builds its own
// frame bank or block table, so concurrent calls never share state, and the
// returned trace (sim/trace) is complete before the call returns.
//
// Policies are small unexported interfaces selected by name; the recognized
// names are listed in ValidReplacementPolicies and ValidPlacementPolicies.
package sim
