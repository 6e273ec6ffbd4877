// Package types holds the experiment harness: policies, traces, agents
// and comparisons running against the pure environment API.
package types

import "pcgrl/reps"

// Policy picks actions from observations. Implementations own their
// randomness so separately constructed policies stay independent.
type Policy interface {
	// NextAction picks the action for the current observation.
	NextAction(step int, obs *reps.Observation, space reps.ActionSpace) reps.Action
	// Update feeds one transition back into the policy.
	Update(step int, obs *reps.Observation, action reps.Action, nextObs *reps.Observation, reward float64)
	// Reset clears learned state between experiment runs.
	Reset()
	// Record persists learned state (if any) to the given path.
	Record(path string) error
}

// TraceSink persists episode traces. Implementations live in the store
// package.
type TraceSink interface {
	Append(experiment string, run int, trace *Trace) error
}

// DataSet is whatever an analyzer distills out of a run's traces.
type DataSet interface{}

// Analyzer distills the traces of one experiment run.
type Analyzer func(run int, experiment string, traces []*Trace) DataSet

// Comparator consumes the per-experiment datasets of one run.
type Comparator func(run int, experiments []string, datasets []DataSet)
