package policies

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"pcgrl/reps"
	"pcgrl/types"
)

// enumerationLimit caps the sub-action spaces tabular policies accept.
// Spaces past this (the NCA full-map space in particular) cannot be
// enumerated.
const enumerationLimit = 1 << 16

// SoftMaxQ is tabular Q-learning with softmax action sampling over an
// enumerable single-agent action space.
type SoftMaxQ struct {
	qTable  *QTable
	alpha   float64
	gamma   float64
	rng     *rand.Rand
	actions [][]int
	keys    []string
}

var _ types.Policy = &SoftMaxQ{}

// NewSoftMaxQ enumerates the action space up front and fails on spaces
// too large to tabulate.
func NewSoftMaxQ(space reps.ActionSpace, alpha, gamma float64, seed uint64) (*SoftMaxQ, error) {
	if space.NAgents != 1 {
		return nil, fmt.Errorf("tabular policy is single-agent, got %d agents", space.NAgents)
	}
	if !space.Enumerable(enumerationLimit) {
		return nil, fmt.Errorf("action space too large to enumerate for a tabular policy")
	}
	actions := space.Enumerate()
	keys := make([]string, len(actions))
	for i, sub := range actions {
		keys[i] = reps.Action{sub}.Key()
	}
	return &SoftMaxQ{
		qTable:  NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		rng:     rand.New(rand.NewSource(seed)),
		actions: actions,
		keys:    keys,
	}, nil
}

func (s *SoftMaxQ) NextAction(step int, obs *reps.Observation, space reps.ActionSpace) reps.Action {
	obsKey := obs.Key()

	sum := 0.0
	vals := make([]float64, len(s.actions))
	for i, key := range s.keys {
		v := math.Exp(s.qTable.Get(obsKey, key, 0))
		vals[i] = v
		sum += v
	}
	weights := make([]float64, len(vals))
	for i, v := range vals {
		weights[i] = v / sum
	}

	i, ok := sampleuv.NewWeighted(weights, s.rng).Take()
	if !ok {
		i = s.rng.Intn(len(s.actions))
	}
	return reps.Action{s.actions[i]}
}

func (s *SoftMaxQ) Update(step int, obs *reps.Observation, action reps.Action, nextObs *reps.Observation, reward float64) {
	obsKey := obs.Key()
	actionKey := action.Key()
	cur := s.qTable.Get(obsKey, actionKey, 0)
	next := s.qTable.Max(nextObs.Key(), 0)
	s.qTable.Set(obsKey, actionKey, (1-s.alpha)*cur+s.alpha*(reward+s.gamma*next))
}

func (s *SoftMaxQ) Reset() {
	s.qTable = NewQTable()
}

func (s *SoftMaxQ) Record(path string) error {
	return s.qTable.Record(path)
}
