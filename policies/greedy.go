package policies

import (
	"fmt"

	"golang.org/x/exp/rand"

	"pcgrl/reps"
	"pcgrl/types"
)

// EpsGreedyQ is tabular Q-learning with epsilon-greedy exploration over
// an enumerable single-agent action space.
type EpsGreedyQ struct {
	qTable  *QTable
	alpha   float64
	gamma   float64
	epsilon float64
	rng     *rand.Rand
	actions [][]int
	keys    []string
}

var _ types.Policy = &EpsGreedyQ{}

func NewEpsGreedyQ(space reps.ActionSpace, alpha, gamma, epsilon float64, seed uint64) (*EpsGreedyQ, error) {
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
	return &EpsGreedyQ{
		qTable:  NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
		actions: actions,
		keys:    keys,
	}, nil
}

func (e *EpsGreedyQ) NextAction(step int, obs *reps.Observation, space reps.ActionSpace) reps.Action {
	if e.rng.Float64() < e.epsilon {
		return reps.Action{e.actions[e.rng.Intn(len(e.actions))]}
	}
	obsKey := obs.Key()
	bestIdx := 0
	bestVal := e.qTable.Get(obsKey, e.keys[0], 0)
	for i := 1; i < len(e.keys); i++ {
		if v := e.qTable.Get(obsKey, e.keys[i], 0); v > bestVal {
			bestIdx, bestVal = i, v
		}
	}
	return reps.Action{e.actions[bestIdx]}
}

func (e *EpsGreedyQ) Update(step int, obs *reps.Observation, action reps.Action, nextObs *reps.Observation, reward float64) {
	obsKey := obs.Key()
	actionKey := action.Key()
	cur := e.qTable.Get(obsKey, actionKey, 0)
	next := e.qTable.Max(nextObs.Key(), 0)
	e.qTable.Set(obsKey, actionKey, (1-e.alpha)*cur+e.alpha*(reward+e.gamma*next))
}

func (e *EpsGreedyQ) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsGreedyQ) Record(path string) error {
	return e.qTable.Record(path)
}
