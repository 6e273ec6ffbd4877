// Package policies implements action-selection policies over the
// environment's discrete action spaces.
package policies

import (
	"golang.org/x/exp/rand"

	"pcgrl/reps"
	"pcgrl/types"
)

// Random samples actions uniformly from the action space.
type Random struct {
	rng *rand.Rand
}

var _ types.Policy = &Random{}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) NextAction(step int, obs *reps.Observation, space reps.ActionSpace) reps.Action {
	return space.Sample(r.rng)
}

func (r *Random) Update(int, *reps.Observation, reps.Action, *reps.Observation, float64) {}

func (r *Random) Reset() {}

func (r *Random) Record(string) error { return nil }
