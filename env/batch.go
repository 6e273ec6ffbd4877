package env

import (
	"sync"

	"golang.org/x/exp/rand"

	"pcgrl/reps"
)

// Batch advances many independent episodes of the same environment in
// lockstep. Because reset and step are pure functions of their inputs,
// instances share nothing and run on separate goroutines.
type Batch struct {
	Env    *PCGRLEnv
	States []*State
	Obs    []*reps.Observation
	rngs   []*rand.Rand
}

// NewBatch creates and resets n instances with consecutive seeds.
func NewBatch(e *PCGRLEnv, n int, seed uint64) *Batch {
	b := &Batch{
		Env:    e,
		States: make([]*State, n),
		Obs:    make([]*reps.Observation, n),
		rngs:   make([]*rand.Rand, n),
	}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.rngs[i] = rand.New(rand.NewSource(seed + uint64(i)))
			b.Obs[i], b.States[i] = e.Reset(b.rngs[i])
		}(i)
	}
	wg.Wait()
	return b
}

// Step advances every instance one step with its own action. Instances
// whose episode already ended are reset instead.
func (b *Batch) Step(actions []reps.Action) ([]float64, []bool) {
	rewards := make([]float64, len(b.States))
	dones := make([]bool, len(b.States))
	var wg sync.WaitGroup
	for i := range b.States {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if b.States[i].Done {
				b.Obs[i], b.States[i] = b.Env.Reset(b.rngs[i])
				return
			}
			b.Obs[i], b.States[i], rewards[i], dones[i], _ =
				b.Env.Step(b.rngs[i], b.States[i], actions[i])
		}(i)
	}
	wg.Wait()
	return rewards, dones
}

// SampleActions draws one uniform action per instance from the
// per-instance RNG, keeping instances independent and reproducible.
func (b *Batch) SampleActions() []reps.Action {
	actions := make([]reps.Action, len(b.States))
	for i := range actions {
		actions[i] = b.Env.SampleAction(b.rngs[i])
	}
	return actions
}
