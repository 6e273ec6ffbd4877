package types

import (
	"golang.org/x/exp/rand"

	"pcgrl/env"
)

type AgentConfig struct {
	Episodes int
	Policy   Policy
	Env      *env.PCGRLEnv
	// Seed offsets the per-episode RNG so every episode is independent
	// and the whole run replays exactly under the same seed.
	Seed uint64
}

// Agent runs a policy against an environment for a number of episodes.
type Agent struct {
	config *AgentConfig
	traces []*Trace
}

func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config: config,
		traces: make([]*Trace, config.Episodes),
	}
}

// Run the agent for the configured number of episodes and return the
// resulting traces.
func (a *Agent) Run() []*Trace {
	for i := 0; i < a.config.Episodes; i++ {
		a.traces[i] = a.RunEpisode(i)
	}
	return a.traces
}

// RunEpisode plays out one full episode, horizon bounded by the
// representation's step budget.
func (a *Agent) RunEpisode(episode int) *Trace {
	e := a.config.Env
	seed := a.config.Seed + uint64(episode)
	rng := rand.New(rand.NewSource(seed))

	obs, state := e.Reset(rng)
	trace := NewTrace(seed)
	space := e.ActionSpace()

	for i := 0; i < e.MaxSteps(); i++ {
		action := a.config.Policy.NextAction(i, obs, space)
		nextObs, nextState, reward, done, info := e.Step(rng, state, action)
		a.config.Policy.Update(i, obs, action, nextObs, reward)

		trace.Append(&Step{
			Action:  action,
			Reward:  reward,
			Changed: info.Changed,
			Stats:   info.Stats,
			Edits:   diffEdits(state.Map, nextState.Map),
		})
		obs, state = nextObs, nextState
		if done {
			break
		}
	}
	trace.FinalMap = state.Map.Hash()
	return trace
}
