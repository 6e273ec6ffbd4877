// Package env ties the tile vocabulary, problem and representation
// together behind a purely functional reset/step contract: given the
// same inputs and seed, both return identical outputs, so many episodes
// can be advanced in parallel with no shared state.
package env

import (
	"fmt"

	"golang.org/x/exp/rand"

	"pcgrl/grid"
	"pcgrl/probs"
	"pcgrl/reps"
)

// Params is the immutable construction record for an environment.
type Params struct {
	Problem        probs.Kind
	Rep            reps.Kind
	MapH, MapW     int
	ActH, ActW     int
	RfH, RfW       int
	StaticTileProb float64
	NFreezies      int
	NAgents        int
	MaxBoardScans  float64
	// CtrlTargets switches the problem to controllable mode when set.
	CtrlTargets []float64
}

func DefaultParams() Params {
	return Params{
		Problem:       probs.BinaryKind,
		Rep:           reps.NarrowKind,
		MapH:          16,
		MapW:          16,
		ActH:          1,
		ActW:          1,
		RfH:           31,
		RfW:           31,
		NAgents:       1,
		MaxBoardScans: 3,
	}
}

// State is the complete episode state, replaced wholesale each step.
type State struct {
	Map       *grid.Grid
	Static    *grid.Bool
	RepState  reps.State
	ProbState *probs.State
	StepIdx   int
	Reward    float64
	Done      bool
}

// Info carries per-step diagnostics alongside the reward.
type Info struct {
	Changed bool
	Stats   []float64
}

// PCGRLEnv is the environment orchestrator. The struct itself is
// immutable after construction; all episode state lives in State
// values.
type PCGRLEnv struct {
	params    Params
	prob      probs.Problem
	rep       reps.Representation
	tileEnum  []grid.Tile
	tileProbs []float64
	maxSteps  int
}

// New validates the configuration and wires the problem and
// representation. All configuration errors surface here, never at step
// time.
func New(params Params) (*PCGRLEnv, error) {
	if params.MapH <= 0 || params.MapW <= 0 {
		return nil, fmt.Errorf("invalid map shape (%d, %d)", params.MapH, params.MapW)
	}
	if params.StaticTileProb < 0 || params.StaticTileProb > 1 {
		return nil, fmt.Errorf("static tile probability %v outside [0, 1]", params.StaticTileProb)
	}
	if params.NFreezies < 0 {
		return nil, fmt.Errorf("invalid freezie count %d", params.NFreezies)
	}

	prob, err := probs.New(params.Problem, params.MapH, params.MapW, params.CtrlTargets)
	if err != nil {
		return nil, err
	}
	rep, err := reps.New(params.Rep, reps.Config{
		MapH: params.MapH, MapW: params.MapW,
		ActH: params.ActH, ActW: params.ActW,
		RfH: params.RfH, RfW: params.RfW,
		TileEnum:      prob.TileEnum(),
		NAgents:       params.NAgents,
		MaxBoardScans: params.MaxBoardScans,
	})
	if err != nil {
		return nil, err
	}
	return &PCGRLEnv{
		params:    params,
		prob:      prob,
		rep:       rep,
		tileEnum:  prob.TileEnum(),
		tileProbs: prob.TileProbs(),
		maxSteps:  rep.MaxSteps(),
	}, nil
}

func (e *PCGRLEnv) Params() Params           { return e.params }
func (e *PCGRLEnv) Problem() probs.Problem   { return e.prob }
func (e *PCGRLEnv) Rep() reps.Representation { return e.rep }
func (e *PCGRLEnv) MaxSteps() int            { return e.maxSteps }

func (e *PCGRLEnv) ActionSpace() reps.ActionSpace {
	return e.rep.ActionSpace()
}

// ObservationSpace extends the representation's space with the
// problem's control-target deltas appended to the flat vector.
func (e *PCGRLEnv) ObservationSpace() reps.ObservationSpace {
	space := e.rep.ObservationSpace()
	space.FlatLen += len(e.prob.CtrlTargets())
	return space
}

// Reset samples a fresh map and static mask, resets the representation
// and computes initial problem stats.
func (e *PCGRLEnv) Reset(rng *rand.Rand) (*reps.Observation, *State) {
	envMap := genInitMap(rng, e.tileEnum, e.tileProbs, e.params.MapH, e.params.MapW)
	static := genStaticTiles(rng, e.params.StaticTileProb, e.params.NFreezies,
		e.params.MapH, e.params.MapW)
	repState := e.rep.Reset(static, rng)
	_, probState := e.prob.GetStats(envMap, nil)

	state := &State{
		Map:       envMap,
		Static:    static,
		RepState:  repState,
		ProbState: probState,
	}
	return e.observe(state), state
}

// Step applies one action: the representation produces a candidate map,
// frozen tiles are restored, and problem stats are recomputed only when
// the map changed. A no-op step carries the previous stats and rewards
// exactly zero. After the step budget is exhausted further steps are
// undefined; callers must reset.
func (e *PCGRLEnv) Step(rng *rand.Rand, st *State, action reps.Action) (*reps.Observation, *State, float64, bool, Info) {
	envMap, changed, repState := e.rep.Step(st.Map, action, st.RepState, st.StepIdx)

	// The static overlay always wins over representation edits.
	for i, frozen := range st.Static.Cells {
		if frozen {
			envMap.Cells[i] = st.Map.Cells[i]
		}
	}

	reward := 0.0
	probState := st.ProbState
	if changed {
		reward, probState = e.prob.GetStats(envMap, st.ProbState)
	}

	done := st.StepIdx >= e.maxSteps-1
	next := &State{
		Map:       envMap,
		Static:    st.Static,
		RepState:  repState,
		ProbState: probState,
		StepIdx:   st.StepIdx + 1,
		Reward:    reward,
		Done:      done,
	}
	info := Info{Changed: changed, Stats: probState.Stats}
	return e.observe(next), next, reward, done, info
}

// SampleAction draws a uniform random action from the action space.
func (e *PCGRLEnv) SampleAction(rng *rand.Rand) reps.Action {
	return e.rep.ActionSpace().Sample(rng)
}

// observe builds the representation observation and appends the
// control-target deltas to the flat vector.
func (e *PCGRLEnv) observe(st *State) *reps.Observation {
	obs := e.rep.GetObs(st.Map, st.Static, st.RepState)
	trgs := e.prob.CtrlTargets()
	if len(trgs) == 0 {
		return obs
	}
	norm := float64(e.prob.MaxPathLen())
	for i, trg := range trgs {
		obs.Flat = append(obs.Flat, (trg-st.ProbState.Stats[i])/norm)
	}
	return obs
}
