package reps

import (
	"fmt"

	"golang.org/x/exp/rand"

	"pcgrl/grid"
)

// NCA applies a full-map tile assignment simultaneously across all
// cells each step, cellular-automaton style. No cursor, no per-episode
// state beyond the step count the orchestrator already tracks.
type NCA struct {
	cfg       Config
	paintable []grid.Tile
}

type NCAState struct{}

func (NCAState) isRepState() {}

var _ Representation = &NCA{}

func newNCA(cfg Config) (*NCA, error) {
	if cfg.NAgents != 1 {
		return nil, fmt.Errorf("nca representation is single-agent, got %d agents", cfg.NAgents)
	}
	return &NCA{cfg: cfg, paintable: cfg.paintable()}, nil
}

func (n *NCA) Reset(static *grid.Bool, rng *rand.Rand) State {
	return NCAState{}
}

func (n *NCA) Step(g *grid.Grid, action Action, st State, stepIdx int) (*grid.Grid, bool, State) {
	out := g.Clone()
	changed := false
	sub := action[0]
	for y := 0; y < n.cfg.MapH; y++ {
		for x := 0; x < n.cfg.MapW; x++ {
			v := sub[y*n.cfg.MapW+x]
			if v == 0 {
				continue
			}
			tile := n.paintable[v-1]
			if out.At(y, x) != tile {
				out.Set(y, x, tile)
				changed = true
			}
		}
	}
	return out, changed, NCAState{}
}

func (n *NCA) GetObs(g *grid.Grid, static *grid.Bool, st State) *Observation {
	return buildObs(g, static, n.cfg.TileEnum, 0, 0, n.cfg.MapH, n.cfg.MapW, nil)
}

func (n *NCA) ActionSpace() ActionSpace {
	high := make([]int, n.cfg.MapH*n.cfg.MapW)
	for i := range high {
		high[i] = len(n.paintable) + 1
	}
	return ActionSpace{NAgents: 1, High: high}
}

func (n *NCA) ObservationSpace() ObservationSpace {
	return ObservationSpace{
		MapH:     n.cfg.MapH,
		MapW:     n.cfg.MapW,
		Channels: len(n.cfg.TileEnum) + 1,
		FlatLen:  0,
	}
}

func (n *NCA) MaxSteps() int {
	return n.cfg.maxSteps()
}
