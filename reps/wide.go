package reps

import (
	"golang.org/x/exp/rand"

	"pcgrl/grid"
)

// Wide addresses any cell directly: each agent's sub-action is
// (row, col, value) with value zero leaving the cell unchanged. There
// is no persistent cursor, so the representation state is empty.
type Wide struct {
	cfg       Config
	paintable []grid.Tile
}

type WideState struct{}

func (WideState) isRepState() {}

var _ Representation = &Wide{}

func newWide(cfg Config) (*Wide, error) {
	return &Wide{cfg: cfg, paintable: cfg.paintable()}, nil
}

func (w *Wide) Reset(static *grid.Bool, rng *rand.Rand) State {
	return WideState{}
}

func (w *Wide) Step(g *grid.Grid, action Action, st State, stepIdx int) (*grid.Grid, bool, State) {
	out := g.Clone()
	changed := false
	for i := 0; i < w.cfg.NAgents; i++ {
		sub := action[i]
		y := clamp(sub[0], 0, w.cfg.MapH-1)
		x := clamp(sub[1], 0, w.cfg.MapW-1)
		v := sub[2]
		if v == 0 {
			continue
		}
		tile := w.paintable[v-1]
		if out.At(y, x) != tile {
			out.Set(y, x, tile)
			changed = true
		}
	}
	return out, changed, WideState{}
}

func (w *Wide) GetObs(g *grid.Grid, static *grid.Bool, st State) *Observation {
	return buildObs(g, static, w.cfg.TileEnum, 0, 0, w.cfg.MapH, w.cfg.MapW, nil)
}

func (w *Wide) ActionSpace() ActionSpace {
	return ActionSpace{
		NAgents: w.cfg.NAgents,
		High:    []int{w.cfg.MapH, w.cfg.MapW, len(w.paintable) + 1},
	}
}

func (w *Wide) ObservationSpace() ObservationSpace {
	return ObservationSpace{
		MapH:     w.cfg.MapH,
		MapW:     w.cfg.MapW,
		Channels: len(w.cfg.TileEnum) + 1,
		FlatLen:  0,
	}
}

func (w *Wide) MaxSteps() int {
	return w.cfg.maxSteps()
}
