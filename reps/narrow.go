package reps

import (
	"fmt"

	"golang.org/x/exp/rand"

	"pcgrl/grid"
)

// Narrow targets the cells under a cursor that advances in raster
// order, wrapping to (0, 0) after the last cell and counting one board
// scan per wrap.
type Narrow struct {
	cfg       Config
	paintable []grid.Tile
}

// NarrowState is the raster cursor plus the completed scan count.
type NarrowState struct {
	Y, X  int
	Scans int
}

func (NarrowState) isRepState() {}

func (s NarrowState) Positions() [][2]int {
	return [][2]int{{s.Y, s.X}}
}

var _ Representation = &Narrow{}
var _ Positioned = NarrowState{}

func newNarrow(cfg Config) (*Narrow, error) {
	if cfg.NAgents != 1 {
		return nil, fmt.Errorf("narrow representation is single-agent, got %d agents", cfg.NAgents)
	}
	return &Narrow{cfg: cfg, paintable: cfg.paintable()}, nil
}

func (n *Narrow) Reset(static *grid.Bool, rng *rand.Rand) State {
	return NarrowState{}
}

func (n *Narrow) Step(g *grid.Grid, action Action, st State, stepIdx int) (*grid.Grid, bool, State) {
	ns := st.(NarrowState)
	out := g.Clone()
	changed := false

	sub := action[0]
	for wy := 0; wy < n.cfg.ActH; wy++ {
		for wx := 0; wx < n.cfg.ActW; wx++ {
			v := sub[wy*n.cfg.ActW+wx]
			if v == 0 { // leave unchanged
				continue
			}
			y, x := ns.Y+wy, ns.X+wx
			if !out.InBounds(y, x) {
				continue
			}
			tile := n.paintable[v-1]
			if out.At(y, x) != tile {
				out.Set(y, x, tile)
				changed = true
			}
		}
	}

	next := NarrowState{Y: ns.Y, X: ns.X + 1, Scans: ns.Scans}
	if next.X == n.cfg.MapW {
		next.X = 0
		next.Y++
		if next.Y == n.cfg.MapH {
			next.Y = 0
			next.Scans++
		}
	}
	return out, changed, next
}

func (n *Narrow) GetObs(g *grid.Grid, static *grid.Bool, st State) *Observation {
	ns := st.(NarrowState)
	flat := []float64{
		float64(ns.Y) / float64(n.cfg.MapH),
		float64(ns.X) / float64(n.cfg.MapW),
		float64(ns.Scans) / n.cfg.MaxBoardScans,
	}
	return buildObs(g, static, n.cfg.TileEnum,
		ns.Y-n.cfg.RfH/2, ns.X-n.cfg.RfW/2, n.cfg.RfH, n.cfg.RfW, flat)
}

func (n *Narrow) ActionSpace() ActionSpace {
	high := make([]int, n.cfg.ActH*n.cfg.ActW)
	for i := range high {
		high[i] = len(n.paintable) + 1
	}
	return ActionSpace{NAgents: 1, High: high}
}

func (n *Narrow) ObservationSpace() ObservationSpace {
	return ObservationSpace{
		MapH:     n.cfg.RfH,
		MapW:     n.cfg.RfW,
		Channels: len(n.cfg.TileEnum) + 1,
		FlatLen:  3,
	}
}

func (n *Narrow) MaxSteps() int {
	return n.cfg.maxSteps()
}
