package probs

import (
	"fmt"

	"pcgrl/grid"
	"pcgrl/pathfinding"
)

// Binary is the maze problem: the statistic is the longest shortest
// path between empty cells, and reward tracks its growth (or its
// approach to a control target when one is configured).
type Binary struct {
	h, w        int
	ctrlTargets []float64
}

var _ Problem = &Binary{}

func NewBinary(h, w int, ctrlTargets []float64) (*Binary, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("invalid map shape (%d, %d)", h, w)
	}
	if ctrlTargets != nil && len(ctrlTargets) != 1 {
		return nil, fmt.Errorf("binary problem has 1 statistic, got %d control targets", len(ctrlTargets))
	}
	return &Binary{h: h, w: w, ctrlTargets: ctrlTargets}, nil
}

func (b *Binary) TileEnum() []grid.Tile {
	return []grid.Tile{grid.Border, grid.Empty, grid.Wall, grid.Path}
}

func (b *Binary) TileProbs() []float64 {
	// Reserved tiles never appear in sampled maps.
	return []float64{0.0, 0.5, 0.5, 0.0}
}

func (b *Binary) MaxPathLen() int {
	return b.h * b.w
}

func (b *Binary) StatNames() []string {
	return []string{"path_length"}
}

func (b *Binary) CtrlTargets() []float64 {
	return b.ctrlTargets
}

func (b *Binary) GetStats(g *grid.Grid, prev *State) (float64, *State) {
	d, dist, src, dst := pathfinding.Diameter(g, passable)
	pathLen := 0.0
	if d != pathfinding.Unreachable {
		pathLen = float64(d)
	}
	state := &State{
		Stats: []float64{pathLen},
		Dist:  dist,
		Path:  pathfinding.PathCoords(dist, dst[0], dst[1], b.MaxPathLen()),
		Src:   src,
		Dst:   dst,
	}
	if prev == nil {
		return 0, state
	}
	return b.reward(prev.Stats, state.Stats), state
}

// reward is the signed stat change, or the reduction in distance to the
// control targets when those are set.
func (b *Binary) reward(prev, cur []float64) float64 {
	r := 0.0
	for i := range cur {
		if b.ctrlTargets != nil {
			r += abs(prev[i]-b.ctrlTargets[i]) - abs(cur[i]-b.ctrlTargets[i])
		} else {
			r += cur[i] - prev[i]
		}
	}
	return r
}

func passable(t grid.Tile) bool {
	return t == grid.Empty
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
