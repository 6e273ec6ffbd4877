package reps

import (
	"golang.org/x/exp/rand"

	"pcgrl/grid"
)

// Turtle moves one or more cursors around the map with discrete
// move/paint commands. Cursor positions clamp at map bounds. With more
// than one agent every cursor steps in the same call; collisions are
// allowed and later agents win ties.
type Turtle struct {
	cfg       Config
	paintable []grid.Tile
}

// Moves in sub-action order: up, down, left, right. Values past the
// moves paint the cell under the cursor.
var turtleMoves = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// TurtleState holds every agent's cursor, in agent-index order.
type TurtleState struct {
	Pos [][2]int
}

func (TurtleState) isRepState() {}

func (s TurtleState) Positions() [][2]int {
	out := make([][2]int, len(s.Pos))
	copy(out, s.Pos)
	return out
}

var _ Representation = &Turtle{}
var _ Positioned = TurtleState{}

func newTurtle(cfg Config) (*Turtle, error) {
	return &Turtle{cfg: cfg, paintable: cfg.paintable()}, nil
}

func (t *Turtle) Reset(static *grid.Bool, rng *rand.Rand) State {
	pos := make([][2]int, t.cfg.NAgents)
	for i := range pos {
		pos[i] = [2]int{rng.Intn(t.cfg.MapH), rng.Intn(t.cfg.MapW)}
	}
	return TurtleState{Pos: pos}
}

func (t *Turtle) Step(g *grid.Grid, action Action, st State, stepIdx int) (*grid.Grid, bool, State) {
	ts := st.(TurtleState)
	out := g.Clone()
	pos := make([][2]int, len(ts.Pos))
	copy(pos, ts.Pos)
	changed := false

	for i := range pos {
		v := action[i][0]
		if v < len(turtleMoves) {
			y := clamp(pos[i][0]+turtleMoves[v][0], 0, t.cfg.MapH-1)
			x := clamp(pos[i][1]+turtleMoves[v][1], 0, t.cfg.MapW-1)
			pos[i] = [2]int{y, x}
			continue
		}
		tile := t.paintable[v-len(turtleMoves)]
		if out.At(pos[i][0], pos[i][1]) != tile {
			out.Set(pos[i][0], pos[i][1], tile)
			changed = true
		}
	}
	return out, changed, TurtleState{Pos: pos}
}

func (t *Turtle) GetObs(g *grid.Grid, static *grid.Bool, st State) *Observation {
	ts := st.(TurtleState)
	flat := make([]float64, 0, 2*t.cfg.NAgents)
	for _, p := range ts.Pos {
		flat = append(flat,
			float64(p[0])/float64(t.cfg.MapH),
			float64(p[1])/float64(t.cfg.MapW))
	}
	// The window follows the first agent; the flat vector locates the
	// rest.
	return buildObs(g, static, t.cfg.TileEnum,
		ts.Pos[0][0]-t.cfg.RfH/2, ts.Pos[0][1]-t.cfg.RfW/2,
		t.cfg.RfH, t.cfg.RfW, flat)
}

func (t *Turtle) ActionSpace() ActionSpace {
	return ActionSpace{
		NAgents: t.cfg.NAgents,
		High:    []int{len(turtleMoves) + len(t.paintable)},
	}
}

func (t *Turtle) ObservationSpace() ObservationSpace {
	return ObservationSpace{
		MapH:     t.cfg.RfH,
		MapW:     t.cfg.RfW,
		Channels: len(t.cfg.TileEnum) + 1,
		FlatLen:  2 * t.cfg.NAgents,
	}
}

func (t *Turtle) MaxSteps() int {
	return t.cfg.maxSteps()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
