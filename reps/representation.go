// Package reps defines how agent actions edit the map and what the
// agent observes. Each representation is a stateless policy over
// explicit state values: reset and step return replacement state
// records instead of mutating anything in place.
package reps

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"pcgrl/grid"
)

// Kind is the closed enumeration of implemented representations.
type Kind int

const (
	NarrowKind Kind = iota
	TurtleKind
	WideKind
	NCAKind
)

func (k Kind) String() string {
	switch k {
	case NarrowKind:
		return "narrow"
	case TurtleKind:
		return "turtle"
	case WideKind:
		return "wide"
	case NCAKind:
		return "nca"
	}
	return fmt.Sprintf("representation(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "narrow":
		return NarrowKind, nil
	case "turtle":
		return TurtleKind, nil
	case "wide":
		return WideKind, nil
	case "nca":
		return NCAKind, nil
	}
	return 0, fmt.Errorf("unknown representation kind %q", s)
}

// State is the representation-specific episode state. Implementations
// are immutable-by-replacement values.
type State interface {
	isRepState()
}

// Positioned is implemented by states that expose agent cursors, for
// rendering overlays.
type Positioned interface {
	Positions() [][2]int
}

// Action always carries a leading agent axis, size 1 for single-agent
// configurations. Each sub-action is a flat int vector whose layout and
// bounds are reported by the representation's ActionSpace.
type Action [][]int

// Key returns a deterministic string key for tabular policies.
func (a Action) Key() string {
	var sb strings.Builder
	for i, sub := range a {
		if i > 0 {
			sb.WriteByte('|')
		}
		for j, v := range sub {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

// ActionSpace describes the per-agent discrete sub-action: High[i] is
// the exclusive upper bound of element i.
type ActionSpace struct {
	NAgents int
	High    []int
}

// Len is the length of one agent's sub-action vector.
func (s ActionSpace) Len() int {
	return len(s.High)
}

// Sample draws a uniform action, one sub-action per agent.
func (s ActionSpace) Sample(rng *rand.Rand) Action {
	a := make(Action, s.NAgents)
	for i := range a {
		sub := make([]int, len(s.High))
		for j, h := range s.High {
			sub[j] = rng.Intn(h)
		}
		a[i] = sub
	}
	return a
}

// Enumerable reports whether the single-agent sub-action space has at
// most limit elements.
func (s ActionSpace) Enumerable(limit int) bool {
	n := 1
	for _, h := range s.High {
		n *= h
		if n > limit {
			return false
		}
	}
	return true
}

// Enumerate lists every sub-action in lexicographic order. Callers
// should check Enumerable first; the space grows as the product of the
// element bounds.
func (s ActionSpace) Enumerate() [][]int {
	total := 1
	for _, h := range s.High {
		total *= h
	}
	out := make([][]int, 0, total)
	cur := make([]int, len(s.High))
	for {
		sub := make([]int, len(cur))
		copy(sub, cur)
		out = append(out, sub)
		i := len(cur) - 1
		for ; i >= 0; i-- {
			cur[i]++
			if cur[i] < s.High[i] {
				break
			}
			cur[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

// ObservationSpace declares the exact shapes GetObs produces.
type ObservationSpace struct {
	MapH, MapW, Channels int
	FlatLen              int
}

// Observation bundles the one-hot spatial window with a flat vector of
// auxiliary scalars.
type Observation struct {
	Map  []float64 // (MapH, MapW, Channels), row-major, channel-minor
	Flat []float64
}

// Key returns a deterministic string key for tabular policies.
func (o *Observation) Key() string {
	var sb strings.Builder
	sb.Grow(len(o.Map) + 8*len(o.Flat))
	for _, v := range o.Map {
		if v > 0.5 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	for _, v := range o.Flat {
		sb.WriteByte(';')
		sb.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
	}
	return sb.String()
}

// Representation translates low-dimensional actions into map edits.
type Representation interface {
	Reset(static *grid.Bool, rng *rand.Rand) State
	// Step applies the action to a copy of the map and returns the
	// candidate map, whether it differs from the input, and the
	// replacement representation state. It never mutates its inputs.
	Step(g *grid.Grid, action Action, st State, stepIdx int) (*grid.Grid, bool, State)
	GetObs(g *grid.Grid, static *grid.Bool, st State) *Observation
	ActionSpace() ActionSpace
	ObservationSpace() ObservationSpace
	// MaxSteps is the episode step budget.
	MaxSteps() int
}

// Config is the immutable construction record shared by all kinds.
type Config struct {
	MapH, MapW    int
	ActH, ActW    int
	RfH, RfW      int
	TileEnum      []grid.Tile
	NAgents       int
	MaxBoardScans float64
}

func (c Config) validate() error {
	if c.MapH <= 0 || c.MapW <= 0 {
		return fmt.Errorf("invalid map shape (%d, %d)", c.MapH, c.MapW)
	}
	if c.ActH <= 0 || c.ActW <= 0 || c.ActH > c.MapH || c.ActW > c.MapW {
		return fmt.Errorf("invalid action window shape (%d, %d)", c.ActH, c.ActW)
	}
	if c.RfH <= 0 || c.RfW <= 0 {
		return fmt.Errorf("invalid receptive field shape (%d, %d)", c.RfH, c.RfW)
	}
	if c.NAgents < 1 {
		return fmt.Errorf("invalid agent count %d", c.NAgents)
	}
	if c.MaxBoardScans <= 0 {
		return fmt.Errorf("invalid max board scans %v", c.MaxBoardScans)
	}
	if len(c.paintable()) == 0 {
		return fmt.Errorf("tile enum has no paintable tiles")
	}
	return nil
}

// paintable lists the tiles an action may write, in enum order.
func (c Config) paintable() []grid.Tile {
	out := make([]grid.Tile, 0, len(c.TileEnum))
	for _, t := range c.TileEnum {
		if t.Paintable() {
			out = append(out, t)
		}
	}
	return out
}

// maxSteps guarantees enough steps to traverse the map a bounded number
// of times, for every representation kind.
func (c Config) maxSteps() int {
	return int(c.MaxBoardScans * float64(c.MapH*c.MapW))
}

// New constructs the representation for a kind. Turtle configurations
// with more than one agent get the multi-agent variant.
func New(kind Kind, cfg Config) (Representation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	switch kind {
	case NarrowKind:
		return newNarrow(cfg)
	case TurtleKind:
		return newTurtle(cfg)
	case WideKind:
		return newWide(cfg)
	case NCAKind:
		return newNCA(cfg)
	}
	return nil, fmt.Errorf("unknown representation kind %d", int(kind))
}

// buildObs assembles the one-hot window of the map (plus a static-mask
// channel) with the window's top-left corner at (originY, originX).
// Cells outside the map read as Border.
func buildObs(g *grid.Grid, static *grid.Bool, tileEnum []grid.Tile, originY, originX, winH, winW int, flat []float64) *Observation {
	channels := len(tileEnum) + 1
	obs := make([]float64, winH*winW*channels)
	for wy := 0; wy < winH; wy++ {
		for wx := 0; wx < winW; wx++ {
			y, x := originY+wy, originX+wx
			tile := grid.Border
			staticHere := false
			if g.InBounds(y, x) {
				tile = g.At(y, x)
				if static != nil {
					staticHere = static.At(y, x)
				}
			}
			base := (wy*winW + wx) * channels
			obs[base+int(tile)] = 1
			if staticHere {
				obs[base+channels-1] = 1
			}
		}
	}
	return &Observation{Map: obs, Flat: flat}
}
