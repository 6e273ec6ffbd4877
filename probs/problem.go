// Package probs maps map configurations to statistics and rewards.
package probs

import (
	"fmt"

	"pcgrl/grid"
)

// Kind is the closed enumeration of implemented problems.
type Kind int

const (
	BinaryKind Kind = iota
	DungeonKind
)

func (k Kind) String() string {
	switch k {
	case BinaryKind:
		return "binary"
	case DungeonKind:
		return "dungeon"
	}
	return fmt.Sprintf("problem(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "binary":
		return BinaryKind, nil
	case "dungeon":
		return DungeonKind, nil
	}
	return 0, fmt.Errorf("unknown problem kind %q", s)
}

// State is the last-computed problem statistics plus the artifacts
// needed to rerender and re-reward them.
type State struct {
	// Stats is the statistic vector; Stats[0] is the path length for
	// reachability problems.
	Stats []float64
	// Dist is the distance field from the path start region.
	Dist *grid.Int
	// Path holds the extracted shortest path, padded with sentinel
	// coordinates up to MaxPathLen.
	Path     [][2]int
	Src, Dst [2]int
}

// Problem computes statistics and a reward signal for a map.
type Problem interface {
	// GetStats returns the reward for the transition prev -> current
	// stats, plus the new problem state. A nil prev (reset) yields a
	// neutral reward of zero.
	GetStats(g *grid.Grid, prev *State) (float64, *State)
	// TileEnum is the full tile vocabulary, reserved tiles included.
	TileEnum() []grid.Tile
	// TileProbs gives the sampling weight per tile for initial map
	// generation, aligned with TileEnum.
	TileProbs() []float64
	// MaxPathLen bounds the extracted path buffer.
	MaxPathLen() int
	StatNames() []string
	// CtrlTargets returns the target statistic vector, or nil when the
	// problem rewards raw stat increase.
	CtrlTargets() []float64
}

// New constructs the problem for a kind, failing fast on kinds that are
// enumerated but not implemented.
func New(kind Kind, h, w int, ctrlTargets []float64) (Problem, error) {
	switch kind {
	case BinaryKind:
		return NewBinary(h, w, ctrlTargets)
	case DungeonKind:
		return nil, fmt.Errorf("problem %s not implemented", kind)
	}
	return nil, fmt.Errorf("unknown problem kind %d", int(kind))
}
