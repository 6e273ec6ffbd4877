package types

import (
	"pcgrl/grid"
	"pcgrl/reps"
)

// Step records one environment transition.
type Step struct {
	Action  reps.Action `json:"action"`
	Reward  float64     `json:"reward"`
	Changed bool        `json:"changed"`
	Stats   []float64   `json:"stats"`
	// Edits lists the coordinates the step actually modified, after
	// the static overlay.
	Edits [][2]int `json:"edits,omitempty"`
}

// Trace of an episode as an ordered list of transitions.
type Trace struct {
	Seed     uint64  `json:"seed"`
	Steps    []*Step `json:"steps"`
	FinalMap string  `json:"final_map"`
}

func NewTrace(seed uint64) *Trace {
	return &Trace{Seed: seed, Steps: make([]*Step, 0)}
}

func (t *Trace) Append(s *Step) {
	t.Steps = append(t.Steps, s)
}

func (t *Trace) Len() int {
	return len(t.Steps)
}

func (t *Trace) Get(i int) (*Step, bool) {
	if i < 0 || i >= len(t.Steps) {
		return nil, false
	}
	return t.Steps[i], true
}

func (t *Trace) Last() (*Step, bool) {
	if len(t.Steps) == 0 {
		return nil, false
	}
	return t.Steps[len(t.Steps)-1], true
}

// TotalReward sums the rewards along the trace.
func (t *Trace) TotalReward() float64 {
	total := 0.0
	for _, s := range t.Steps {
		total += s.Reward
	}
	return total
}

// diffEdits lists the cells where the two maps differ.
func diffEdits(prev, next *grid.Grid) [][2]int {
	var edits [][2]int
	for i := range prev.Cells {
		if prev.Cells[i] != next.Cells[i] {
			edits = append(edits, [2]int{i / prev.W, i % prev.W})
		}
	}
	return edits
}
