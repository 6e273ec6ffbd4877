package policies

import (
	"encoding/json"

	"pcgrl/util"
)

// QTable maps observation keys to per-action values.
type QTable struct {
	Table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{Table: make(map[string]map[string]float64)}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if actions, ok := q.Table[state]; ok {
		if v, ok := actions[action]; ok {
			return v
		}
	}
	return def
}

func (q *QTable) Set(state, action string, v float64) {
	if _, ok := q.Table[state]; !ok {
		q.Table[state] = make(map[string]float64)
	}
	q.Table[state][action] = v
}

// Max returns the largest value recorded for the state, or def when
// the state is unseen.
func (q *QTable) Max(state string, def float64) float64 {
	actions, ok := q.Table[state]
	if !ok || len(actions) == 0 {
		return def
	}
	first := true
	max := def
	for _, v := range actions {
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

// Record dumps the table as JSON to the given path.
func (q *QTable) Record(path string) error {
	bs, err := json.Marshal(q.Table)
	if err != nil {
		return err
	}
	return util.WriteToFile(path+".json", string(bs))
}
