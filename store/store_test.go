package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path"
	"testing"

	"pcgrl/types"
)

func TestJSONLSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONLSink(dir)

	trace := types.NewTrace(7)
	trace.Append(&types.Step{Reward: 2, Changed: true, Stats: []float64{5}})
	trace.Append(&types.Step{Reward: 0, Changed: false})
	trace.FinalMap = "1122"

	if err := sink.Append("exp", 0, trace); err != nil {
		t.Fatal(err)
	}
	if err := sink.Append("exp", 0, trace); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path.Join(dir, "traces", "exp_0.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var got types.Trace
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
		if got.Seed != 7 || got.FinalMap != "1122" || len(got.Steps) != 2 {
			t.Errorf("round-tripped trace mismatch: %+v", got)
		}
		if got.Steps[0].Reward != 2 || !got.Steps[0].Changed {
			t.Errorf("round-tripped step mismatch: %+v", got.Steps[0])
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("jsonl has %d lines, want 2", lines)
	}
}
