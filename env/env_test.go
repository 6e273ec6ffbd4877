package env

import (
	"testing"

	"golang.org/x/exp/rand"

	"pcgrl/grid"
	"pcgrl/probs"
	"pcgrl/reps"
)

func smallParams(rep reps.Kind) Params {
	p := DefaultParams()
	p.Rep = rep
	p.MapH, p.MapW = 6, 6
	p.RfH, p.RfW = 5, 5
	p.MaxBoardScans = 1
	return p
}

func TestConstructionErrors(t *testing.T) {
	p := DefaultParams()
	p.MapH = 0
	if _, err := New(p); err == nil {
		t.Errorf("zero map height should fail at construction")
	}
	p = DefaultParams()
	p.StaticTileProb = 1.5
	if _, err := New(p); err == nil {
		t.Errorf("probability above 1 should fail at construction")
	}
	p = DefaultParams()
	p.Problem = probs.DungeonKind
	if _, err := New(p); err == nil {
		t.Errorf("unimplemented problem should fail at construction")
	}
	p = DefaultParams()
	p.NFreezies = -1
	if _, err := New(p); err == nil {
		t.Errorf("negative freezie count should fail at construction")
	}
}

func TestResetShapes(t *testing.T) {
	e, err := New(smallParams(reps.NarrowKind))
	if err != nil {
		t.Fatal(err)
	}
	obs, st := e.Reset(rand.New(rand.NewSource(1)))
	if st.Map.H != 6 || st.Map.W != 6 {
		t.Errorf("map shape = (%d, %d), want (6, 6)", st.Map.H, st.Map.W)
	}
	if st.StepIdx != 0 || st.Done {
		t.Errorf("fresh state must start at step 0, not done")
	}
	space := e.ObservationSpace()
	if want := space.MapH * space.MapW * space.Channels; len(obs.Map) != want {
		t.Errorf("obs map len = %d, want %d", len(obs.Map), want)
	}
	if len(obs.Flat) != space.FlatLen {
		t.Errorf("obs flat len = %d, want %d", len(obs.Flat), space.FlatLen)
	}
	for _, tile := range st.Map.Cells {
		if tile != grid.Empty && tile != grid.Wall {
			t.Errorf("sampled reserved tile %v", tile)
		}
	}
}

func TestShapeInvarianceAcrossEpisode(t *testing.T) {
	for _, kind := range []reps.Kind{reps.NarrowKind, reps.TurtleKind, reps.WideKind, reps.NCAKind} {
		e, err := New(smallParams(kind))
		if err != nil {
			t.Fatalf("%v: %v", kind, err)
		}
		rng := rand.New(rand.NewSource(9))
		obs, st := e.Reset(rng)
		space := e.ObservationSpace()
		for i := 0; i < 20; i++ {
			obs, st, _, _, _ = e.Step(rng, st, e.SampleAction(rng))
			if want := space.MapH * space.MapW * space.Channels; len(obs.Map) != want {
				t.Fatalf("%v: obs map len drifted to %d at step %d", kind, len(obs.Map), i)
			}
			if len(obs.Flat) != space.FlatLen {
				t.Fatalf("%v: obs flat len drifted to %d at step %d", kind, len(obs.Flat), i)
			}
			if st.Map.H != 6 || st.Map.W != 6 {
				t.Fatalf("%v: map shape drifted at step %d", kind, i)
			}
		}
	}
}

func TestFrozenTileInvariance(t *testing.T) {
	p := smallParams(reps.WideKind)
	p.StaticTileProb = 0.3
	p.NFreezies = 2
	e, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(4))
	_, st := e.Reset(rng)
	initial := st.Map.Clone()
	staticMask := st.Static

	for i := 0; i < e.MaxSteps(); i++ {
		_, st, _, _, _ = e.Step(rng, st, e.SampleAction(rng))
		for j, frozen := range staticMask.Cells {
			if frozen && st.Map.Cells[j] != initial.Cells[j] {
				t.Fatalf("static cell %d changed at step %d", j, i)
			}
		}
	}
	if staticMask.CountTrue() == 0 {
		t.Fatalf("test map has no static cells, nothing was exercised")
	}
}

func TestNoOpRewardLaw(t *testing.T) {
	e, err := New(smallParams(reps.NarrowKind))
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	_, st := e.Reset(rng)

	noop := reps.Action{{0}}
	_, next, reward, _, info := e.Step(rng, st, noop)
	if info.Changed {
		t.Fatalf("no-op action reported a change")
	}
	if reward != 0 {
		t.Errorf("no-op reward = %v, want exactly 0", reward)
	}
	if next.ProbState != st.ProbState {
		t.Errorf("no-op step must carry the problem state over unchanged")
	}
}

func TestTerminationLaw(t *testing.T) {
	for _, kind := range []reps.Kind{reps.NarrowKind, reps.TurtleKind, reps.WideKind, reps.NCAKind} {
		p := smallParams(kind)
		p.MapH, p.MapW = 3, 3
		e, err := New(p)
		if err != nil {
			t.Fatalf("%v: %v", kind, err)
		}
		rng := rand.New(rand.NewSource(5))
		_, st := e.Reset(rng)
		for i := 0; i < e.MaxSteps(); i++ {
			var done bool
			_, st, _, done, _ = e.Step(rng, st, e.SampleAction(rng))
			wantDone := i == e.MaxSteps()-1
			if done != wantDone {
				t.Fatalf("%v: done = %v at step %d of %d", kind, done, i, e.MaxSteps())
			}
		}
	}
}

func TestDeterminismUnderSeed(t *testing.T) {
	run := func(seed uint64) ([]float64, string) {
		e, err := New(smallParams(reps.TurtleKind))
		if err != nil {
			t.Fatal(err)
		}
		rng := rand.New(rand.NewSource(seed))
		_, st := e.Reset(rng)
		rewards := make([]float64, 0, 20)
		for i := 0; i < 20; i++ {
			var r float64
			_, st, r, _, _ = e.Step(rng, st, e.SampleAction(rng))
			rewards = append(rewards, r)
		}
		return rewards, st.Map.Hash()
	}

	r1, h1 := run(42)
	r2, h2 := run(42)
	if h1 != h2 {
		t.Fatalf("same seed produced different maps")
	}
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Fatalf("same seed produced different reward at step %d: %v vs %v", i, r1[i], r2[i])
		}
	}
	_, h3 := run(43)
	if h1 == h3 {
		t.Errorf("different seeds produced identical rollouts")
	}
}

func TestStepDoesNotMutateInputState(t *testing.T) {
	e, err := New(smallParams(reps.NCAKind))
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(11))
	_, st := e.Reset(rng)
	before := st.Map.Clone()
	_, next, _, _, _ := e.Step(rng, st, e.SampleAction(rng))
	if !st.Map.Eq(before) {
		t.Errorf("step mutated the previous state's map")
	}
	if next == st {
		t.Errorf("step must return a replacement state value")
	}
}

func TestStaticMaskGeneration(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	static := genStaticTiles(rng, 0, 3, 16, 16)
	if static.CountTrue() == 0 {
		t.Errorf("freezie generation produced an empty mask")
	}
	if static.CountTrue() == 16*16 {
		t.Errorf("freezie blobs covered the whole map")
	}

	none := genStaticTiles(rng, 0, 0, 8, 8)
	if none.CountTrue() != 0 {
		t.Errorf("zero probability and zero freezies should give an empty mask")
	}
}

func TestBatchIndependence(t *testing.T) {
	e, err := New(smallParams(reps.NarrowKind))
	if err != nil {
		t.Fatal(err)
	}
	b := NewBatch(e, 4, 100)
	h0 := b.States[0].Map.Hash()
	h1 := b.States[1].Map.Hash()
	if h0 == h1 {
		t.Errorf("differently seeded instances produced identical maps")
	}
	for i := 0; i < 5; i++ {
		b.Step(b.SampleActions())
	}

	// The same batch seed reproduces the same trajectories.
	c := NewBatch(e, 4, 100)
	for i := 0; i < 5; i++ {
		c.Step(c.SampleActions())
	}
	for i := range b.States {
		if b.States[i].Map.Hash() != c.States[i].Map.Hash() {
			t.Fatalf("batch instance %d diverged under identical seeding", i)
		}
	}
}
