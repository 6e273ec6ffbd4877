package reps

import (
	"testing"

	"golang.org/x/exp/rand"

	"pcgrl/grid"
)

func testConfig(h, w, agents int) Config {
	return Config{
		MapH: h, MapW: w,
		ActH: 1, ActW: 1,
		RfH: 5, RfW: 5,
		TileEnum:      []grid.Tile{grid.Border, grid.Empty, grid.Wall, grid.Path},
		NAgents:       agents,
		MaxBoardScans: 2,
	}
}

func emptyMap(h, w int) *grid.Grid {
	g, _ := grid.New(h, w)
	for i := range g.Cells {
		g.Cells[i] = grid.Empty
	}
	return g
}

func noop(space ActionSpace) Action {
	a := make(Action, space.NAgents)
	for i := range a {
		a[i] = make([]int, space.Len())
	}
	return a
}

func TestNarrowScanWrap(t *testing.T) {
	const h, w = 3, 4
	rep, err := New(NarrowKind, testConfig(h, w, 1))
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	st := rep.Reset(nil, rng)
	g := emptyMap(h, w)

	for i := 0; i < h*w; i++ {
		var changed bool
		g, changed, st = rep.Step(g, noop(rep.ActionSpace()), st, i)
		if changed {
			t.Fatalf("no-op action reported a change at step %d", i)
		}
	}
	ns := st.(NarrowState)
	if ns.Y != 0 || ns.X != 0 {
		t.Errorf("cursor after full scan = (%d, %d), want (0, 0)", ns.Y, ns.X)
	}
	if ns.Scans != 1 {
		t.Errorf("scan count after full scan = %d, want 1", ns.Scans)
	}
}

func TestNarrowChangedFlag(t *testing.T) {
	rep, _ := New(NarrowKind, testConfig(3, 3, 1))
	g := emptyMap(3, 3)
	st := rep.Reset(nil, rand.New(rand.NewSource(1)))

	// Paint wall at the cursor: paintable[1] == Wall, action value 2.
	out, changed, _ := rep.Step(g, Action{{2}}, st, 0)
	if !changed {
		t.Errorf("painting a differing tile must report a change")
	}
	if out.At(0, 0) != grid.Wall {
		t.Errorf("cursor cell = %v, want wall", out.At(0, 0))
	}
	if g.At(0, 0) != grid.Empty {
		t.Errorf("step mutated its input map")
	}

	// Repainting the same tile is not a change.
	same, changed, _ := rep.Step(out, Action{{2}}, NarrowState{}, 1)
	if changed {
		t.Errorf("repainting wall over wall reported a change")
	}
	if !same.Eq(out) {
		t.Errorf("no-op step altered the map")
	}
}

func TestTurtleClampsAtBounds(t *testing.T) {
	rep, _ := New(TurtleKind, testConfig(3, 3, 1))
	g := emptyMap(3, 3)
	st := TurtleState{Pos: [][2]int{{0, 0}}}

	// Move up from the top edge: stays put.
	_, changed, next := rep.Step(g, Action{{0}}, st, 0)
	if changed {
		t.Errorf("move reported a map change")
	}
	if pos := next.(TurtleState).Pos[0]; pos != ([2]int{0, 0}) {
		t.Errorf("cursor = %v, want clamped (0, 0)", pos)
	}

	// Move right then paint a wall (value 4+1).
	_, _, next = rep.Step(g, Action{{3}}, st, 0)
	out, changed, next := rep.Step(g, Action{{5}}, next, 1)
	pos := next.(TurtleState).Pos[0]
	if pos != ([2]int{0, 1}) {
		t.Fatalf("cursor = %v, want (0, 1)", pos)
	}
	if !changed || out.At(0, 1) != grid.Wall {
		t.Errorf("paint at cursor failed: changed=%v tile=%v", changed, out.At(0, 1))
	}
}

func TestMultiTurtleLastAgentWins(t *testing.T) {
	rep, _ := New(TurtleKind, testConfig(3, 3, 2))
	g := emptyMap(3, 3)
	st := TurtleState{Pos: [][2]int{{1, 1}, {1, 1}}}

	// Both agents paint the same cell: agent 0 empty, agent 1 wall.
	out, changed, _ := rep.Step(g, Action{{4}, {5}}, st, 0)
	if !changed {
		t.Errorf("expected a change")
	}
	if out.At(1, 1) != grid.Wall {
		t.Errorf("cell = %v, want last agent's wall", out.At(1, 1))
	}
}

func TestWideWritesAddressedCell(t *testing.T) {
	rep, _ := New(WideKind, testConfig(4, 4, 1))
	g := emptyMap(4, 4)
	st := rep.Reset(nil, rand.New(rand.NewSource(1)))

	out, changed, _ := rep.Step(g, Action{{2, 3, 2}}, st, 0)
	if !changed || out.At(2, 3) != grid.Wall {
		t.Errorf("wide write failed: changed=%v tile=%v", changed, out.At(2, 3))
	}

	// Value zero leaves the cell unchanged.
	same, changed, _ := rep.Step(g, Action{{2, 3, 0}}, st, 0)
	if changed || !same.Eq(g) {
		t.Errorf("wide no-op modified the map")
	}
}

func TestNCAWholeMapUpdate(t *testing.T) {
	rep, _ := New(NCAKind, testConfig(2, 3, 1))
	g := emptyMap(2, 3)
	st := rep.Reset(nil, rand.New(rand.NewSource(1)))

	// Flip every cell to wall simultaneously.
	sub := make([]int, 6)
	for i := range sub {
		sub[i] = 2
	}
	out, changed, _ := rep.Step(g, Action{sub}, st, 0)
	if !changed {
		t.Errorf("full-map rewrite must report a change")
	}
	if out.Count(grid.Wall) != 6 {
		t.Errorf("wall count = %d, want 6", out.Count(grid.Wall))
	}

	// Applying the identical assignment again changes nothing.
	_, changed, _ = rep.Step(out, Action{sub}, st, 1)
	if changed {
		t.Errorf("identical assignment reported a change")
	}
}

func TestObservationShapes(t *testing.T) {
	for _, kind := range []Kind{NarrowKind, TurtleKind, WideKind, NCAKind} {
		rep, err := New(kind, testConfig(4, 5, 1))
		if err != nil {
			t.Fatalf("%v: %v", kind, err)
		}
		rng := rand.New(rand.NewSource(7))
		st := rep.Reset(nil, rng)
		space := rep.ObservationSpace()
		obs := rep.GetObs(emptyMap(4, 5), nil, st)
		if want := space.MapH * space.MapW * space.Channels; len(obs.Map) != want {
			t.Errorf("%v: map obs len = %d, want %d", kind, len(obs.Map), want)
		}
		if len(obs.Flat) != space.FlatLen {
			t.Errorf("%v: flat obs len = %d, want %d", kind, len(obs.Flat), space.FlatLen)
		}
	}
}

func TestObservationWindowPadsWithBorder(t *testing.T) {
	rep, _ := New(NarrowKind, testConfig(4, 4, 1))
	st := rep.Reset(nil, rand.New(rand.NewSource(1)))
	obs := rep.GetObs(emptyMap(4, 4), nil, st)
	// Cursor at (0,0) with a 5x5 window: the top-left window cell is
	// off-map and must read as border (channel 0).
	channels := len(testConfig(4, 4, 1).TileEnum) + 1
	if obs.Map[0*channels+int(grid.Border)] != 1 {
		t.Errorf("off-map window cell not encoded as border")
	}
}

func TestActionSpaceEnumerate(t *testing.T) {
	space := ActionSpace{NAgents: 1, High: []int{2, 3}}
	if !space.Enumerable(6) {
		t.Fatalf("2x3 space should be enumerable within 6")
	}
	if space.Enumerable(5) {
		t.Fatalf("2x3 space should not be enumerable within 5")
	}
	all := space.Enumerate()
	if len(all) != 6 {
		t.Fatalf("enumerated %d sub-actions, want 6", len(all))
	}
	if all[0][0] != 0 || all[0][1] != 0 || all[5][0] != 1 || all[5][1] != 2 {
		t.Errorf("enumeration order broken: %v", all)
	}
}

func TestActionSpaceSampleBounds(t *testing.T) {
	space := ActionSpace{NAgents: 2, High: []int{4, 7}}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		a := space.Sample(rng)
		if len(a) != 2 {
			t.Fatalf("sampled %d agents, want 2", len(a))
		}
		for _, sub := range a {
			for j, v := range sub {
				if v < 0 || v >= space.High[j] {
					t.Fatalf("sample %d out of bounds for element %d", v, j)
				}
			}
		}
	}
}

func TestConstructionErrors(t *testing.T) {
	cfg := testConfig(4, 4, 2)
	if _, err := New(NarrowKind, cfg); err == nil {
		t.Errorf("narrow with 2 agents should fail")
	}
	if _, err := New(NCAKind, cfg); err == nil {
		t.Errorf("nca with 2 agents should fail")
	}
	bad := testConfig(0, 4, 1)
	if _, err := New(WideKind, bad); err == nil {
		t.Errorf("zero map dimension should fail")
	}
	bad = testConfig(4, 4, 1)
	bad.ActH = 0
	if _, err := New(NarrowKind, bad); err == nil {
		t.Errorf("zero action window should fail")
	}
	bad = testConfig(4, 4, 1)
	bad.RfW = -1
	if _, err := New(NarrowKind, bad); err == nil {
		t.Errorf("negative receptive field should fail")
	}
}
