package render

import (
	"testing"

	"golang.org/x/exp/rand"

	"pcgrl/env"
	"pcgrl/reps"
)

func TestMapSizeAndBorder(t *testing.T) {
	p := env.DefaultParams()
	p.MapH, p.MapW = 8, 8
	p.Rep = reps.TurtleKind
	p.StaticTileProb = 0.2
	e, err := env.New(p)
	if err != nil {
		t.Fatal(err)
	}
	_, st := e.Reset(rand.New(rand.NewSource(1)))

	img := Map(st, DefaultTileSize)
	wantEdge := (8 + 2) * DefaultTileSize
	if img.Bounds().Dx() != wantEdge || img.Bounds().Dy() != wantEdge {
		t.Fatalf("image bounds %v, want %dx%d", img.Bounds(), wantEdge, wantEdge)
	}
	// Top-left pixel sits in the border frame.
	if got := img.RGBAAt(0, 0); got != tileColors[0] {
		t.Errorf("border pixel = %v, want %v", got, tileColors[0])
	}
}

func TestMapIsPureOfState(t *testing.T) {
	p := env.DefaultParams()
	p.MapH, p.MapW = 6, 6
	e, err := env.New(p)
	if err != nil {
		t.Fatal(err)
	}
	_, st := e.Reset(rand.New(rand.NewSource(3)))
	a := Map(st, 8)
	b := Map(st, 8)
	if len(a.Pix) != len(b.Pix) {
		t.Fatal("pixel buffers differ in size")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("rendering the same state twice differed at pixel byte %d", i)
		}
	}
}
