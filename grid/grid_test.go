package grid

import "testing"

func TestNewRejectsDegenerateShapes(t *testing.T) {
	for _, shape := range [][2]int{{0, 4}, {4, 0}, {-1, 4}, {4, -3}} {
		if _, err := New(shape[0], shape[1]); err == nil {
			t.Errorf("expected error for shape %v", shape)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := New(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(1, 2, Wall)
	c := g.Clone()
	c.Set(1, 2, Empty)
	if g.At(1, 2) != Wall {
		t.Errorf("clone write leaked into original")
	}
	if c.At(1, 2) != Empty {
		t.Errorf("clone write lost")
	}
}

func TestHashDistinguishesMaps(t *testing.T) {
	g, _ := New(2, 2)
	o := g.Clone()
	o.Set(0, 0, Wall)
	if g.Hash() == o.Hash() {
		t.Errorf("different maps hash to the same key")
	}
	if !g.Eq(g.Clone()) {
		t.Errorf("clone not equal to original")
	}
}

func TestPaintable(t *testing.T) {
	if Border.Paintable() || Path.Paintable() {
		t.Errorf("reserved tiles must not be paintable")
	}
	if !Empty.Paintable() || !Wall.Paintable() {
		t.Errorf("empty and wall must be paintable")
	}
}
