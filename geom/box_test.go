package geom

import "testing"

func TestGapLInf(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Box
		wantSign int // -1 negative-or-zero, +1 positive
	}{
		{"disjoint-gap-15", NewBox(0, 0, 5, 5), NewBox(20, 0, 25, 5), +1},
		{"disjoint-gap-7", NewBox(0, 0, 5, 5), NewBox(12, 0, 17, 5), +1},
		{"touching", NewBox(0, 0, 5, 5), NewBox(5, 0, 10, 5), -1},
		{"overlapping", NewBox(0, 0, 5, 5), NewBox(3, 3, 8, 8), -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.a.GapLInf(c.b)
			if c.wantSign > 0 && got <= 0 {
				t.Fatalf("GapLInf = %d, want > 0", got)
			}
			if c.wantSign < 0 && got > 0 {
				t.Fatalf("GapLInf = %d, want <= 0", got)
			}
		})
	}
}

func TestGapLInfExactValues(t *testing.T) {
	a := NewBox(0, 0, 5, 5)
	b := NewBox(20, 0, 25, 5)
	if got := a.GapLInf(b); got != 15 {
		t.Fatalf("gap = %d, want 15", got)
	}
	c := NewBox(12, 0, 17, 5)
	if got := a.GapLInf(c); got != 7 {
		t.Fatalf("gap = %d, want 7", got)
	}
}

func TestHorizontalOrientation(t *testing.T) {
	h := NewBox(0, 0, 100, 5)
	if !h.Horizontal() {
		t.Fatal("expected horizontal")
	}
	v := NewBox(0, 0, 5, 100)
	if v.Horizontal() {
		t.Fatal("expected vertical")
	}
}

func TestEncompassAndExpand(t *testing.T) {
	a := NewBox(0, 0, 5, 5)
	b := NewBox(10, 10, 15, 15)
	u := a.Encompass(b)
	if u != (Box{0, 0, 15, 15}) {
		t.Fatalf("encompass = %+v", u)
	}
	e := a.Expand(2)
	if e != (Box{-2, -2, 7, 7}) {
		t.Fatalf("expand = %+v", e)
	}
}

func TestEquivalent(t *testing.T) {
	a := NewBox(0, 0, 5, 5)
	b := NewBox(0, 0, 5, 5)
	c := NewBox(0, 0, 5, 6)
	if !a.Equivalent(b) {
		t.Fatal("expected equivalent")
	}
	if a.Equivalent(c) {
		t.Fatal("expected not equivalent")
	}
}
