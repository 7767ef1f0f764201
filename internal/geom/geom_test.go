package geom

import "testing"

func TestInsetDisabled(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 100}
	g := Gaps{OuterH: 10, OuterV: 10, Enabled: false}
	if got := r.Inset(g); !got.Equal(r) {
		t.Fatalf("Inset with Enabled=false changed the rect: got %+v", got)
	}
}

func TestInsetShrinksBothSides(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 100}
	g := Gaps{OuterH: 10, OuterV: 5, Enabled: true}
	got := r.Inset(g)
	want := Rect{X: 10, Y: 5, W: 80, H: 90}
	if !got.Equal(want) {
		t.Fatalf("Inset() = %+v, want %+v", got, want)
	}
}

func TestInsetClampsToZero(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	g := Gaps{OuterH: 20, OuterV: 20, Enabled: true}
	got := r.Inset(g)
	if got.W != 0 || got.H != 0 {
		t.Fatalf("Inset() with oversized gap = %+v, want zero size", got)
	}
}

func TestCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	x, y := r.Center()
	if x != 60 || y != 45 {
		t.Fatalf("Center() = (%d, %d), want (60, 45)", x, y)
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		x, y int32
		want bool
	}{
		{0, 0, true},
		{9, 9, true},
		{10, 10, false},
		{-1, 0, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestClampShrinksOversizedRect(t *testing.T) {
	bound := Rect{X: 0, Y: 0, W: 1920, H: 1080}
	r := Rect{X: 1800, Y: 1000, W: 500, H: 500}
	got := r.Clamp(bound)
	if got.X+int32(got.W) > bound.X+int32(bound.W) {
		t.Fatalf("Clamp() escapes bound on X axis: %+v", got)
	}
	if got.Y+int32(got.H) > bound.Y+int32(bound.H) {
		t.Fatalf("Clamp() escapes bound on Y axis: %+v", got)
	}
}

func TestClampPreservesFittingRect(t *testing.T) {
	bound := Rect{X: 0, Y: 0, W: 1920, H: 1080}
	r := Rect{X: 100, Y: 100, W: 400, H: 300}
	if got := r.Clamp(bound); !got.Equal(r) {
		t.Fatalf("Clamp() altered a rect that already fit: got %+v, want %+v", got, r)
	}
}
