package layout

import (
	"testing"

	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/geom"
)

func makeClients(n int) []*client.Client {
	cs := make([]*client.Client, n)
	for i := range cs {
		cs[i] = client.New(0, 0, 1)
	}
	return cs
}

func TestArrangeTilingSingleClientFillsWorkArea(t *testing.T) {
	ctx := Context{
		WorkArea:   geom.Rect{X: 0, Y: 0, W: 1000, H: 800},
		MasterFrac: 0.6,
		NumMaster:  1,
		Clients:    makeClients(1),
	}
	out := Arrange(Tiling, ctx)
	if len(out) != 1 {
		t.Fatalf("got %d placements, want 1", len(out))
	}
	if !out[0].Geom.Equal(ctx.WorkArea) {
		t.Fatalf("single client geom = %+v, want full work area %+v", out[0].Geom, ctx.WorkArea)
	}
	if !out[0].Mapped {
		t.Fatal("single client should be mapped")
	}
}

func TestArrangeTilingSplitsMasterAndStack(t *testing.T) {
	ctx := Context{
		WorkArea:   geom.Rect{X: 0, Y: 0, W: 1000, H: 800},
		MasterFrac: 0.6,
		NumMaster:  1,
		Clients:    makeClients(3),
	}
	out := Arrange(Tiling, ctx)
	if len(out) != 3 {
		t.Fatalf("got %d placements, want 3", len(out))
	}
	master := out[0]
	if master.Geom.W != 600 {
		t.Fatalf("master width = %d, want 600 (60%% of 1000)", master.Geom.W)
	}
	// The two stack clients should split the remaining width's column
	// vertically, each spanning the full remaining height/2 roughly.
	stack1, stack2 := out[1], out[2]
	if stack1.Geom.X != stack2.Geom.X {
		t.Fatalf("stack clients should share an X coordinate: %+v vs %+v", stack1.Geom, stack2.Geom)
	}
	// Gaps are disabled, so the stack column starts exactly at the master
	// column's right edge.
	if want := master.Geom.X + int32(master.Geom.W); stack1.Geom.X != want {
		t.Fatalf("stack column X = %d, want %d (the master column's right edge)", stack1.Geom.X, want)
	}
}

func TestArrangeTilingSkipsFloating(t *testing.T) {
	cs := makeClients(2)
	cs[1].Floating = true
	ctx := Context{
		WorkArea:  geom.Rect{X: 0, Y: 0, W: 1000, H: 800},
		NumMaster: 1,
		Clients:   cs,
	}
	out := Arrange(Tiling, ctx)
	if len(out) != 1 {
		t.Fatalf("got %d placements, want 1 (floating client excluded)", len(out))
	}
	if out[0].Client != cs[0] {
		t.Fatal("placed the floating client instead of the tiled one")
	}
}

func TestArrangeMonocleCoversEveryClient(t *testing.T) {
	ctx := Context{
		WorkArea: geom.Rect{X: 0, Y: 0, W: 1000, H: 800},
		Clients:  makeClients(4),
	}
	out := Arrange(Monocle, ctx)
	if len(out) != 4 {
		t.Fatalf("got %d placements, want 4", len(out))
	}
	for _, p := range out {
		if !p.Geom.Equal(ctx.WorkArea) {
			t.Fatalf("monocle placement = %+v, want full work area %+v", p.Geom, ctx.WorkArea)
		}
	}
}

func TestArrangeGridCoversWorkAreaExactly(t *testing.T) {
	ctx := Context{
		WorkArea: geom.Rect{X: 0, Y: 0, W: 900, H: 900},
		Clients:  makeClients(5),
	}
	out := Arrange(Grid, ctx)
	if len(out) != 5 {
		t.Fatalf("got %d placements, want 5", len(out))
	}
	var maxX, maxY int32
	for _, p := range out {
		if right := p.Geom.X + int32(p.Geom.W); right > maxX {
			maxX = right
		}
		if bottom := p.Geom.Y + int32(p.Geom.H); bottom > maxY {
			maxY = bottom
		}
	}
	if maxX != ctx.WorkArea.X+int32(ctx.WorkArea.W) {
		t.Errorf("grid rightmost edge = %d, want %d", maxX, ctx.WorkArea.X+int32(ctx.WorkArea.W))
	}
	if maxY != ctx.WorkArea.Y+int32(ctx.WorkArea.H) {
		t.Errorf("grid bottommost edge = %d, want %d", maxY, ctx.WorkArea.Y+int32(ctx.WorkArea.H))
	}
}

func TestArrangeTabbedOnlyFocusedMapped(t *testing.T) {
	cs := makeClients(3)
	ctx := Context{
		WorkArea: geom.Rect{X: 0, Y: 0, W: 1000, H: 800},
		Clients:  cs,
		Focused:  cs[1],
	}
	out := Arrange(Tabbed, ctx)
	mappedCount := 0
	for _, p := range out {
		if p.Mapped {
			mappedCount++
			if p.Client != cs[1] {
				t.Fatalf("mapped client is not the focused one")
			}
		}
	}
	if mappedCount != 1 {
		t.Fatalf("got %d mapped clients in tabbed layout, want 1", mappedCount)
	}
}

func TestArrangeTabbedFallsBackToFirstTiled(t *testing.T) {
	cs := makeClients(3)
	cs[0].Floating = true
	ctx := Context{
		WorkArea: geom.Rect{X: 0, Y: 0, W: 1000, H: 800},
		Clients:  cs,
		Focused:  cs[0], // floating, so not eligible to fill the tab area
	}
	out := Arrange(Tabbed, ctx)
	mapped := 0
	for _, p := range out {
		if p.Mapped {
			mapped++
			if p.Client != cs[1] {
				t.Fatalf("shown client should be the first tiled one")
			}
		}
	}
	if mapped != 1 {
		t.Fatalf("got %d mapped clients, want 1", mapped)
	}
}

func TestArrangeNormieIsNoOp(t *testing.T) {
	ctx := Context{
		WorkArea: geom.Rect{X: 0, Y: 0, W: 1000, H: 800},
		Clients:  makeClients(2),
	}
	if out := Arrange(Normie, ctx); out != nil {
		t.Fatalf("Normie layout should return no placements, got %d", len(out))
	}
}

func TestArrangeEmptyClientList(t *testing.T) {
	ctx := Context{WorkArea: geom.Rect{X: 0, Y: 0, W: 1000, H: 800}}
	for _, name := range []Name{Tiling, Monocle, Grid, Tabbed} {
		if out := Arrange(name, ctx); len(out) != 0 {
			t.Errorf("Arrange(%s, empty) = %d placements, want 0", name, len(out))
		}
	}
}

func TestSymbolCoversEveryNamedLayout(t *testing.T) {
	for _, name := range []Name{Tiling, Normie, Monocle, Grid, Tabbed} {
		if sym := Symbol(name); sym == "" || sym == "?" {
			t.Errorf("Symbol(%s) = %q, want a real glyph", name, sym)
		}
	}
}
