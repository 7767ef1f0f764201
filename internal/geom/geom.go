// Package geom holds the rectangle and gap arithmetic shared by the layout
// engine, monitor manager and bar renderer.
package geom

// Rect is an X11-flavoured rectangle: unsigned width/height, signed origin
// (windows can legally sit at negative coordinates on multi-monitor setups).
type Rect struct {
	X, Y int32
	W, H uint32
}

// Gaps describes the inner (between clients) and outer (screen edge) gap
// widths, split by axis the way dwm's patched gap config does.
type Gaps struct {
	InnerH, InnerV uint32
	OuterH, OuterV uint32
	Enabled        bool
}

// Inset shrinks r by the outer gap on all sides, clamping to zero size.
func (r Rect) Inset(g Gaps) Rect {
	if !g.Enabled {
		return r
	}
	out := Rect{
		X: r.X + int32(g.OuterH),
		Y: r.Y + int32(g.OuterV),
		W: shrink(r.W, 2*g.OuterH),
		H: shrink(r.H, 2*g.OuterV),
	}
	return out
}

func shrink(dim, by uint32) uint32 {
	if by >= dim {
		return 0
	}
	return dim - by
}

// Equal reports whether two rects describe the same geometry. Layout
// application uses this to skip redundant ConfigureWindow calls.
func (r Rect) Equal(o Rect) bool {
	return r == o
}

// Center returns the rectangle's center point, used by FocusDirection's
// nearest-neighbour search.
func (r Rect) Center() (x, y int32) {
	return r.X + int32(r.W)/2, r.Y + int32(r.H)/2
}

// Contains reports whether point (x, y) lies within r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+int32(r.W) && y >= r.Y && y < r.Y+int32(r.H)
}

// Clamp constrains r to fit within bound, preserving size where possible.
func (r Rect) Clamp(bound Rect) Rect {
	out := r
	if out.W > bound.W {
		out.W = bound.W
	}
	if out.H > bound.H {
		out.H = bound.H
	}
	if out.X < bound.X {
		out.X = bound.X
	}
	if out.Y < bound.Y {
		out.Y = bound.Y
	}
	if out.X+int32(out.W) > bound.X+int32(bound.W) {
		out.X = bound.X + int32(bound.W) - int32(out.W)
	}
	if out.Y+int32(out.H) > bound.Y+int32(bound.H) {
		out.Y = bound.Y + int32(bound.H) - int32(out.H)
	}
	return out
}
