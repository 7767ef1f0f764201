// Package layout implements the named geometric arrangements as a
// closed tagged variant with a single Arrange entry point: adding a
// layout is adding a Name constant and an arrange function to the
// switch.
package layout

import (
	"math"

	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/geom"
)

// Name identifies one of the closed set of layouts.
type Name string

const (
	Tiling  Name = "tiling"
	Normie  Name = "normie"
	Monocle Name = "monocle"
	Grid    Name = "grid"
	Tabbed  Name = "tabbed"
)

// Context is everything an arrange function needs: the work area, the
// gap configuration, the tiling parameters and the ordered list of
// clients currently visible on the monitor's selected tags. Floating
// clients are passed in but skipped by tiled layouts; they keep their
// own geometry.
type Context struct {
	WorkArea   geom.Rect
	Gaps       geom.Gaps
	MasterFrac float64
	NumMaster  int
	Clients    []*client.Client // visible, in monitor order
	Focused    *client.Client
}

// Placement is the computed geometry for one client, plus whether the
// layout wants it mapped (tabbed hides unfocused clients instead of
// stacking them).
type Placement struct {
	Client *client.Client
	Geom   geom.Rect
	Mapped bool
}

// Arrange dispatches to the named layout. Unknown names behave as Normie
// (no-op/floating), matching "floating clients are skipped by tiled
// layouts and keep their current geometry" taken to its limit.
func Arrange(name Name, ctx Context) []Placement {
	switch name {
	case Tiling:
		return arrangeTiling(ctx)
	case Monocle:
		return arrangeMonocle(ctx)
	case Grid:
		return arrangeGrid(ctx)
	case Tabbed:
		return arrangeTabbed(ctx)
	case Normie:
		return nil
	default:
		return nil
	}
}

// tileable returns the subset of ctx.Clients the layout should place,
// i.e. excluding floating clients.
func tileable(ctx Context) []*client.Client {
	out := make([]*client.Client, 0, len(ctx.Clients))
	for _, c := range ctx.Clients {
		if !c.Floating {
			out = append(out, c)
		}
	}
	return out
}

func applyGapOuter(r geom.Rect, g geom.Gaps) geom.Rect {
	return r.Inset(g)
}

func innerGap(g geom.Gaps, horiz bool) uint32 {
	if !g.Enabled {
		return 0
	}
	if horiz {
		return g.InnerH
	}
	return g.InnerV
}

// arrangeTiling is the master-stack layout. The first
// NumMaster visible clients share a left column sized by MasterFrac of the
// work width; the remainder stacks vertically on the right. A single
// client fills the area.
func arrangeTiling(ctx Context) []Placement {
	cs := tileable(ctx)
	n := len(cs)
	if n == 0 {
		return nil
	}
	area := applyGapOuter(ctx.WorkArea, ctx.Gaps)
	out := make([]Placement, 0, n)

	nmaster := ctx.NumMaster
	if nmaster > n {
		nmaster = n
	}
	if nmaster < 0 {
		nmaster = 0
	}

	if n == 1 || nmaster == n {
		// Single column: everyone in the master area, stacked.
		return stackColumn(cs, area, ctx.Gaps, out)
	}

	masterW := area.W
	if nmaster > 0 {
		masterW = uint32(float64(area.W) * ctx.MasterFrac)
	} else {
		masterW = 0
	}
	gapH := innerGap(ctx.Gaps, true)

	masterArea := geom.Rect{X: area.X, Y: area.Y, W: masterW, H: area.H}
	stackArea := geom.Rect{X: area.X + int32(masterW) + int32(gapH), Y: area.Y, W: area.W - masterW - gapH, H: area.H}
	if nmaster == 0 {
		stackArea = area
	}

	out = stackColumn(cs[:nmaster], masterArea, ctx.Gaps, out)
	out = stackColumn(cs[nmaster:], stackArea, ctx.Gaps, out)
	return out
}

// stackColumn lays clients out vertically within area, splitting evenly and
// distributing the inner vertical gap between adjacent cells.
func stackColumn(cs []*client.Client, area geom.Rect, g geom.Gaps, out []Placement) []Placement {
	n := len(cs)
	if n == 0 {
		return out
	}
	gapV := innerGap(g, false)
	totalGap := gapV * uint32(n-1)
	var perH uint32
	if area.H > totalGap {
		perH = (area.H - totalGap) / uint32(n)
	}
	y := area.Y
	for i, c := range cs {
		h := perH
		if i == n-1 {
			// Last cell absorbs rounding remainder.
			h = uint32(int32(area.H) - (y - area.Y))
		}
		out = append(out, Placement{Client: c, Mapped: true, Geom: geom.Rect{X: area.X, Y: y, W: area.W, H: h}})
		y += int32(h) + int32(gapV)
	}
	return out
}

// arrangeMonocle places every visible client over the full work area;
// only the focused one needs to actually be raised/on top, which the
// caller (internal/wm) does via stacking order, not geometry.
func arrangeMonocle(ctx Context) []Placement {
	cs := tileable(ctx)
	area := applyGapOuter(ctx.WorkArea, ctx.Gaps)
	out := make([]Placement, 0, len(cs))
	for _, c := range cs {
		out = append(out, Placement{Client: c, Mapped: true, Geom: area})
	}
	return out
}

// arrangeGrid fills ceil(sqrt(n)) columns row-major; the last row
// stretches to absorb any remainder.
func arrangeGrid(ctx Context) []Placement {
	cs := tileable(ctx)
	n := len(cs)
	if n == 0 {
		return nil
	}
	area := applyGapOuter(ctx.WorkArea, ctx.Gaps)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	gapH := innerGap(ctx.Gaps, true)
	gapV := innerGap(ctx.Gaps, false)

	colW := (area.W - gapH*uint32(cols-1)) / uint32(cols)
	rowH := (area.H - gapV*uint32(rows-1)) / uint32(rows)

	out := make([]Placement, 0, n)
	for i, c := range cs {
		row := i / cols
		col := i % cols
		w := colW
		lastRow := row == rows-1
		if lastRow {
			remaining := n - row*cols
			w = (area.W - gapH*uint32(remaining-1)) / uint32(remaining)
		}
		x := area.X + int32(col)*(int32(w)+int32(gapH))
		y := area.Y + int32(row)*(int32(rowH)+int32(gapV))
		h := rowH
		if lastRow {
			h = uint32(int32(area.H) - (y - area.Y))
		}
		out = append(out, Placement{Client: c, Mapped: true, Geom: geom.Rect{X: x, Y: y, W: w, H: h}})
	}
	return out
}

// arrangeTabbed places one client over the full work area and reports
// the rest unmapped; the bar's title slot doubles as the tab strip,
// listing every tabbed client by title. The shown client is the focused
// one when it is tiled, else the first tiled client.
func arrangeTabbed(ctx Context) []Placement {
	cs := tileable(ctx)
	if len(cs) == 0 {
		return nil
	}
	shown := cs[0]
	for _, c := range cs {
		if c == ctx.Focused {
			shown = c
			break
		}
	}
	area := applyGapOuter(ctx.WorkArea, ctx.Gaps)
	out := make([]Placement, 0, len(cs))
	for _, c := range cs {
		if c == shown {
			out = append(out, Placement{Client: c, Mapped: true, Geom: area})
		} else {
			out = append(out, Placement{Client: c, Mapped: false, Geom: c.Geom})
		}
	}
	return out
}

// Symbol returns the default glyph the bar shows for a layout name,
// overridable via the layout_symbols config table.
func Symbol(name Name) string {
	switch name {
	case Tiling:
		return "[]="
	case Normie:
		return "><>"
	case Monocle:
		return "[M]"
	case Grid:
		return "[#]"
	case Tabbed:
		return "[T]"
	default:
		return "?"
	}
}
