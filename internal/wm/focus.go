package wm

import (
	"github.com/xsoder/oxwm/internal/action"
	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/layout"
	"github.com/xsoder/oxwm/internal/monitor"
)

// focusStack moves focus by delta positions within the visible-client
// order of the selected monitor, wrapping around.
func (wm *WM) focusStack(delta int) {
	mon := wm.selectedMonitor()
	if mon == nil {
		return
	}
	vis := mon.VisibleClients()
	if len(vis) == 0 {
		return
	}
	cur := mon.Focused()
	idx := 0
	for i, c := range vis {
		if c == cur {
			idx = i
			break
		}
	}
	next := ((idx+delta)%len(vis) + len(vis)) % len(vis)
	wm.Focus(vis[next])
}

// focusDirection focuses the visible client whose center lies in the
// given half-plane and is nearest to the currently focused client;
// distance ties go to the client higher in the focus stack.
func (wm *WM) focusDirection(dir action.Direction) {
	mon := wm.selectedMonitor()
	if mon == nil {
		return
	}
	cur := mon.Focused()
	if cur == nil {
		return
	}
	if best := directionalNeighbor(mon, cur, dir); best != nil {
		wm.Focus(best)
	}
}

// directionalNeighbor finds cur's nearest visible neighbor in dir's
// half-plane, breaking equal center distances by focus-stack position.
func directionalNeighbor(mon *monitor.Monitor, cur *client.Client, dir action.Direction) *client.Client {
	cx, cy := cur.CenterOf()
	var best *client.Client
	var bestDist int64
	for _, c := range mon.VisibleClients() {
		if c == cur {
			continue
		}
		x, y := c.CenterOf()
		dx, dy := int64(x-cx), int64(y-cy)
		switch dir {
		case action.Up:
			if dy >= 0 {
				continue
			}
		case action.Down:
			if dy <= 0 {
				continue
			}
		case action.Left:
			if dx >= 0 {
				continue
			}
		case action.Right:
			if dx <= 0 {
				continue
			}
		}
		dist := dx*dx + dy*dy
		switch {
		case best == nil || dist < bestDist:
			best, bestDist = c, dist
		case dist == bestDist && mon.StackIndex(c) < mon.StackIndex(best):
			best = c
		}
	}
	return best
}

// swapDirection swaps the focused client's position in the monitor's
// client list with its nearest neighbour in the given direction, then
// re-arranges.
func (wm *WM) swapDirection(dir action.Direction) {
	mon := wm.selectedMonitor()
	if mon == nil {
		return
	}
	cur := mon.Focused()
	if cur == nil {
		return
	}
	target := directionalNeighbor(mon, cur, dir)
	if target == nil {
		return
	}
	swapListOrder(mon.Clients, cur, target)
	wm.arrange(mon)
}

func swapListOrder(list []*client.Client, a, b *client.Client) {
	ai, bi := -1, -1
	for i, c := range list {
		if c == a {
			ai = i
		}
		if c == b {
			bi = i
		}
	}
	if ai >= 0 && bi >= 0 {
		list[ai], list[bi] = list[bi], list[ai]
	}
}

// focusMonitor selects the monitor delta positions away in index order
// and focuses its top client.
func (wm *WM) focusMonitor(delta int) {
	if len(wm.monitors) < 2 {
		return
	}
	cur := 0
	for i, m := range wm.monitors {
		if m.Selected {
			cur = i
		}
		m.Selected = false
	}
	next := ((cur+delta)%len(wm.monitors) + len(wm.monitors)) % len(wm.monitors)
	wm.monitors[next].Selected = true
	wm.Focus(wm.monitors[next].Focused())
	wm.repaintAllBars()
}

// moveToMonitor sends the focused client to the monitor delta positions
// away in index order. The client adopts the target monitor's selected
// tags, so it is visible where it lands.
func (wm *WM) moveToMonitor(delta int) {
	if len(wm.monitors) < 2 {
		return
	}
	mon := wm.selectedMonitor()
	if mon == nil {
		return
	}
	c := mon.Focused()
	if c == nil {
		return
	}
	cur := 0
	for i, m := range wm.monitors {
		if m == mon {
			cur = i
		}
	}
	target := wm.monitors[((cur+delta)%len(wm.monitors)+len(wm.monitors))%len(wm.monitors)]
	if target == mon {
		return
	}
	mon.RemoveClient(c)
	c.TagMask = target.SelTags
	target.AppendClient(c)
	wm.arrange(mon)
	wm.arrange(target)
	wm.Focus(mon.Focused())
}

// viewTag switches the selected monitor's visible tag set to exactly
// tagBit, storing the previous set for ViewTag-toggle semantics. Viewing
// the set that is already selected swaps back to the previous set.
func (wm *WM) viewTag(tagBit uint32) {
	mon := wm.selectedMonitor()
	if mon == nil || tagBit == 0 {
		return
	}
	if mon.SelTags == tagBit {
		mon.SelTags, mon.PrevTags = mon.PrevTags, mon.SelTags
	} else {
		mon.PrevTags = mon.SelTags
		mon.SelTags = tagBit
	}
	wm.arrange(mon)
	wm.Focus(mon.Focused())
}

// moveToTag reassigns the focused client's tag mask to tagBit.
func (wm *WM) moveToTag(tagBit uint32) {
	mon := wm.selectedMonitor()
	if mon == nil || tagBit == 0 {
		return
	}
	c := mon.Focused()
	if c == nil {
		return
	}
	c.TagMask = tagBit
	wm.arrange(mon)
	wm.Focus(mon.Focused())
}

// tagBitForIndex converts a 0-based tag index from a config action
// argument to its bitmask; an index outside the configured tags yields 0,
// which viewTag and moveToTag ignore.
func (wm *WM) tagBitForIndex(i int) uint32 {
	if i < 0 || i >= len(wm.cfg.Tags) {
		return 0
	}
	return 1 << uint32(i)
}

// toggleFullscreen flips c's fullscreen state, saving/restoring its
// pre-fullscreen geometry.
func (wm *WM) toggleFullscreen(c *client.Client) {
	if c == nil {
		return
	}
	mon := wm.monitorByIndex(c.Monitor)
	if !c.Fullscreen {
		c.SavedGeom = c.Geom
		c.Fullscreen = true
	} else {
		c.Fullscreen = false
		c.Geom = c.SavedGeom
	}
	wm.conn.SetFullscreenState(c.Window, c.Fullscreen)
	wm.arrange(mon)
}

// toggleFloating flips c's floating state.
func (wm *WM) toggleFloating(c *client.Client) {
	if c == nil {
		return
	}
	c.Floating = !c.Floating
	wm.arrange(wm.monitorByIndex(c.Monitor))
}

// toggleGaps flips the global gaps toggle.
func (wm *WM) toggleGaps() {
	wm.cfg.Gaps.Enabled = !wm.cfg.Gaps.Enabled
	wm.arrangeAll()
}

// changeLayout sets the selected monitor's layout by name.
func (wm *WM) changeLayout(mon *monitor.Monitor, name string) {
	n := layout.Name(name)
	switch n {
	case layout.Tiling, layout.Normie, layout.Monocle, layout.Grid, layout.Tabbed:
		mon.Layout = string(n)
		wm.arrange(mon)
	}
}

// cycleOrder is the fixed rotation order CycleLayout steps through.
var cycleOrder = []layout.Name{layout.Tiling, layout.Monocle, layout.Grid, layout.Tabbed, layout.Normie}

func (wm *WM) cycleLayout(mon *monitor.Monitor) {
	cur := layout.Name(mon.Layout)
	idx := 0
	for i, n := range cycleOrder {
		if n == cur {
			idx = i
			break
		}
	}
	next := cycleOrder[(idx+1)%len(cycleOrder)]
	mon.Layout = string(next)
	wm.arrange(mon)
}

// setMasterFactor adjusts the selected monitor's master fraction by
// delta, clamped to (0.05, 0.95).
func (wm *WM) setMasterFactor(mon *monitor.Monitor, delta float64) {
	f := mon.MasterFrac + delta
	if f < 0.05 {
		f = 0.05
	}
	if f > 0.95 {
		f = 0.95
	}
	mon.MasterFrac = f
	wm.arrange(mon)
}

// incNumMaster adjusts the selected monitor's master-column count by
// delta, floored at zero.
func (wm *WM) incNumMaster(mon *monitor.Monitor, delta int) {
	n := mon.NumMaster + delta
	if n < 0 {
		n = 0
	}
	mon.NumMaster = n
	wm.arrange(mon)
}
