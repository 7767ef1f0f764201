package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/layout"
	"github.com/xsoder/oxwm/internal/monitor"
	"github.com/xsoder/oxwm/internal/x11"
)

// arrange recomputes mon's layout and pushes the resulting geometry to
// the X server, then repaints mon's bar. Tiled placements get a
// synthetic ConfigureNotify instead of an honored ConfigureRequest.
// Pushes that would not change the server-side state are skipped, so
// re-applying the current layout is a no-op on the wire.
func (wm *WM) arrange(mon *monitor.Monitor) {
	if mon == nil {
		return
	}
	ctx := layout.Context{
		WorkArea:   mon.WorkArea(),
		Gaps:       wm.gapsFor(mon),
		MasterFrac: mon.MasterFrac,
		NumMaster:  mon.NumMaster,
		Clients:    mon.VisibleClients(),
		Focused:    mon.Focused(),
	}

	placements := map[*client.Client]layout.Placement{}
	for _, p := range layout.Arrange(layout.Name(mon.Layout), ctx) {
		placements[p.Client] = p
	}

	for _, c := range mon.Clients {
		if c.TagMask&mon.SelTags == 0 || c.Iconic {
			wm.pushHidden(c)
			continue
		}
		if c.Fullscreen {
			c.Geom = mon.Bounds
			wm.push(c, mon.Bounds, 0)
			continue
		}
		if c.Floating {
			wm.push(c, c.Geom, c.BorderWidth)
			continue
		}
		p, ok := placements[c]
		if !ok || !p.Mapped {
			wm.pushHidden(c)
			continue
		}
		c.Geom = p.Geom
		wm.push(c, shrinkForBorder(p.Geom, c.BorderWidth), c.BorderWidth)
	}

	wm.repaintBar(mon)
}

// push maps c and sends its content geometry and border to the server,
// unless the server already has exactly that state.
func (wm *WM) push(c *client.Client, content geom.Rect, border uint32) {
	want := client.PushedState{Geom: content, Border: border, Mapped: true, Valid: true}
	if c.Pushed == want {
		return
	}
	if !c.Pushed.Mapped || !c.Pushed.Valid {
		wm.conn.MapWindow(c.Window)
	}
	g := x11.Geom{X: content.X, Y: content.Y, W: content.W, H: content.H}
	wm.conn.ConfigureGeom(c.Window, g, border)
	wm.conn.SendConfigureNotify(c.Window, g, uint16(border))
	c.Pushed = want
}

// pushHidden unmaps c if it is currently mapped. The resulting
// UnmapNotify is ours, not a withdrawal, so it is flagged to be ignored.
func (wm *WM) pushHidden(c *client.Client) {
	if c.Pushed.Valid && !c.Pushed.Mapped {
		return
	}
	c.IgnoreUnmaps++
	wm.conn.UnmapWindow(c.Window)
	c.Pushed.Mapped = false
	c.Pushed.Valid = true
}

// shrinkForBorder converts a layout-assigned slot (border-inclusive, the
// geometry layout.Arrange hands back) into the content width/height
// ConfigureWindow needs: w - 2*bw, h - 2*bw, so neighboring columns'
// borders meet instead of overlapping. x/y are left alone; only the
// content box shrinks within the slot.
func shrinkForBorder(slot geom.Rect, bw uint32) geom.Rect {
	out := slot
	shrink := 2 * bw
	if shrink < out.W {
		out.W -= shrink
	} else {
		out.W = 1
	}
	if shrink < out.H {
		out.H -= shrink
	} else {
		out.H = 1
	}
	return out
}

func (wm *WM) gapsFor(mon *monitor.Monitor) geom.Gaps {
	if mon.GapsOverride != nil {
		return *mon.GapsOverride
	}
	return wm.cfg.Gaps
}

// arrangeAll re-arranges every monitor, used after a global config or
// monitor-set change (RandR re-enumeration, restart).
func (wm *WM) arrangeAll() {
	for _, mon := range wm.monitors {
		wm.arrange(mon)
	}
}

// updateClientList rewrites _NET_CLIENT_LIST across every monitor in
// managed order.
func (wm *WM) updateClientList() {
	var windows []xproto.Window
	for _, mon := range wm.monitors {
		for _, c := range mon.Clients {
			windows = append(windows, c.Window)
		}
	}
	wm.conn.SetClientList(windows)
}
