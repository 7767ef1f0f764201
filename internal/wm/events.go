package wm

import (
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/monitor"
	"github.com/xsoder/oxwm/internal/x11"
)

func toX11Geom(g geom.Rect) x11.Geom {
	return x11.Geom{X: g.X, Y: g.Y, W: g.W, H: g.H}
}

// handleMapRequest manages the requesting window unless it is
// override-redirect or a bar window. A MapRequest for an already-managed
// Iconic client is the ICCCM de-iconify request: the client normalizes
// and rejoins the layout.
func (wm *WM) handleMapRequest(e xproto.MapRequestEvent) {
	if c := wm.clientsByWindow[e.Window]; c != nil {
		if c.Iconic {
			c.Iconic = false
			wm.conn.SetWMState(c.Window, x11.WMStateNormal)
			mon := wm.monitorByIndex(c.Monitor)
			wm.arrange(mon)
			if mon != nil && c.TagMask&mon.SelTags != 0 {
				wm.Focus(c)
			}
		}
		return
	}
	attr, err := wm.conn.WindowAttributes(e.Window)
	if err == nil && attr.OverrideRedirect {
		return
	}
	if wm.isBarWindow(e.Window) {
		return
	}
	if err := wm.Manage(e.Window); err != nil {
		log.Println("manage:", err)
	}
}

// handleUnmapNotify unmanages a client once its window is unmapped,
// unless the unmap is one the WM issued itself to hide the window.
func (wm *WM) handleUnmapNotify(e xproto.UnmapNotifyEvent) {
	c := wm.clientsByWindow[e.Window]
	if c == nil {
		return
	}
	if c.IgnoreUnmaps > 0 {
		c.IgnoreUnmaps--
		return
	}
	wm.Unmanage(c, false)
}

// handleDestroyNotify unmanages a client whose window was destroyed
// without an intervening UnmapNotify.
func (wm *WM) handleDestroyNotify(e xproto.DestroyNotifyEvent) {
	if c := wm.clientsByWindow[e.Window]; c != nil {
		wm.Unmanage(c, true)
	}
}

// handleConfigureRequest grants floating/fullscreen clients their
// requested geometry directly; tiled clients are answered with a
// synthetic ConfigureNotify reasserting their current layout-assigned
// geometry instead.
func (wm *WM) handleConfigureRequest(e xproto.ConfigureRequestEvent) {
	c := wm.clientsByWindow[e.Window]
	if c == nil {
		mask := uint16(0)
		var values []uint32
		if e.ValueMask&xproto.ConfigWindowX != 0 {
			mask |= xproto.ConfigWindowX
			values = append(values, uint32(e.X))
		}
		if e.ValueMask&xproto.ConfigWindowY != 0 {
			mask |= xproto.ConfigWindowY
			values = append(values, uint32(e.Y))
		}
		if e.ValueMask&xproto.ConfigWindowWidth != 0 {
			mask |= xproto.ConfigWindowWidth
			values = append(values, uint32(e.Width))
		}
		if e.ValueMask&xproto.ConfigWindowHeight != 0 {
			mask |= xproto.ConfigWindowHeight
			values = append(values, uint32(e.Height))
		}
		if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
			mask |= xproto.ConfigWindowBorderWidth
			values = append(values, uint32(e.BorderWidth))
		}
		xproto.ConfigureWindowChecked(wm.conn.X, e.Window, mask, values)
		return
	}

	if c.Floating || c.Fullscreen {
		g := c.Geom
		if e.ValueMask&xproto.ConfigWindowX != 0 {
			g.X = int32(e.X)
		}
		if e.ValueMask&xproto.ConfigWindowY != 0 {
			g.Y = int32(e.Y)
		}
		if e.ValueMask&xproto.ConfigWindowWidth != 0 {
			g.W = uint32(e.Width)
		}
		if e.ValueMask&xproto.ConfigWindowHeight != 0 {
			g.H = uint32(e.Height)
		}
		if mon := wm.monitorByIndex(c.Monitor); mon != nil {
			g = g.Clamp(mon.Bounds)
		}
		c.Geom = g
		wm.conn.ConfigureGeom(c.Window, toX11Geom(g), c.BorderWidth)
		return
	}

	wm.conn.SendConfigureNotify(c.Window, toX11Geom(c.Geom), uint16(c.BorderWidth))
}

// handlePropertyNotify reacts to title/hints changes a mapped client
// announces after being managed.
func (wm *WM) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	c := wm.clientsByWindow[e.Window]
	if c == nil {
		return
	}
	switch e.Atom {
	case wm.conn.Atom("_NET_WM_NAME"), wm.conn.Atom("WM_NAME"):
		if title, err := wm.conn.WindowTitle(e.Window); err == nil {
			c.Title = title
			wm.repaintBar(wm.monitorByIndex(c.Monitor))
		}
	case wm.conn.Atom("WM_HINTS"):
		if urgent, err := wm.conn.WMHintsUrgent(e.Window); err == nil {
			c.Urgent = urgent
		}
	case wm.conn.Atom("WM_NORMAL_HINTS"):
		if hints, err := wm.conn.SizeHints(e.Window); err == nil {
			c.SizeHints = hints
		}
	case wm.conn.Atom("WM_TRANSIENT_FOR"):
		if parent, err := wm.conn.TransientFor(e.Window); err == nil {
			c.Transient = parent != 0
			if c.Transient && !c.Floating {
				c.Floating = true
				wm.arrange(wm.monitorByIndex(c.Monitor))
			}
		}
	case wm.conn.Atom("_NET_WM_WINDOW_TYPE"):
		if types, err := wm.conn.WindowType(e.Window); err == nil {
			dialog := wm.conn.Atom("_NET_WM_WINDOW_TYPE_DIALOG")
			for _, t := range types {
				if t == dialog && !c.Floating {
					c.Floating = true
					wm.arrange(wm.monitorByIndex(c.Monitor))
				}
			}
		}
	}
}

// handleEnterNotify focuses the entered client (focus follows the
// pointer).
func (wm *WM) handleEnterNotify(e xproto.EnterNotifyEvent) {
	if c := wm.clientsByWindow[e.Event]; c != nil {
		wm.Focus(c)
	}
}

// handleClientMessage answers _NET_WM_STATE fullscreen toggles and
// _NET_ACTIVE_WINDOW requests from other clients/pagers.
func (wm *WM) handleClientMessage(e xproto.ClientMessageEvent) {
	c := wm.clientsByWindow[e.Window]
	if c == nil {
		return
	}
	data := e.Data.Data32
	switch e.Type {
	case wm.conn.Atom("_NET_WM_STATE"):
		if len(data) < 2 {
			return
		}
		fs := wm.conn.Atom("_NET_WM_STATE_FULLSCREEN")
		if xproto.Atom(data[1]) != fs && (len(data) < 3 || xproto.Atom(data[2]) != fs) {
			return
		}
		const (
			stateRemove = 0
			stateAdd    = 1
			stateToggle = 2
		)
		want := c.Fullscreen
		switch data[0] {
		case stateRemove:
			want = false
		case stateAdd:
			want = true
		case stateToggle:
			want = !c.Fullscreen
		}
		if want != c.Fullscreen {
			wm.toggleFullscreen(c)
		}
	case wm.conn.Atom("_NET_ACTIVE_WINDOW"):
		wm.Focus(c)
	}
}

// handleKeyPress feeds the keyboard dispatcher and dispatches any
// completed action.
func (wm *WM) handleKeyPress(e xproto.KeyPressEvent) {
	act, ok, err := wm.dispatcher.HandleKeyPress(e)
	if err != nil {
		log.Println("keyboard:", err)
	}
	if ok {
		wm.Dispatch(act)
	}
	wm.repaintAllBars()
}

// handleExpose repaints the exposed bar.
func (wm *WM) handleExpose(e xproto.ExposeEvent) {
	for _, mon := range wm.monitors {
		if b := wm.bars[mon.Index]; b != nil && b.Window() == e.Window {
			wm.repaintBar(mon)
		}
	}
}

// handleMappingNotify reloads the keymap and re-grabs every binding.
func (wm *WM) handleMappingNotify(e xproto.MappingNotifyEvent) {
	if e.Request == xproto.MappingKeyboard || e.Request == xproto.MappingModifier {
		if err := wm.dispatcher.Regrab(); err != nil {
			log.Println("regrab:", err)
		}
	}
}

// handleScreenChangeNotify re-enumerates monitors on a RandR output
// change, migrating any vanished monitor's clients onto monitor 0 with
// their tag masks intact, and rebuilds every bar at its monitor's new
// width.
func (wm *WM) handleScreenChangeNotify(randr.ScreenChangeNotifyEvent) {
	var barHeight uint32
	if wm.cfg.Font != nil {
		barHeight = wm.cfg.Font.Height()
	}
	fresh := monitor.Enumerate(wm.conn, wm.monitors, barHeight, string(wm.cfg.DefaultLayout), wm.cfg.MasterFactor, wm.cfg.NumMaster)
	gone := monitor.Vanished(wm.monitors, fresh)
	wm.monitors = fresh
	anySelected := false
	for _, m := range wm.monitors {
		if m.Selected {
			anySelected = true
		}
	}
	if !anySelected && len(wm.monitors) > 0 {
		wm.monitors[0].Selected = true
	}
	for _, m := range gone {
		for _, c := range m.Clients {
			target := wm.monitors[0]
			c.Monitor = target.Index
			if c.TagMask == 0 {
				c.TagMask = target.SelTags
			}
			target.AppendClient(c)
		}
	}
	for idx, b := range wm.bars {
		b.Destroy()
		delete(wm.bars, idx)
	}
	if err := wm.createBars(); err != nil {
		log.Println("recreate bars:", err)
	}
	wm.arrangeAll()
}

// handleConfigureNotify reacts to root-window geometry changes (e.g. a
// RandR resize on servers that only report it this way) by refreshing
// monitor bounds the same way a ScreenChangeNotify does.
func (wm *WM) handleConfigureNotify(e xproto.ConfigureNotifyEvent) {
	if e.Window != wm.conn.Root {
		return
	}
	wm.handleScreenChangeNotify(randr.ScreenChangeNotifyEvent{})
}
