package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/layout"
	"github.com/xsoder/oxwm/internal/monitor"
	"github.com/xsoder/oxwm/internal/x11"
)

// Manage adopts win as a new client. It reads the window's ICCCM/EWMH
// state, decides its floating/transient status, places it on the
// selected monitor's selected tags (or its transient parent's tags and
// monitor), selects its events, maps it and arranges the monitor.
func (wm *WM) Manage(win xproto.Window) error {
	if _, managed := wm.clientsByWindow[win]; managed {
		return nil
	}
	mon := wm.selectedMonitor()
	if mon == nil {
		return fmt.Errorf("no monitor to manage window on")
	}

	transientFor, _ := wm.conn.TransientFor(win)
	if parent := wm.clientsByWindow[transientFor]; parent != nil {
		if pm := wm.monitorByIndex(parent.Monitor); pm != nil {
			mon = pm
		}
	}

	c := client.New(win, mon.Index, mon.SelTags)
	if parent := wm.clientsByWindow[transientFor]; parent != nil {
		c.TagMask = parent.TagMask
	}

	title, _ := wm.conn.WindowTitle(win)
	c.Title = title
	class, _ := wm.conn.WindowClass(win)
	c.Class = class

	c.Transient = transientFor != 0

	types, _ := wm.conn.WindowType(win)
	dialog := wm.conn.Atom("_NET_WM_WINDOW_TYPE_DIALOG")
	for _, t := range types {
		if t == dialog {
			c.Floating = true
		}
	}
	if c.Transient {
		c.Floating = true
	}

	hints, _ := wm.conn.SizeHints(win)
	c.SizeHints = hints
	if hints.HasMin && hints.HasMax && hints.MinW == hints.MaxW && hints.MinH == hints.MaxH && hints.MinW > 0 {
		c.Floating = true
	}

	urgent, _ := wm.conn.WMHintsUrgent(win)
	c.Urgent = urgent

	if state, err := wm.conn.WMState(win); err == nil && state == x11.WMStateIconic {
		c.Iconic = true
	}

	del, takeFocus, _ := wm.conn.Protocols(win)
	c.SupportsDelete = del
	c.SupportsTakeFocus = takeFocus

	c.BorderWidth = wm.cfg.BorderWidth

	geomNow, _, err := wm.conn.WindowGeometry(win)
	if err == nil {
		c.Geom = geom.Rect{X: geomNow.X, Y: geomNow.Y, W: geomNow.W, H: geomNow.H}
	}
	if c.Floating && c.Geom.W > 0 {
		c.Geom = centeredOn(mon.WorkArea(), c.Geom.W, c.Geom.H)
	}

	if err := wm.conn.SelectClientEvents(win); err != nil {
		return err
	}
	if err := wm.conn.SetBorderColor(win, wm.cfg.BorderUnfocused); err != nil {
		return err
	}

	mon.AppendClient(c)
	wm.clientsByWindow[win] = c

	// An Iconic window is attached without re-mapping and keeps its
	// WM_STATE; it normalizes on the client's next MapRequest.
	if c.Iconic {
		c.Pushed = client.PushedState{Mapped: false, Valid: true}
		wm.arrange(mon)
		wm.updateClientList()
		return nil
	}

	if err := wm.conn.SetWMState(win, x11.WMStateNormal); err != nil {
		return err
	}
	if err := wm.conn.MapWindow(win); err != nil {
		return err
	}

	wm.arrange(mon)
	wm.Focus(c)
	wm.updateClientList()
	return nil
}

// centeredOn centers a w x h rectangle within area, the placement
// policy for newly mapped floating/transient/dialog windows.
func centeredOn(area geom.Rect, w, h uint32) geom.Rect {
	x := area.X + int32(area.W-w)/2
	y := area.Y + int32(area.H-h)/2
	return geom.Rect{X: x, Y: y, W: w, H: h}
}

// Unmanage removes c from its monitor's bookkeeping, triggered by
// UnmapNotify or DestroyNotify. When the window still exists (destroyed
// is false) its border and WM_STATE are reset so a later remap starts
// clean. If c held focus, focus moves to the new top of the monitor's
// focus stack.
func (wm *WM) Unmanage(c *client.Client, destroyed bool) {
	mon := wm.monitorByIndex(c.Monitor)
	delete(wm.clientsByWindow, c.Window)
	if !destroyed {
		wm.conn.UngrabClientButtons(c.Window)
		wm.conn.SetBorderWidth(c.Window, 0)
		wm.conn.SetWMState(c.Window, x11.WMStateWithdrawn)
	}
	if mon == nil {
		return
	}
	wasFocused := mon.Focused() == c
	mon.RemoveClient(c)
	wm.arrange(mon)
	if wasFocused {
		wm.Focus(mon.Focused())
	}
	wm.updateClientList()
}

// Focus transfers input focus to c (or clears it, if c is nil), updating
// borders, _NET_ACTIVE_WINDOW, the focus stack's MRU order and sending
// WM_TAKE_FOCUS when the client supports it. This is the only place
// that mutates X input focus on managed windows.
func (wm *WM) Focus(c *client.Client) {
	for _, mon := range wm.monitors {
		for _, other := range mon.Clients {
			if other != c {
				wm.conn.SetBorderColor(other.Window, wm.cfg.BorderUnfocused)
			}
		}
	}
	if c == nil {
		wm.conn.SetInputFocus(0, xproto.TimeCurrentTime)
		wm.conn.SetActiveWindow(0)
		return
	}
	mon := wm.monitorByIndex(c.Monitor)
	if mon != nil {
		mon.RaiseFocus(c)
		if !mon.Selected {
			for _, m := range wm.monitors {
				m.Selected = m == mon
			}
		}
	}
	wm.conn.SetBorderColor(c.Window, wm.cfg.BorderFocused)
	if c.Floating || c.Fullscreen ||
		mon != nil && (layout.Name(mon.Layout) == layout.Monocle || layout.Name(mon.Layout) == layout.Tabbed) {
		wm.conn.RaiseWindow(c.Window)
	}
	if !c.NeverFocus {
		wm.conn.SetInputFocus(c.Window, xproto.TimeCurrentTime)
	}
	if c.SupportsTakeFocus {
		wm.conn.SendClientMessage(c.Window, wm.conn.Atom("WM_PROTOCOLS"),
			[]uint32{uint32(wm.conn.Atom("WM_TAKE_FOCUS")), uint32(xproto.TimeCurrentTime)})
	}
	wm.conn.SetActiveWindow(c.Window)
	c.Urgent = false
}

func (wm *WM) selectedMonitor() *monitor.Monitor {
	for _, m := range wm.monitors {
		if m.Selected {
			return m
		}
	}
	if len(wm.monitors) > 0 {
		return wm.monitors[0]
	}
	return nil
}

func (wm *WM) monitorByIndex(idx int) *monitor.Monitor {
	for _, m := range wm.monitors {
		if m.Index == idx {
			return m
		}
	}
	return nil
}
