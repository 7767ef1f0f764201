// Package monitor enumerates physical outputs via Xinerama, falling
// back to a single full-screen monitor when it reports nothing, and
// holds the per-monitor state: tag state, layout, bar window/pixmap,
// client list and focus stack.
package monitor

import (
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/x11"
)

// Monitor is one physical output's worth of WM state.
type Monitor struct {
	Index     int
	Bounds    geom.Rect // full screen rectangle
	BarHeight uint32

	SelTags  uint32 // selected tag mask
	PrevTags uint32 // previous tag mask, for ViewTag toggling

	Layout       string
	MasterFrac   float64
	NumMaster    int
	GapsOverride *geom.Gaps // nil = use global config

	BarWindow xproto.Window
	BarPixmap xproto.Pixmap

	Clients    []*client.Client // monitor-local, tail-append order
	FocusStack []*client.Client // MRU order, weak back-reference semantics

	Selected bool
}

// WorkArea returns Bounds minus the bar strip.
func (m *Monitor) WorkArea() geom.Rect {
	wa := m.Bounds
	wa.Y += int32(m.BarHeight)
	if m.BarHeight < wa.H {
		wa.H -= m.BarHeight
	} else {
		wa.H = 0
	}
	return wa
}

// VisibleClients returns the clients on m whose tag mask intersects m's
// selected tags, in list order. Iconic clients are not visible.
func (m *Monitor) VisibleClients() []*client.Client {
	var out []*client.Client
	for _, c := range m.Clients {
		if c.TagMask&m.SelTags != 0 && !c.Iconic {
			out = append(out, c)
		}
	}
	return out
}

// Occupied reports whether any client on m carries the given tag bit.
func (m *Monitor) Occupied(tagBit uint32) bool {
	for _, c := range m.Clients {
		if c.TagMask&tagBit != 0 {
			return true
		}
	}
	return false
}

// Focused returns the top of the focus stack restricted to currently
// visible clients, or nil.
func (m *Monitor) Focused() *client.Client {
	for _, c := range m.FocusStack {
		if c.TagMask&m.SelTags != 0 && !c.Iconic {
			return c
		}
	}
	return nil
}

// AppendClient adds c to the tail of the client list and the top of the
// focus stack.
func (m *Monitor) AppendClient(c *client.Client) {
	c.Monitor = m.Index
	m.Clients = append(m.Clients, c)
	m.FocusStack = append([]*client.Client{c}, m.FocusStack...)
}

// RemoveClient deletes c from both the client list and the focus stack.
func (m *Monitor) RemoveClient(c *client.Client) {
	m.Clients = removeClient(m.Clients, c)
	m.FocusStack = removeClient(m.FocusStack, c)
}

func removeClient(list []*client.Client, c *client.Client) []*client.Client {
	out := list[:0:0]
	for _, x := range list {
		if x != c {
			out = append(out, x)
		}
	}
	return out
}

// StackIndex returns c's position in the focus stack (0 = most recent),
// or the stack length if c is not present. Used as the tie-break for
// directional focus.
func (m *Monitor) StackIndex(c *client.Client) int {
	for i, x := range m.FocusStack {
		if x == c {
			return i
		}
	}
	return len(m.FocusStack)
}

// RaiseFocus moves c to the top of the focus stack (MRU promotion on focus
// change).
func (m *Monitor) RaiseFocus(c *client.Client) {
	m.FocusStack = removeClient(m.FocusStack, c)
	m.FocusStack = append([]*client.Client{c}, m.FocusStack...)
}

// Enumerate queries Xinerama for the physical head layout, falling back to
// a single monitor covering the whole root screen when Xinerama reports
// no heads. Existing monitors are matched by index so
// layout/tag state survives a re-enumeration. Only the fresh monitor list
// is returned; the caller finds removed monitors with Vanished and
// migrates their clients to monitor 0.
func Enumerate(c *x11.Conn, existing []*Monitor, barHeight uint32, defaultLayout string, masterFrac float64, numMaster int) []*Monitor {
	var heads []xinerama.ScreenInfo
	if reply, err := xinerama.QueryScreens(c.X).Reply(); err == nil && len(reply.ScreenInfo) > 0 {
		heads = reply.ScreenInfo
	} else {
		heads = []xinerama.ScreenInfo{{
			XOrg: 0, YOrg: 0,
			Width:  c.Screen.WidthInPixels,
			Height: c.Screen.HeightInPixels,
		}}
	}

	out := make([]*Monitor, 0, len(heads))
	for i, h := range heads {
		bounds := geom.Rect{X: int32(h.XOrg), Y: int32(h.YOrg), W: uint32(h.Width), H: uint32(h.Height)}
		var mon *Monitor
		for _, e := range existing {
			if e.Index == i {
				mon = e
				break
			}
		}
		if mon == nil {
			mon = &Monitor{
				Index:      i,
				SelTags:    1,
				PrevTags:   1,
				Layout:     defaultLayout,
				MasterFrac: masterFrac,
				NumMaster:  numMaster,
			}
		}
		mon.Bounds = bounds
		mon.BarHeight = barHeight
		out = append(out, mon)
	}
	return out
}

// Vanished returns the subset of existing that has no counterpart in fresh
// by index, i.e. monitors removed by the latest Enumerate call.
func Vanished(existing, fresh []*Monitor) []*Monitor {
	var gone []*Monitor
	for _, e := range existing {
		found := false
		for _, f := range fresh {
			if f.Index == e.Index {
				found = true
				break
			}
		}
		if !found {
			gone = append(gone, e)
		}
	}
	return gone
}
