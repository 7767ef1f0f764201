package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/x11"
)

// dragMode distinguishes a Mod+Button1 move from a Mod+Button3 resize.
type dragMode int

const (
	dragMove dragMode = iota
	dragResize
)

// dragState tracks an in-progress floating-client move/resize started
// by a Mod+drag ButtonPress.
type dragState struct {
	mode       dragMode
	client     *client.Client
	startX     int32
	startY     int32
	origGeom   geom.Rect
}

// grabModButtons grabs Mod+Button1 (move) and Mod+Button3 (resize) on
// the root window, across every lock-mask combination (mirrors
// keyboard.Dispatcher.GrabAll's per-lock loop).
func (wm *WM) grabModButtons() error {
	modkey := wm.cfg.Modkey
	locks := []uint16{0, xproto.ModMask2, xproto.ModMaskLock, xproto.ModMask2 | xproto.ModMaskLock}
	for _, lock := range locks {
		if err := wm.conn.GrabButton(modkey|lock, 1); err != nil {
			return err
		}
		if err := wm.conn.GrabButton(modkey|lock, 3); err != nil {
			return err
		}
	}
	return nil
}

// handleButtonPress starts a drag if e targets a managed floating
// client; tiled clients ignore Mod+drag since the layout owns their
// geometry.
func (wm *WM) handleButtonPress(e xproto.ButtonPressEvent) {
	c := wm.clientsByWindow[e.Child]
	if c == nil {
		c = wm.clientsByWindow[e.Event]
	}
	if c == nil {
		return
	}
	wm.Focus(c)
	if !c.Floating || c.Fullscreen {
		return
	}
	mode := dragMove
	if e.Detail == 3 {
		mode = dragResize
	}
	wm.drag = &dragState{
		mode:     mode,
		client:   c,
		startX:   int32(e.RootX),
		startY:   int32(e.RootY),
		origGeom: c.Geom,
	}
}

// handleMotionNotify updates the dragged client's geometry live.
func (wm *WM) handleMotionNotify(e xproto.MotionNotifyEvent) {
	if wm.drag == nil {
		return
	}
	dx := int32(e.RootX) - wm.drag.startX
	dy := int32(e.RootY) - wm.drag.startY
	c := wm.drag.client
	g := wm.drag.origGeom

	switch wm.drag.mode {
	case dragMove:
		g.X += dx
		g.Y += dy
	case dragResize:
		w := int32(g.W) + dx
		h := int32(g.H) + dy
		if w < 20 {
			w = 20
		}
		if h < 20 {
			h = 20
		}
		g.W, g.H = uint32(w), uint32(h)
	}
	c.Geom = g
	wm.conn.ConfigureGeom(c.Window, x11.Geom{X: g.X, Y: g.Y, W: g.W, H: g.H}, c.BorderWidth)
}

// handleButtonRelease ends the in-progress drag, if any.
func (wm *WM) handleButtonRelease(xproto.ButtonReleaseEvent) {
	wm.drag = nil
}
