// Package x11 is the typed wrapper around the X11 wire connection: atoms,
// the root window, drawables and the handful of requests every other
// package needs.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
)

// Conn is the connection plus everything derived from it once the display
// is open: the default screen, interned atoms and the supporting-WM-check
// window.
type Conn struct {
	X      *xgb.Conn
	Screen *xproto.ScreenInfo
	Root   xproto.Window

	atoms  map[string]xproto.Atom
	cursor xproto.Cursor

	// SupportingCheck is the dummy window referenced by
	// _NET_SUPPORTING_WM_CHECK.
	SupportingCheck xproto.Window
}

// RequiredAtoms is the atom set interned on startup.
var RequiredAtoms = []string{
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"WM_STATE",
	"WM_TAKE_FOCUS",
	"WM_TRANSIENT_FOR",
	"WM_NORMAL_HINTS",
	"WM_HINTS",
	"WM_NAME",
	"WM_CLASS",
	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_SUPPORTING_WM_CHECK",
	"UTF8_STRING",
}

// Geom is an X geometry in device coordinates; border width is tracked
// separately since several call sites (fullscreen, ConfigureWindow) need to
// reason about it independently of the content rect.
type Geom struct {
	X, Y int32
	W, H uint32
}

// Open connects to the X display named by $DISPLAY, interns the required
// atom set, and readies the default screen. It does not yet attempt to
// become the window manager: that is a separate, checked step so an
// already-running WM can be reported distinctly from connection failure.
func Open() (*Conn, error) {
	xc, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	setup := xproto.Setup(xc)
	if setup == nil || len(setup.Roots) < 1 {
		xc.Close()
		return nil, fmt.Errorf("x11: no screens in setup info")
	}
	screen := &setup.Roots[0]

	if err := xinerama.Init(xc); err != nil {
		xc.Close()
		return nil, fmt.Errorf("x11: xinerama init: %w", err)
	}

	c := &Conn{X: xc, Screen: screen, Root: screen.Root, atoms: map[string]xproto.Atom{}}
	for _, name := range RequiredAtoms {
		a, err := c.internAtom(name)
		if err != nil {
			xc.Close()
			return nil, fmt.Errorf("x11: intern %s: %w", name, err)
		}
		c.atoms[name] = a
	}
	return c, nil
}

func (c *Conn) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.X, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

// Atom returns a previously-interned atom, interning it lazily if it wasn't
// part of RequiredAtoms (e.g. a rule-specific atom requested at runtime).
func (c *Conn) Atom(name string) xproto.Atom {
	if a, ok := c.atoms[name]; ok {
		return a
	}
	a, err := c.internAtom(name)
	if err != nil {
		return 0
	}
	c.atoms[name] = a
	return a
}

// Close releases the display connection.
func (c *Conn) Close() {
	if c.X != nil {
		c.X.Close()
	}
}

// BecomeWM selects SubstructureRedirect and the rest of the WM event mask
// on the root window, then installs the root cursor. It fails with an
// xproto.AccessError if another client already owns SubstructureRedirect,
// which means another window manager is running.
func (c *Conn) BecomeWM() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskPropertyChange)
	if err := xproto.ChangeWindowAttributesChecked(c.X, c.Root, xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		return err
	}
	return c.setRootCursor()
}

// setRootCursor installs the classic left_ptr glyph from the server's
// "cursor" font as the root cursor, so the pointer isn't an X over empty
// desktop.
func (c *Conn) setRootCursor() error {
	const leftPtr = 68
	fid, err := xproto.NewFontId(c.X)
	if err != nil {
		return err
	}
	if err := xproto.OpenFontChecked(c.X, fid, uint16(len("cursor")), "cursor").Check(); err != nil {
		return err
	}
	defer xproto.CloseFont(c.X, fid)
	cid, err := xproto.NewCursorId(c.X)
	if err != nil {
		return err
	}
	err = xproto.CreateGlyphCursorChecked(c.X, cid, fid, fid, leftPtr, leftPtr+1,
		0, 0, 0, 0xffff, 0xffff, 0xffff).Check()
	if err != nil {
		return err
	}
	c.cursor = cid
	return xproto.ChangeWindowAttributesChecked(c.X, c.Root, xproto.CwCursor, []uint32{uint32(cid)}).Check()
}

// SetupSupportingWMCheck creates the 1x1 override-redirect window EWMH
// requires, sets _NET_SUPPORTING_WM_CHECK on both it and the root, and
// advertises _NET_SUPPORTED on the root.
func (c *Conn) SetupSupportingWMCheck(name string) error {
	id, err := xproto.NewWindowId(c.X)
	if err != nil {
		return fmt.Errorf("x11: new window id: %w", err)
	}
	err = xproto.CreateWindowChecked(c.X, c.Screen.RootDepth, id, c.Root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOutput, c.Screen.RootVisual,
		xproto.CwOverrideRedirect, []uint32{1}).Check()
	if err != nil {
		return fmt.Errorf("x11: create supporting-check window: %w", err)
	}
	c.SupportingCheck = id

	checkAtom := c.Atom("_NET_SUPPORTING_WM_CHECK")
	windowBuf := []byte{byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24)}
	for _, win := range []xproto.Window{c.Root, id} {
		if err := xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, win, checkAtom,
			xproto.AtomWindow, 32, 1, windowBuf).Check(); err != nil {
			return fmt.Errorf("x11: set supporting check: %w", err)
		}
	}

	if err := c.SetWindowUTF8Property(id, "_NET_WM_NAME", name); err != nil {
		return err
	}

	supported := make([]byte, 0, 4*len(RequiredAtoms))
	for _, n := range RequiredAtoms {
		a := c.Atom(n)
		supported = append(supported, byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
	}
	return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, c.Root, c.Atom("_NET_SUPPORTED"),
		xproto.AtomAtom, 32, uint32(len(RequiredAtoms)), supported).Check()
}

// DestroySupportingWMCheck tears down the supporting-check window on clean shutdown.
func (c *Conn) DestroySupportingWMCheck() {
	if c.SupportingCheck != 0 {
		xproto.DestroyWindow(c.X, c.SupportingCheck)
	}
}

// SetWindowUTF8Property sets a UTF8_STRING-typed property on win.
func (c *Conn) SetWindowUTF8Property(win xproto.Window, propName, value string) error {
	return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, win, c.Atom(propName),
		c.Atom("UTF8_STRING"), 8, uint32(len(value)), []byte(value)).Check()
}

// SetActiveWindow updates _NET_ACTIVE_WINDOW, or clears it when win is 0.
func (c *Conn) SetActiveWindow(win xproto.Window) error {
	buf := []byte{byte(win), byte(win >> 8), byte(win >> 16), byte(win >> 24)}
	return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, c.Root, c.Atom("_NET_ACTIVE_WINDOW"),
		xproto.AtomWindow, 32, 1, buf).Check()
}

// SetClientList rewrites _NET_CLIENT_LIST to exactly the given windows, in
// the order they were managed.
func (c *Conn) SetClientList(windows []xproto.Window) error {
	buf := make([]byte, 0, 4*len(windows))
	for _, w := range windows {
		buf = append(buf, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, c.Root, c.Atom("_NET_CLIENT_LIST"),
		xproto.AtomWindow, 32, uint32(len(windows)), buf).Check()
}

// WindowTitle reads _NET_WM_NAME, falling back to WM_NAME, the precedence
// ICCCM/EWMH clients expect.
func (c *Conn) WindowTitle(win xproto.Window) (string, error) {
	if s, err := c.getUTF8Property(win, "_NET_WM_NAME"); err == nil && s != "" {
		return s, nil
	}
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("WM_NAME"), xproto.GetPropertyTypeAny, 0, 1024).Reply()
	if err != nil {
		return "", err
	}
	return string(reply.Value), nil
}

func (c *Conn) getUTF8Property(win xproto.Window, name string) (string, error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom(name), c.Atom("UTF8_STRING"), 0, 1024).Reply()
	if err != nil {
		return "", err
	}
	return string(reply.Value), nil
}

// WindowClass reads WM_CLASS's second (class) component.
func (c *Conn) WindowClass(win xproto.Window) (string, error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("WM_CLASS"), xproto.GetPropertyTypeAny, 0, 1024).Reply()
	if err != nil {
		return "", err
	}
	parts := splitNUL(reply.Value)
	if len(parts) < 2 {
		return "", nil
	}
	return parts[1], nil
}

func splitNUL(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	if start < len(b) {
		out = append(out, string(b[start:]))
	}
	return out
}

// TransientFor reads WM_TRANSIENT_FOR, returning 0 if unset.
func (c *Conn) TransientFor(win xproto.Window) (xproto.Window, error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("WM_TRANSIENT_FOR"), xproto.AtomWindow, 0, 1).Reply()
	if err != nil {
		return 0, err
	}
	if len(reply.Value) < 4 {
		return 0, nil
	}
	return xproto.Window(le32(reply.Value)), nil
}

// WindowType reads _NET_WM_WINDOW_TYPE, returning the atoms present.
func (c *Conn) WindowType(win xproto.Window) ([]xproto.Atom, error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("_NET_WM_WINDOW_TYPE"), xproto.AtomAtom, 0, 16).Reply()
	if err != nil {
		return nil, err
	}
	var out []xproto.Atom
	for v := reply.Value; len(v) >= 4; v = v[4:] {
		out = append(out, xproto.Atom(le32(v)))
	}
	return out, nil
}

// Protocols reads WM_PROTOCOLS, reporting which of WM_DELETE_WINDOW and
// WM_TAKE_FOCUS the client supports.
func (c *Conn) Protocols(win xproto.Window) (delete, takeFocus bool, err error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("WM_PROTOCOLS"), xproto.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil {
		return false, false, err
	}
	del := c.Atom("WM_DELETE_WINDOW")
	tf := c.Atom("WM_TAKE_FOCUS")
	for v := reply.Value; len(v) >= 4; v = v[4:] {
		a := xproto.Atom(le32(v))
		switch a {
		case del:
			delete = true
		case tf:
			takeFocus = true
		}
	}
	return delete, takeFocus, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// SendClientMessage sends a 32-bit-format synthetic ClientMessage to win,
// zero-padding data to the five slots the event carries.
func (c *Conn) SendClientMessage(win xproto.Window, msgType xproto.Atom, data []uint32) error {
	for len(data) < 5 {
		data = append(data, 0)
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   msgType,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	return xproto.SendEventChecked(c.X, false, win, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// SendConfigureNotify sends the synthetic ConfigureNotify a tiled client
// receives in place of an honored ConfigureRequest.
func (c *Conn) SendConfigureNotify(win xproto.Window, g Geom, borderWidth uint16) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     0,
		X:                int16(g.X),
		Y:                int16(g.Y),
		Width:            uint16(g.W),
		Height:           uint16(g.H),
		BorderWidth:      borderWidth,
		OverrideRedirect: false,
	}
	return xproto.SendEventChecked(c.X, false, win, xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}

// ConfigureGeom moves/resizes/reborders win directly (used for managed
// clients; does not send a synthetic notify).
func (c *Conn) ConfigureGeom(win xproto.Window, g Geom, borderWidth uint32) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth |
		xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth)
	values := []uint32{uint32(g.X), uint32(g.Y), g.W, g.H, borderWidth}
	return xproto.ConfigureWindowChecked(c.X, win, mask, values).Check()
}

// SetBorderColor paints win's border pixel.
func (c *Conn) SetBorderColor(win xproto.Window, pixel uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.X, win, xproto.CwBorderPixel, []uint32{pixel}).Check()
}

// SelectClientEvents selects the event mask a managed client window needs.
func (c *Conn) SelectClientEvents(win xproto.Window) error {
	mask := uint32(xproto.EventMaskEnterWindow | xproto.EventMaskFocusChange |
		xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify)
	return xproto.ChangeWindowAttributesChecked(c.X, win, xproto.CwEventMask, []uint32{mask}).Check()
}

// ICCCM WM_STATE values.
const (
	WMStateWithdrawn uint32 = 0
	WMStateNormal    uint32 = 1
	WMStateIconic    uint32 = 3
)

// SetWMState sets WM_STATE to the given ICCCM state value.
func (c *Conn) SetWMState(win xproto.Window, state uint32) error {
	buf := []byte{byte(state), byte(state >> 8), byte(state >> 16), byte(state >> 24), 0, 0, 0, 0}
	return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, win, c.Atom("WM_STATE"),
		c.Atom("WM_STATE"), 32, 2, buf).Check()
}

// WMState reads win's WM_STATE, returning Withdrawn when the property is
// absent (a window that was never managed carries no WM_STATE).
func (c *Conn) WMState(win xproto.Window) (uint32, error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("WM_STATE"), c.Atom("WM_STATE"), 0, 2).Reply()
	if err != nil {
		return WMStateWithdrawn, err
	}
	if len(reply.Value) < 4 {
		return WMStateWithdrawn, nil
	}
	return le32(reply.Value), nil
}

// SetFullscreenState rewrites win's _NET_WM_STATE property to either
// contain exactly _NET_WM_STATE_FULLSCREEN or be empty, so pagers and
// the client itself see the state the WM decided on.
func (c *Conn) SetFullscreenState(win xproto.Window, fullscreen bool) error {
	if !fullscreen {
		return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, win, c.Atom("_NET_WM_STATE"),
			xproto.AtomAtom, 32, 0, nil).Check()
	}
	fs := c.Atom("_NET_WM_STATE_FULLSCREEN")
	buf := []byte{byte(fs), byte(fs >> 8), byte(fs >> 16), byte(fs >> 24)}
	return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, win, c.Atom("_NET_WM_STATE"),
		xproto.AtomAtom, 32, 1, buf).Check()
}

// SetInputFocus focuses win, or the root window if win is 0; the
// revert-to mode is PointerRoot in both cases.
func (c *Conn) SetInputFocus(win xproto.Window, t xproto.Timestamp) error {
	target := win
	revert := uint8(xproto.InputFocusPointerRoot)
	if win == 0 {
		target = c.Root
	}
	return xproto.SetInputFocusChecked(c.X, revert, target, t).Check()
}

// KillClient forcibly terminates a client that does not support
// WM_DELETE_WINDOW.
func (c *Conn) KillClient(win xproto.Window) error {
	return xproto.KillClientChecked(c.X, uint32(win)).Check()
}

// QueryTree returns the immediate children of the root window, used for
// the initial scan.
func (c *Conn) QueryTree() ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(c.X, c.Root).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

// WindowAttributes fetches a window's attributes, used to filter
// override-redirect windows out of MapRequest/scan handling.
func (c *Conn) WindowAttributes(win xproto.Window) (*xproto.GetWindowAttributesReply, error) {
	return xproto.GetWindowAttributes(c.X, win).Reply()
}

// WindowGeometry fetches a window's current geometry and border width.
func (c *Conn) WindowGeometry(win xproto.Window) (Geom, uint32, error) {
	reply, err := xproto.GetGeometry(c.X, xproto.Drawable(win)).Reply()
	if err != nil {
		return Geom{}, 0, err
	}
	return Geom{X: int32(reply.X), Y: int32(reply.Y), W: uint32(reply.Width), H: uint32(reply.Height)}, uint32(reply.BorderWidth), nil
}

// MapWindow / UnmapWindow / GrabKeyboard / UngrabKeyboard wrap the
// corresponding xproto requests; tiny, but kept here so every other package
// depends on *x11.Conn instead of xgb/xproto directly.
func (c *Conn) MapWindow(win xproto.Window) error   { return xproto.MapWindowChecked(c.X, win).Check() }
func (c *Conn) UnmapWindow(win xproto.Window) error { return xproto.UnmapWindowChecked(c.X, win).Check() }

// RaiseWindow moves win to the top of the stacking order.
func (c *Conn) RaiseWindow(win xproto.Window) error {
	return xproto.ConfigureWindowChecked(c.X, win, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
}

// SetBorderWidth changes only win's border width, leaving its geometry
// untouched.
func (c *Conn) SetBorderWidth(win xproto.Window, width uint32) error {
	return xproto.ConfigureWindowChecked(c.X, win, xproto.ConfigWindowBorderWidth, []uint32{width}).Check()
}

// UngrabClientButtons drops every button grab on win, part of returning a
// still-live window to the withdrawn state.
func (c *Conn) UngrabClientButtons(win xproto.Window) error {
	return xproto.UngrabButtonChecked(c.X, xproto.ButtonIndexAny, win, xproto.ModMaskAny).Check()
}

func (c *Conn) GrabKeyboard() error {
	_, err := xproto.GrabKeyboard(c.X, false, c.Root, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
	return err
}

func (c *Conn) UngrabKeyboard() error {
	return xproto.UngrabKeyboardChecked(c.X, xproto.TimeCurrentTime).Check()
}

// GrabKey grabs (mods, code) on the root. Callers issue one call per
// lock-mask combination so NumLock/CapsLock state is ignored; ScrollLock
// is not among those masks.
func (c *Conn) GrabKey(mods uint16, code xproto.Keycode) error {
	return xproto.GrabKeyChecked(c.X, false, c.Root, mods, code,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
}

func (c *Conn) UngrabAllKeys() error {
	return xproto.UngrabKeyChecked(c.X, xproto.GrabAny, c.Root, xproto.ModMaskAny).Check()
}

// GrabButton grabs button on the root window combined with mods, for
// Mod+drag move/resize; one call per lock-mask combination, as with
// GrabKey.
func (c *Conn) GrabButton(mods uint16, button xproto.Button) error {
	return xproto.GrabButtonChecked(c.X, false, c.Root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0, byte(button), mods).Check()
}

// Sync flushes the connection and waits for replies to every outstanding
// request, surfacing any protocol error raised since the last call.
func (c *Conn) Sync() error {
	_, err := xproto.GetInputFocus(c.X).Reply()
	return err
}
