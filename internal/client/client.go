// Package client holds the per-window record managed by the WM. It is
// deliberately a plain data holder: the mutating operations
// (Manage/Unmanage/Focus) live in internal/wm, which owns the monitor
// client lists this record is stored in. There are no cyclic
// client<->monitor pointers, just an owning-monitor index.
package client

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/x11"
)

// Client is a managed top-level window.
type Client struct {
	Window      xproto.Window
	Geom        geom.Rect
	SavedGeom   geom.Rect // pre-fullscreen rect
	BorderWidth uint32

	TagMask uint32
	Monitor int

	Floating   bool
	Fullscreen bool
	Urgent     bool
	Transient  bool
	NeverFocus bool

	// Iconic marks a client adopted in (or moved to) ICCCM Iconic state:
	// it stays unmapped, is skipped by layouts and focus, and normalizes
	// when the client next asks to be mapped.
	Iconic bool

	SizeHints x11.SizeHints

	Title string
	Class string

	SupportsDelete    bool
	SupportsTakeFocus bool

	// Pushed mirrors the geometry/border/map state last sent to the
	// server, so layout application can skip requests that would not
	// change anything.
	Pushed PushedState

	// IgnoreUnmaps counts UnmapNotify events the WM caused itself by
	// hiding the window (tag switch, tabbed background); those must not
	// be taken as the client withdrawing.
	IgnoreUnmaps int
}

// PushedState is the server-side window state as of the last arrange.
type PushedState struct {
	Geom   geom.Rect
	Border uint32
	Mapped bool
	Valid  bool
}

// New constructs a client record for win with its owning monitor and tag
// mask already decided by the caller.
func New(win xproto.Window, monitor int, tagMask uint32) *Client {
	return &Client{Window: win, Monitor: monitor, TagMask: tagMask}
}

// CenterOf returns the center point of the client's current geometry,
// used by FocusDirection's nearest-neighbour search.
func (c *Client) CenterOf() (x, y int32) {
	return c.Geom.Center()
}
