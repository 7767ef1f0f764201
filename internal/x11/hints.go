package x11

import "github.com/BurntSushi/xgb/xproto"

// SizeHints mirrors the ICCCM WM_NORMAL_HINTS fields the layout engine and
// ConfigureRequest policy need.
type SizeHints struct {
	MinW, MinH                                 uint32
	MaxW, MaxH                                 uint32
	BaseW, BaseH                               uint32
	IncW, IncH                                 uint32
	AspectMinX, AspectMinY                     int32
	AspectMaxX, AspectMaxY                     int32
	HasMin, HasMax, HasBase, HasInc, HasAspect bool
}

const (
	hintUSPosition = 1 << 0
	hintUSSize     = 1 << 1
	hintPPosition  = 1 << 2
	hintPSize      = 1 << 3
	hintPMinSize   = 1 << 4
	hintPMaxSize   = 1 << 5
	hintPResizeInc = 1 << 6
	hintPAspect    = 1 << 7
	hintPBaseSize  = 1 << 8
)

// SizeHints reads WM_NORMAL_HINTS in the wire layout xlib's
// XSizeHints produces: flags, x, y, w, h (obsolete), min, max, inc,
// aspect, base, gravity.
func (c *Conn) SizeHints(win xproto.Window) (SizeHints, error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("WM_NORMAL_HINTS"), xproto.GetPropertyTypeAny, 0, 18).Reply()
	if err != nil {
		return SizeHints{}, err
	}
	var h SizeHints
	v := reply.Value
	if len(v) < 4 {
		return h, nil
	}
	flags := le32(v)
	words := func(i int) uint32 {
		off := i * 4
		if off+4 > len(v) {
			return 0
		}
		return le32(v[off:])
	}
	if flags&hintPMinSize != 0 {
		h.MinW, h.MinH = words(5), words(6)
		h.HasMin = true
	}
	if flags&hintPMaxSize != 0 {
		h.MaxW, h.MaxH = words(7), words(8)
		h.HasMax = true
	}
	if flags&hintPResizeInc != 0 {
		h.IncW, h.IncH = words(9), words(10)
		h.HasInc = true
	}
	if flags&hintPAspect != 0 {
		h.AspectMinX, h.AspectMinY = int32(words(11)), int32(words(12))
		h.AspectMaxX, h.AspectMaxY = int32(words(13)), int32(words(14))
		h.HasAspect = true
	}
	if flags&hintPBaseSize != 0 {
		h.BaseW, h.BaseH = words(15), words(16)
		h.HasBase = true
	}
	return h, nil
}

// WMHintsUrgent reads WM_HINTS and reports the urgency bit (ICCCM
// UrgencyHint, bit 8 of the flags word).
func (c *Conn) WMHintsUrgent(win xproto.Window) (bool, error) {
	reply, err := xproto.GetProperty(c.X, false, win, c.Atom("WM_HINTS"), xproto.GetPropertyTypeAny, 0, 9).Reply()
	if err != nil {
		return false, err
	}
	if len(reply.Value) < 4 {
		return false, nil
	}
	flags := le32(reply.Value)
	const urgencyHint = 1 << 8
	return flags&urgencyHint != 0, nil
}
