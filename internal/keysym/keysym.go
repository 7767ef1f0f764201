// Package keysym loads the X server's keycode->keysym table and exposes
// the small slice of X11 keysym constants oxwm's default bindings and
// config parser need.
package keysym

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	loKeycode = 8
	hiKeycode = 255
)

// Keymap maps a keycode to its keysym list (index 0 is the unmodified
// symbol, index 1 is the Shift-level symbol, as xlib's KeyCodeToKeysym
// table does).
type Keymap [256][]xproto.Keysym

// Load queries the server's current keyboard mapping: one
// GetKeyboardMapping request over the 8..255 keycode range, sliced by
// the keysyms-per-keycode stride.
func Load(xc *xgb.Conn) (Keymap, error) {
	var km Keymap
	reply, err := xproto.GetKeyboardMapping(xc, loKeycode, hiKeycode-loKeycode+1).Reply()
	if err != nil {
		return km, err
	}
	stride := int(reply.KeysymsPerKeycode)
	for i := 0; i <= hiKeycode-loKeycode; i++ {
		km[loKeycode+i] = reply.Keysyms[i*stride : (i+1)*stride]
	}
	return km, nil
}

// Lookup returns the unmodified (index 0) keysym for a keycode, stripped
// of any lock-state ambiguity the dispatcher already resolved via the
// modifier mask it grabbed against.
func (km Keymap) Lookup(code xproto.Keycode) xproto.Keysym {
	syms := km[code]
	if len(syms) == 0 {
		return 0
	}
	return syms[0]
}

// Keycodes returns every keycode whose keysym table contains sym, since a
// single keysym can live at more than one keycode on some layouts.
func (km Keymap) Keycodes(sym xproto.Keysym) []xproto.Keycode {
	var out []xproto.Keycode
	for code, syms := range km {
		for _, s := range syms {
			if s == sym {
				out = append(out, xproto.Keycode(code))
				break
			}
		}
	}
	return out
}

// Common keysym values (subset of X11/keysymdef.h) used by default
// bindings and by the config parser's key-name table.
const (
	XKEscape    xproto.Keysym = 0xff1b
	XKTab       xproto.Keysym = 0xff09
	XKReturn    xproto.Keysym = 0xff0d
	XKSpace     xproto.Keysym = 0x0020
	XKBackSpace xproto.Keysym = 0xff08
	XKDelete    xproto.Keysym = 0xffff
	XKUp        xproto.Keysym = 0xff52
	XKDown      xproto.Keysym = 0xff54
	XKLeft      xproto.Keysym = 0xff51
	XKRight     xproto.Keysym = 0xff53
)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		names[string(c)] = xproto.Keysym(c)
	}
	for c := '0'; c <= '9'; c++ {
		names[string(c)] = xproto.Keysym(c)
	}
	for i := 1; i <= 24; i++ {
		names[fKeyName(i)] = xproto.Keysym(0xffbe + i - 1)
	}
	names["Escape"] = XKEscape
	names["Tab"] = XKTab
	names["Return"] = XKReturn
	names["Enter"] = XKReturn
	names["space"] = XKSpace
	names["Space"] = XKSpace
	names["BackSpace"] = XKBackSpace
	names["Delete"] = XKDelete
	names["Up"] = XKUp
	names["Down"] = XKDown
	names["Left"] = XKLeft
	names["Right"] = XKRight
}

var names = map[string]xproto.Keysym{}

func fKeyName(n int) string {
	digits := [2]byte{'0' + byte(n/10), '0' + byte(n%10)}
	if n < 10 {
		return "F" + string(digits[1])
	}
	return "F" + string(digits[0]) + string(digits[1])
}

// ByName resolves a config key token ("q", "Return", "F1", ...) to its
// keysym, used by the config runtime's key.bind parsing.
func ByName(name string) (xproto.Keysym, bool) {
	k, ok := names[name]
	return k, ok
}
