package config

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

var modkeyNames = map[string]uint16{
	"Mod1": xproto.ModMask1,
	"Mod2": xproto.ModMask2,
	"Mod3": xproto.ModMask3,
	"Mod4": xproto.ModMask4,
	"Mod5": xproto.ModMask5,
}

var modTokens = map[string]uint16{
	"Shift":   xproto.ModMaskShift,
	"Lock":    xproto.ModMaskLock,
	"Control": xproto.ModMaskControl,
	"Ctrl":    xproto.ModMaskControl,
	"Mod1":    xproto.ModMask1,
	"Mod2":    xproto.ModMask2,
	"Mod3":    xproto.ModMask3,
	"Mod4":    xproto.ModMask4,
	"Mod5":    xproto.ModMask5,
}

// resolveModkey parses the "Mod1".."Mod5" modkey setting.
func resolveModkey(name string) (uint16, error) {
	if name == "" {
		return xproto.ModMask4, nil // super/windows key, the common WM default
	}
	m, ok := modkeyNames[name]
	if !ok {
		return 0, fmt.Errorf("modkey: unknown value %q, want Mod1..Mod5", name)
	}
	return m, nil
}

// resolveMods resolves a binding's modifier token list; the "Mod"
// token resolves to the configured modkey at load time.
func resolveMods(tokens []string, modkey uint16) (uint16, error) {
	var mask uint16
	for _, t := range tokens {
		if t == "Mod" {
			mask |= modkey
			continue
		}
		m, ok := modTokens[t]
		if !ok {
			return 0, fmt.Errorf("keybinding: unknown modifier token %q", t)
		}
		mask |= m
	}
	return mask, nil
}
