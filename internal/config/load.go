package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/xsoder/oxwm/internal/layout"
)

// Load parses the TOML config at path and materializes a Settled config,
// threading every field through the Builder the way a scripting front-end
// calling oxwm.* would. Parse/type errors are returned rather than
// applied; the caller (cmd/oxwm) is responsible for falling back to
// Default() and setting Degraded so the bar can show the badge.
func Load(path string) (*Settled, error) {
	var raw Raw
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if perr, ok := err.(toml.ParseError); ok {
			return nil, fmt.Errorf("%s: %s", path, perr.Error())
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%s: unknown field %q", path, undec[0].String())
	}

	b := newBuilder()
	applyRaw(&raw, b)
	if errs := b.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, errs[0])
	}
	return b.Settled(), nil
}

// applyRaw pushes every Raw field through the matching Builder method.
func applyRaw(raw *Raw, b *Builder) {
	b.SetTerminal(raw.Terminal)
	if raw.Modkey != "" {
		b.SetModkey(raw.Modkey)
	}
	if len(raw.Tags) > 0 {
		b.SetTags(raw.Tags)
	}
	if raw.DefaultLayout != "" {
		b.SetDefaultLayout(raw.DefaultLayout)
	}
	for name, sym := range raw.LayoutSymbols {
		b.SetLayoutSymbol(layout.Name(name), sym)
	}
	b.SetGapsEnabled(raw.GapsEnabled)
	if raw.BorderWidth > 0 {
		b.BorderSetWidth(raw.BorderWidth)
	}
	if raw.BorderFocused != "" {
		b.BorderSetFocusedColor(raw.BorderFocused)
	}
	if raw.BorderUnfocused != "" {
		b.BorderSetUnfocusedColor(raw.BorderUnfocused)
	}
	b.GapsSetInner(raw.GapInnerH, raw.GapInnerV)
	b.GapsSetOuter(raw.GapOuterH, raw.GapOuterV)
	if raw.Font != "" || raw.FontSize > 0 {
		b.BarSetFont(raw.Font, raw.FontSize)
	}
	b.BarSetSchemeNormal(raw.SchemeNormal)
	b.BarSetSchemeOccupied(raw.SchemeOccupied)
	b.BarSetSchemeSelected(raw.SchemeSelected)
	for _, blk := range raw.StatusBlocks {
		b.BarAddBlock(blk)
	}
	b.SetAutostart(raw.Autostart)
	if raw.MasterFactor > 0 {
		b.SetMasterFactorInitial(raw.MasterFactor)
	}
	if raw.NumMaster > 0 {
		b.SetNumMasterInitial(raw.NumMaster)
	}

	for _, rb := range raw.Keybindings {
		act, err := parseAction(rb.Action, rb.Arg)
		if err != nil {
			b.fail(fmt.Errorf("keybinding action: %w", err))
			continue
		}
		if len(rb.Steps) > 0 {
			b.KeyChord(rb.Steps, act)
		} else {
			b.KeyBind(rb.Mods, rb.Key, act)
		}
	}
}
