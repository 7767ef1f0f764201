package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/action"
	"github.com/xsoder/oxwm/internal/bar"
	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/keyboard"
	"github.com/xsoder/oxwm/internal/keysym"
	"github.com/xsoder/oxwm/internal/layout"
)

// Settled is the immutable Config every other subsystem reads after the
// config runtime finishes. Replacement on restart happens by re-exec
// rather than in-process reload: a fresh process builds a fresh
// *Settled before touching any X state.
type Settled struct {
	Terminal  string
	Autostart []string

	Modkey uint16

	BorderWidth     uint32
	BorderFocused   uint32
	BorderUnfocused uint32

	Font *bar.Font

	Gaps geom.Gaps

	MasterFactor float64
	NumMaster    int

	DefaultLayout layout.Name
	LayoutSymbols map[layout.Name]string

	Tags []string

	SchemeNormal, SchemeOccupied, SchemeSelected bar.ColorScheme

	Blocks []*bar.Block

	Bindings []keyboard.Binding

	// Degraded is set when the config failed to parse and built-in
	// defaults were substituted.
	Degraded       bool
	DegradedReason string
}

// Builder mirrors the oxwm.* namespaced API as Go methods: one
// setter/binder/factory per config surface entry. Load unmarshals a
// TOML document into Raw and threads every field through the matching
// Builder method, so behavior is identical whether a future scripting
// front-end calls these methods directly or the TOML path does.
type Builder struct {
	s    Settled
	errs []error
}

func newBuilder() *Builder {
	b := &Builder{}
	b.s.Tags = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	b.s.DefaultLayout = layout.Tiling
	b.s.LayoutSymbols = map[layout.Name]string{}
	b.s.MasterFactor = 0.55
	b.s.NumMaster = 1
	b.s.BorderWidth = 1
	b.s.Modkey = xproto.ModMask4
	b.s.BorderFocused = 0x88c0d0
	b.s.BorderUnfocused = 0x3b4252
	b.s.SchemeNormal = bar.ColorScheme{FG: 0xeceff4, BG: 0x2e3440}
	b.s.SchemeOccupied = bar.ColorScheme{FG: 0xeceff4, BG: 0x434c5e}
	b.s.SchemeSelected = bar.ColorScheme{FG: 0x2e3440, BG: 0x88c0d0}
	b.s.Font = bar.LoadFont("", 12)
	b.s.Terminal = "xterm"
	return b
}

func (b *Builder) fail(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

// SetTerminal corresponds to oxwm.set_terminal.
func (b *Builder) SetTerminal(term string) {
	if term != "" {
		b.s.Terminal = term
	}
}

// SetModkey corresponds to oxwm.set_modkey.
func (b *Builder) SetModkey(name string) {
	m, err := resolveModkey(name)
	if err != nil {
		b.fail(err)
		return
	}
	b.s.Modkey = m
}

// SetTags corresponds to oxwm.set_tags. Unknown fields/out-of-range tag
// counts are errors, not warnings.
func (b *Builder) SetTags(tags []string) {
	if len(tags) < 1 || len(tags) > 9 {
		b.fail(fmt.Errorf("tags: must have between 1 and 9 entries, got %d", len(tags)))
		return
	}
	b.s.Tags = tags
}

// SetLayoutSymbol corresponds to oxwm.set_layout_symbol.
func (b *Builder) SetLayoutSymbol(name layout.Name, symbol string) {
	b.s.LayoutSymbols[name] = symbol
}

// SetDefaultLayout picks the layout active on monitors at startup.
func (b *Builder) SetDefaultLayout(name string) {
	n := layout.Name(name)
	switch n {
	case layout.Tiling, layout.Normie, layout.Monocle, layout.Grid, layout.Tabbed:
		b.s.DefaultLayout = n
	default:
		b.fail(fmt.Errorf("default_layout: unknown layout %q", name))
	}
}

// SetGapsEnabled corresponds to oxwm.toggle_gaps (setter form, as opposed to
// the action of the same name fired at runtime).
func (b *Builder) SetGapsEnabled(v bool) { b.s.Gaps.Enabled = v }

// BorderSetWidth corresponds to oxwm.border.set_width.
func (b *Builder) BorderSetWidth(px int) {
	if px < 0 {
		b.fail(fmt.Errorf("border_width: must be >= 0"))
		return
	}
	b.s.BorderWidth = uint32(px)
}

// BorderSetFocusedColor corresponds to oxwm.border.set_focused_color.
func (b *Builder) BorderSetFocusedColor(s string) {
	v, err := parseColor(s, b.s.BorderFocused)
	if err != nil {
		b.fail(err)
		return
	}
	b.s.BorderFocused = v
}

// BorderSetUnfocusedColor corresponds to oxwm.border.set_unfocused_color.
func (b *Builder) BorderSetUnfocusedColor(s string) {
	v, err := parseColor(s, b.s.BorderUnfocused)
	if err != nil {
		b.fail(err)
		return
	}
	b.s.BorderUnfocused = v
}

// GapsSetInner/GapsSetOuter correspond to oxwm.gaps.set_inner/set_outer.
func (b *Builder) GapsSetInner(h, v int) {
	b.s.Gaps.InnerH, b.s.Gaps.InnerV = nonNegative(h), nonNegative(v)
}
func (b *Builder) GapsSetOuter(h, v int) {
	b.s.Gaps.OuterH, b.s.Gaps.OuterV = nonNegative(h), nonNegative(v)
}

func nonNegative(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}

// BarSetFont corresponds to oxwm.bar.set_font.
func (b *Builder) BarSetFont(path string, size float64) {
	if size <= 0 {
		size = 12
	}
	b.s.Font = bar.LoadFont(path, size)
}

func (b *Builder) schemeFrom(raw RawScheme, deflt bar.ColorScheme) bar.ColorScheme {
	fg, err := parseColor(raw.FG, deflt.FG)
	b.fail(err)
	bg, err := parseColor(raw.BG, deflt.BG)
	b.fail(err)
	return bar.ColorScheme{FG: fg, BG: bg}
}

// BarSetSchemeNormal/Occupied/Selected correspond to
// oxwm.bar.set_scheme_normal/occupied/selected.
func (b *Builder) BarSetSchemeNormal(raw RawScheme)   { b.s.SchemeNormal = b.schemeFrom(raw, b.s.SchemeNormal) }
func (b *Builder) BarSetSchemeOccupied(raw RawScheme) { b.s.SchemeOccupied = b.schemeFrom(raw, b.s.SchemeOccupied) }
func (b *Builder) BarSetSchemeSelected(raw RawScheme) { b.s.SchemeSelected = b.schemeFrom(raw, b.s.SchemeSelected) }

// BarAddBlock corresponds to oxwm.bar.add_block / the bar.block.* factories.
func (b *Builder) BarAddBlock(raw RawBlock) {
	blk := &bar.Block{Format: raw.Format, Underline: raw.Underline}
	color, err := parseColor(raw.Color, b.s.SchemeNormal.FG)
	b.fail(err)
	blk.Color = color

	switch raw.Source {
	case "ram", "Ram":
		blk.Source = bar.SourceRam
	case "datetime", "DateTime":
		blk.Source = bar.SourceDateTime
	case "shell", "Shell":
		blk.Source = bar.SourceShell
		blk.Command = raw.Command
	case "static", "Static":
		blk.Source = bar.SourceStatic
		blk.Text = raw.Text
	case "battery", "Battery":
		blk.Source = bar.SourceBattery
		blk.BatteryFormats = raw.Battery
	default:
		b.fail(fmt.Errorf("status_blocks: unknown source %q", raw.Source))
		return
	}

	interval, err := time.ParseDuration(raw.Interval)
	if err != nil || interval <= 0 {
		interval = 5 * time.Second
	}
	blk.Interval = interval

	if raw.Timeout != "" {
		if to, err := time.ParseDuration(raw.Timeout); err == nil {
			blk.Timeout = to
		}
	}
	b.s.Blocks = append(b.s.Blocks, blk)
}

// SetAutostart corresponds to oxwm.autostart.
func (b *Builder) SetAutostart(cmds []string) { b.s.Autostart = cmds }

// SetMasterFactorInitial / SetNumMasterInitial (setter form, used for the initial value;
// the action.SetMasterFactor/IncNumMaster verbs mutate it at runtime).
func (b *Builder) SetMasterFactorInitial(f float64) {
	if f <= 0 || f >= 1 {
		b.fail(fmt.Errorf("master_factor: must be in (0, 1), got %v", f))
		return
	}
	b.s.MasterFactor = f
}
func (b *Builder) SetNumMasterInitial(n int) {
	if n < 0 {
		b.fail(fmt.Errorf("num_master: must be >= 0"))
		return
	}
	b.s.NumMaster = n
}

// KeyBind / KeyChord correspond to oxwm.key.bind / oxwm.key.chord.
func (b *Builder) KeyBind(mods []string, key string, act action.Action) {
	b.addBinding([]RawStep{{Mods: mods, Key: key}}, act)
}

func (b *Builder) KeyChord(steps []RawStep, act action.Action) {
	b.addBinding(steps, act)
}

func (b *Builder) addBinding(steps []RawStep, act action.Action) {
	if len(steps) == 0 {
		b.fail(fmt.Errorf("keybinding: at least one step is required"))
		return
	}
	if err := action.CheckArg(act.Verb, act.Arg); err != nil {
		b.fail(err)
		return
	}
	var resolved []keyboard.Step
	for _, s := range steps {
		mods, err := resolveMods(s.Mods, b.s.Modkey)
		if err != nil {
			b.fail(err)
			return
		}
		sym, ok := keysym.ByName(s.Key)
		if !ok {
			b.fail(fmt.Errorf("keybinding: unknown key %q", s.Key))
			return
		}
		resolved = append(resolved, keyboard.Step{Mods: mods, Sym: sym})
	}
	// Last-registered-wins on grab conflicts: later bindings append
	// after earlier ones, and internal/keyboard fires the last-registered
	// single-step binding for an identical (mods, keycode) pair.
	b.s.Bindings = append(b.s.Bindings, keyboard.Binding{Steps: resolved, Action: act})
}

// Errors returns every accumulated load-time error.
func (b *Builder) Errors() []error { return b.errs }

// Settled returns the materialized, read-only config.
func (b *Builder) Settled() *Settled { return &b.s }
