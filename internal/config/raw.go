// Package config is the configuration runtime. The user-facing surface
// is a declarative TOML document parsed with github.com/BurntSushi/toml;
// a Builder mirrors the oxwm.* namespaced setters/binders/factories as
// Go methods, so the document maps one-to-one onto the settled Config
// the rest of the WM consumes.
package config

// Raw is the direct TOML unmarshal target: the whole config file
// surface as a flat/sectioned document.
type Raw struct {
	Terminal        string   `toml:"terminal"`
	Modkey          string   `toml:"modkey"`
	BorderWidth     int      `toml:"border_width"`
	BorderFocused   string   `toml:"border_focused"`
	BorderUnfocused string   `toml:"border_unfocused"`
	Font            string   `toml:"font"`
	FontSize        float64  `toml:"font_size"`
	GapsEnabled     bool     `toml:"gaps_enabled"`
	GapInnerH       int      `toml:"gap_inner_horizontal"`
	GapInnerV       int      `toml:"gap_inner_vertical"`
	GapOuterH       int      `toml:"gap_outer_h"`
	GapOuterV       int      `toml:"gap_outer_v"`
	MasterFactor    float64  `toml:"master_factor"`
	NumMaster       int      `toml:"num_master"`
	DefaultLayout   string   `toml:"default_layout"`

	Tags          []string          `toml:"tags"`
	LayoutSymbols map[string]string `toml:"layout_symbols"`
	Autostart     []string          `toml:"autostart"`

	SchemeNormal   RawScheme `toml:"scheme_normal"`
	SchemeOccupied RawScheme `toml:"scheme_occupied"`
	SchemeSelected RawScheme `toml:"scheme_selected"`

	StatusBlocks []RawBlock   `toml:"status_blocks"`
	Keybindings  []RawBinding `toml:"keybindings"`
}

// RawScheme is one of the three bar color schemes.
type RawScheme struct {
	FG string `toml:"fg"`
	BG string `toml:"bg"`
}

// RawBlock is one [[status_blocks]] table.
type RawBlock struct {
	Source    string            `toml:"source"`
	Format    string            `toml:"format"`
	Interval  string            `toml:"interval"`
	Color     string            `toml:"color"`
	Underline bool              `toml:"underline"`
	Command   string            `toml:"command"`
	Timeout   string            `toml:"timeout"`
	Text      string            `toml:"text"`
	Battery   map[string]string `toml:"battery_formats"`
}

// RawStep is one step of a chord binding.
type RawStep struct {
	Mods []string `toml:"mods"`
	Key  string   `toml:"key"`
}

// RawBinding is one [[keybindings]] table. A single-step binding sets
// Mods/Key directly; a chord sets Steps instead.
type RawBinding struct {
	Mods  []string  `toml:"mods"`
	Key   string    `toml:"key"`
	Steps []RawStep `toml:"steps"`

	Action string `toml:"action"`
	// Arg is intentionally untyped here: type-checking against the
	// action's expected shape happens at load time, in
	// Builder.addBinding.
	Arg any `toml:"arg"`
}
