package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTemplate is the config written by `oxwm --init` when no config
// exists yet at the target path.
const DefaultTemplate = `# oxwm configuration
modkey = "Mod4"
terminal = "xterm"
border_width = 2
border_focused = "#88c0d0"
border_unfocused = "#3b4252"
font = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
font_size = 12
gaps_enabled = false
gap_inner_horizontal = 6
gap_inner_vertical = 6
gap_outer_h = 10
gap_outer_v = 10
master_factor = 0.55
num_master = 1
default_layout = "tiling"

tags = ["1", "2", "3", "4", "5", "6", "7", "8", "9"]
autostart = []

[layout_symbols]
tiling = "[]="
normie = "><>"
monocle = "[M]"
grid = "[#]"
tabbed = "[T]"

[scheme_normal]
fg = "#eceff4"
bg = "#2e3440"

[scheme_occupied]
fg = "#eceff4"
bg = "#434c5e"

[scheme_selected]
fg = "#2e3440"
bg = "#88c0d0"

[[status_blocks]]
source = "datetime"
format = "%Y-%m-%d %H:%M"
interval = "30s"
color = "#eceff4"

[[keybindings]]
mods = ["Mod"]
key = "Return"
action = "spawn"
arg = "xterm"

[[keybindings]]
mods = ["Mod", "Shift"]
key = "q"
action = "client.kill"

[[keybindings]]
mods = ["Mod", "Shift"]
key = "r"
action = "restart"

[[keybindings]]
mods = ["Mod", "Shift"]
key = "e"
action = "quit"

[[keybindings]]
mods = ["Mod"]
key = "j"
action = "client.focus_stack"
arg = 1

[[keybindings]]
mods = ["Mod"]
key = "k"
action = "client.focus_stack"
arg = -1

[[keybindings]]
mods = ["Mod"]
key = "space"
action = "layout.cycle"

[[keybindings]]
mods = ["Mod"]
key = "f"
action = "client.toggle_fullscreen"

[[keybindings]]
steps = [{ mods = ["Mod"], key = "space" }, { mods = [], key = "t" }]
action = "spawn"
arg = "xterm"
`

// WriteTemplate writes DefaultTemplate to path if nothing exists there
// yet (`oxwm --init`).
func WriteTemplate(path string) error {
	if ok, err := Exists(path); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(DefaultTemplate), 0o644)
}

// Default returns the built-in Config used when no config file exists or
// the existing one fails to parse. Reason is recorded as Degraded state
// so the bar can surface the failure as a badge.
func Default(reason string) *Settled {
	b := newBuilder()
	applyRaw(&Raw{}, b)
	s := b.Settled()
	if reason != "" {
		s.Degraded = true
		s.DegradedReason = reason
	}
	return s
}
