package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestParseColorHex(t *testing.T) {
	got, err := parseColor("#ff00aa", 0)
	if err != nil {
		t.Fatalf("parseColor() error = %v", err)
	}
	if got != 0xff00aa {
		t.Fatalf("parseColor(#ff00aa) = %#x, want %#x", got, 0xff00aa)
	}
}

func TestParseColorHexLiteral(t *testing.T) {
	got, err := parseColor("0x112233", 0)
	if err != nil {
		t.Fatalf("parseColor() error = %v", err)
	}
	if got != 0x112233 {
		t.Fatalf("parseColor(0x112233) = %#x, want %#x", got, 0x112233)
	}
}

func TestParseColorDecimal(t *testing.T) {
	got, err := parseColor("255", 0)
	if err != nil {
		t.Fatalf("parseColor() error = %v", err)
	}
	if got != 255 {
		t.Fatalf("parseColor(255) = %d, want 255", got)
	}
}

func TestParseColorEmptyUsesDefault(t *testing.T) {
	got, err := parseColor("", 0xabcdef)
	if err != nil {
		t.Fatalf("parseColor() error = %v", err)
	}
	if got != 0xabcdef {
		t.Fatalf("parseColor(\"\") = %#x, want default %#x", got, 0xabcdef)
	}
}

func TestParseColorInvalid(t *testing.T) {
	if _, err := parseColor("not-a-color", 0); err == nil {
		t.Fatal("parseColor(\"not-a-color\") = nil error, want an error")
	}
}

func TestResolveModkeyDefault(t *testing.T) {
	m, err := resolveModkey("")
	if err != nil {
		t.Fatalf("resolveModkey(\"\") error = %v", err)
	}
	if m != xproto.ModMask4 {
		t.Fatalf("resolveModkey(\"\") = %#x, want Mod4", m)
	}
}

func TestResolveModkeyUnknown(t *testing.T) {
	if _, err := resolveModkey("Mod9"); err == nil {
		t.Fatal("resolveModkey(\"Mod9\") = nil error, want an error")
	}
}

func TestResolveModsExpandsModToken(t *testing.T) {
	got, err := resolveMods([]string{"Mod", "Shift"}, xproto.ModMask4)
	if err != nil {
		t.Fatalf("resolveMods() error = %v", err)
	}
	want := uint16(xproto.ModMask4 | xproto.ModMaskShift)
	if got != want {
		t.Fatalf("resolveMods() = %#x, want %#x", got, want)
	}
}

func TestResolveModsUnknownToken(t *testing.T) {
	if _, err := resolveMods([]string{"Hyper"}, xproto.ModMask4); err == nil {
		t.Fatal("resolveMods() with unknown token = nil error, want an error")
	}
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	doc := `
modkey = "Mod1"
terminal = "alacritty"
border_width = 3
master_factor = 0.5
num_master = 2
default_layout = "grid"

[[keybindings]]
mods = ["Mod"]
key = "Return"
action = "spawn"
arg = "alacritty"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	settled, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settled.Terminal != "alacritty" {
		t.Errorf("Terminal = %q, want alacritty", settled.Terminal)
	}
	if settled.BorderWidth != 3 {
		t.Errorf("BorderWidth = %d, want 3", settled.BorderWidth)
	}
	if settled.Modkey != xproto.ModMask1 {
		t.Errorf("Modkey = %#x, want Mod1", settled.Modkey)
	}
	if len(settled.Bindings) != 1 {
		t.Fatalf("got %d bindings, want 1", len(settled.Bindings))
	}
	if settled.Degraded {
		t.Error("a valid config should not be marked Degraded")
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("not_a_real_field = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with unknown field = nil error, want an error")
	}
}

func TestLoadRejectsBadMasterFactor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("master_factor = 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with out-of-range master_factor = nil error, want an error")
	}
}

func TestDefaultIsNotDegradedWithoutReason(t *testing.T) {
	s := Default("")
	if s.Degraded {
		t.Error("Default(\"\") should not be Degraded")
	}
}

func TestDefaultRecordsReason(t *testing.T) {
	s := Default("boom")
	if !s.Degraded || s.DegradedReason != "boom" {
		t.Errorf("Default(\"boom\") = {Degraded: %v, Reason: %q}, want {true, \"boom\"}", s.Degraded, s.DegradedReason)
	}
}
