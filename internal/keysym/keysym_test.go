package keysym

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestByNameResolvesLettersAndDigits(t *testing.T) {
	cases := map[string]xproto.Keysym{"q": 'q', "a": 'a', "5": '5'}
	for name, want := range cases {
		got, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q) not found", name)
		}
		if got != want {
			t.Fatalf("ByName(%q) = %#x, want %#x", name, got, want)
		}
	}
}

func TestByNameResolvesNamedKeys(t *testing.T) {
	cases := map[string]xproto.Keysym{
		"Escape":    0xff1b,
		"Tab":       0xff09,
		"Return":    0xff0d,
		"Enter":     0xff0d,
		"BackSpace": 0xff08,
		"Up":        0xff52,
		"Down":      0xff54,
		"Left":      0xff51,
		"Right":     0xff53,
	}
	for name, want := range cases {
		got, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q) not found", name)
		}
		if got != want {
			t.Fatalf("ByName(%q) = %#x, want %#x", name, got, want)
		}
	}
}

func TestByNameResolvesFunctionKeys(t *testing.T) {
	f1, ok := ByName("F1")
	if !ok {
		t.Fatal("ByName(F1) not found")
	}
	f10, ok := ByName("F10")
	if !ok {
		t.Fatal("ByName(F10) not found")
	}
	if f10-f1 != 9 {
		t.Fatalf("F10 - F1 = %d, want 9", f10-f1)
	}
}

func TestByNameUnknownReturnsFalse(t *testing.T) {
	if _, ok := ByName("NotAKey"); ok {
		t.Fatal("ByName(\"NotAKey\") ok = true, want false")
	}
}

func TestKeymapLookupEmptySlotReturnsZero(t *testing.T) {
	var km Keymap
	if got := km.Lookup(8); got != 0 {
		t.Fatalf("Lookup() on an empty keymap = %#x, want 0", got)
	}
}

func TestKeymapLookupReturnsUnmodifiedSymbol(t *testing.T) {
	var km Keymap
	km[38] = []xproto.Keysym{'a', 'A'}
	if got := km.Lookup(38); got != 'a' {
		t.Fatalf("Lookup(38) = %#x, want 'a'", got)
	}
}

func TestKeymapKeycodesFindsEveryMatchingCode(t *testing.T) {
	var km Keymap
	km[10] = []xproto.Keysym{'q'}
	km[20] = []xproto.Keysym{'q'}
	km[30] = []xproto.Keysym{'w'}
	codes := km.Keycodes('q')
	if len(codes) != 2 {
		t.Fatalf("Keycodes(q) = %v, want 2 codes", codes)
	}
}
