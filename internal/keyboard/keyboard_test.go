package keyboard

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/action"
)

// testKeycodeA is the keycode the test keymap assigns to the 'a' keysym
// (the value itself is arbitrary; only the mapping matters).
const testKeycodeA = 38

func newTestDispatcher(bindings []Binding) *Dispatcher {
	d := &Dispatcher{bindings: bindings}
	d.km[testKeycodeA] = []xproto.Keysym{'a'}
	d.rebuildGrabTable()
	return d
}

func TestHandleIdleFiresSingleStepBinding(t *testing.T) {
	want := action.Action{Verb: action.Spawn, Arg: "xterm"}
	d := newTestDispatcher([]Binding{
		{Steps: []Step{{Mods: 0, Sym: 'a'}}, Action: want},
	})
	got, fired, err := d.handleIdle(grabKey{mods: 0, code: testKeycodeA}, 'a')
	if err != nil {
		t.Fatalf("handleIdle() error = %v", err)
	}
	if !fired {
		t.Fatal("handleIdle() did not fire the single-step binding")
	}
	if got != want {
		t.Fatalf("handleIdle() action = %+v, want %+v", got, want)
	}
	if d.state != idle {
		t.Fatal("dispatcher should remain idle after a single-step fire")
	}
}

func TestHandleIdleNoMatchIsNoOp(t *testing.T) {
	d := newTestDispatcher(nil)
	_, fired, err := d.handleIdle(grabKey{mods: 0, code: 0}, 'z')
	if err != nil {
		t.Fatalf("handleIdle() error = %v", err)
	}
	if fired {
		t.Fatal("handleIdle() fired an action with no matching binding")
	}
}

func TestChordCompletesOnFinalStep(t *testing.T) {
	want := action.Action{Verb: action.Spawn, Arg: "xterm"}
	d := &Dispatcher{
		state:     inChord,
		chordStep: 1,
		candidates: []*Binding{
			{Steps: []Step{{Mods: 0, Sym: 'a'}, {Mods: 0, Sym: 't'}}, Action: want},
		},
	}
	got, fired, err := d.handleChord('t', 0)
	if err != nil {
		t.Fatalf("handleChord() error = %v", err)
	}
	if !fired {
		t.Fatal("handleChord() did not fire on the final step")
	}
	if got != want {
		t.Fatalf("handleChord() action = %+v, want %+v", got, want)
	}
	if d.state != idle {
		t.Fatal("dispatcher should return to idle after a chord completes")
	}
}

func TestChordAdvancesOnPartialMatch(t *testing.T) {
	final := action.Action{Verb: action.Spawn, Arg: "xterm"}
	b := &Binding{Steps: []Step{{Mods: 0, Sym: 'a'}, {Mods: 0, Sym: 'x'}, {Mods: 0, Sym: 't'}}, Action: final}
	d := &Dispatcher{state: inChord, chordStep: 1, candidates: []*Binding{b}}
	_, fired, err := d.handleChord('x', 0)
	if err != nil {
		t.Fatalf("handleChord() error = %v", err)
	}
	if fired {
		t.Fatal("handleChord() fired before the final step was reached")
	}
	if d.state != inChord {
		t.Fatal("dispatcher should remain in chord after a partial match")
	}
	if d.chordStep != 2 {
		t.Fatalf("chordStep = %d, want 2", d.chordStep)
	}
}

func TestChordCancelsOnEscape(t *testing.T) {
	d := &Dispatcher{state: inChord, chordStep: 1}
	_, fired, err := d.handleChord(XKEscapeForTest, 0)
	if err != nil {
		t.Fatalf("handleChord() error = %v", err)
	}
	if fired {
		t.Fatal("Escape should never fire an action")
	}
	if d.state != idle {
		t.Fatal("Escape should cancel the chord back to idle")
	}
}

func TestChordCancelsOnNoMatch(t *testing.T) {
	b := &Binding{Steps: []Step{{Mods: 0, Sym: 'a'}, {Mods: 0, Sym: 't'}}, Action: action.Action{}}
	d := &Dispatcher{state: inChord, chordStep: 1, candidates: []*Binding{b}}
	_, fired, err := d.handleChord('q', 0)
	if err != nil {
		t.Fatalf("handleChord() error = %v", err)
	}
	if fired {
		t.Fatal("an unmatched key should not fire an action")
	}
	if d.state != idle {
		t.Fatal("an unmatched key should cancel the chord")
	}
}

func TestTickExpiresChordAfterDeadline(t *testing.T) {
	past := time.Now().Add(-time.Second)
	d := &Dispatcher{state: inChord, chordDeadline: past}
	if err := d.Tick(time.Now()); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if d.state != idle {
		t.Fatal("Tick() should cancel a chord past its deadline")
	}
}

func TestTickLeavesLiveChordAlone(t *testing.T) {
	future := time.Now().Add(time.Hour)
	d := &Dispatcher{state: inChord, chordDeadline: future}
	if err := d.Tick(time.Now()); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if d.state != inChord {
		t.Fatal("Tick() should not cancel a chord before its deadline")
	}
}

func TestStripLocksRemovesNumLockAndCapsLock(t *testing.T) {
	state := uint16(xproto.ModMaskShift | xproto.ModMask2 | xproto.ModMaskLock)
	got := stripLocks(state)
	if got != xproto.ModMaskShift {
		t.Fatalf("stripLocks() = %#x, want %#x", got, xproto.ModMaskShift)
	}
}

// XKEscapeForTest avoids importing internal/keysym just for one constant in
// this white-box test; it must match keysym.XKEscape's value.
const XKEscapeForTest = 0xff1b
