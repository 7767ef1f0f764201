// Package keyboard implements the keycode/keysym-mapped grab table and
// the multi-keystroke chord state machine. Grabbing resolves each keysym
// to every keycode that produces it and issues XGrabKey once per
// lock-mask combination.
package keyboard

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/action"
	"github.com/xsoder/oxwm/internal/keysym"
	"github.com/xsoder/oxwm/internal/x11"
)

// Step is one (modifier, keysym) pair in a binding's chord sequence.
type Step struct {
	Mods uint16
	Sym  xproto.Keysym
}

// Binding is a configured keybinding: an ordered sequence of steps and the
// action it fires once the full sequence is matched.
type Binding struct {
	Steps  []Step
	Action action.Action
}

// lockMasks are the combinations of NumLock/CapsLock XGrabKey must be
// issued against so a binding fires regardless of lock state. Mod2 is
// NumLock on virtually every default modifier map; Regrab reloads the
// keymap itself on MappingNotify.
var lockMasks = []uint16{0, xproto.ModMask2, xproto.ModMaskLock, xproto.ModMask2 | xproto.ModMaskLock}

// chordTimeout is the inactivity timeout that cancels a pending chord.
const chordTimeout = 3 * time.Second

// state is the dispatcher's idle/chord state machine position.
type state int

const (
	idle state = iota
	inChord
)

// Dispatcher owns the grab table and chord state machine.
type Dispatcher struct {
	conn *x11.Conn
	km   keysym.Keymap

	bindings []Binding
	// grabbed maps (mods, keycode) -> matching bindings, for step 0 of
	// single-step bindings and the first step of every chord.
	grabbed map[grabKey][]*Binding

	state         state
	chordStep     int
	candidates    []*Binding
	chordDeadline time.Time

	// OnOverlay, when set, is invoked to show/hide the transient
	// keybind overlay (ShowKeybindOverlay action and chord entry hint).
	OnOverlay func(show bool)
}

type grabKey struct {
	mods uint16
	code xproto.Keycode
}

// New builds a dispatcher over the given bindings and loads the current
// keyboard mapping.
func New(conn *x11.Conn, bindings []Binding) (*Dispatcher, error) {
	km, err := keysym.Load(conn.X)
	if err != nil {
		return nil, err
	}
	d := &Dispatcher{conn: conn, km: km, bindings: bindings}
	d.rebuildGrabTable()
	return d, nil
}

// rebuildGrabTable recomputes the grabbed map from the current keymap and
// binding list. Bindings sharing a (mods, keycode) pair are kept in
// registration order and handleIdle fires the last-registered single-step
// one; such conflicts are not logged.
func (d *Dispatcher) rebuildGrabTable() {
	d.grabbed = map[grabKey][]*Binding{}
	for i := range d.bindings {
		b := &d.bindings[i]
		if len(b.Steps) == 0 {
			continue
		}
		first := b.Steps[0]
		for _, code := range d.km.Keycodes(first.Sym) {
			key := grabKey{mods: first.Mods, code: code}
			d.grabbed[key] = append(d.grabbed[key], b)
		}
	}
}

// GrabAll issues XGrabKey for every binding's first step, across every
// lock-mask combination.
func (d *Dispatcher) GrabAll() error {
	if err := d.conn.UngrabAllKeys(); err != nil {
		return err
	}
	for key := range d.grabbed {
		for _, lock := range lockMasks {
			if err := d.conn.GrabKey(key.mods|lock, key.code); err != nil {
				return err
			}
		}
	}
	return nil
}

// Regrab reloads the keymap and re-issues every grab; called on
// MappingNotify.
func (d *Dispatcher) Regrab() error {
	km, err := keysym.Load(d.conn.X)
	if err != nil {
		return err
	}
	d.km = km
	d.rebuildGrabTable()
	return d.GrabAll()
}

// HandleKeyPress advances the state machine on a KeyPress event, returning
// the action to fire, if any, this keystroke completed.
func (d *Dispatcher) HandleKeyPress(e xproto.KeyPressEvent) (action.Action, bool, error) {
	sym := d.km.Lookup(e.Detail)
	mods := stripLocks(e.State)

	switch d.state {
	case idle:
		return d.handleIdle(grabKey{mods: mods, code: e.Detail}, sym)
	case inChord:
		return d.handleChord(sym, mods)
	}
	return action.Action{}, false, nil
}

func (d *Dispatcher) handleIdle(key grabKey, sym xproto.Keysym) (action.Action, bool, error) {
	matches := d.grabbed[key]
	if len(matches) == 0 {
		return action.Action{}, false, nil
	}
	// Prefer a single-step binding if one matches exactly (the
	// last-registered one when several do); otherwise enter chord mode
	// with every multi-step candidate.
	for i := len(matches) - 1; i >= 0; i-- {
		if len(matches[i].Steps) == 1 {
			return matches[i].Action, true, nil
		}
	}
	var multi []*Binding
	for _, b := range matches {
		if len(b.Steps) > 1 {
			multi = append(multi, b)
		}
	}
	if len(multi) == 0 {
		return action.Action{}, false, nil
	}
	if err := d.conn.GrabKeyboard(); err != nil {
		return action.Action{}, false, err
	}
	d.state = inChord
	d.chordStep = 1
	d.candidates = multi
	d.chordDeadline = time.Now().Add(chordTimeout)
	if d.OnOverlay != nil {
		d.OnOverlay(true)
	}
	return action.Action{}, false, nil
}

func (d *Dispatcher) handleChord(sym xproto.Keysym, mods uint16) (action.Action, bool, error) {
	if sym == keysym.XKEscape && mods == 0 {
		return action.Action{}, false, d.cancelChord()
	}
	next, fired := matchChordStep(d.candidates, d.chordStep, sym, mods)
	if len(next) == 0 {
		return action.Action{}, false, d.cancelChord()
	}
	if fired != nil {
		return fired.Action, true, d.cancelChord()
	}
	d.candidates = next
	d.chordStep++
	d.chordDeadline = time.Now().Add(chordTimeout)
	return action.Action{}, false, nil
}

// matchChordStep is the pure decision core of handleChord: given the
// current candidates and step index, it returns the bindings still
// alive after this keystroke and, if one of them just completed, which
// one. Kept free of conn/X calls so it can be tested without a live
// connection.
func matchChordStep(candidates []*Binding, step int, sym xproto.Keysym, mods uint16) (next []*Binding, fired *Binding) {
	for _, b := range candidates {
		if step >= len(b.Steps) {
			continue
		}
		s := b.Steps[step]
		if s.Sym == sym && s.Mods == mods {
			next = append(next, b)
		}
	}
	for _, b := range next {
		if step == len(b.Steps)-1 {
			return next, b
		}
	}
	return next, nil
}

// chordExpired is the pure deadline check Tick uses, split out so the
// timeout policy can be tested without a live connection.
func chordExpired(deadline, now time.Time) bool {
	return now.After(deadline)
}

// cancelChord returns to Idle and releases the keyboard grab.
func (d *Dispatcher) cancelChord() error {
	d.state = idle
	d.chordStep = 0
	d.candidates = nil
	if d.OnOverlay != nil {
		d.OnOverlay(false)
	}
	if d.conn == nil {
		return nil
	}
	return d.conn.UngrabKeyboard()
}

// Tick checks the chord inactivity timeout; the event loop calls this once
// per iteration the way it checks bar block deadlines.
func (d *Dispatcher) Tick(now time.Time) error {
	if d.state == inChord && chordExpired(d.chordDeadline, now) {
		return d.cancelChord()
	}
	return nil
}

// NextDeadline reports the chord timeout deadline, used by the event loop
// to cap its select/poll wait.
func (d *Dispatcher) NextDeadline() (time.Time, bool) {
	if d.state == inChord {
		return d.chordDeadline, true
	}
	return time.Time{}, false
}

// InChord reports whether the dispatcher is mid-chord.
func (d *Dispatcher) InChord() bool { return d.state == inChord }

// Pending returns the bindings still matching the chord in progress,
// for the overlay hint. Nil when idle.
func (d *Dispatcher) Pending() []*Binding {
	if d.state != inChord {
		return nil
	}
	return d.candidates
}

func stripLocks(state uint16) uint16 {
	return state &^ (xproto.ModMask2 | xproto.ModMaskLock)
}
