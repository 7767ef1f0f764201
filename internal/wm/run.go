package wm

import (
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/bar"
)

// Run is the main event loop. The X connection is not file-descriptor
// pollable through xgb's API, so a pump goroutine blocks on
// WaitForEvent and forwards to a channel; Run itself selects between
// that channel and a timer capped at the nearest bar-block or chord
// deadline, draining X events, then running the bar scheduler, then
// repainting dirty bars, then flushing, in that order every iteration.
func (wm *WM) Run() error {
	events := make(chan xgb.Event, 64)
	errs := make(chan error, 1)
	go wm.pump(events, errs)

	if err := wm.grabModButtons(); err != nil {
		return err
	}

	for !wm.quit {
		wait := wm.nextWait()
		timer := time.NewTimer(wait)
		select {
		case ev := <-events:
			timer.Stop()
			wm.handleEvent(ev)
			wm.drainPending(events)
		case err := <-errs:
			timer.Stop()
			return err
		case <-timer.C:
		}

		changed := bar.RunDue(wm.cfg.Blocks, time.Now())
		if err := wm.dispatcher.Tick(time.Now()); err != nil {
			log.Println("chord tick:", err)
		}
		if changed {
			wm.repaintAllBars()
		}
		if err := wm.conn.Sync(); err != nil {
			log.Println("x11:", err)
		}
	}
	return nil
}

// drainPending handles every event already queued without waiting, so
// a burst (e.g. a client mapping several windows at once) is processed
// before the scheduler/tick pass runs.
func (wm *WM) drainPending(events chan xgb.Event) {
	for {
		select {
		case ev := <-events:
			wm.handleEvent(ev)
		default:
			return
		}
	}
}

// pump is the sole goroutine that calls WaitForEvent; it exists only to
// turn the blocking xgb API into something select-able alongside
// timers.
func (wm *WM) pump(events chan<- xgb.Event, errs chan<- error) {
	for {
		ev, err := wm.conn.X.WaitForEvent()
		if err != nil {
			errs <- err
			return
		}
		if ev != nil {
			events <- ev
		}
	}
}

// nextWait computes how long Run should block before the next forced
// wake-up: the sooner of the chord timeout and the next bar-block
// deadline, clamped to a keepalive ceiling so a config with no status
// blocks still ticks occasionally.
func (wm *WM) nextWait() time.Duration {
	const keepalive = 2 * time.Second
	now := time.Now()
	best := now.Add(keepalive)
	if d, ok := wm.dispatcher.NextDeadline(); ok && d.Before(best) {
		best = d
	}
	if d, ok := bar.NextDeadline(wm.cfg.Blocks); ok && d.Before(best) {
		best = d
	}
	wait := best.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait
}

func (wm *WM) handleEvent(xev xgb.Event) {
	switch e := xev.(type) {
	case xproto.MapRequestEvent:
		wm.handleMapRequest(e)
	case xproto.UnmapNotifyEvent:
		wm.handleUnmapNotify(e)
	case xproto.DestroyNotifyEvent:
		wm.handleDestroyNotify(e)
	case xproto.ConfigureRequestEvent:
		wm.handleConfigureRequest(e)
	case xproto.ConfigureNotifyEvent:
		wm.handleConfigureNotify(e)
	case xproto.PropertyNotifyEvent:
		wm.handlePropertyNotify(e)
	case xproto.EnterNotifyEvent:
		wm.handleEnterNotify(e)
	case xproto.ClientMessageEvent:
		wm.handleClientMessage(e)
	case xproto.KeyPressEvent:
		wm.handleKeyPress(e)
	case xproto.ButtonPressEvent:
		wm.handleButtonPress(e)
	case xproto.MotionNotifyEvent:
		wm.handleMotionNotify(e)
	case xproto.ButtonReleaseEvent:
		wm.handleButtonRelease(e)
	case xproto.ExposeEvent:
		wm.handleExpose(e)
	case xproto.MappingNotifyEvent:
		wm.handleMappingNotify(e)
	case randr.ScreenChangeNotifyEvent:
		wm.handleScreenChangeNotify(e)
	}
}
