package wm

import (
	"os"
	"os/exec"

	"github.com/xsoder/oxwm/internal/action"
	"github.com/xsoder/oxwm/internal/monitor"
)

// Dispatch executes act. This is the only place that switches on Verb,
// the single pattern-match point between the keyboard dispatcher's
// matches and the WM's mutating operations.
func (wm *WM) Dispatch(act action.Action) {
	mon := wm.selectedMonitor()
	switch act.Verb {
	case action.Spawn:
		wm.spawn(act.Arg)
	case action.KillClient:
		wm.killFocused(mon)
	case action.FocusStack:
		wm.focusStack(act.Arg.(int))
	case action.FocusDirection:
		wm.focusDirection(act.Arg.(action.Direction))
	case action.SwapDirection:
		wm.swapDirection(act.Arg.(action.Direction))
	case action.Quit:
		wm.quit = true
	case action.Restart:
		wm.quit = true
		wm.restart = true
	case action.ViewTag:
		wm.viewTag(wm.tagBitForIndex(act.Arg.(int)))
	case action.MoveToTag:
		wm.moveToTag(wm.tagBitForIndex(act.Arg.(int)))
	case action.ToggleGaps:
		wm.toggleGaps()
	case action.ToggleFullScreen:
		if mon != nil {
			wm.toggleFullscreen(mon.Focused())
		}
	case action.ToggleFloating:
		if mon != nil {
			wm.toggleFloating(mon.Focused())
		}
	case action.ChangeLayout:
		if mon != nil {
			wm.changeLayout(mon, act.Arg.(string))
		}
	case action.CycleLayout:
		if mon != nil {
			wm.cycleLayout(mon)
		}
	case action.FocusMonitor:
		wm.focusMonitor(act.Arg.(int))
	case action.MoveToMonitor:
		wm.moveToMonitor(act.Arg.(int))
	case action.ShowKeybindOverlay:
		wm.overlayVisible = !wm.overlayVisible
		wm.repaintAllBars()
	case action.SetMasterFactor:
		if mon != nil {
			wm.setMasterFactor(mon, act.Arg.(float64))
		}
	case action.IncNumMaster:
		if mon != nil {
			wm.incNumMaster(mon, act.Arg.(int))
		}
	}
}

// spawn execs the given command directly: a plain string becomes the
// child's sole argv entry, an argv slice is passed through as-is. No
// shell is involved. A nil arg launches the configured terminal.
func (wm *WM) spawn(arg any) {
	var cmd *exec.Cmd
	switch v := arg.(type) {
	case string:
		cmd = exec.Command(v)
	case []string:
		if len(v) == 0 {
			return
		}
		cmd = exec.Command(v[0], v[1:]...)
	default:
		cmd = exec.Command(wm.cfg.Terminal)
	}
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		log.Println("spawn:", err)
		return
	}
	go cmd.Wait()
}

// killFocused requests the focused client close, via WM_DELETE_WINDOW if
// supported, otherwise XKillClient.
func (wm *WM) killFocused(mon *monitor.Monitor) {
	if mon == nil {
		return
	}
	c := mon.Focused()
	if c == nil {
		return
	}
	if c.SupportsDelete {
		wm.conn.SendClientMessage(c.Window, wm.conn.Atom("WM_PROTOCOLS"),
			[]uint32{uint32(wm.conn.Atom("WM_DELETE_WINDOW"))})
		return
	}
	wm.conn.KillClient(c.Window)
}
