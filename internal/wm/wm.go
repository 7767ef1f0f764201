// Package wm is the central orchestrator: the event loop plus the
// client-lifecycle operations (Manage/Unmanage/Focus), wired to the
// layout engine, monitor manager, keyboard dispatcher, action vocabulary
// and bar renderer.
package wm

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/xsoder/oxwm/internal/bar"
	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/config"
	"github.com/xsoder/oxwm/internal/keyboard"
	"github.com/xsoder/oxwm/internal/logging"
	"github.com/xsoder/oxwm/internal/monitor"
	"github.com/xsoder/oxwm/internal/x11"
)

var log = logging.New("wm")

// WM owns the X connection, the settled config, every monitor, the
// keyboard dispatcher and the per-monitor bars.
type WM struct {
	conn *x11.Conn
	cfg  *config.Settled

	monitors []*monitor.Monitor
	selMon   int

	dispatcher *keyboard.Dispatcher
	bars       map[int]*bar.Bar

	clientsByWindow map[xproto.Window]*client.Client

	// drag tracks an in-progress Mod+drag move/resize on a floating
	// client.
	drag *dragState

	quit           bool
	restart        bool
	overlayVisible bool
}

// New opens the X connection and prepares (but does not yet activate) the
// WM state.
func New(cfg *config.Settled) (*WM, error) {
	conn, err := x11.Open()
	if err != nil {
		return nil, fmt.Errorf("wm: %w", err)
	}
	return &WM{
		conn:            conn,
		cfg:             cfg,
		bars:            map[int]*bar.Bar{},
		clientsByWindow: map[xproto.Window]*client.Client{},
	}, nil
}

// Init becomes the window manager, enumerates monitors, builds the
// keyboard grab table, creates the bars and adopts pre-existing windows.
func (wm *WM) Init() error {
	if err := wm.conn.BecomeWM(); err != nil {
		if _, ok := err.(*xproto.AccessError); ok {
			return fmt.Errorf("could not become WM, is another WM already running?")
		}
		return fmt.Errorf("wm: becomeWM: %w", err)
	}
	if err := wm.conn.SetupSupportingWMCheck("oxwm"); err != nil {
		return fmt.Errorf("wm: supporting WM check: %w", err)
	}

	randr.Init(wm.conn.X)
	randr.SelectInput(wm.conn.X, wm.conn.Root, randr.NotifyMaskScreenChange)

	wm.monitors = monitor.Enumerate(wm.conn, nil, 0, string(wm.cfg.DefaultLayout), wm.cfg.MasterFactor, wm.cfg.NumMaster)
	if len(wm.monitors) > 0 {
		wm.monitors[0].Selected = true
	}

	if err := wm.createBars(); err != nil {
		return fmt.Errorf("wm: creating bars: %w", err)
	}

	d, err := keyboard.New(wm.conn, wm.cfg.Bindings)
	if err != nil {
		return fmt.Errorf("wm: keyboard dispatcher: %w", err)
	}
	d.OnOverlay = wm.setOverlay
	wm.dispatcher = d
	if err := wm.dispatcher.GrabAll(); err != nil {
		return fmt.Errorf("wm: grabbing keys: %w", err)
	}

	if err := wm.scan(); err != nil {
		return fmt.Errorf("wm: initial scan: %w", err)
	}

	wm.runAutostart()

	return nil
}

// createBars builds one Bar per monitor and recomputes each monitor's
// work area from the resulting bar height.
func (wm *WM) createBars() error {
	for _, m := range wm.monitors {
		if _, ok := wm.bars[m.Index]; ok {
			continue
		}
		barCfg := &bar.Config{
			Font:           wm.cfg.Font,
			SchemeNormal:   wm.cfg.SchemeNormal,
			SchemeOccupied: wm.cfg.SchemeOccupied,
			SchemeSelected: wm.cfg.SchemeSelected,
			Blocks:         wm.cfg.Blocks,
			Degraded:       wm.cfg.Degraded,
		}
		b, err := bar.New(wm.conn, barCfg, m.Bounds)
		if err != nil {
			return err
		}
		wm.bars[m.Index] = b
		m.BarHeight = b.Height()
	}
	bar.Init(wm.cfg.Blocks, time.Now())
	return nil
}

// scan adopts every pre-existing top-level window, filtering
// override-redirect windows the same way MapRequest handling does.
// Unmapped windows are skipped unless they carry WM_STATE Iconic, in
// which case they are attached without being re-mapped.
func (wm *WM) scan() error {
	children, err := wm.conn.QueryTree()
	if err != nil {
		return err
	}
	for _, win := range children {
		attr, err := wm.conn.WindowAttributes(win)
		if err != nil || attr.OverrideRedirect {
			continue
		}
		if attr.MapState == xproto.MapStateUnmapped {
			if state, err := wm.conn.WMState(win); err != nil || state != x11.WMStateIconic {
				continue
			}
		}
		if wm.isBarWindow(win) {
			continue
		}
		if err := wm.Manage(win); err != nil {
			log.Println("scan: failed to manage window:", err)
		}
	}
	return nil
}

func (wm *WM) isBarWindow(win xproto.Window) bool {
	for _, b := range wm.bars {
		if b.Window() == win {
			return true
		}
	}
	return false
}

func (wm *WM) runAutostart() {
	for _, cmd := range wm.cfg.Autostart {
		c := exec.Command("sh", "-c", cmd)
		c.Env = os.Environ()
		if err := c.Start(); err != nil {
			log.Println("autostart: spawn failed:", err)
			continue
		}
		go c.Wait()
	}
}

// Close releases X resources (called before re-exec on Restart, or on
// clean Quit).
func (wm *WM) Close() {
	for _, b := range wm.bars {
		b.Destroy()
	}
	wm.conn.DestroySupportingWMCheck()
	wm.conn.Close()
}

// ShouldRestart reports whether Run returned because of the Restart
// action; the caller re-execs the process image in that case.
func (wm *WM) ShouldRestart() bool { return wm.restart }

func (wm *WM) setOverlay(show bool) {
	if wm.overlayVisible == show {
		return
	}
	wm.overlayVisible = show
	wm.repaintAllBars()
}
