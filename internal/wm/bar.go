package wm

import (
	"fmt"
	"strings"

	"github.com/xsoder/oxwm/internal/action"
	"github.com/xsoder/oxwm/internal/bar"
	"github.com/xsoder/oxwm/internal/layout"
	"github.com/xsoder/oxwm/internal/monitor"
)

// repaintBar redraws mon's bar from current state: tag cells, layout
// symbol, focused title and status blocks.
func (wm *WM) repaintBar(mon *monitor.Monitor) {
	b := wm.bars[mon.Index]
	if b == nil {
		return
	}
	tagMask := uint32(1)
	cells := make([]bar.TagCell, 0, len(wm.cfg.Tags))
	for _, name := range wm.cfg.Tags {
		cells = append(cells, bar.TagCell{
			Name:     name,
			Occupied: mon.Occupied(tagMask),
			Selected: mon.SelTags&tagMask != 0,
		})
		tagMask <<= 1
	}

	title := ""
	if focused := mon.Focused(); focused != nil {
		title = focused.Title
	}
	if layout.Name(mon.Layout) == layout.Tabbed {
		title = wm.tabStripText(mon)
	}
	symbol := wm.cfg.LayoutSymbols[layout.Name(mon.Layout)]
	if symbol == "" {
		symbol = layout.Symbol(layout.Name(mon.Layout))
	}
	if wm.overlayVisible && mon.Selected {
		title = wm.keybindOverlayText()
	}

	if err := b.Draw(bar.DrawState{Tags: cells, LayoutSymbol: symbol, Title: title}); err != nil {
		log.Println("repaint bar:", err)
	}
}

// repaintAllBars redraws every monitor's bar.
func (wm *WM) repaintAllBars() {
	for _, mon := range wm.monitors {
		wm.repaintBar(mon)
	}
}

// tabStripText renders the tabbed layout's tab strip into the title
// slot: every tabbed client by title, the focused one bracketed.
func (wm *WM) tabStripText(mon *monitor.Monitor) string {
	focused := mon.Focused()
	var parts []string
	for _, c := range mon.VisibleClients() {
		if c.Floating {
			continue
		}
		t := c.Title
		if t == "" {
			t = "(untitled)"
		}
		if c == focused {
			t = "[" + t + "]"
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, "  ")
}

// keybindOverlayText renders the keybind overlay as a one-line hint in
// the bar title slot, replacing the focused window's title. Mid-chord
// it names the actions still reachable; otherwise it summarizes the
// whole binding table.
func (wm *WM) keybindOverlayText() string {
	if pending := wm.dispatcher.Pending(); len(pending) > 0 {
		names := make([]string, 0, len(pending))
		for _, b := range pending {
			names = append(names, action.Names[b.Action.Verb])
		}
		return "chord: " + strings.Join(names, "  ")
	}
	return fmt.Sprintf("-- %d keybindings configured --", len(wm.cfg.Bindings))
}
