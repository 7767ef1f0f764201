package monitor

import (
	"testing"

	"github.com/xsoder/oxwm/internal/client"
	"github.com/xsoder/oxwm/internal/geom"
)

func newTestMonitor() *Monitor {
	return &Monitor{
		Index:    0,
		Bounds:   geom.Rect{X: 0, Y: 0, W: 1920, H: 1080},
		SelTags:  1,
		PrevTags: 1,
	}
}

func TestWorkAreaSubtractsBarHeight(t *testing.T) {
	m := newTestMonitor()
	m.BarHeight = 20
	wa := m.WorkArea()
	if wa.Y != 20 || wa.H != 1060 {
		t.Fatalf("WorkArea() = %+v, want Y=20 H=1060", wa)
	}
}

func TestWorkAreaClampsWhenBarExceedsBounds(t *testing.T) {
	m := newTestMonitor()
	m.Bounds.H = 10
	m.BarHeight = 50
	wa := m.WorkArea()
	if wa.H != 0 {
		t.Fatalf("WorkArea().H = %d, want 0 when bar height exceeds bounds", wa.H)
	}
}

func TestVisibleClientsFiltersByTagMask(t *testing.T) {
	m := newTestMonitor()
	c1 := client.New(1, 0, 1) // tag 1, visible
	c2 := client.New(2, 0, 2) // tag 2, not visible
	m.AppendClient(c1)
	m.AppendClient(c2)
	vis := m.VisibleClients()
	if len(vis) != 1 || vis[0] != c1 {
		t.Fatalf("VisibleClients() = %v, want [c1]", vis)
	}
}

func TestVisibleClientsSkipsIconic(t *testing.T) {
	m := newTestMonitor()
	c1 := client.New(1, 0, 1)
	c2 := client.New(2, 0, 1)
	c2.Iconic = true
	m.AppendClient(c1)
	m.AppendClient(c2)
	vis := m.VisibleClients()
	if len(vis) != 1 || vis[0] != c1 {
		t.Fatalf("VisibleClients() = %v, want only the non-iconic client", vis)
	}
	if got := m.Focused(); got != c1 {
		t.Fatalf("Focused() = %v, want the non-iconic client", got)
	}
}

func TestOccupiedReportsAnyMatchingTag(t *testing.T) {
	m := newTestMonitor()
	m.AppendClient(client.New(1, 0, 4))
	if !m.Occupied(4) {
		t.Fatal("Occupied(4) = false, want true")
	}
	if m.Occupied(2) {
		t.Fatal("Occupied(2) = true, want false")
	}
}

func TestFocusedReturnsTopOfStackAmongVisible(t *testing.T) {
	m := newTestMonitor()
	c1 := client.New(1, 0, 1)
	c2 := client.New(2, 0, 2)
	m.AppendClient(c1) // stack: [c1]
	m.AppendClient(c2) // stack: [c2, c1]
	// c2 is on tag 2, not selected (SelTags == 1), so Focused should skip it.
	if got := m.Focused(); got != c1 {
		t.Fatalf("Focused() = %v, want c1", got)
	}
}

func TestFocusedReturnsNilWhenNothingVisible(t *testing.T) {
	m := newTestMonitor()
	m.SelTags = 8
	m.AppendClient(client.New(1, 0, 1))
	if got := m.Focused(); got != nil {
		t.Fatalf("Focused() = %v, want nil", got)
	}
}

func TestAppendClientAddsToTailAndTopOfStack(t *testing.T) {
	m := newTestMonitor()
	c1 := client.New(1, 0, 1)
	c2 := client.New(2, 0, 1)
	m.AppendClient(c1)
	m.AppendClient(c2)
	if len(m.Clients) != 2 || m.Clients[0] != c1 || m.Clients[1] != c2 {
		t.Fatalf("Clients = %v, want [c1, c2]", m.Clients)
	}
	if len(m.FocusStack) != 2 || m.FocusStack[0] != c2 || m.FocusStack[1] != c1 {
		t.Fatalf("FocusStack = %v, want [c2, c1]", m.FocusStack)
	}
	if c1.Monitor != m.Index || c2.Monitor != m.Index {
		t.Fatal("AppendClient() did not stamp the owning monitor index")
	}
}

func TestRemoveClientDropsFromBothLists(t *testing.T) {
	m := newTestMonitor()
	c1 := client.New(1, 0, 1)
	c2 := client.New(2, 0, 1)
	m.AppendClient(c1)
	m.AppendClient(c2)
	m.RemoveClient(c1)
	if len(m.Clients) != 1 || m.Clients[0] != c2 {
		t.Fatalf("Clients = %v, want [c2]", m.Clients)
	}
	if len(m.FocusStack) != 1 || m.FocusStack[0] != c2 {
		t.Fatalf("FocusStack = %v, want [c2]", m.FocusStack)
	}
}

func TestRaiseFocusPromotesToTop(t *testing.T) {
	m := newTestMonitor()
	c1 := client.New(1, 0, 1)
	c2 := client.New(2, 0, 1)
	m.AppendClient(c1) // [c1]
	m.AppendClient(c2) // [c2, c1]
	m.RaiseFocus(c1)
	if m.FocusStack[0] != c1 {
		t.Fatalf("FocusStack[0] = %v, want c1 after RaiseFocus", m.FocusStack[0])
	}
}

func TestVanishedReturnsMonitorsMissingFromFresh(t *testing.T) {
	existing := []*Monitor{{Index: 0}, {Index: 1}}
	fresh := []*Monitor{{Index: 0}}
	gone := Vanished(existing, fresh)
	if len(gone) != 1 || gone[0].Index != 1 {
		t.Fatalf("Vanished() = %v, want [monitor 1]", gone)
	}
}

func TestVanishedEmptyWhenNothingRemoved(t *testing.T) {
	existing := []*Monitor{{Index: 0}, {Index: 1}}
	fresh := []*Monitor{{Index: 0}, {Index: 1}}
	if gone := Vanished(existing, fresh); len(gone) != 0 {
		t.Fatalf("Vanished() = %v, want none", gone)
	}
}
