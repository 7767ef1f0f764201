package bar

import (
	"testing"
	"time"
)

func TestBlockDueInitiallyFalseThenTrueAfterInterval(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := &Block{Source: SourceStatic, Text: "x", Interval: time.Minute, nextDue: now.Add(time.Minute)}
	if b.Due(now) {
		t.Fatal("Due() = true before nextDue, want false")
	}
	if !b.Due(now.Add(time.Minute)) {
		t.Fatal("Due() = false at nextDue, want true")
	}
}

func TestBlockRefreshStaticNeverChangesAfterFirstRender(t *testing.T) {
	now := time.Now()
	b := &Block{Source: SourceStatic, Text: "hello", Interval: time.Second}
	if changed := b.Refresh(now); !changed {
		t.Fatal("first Refresh() should report a change from the empty initial string")
	}
	if changed := b.Refresh(now.Add(time.Second)); changed {
		t.Fatal("Refresh() with unchanged static text should report no change")
	}
	if b.Rendered() != "hello" {
		t.Fatalf("Rendered() = %q, want hello", b.Rendered())
	}
}

func TestBlockRefreshAdvancesNextDue(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &Block{Source: SourceStatic, Text: "x", Interval: 30 * time.Second}
	b.Refresh(now)
	if !b.nextDue.Equal(now.Add(30 * time.Second)) {
		t.Fatalf("nextDue = %v, want %v", b.nextDue, now.Add(30*time.Second))
	}
}

func TestBlockRefreshDateTimeFormatsWithStrftime(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 5, 6, 0, time.UTC)
	b := &Block{Source: SourceDateTime, Format: "%Y-%m-%d %H:%M:%S"}
	b.Refresh(now)
	want := "2026-03-04 09:05:06"
	if b.Rendered() != want {
		t.Fatalf("Rendered() = %q, want %q", b.Rendered(), want)
	}
}

func TestStrftimeToGoDefaultsOnEmptyOrPlaceholderFormat(t *testing.T) {
	want := "2006-01-02 15:04:05"
	if got := strftimeToGo(""); got != want {
		t.Fatalf("strftimeToGo(\"\") = %q, want %q", got, want)
	}
	if got := strftimeToGo("{}"); got != want {
		t.Fatalf("strftimeToGo(\"{}\") = %q, want %q", got, want)
	}
}

func TestStrftimeToGoTranslatesDirectives(t *testing.T) {
	got := strftimeToGo("%a %b %d")
	want := "Mon Jan 02"
	if got != want {
		t.Fatalf("strftimeToGo() = %q, want %q", got, want)
	}
}

func TestBlockRefreshBatteryFallsBackToUnknownFormat(t *testing.T) {
	b := &Block{
		Source: SourceBattery,
		BatteryFormats: map[string]string{
			"unknown": "n/a",
		},
	}
	b.Refresh(time.Now())
	if b.Rendered() != "n/a" && b.Rendered() != "" {
		t.Fatalf("Rendered() = %q, want the unknown-state format or an empty previous value", b.Rendered())
	}
}
