package bar

import (
	"testing"
	"time"
)

func TestRunDueRefreshesOnlyDueBlocks(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	due := &Block{Source: SourceStatic, Text: "due", Interval: time.Minute, nextDue: now}
	notDue := &Block{Source: SourceStatic, Text: "later", Interval: time.Minute, nextDue: now.Add(time.Hour)}
	changed := RunDue([]*Block{due, notDue}, now)
	if !changed {
		t.Fatal("RunDue() = false, want true (the due block's text changed)")
	}
	if due.Rendered() != "due" {
		t.Fatalf("due block rendered = %q, want %q", due.Rendered(), "due")
	}
	if notDue.Rendered() != "" {
		t.Fatalf("not-due block should be untouched, got %q", notDue.Rendered())
	}
}

func TestRunDueReportsNoChangeWhenNothingDue(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &Block{Source: SourceStatic, Text: "x", Interval: time.Minute, nextDue: now.Add(time.Minute)}
	if changed := RunDue([]*Block{b}, now); changed {
		t.Fatal("RunDue() = true, want false when no block is due")
	}
}

func TestNextDeadlinePicksTheSoonestBlock(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &Block{nextDue: base.Add(5 * time.Minute)}
	b := &Block{nextDue: base.Add(1 * time.Minute)}
	c := &Block{nextDue: base.Add(10 * time.Minute)}
	got, ok := NextDeadline([]*Block{a, b, c})
	if !ok {
		t.Fatal("NextDeadline() ok = false, want true")
	}
	if !got.Equal(b.nextDue) {
		t.Fatalf("NextDeadline() = %v, want %v", got, b.nextDue)
	}
}

func TestNextDeadlineEmptyReturnsFalse(t *testing.T) {
	if _, ok := NextDeadline(nil); ok {
		t.Fatal("NextDeadline(nil) ok = true, want false")
	}
}

func TestInitSetsEveryBlockDueNow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	blocks := []*Block{{Interval: time.Minute}, {Interval: time.Hour}}
	Init(blocks, now)
	for _, b := range blocks {
		if !b.Due(now) {
			t.Fatalf("block nextDue = %v, want due at %v", b.nextDue, now)
		}
	}
}
