package bar

import "time"

// RunDue refreshes every block whose deadline has passed, returning
// whether any block's rendered text changed — the bar only needs a full
// redraw when that's true.
func RunDue(blocks []*Block, now time.Time) bool {
	changed := false
	for _, b := range blocks {
		if b.Due(now) {
			if b.Refresh(now) {
				changed = true
			}
		}
	}
	return changed
}

// NextDeadline returns the soonest of every block's next-due time, used
// by the event loop to cap its select/poll wait.
func NextDeadline(blocks []*Block) (time.Time, bool) {
	var best time.Time
	found := false
	for _, b := range blocks {
		if !found || b.nextDue.Before(best) {
			best = b.nextDue
			found = true
		}
	}
	return best, found
}

// Init sets every block's initial deadline to "now" so the first event
// loop iteration renders them immediately.
func Init(blocks []*Block, now time.Time) {
	for _, b := range blocks {
		b.nextDue = now
	}
}
