package engine

import "time"

// StartOfDay truncates a timestamp to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsNewDay reports whether now is on a later calendar day than the last
// recorded care event. The streak counter only ever increases, once per new
// day touched; a missed day does not reset it.
func IsNewDay(last, now time.Time) bool {
	if last.IsZero() {
		return true
	}
	return !SameDay(last, now) && now.After(last)
}
