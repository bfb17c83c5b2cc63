package main

import "fmt"

// shown when a record has no computable duration
const NoDuration = "-"

// WorkMinutes returns the worked minutes of r. The break is subtracted only
// when both of its ends are present. ok is false without entry and exit.
// Nothing is clamped: an exit before the entry yields a negative total.
func WorkMinutes(r Record) (total int, ok bool) {
	if !r.EntryTime.Valid || !r.ExitTime.Valid {
		return 0, false
	}

	total = r.ExitTime.Clock.Sub(r.EntryTime.Clock)
	if r.BreakStartTime.Valid && r.BreakEndTime.Valid {
		total -= r.BreakEndTime.Clock.Sub(r.BreakStartTime.Clock)
	}

	return total, true
}

func WorkDuration(r Record) string {
	total, ok := WorkMinutes(r)
	if !ok {
		return NoDuration
	}
	return FormatWorkMinutes(total)
}

// FormatWorkMinutes renders "{h}h {m}min" with floored hours and a
// remainder that keeps the sign of total, so -90 becomes "-2h -30min".
func FormatWorkMinutes(total int) string {
	hours := total / 60
	if total%60 != 0 && total < 0 {
		hours--
	}
	minutes := total % 60

	return fmt.Sprintf("%dh %dmin", hours, minutes)
}
