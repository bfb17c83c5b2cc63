package main

import (
	"time"

	"github.com/google/uuid"
)

// layout of Record.Date
const DateLayout = "02/01/2006"

type Kind string

const (
	KindAutomatic Kind = "automatic"
	KindManual    Kind = "manual"
)

// Label is the badge text shown next to a record.
func (k Kind) Label() string {
	if k == KindManual {
		return "Manual"
	}
	return "Automatic"
}

// Record is one day's attendance entry.
type Record struct {
	ID             string
	Date           string
	EntryTime      NullClock
	BreakStartTime NullClock
	BreakEndTime   NullClock
	ExitTime       NullClock
	Kind           Kind
}

func NewRecordID() string {
	return uuid.NewString()
}

// FormatDate renders t the way Record.Date is stored.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ClockOf returns the wall-clock time of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

// Fields flattens the record into the form the store accepts, with empty
// strings for absent times.
func (r Record) Fields() map[string]string {
	return map[string]string{
		"date":           r.Date,
		"entryTime":      r.EntryTime.String(),
		"breakStartTime": r.BreakStartTime.String(),
		"breakEndTime":   r.BreakEndTime.String(),
		"exitTime":       r.ExitTime.String(),
		"type":           string(r.Kind),
	}
}
