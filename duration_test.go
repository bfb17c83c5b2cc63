package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(entry, breakStart, breakEnd, exit string) Record {
	parse := func(s string) NullClock {
		nc, err := ParseNullClock(s)
		if err != nil {
			panic(err)
		}
		return nc
	}
	return Record{
		Date:           "02/03/2024",
		EntryTime:      parse(entry),
		BreakStartTime: parse(breakStart),
		BreakEndTime:   parse(breakEnd),
		ExitTime:       parse(exit),
		Kind:           KindAutomatic,
	}
}

func TestWorkDurationScenarios(t *testing.T) {
	cases := []struct {
		name   string
		record Record
		want   string
	}{
		{"full day without break", record("09:00", "", "", "18:00"), "9h 0min"},
		{"full day with break", record("09:00", "12:00", "13:00", "18:00"), "8h 0min"},
		{"half hour", record("09:00", "", "", "17:30"), "8h 30min"},
		{"no entry", record("", "", "", "18:00"), "-"},
		{"no exit", record("09:00", "12:00", "13:00", ""), "-"},
		{"break start only", record("09:00", "12:00", "", "18:00"), "9h 0min"},
		{"break end only", record("09:00", "", "13:00", "18:00"), "9h 0min"},
		{"exit before entry", record("10:30", "", "", "09:00"), "-2h -30min"},
		{"exact negative hour", record("10:00", "", "", "09:00"), "-1h 0min"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WorkDuration(tc.record))
		})
	}
}

func TestWorkMinutesSubtractsBreakOnlyWhenComplete(t *testing.T) {
	for entry := Clock(0); entry < 1440; entry += 97 {
		for exit := entry; exit < 1440; exit += 131 {
			r := Record{EntryTime: NewNullClock(entry), ExitTime: NewNullClock(exit)}

			total, ok := WorkMinutes(r)
			assert.True(t, ok)
			assert.Equal(t, exit.Sub(entry), total)

			// a break with only one end changes nothing
			r.BreakStartTime = NewNullClock(entry)
			total, _ = WorkMinutes(r)
			assert.Equal(t, exit.Sub(entry), total)

			mid := entry + (exit-entry)/2
			r.BreakEndTime = NewNullClock(mid)
			total, _ = WorkMinutes(r)
			assert.Equal(t, exit.Sub(entry)-mid.Sub(entry), total)
		}
	}
}

func TestFormatWorkMinutes(t *testing.T) {
	cases := map[int]string{
		0:    "0h 0min",
		59:   "0h 59min",
		60:   "1h 0min",
		61:   "1h 1min",
		510:  "8h 30min",
		1439: "23h 59min",
		-1:   "-1h -1min",
		-61:  "-2h -1min",
	}
	for total, want := range cases {
		assert.Equal(t, want, FormatWorkMinutes(total), total)
	}
}
