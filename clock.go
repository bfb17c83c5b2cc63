package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day, stored as minutes since midnight.
type Clock int

// NullClock represents a Clock that may be absent.
type NullClock struct {
	Clock Clock
	Valid bool
}

// ParseClock parses "H:MM", "HH:MM" or "HH:MM:SS". Seconds are checked and
// then dropped.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	if len(parts) == 3 {
		if len(parts[2]) != 2 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
		second, err := strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}

	return Clock(hour*60 + minute), nil
}

// ParseNullClock treats an empty string as an absent time.
func ParseNullClock(s string) (NullClock, error) {
	if strings.TrimSpace(s) == "" {
		return NullClock{}, nil
	}
	c, err := ParseClock(s)
	if err != nil {
		return NullClock{}, err
	}
	return NullClock{Clock: c, Valid: true}, nil
}

func NewNullClock(c Clock) NullClock {
	return NullClock{Clock: c, Valid: true}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Sub returns the number of minutes from o to c.
func (c Clock) Sub(o Clock) int {
	return int(c) - int(o)
}

// String renders an absent time as the empty string, which is what the
// store expects for unset fields.
func (n NullClock) String() string {
	if !n.Valid {
		return ""
	}
	return n.Clock.String()
}
