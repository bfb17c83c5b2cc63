package main

// FindToday returns the first record of month dated today. Duplicates
// after the first match are ignored.
func FindToday(month []Record, today string) (Record, bool) {
	for _, r := range month {
		if r.Date == today {
			return r, true
		}
	}
	return Record{}, false
}
