package main

import (
	"fmt"
	"io"
)

func PrintTable(w io.Writer, headers []string, rows [][]string, footers []string) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}
	for i, footer := range footers {
		if len(footer) > colWidths[i] {
			colWidths[i] = len(footer)
		}
	}

	// print header
	for i, header := range headers {
		fmt.Fprintf(w, "%-*s\t", colWidths[i], header)
	}
	fmt.Fprintln(w)

	// print rows
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(w, "%-*s\t", colWidths[i], cell)
		}
		fmt.Fprintln(w)
	}

	if footers == nil {
		return
	}

	// print footer, skipped cells stay blank
	for i, footer := range footers {
		fmt.Fprintf(w, "%-*s\t", colWidths[i], footer)
	}
	fmt.Fprintln(w)
}

// orDash renders absent times in tables
func orDash(nc NullClock) string {
	if !nc.Valid {
		return "-"
	}
	return nc.String()
}

var monthHeaders = []string{"Date", "Type", "Entry", "Break", "Return", "Exit", "Worked"}

// monthRows renders records as table rows and sums the durations that can
// be computed.
func monthRows(records []Record) (rows [][]string, total int) {
	for _, r := range records {
		rows = append(rows, []string{
			r.Date,
			r.Kind.Label(),
			orDash(r.EntryTime),
			orDash(r.BreakStartTime),
			orDash(r.BreakEndTime),
			orDash(r.ExitTime),
			WorkDuration(r),
		})
		if minutes, ok := WorkMinutes(r); ok {
			total += minutes
		}
	}
	return rows, total
}

func PrintMonth(w io.Writer, records []Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found this month")
		return
	}

	rows, total := monthRows(records)
	footers := []string{"", "", "", "", "", "Total:", FormatWorkMinutes(total)}
	PrintTable(w, monthHeaders, rows, footers)
}

// PrintToday shows today's punches, with the worked time once the exit is
// in. Nothing is shown before the entry.
func PrintToday(w io.Writer, r Record, ok bool) {
	if !ok || !r.EntryTime.Valid {
		fmt.Fprintln(w, "Not clocked in today")
		return
	}

	fmt.Fprintf(w, "Today - %s (%s)\n", r.Date, DayState(&r))
	items := []struct {
		label string
		value NullClock
	}{
		{"Entry", r.EntryTime},
		{"Break start", r.BreakStartTime},
		{"Break end", r.BreakEndTime},
		{"Exit", r.ExitTime},
	}
	for _, item := range items {
		if item.value.Valid {
			fmt.Fprintf(w, "  %-12s %s\n", item.label, item.value)
		}
	}
	if r.ExitTime.Valid {
		fmt.Fprintf(w, "  %-12s %s\n", "Total", WorkDuration(r))
	}
}
