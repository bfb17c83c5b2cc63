package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintMonth(t *testing.T) {
	var buf bytes.Buffer
	PrintMonth(&buf, []Record{
		record("09:00", "", "", "18:00"),
		record("09:00", "", "", "17:30"),
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Date"))
	assert.Contains(t, lines[1], "9h 0min")
	assert.Contains(t, lines[2], "8h 30min")
	assert.Contains(t, lines[3], "Total:")
	assert.Contains(t, lines[3], "17h 30min")
}

func TestPrintMonthEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintMonth(&buf, nil)
	assert.Equal(t, "No records found this month\n", buf.String())
}

func TestPrintToday(t *testing.T) {
	var buf bytes.Buffer
	PrintToday(&buf, record("09:00", "12:00", "", ""), true)

	out := buf.String()
	assert.Contains(t, out, "Today - 02/03/2024 (on break)")
	assert.Contains(t, out, "Break start")
	assert.NotContains(t, out, "Break end")
	assert.NotContains(t, out, "Total")

	buf.Reset()
	PrintToday(&buf, record("09:00", "12:00", "13:00", "18:00"), true)
	assert.Contains(t, buf.String(), "8h 0min")

	buf.Reset()
	PrintToday(&buf, record("", "", "", "18:00"), true)
	assert.Equal(t, "Not clocked in today\n", buf.String())
}

func TestPrintTableWidensColumns(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"A", "B"}, [][]string{{"long cell", "x"}}, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "A        \tB\t", lines[0])
}
