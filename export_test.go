package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "march.xlsx")
	records := []Record{
		record("09:00", "12:00", "13:00", "18:00"),
		record("09:00", "", "", ""),
	}
	records[1].Date = "03/03/2024"
	records[1].Kind = KindManual

	require.NoError(t, ExportMonth(path, records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, monthHeaders, rows[0])
	assert.Equal(t, []string{"02/03/2024", "Automatic", "09:00", "12:00", "13:00", "18:00", "8h 0min"}, rows[1])
	assert.Equal(t, []string{"03/03/2024", "Manual", "09:00", "-", "-", "-", "-"}, rows[2])
	assert.Equal(t, []string{"", "", "", "", "", "Total:", "8h 0min"}, rows[3])
}

func TestExportEmptyMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, ExportMonth(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0h 0min", rows[1][6])
}
