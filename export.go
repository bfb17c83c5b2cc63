package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Records"

// ExportMonth writes records to an xlsx workbook at path, one row per
// record and a total row at the bottom.
func ExportMonth(path string, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	header := make([]interface{}, len(monthHeaders))
	for i, h := range monthHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	rows, total := monthRows(records)
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &cells); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	totalRow := len(rows) + 2
	cell, err := excelize.CoordinatesToCellName(len(monthHeaders)-1, totalRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, cell, &[]interface{}{"Total:", FormatWorkMinutes(total)}); err != nil {
		return fmt.Errorf("error writing total: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}
