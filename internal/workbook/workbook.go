// =============================================================================
// dzcb - XLSX Workbook Support
// =============================================================================
//
// Spreadsheet users often keep their K7ABD data in one workbook instead of a
// folder of CSV exports. This module reads every sheet of such a workbook as
// raw rows, so the sheets can be fed to the same parsers as CSV files, and
// writes review workbooks that mirror the generated CSV tables.
//
// SHEET NAMING:
//   A sheet contributes to an input category when its name carries the
//   category prefix, exactly like a CSV file name without the extension:
//
//     | Sheet name            | Treated like                  |
//     |-----------------------|-------------------------------|
//     | Talkgroups__BM        | Talkgroups__BM.csv            |
//     | Analog__Simplex       | Analog__Simplex.csv           |
//     | _notes                | ignored (leading underscore)  |
//
// =============================================================================

package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet as rows of cell strings.
type Sheet struct {
	Name string
	Rows [][]string
}

// =============================================================================
// READING
// =============================================================================

// ReadSheets reads every visible sheet of an XLSX workbook. Sheets whose
// names begin with an underscore are skipped.
func ReadSheets(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		visible, err := f.GetSheetVisible(name)
		if err == nil && !visible {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet '%s': %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// =============================================================================
// WRITING
// =============================================================================

// Write saves the sheets to a new workbook at path, in order. The first row
// of each sheet is styled as a header and frozen.
func Write(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet '%s': %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet '%s': %w", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			values := make([]interface{}, len(row))
			for c, v := range row {
				values[c] = v
			}
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return fmt.Errorf("failed to write sheet '%s' row %d: %w", sheet.Name, r+1, err)
			}
		}

		if len(sheet.Rows) > 0 && len(sheet.Rows[0]) > 0 {
			last, err := excelize.CoordinatesToCellName(len(sheet.Rows[0]), 1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
				return fmt.Errorf("failed to style header of '%s': %w", sheet.Name, err)
			}
			if err := f.SetPanes(sheet.Name, &excelize.Panes{
				Freeze:      true,
				YSplit:      1,
				TopLeftCell: "A2",
				ActivePane:  "bottomLeft",
			}); err != nil {
				return fmt.Errorf("failed to freeze header of '%s': %w", sheet.Name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
