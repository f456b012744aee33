package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"backoffice/internal/table"
)

// Spreadsheet writes the processed rows into a single-sheet workbook. Cells
// go through each column's render transform when present, else the raw value.
// The caller supplies the base filename; rows are whatever is currently
// processed, which in server mode means the loaded page only.
func Spreadsheet(rows []table.Row, cols []table.Column, base string) ([]byte, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("header coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col.Label); err != nil {
			return nil, "", err
		}
	}

	for r, row := range rows {
		for i, col := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, "", fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, col.Cell(row)); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), base + ".xlsx", nil
}
