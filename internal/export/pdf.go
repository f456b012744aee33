package export

import (
	"bytes"

	"github.com/phpdave11/gofpdf"

	"backoffice/internal/table"
)

// Document writes the processed rows as a header-plus-matrix table in a PDF.
// Same cell contract as Spreadsheet: render transform when present, raw
// value otherwise.
func Document(rows []table.Row, cols []table.Column, base string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(base, false)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(cols))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range cols {
		pdf.CellFormat(colW, 7, col.Label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for _, col := range cols {
			pdf.CellFormat(colW, 6, table.CellString(col.Cell(row)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), base + ".pdf", nil
}
