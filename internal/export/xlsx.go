// Package export renders attendance sheets as .xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
)

const sheetName = "Registrations"

var header = []string{"Name", "Email", "Course", "Year", "Day1", "Day2", "Day3"}

// WriteXLSX writes the rows as a single-sheet workbook. Column order is
// fixed so exported files line up across events.
func WriteXLSX(w io.Writer, rows []app.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		values := []string{row.Name, row.Email, row.Course, row.Year, row.Day1, row.Day2, row.Day3}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
