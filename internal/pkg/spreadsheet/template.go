package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// instructions shown on the second sheet of the import template
var templateInstructions = []string{
	"How to fill in this template:",
	"",
	"1. Enter one student per row on the 'Students Data' sheet. Do not rename or reorder the header row.",
	"2. Gender must be exactly one of: Male, Female, Other.",
	"3. Phone Number must be digits with an optional leading +, e.g. +14155550123.",
	"4. Date of Birth and Joining Date must use the YYYY-MM-DD format, e.g. 2001-05-14.",
	"5. Admission Number must be unique. Duplicates inside the file or against existing records reject the whole upload.",
	"6. All columns are required. Leave no cell empty.",
	"7. Passport photos and marksheets cannot be uploaded through this file. Attach them per student after the import.",
}

// BuildImportTemplate creates the downloadable xlsx import template: a
// 'Students Data' sheet carrying the canonical header row the parser
// recognizes, plus an 'Instructions' sheet.
func BuildImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StudentDataSheet); err != nil {
		return nil, fmt.Errorf("failed to rename data sheet: %w", err)
	}

	for i, field := range CanonicalFields {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(StudentDataSheet, cell, DisplayHeaders[field]); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		return nil, fmt.Errorf("failed to create instructions sheet: %w", err)
	}
	for i, line := range templateInstructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			return nil, fmt.Errorf("failed to write instructions cell: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize template: %w", err)
	}

	return buf.Bytes(), nil
}

// BuildWorkbook serializes a header row plus data rows into a single-sheet
// xlsx workbook. Used by the spreadsheet export format.
func BuildWorkbook(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	writeRow := func(rowIdx int, cells []string) error {
		for i, value := range cells {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
		return nil
	}

	if err := writeRow(1, headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}
