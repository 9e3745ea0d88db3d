package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
)

// StudentDataSheet is the preferred sheet name in uploaded workbooks and the
// data sheet of the downloadable template
const StudentDataSheet = "Students Data"

// StudentRow holds one raw data row keyed to canonical fields. All values are
// unparsed strings; date parsing happens downstream in the import pipeline.
type StudentRow struct {
	AdmissionNumber string
	FullName        string
	Gender          string
	PhoneNumber     string
	DateOfBirth     string
	JoiningDate     string
	CurrentCourse   string
	Department      string
	Semester        string
	State           string
	District        string
	County          string
}

// SpreadsheetRowNumber converts a 0-based data row index into the row number
// shown to users, accounting for the header row and 1-based numbering.
func SpreadsheetRowNumber(index int) int {
	return index + 2
}

// ParseStudentRows parses an uploaded spreadsheet or CSV buffer into raw
// student rows. Dispatch is by file extension; unsupported extensions and
// files without data rows return sentinel errors.
func ParseStudentRows(data []byte, filename string) ([]StudentRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return parseWorkbook(data)
	case ".csv":
		return parseCSV(data)
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFileType,
			fmt.Sprintf("unsupported file type %q, expected .xlsx, .xls or .csv", filepath.Ext(filename)))
	}
}

func parseWorkbook(data []byte) ([]StudentRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFileType, "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ErrNoDataRows
	}

	sheet := sheets[0]
	for _, name := range sheets {
		if name == StudentDataSheet {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return rowsToStudents(rows)
}

func parseCSV(data []byte) ([]StudentRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFileType, "malformed CSV content")
		}
		rows = append(rows, record)
	}

	return rowsToStudents(rows)
}

// rowsToStudents resolves the header row against the alias table and maps
// each subsequent non-empty row to a StudentRow
func rowsToStudents(rows [][]string) ([]StudentRow, error) {
	if len(rows) < 2 {
		return nil, apperrors.ErrNoDataRows
	}

	columns := resolveColumns(rows[0])

	cell := func(row []string, field string) string {
		idx := columns[field]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	students := make([]StudentRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		students = append(students, StudentRow{
			AdmissionNumber: cell(row, FieldAdmissionNumber),
			FullName:        cell(row, FieldFullName),
			Gender:          cell(row, FieldGender),
			PhoneNumber:     cell(row, FieldPhoneNumber),
			DateOfBirth:     cell(row, FieldDateOfBirth),
			JoiningDate:     cell(row, FieldJoiningDate),
			CurrentCourse:   cell(row, FieldCurrentCourse),
			Department:      cell(row, FieldDepartment),
			Semester:        cell(row, FieldSemester),
			State:           cell(row, FieldState),
			District:        cell(row, FieldDistrict),
			County:          cell(row, FieldCounty),
		})
	}

	if len(students) == 0 {
		return nil, apperrors.ErrNoDataRows
	}

	return students, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
