package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
)

const csvHeader = "Admission Number,Full Name,Gender,Phone Number,Date of Birth,Joining Date,Current Course,Department,Semester,State,District,County\n"

func TestParseStudentRowsCSV(t *testing.T) {
	data := []byte(csvHeader +
		"ADM001,Alice Example,Female,+14155550123,2000-05-01,2020-09-01,CS,Engineering,3,Kerala,Ernakulam,Central\n")

	rows, err := ParseStudentRows(data, "upload.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "ADM001", rows[0].AdmissionNumber)
	assert.Equal(t, "Alice Example", rows[0].FullName)
	assert.Equal(t, "Female", rows[0].Gender)
	assert.Equal(t, "2000-05-01", rows[0].DateOfBirth)
	assert.Equal(t, "Central", rows[0].County)
}

func TestParseStudentRowsHeaderAliases(t *testing.T) {
	// Machine-readable spellings with odd casing still resolve
	data := []byte("admission_number,fullName,SEX,Mobile,DOB,Admission Date,Course,Dept,Sem,state,district,Taluk\n" +
		"ADM001,Alice,Female,+1415,2000-05-01,2020-09-01,CS,Eng,3,Kerala,Ernakulam,Central\n")

	rows, err := ParseStudentRows(data, "upload.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "ADM001", rows[0].AdmissionNumber)
	assert.Equal(t, "Alice", rows[0].FullName)
	assert.Equal(t, "Female", rows[0].Gender)
	assert.Equal(t, "+1415", rows[0].PhoneNumber)
	assert.Equal(t, "2020-09-01", rows[0].JoiningDate)
	assert.Equal(t, "Central", rows[0].County)
}

func TestParseStudentRowsMissingColumnsYieldEmpty(t *testing.T) {
	data := []byte("Full Name,Gender\nAlice,Female\n")

	rows, err := ParseStudentRows(data, "upload.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Alice", rows[0].FullName)
	assert.Empty(t, rows[0].AdmissionNumber)
	assert.Empty(t, rows[0].State)
}

func TestParseStudentRowsSkipsBlankRows(t *testing.T) {
	data := []byte(csvHeader +
		"ADM001,Alice,Female,+1415,2000-05-01,2020-09-01,CS,Eng,3,Kerala,Ernakulam,Central\n" +
		",,,,,,,,,,,\n" +
		"ADM002,Bob,Male,+1416,2001-03-02,2020-09-01,CS,Eng,3,Kerala,Ernakulam,Central\n")

	rows, err := ParseStudentRows(data, "upload.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ADM002", rows[1].AdmissionNumber)
}

func TestParseStudentRowsUnsupportedExtension(t *testing.T) {
	_, err := ParseStudentRows([]byte("x"), "upload.pdf")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
}

func TestParseStudentRowsHeaderOnly(t *testing.T) {
	_, err := ParseStudentRows([]byte(csvHeader), "upload.csv")
	assert.ErrorIs(t, err, apperrors.ErrNoDataRows)
}

func TestParseStudentRowsWorkbookRoundTrip(t *testing.T) {
	headers := make([]string, len(CanonicalFields))
	for i, field := range CanonicalFields {
		headers[i] = DisplayHeaders[field]
	}
	data, err := BuildWorkbook(StudentDataSheet, headers, [][]string{
		{"ADM001", "Alice", "Female", "+1415", "2000-05-01", "2020-09-01", "CS", "Eng", "3", "Kerala", "Ernakulam", "Central"},
	})
	require.NoError(t, err)

	rows, err := ParseStudentRows(data, "upload.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ADM001", rows[0].AdmissionNumber)
	assert.Equal(t, "Ernakulam", rows[0].District)
}

func TestImportTemplateParsesBack(t *testing.T) {
	// The template's own header row must resolve against the alias table,
	// so a template filled in without edits imports cleanly
	data, err := BuildImportTemplate()
	require.NoError(t, err)

	_, err = ParseStudentRows(data, "template.xlsx")
	assert.ErrorIs(t, err, apperrors.ErrNoDataRows, "template ships with no data rows")
}

func TestResolveColumnsFirstMatchWins(t *testing.T) {
	columns := resolveColumns([]string{"Name", "Full Name", "Gender"})
	// "Full Name" is the higher-priority spelling even though "Name" comes first
	assert.Equal(t, 1, columns[FieldFullName])
	assert.Equal(t, 2, columns[FieldGender])
	assert.Equal(t, -1, columns[FieldAdmissionNumber])
}

func TestSpreadsheetRowNumber(t *testing.T) {
	assert.Equal(t, 2, SpreadsheetRowNumber(0))
	assert.Equal(t, 5, SpreadsheetRowNumber(3))
}
