package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
)

const importCSVHeader = "Admission Number,Full Name,Gender,Phone Number,Date of Birth,Joining Date,Current Course,Department,Semester,State,District,County\n"

func validCSVRow(admissionNumber, fullName string) string {
	return admissionNumber + "," + fullName + ",Male,+123,1990-01-01,2020-01-01,CS,Eng,1,S,D,C\n"
}

func newImportFixture() (*fakeStudentStore, *fakeInstitutionStore, ImportService, int64) {
	students := newFakeStudentStore()
	institutions := newFakeInstitutionStore()
	inst := institutions.add(&models.Institution{OrgName: "Test Org", Email: "org@test.edu"})
	return students, institutions, NewImportService(students, institutions), inst.ID
}

func TestImportStudentsSuccess(t *testing.T) {
	students, _, svc, instID := newImportFixture()

	data := []byte(importCSVHeader + validCSVRow("X1", "A"))
	summary, err := svc.ImportStudents(context.Background(), instID, data, "students.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalProcessed)
	assert.Equal(t, 1, summary.SuccessfullyCreated)
	require.Len(t, summary.CreatedRecords, 1)
	assert.Equal(t, "X1", summary.CreatedRecords[0].AdmissionNumber)
	assert.Equal(t, string(models.StudentStatusActive), summary.CreatedRecords[0].Status)
	assert.Equal(t, 1, students.count())
}

func TestImportStudentsValidationFailureRowNumbers(t *testing.T) {
	students, _, svc, instID := newImportFixture()

	// Data row index 3 (fourth row) is missing the full name; it must be
	// reported as spreadsheet row 5 (header + 1-based numbering)
	data := []byte(importCSVHeader +
		validCSVRow("X1", "A") +
		validCSVRow("X2", "B") +
		validCSVRow("X3", "C") +
		validCSVRow("X4", ""))

	_, err := svc.ImportStudents(context.Background(), instID, data, "students.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrImportValidation)

	lines := apperrors.DetailLines(err)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Row 5:"), "got %q", lines[0])
	assert.Contains(t, lines[0], "full name")

	assert.Zero(t, students.count(), "no writes on validation failure")
}

func TestImportStudentsCollectsAllRowErrors(t *testing.T) {
	students, _, svc, instID := newImportFixture()

	data := []byte(importCSVHeader +
		validCSVRow("X1", "") +
		"X2,B,Banana,+123,1990-01-01,2020-01-01,CS,Eng,1,S,D,C\n")

	_, err := svc.ImportStudents(context.Background(), instID, data, "students.csv")
	require.Error(t, err)

	lines := apperrors.DetailLines(err)
	require.Len(t, lines, 2, "one combined line per bad row")
	assert.Contains(t, lines[0], "Row 2:")
	assert.Contains(t, lines[1], "Row 3:")
	assert.Contains(t, lines[1], "gender")
	assert.Zero(t, students.count())
}

func TestImportStudentsIntraFileDuplicate(t *testing.T) {
	students, _, svc, instID := newImportFixture()

	data := []byte(importCSVHeader +
		validCSVRow("X1", "A") +
		validCSVRow("X1", "B"))

	_, err := svc.ImportStudents(context.Background(), instID, data, "students.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAdmissionNumbers)

	lines := apperrors.DetailLines(err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "X1")

	assert.Zero(t, students.count(), "whole batch rejected")
}

func TestImportStudentsCrossDatabaseDuplicate(t *testing.T) {
	students, _, svc, instID := newImportFixture()

	data := []byte(importCSVHeader + validCSVRow("X1", "A"))

	_, err := svc.ImportStudents(context.Background(), instID, data, "students.csv")
	require.NoError(t, err)
	require.Equal(t, 1, students.count())

	// Same file a second time: conflict naming X1, nothing new created
	_, err = svc.ImportStudents(context.Background(), instID, data, "students.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflictingAdmissionNumber)

	lines := apperrors.DetailLines(err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "X1")

	assert.Equal(t, 1, students.count())
}

func TestImportStudentsUnknownInstitution(t *testing.T) {
	students := newFakeStudentStore()
	institutions := newFakeInstitutionStore()
	svc := NewImportService(students, institutions)

	data := []byte(importCSVHeader + validCSVRow("X1", "A"))
	_, err := svc.ImportStudents(context.Background(), 42, data, "students.csv")
	assert.ErrorIs(t, err, apperrors.ErrInstitutionNotFound)
	assert.Zero(t, students.count())
}

func TestImportStudentsUnsupportedFileType(t *testing.T) {
	_, _, svc, instID := newImportFixture()

	_, err := svc.ImportStudents(context.Background(), instID, []byte("whatever"), "students.pdf")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
}

func TestImportStudentsEmptyFile(t *testing.T) {
	_, _, svc, instID := newImportFixture()

	_, err := svc.ImportStudents(context.Background(), instID, []byte(importCSVHeader), "students.csv")
	assert.ErrorIs(t, err, apperrors.ErrNoDataRows)
}

func TestBuildTemplateProducesWorkbook(t *testing.T) {
	_, _, svc, _ := newImportFixture()

	data, err := svc.BuildTemplate()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
