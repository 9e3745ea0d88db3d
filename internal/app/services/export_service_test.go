package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
)

func strPtr(s string) *string { return &s }

func newExportFixture(students *fakeStudentStore, institutions *fakeInstitutionStore) ExportService {
	svc := NewExportService(students, institutions).(*exportService)
	svc.now = fixedNow
	return svc
}

func TestExportInstitutionsQuotesEmbeddedCommas(t *testing.T) {
	institutions := newFakeInstitutionStore()
	institutions.add(&models.Institution{
		OrgName:          "Acme Institute",
		Email:            "acme@test.edu",
		IndustrySector:   "Education",
		BusinessAddress:  "12 Main St, Springfield, IL",
		PostalCode:       "62704",
		MainTelephone:    "+15551234",
		ContactFirstName: "Jane",
		ContactLastName:  "Doe",
		ContactTitle:     "Registrar",
		ContactEmail:     "jane@test.edu",
		ContactPhone:     "+15555678",
		IsApproved:       true,
	})
	svc := newExportFixture(newFakeStudentStore(), institutions)

	result, err := svc.ExportInstitutions(context.Background(), dto.InstitutionFilter{}, ExportFormatCSV)
	require.NoError(t, err)

	csv := string(result.Data)
	assert.Contains(t, csv, `"12 Main St, Springfield, IL, 62704"`)
	assert.Contains(t, csv, "Jane Doe")
	assert.Contains(t, csv, "APPROVED")
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "institutions_export_2024-06-15.csv", result.Filename)
}

func TestExportInstitutionsSubstitutesNA(t *testing.T) {
	institutions := newFakeInstitutionStore()
	institutions.add(&models.Institution{
		OrgName:          "Bare Org",
		Email:            "bare@test.edu",
		IndustrySector:   "Education",
		BusinessAddress:  "Somewhere",
		PostalCode:       "00000",
		MainTelephone:    "+15550000",
		ContactFirstName: "A",
		ContactLastName:  "B",
		ContactTitle:     "Head",
		ContactEmail:     "a@test.edu",
		ContactPhone:     "+15550001",
	})
	svc := newExportFixture(newFakeStudentStore(), institutions)

	result, err := svc.ExportInstitutions(context.Background(), dto.InstitutionFilter{}, "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 2)
	// Website and secondary contact are absent
	assert.Contains(t, lines[1], "N/A")
	assert.Contains(t, lines[1], "PENDING")
}

func TestExportInstitutionsSecondaryContactComposed(t *testing.T) {
	institutions := newFakeInstitutionStore()
	institutions.add(&models.Institution{
		OrgName:                   "Org",
		Email:                     "org@test.edu",
		IndustrySector:            "Education",
		BusinessAddress:           "Somewhere",
		PostalCode:                "00000",
		MainTelephone:             "+15550000",
		Website:                   strPtr("https://org.test"),
		ContactFirstName:          "A",
		ContactLastName:           "B",
		ContactTitle:              "Head",
		ContactEmail:              "a@test.edu",
		ContactPhone:              "+15550001",
		SecondaryContactFirstName: strPtr("Sam"),
		SecondaryContactLastName:  strPtr("Lee"),
	})
	svc := newExportFixture(newFakeStudentStore(), institutions)

	result, err := svc.ExportInstitutions(context.Background(), dto.InstitutionFilter{}, ExportFormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(result.Data), "Sam Lee")
	assert.Contains(t, string(result.Data), "https://org.test")
}

func TestExportStudentsCSV(t *testing.T) {
	students := newFakeStudentStore()
	_, err := students.Create(context.Background(), &models.Student{
		AdmissionNumber: "X1",
		FullName:        "Alice Example",
		Gender:          models.GenderFemale,
		PhoneNumber:     "+1555",
		DateOfBirth:     time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC),
		JoiningDate:     time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC),
		CurrentCourse:   "CS",
		Department:      "Engineering",
		Semester:        "3",
		State:           "Kerala",
		District:        "Ernakulam",
		County:          "Central",
		Status:          models.StudentStatusActive,
		Institution:     &models.Institution{OrgName: "Acme", Email: "acme@test.edu"},
	})
	require.NoError(t, err)
	svc := newExportFixture(students, newFakeInstitutionStore())

	result, err := svc.ExportStudents(context.Background(), dto.StudentFilter{}, ExportFormatCSV)
	require.NoError(t, err)

	csv := string(result.Data)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Admission Number,Full Name"))
	assert.Contains(t, lines[1], "Alice Example")
	assert.Contains(t, lines[1], "2000-05-01")
	assert.Contains(t, lines[1], "Acme")
	// Empty marksheets and photo become N/A, never empty cells
	assert.NotContains(t, csv, ",,")
}

func TestExportStudentsJSONPayload(t *testing.T) {
	students := newFakeStudentStore()
	_, err := students.Create(context.Background(), &models.Student{
		AdmissionNumber: "X1",
		FullName:        "Alice",
		Gender:          models.GenderFemale,
		Status:          models.StudentStatusActive,
	})
	require.NoError(t, err)
	svc := newExportFixture(students, newFakeInstitutionStore())

	payload, err := svc.ExportStudentsJSON(context.Background(), dto.StudentFilter{})
	require.NoError(t, err)

	require.Len(t, payload.Data, 1)
	assert.Equal(t, "X1", payload.Data[0]["Admission Number"])
	assert.Equal(t, "Alice", payload.Data[0]["Full Name"])
	assert.Equal(t, "N/A", payload.Data[0]["Department"])
	assert.Equal(t, "students_export_2024-06-15.csv", payload.Filename)
}

func TestExportStudentsXLSX(t *testing.T) {
	svc := newExportFixture(newFakeStudentStore(), newFakeInstitutionStore())

	result, err := svc.ExportStudents(context.Background(), dto.StudentFilter{}, ExportFormatXLSX)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	assert.Equal(t, xlsxContentType, result.ContentType)
	assert.Equal(t, "students_export_2024-06-15.xlsx", result.Filename)
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := newExportFixture(newFakeStudentStore(), newFakeInstitutionStore())

	_, err := svc.ExportStudents(context.Background(), dto.StudentFilter{}, "pdf")
	assert.Error(t, err)
}
