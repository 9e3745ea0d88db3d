package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/spreadsheet"
)

func validRow() spreadsheet.StudentRow {
	return spreadsheet.StudentRow{
		AdmissionNumber: "ADM001",
		FullName:        "Alice Example",
		Gender:          "Female",
		PhoneNumber:     "+919876543210",
		DateOfBirth:     "2000-05-01",
		JoiningDate:     "2020-09-01",
		CurrentCourse:   "BSc Computer Science",
		Department:      "Engineering",
		Semester:        "3",
		State:           "Kerala",
		District:        "Ernakulam",
		County:          "Central",
	}
}

func TestValidateStudentRowAccepts(t *testing.T) {
	result := ValidateStudentRow(validRow())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateStudentRowMissingName(t *testing.T) {
	row := validRow()
	row.FullName = "  "

	result := ValidateStudentRow(row)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "full name")
}

func TestValidateStudentRowCollectsAllViolations(t *testing.T) {
	row := validRow()
	row.FullName = ""
	row.Gender = "Banana"
	row.PhoneNumber = "not-a-phone"
	row.DateOfBirth = "someday"
	row.State = ""

	result := ValidateStudentRow(row)
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 5, "every violation reported in one pass")

	joined := strings.Join(result.Errors, "; ")
	assert.Contains(t, joined, "gender")
	assert.Contains(t, joined, "phone number")
	assert.Contains(t, joined, "date of birth")
	assert.Contains(t, joined, "state is required")
}

func TestValidateStudentRowGenderCaseSensitive(t *testing.T) {
	row := validRow()
	row.Gender = "male"

	result := ValidateStudentRow(row)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "gender")
}

func TestValidateStudentRowPhoneFormats(t *testing.T) {
	accepted := []string{"+919876543210", "9876543210", "+123", "1"}
	for _, phone := range accepted {
		row := validRow()
		row.PhoneNumber = phone
		assert.True(t, ValidateStudentRow(row).Valid, "expected %q to be accepted", phone)
	}

	rejected := []string{"0123456789", "+0123", "abc", "+9198765432101234567", "98-76"}
	for _, phone := range rejected {
		row := validRow()
		row.PhoneNumber = phone
		assert.False(t, ValidateStudentRow(row).Valid, "expected %q to be rejected", phone)
	}
}

func TestValidateStudentRowFutureDateOfBirth(t *testing.T) {
	row := validRow()
	row.DateOfBirth = time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	result := ValidateStudentRow(row)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "past")
}

func TestValidateStudentRowNameTooLong(t *testing.T) {
	row := validRow()
	row.FullName = strings.Repeat("a", maxFullNameLength+1)

	result := ValidateStudentRow(row)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "at most")
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2000-05-01", "2000/05/01", "01/05/2000", "01-05-2000"} {
		got, err := ParseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseDate("May 1st 2000")
	assert.Error(t, err)
}

func TestAgeBucketBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		dob    time.Time
		bucket string
	}{
		{time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), "Under 18"},
		{time.Date(2006, 6, 1, 0, 0, 0, 0, time.UTC), "18-19"},
		{time.Date(2004, 6, 1, 0, 0, 0, 0, time.UTC), "20-21"},
		{time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC), "22-24"},
		{time.Date(1998, 6, 1, 0, 0, 0, 0, time.UTC), "25-29"},
		{time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), "30+"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.bucket, AgeBucket(tc.dob, now), "dob %s", tc.dob.Format("2006-01-02"))
	}
}

func TestAgeInYears(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 24, AgeInYears(time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, AgeInYears(time.Time{}, now))
	assert.Equal(t, 0, AgeInYears(now.AddDate(1, 0, 0), now), "future dates clamp to 0")
}
