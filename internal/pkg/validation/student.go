package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/spreadsheet"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

// dateLayouts are the accepted spellings for date cells, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	time.RFC3339,
}

const maxFullNameLength = 100

// Result is the outcome of validating one candidate student record
type Result struct {
	Valid  bool
	Errors []string
}

// ParseDate parses a raw date cell against the accepted layouts
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", value)
}

// ValidateStudentRow checks every field rule for a candidate student record.
// It never fails fast: all violated rules are collected so a multi-error row
// produces one combined report.
func ValidateStudentRow(row spreadsheet.StudentRow) Result {
	var errs []string

	fullName := strings.TrimSpace(row.FullName)
	if fullName == "" {
		errs = append(errs, "full name is required")
	} else if len(fullName) > maxFullNameLength {
		errs = append(errs, fmt.Sprintf("full name must be at most %d characters", maxFullNameLength))
	}

	if !models.Gender(row.Gender).IsValid() {
		errs = append(errs, "gender must be one of Male, Female or Other")
	}

	if strings.TrimSpace(row.PhoneNumber) == "" {
		errs = append(errs, "phone number is required")
	} else if !phoneRegex.MatchString(row.PhoneNumber) {
		errs = append(errs, "phone number format is invalid")
	}

	if strings.TrimSpace(row.DateOfBirth) == "" {
		errs = append(errs, "date of birth is required")
	} else if dob, err := ParseDate(row.DateOfBirth); err != nil {
		errs = append(errs, "date of birth is not a valid date")
	} else if !dob.Before(time.Now()) {
		errs = append(errs, "date of birth must be in the past")
	}

	if strings.TrimSpace(row.JoiningDate) == "" {
		errs = append(errs, "joining date is required")
	} else if _, err := ParseDate(row.JoiningDate); err != nil {
		errs = append(errs, "joining date is not a valid date")
	}

	required := []struct {
		value string
		name  string
	}{
		{row.AdmissionNumber, "admission number"},
		{row.CurrentCourse, "current course"},
		{row.Department, "department"},
		{row.Semester, "semester"},
		{row.State, "state"},
		{row.District, "district"},
		{row.County, "county"},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, field.name+" is required")
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
