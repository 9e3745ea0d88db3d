package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/spreadsheet"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/validation"
)

type importService struct {
	students     StudentStore
	institutions InstitutionStore
}

// NewImportService creates the bulk import pipeline service
func NewImportService(students StudentStore, institutions InstitutionStore) ImportService {
	return &importService{students: students, institutions: institutions}
}

// ImportStudents runs the all-or-nothing bulk import: parse, validate every
// row, reject duplicates inside the file and against existing records, then
// insert the whole batch in one transaction. Any failure before the insert
// returns the complete list of problems and performs zero writes.
func (s *importService) ImportStudents(ctx context.Context, institutionID int64, data []byte, filename string) (*dto.ImportSummary, error) {
	institution, err := s.institutions.GetByID(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	rows, err := spreadsheet.ParseStudentRows(data, filename)
	if err != nil {
		return nil, err
	}

	candidates := make([]*models.Student, 0, len(rows))
	var validationErrs []string
	for i, row := range rows {
		result := validation.ValidateStudentRow(row)
		if !result.Valid {
			validationErrs = append(validationErrs,
				fmt.Sprintf("Row %d: %s", spreadsheet.SpreadsheetRowNumber(i), strings.Join(result.Errors, ", ")))
			continue
		}
		candidates = append(candidates, mapRowToStudent(row, institution.ID))
	}
	if len(validationErrs) > 0 {
		return nil, apperrors.NewErrorWithLines(apperrors.ErrImportValidation,
			"import failed validation", validationErrs)
	}

	if dupes := duplicateAdmissionNumbers(rows); len(dupes) > 0 {
		lines := make([]string, 0, len(dupes))
		for _, n := range dupes {
			lines = append(lines, fmt.Sprintf("Admission number %q appears more than once in the file", n))
		}
		return nil, apperrors.NewErrorWithLines(apperrors.ErrDuplicateAdmissionNumbers,
			"duplicate admission numbers in file", lines)
	}

	numbers := make([]string, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.AdmissionNumber)
	}
	existing, err := s.students.ExistingAdmissionNumbers(ctx, numbers)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		lines := make([]string, 0, len(existing))
		for _, n := range existing {
			lines = append(lines, fmt.Sprintf("Admission number %q already exists", n))
		}
		return nil, apperrors.NewErrorWithLines(apperrors.ErrConflictingAdmissionNumber,
			"admission numbers conflict with existing records", lines)
	}

	created, err := s.students.CreateBatch(ctx, candidates)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("institutionID", institutionID).
		Int("created", len(created)).
		Msg("Bulk import completed")

	summary := &dto.ImportSummary{
		TotalProcessed:      len(rows),
		SuccessfullyCreated: len(created),
		CreatedRecords:      make([]dto.StudentResponse, 0, len(created)),
	}
	for _, student := range created {
		summary.CreatedRecords = append(summary.CreatedRecords, dto.ToStudentResponse(student))
	}

	return summary, nil
}

// BuildTemplate produces the downloadable xlsx import template
func (s *importService) BuildTemplate() ([]byte, error) {
	return spreadsheet.BuildImportTemplate()
}

// mapRowToStudent converts a validated raw row into a candidate record.
// Dates are guaranteed parseable by the validator.
func mapRowToStudent(row spreadsheet.StudentRow, institutionID int64) *models.Student {
	dob, _ := validation.ParseDate(row.DateOfBirth)
	joining, _ := validation.ParseDate(row.JoiningDate)

	return &models.Student{
		AdmissionNumber: strings.TrimSpace(row.AdmissionNumber),
		FullName:        strings.TrimSpace(row.FullName),
		Gender:          models.Gender(row.Gender),
		PhoneNumber:     strings.TrimSpace(row.PhoneNumber),
		DateOfBirth:     dob,
		JoiningDate:     joining,
		CurrentCourse:   strings.TrimSpace(row.CurrentCourse),
		Department:      strings.TrimSpace(row.Department),
		Semester:        strings.TrimSpace(row.Semester),
		State:           strings.TrimSpace(row.State),
		District:        strings.TrimSpace(row.District),
		County:          strings.TrimSpace(row.County),
		Marksheets:      []string{},
		Status:          models.StudentStatusActive,
		InstitutionID:   institutionID,
	}
}

// duplicateAdmissionNumbers returns each admission number appearing more
// than once in the batch, in first-seen order
func duplicateAdmissionNumbers(rows []spreadsheet.StudentRow) []string {
	seen := make(map[string]int, len(rows))
	var order []string
	for _, row := range rows {
		n := strings.TrimSpace(row.AdmissionNumber)
		if seen[n] == 0 {
			order = append(order, n)
		}
		seen[n]++
	}

	var dupes []string
	for _, n := range order {
		if seen[n] > 1 {
			dupes = append(dupes, n)
		}
	}
	return dupes
}
