package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/filestorage"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/helpers"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/spreadsheet"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/validation"
)

type studentService struct {
	students     StudentStore
	institutions InstitutionStore
	storage      filestorage.FileStorage
}

// NewStudentService creates the single-record student service
func NewStudentService(students StudentStore, institutions InstitutionStore, storage filestorage.FileStorage) StudentService {
	return &studentService{
		students:     students,
		institutions: institutions,
		storage:      storage,
	}
}

// CreateStudent validates and persists one student. Admission numbers are
// unique system-wide; the pre-check gives a readable error and the unique
// index closes the race.
func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	row := spreadsheet.StudentRow{
		AdmissionNumber: req.AdmissionNumber,
		FullName:        req.FullName,
		Gender:          req.Gender,
		PhoneNumber:     req.PhoneNumber,
		DateOfBirth:     req.DateOfBirth,
		JoiningDate:     req.JoiningDate,
		CurrentCourse:   req.CurrentCourse,
		Department:      req.Department,
		Semester:        req.Semester,
		State:           req.State,
		District:        req.District,
		County:          req.County,
	}
	if result := validation.ValidateStudentRow(row); !result.Valid {
		return nil, apperrors.NewErrorWithLines(apperrors.ErrValidationFailed,
			"student validation failed", result.Errors)
	}

	if _, err := s.institutions.GetByID(ctx, req.InstitutionID); err != nil {
		return nil, err
	}

	existing, err := s.students.ExistingAdmissionNumbers(ctx, []string{strings.TrimSpace(req.AdmissionNumber)})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.ErrAdmissionNumberExists
	}

	student := mapRowToStudent(row, req.InstitutionID)
	created, err := s.students.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", created.ID).Str("admissionNumber", created.AdmissionNumber).Msg("Student created")
	return created, nil
}

// GetStudent fetches one student with its institution joined
func (s *studentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// ListStudents returns one page of students matching the filter
func (s *studentService) ListStudents(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	return s.students.List(ctx, filter, offset, limit)
}

// UpdateStudent applies the provided fields to an existing record after
// re-validating the merged result
func (s *studentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		student.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Gender != nil {
		student.Gender = models.Gender(*req.Gender)
	}
	if req.PhoneNumber != nil {
		student.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.DateOfBirth != nil {
		dob, err := validation.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewBadRequestError("date of birth is not a valid date")
		}
		student.DateOfBirth = dob
	}
	if req.JoiningDate != nil {
		joining, err := validation.ParseDate(*req.JoiningDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("joining date is not a valid date")
		}
		student.JoiningDate = joining
	}
	if req.CurrentCourse != nil {
		student.CurrentCourse = strings.TrimSpace(*req.CurrentCourse)
	}
	if req.Department != nil {
		student.Department = strings.TrimSpace(*req.Department)
	}
	if req.Semester != nil {
		student.Semester = strings.TrimSpace(*req.Semester)
	}
	if req.State != nil {
		student.State = strings.TrimSpace(*req.State)
	}
	if req.District != nil {
		student.District = strings.TrimSpace(*req.District)
	}
	if req.County != nil {
		student.County = strings.TrimSpace(*req.County)
	}

	merged := spreadsheet.StudentRow{
		AdmissionNumber: student.AdmissionNumber,
		FullName:        student.FullName,
		Gender:          string(student.Gender),
		PhoneNumber:     student.PhoneNumber,
		DateOfBirth:     student.DateOfBirth.Format("2006-01-02"),
		JoiningDate:     student.JoiningDate.Format("2006-01-02"),
		CurrentCourse:   student.CurrentCourse,
		Department:      student.Department,
		Semester:        student.Semester,
		State:           student.State,
		District:        student.District,
		County:          student.County,
	}
	if result := validation.ValidateStudentRow(merged); !result.Valid {
		return nil, apperrors.NewErrorWithLines(apperrors.ErrValidationFailed,
			"student validation failed", result.Errors)
	}

	return s.students.Update(ctx, student)
}

// DeactivateStudent soft-deletes by moving the record to DEACTIVATED
func (s *studentService) DeactivateStudent(ctx context.Context, id int64) error {
	if err := s.students.UpdateStatus(ctx, id, models.StudentStatusDeactivated); err != nil {
		return err
	}
	logger.Info().Int64("studentID", id).Msg("Student deactivated")
	return nil
}

// AttachPassportPhoto stores an uploaded photo and links it to the student.
// File attachments stay outside the bulk import path.
func (s *studentService) AttachPassportPhoto(ctx context.Context, id int64, file *multipart.FileHeader) (string, error) {
	if _, err := s.students.GetByID(ctx, id); err != nil {
		return "", err
	}

	url, err := s.storage.SaveFile(file, "photos")
	if err != nil {
		return "", fmt.Errorf("failed to store passport photo: %w", err)
	}

	if err := s.students.SetPassportPhoto(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

// AttachMarksheet stores an uploaded marksheet and appends it to the
// student's ordered list
func (s *studentService) AttachMarksheet(ctx context.Context, id int64, file *multipart.FileHeader) (string, error) {
	if _, err := s.students.GetByID(ctx, id); err != nil {
		return "", err
	}

	url, err := s.storage.SaveFile(file, "marksheets")
	if err != nil {
		return "", fmt.Errorf("failed to store marksheet: %w", err)
	}

	if err := s.students.AddMarksheet(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}
