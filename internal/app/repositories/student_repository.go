package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/db"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/dberrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
)

const studentColumns = `id, admission_number, full_name, gender, phone_number, date_of_birth,
	joining_date, current_course, department, semester, state, district, county,
	passport_photo, marksheets, status, institution_id, created_at, updated_at`

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.AdmissionNumber, &s.FullName, &s.Gender, &s.PhoneNumber, &s.DateOfBirth,
		&s.JoiningDate, &s.CurrentCourse, &s.Department, &s.Semester, &s.State, &s.District, &s.County,
		&s.PassportPhoto, &s.Marksheets, &s.Status, &s.InstitutionID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a single student record
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) (*models.Student, error) {
	query := `
		INSERT INTO students (admission_number, full_name, gender, phone_number, date_of_birth,
			joining_date, current_course, department, semester, state, district, county,
			passport_photo, marksheets, status, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + studentColumns

	created, err := scanStudent(r.db.Pool.QueryRow(ctx, query,
		s.AdmissionNumber, s.FullName, s.Gender, s.PhoneNumber, s.DateOfBirth,
		s.JoiningDate, s.CurrentCourse, s.Department, s.Semester, s.State, s.District, s.County,
		s.PassportPhoto, s.Marksheets, s.Status, s.InstitutionID,
	))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAdmissionNumberExists
		}
		logger.Error().Err(err).Msg("Error creating student")
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return created, nil
}

// CreateBatch inserts all records inside a single transaction. Either every
// record is created or none is.
func (r *StudentRepository) CreateBatch(ctx context.Context, students []*models.Student) ([]*models.Student, error) {
	created := make([]*models.Student, 0, len(students))

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO students (admission_number, full_name, gender, phone_number, date_of_birth,
				joining_date, current_course, department, semester, state, district, county,
				passport_photo, marksheets, status, institution_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			RETURNING ` + studentColumns

		for _, s := range students {
			row, err := scanStudent(tx.QueryRow(ctx, query,
				s.AdmissionNumber, s.FullName, s.Gender, s.PhoneNumber, s.DateOfBirth,
				s.JoiningDate, s.CurrentCourse, s.Department, s.Semester, s.State, s.District, s.County,
				s.PassportPhoto, s.Marksheets, s.Status, s.InstitutionID,
			))
			if err != nil {
				if dberrors.IsUniqueViolation(err) {
					return apperrors.NewErrorWithLines(apperrors.ErrConflictingAdmissionNumber,
						"admission number conflicts with existing records",
						[]string{fmt.Sprintf("Admission number %q already exists", s.AdmissionNumber)})
				}
				return fmt.Errorf("failed to insert student %q: %w", s.AdmissionNumber, err)
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID fetches a student with its institution joined
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.admission_number, s.full_name, s.gender, s.phone_number, s.date_of_birth,
			s.joining_date, s.current_course, s.department, s.semester, s.state, s.district, s.county,
			s.passport_photo, s.marksheets, s.status, s.institution_id, s.created_at, s.updated_at,
			i.id, i.org_name, i.email
		FROM students s
		JOIN institutions i ON s.institution_id = i.id
		WHERE s.id = $1`

	var s models.Student
	var inst models.Institution
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.AdmissionNumber, &s.FullName, &s.Gender, &s.PhoneNumber, &s.DateOfBirth,
		&s.JoiningDate, &s.CurrentCourse, &s.Department, &s.Semester, &s.State, &s.District, &s.County,
		&s.PassportPhoto, &s.Marksheets, &s.Status, &s.InstitutionID, &s.CreatedAt, &s.UpdatedAt,
		&inst.ID, &inst.OrgName, &inst.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error fetching student")
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	s.Institution = &inst
	return &s, nil
}

// ExistingAdmissionNumbers returns which of the given admission numbers are
// already present, in a single IN query
func (r *StudentRepository) ExistingAdmissionNumbers(ctx context.Context, numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	query, args, err := r.sb.Select("admission_number").
		From("students").
		Where(squirrel.Eq{"admission_number": numbers}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build admission number query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking existing admission numbers")
		return nil, fmt.Errorf("failed to check existing admission numbers: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan admission number: %w", err)
		}
		existing = append(existing, n)
	}

	return existing, rows.Err()
}

// List fetches students matching the filter with pagination, institution
// joined, newest first
func (r *StudentRepository) List(ctx context.Context, filter dto.StudentFilter, offset, limit int) ([]*models.Student, int64, error) {
	where := r.studentFilterConditions(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("students s").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select(
		"s.id", "s.admission_number", "s.full_name", "s.gender", "s.phone_number", "s.date_of_birth",
		"s.joining_date", "s.current_course", "s.department", "s.semester", "s.state", "s.district", "s.county",
		"s.passport_photo", "s.marksheets", "s.status", "s.institution_id", "s.created_at", "s.updated_at",
		"i.id", "i.org_name", "i.email").
		From("students s").
		Join("institutions i ON s.institution_id = i.id").
		Where(where).
		OrderBy("s.created_at DESC", "s.id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students, err := collectStudentsWithInstitution(rows)
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// ListForExport fetches every student matching the filter with institution
// joined, newest first, without pagination
func (r *StudentRepository) ListForExport(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error) {
	listSQL, listArgs, err := r.sb.Select(
		"s.id", "s.admission_number", "s.full_name", "s.gender", "s.phone_number", "s.date_of_birth",
		"s.joining_date", "s.current_course", "s.department", "s.semester", "s.state", "s.district", "s.county",
		"s.passport_photo", "s.marksheets", "s.status", "s.institution_id", "s.created_at", "s.updated_at",
		"i.id", "i.org_name", "i.email").
		From("students s").
		Join("institutions i ON s.institution_id = i.id").
		Where(r.studentFilterConditions(filter)).
		OrderBy("s.created_at DESC", "s.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build export query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students for export")
		return nil, fmt.Errorf("failed to list students for export: %w", err)
	}
	defer rows.Close()

	return collectStudentsWithInstitution(rows)
}

func collectStudentsWithInstitution(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		var s models.Student
		var inst models.Institution
		err := rows.Scan(
			&s.ID, &s.AdmissionNumber, &s.FullName, &s.Gender, &s.PhoneNumber, &s.DateOfBirth,
			&s.JoiningDate, &s.CurrentCourse, &s.Department, &s.Semester, &s.State, &s.District, &s.County,
			&s.PassportPhoto, &s.Marksheets, &s.Status, &s.InstitutionID, &s.CreatedAt, &s.UpdatedAt,
			&inst.ID, &inst.OrgName, &inst.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		s.Institution = &inst
		students = append(students, &s)
	}
	return students, rows.Err()
}

func (r *StudentRepository) studentFilterConditions(filter dto.StudentFilter) squirrel.And {
	where := squirrel.And{}
	if filter.InstitutionID != nil {
		where = append(where, squirrel.Eq{"s.institution_id": *filter.InstitutionID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"s.status": *filter.Status})
	}
	if filter.Department != nil && *filter.Department != "" {
		where = append(where, squirrel.Eq{"s.department": *filter.Department})
	}
	if filter.Course != nil && *filter.Course != "" {
		where = append(where, squirrel.Eq{"s.current_course": *filter.Course})
	}
	if filter.Semester != nil && *filter.Semester != "" {
		where = append(where, squirrel.Eq{"s.semester": *filter.Semester})
	}
	if filter.State != nil && *filter.State != "" {
		where = append(where, squirrel.Eq{"s.state": *filter.State})
	}
	if filter.Search != nil && *filter.Search != "" {
		term := "%" + strings.TrimSpace(*filter.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.full_name": term},
			squirrel.ILike{"s.admission_number": term},
		})
	}
	return where
}

// Update persists changed fields of an existing student
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) (*models.Student, error) {
	query := `
		UPDATE students SET
			full_name = $1, gender = $2, phone_number = $3, date_of_birth = $4,
			joining_date = $5, current_course = $6, department = $7, semester = $8,
			state = $9, district = $10, county = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING ` + studentColumns

	updated, err := scanStudent(r.db.Pool.QueryRow(ctx, query,
		s.FullName, s.Gender, s.PhoneNumber, s.DateOfBirth,
		s.JoiningDate, s.CurrentCourse, s.Department, s.Semester,
		s.State, s.District, s.County, s.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", s.ID).Msg("Error updating student")
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	return updated, nil
}

// UpdateStatus moves a student between lifecycle states
func (r *StudentRepository) UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE students SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error updating student status")
		return fmt.Errorf("failed to update student status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetPassportPhoto stores the photo URL on the record
func (r *StudentRepository) SetPassportPhoto(ctx context.Context, id int64, url string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE students SET passport_photo = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error setting passport photo")
		return fmt.Errorf("failed to set passport photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// AddMarksheet appends a marksheet URL, preserving upload order
func (r *StudentRepository) AddMarksheet(ctx context.Context, id int64, url string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE students SET marksheets = array_append(marksheets, $1), updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error adding marksheet")
		return fmt.Errorf("failed to add marksheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// CountByInstitution counts students owned by an institution
func (r *StudentRepository) CountByInstitution(ctx context.Context, institutionID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE institution_id = $1`, institutionID).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("institutionID", institutionID).Msg("Error counting students")
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
