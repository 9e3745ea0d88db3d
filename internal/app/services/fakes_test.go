package services

import (
	"context"
	"sync"
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/repositories"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
)

// fakeStudentStore is an in-memory StudentStore for service tests
type fakeStudentStore struct {
	mu       sync.Mutex
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentStore) Create(_ context.Context, s *models.Student) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.students {
		if existing.AdmissionNumber == s.AdmissionNumber {
			return nil, apperrors.ErrAdmissionNumberExists
		}
	}
	clone := *s
	clone.ID = f.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	f.nextID++
	f.students[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeStudentStore) CreateBatch(ctx context.Context, students []*models.Student) ([]*models.Student, error) {
	created := make([]*models.Student, 0, len(students))
	for _, s := range students {
		c, err := f.Create(ctx, s)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeStudentStore) ExistingAdmissionNumbers(_ context.Context, numbers []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		want[n] = true
	}
	var existing []string
	for _, s := range f.students {
		if want[s.AdmissionNumber] {
			existing = append(existing, s.AdmissionNumber)
		}
	}
	return existing, nil
}

func (f *fakeStudentStore) List(_ context.Context, _ dto.StudentFilter, _, _ int) ([]*models.Student, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.Student
	for _, s := range f.students {
		clone := *s
		all = append(all, &clone)
	}
	return all, int64(len(all)), nil
}

func (f *fakeStudentStore) ListForExport(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error) {
	all, _, err := f.List(ctx, filter, 0, 0)
	return all, err
}

func (f *fakeStudentStore) Update(_ context.Context, s *models.Student) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[s.ID]; !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	clone := *s
	clone.UpdatedAt = time.Now()
	f.students[s.ID] = &clone
	return &clone, nil
}

func (f *fakeStudentStore) UpdateStatus(_ context.Context, id int64, status models.StudentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeStudentStore) SetPassportPhoto(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.PassportPhoto = url
	return nil
}

func (f *fakeStudentStore) AddMarksheet(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Marksheets = append(s.Marksheets, url)
	return nil
}

func (f *fakeStudentStore) CountByInstitution(_ context.Context, institutionID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, s := range f.students {
		if s.InstitutionID == institutionID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStudentStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.students)
}

// fakeInstitutionStore is an in-memory InstitutionStore for service tests
type fakeInstitutionStore struct {
	mu           sync.Mutex
	institutions map[int64]*models.Institution
	nextID       int64
}

func newFakeInstitutionStore() *fakeInstitutionStore {
	return &fakeInstitutionStore{institutions: make(map[int64]*models.Institution), nextID: 1}
}

func (f *fakeInstitutionStore) add(i *models.Institution) *models.Institution {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *i
	clone.ID = f.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	f.nextID++
	f.institutions[clone.ID] = &clone
	return &clone
}

func (f *fakeInstitutionStore) Create(_ context.Context, i *models.Institution) (*models.Institution, error) {
	f.mu.Lock()
	for _, existing := range f.institutions {
		if existing.Email == i.Email {
			f.mu.Unlock()
			return nil, apperrors.ErrInstitutionEmailExists
		}
	}
	f.mu.Unlock()
	return f.add(i), nil
}

func (f *fakeInstitutionStore) GetByID(_ context.Context, id int64) (*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.institutions[id]
	if !ok {
		return nil, apperrors.ErrInstitutionNotFound
	}
	clone := *i
	return &clone, nil
}

func (f *fakeInstitutionStore) GetByEmail(_ context.Context, email string) (*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.institutions {
		if i.Email == email {
			clone := *i
			return &clone, nil
		}
	}
	return nil, apperrors.ErrInstitutionNotFound
}

func (f *fakeInstitutionStore) List(_ context.Context, _ dto.InstitutionFilter, _, _ int) ([]*models.Institution, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.Institution
	for _, i := range f.institutions {
		clone := *i
		all = append(all, &clone)
	}
	return all, int64(len(all)), nil
}

func (f *fakeInstitutionStore) ListForExport(ctx context.Context, filter dto.InstitutionFilter) ([]*models.Institution, error) {
	all, _, err := f.List(ctx, filter, 0, 0)
	return all, err
}

func (f *fakeInstitutionStore) Update(_ context.Context, i *models.Institution) (*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.institutions[i.ID]; !ok {
		return nil, apperrors.ErrInstitutionNotFound
	}
	clone := *i
	clone.UpdatedAt = time.Now()
	f.institutions[i.ID] = &clone
	return &clone, nil
}

func (f *fakeInstitutionStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.institutions[id]; !ok {
		return apperrors.ErrInstitutionNotFound
	}
	delete(f.institutions, id)
	return nil
}

func (f *fakeInstitutionStore) SetResetToken(_ context.Context, id int64, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.institutions[id]
	if !ok {
		return apperrors.ErrInstitutionNotFound
	}
	i.ResetPasswordToken = &token
	i.ResetPasswordExpires = &expires
	return nil
}

func (f *fakeInstitutionStore) GetByResetToken(_ context.Context, token string) (*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.institutions {
		if i.ResetPasswordToken != nil && *i.ResetPasswordToken == token &&
			i.ResetPasswordExpires != nil && i.ResetPasswordExpires.After(time.Now()) {
			clone := *i
			return &clone, nil
		}
	}
	return nil, apperrors.ErrInvalidResetToken
}

func (f *fakeInstitutionStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.institutions[id]
	if !ok {
		return apperrors.ErrInstitutionNotFound
	}
	i.Password = passwordHash
	i.ResetPasswordToken = nil
	i.ResetPasswordExpires = nil
	return nil
}

// recorderEmailService counts dispatched emails per kind
type recorderEmailService struct {
	mu             sync.Mutex
	registration   int
	approval       int
	passwordResets int
}

func (r *recorderEmailService) SendRegistrationEmail(_, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registration++
	return nil
}

func (r *recorderEmailService) SendApprovalEmail(_, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approval++
	return nil
}

func (r *recorderEmailService) SendPasswordResetEmail(_, _, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwordResets++
	return nil
}

// fakeStatisticsStore returns canned aggregation results
type fakeStatisticsStore struct {
	overview     repositories.OverviewCounts
	genders      []dto.GenderCount
	ageBuckets   []dto.AgeBucketCount
	departments  []dto.DepartmentStats
	courses      []dto.CourseStats
	semesters    []dto.SemesterStats
	states       []dto.StateStats
	institutions []dto.InstitutionStats
	trends       []dto.MonthlyTrend

	institutionCalls int
}

func (f *fakeStatisticsStore) Overview(_ context.Context, _ dto.StatisticsFilter) (*repositories.OverviewCounts, error) {
	o := f.overview
	return &o, nil
}

func (f *fakeStatisticsStore) GenderCounts(_ context.Context, _ dto.StatisticsFilter) ([]dto.GenderCount, error) {
	return f.genders, nil
}

func (f *fakeStatisticsStore) AgeBucketCounts(_ context.Context, _ dto.StatisticsFilter) ([]dto.AgeBucketCount, error) {
	return f.ageBuckets, nil
}

func (f *fakeStatisticsStore) DepartmentStats(_ context.Context, _ dto.StatisticsFilter) ([]dto.DepartmentStats, error) {
	return f.departments, nil
}

func (f *fakeStatisticsStore) CourseStats(_ context.Context, _ dto.StatisticsFilter) ([]dto.CourseStats, error) {
	return f.courses, nil
}

func (f *fakeStatisticsStore) SemesterStats(_ context.Context, _ dto.StatisticsFilter) ([]dto.SemesterStats, error) {
	return f.semesters, nil
}

func (f *fakeStatisticsStore) StateStats(_ context.Context, _ dto.StatisticsFilter) ([]dto.StateStats, error) {
	return f.states, nil
}

func (f *fakeStatisticsStore) InstitutionStats(_ context.Context, _ dto.StatisticsFilter) ([]dto.InstitutionStats, error) {
	f.institutionCalls++
	return f.institutions, nil
}

func (f *fakeStatisticsStore) MonthlyTrends(_ context.Context, _ dto.StatisticsFilter) ([]dto.MonthlyTrend, error) {
	return f.trends, nil
}
