package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
)

// fakeFileStorage hands out sequential URLs without touching the disk
type fakeFileStorage struct {
	mu    sync.Mutex
	saved int
}

func (f *fakeFileStorage) SaveFile(_ *multipart.FileHeader, subDir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved++
	return fmt.Sprintf("http://localhost/uploads/%s/file-%d", subDir, f.saved), nil
}

func (f *fakeFileStorage) DeleteFile(_ string) error { return nil }

func newStudentFixture() (*fakeStudentStore, *fakeInstitutionStore, *fakeFileStorage, StudentService, int64) {
	students := newFakeStudentStore()
	institutions := newFakeInstitutionStore()
	storage := &fakeFileStorage{}
	inst := institutions.add(&models.Institution{OrgName: "Org", Email: "org@test.edu"})
	return students, institutions, storage, NewStudentService(students, institutions, storage), inst.ID
}

func createStudentRequest(instID int64) dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		InstitutionID:   instID,
		AdmissionNumber: "ADM001",
		FullName:        "Alice Example",
		Gender:          "Female",
		PhoneNumber:     "+14155550123",
		DateOfBirth:     "2000-05-01",
		JoiningDate:     "2020-09-01",
		CurrentCourse:   "CS",
		Department:      "Engineering",
		Semester:        "3",
		State:           "Kerala",
		District:        "Ernakulam",
		County:          "Central",
	}
}

func TestCreateStudent(t *testing.T) {
	_, _, _, svc, instID := newStudentFixture()

	created, err := svc.CreateStudent(context.Background(), createStudentRequest(instID))
	require.NoError(t, err)

	assert.Equal(t, "ADM001", created.AdmissionNumber)
	assert.Equal(t, models.StudentStatusActive, created.Status)
	assert.NotZero(t, created.ID)
}

func TestCreateStudentValidationFailure(t *testing.T) {
	students, _, _, svc, instID := newStudentFixture()

	req := createStudentRequest(instID)
	req.Gender = "banana"

	_, err := svc.CreateStudent(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.NotEmpty(t, apperrors.DetailLines(err))
	assert.Zero(t, students.count())
}

func TestCreateStudentDuplicateAdmissionNumber(t *testing.T) {
	_, _, _, svc, instID := newStudentFixture()

	_, err := svc.CreateStudent(context.Background(), createStudentRequest(instID))
	require.NoError(t, err)

	req := createStudentRequest(instID)
	req.FullName = "Someone Else"
	_, err = svc.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrAdmissionNumberExists)
}

func TestCreateStudentUnknownInstitution(t *testing.T) {
	_, _, _, svc, _ := newStudentFixture()

	_, err := svc.CreateStudent(context.Background(), createStudentRequest(999))
	assert.ErrorIs(t, err, apperrors.ErrInstitutionNotFound)
}

func TestUpdateStudentMergeAndRevalidate(t *testing.T) {
	_, _, _, svc, instID := newStudentFixture()

	created, err := svc.CreateStudent(context.Background(), createStudentRequest(instID))
	require.NoError(t, err)

	newCourse := "Data Science"
	updated, err := svc.UpdateStudent(context.Background(), created.ID,
		dto.UpdateStudentRequest{CurrentCourse: &newCourse})
	require.NoError(t, err)
	assert.Equal(t, "Data Science", updated.CurrentCourse)
	assert.Equal(t, "Alice Example", updated.FullName, "unspecified fields untouched")

	badPhone := "not-a-phone"
	_, err = svc.UpdateStudent(context.Background(), created.ID,
		dto.UpdateStudentRequest{PhoneNumber: &badPhone})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeactivateStudent(t *testing.T) {
	students, _, _, svc, instID := newStudentFixture()

	created, err := svc.CreateStudent(context.Background(), createStudentRequest(instID))
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateStudent(context.Background(), created.ID))

	stored, err := students.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusDeactivated, stored.Status)

	err = svc.DeactivateStudent(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAttachPassportPhotoAndMarksheets(t *testing.T) {
	students, _, storage, svc, instID := newStudentFixture()

	created, err := svc.CreateStudent(context.Background(), createStudentRequest(instID))
	require.NoError(t, err)

	url, err := svc.AttachPassportPhoto(context.Background(), created.ID, &multipart.FileHeader{Filename: "photo.jpg"})
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/photos/")

	_, err = svc.AttachMarksheet(context.Background(), created.ID, &multipart.FileHeader{Filename: "sem1.pdf"})
	require.NoError(t, err)
	_, err = svc.AttachMarksheet(context.Background(), created.ID, &multipart.FileHeader{Filename: "sem2.pdf"})
	require.NoError(t, err)

	stored, err := students.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PassportPhoto)
	assert.Len(t, stored.Marksheets, 2, "marksheets accumulate in upload order")
	assert.Equal(t, 3, storage.saved)

	_, err = svc.AttachPassportPhoto(context.Background(), 999, &multipart.FileHeader{Filename: "x.jpg"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
