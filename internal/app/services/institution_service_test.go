package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/auth"
)

func boolPtr(b bool) *bool { return &b }

func newInstitutionFixture() (*fakeInstitutionStore, *fakeStudentStore, *recorderEmailService, InstitutionService) {
	institutions := newFakeInstitutionStore()
	students := newFakeStudentStore()
	emails := &recorderEmailService{}
	jwt := auth.NewJWTService("test-secret", time.Hour, "cbpd-admin")
	svc := NewInstitutionService(institutions, students, emails, jwt)
	return institutions, students, emails, svc
}

func registerRequest(email string) dto.RegisterInstitutionRequest {
	return dto.RegisterInstitutionRequest{
		OrgName:          "Acme Institute",
		Email:            email,
		Password:         "s3cretpass",
		IndustrySector:   "Education",
		BusinessAddress:  "12 Main St",
		PostalCode:       "62704",
		MainTelephone:    "+15551234",
		ContactFirstName: "Jane",
		ContactLastName:  "Doe",
		ContactTitle:     "Registrar",
		ContactEmail:     "jane@test.edu",
		ContactPhone:     "+15555678",
	}
}

func TestRegisterHashesPasswordAndSendsEmail(t *testing.T) {
	_, _, emails, svc := newInstitutionFixture()

	created, err := svc.Register(context.Background(), registerRequest("Admin@Test.EDU"))
	require.NoError(t, err)

	assert.Equal(t, "admin@test.edu", created.Email)
	assert.NotEqual(t, "s3cretpass", created.Password)
	assert.True(t, auth.CheckPasswordHash("s3cretpass", created.Password))
	assert.False(t, created.IsApproved)
	assert.Equal(t, models.InstitutionStatusPending, created.Status())
	assert.Equal(t, 1, emails.registration)
}

func TestLoginRejectsWrongPasswordAndTerminated(t *testing.T) {
	institutions, _, _, svc := newInstitutionFixture()

	created, err := svc.Register(context.Background(), registerRequest("org@test.edu"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "org@test.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "missing@test.edu", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "org@test.edu", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	created.IsTerminated = true
	_, err = institutions.Update(context.Background(), created)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "org@test.edu", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestApprovalEmailSentExactlyOnce(t *testing.T) {
	_, _, emails, svc := newInstitutionFixture()

	created, err := svc.Register(context.Background(), registerRequest("org@test.edu"))
	require.NoError(t, err)

	// First flip to approved: one email
	updated, err := svc.UpdateInstitution(context.Background(), created.ID,
		dto.UpdateInstitutionRequest{IsApproved: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsApproved)
	assert.Equal(t, models.InstitutionStatusApproved, updated.Status())
	assert.Equal(t, 1, emails.approval)

	// Re-approving an already approved account sends nothing
	_, err = svc.UpdateInstitution(context.Background(), created.ID,
		dto.UpdateInstitutionRequest{IsApproved: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1, emails.approval)

	// Unrelated update on an approved account sends nothing either
	name := "Renamed Institute"
	_, err = svc.UpdateInstitution(context.Background(), created.ID,
		dto.UpdateInstitutionRequest{OrgName: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, emails.approval)
}

func TestDeleteBlockedWhileStudentsExist(t *testing.T) {
	institutions, students, _, svc := newInstitutionFixture()

	inst := institutions.add(&models.Institution{OrgName: "Org", Email: "org@test.edu"})
	_, err := students.Create(context.Background(), &models.Student{
		AdmissionNumber: "X1",
		FullName:        "A",
		InstitutionID:   inst.ID,
	})
	require.NoError(t, err)

	err = svc.DeleteInstitution(context.Background(), inst.ID)
	assert.ErrorIs(t, err, apperrors.ErrInstitutionHasStudents)

	_, err = institutions.GetByID(context.Background(), inst.ID)
	assert.NoError(t, err, "institution must survive the rejected delete")
}

func TestDeleteSucceedsWithoutStudents(t *testing.T) {
	institutions, _, _, svc := newInstitutionFixture()

	inst := institutions.add(&models.Institution{OrgName: "Org", Email: "org@test.edu"})
	require.NoError(t, svc.DeleteInstitution(context.Background(), inst.ID))

	_, err := institutions.GetByID(context.Background(), inst.ID)
	assert.ErrorIs(t, err, apperrors.ErrInstitutionNotFound)
}

func TestForgotPasswordUnknownEmailSilentlySucceeds(t *testing.T) {
	_, _, emails, svc := newInstitutionFixture()

	err := svc.ForgotPassword(context.Background(), "nobody@test.edu")
	assert.NoError(t, err)
	assert.Zero(t, emails.passwordResets)
}

func TestPasswordResetFlow(t *testing.T) {
	institutions, _, emails, svc := newInstitutionFixture()

	created, err := svc.Register(context.Background(), registerRequest("org@test.edu"))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), "org@test.edu"))
	assert.Equal(t, 1, emails.passwordResets)

	stored, err := institutions.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetPasswordToken)

	require.NoError(t, svc.ResetPassword(context.Background(), *stored.ResetPasswordToken, "newpass123"))

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "org@test.edu", Password: "newpass123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Token is single use
	err = svc.ResetPassword(context.Background(), *stored.ResetPasswordToken, "another")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestGetInstitutionIncludesStudentCount(t *testing.T) {
	institutions, students, _, svc := newInstitutionFixture()

	inst := institutions.add(&models.Institution{OrgName: "Org", Email: "org@test.edu"})
	for _, n := range []string{"X1", "X2"} {
		_, err := students.Create(context.Background(), &models.Student{
			AdmissionNumber: n,
			FullName:        "S " + n,
			InstitutionID:   inst.ID,
		})
		require.NoError(t, err)
	}

	got, count, err := svc.GetInstitution(context.Background(), inst.ID)
	require.NoError(t, err)
	assert.Equal(t, inst.ID, got.ID)
	assert.Equal(t, int64(2), count)
}
