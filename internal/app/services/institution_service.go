package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/auth"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/email"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/helpers"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
)

const resetTokenTTL = time.Hour

type institutionService struct {
	institutions InstitutionStore
	students     StudentStore
	email        email.EmailService
	jwt          *auth.JWTService
}

// NewInstitutionService creates the institution lifecycle service
func NewInstitutionService(
	institutions InstitutionStore,
	students StudentStore,
	emailService email.EmailService,
	jwtService *auth.JWTService,
) InstitutionService {
	return &institutionService{
		institutions: institutions,
		students:     students,
		email:        emailService,
		jwt:          jwtService,
	}
}

// Register creates a new pending institution and dispatches the
// confirmation email
func (s *institutionService) Register(ctx context.Context, req dto.RegisterInstitutionRequest) (*models.Institution, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	institution := &models.Institution{
		OrgName:         strings.TrimSpace(req.OrgName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Password:        hash,
		IndustrySector:  strings.TrimSpace(req.IndustrySector),
		BusinessAddress: strings.TrimSpace(req.BusinessAddress),
		PostalCode:      strings.TrimSpace(req.PostalCode),
		MainTelephone:   strings.TrimSpace(req.MainTelephone),
		Website:         req.Website,

		ContactFirstName: strings.TrimSpace(req.ContactFirstName),
		ContactLastName:  strings.TrimSpace(req.ContactLastName),
		ContactTitle:     strings.TrimSpace(req.ContactTitle),
		ContactEmail:     strings.TrimSpace(req.ContactEmail),
		ContactPhone:     strings.TrimSpace(req.ContactPhone),

		SecondaryContactFirstName: req.SecondaryContactFirstName,
		SecondaryContactLastName:  req.SecondaryContactLastName,
		SecondaryContactTitle:     req.SecondaryContactTitle,
		SecondaryContactEmail:     req.SecondaryContactEmail,
		SecondaryContactPhone:     req.SecondaryContactPhone,
	}

	created, err := s.institutions.Create(ctx, institution)
	if err != nil {
		return nil, err
	}

	if err := s.email.SendRegistrationEmail(created.Email, created.OrgName); err != nil {
		logger.Warn().Err(err).Int64("institutionID", created.ID).Msg("Failed to send registration email")
	}

	logger.Info().Int64("institutionID", created.ID).Str("email", created.Email).Msg("Institution registered")
	return created, nil
}

// Login authenticates an institution and issues an access token
func (s *institutionService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	institution, err := s.institutions.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrInstitutionNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, institution.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if institution.IsTerminated {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "account is terminated")
	}

	token, err := s.jwt.GenerateToken(institution.ID, institution.Email)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:       token,
		Institution: dto.ToInstitutionResponse(institution),
	}, nil
}

// GetInstitution fetches one institution with its current student count
func (s *institutionService) GetInstitution(ctx context.Context, id int64) (*models.Institution, int64, error) {
	institution, err := s.institutions.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.students.CountByInstitution(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	return institution, count, nil
}

// ListInstitutions returns one page of institutions matching the filter
func (s *institutionService) ListInstitutions(ctx context.Context, filter dto.InstitutionFilter) ([]*models.Institution, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	return s.institutions.List(ctx, filter, offset, limit)
}

// UpdateInstitution applies the provided fields. The approval email goes out
// exactly once, on the false to true flip of isApproved; re-approving an
// already approved account sends nothing.
func (s *institutionService) UpdateInstitution(ctx context.Context, id int64, req dto.UpdateInstitutionRequest) (*models.Institution, error) {
	institution, err := s.institutions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasApproved := institution.IsApproved

	if req.OrgName != nil {
		institution.OrgName = strings.TrimSpace(*req.OrgName)
	}
	if req.IndustrySector != nil {
		institution.IndustrySector = strings.TrimSpace(*req.IndustrySector)
	}
	if req.BusinessAddress != nil {
		institution.BusinessAddress = strings.TrimSpace(*req.BusinessAddress)
	}
	if req.PostalCode != nil {
		institution.PostalCode = strings.TrimSpace(*req.PostalCode)
	}
	if req.MainTelephone != nil {
		institution.MainTelephone = strings.TrimSpace(*req.MainTelephone)
	}
	if req.Website != nil {
		institution.Website = req.Website
	}
	if req.ContactFirstName != nil {
		institution.ContactFirstName = strings.TrimSpace(*req.ContactFirstName)
	}
	if req.ContactLastName != nil {
		institution.ContactLastName = strings.TrimSpace(*req.ContactLastName)
	}
	if req.ContactTitle != nil {
		institution.ContactTitle = strings.TrimSpace(*req.ContactTitle)
	}
	if req.ContactEmail != nil {
		institution.ContactEmail = strings.TrimSpace(*req.ContactEmail)
	}
	if req.ContactPhone != nil {
		institution.ContactPhone = strings.TrimSpace(*req.ContactPhone)
	}
	if req.SecondaryContactFirstName != nil {
		institution.SecondaryContactFirstName = req.SecondaryContactFirstName
	}
	if req.SecondaryContactLastName != nil {
		institution.SecondaryContactLastName = req.SecondaryContactLastName
	}
	if req.SecondaryContactTitle != nil {
		institution.SecondaryContactTitle = req.SecondaryContactTitle
	}
	if req.SecondaryContactEmail != nil {
		institution.SecondaryContactEmail = req.SecondaryContactEmail
	}
	if req.SecondaryContactPhone != nil {
		institution.SecondaryContactPhone = req.SecondaryContactPhone
	}
	if req.IsApproved != nil {
		institution.IsApproved = *req.IsApproved
	}
	if req.IsTerminated != nil {
		institution.IsTerminated = *req.IsTerminated
	}

	updated, err := s.institutions.Update(ctx, institution)
	if err != nil {
		return nil, err
	}

	if !wasApproved && updated.IsApproved {
		if err := s.email.SendApprovalEmail(updated.Email, updated.OrgName); err != nil {
			logger.Warn().Err(err).Int64("institutionID", updated.ID).Msg("Failed to send approval email")
		} else {
			logger.Info().Int64("institutionID", updated.ID).Msg("Approval email sent")
		}
	}

	return updated, nil
}

// DeleteInstitution removes an institution. Deletion is rejected while the
// institution still owns students.
func (s *institutionService) DeleteInstitution(ctx context.Context, id int64) error {
	if _, err := s.institutions.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.students.CountByInstitution(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrInstitutionHasStudents
	}

	return s.institutions.Delete(ctx, id)
}

// ForgotPassword issues a reset token and emails it. Unknown addresses are
// treated as success so the endpoint cannot be used to probe for accounts.
func (s *institutionService) ForgotPassword(ctx context.Context, emailAddr string) error {
	institution, err := s.institutions.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrInstitutionNotFound) {
			logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := email.GenerateResetToken()
	if err != nil {
		return err
	}

	if err := s.institutions.SetResetToken(ctx, institution.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if err := s.email.SendPasswordResetEmail(institution.Email, institution.OrgName, token); err != nil {
		logger.Warn().Err(err).Int64("institutionID", institution.ID).Msg("Failed to send password reset email")
	}

	return nil
}

// ResetPassword completes the reset flow for a valid, unexpired token
func (s *institutionService) ResetPassword(ctx context.Context, token, newPassword string) error {
	institution, err := s.institutions.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.institutions.UpdatePassword(ctx, institution.ID, hash); err != nil {
		return err
	}

	logger.Info().Int64("institutionID", institution.ID).Msg("Password reset completed")
	return nil
}
