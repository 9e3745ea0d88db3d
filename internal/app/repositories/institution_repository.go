package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/db"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/dberrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
)

const institutionColumns = `id, org_name, email, password, industry_sector, business_address,
	postal_code, main_telephone, website,
	contact_first_name, contact_last_name, contact_title, contact_email, contact_phone,
	secondary_contact_first_name, secondary_contact_last_name, secondary_contact_title,
	secondary_contact_email, secondary_contact_phone,
	is_approved, is_terminated, reset_password_token, reset_password_expires,
	created_at, updated_at`

// exportBatchLimit caps how many rows a single export pulls
const exportBatchLimit = 100000

// InstitutionRepository handles institution database operations
type InstitutionRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewInstitutionRepository creates a new InstitutionRepository
func NewInstitutionRepository(database *db.PostgresDB) *InstitutionRepository {
	return &InstitutionRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanInstitution(row pgx.Row) (*models.Institution, error) {
	var i models.Institution
	err := row.Scan(
		&i.ID, &i.OrgName, &i.Email, &i.Password, &i.IndustrySector, &i.BusinessAddress,
		&i.PostalCode, &i.MainTelephone, &i.Website,
		&i.ContactFirstName, &i.ContactLastName, &i.ContactTitle, &i.ContactEmail, &i.ContactPhone,
		&i.SecondaryContactFirstName, &i.SecondaryContactLastName, &i.SecondaryContactTitle,
		&i.SecondaryContactEmail, &i.SecondaryContactPhone,
		&i.IsApproved, &i.IsTerminated, &i.ResetPasswordToken, &i.ResetPasswordExpires,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts a new institution record
func (r *InstitutionRepository) Create(ctx context.Context, i *models.Institution) (*models.Institution, error) {
	query := `
		INSERT INTO institutions (org_name, email, password, industry_sector, business_address,
			postal_code, main_telephone, website,
			contact_first_name, contact_last_name, contact_title, contact_email, contact_phone,
			secondary_contact_first_name, secondary_contact_last_name, secondary_contact_title,
			secondary_contact_email, secondary_contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + institutionColumns

	created, err := scanInstitution(r.db.Pool.QueryRow(ctx, query,
		i.OrgName, i.Email, i.Password, i.IndustrySector, i.BusinessAddress,
		i.PostalCode, i.MainTelephone, i.Website,
		i.ContactFirstName, i.ContactLastName, i.ContactTitle, i.ContactEmail, i.ContactPhone,
		i.SecondaryContactFirstName, i.SecondaryContactLastName, i.SecondaryContactTitle,
		i.SecondaryContactEmail, i.SecondaryContactPhone,
	))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrInstitutionEmailExists
		}
		logger.Error().Err(err).Msg("Error creating institution")
		return nil, fmt.Errorf("failed to create institution: %w", err)
	}

	return created, nil
}

// GetByID fetches one institution
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	inst, err := scanInstitution(r.db.Pool.QueryRow(ctx,
		`SELECT `+institutionColumns+` FROM institutions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Int64("institutionID", id).Msg("Error fetching institution")
		return nil, fmt.Errorf("failed to get institution: %w", err)
	}
	return inst, nil
}

// GetByEmail fetches one institution by its unique email
func (r *InstitutionRepository) GetByEmail(ctx context.Context, email string) (*models.Institution, error) {
	inst, err := scanInstitution(r.db.Pool.QueryRow(ctx,
		`SELECT `+institutionColumns+` FROM institutions WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error fetching institution by email")
		return nil, fmt.Errorf("failed to get institution by email: %w", err)
	}
	return inst, nil
}

// List fetches institutions matching the filter with pagination
func (r *InstitutionRepository) List(ctx context.Context, filter dto.InstitutionFilter, offset, limit int) ([]*models.Institution, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		switch *filter.Status {
		case models.InstitutionStatusPending:
			where = append(where, squirrel.Eq{"is_approved": false}, squirrel.Eq{"is_terminated": false})
		case models.InstitutionStatusApproved:
			where = append(where, squirrel.Eq{"is_approved": true}, squirrel.Eq{"is_terminated": false})
		case models.InstitutionStatusTerminated:
			where = append(where, squirrel.Eq{"is_terminated": true})
		}
	}
	if filter.Search != nil && *filter.Search != "" {
		term := "%" + strings.TrimSpace(*filter.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"org_name": term},
			squirrel.ILike{"email": term},
		})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("institutions").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting institutions")
		return nil, 0, fmt.Errorf("failed to count institutions: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select(strings.Split(institutionColumns, ",")...).
		From("institutions").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing institutions")
		return nil, 0, fmt.Errorf("failed to list institutions: %w", err)
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan institution row: %w", err)
		}
		institutions = append(institutions, inst)
	}

	return institutions, total, rows.Err()
}

// ListForExport fetches every institution matching the filter, newest first,
// without pagination
func (r *InstitutionRepository) ListForExport(ctx context.Context, filter dto.InstitutionFilter) ([]*models.Institution, error) {
	institutions, _, err := r.List(ctx, filter, 0, exportBatchLimit)
	return institutions, err
}

// Update persists changed fields of an existing institution
func (r *InstitutionRepository) Update(ctx context.Context, i *models.Institution) (*models.Institution, error) {
	query := `
		UPDATE institutions SET
			org_name = $1, industry_sector = $2, business_address = $3, postal_code = $4,
			main_telephone = $5, website = $6,
			contact_first_name = $7, contact_last_name = $8, contact_title = $9,
			contact_email = $10, contact_phone = $11,
			secondary_contact_first_name = $12, secondary_contact_last_name = $13,
			secondary_contact_title = $14, secondary_contact_email = $15, secondary_contact_phone = $16,
			is_approved = $17, is_terminated = $18, updated_at = NOW()
		WHERE id = $19
		RETURNING ` + institutionColumns

	updated, err := scanInstitution(r.db.Pool.QueryRow(ctx, query,
		i.OrgName, i.IndustrySector, i.BusinessAddress, i.PostalCode,
		i.MainTelephone, i.Website,
		i.ContactFirstName, i.ContactLastName, i.ContactTitle,
		i.ContactEmail, i.ContactPhone,
		i.SecondaryContactFirstName, i.SecondaryContactLastName,
		i.SecondaryContactTitle, i.SecondaryContactEmail, i.SecondaryContactPhone,
		i.IsApproved, i.IsTerminated, i.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Int64("institutionID", i.ID).Msg("Error updating institution")
		return nil, fmt.Errorf("failed to update institution: %w", err)
	}

	return updated, nil
}

// Delete removes an institution record. Callers must ensure it owns no
// students first; the foreign key constraint backs that check up.
func (r *InstitutionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("institutionID", id).Msg("Error deleting institution")
		return fmt.Errorf("failed to delete institution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}
	return nil
}

// SetResetToken stores a password reset token and its expiry
func (r *InstitutionRepository) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE institutions SET reset_password_token = $1, reset_password_expires = $2, updated_at = NOW() WHERE id = $3`,
		token, expires, id)
	if err != nil {
		logger.Error().Err(err).Int64("institutionID", id).Msg("Error storing reset token")
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

// GetByResetToken fetches the institution holding an unexpired reset token
func (r *InstitutionRepository) GetByResetToken(ctx context.Context, token string) (*models.Institution, error) {
	inst, err := scanInstitution(r.db.Pool.QueryRow(ctx,
		`SELECT `+institutionColumns+` FROM institutions
		WHERE reset_password_token = $1 AND reset_password_expires > NOW()`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidResetToken
		}
		logger.Error().Err(err).Msg("Error fetching institution by reset token")
		return nil, fmt.Errorf("failed to get institution by reset token: %w", err)
	}
	return inst, nil
}

// UpdatePassword replaces the password hash and clears any reset token
func (r *InstitutionRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE institutions SET password = $1, reset_password_token = NULL,
			reset_password_expires = NULL, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		logger.Error().Err(err).Int64("institutionID", id).Msg("Error updating password")
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
