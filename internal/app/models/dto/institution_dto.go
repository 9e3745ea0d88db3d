package dto

import (
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
)

// RegisterInstitutionRequest is the payload for institution registration
type RegisterInstitutionRequest struct {
	OrgName         string  `json:"orgName" binding:"required" example:"Greenfield Institute of Technology"`
	Email           string  `json:"email" binding:"required,email" example:"admin@greenfield.edu"`
	Password        string  `json:"password" binding:"required,min=8" example:"Password123!"`
	IndustrySector  string  `json:"industrySector" binding:"required" example:"Higher Education"`
	BusinessAddress string  `json:"businessAddress" binding:"required" example:"42 College Road, Springfield, IL"`
	PostalCode      string  `json:"postalCode" binding:"required" example:"560001"`
	MainTelephone   string  `json:"mainTelephone" binding:"required" example:"+14155550199"`
	Website         *string `json:"website,omitempty" example:"https://greenfield.edu"`

	ContactFirstName string `json:"contactFirstName" binding:"required" example:"John"`
	ContactLastName  string `json:"contactLastName" binding:"required" example:"Smith"`
	ContactTitle     string `json:"contactTitle" binding:"required" example:"Registrar"`
	ContactEmail     string `json:"contactEmail" binding:"required,email" example:"john.smith@greenfield.edu"`
	ContactPhone     string `json:"contactPhone" binding:"required" example:"+14155550123"`

	SecondaryContactFirstName *string `json:"secondaryContactFirstName,omitempty"`
	SecondaryContactLastName  *string `json:"secondaryContactLastName,omitempty"`
	SecondaryContactTitle     *string `json:"secondaryContactTitle,omitempty"`
	SecondaryContactEmail     *string `json:"secondaryContactEmail,omitempty"`
	SecondaryContactPhone     *string `json:"secondaryContactPhone,omitempty"`
}

// LoginRequest is the payload for institution login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@greenfield.edu"`
	Password string `json:"password" binding:"required" example:"Password123!"`
}

// LoginResponse carries the issued token and the authenticated institution
type LoginResponse struct {
	Token       string              `json:"token"`
	Institution InstitutionResponse `json:"institution"`
}

// UpdateInstitutionRequest is the payload for updating institution details.
// All fields are optional; only provided fields are updated.
type UpdateInstitutionRequest struct {
	OrgName         *string `json:"orgName,omitempty"`
	IndustrySector  *string `json:"industrySector,omitempty"`
	BusinessAddress *string `json:"businessAddress,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`
	MainTelephone   *string `json:"mainTelephone,omitempty"`
	Website         *string `json:"website,omitempty"`

	ContactFirstName *string `json:"contactFirstName,omitempty"`
	ContactLastName  *string `json:"contactLastName,omitempty"`
	ContactTitle     *string `json:"contactTitle,omitempty"`
	ContactEmail     *string `json:"contactEmail,omitempty"`
	ContactPhone     *string `json:"contactPhone,omitempty"`

	SecondaryContactFirstName *string `json:"secondaryContactFirstName,omitempty"`
	SecondaryContactLastName  *string `json:"secondaryContactLastName,omitempty"`
	SecondaryContactTitle     *string `json:"secondaryContactTitle,omitempty"`
	SecondaryContactEmail     *string `json:"secondaryContactEmail,omitempty"`
	SecondaryContactPhone     *string `json:"secondaryContactPhone,omitempty"`

	IsApproved   *bool `json:"isApproved,omitempty"`
	IsTerminated *bool `json:"isTerminated,omitempty"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"admin@greenfield.edu"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// InstitutionResponse is the institution representation returned by the API
type InstitutionResponse struct {
	ID              int64  `json:"id" example:"7"`
	OrgName         string `json:"orgName" example:"Greenfield Institute of Technology"`
	Email           string `json:"email" example:"admin@greenfield.edu"`
	IndustrySector  string `json:"industrySector" example:"Higher Education"`
	BusinessAddress string `json:"businessAddress" example:"42 College Road, Springfield, IL"`
	PostalCode      string `json:"postalCode" example:"560001"`
	MainTelephone   string `json:"mainTelephone" example:"+14155550199"`
	Website         string `json:"website,omitempty" example:"https://greenfield.edu"`

	ContactFirstName string `json:"contactFirstName" example:"John"`
	ContactLastName  string `json:"contactLastName" example:"Smith"`
	ContactTitle     string `json:"contactTitle" example:"Registrar"`
	ContactEmail     string `json:"contactEmail" example:"john.smith@greenfield.edu"`
	ContactPhone     string `json:"contactPhone" example:"+14155550123"`

	SecondaryContactFirstName string `json:"secondaryContactFirstName,omitempty"`
	SecondaryContactLastName  string `json:"secondaryContactLastName,omitempty"`
	SecondaryContactTitle     string `json:"secondaryContactTitle,omitempty"`
	SecondaryContactEmail     string `json:"secondaryContactEmail,omitempty"`
	SecondaryContactPhone     string `json:"secondaryContactPhone,omitempty"`

	IsApproved   bool   `json:"isApproved" example:"true"`
	IsTerminated bool   `json:"isTerminated" example:"false"`
	Status       string `json:"status" example:"APPROVED"`
	StudentCount int64  `json:"studentCount,omitempty" example:"120"`
	CreatedAt    string `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt    string `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// InstitutionListResponse is the paginated list payload for institutions
type InstitutionListResponse struct {
	Institutions []InstitutionResponse `json:"institutions"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// InstitutionFilter collects the supported list query filters
type InstitutionFilter struct {
	Status   *models.InstitutionStatus
	Search   *string
	Page     int
	PageSize int
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToInstitutionResponse maps an institution model to its API representation
func ToInstitutionResponse(i *models.Institution) InstitutionResponse {
	return InstitutionResponse{
		ID:              i.ID,
		OrgName:         i.OrgName,
		Email:           i.Email,
		IndustrySector:  i.IndustrySector,
		BusinessAddress: i.BusinessAddress,
		PostalCode:      i.PostalCode,
		MainTelephone:   i.MainTelephone,
		Website:         derefOrEmpty(i.Website),

		ContactFirstName: i.ContactFirstName,
		ContactLastName:  i.ContactLastName,
		ContactTitle:     i.ContactTitle,
		ContactEmail:     i.ContactEmail,
		ContactPhone:     i.ContactPhone,

		SecondaryContactFirstName: derefOrEmpty(i.SecondaryContactFirstName),
		SecondaryContactLastName:  derefOrEmpty(i.SecondaryContactLastName),
		SecondaryContactTitle:     derefOrEmpty(i.SecondaryContactTitle),
		SecondaryContactEmail:     derefOrEmpty(i.SecondaryContactEmail),
		SecondaryContactPhone:     derefOrEmpty(i.SecondaryContactPhone),

		IsApproved:   i.IsApproved,
		IsTerminated: i.IsTerminated,
		Status:       string(i.Status()),
		CreatedAt:    i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    i.UpdatedAt.Format(time.RFC3339),
	}
}
