package models

import (
	"time"
)

// Institution defines the institution model based on the 'institutions' table
type Institution struct {
	ID              int64   `json:"id" db:"id" example:"7"`
	OrgName         string  `json:"orgName" db:"org_name" example:"Greenfield Institute of Technology"`
	Email           string  `json:"email" db:"email" example:"admin@greenfield.edu"` // Unique system-wide
	Password        string  `json:"-" db:"password"`
	IndustrySector  string  `json:"industrySector" db:"industry_sector" example:"Higher Education"`
	BusinessAddress string  `json:"businessAddress" db:"business_address" example:"42 College Road, Springfield, IL"`
	PostalCode      string  `json:"postalCode" db:"postal_code" example:"560001"`
	MainTelephone   string  `json:"mainTelephone" db:"main_telephone" example:"+14155550199"`
	Website         *string `json:"website,omitempty" db:"website" example:"https://greenfield.edu"`

	// Primary contact person, required at registration
	ContactFirstName string `json:"contactFirstName" db:"contact_first_name" example:"John"`
	ContactLastName  string `json:"contactLastName" db:"contact_last_name" example:"Smith"`
	ContactTitle     string `json:"contactTitle" db:"contact_title" example:"Registrar"`
	ContactEmail     string `json:"contactEmail" db:"contact_email" example:"john.smith@greenfield.edu"`
	ContactPhone     string `json:"contactPhone" db:"contact_phone" example:"+14155550123"`

	// Secondary contact person, optional
	SecondaryContactFirstName *string `json:"secondaryContactFirstName,omitempty" db:"secondary_contact_first_name"`
	SecondaryContactLastName  *string `json:"secondaryContactLastName,omitempty" db:"secondary_contact_last_name"`
	SecondaryContactTitle     *string `json:"secondaryContactTitle,omitempty" db:"secondary_contact_title"`
	SecondaryContactEmail     *string `json:"secondaryContactEmail,omitempty" db:"secondary_contact_email"`
	SecondaryContactPhone     *string `json:"secondaryContactPhone,omitempty" db:"secondary_contact_phone"`

	IsApproved           bool       `json:"isApproved" db:"is_approved"`
	IsTerminated         bool       `json:"isTerminated" db:"is_terminated"`
	ResetPasswordToken   *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpires *time.Time `json:"-" db:"reset_password_expires"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}

// Status derives the display status from the approval and termination flags.
// Terminated wins over approved.
func (i *Institution) Status() InstitutionStatus {
	switch {
	case i.IsTerminated:
		return InstitutionStatusTerminated
	case i.IsApproved:
		return InstitutionStatusApproved
	default:
		return InstitutionStatusPending
	}
}
