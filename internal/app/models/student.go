package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID              int64         `json:"id" db:"id" example:"1"`
	AdmissionNumber string        `json:"admissionNumber" db:"admission_number" example:"ADM2024001"` // Unique system-wide
	FullName        string        `json:"fullName" db:"full_name" example:"Jane Doe"`
	Gender          Gender        `json:"gender" db:"gender" example:"Female"`
	PhoneNumber     string        `json:"phoneNumber" db:"phone_number" example:"+14155550123"`
	DateOfBirth     time.Time     `json:"dateOfBirth" db:"date_of_birth" example:"2001-05-14T00:00:00Z"`
	JoiningDate     time.Time     `json:"joiningDate" db:"joining_date" example:"2023-09-01T00:00:00Z"`
	CurrentCourse   string        `json:"currentCourse" db:"current_course" example:"BSc Computer Science"`
	Department      string        `json:"department" db:"department" example:"Engineering"`
	Semester        string        `json:"semester" db:"semester" example:"3"`
	State           string        `json:"state" db:"state" example:"Karnataka"`
	District        string        `json:"district" db:"district" example:"Bengaluru Urban"`
	County          string        `json:"county" db:"county" example:"Central"`
	PassportPhoto   string        `json:"passportPhoto,omitempty" db:"passport_photo"`  // URL, attached after creation
	Marksheets      []string      `json:"marksheets,omitempty" db:"marksheets"`         // Ordered list of URLs
	Status          StudentStatus `json:"status" db:"status" example:"ACTIVE"`
	InstitutionID   int64         `json:"institutionId" db:"institution_id" example:"7"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`

	// Relation, populated when needed
	Institution *Institution `json:"institution,omitempty"`
}

// IsActive reports whether the record is in the active lifecycle state.
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}

// Age returns the student's age in whole years at the reference time,
// using 365.25-day years.
func (s *Student) Age(at time.Time) int {
	if s.DateOfBirth.IsZero() || s.DateOfBirth.After(at) {
		return 0
	}
	return int(at.Sub(s.DateOfBirth).Hours() / 24 / 365.25)
}
