package models

// Gender defines the accepted gender values for a student record
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IsValid reports whether g is one of the accepted gender values.
// Matching is case-sensitive.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// StudentStatus is the lifecycle state of a student record. Records are never
// physically deleted; a delete request moves the record to DEACTIVATED.
type StudentStatus string

const (
	StudentStatusActive      StudentStatus = "ACTIVE"
	StudentStatusDeactivated StudentStatus = "DEACTIVATED"
)

// InstitutionStatus is the display status derived from the approval and
// termination flags. Terminated takes precedence over approved.
type InstitutionStatus string

const (
	InstitutionStatusPending    InstitutionStatus = "PENDING"
	InstitutionStatusApproved   InstitutionStatus = "APPROVED"
	InstitutionStatusTerminated InstitutionStatus = "TERMINATED"
)
