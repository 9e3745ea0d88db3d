package dto

import (
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
)

// CreateStudentRequest is the payload for creating a single student
type CreateStudentRequest struct {
	AdmissionNumber string `json:"admissionNumber" binding:"required" example:"ADM2024001"`
	FullName        string `json:"fullName" binding:"required" example:"Jane Doe"`
	Gender          string `json:"gender" binding:"required" example:"Female"`
	PhoneNumber     string `json:"phoneNumber" binding:"required" example:"+14155550123"`
	DateOfBirth     string `json:"dateOfBirth" binding:"required" example:"2001-05-14"`
	JoiningDate     string `json:"joiningDate" binding:"required" example:"2023-09-01"`
	CurrentCourse   string `json:"currentCourse" binding:"required" example:"BSc Computer Science"`
	Department      string `json:"department" binding:"required" example:"Engineering"`
	Semester        string `json:"semester" binding:"required" example:"3"`
	State           string `json:"state" binding:"required" example:"Karnataka"`
	District        string `json:"district" binding:"required" example:"Bengaluru Urban"`
	County          string `json:"county" binding:"required" example:"Central"`
	InstitutionID   int64  `json:"institutionId" binding:"required" example:"7"`
}

// UpdateStudentRequest is the payload for updating a student.
// All fields are optional; only provided fields are updated.
type UpdateStudentRequest struct {
	FullName      *string `json:"fullName,omitempty" example:"Jane Doe"`
	Gender        *string `json:"gender,omitempty" example:"Female"`
	PhoneNumber   *string `json:"phoneNumber,omitempty" example:"+14155550123"`
	DateOfBirth   *string `json:"dateOfBirth,omitempty" example:"2001-05-14"`
	JoiningDate   *string `json:"joiningDate,omitempty" example:"2023-09-01"`
	CurrentCourse *string `json:"currentCourse,omitempty" example:"BSc Computer Science"`
	Department    *string `json:"department,omitempty" example:"Engineering"`
	Semester      *string `json:"semester,omitempty" example:"3"`
	State         *string `json:"state,omitempty" example:"Karnataka"`
	District      *string `json:"district,omitempty" example:"Bengaluru Urban"`
	County        *string `json:"county,omitempty" example:"Central"`
}

// StudentResponse is the student representation returned by the API
type StudentResponse struct {
	ID              int64    `json:"id" example:"1"`
	AdmissionNumber string   `json:"admissionNumber" example:"ADM2024001"`
	FullName        string   `json:"fullName" example:"Jane Doe"`
	Gender          string   `json:"gender" example:"Female"`
	PhoneNumber     string   `json:"phoneNumber" example:"+14155550123"`
	DateOfBirth     string   `json:"dateOfBirth" example:"2001-05-14"`
	JoiningDate     string   `json:"joiningDate" example:"2023-09-01"`
	CurrentCourse   string   `json:"currentCourse" example:"BSc Computer Science"`
	Department      string   `json:"department" example:"Engineering"`
	Semester        string   `json:"semester" example:"3"`
	State           string   `json:"state" example:"Karnataka"`
	District        string   `json:"district" example:"Bengaluru Urban"`
	County          string   `json:"county" example:"Central"`
	PassportPhoto   string   `json:"passportPhoto,omitempty"`
	Marksheets      []string `json:"marksheets,omitempty"`
	Status          string   `json:"status" example:"ACTIVE"`
	InstitutionID   int64    `json:"institutionId" example:"7"`
	InstitutionName string   `json:"institutionName,omitempty" example:"Greenfield Institute of Technology"`
	CreatedAt       string   `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt       string   `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// StudentListResponse is the paginated list payload for students
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// StudentFilter collects the supported list query filters
type StudentFilter struct {
	InstitutionID *int64
	Status        *models.StudentStatus
	Department    *string
	Course        *string
	Semester      *string
	State         *string
	Search        *string
	Page          int
	PageSize      int
}

// ToStudentResponse maps a student model to its API representation
func ToStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:              s.ID,
		AdmissionNumber: s.AdmissionNumber,
		FullName:        s.FullName,
		Gender:          string(s.Gender),
		PhoneNumber:     s.PhoneNumber,
		DateOfBirth:     s.DateOfBirth.Format("2006-01-02"),
		JoiningDate:     s.JoiningDate.Format("2006-01-02"),
		CurrentCourse:   s.CurrentCourse,
		Department:      s.Department,
		Semester:        s.Semester,
		State:           s.State,
		District:        s.District,
		County:          s.County,
		PassportPhoto:   s.PassportPhoto,
		Marksheets:      s.Marksheets,
		Status:          string(s.Status),
		InstitutionID:   s.InstitutionID,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Institution != nil {
		resp.InstitutionName = s.Institution.OrgName
	}
	return resp
}
