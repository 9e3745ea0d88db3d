package dto

import "time"

// StatisticsFilter scopes the aggregations. A nil InstitutionID means
// system-wide; the institutions breakdown is only computed when unscoped.
type StatisticsFilter struct {
	InstitutionID  *int64
	RegisteredFrom *time.Time
	RegisteredTo   *time.Time
}

// StatisticsOverview holds the headline counts and derived rates
type StatisticsOverview struct {
	TotalStudents       int64   `json:"totalStudents" example:"1500"`
	ActiveStudents      int64   `json:"activeStudents" example:"1350"`
	DeactivatedStudents int64   `json:"deactivatedStudents" example:"150"`
	ActivePercentage    float64 `json:"activePercentage" example:"90"`
	AverageAge          float64 `json:"averageAge" example:"21.4"`
	TotalDepartments    int64   `json:"totalDepartments" example:"12"`
	TotalCourses        int64   `json:"totalCourses" example:"34"`
	TotalStates         int64   `json:"totalStates" example:"9"`
	MonthlyGrowthRate   float64 `json:"monthlyGrowthRate" example:"12.5"`
}

// GenderCount is one gender aggregation bucket
type GenderCount struct {
	Gender string `json:"gender" example:"Female"`
	Count  int64  `json:"count" example:"720"`
}

// AgeBucketCount is one derived age-range aggregation bucket
type AgeBucketCount struct {
	Bucket string `json:"bucket" example:"20-21"`
	Count  int64  `json:"count" example:"410"`
}

// DepartmentStats is the per-department breakdown with gender split
type DepartmentStats struct {
	Department  string `json:"department" example:"Engineering"`
	Count       int64  `json:"count" example:"320"`
	ActiveCount int64  `json:"activeCount" example:"300"`
	MaleCount   int64  `json:"maleCount" example:"180"`
	FemaleCount int64  `json:"femaleCount" example:"135"`
}

// CourseStats is the per-course breakdown with touching departments
type CourseStats struct {
	Course      string   `json:"course" example:"BSc Computer Science"`
	Count       int64    `json:"count" example:"140"`
	Departments []string `json:"departments" example:"Engineering"`
}

// SemesterStats is the per-semester breakdown, sorted ascending
type SemesterStats struct {
	Semester    string `json:"semester" example:"3"`
	Count       int64  `json:"count" example:"260"`
	ActiveCount int64  `json:"activeCount" example:"240"`
}

// StateStats is the per-state breakdown with distinct districts
type StateStats struct {
	State     string   `json:"state" example:"Karnataka"`
	Count     int64    `json:"count" example:"410"`
	Districts []string `json:"districts" example:"Bengaluru Urban"`
}

// InstitutionStats is the per-institution rollup, present only when the
// request is not already scoped to a single institution
type InstitutionStats struct {
	InstitutionID    int64   `json:"institutionId" example:"7"`
	OrgName          string  `json:"orgName" example:"Greenfield Institute of Technology"`
	Count            int64   `json:"count" example:"120"`
	ActiveCount      int64   `json:"activeCount" example:"110"`
	ActivePercentage float64 `json:"activePercentage" example:"91.67"`
}

// MonthlyTrend is one month of the trailing 12-month registration series
type MonthlyTrend struct {
	Year        int   `json:"year" example:"2024"`
	Month       int   `json:"month" example:"6"`
	Count       int64 `json:"count" example:"42"`
	ActiveCount int64 `json:"activeCount" example:"40"`
}

// StudentStatistics is the full nested statistics payload
type StudentStatistics struct {
	Overview     StatisticsOverview `json:"overview"`
	Demographics struct {
		ByGender    []GenderCount    `json:"byGender"`
		ByAgeBucket []AgeBucketCount `json:"byAgeBucket"`
	} `json:"demographics"`
	Academic struct {
		ByDepartment []DepartmentStats `json:"byDepartment"`
		ByCourse     []CourseStats     `json:"byCourse"`
		BySemester   []SemesterStats   `json:"bySemester"`
	} `json:"academic"`
	Geographic struct {
		ByState []StateStats `json:"byState"`
	} `json:"geographic"`
	Institutions []InstitutionStats `json:"institutions,omitempty"`
	Trends       []MonthlyTrend     `json:"trends"`
}
