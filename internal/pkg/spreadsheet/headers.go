package spreadsheet

import "strings"

// Canonical field names produced by the parser. These are also the keys of
// the alias table and the order of the import template header row.
const (
	FieldAdmissionNumber = "admissionNumber"
	FieldFullName        = "fullName"
	FieldGender          = "gender"
	FieldPhoneNumber     = "phoneNumber"
	FieldDateOfBirth     = "dateOfBirth"
	FieldJoiningDate     = "joiningDate"
	FieldCurrentCourse   = "currentCourse"
	FieldDepartment      = "department"
	FieldSemester        = "semester"
	FieldState           = "state"
	FieldDistrict        = "district"
	FieldCounty          = "county"
)

// CanonicalFields lists every parsed field in template column order
var CanonicalFields = []string{
	FieldAdmissionNumber,
	FieldFullName,
	FieldGender,
	FieldPhoneNumber,
	FieldDateOfBirth,
	FieldJoiningDate,
	FieldCurrentCourse,
	FieldDepartment,
	FieldSemester,
	FieldState,
	FieldDistrict,
	FieldCounty,
}

// DisplayHeaders maps canonical fields to the human-readable header used in
// the downloadable template
var DisplayHeaders = map[string]string{
	FieldAdmissionNumber: "Admission Number",
	FieldFullName:        "Full Name",
	FieldGender:          "Gender",
	FieldPhoneNumber:     "Phone Number",
	FieldDateOfBirth:     "Date of Birth",
	FieldJoiningDate:     "Joining Date",
	FieldCurrentCourse:   "Current Course",
	FieldDepartment:      "Department",
	FieldSemester:        "Semester",
	FieldState:           "State",
	FieldDistrict:        "District",
	FieldCounty:          "County",
}

// headerAliases is the declarative header tolerance table: each canonical
// field lists every accepted header spelling in priority order. Adding a new
// accepted spelling is a one-line change here.
var headerAliases = map[string][]string{
	FieldAdmissionNumber: {"Admission Number", "admissionNumber", "admission_number", "Admission No", "Adm No"},
	FieldFullName:        {"Full Name", "fullName", "full_name", "Name", "Student Name"},
	FieldGender:          {"Gender", "gender", "Sex"},
	FieldPhoneNumber:     {"Phone Number", "phoneNumber", "phone_number", "Phone", "Mobile", "Mobile Number"},
	FieldDateOfBirth:     {"Date of Birth", "dateOfBirth", "date_of_birth", "DOB", "Birth Date"},
	FieldJoiningDate:     {"Joining Date", "joiningDate", "joining_date", "Date of Joining", "Admission Date"},
	FieldCurrentCourse:   {"Current Course", "currentCourse", "current_course", "Course"},
	FieldDepartment:      {"Department", "department", "Dept"},
	FieldSemester:        {"Semester", "semester", "Sem"},
	FieldState:           {"State", "state"},
	FieldDistrict:        {"District", "district"},
	FieldCounty:          {"County", "county", "Taluk"},
}

// resolveColumns maps each canonical field to the index of the first header
// cell matching one of its accepted spellings. Matching ignores case and
// surrounding whitespace. Fields with no matching header map to -1.
func resolveColumns(headerRow []string) map[string]int {
	normalized := make([]string, len(headerRow))
	for i, h := range headerRow {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	columns := make(map[string]int, len(CanonicalFields))
	for _, field := range CanonicalFields {
		columns[field] = -1
		for _, alias := range headerAliases[field] {
			target := strings.ToLower(alias)
			for i, h := range normalized {
				if h == target {
					columns[field] = i
					break
				}
			}
			if columns[field] >= 0 {
				break
			}
		}
	}

	return columns
}
