package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/spreadsheet"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"

	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var studentExportHeaders = []string{
	"Admission Number", "Full Name", "Gender", "Phone Number",
	"Date of Birth", "Joining Date", "Current Course", "Department",
	"Semester", "State", "District", "County", "Status",
	"Passport Photo", "Marksheets", "Institution", "Institution Email",
	"Registered At",
}

var institutionExportHeaders = []string{
	"Organization", "Email", "Industry Sector", "Full Address",
	"Main Telephone", "Website", "Contact Person", "Contact Title",
	"Contact Email", "Contact Phone", "Secondary Contact", "Status",
	"Registered At",
}

type exportService struct {
	students     StudentStore
	institutions InstitutionStore

	// now is swappable in tests
	now func() time.Time
}

// NewExportService creates the tabular export service
func NewExportService(students StudentStore, institutions InstitutionStore) ExportService {
	return &exportService{students: students, institutions: institutions, now: time.Now}
}

// ExportStudents serializes the filtered student set, institution joined,
// in repository order (newest first)
func (s *exportService) ExportStudents(ctx context.Context, filter dto.StudentFilter, format string) (*ExportResult, error) {
	students, err := s.students.ListForExport(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(students))
	for _, student := range students {
		rows = append(rows, studentExportRow(student))
	}

	return s.buildExportResult("students", format, studentExportHeaders, rows)
}

// ExportStudentsJSON returns the flattened row set for client-side
// spreadsheet materialization
func (s *exportService) ExportStudentsJSON(ctx context.Context, filter dto.StudentFilter) (*dto.ExportPayload, error) {
	students, err := s.students.ListForExport(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ExportRow, 0, len(students))
	for _, student := range students {
		row := studentExportRow(student)
		mapped := make(dto.ExportRow, len(studentExportHeaders))
		for i, header := range studentExportHeaders {
			mapped[header] = row[i]
		}
		data = append(data, mapped)
	}

	return &dto.ExportPayload{
		Data:     data,
		Filename: s.exportFilename("students", ExportFormatCSV),
	}, nil
}

// ExportInstitutions serializes the filtered institution set
func (s *exportService) ExportInstitutions(ctx context.Context, filter dto.InstitutionFilter, format string) (*ExportResult, error) {
	institutions, err := s.institutions.ListForExport(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(institutions))
	for _, inst := range institutions {
		rows = append(rows, institutionExportRow(inst))
	}

	return s.buildExportResult("institutions", format, institutionExportHeaders, rows)
}

func (s *exportService) buildExportResult(scope, format string, headers []string, rows [][]string) (*ExportResult, error) {
	switch format {
	case "", ExportFormatCSV:
		return &ExportResult{
			ContentType: csvContentType,
			Filename:    s.exportFilename(scope, ExportFormatCSV),
			Data:        []byte(spreadsheet.WriteCSV(headers, rows)),
		}, nil
	case ExportFormatXLSX:
		data, err := spreadsheet.BuildWorkbook("Export", headers, rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			ContentType: xlsxContentType,
			Filename:    s.exportFilename(scope, ExportFormatXLSX),
			Data:        data,
		}, nil
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *exportService) exportFilename(scope, ext string) string {
	return fmt.Sprintf("%s_export_%s.%s", scope, s.now().Format("2006-01-02"), ext)
}

func studentExportRow(s *models.Student) []string {
	institutionName, institutionEmail := "", ""
	if s.Institution != nil {
		institutionName = s.Institution.OrgName
		institutionEmail = s.Institution.Email
	}

	return []string{
		orNA(s.AdmissionNumber),
		orNA(s.FullName),
		orNA(string(s.Gender)),
		orNA(s.PhoneNumber),
		orNA(formatDate(s.DateOfBirth)),
		orNA(formatDate(s.JoiningDate)),
		orNA(s.CurrentCourse),
		orNA(s.Department),
		orNA(s.Semester),
		orNA(s.State),
		orNA(s.District),
		orNA(s.County),
		orNA(string(s.Status)),
		orNA(s.PassportPhoto),
		orNA(strings.Join(s.Marksheets, "; ")),
		orNA(institutionName),
		orNA(institutionEmail),
		orNA(formatDate(s.CreatedAt)),
	}
}

func institutionExportRow(i *models.Institution) []string {
	secondary := composeName(
		strFromPtr(i.SecondaryContactFirstName),
		strFromPtr(i.SecondaryContactLastName))

	return []string{
		orNA(i.OrgName),
		orNA(i.Email),
		orNA(i.IndustrySector),
		orNA(composeAddress(i.BusinessAddress, i.PostalCode)),
		orNA(i.MainTelephone),
		orNA(strFromPtr(i.Website)),
		orNA(composeName(i.ContactFirstName, i.ContactLastName)),
		orNA(i.ContactTitle),
		orNA(i.ContactEmail),
		orNA(i.ContactPhone),
		orNA(secondary),
		orNA(string(i.Status())),
		orNA(formatDate(i.CreatedAt)),
	}
}

// orNA substitutes "N/A" for absent values so no cell is ever empty
func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// composeAddress joins address parts with comma separators, dropping empty
// parts and redundant leading or trailing commas inside each part
func composeAddress(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), ",")
		part = strings.TrimSpace(part)
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, ", ")
}

// composeName joins first and last name with whitespace cleanup
func composeName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func strFromPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
