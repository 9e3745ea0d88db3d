package dto

// ExportRow is one flattened record keyed by display label. Every value is a
// plain string; absent source fields render as "N/A".
type ExportRow map[string]string

// ExportPayload is the JSON export body for client-side spreadsheet
// materialization
type ExportPayload struct {
	Data     []ExportRow `json:"data"`
	Filename string      `json:"filename" example:"students_export_2024-06-15.csv"`
}
