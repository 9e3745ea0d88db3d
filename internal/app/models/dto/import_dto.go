package dto

// ImportSummary reports the outcome of a successful bulk import.
// An import either creates every row or creates nothing.
type ImportSummary struct {
	TotalProcessed      int               `json:"totalProcessed" example:"150"`
	SuccessfullyCreated int               `json:"successfullyCreated" example:"150"`
	CreatedRecords      []StudentResponse `json:"createdRecords"`
}

// ImportErrorResponse is returned when one or more rows fail validation.
// Errors reference spreadsheet line numbers, header included.
type ImportErrorResponse struct {
	Message string   `json:"message" example:"Import failed validation"`
	Errors  []string `json:"errors" example:"Row 2: Full name is required"`
}
