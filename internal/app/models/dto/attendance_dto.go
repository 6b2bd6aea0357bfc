package dto

// ScanRequest represents a barcode scan submitted from a scanning station
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
	Action  string `json:"action" binding:"required"`
	EventID int64  `json:"event_id" binding:"required"`
}

// ScanRecord is the resulting ledger state returned to the scanning station
type ScanRecord struct {
	USN     string `json:"usn" example:"22000745800"`
	Name    string `json:"name" example:"Juan Dela Cruz"`
	Date    string `json:"date" example:"2025-09-12"`
	TimeIn  string `json:"time_in" example:"8:59 AM"`
	TimeOut string `json:"time_out" example:""`
}

// ScanResponse wraps the record the way scanning stations expect it
type ScanResponse struct {
	Record ScanRecord `json:"record"`
}
