package models

// Student defines a roster entry based on the 'students' table.
// USN is the barcode token scanned at events; it is a string because
// real identifiers overflow int64 safe handling (e.g. "22000745800").
type Student struct {
	USN     string `json:"usn" db:"usn" example:"22000745800"`
	Name    string `json:"name" db:"name" example:"Juan Dela Cruz"`
	Course  string `json:"course" db:"course" example:"BSIT"`
	Contact string `json:"contact" db:"contact" example:"09171234567"`
}
