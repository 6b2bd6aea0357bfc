package dto

// CreateStudentRequest represents a roster entry submission
type CreateStudentRequest struct {
	USN     string `json:"usn" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Course  string `json:"course" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}

// UpdateStudentRequest represents a profile edit; the USN itself is immutable
type UpdateStudentRequest struct {
	Name    string `json:"name" binding:"required"`
	Course  string `json:"course" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}
