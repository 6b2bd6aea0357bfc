package dto

import "time"

// APIResponse is the standard success envelope for API endpoints
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-09-12T09:01:05.123Z"`
}

// SuccessResponse represents a plain confirmation message
type SuccessResponse struct {
	Message string `json:"message"`
}
