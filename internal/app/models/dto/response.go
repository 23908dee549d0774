package dto

import "time"

// APIResponse is the standard envelope for API endpoints
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-03-12T10:04:05.123Z"`
}

// NewSuccessResponse wraps response data in the standard envelope
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a plain message payload for API endpoints
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// CountResponse carries a single count value.
type CountResponse struct {
	Count int64 `json:"count" example:"3"`
}
