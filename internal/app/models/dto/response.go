package dto

import "time"

// APIResponse is the standard response envelope for all endpoints. Exactly
// one of Data or Error is set.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-08-25T12:01:05.123Z"`
}

// NewErrorResponse creates an error envelope with the current timestamp.
func NewErrorResponse(errorDetail *ErrorDetail) APIResponse {
	return APIResponse{
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
