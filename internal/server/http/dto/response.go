package dto

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewError builds the failure envelope for the given message.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
