package types

// ErrorResponse is the body written for every failed operation
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of the welcome endpoint
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
