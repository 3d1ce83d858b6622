package models

// UserDetails represents the authenticated user as reported by the server
type UserDetails struct {
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}

// Health is the payload of the server root endpoint
type Health struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
