package models

import (
	"fmt"
	"unicode/utf8"
)

// Credentials is the body of the login and signup requests
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResult is returned by the signup endpoint
type SignupResult struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// MutationResult is returned by create, update and delete endpoints
type MutationResult struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 6

// ValidateSignup runs the local signup checks in order: all fields set,
// passwords equal, password long enough. Callers send nothing when it fails.
func ValidateSignup(email, password, confirm string) error {
	if email == "" || password == "" || confirm == "" {
		return Invalid("All fields are required")
	}
	if password != confirm {
		return Invalid("Passwords do not match")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Invalid(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	return nil
}
