package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a gateway call failed
type ErrorKind string

const (
	// InvalidCredentials means the server refused a login
	InvalidCredentials ErrorKind = "invalid_credentials"
	// Rejected means the server refused any other request (OTP, register, reset)
	Rejected ErrorKind = "rejected"
	// MalformedResponse means a success response could not be interpreted
	MalformedResponse ErrorKind = "malformed_response"
	// Unreachable means the request never got an HTTP response
	Unreachable ErrorKind = "unreachable"
)

// AuthError is the single user-facing failure of one gateway call
type AuthError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the user
func UserMessage(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}

// IsInvalidCredentials checks if the server refused a login
func IsInvalidCredentials(err error) bool {
	return kindOf(err) == InvalidCredentials
}

// IsRejected checks if the server refused a non-login request
func IsRejected(err error) bool {
	return kindOf(err) == Rejected
}

// IsMalformedResponse checks if a success response was unusable
func IsMalformedResponse(err error) bool {
	return kindOf(err) == MalformedResponse
}

// IsUnreachable checks if the server could not be reached
func IsUnreachable(err error) bool {
	return kindOf(err) == Unreachable
}

func kindOf(err error) ErrorKind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return ""
}
