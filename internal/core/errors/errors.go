// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - Unexported errors (err*): Use for internal package errors
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Report errors.
var (
	// ErrReportNotFound indicates no report file exists at any candidate path.
	ErrReportNotFound = errors.New("report not found")

	// ErrReportInvalid indicates the report file could not be read or is not a JSON object.
	ErrReportInvalid = errors.New("report invalid")
)

// Authentication and session errors.
var (
	// ErrInvalidCredentials indicates a username/password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound indicates the session is unknown or was dropped.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the session outlived its TTL.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidToken indicates a session token failed decoding or signature checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)

// Rate limiting and throttling errors.
var (
	// ErrRateLimited indicates rate limiting was triggered.
	ErrRateLimited = errors.New("rate limited")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
