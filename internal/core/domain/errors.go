// Package domain defines the core domain models for linearcli.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
// Codes follow the format LC-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "LC-CACHE-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithDetailsf is WithDetails with fmt.Sprintf formatting.
func (e *DomainError) WithDetailsf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Cache Errors (CACHE)
// Lookups against the local cache that found nothing.
// ============================================================================

var (
	// ErrAPIKeyMissing indicates no API key is stored in the cache.
	ErrAPIKeyMissing = NewDomainError("LC-CACHE-4010", "api key not configured")

	// ErrTeamsNotSynced indicates teams have never been synced.
	ErrTeamsNotSynced = NewDomainError("LC-CACHE-4041", "teams not synced")

	// ErrUsersNotSynced indicates users have never been synced.
	ErrUsersNotSynced = NewDomainError("LC-CACHE-4042", "users not synced")

	// ErrStateNotFound indicates no workflow state with the requested name
	// exists for the team.
	ErrStateNotFound = NewDomainError("LC-CACHE-4043", "workflow state not found")

	// ErrTeamProjectsNotFound indicates the team has no entry in the
	// team-to-projects index.
	ErrTeamProjectsNotFound = NewDomainError("LC-CACHE-4044", "no projects synced for team")

	// ErrProjectNotFound indicates a project id missing from projects_by_id.
	ErrProjectNotFound = NewDomainError("LC-CACHE-4045", "project not found")

	// ErrDefaultTeamMissing indicates no team was given and no default is set.
	ErrDefaultTeamMissing = NewDomainError("LC-CACHE-4046", "default team not set")

	// ErrIdentityMissing indicates the viewer id has not been synced.
	ErrIdentityMissing = NewDomainError("LC-CACHE-4047", "viewer identity not synced")

	// ErrProjectsNotSynced indicates projects have never been synced.
	ErrProjectsNotSynced = NewDomainError("LC-CACHE-4048", "projects not synced")

	// ErrConfigKeyReadOnly indicates a cache key that is owned by sync.
	ErrConfigKeyReadOnly = NewDomainError("LC-CACHE-4001", "config key is managed by sync")

	// ErrCacheCorrupt indicates the cache file could not be decoded.
	ErrCacheCorrupt = NewDomainError("LC-CACHE-5001", "cache file corrupt")
)

// ============================================================================
// Remote Errors (API)
// ============================================================================

var (
	// ErrIssueCreateFailed indicates issueCreate returned success=false.
	ErrIssueCreateFailed = NewDomainError("LC-API-5001", "issue creation failed")

	// ErrUnexpectedResponse indicates a response missing a required field.
	ErrUnexpectedResponse = NewDomainError("LC-API-5002", "unexpected response")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("LC-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("LC-ARG-1002", "missing required argument")
)
