package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("LC-TEST-1000", "test message"),
			expected: "[LC-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("LC-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[LC-TEST-1001] test message: extra info",
		},
		{
			name:     "error with formatted details",
			err:      NewDomainError("LC-TEST-1002", "lookup").WithDetailsf("team %s", "T1"),
			expected: "[LC-TEST-1002] lookup: team T1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("LC-TEST-1000", "message 1")
	err2 := NewDomainError("LC-TEST-1000", "message 2")
	err3 := NewDomainError("LC-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("LC-TEST-1000", "wrapper").WithCause(cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := NewDomainError("LC-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("LC-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
}

func TestIsDomainError(t *testing.T) {
	err := ErrStateNotFound

	if !IsDomainError(err, "LC-CACHE-4043") {
		t.Error("IsDomainError should return true for matching code")
	}
	if IsDomainError(err, "LC-CACHE-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}
	if IsDomainError(fmt.Errorf("regular error"), "LC-CACHE-4043") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrStateNotFound)
	if !IsDomainError(wrapped, "LC-CACHE-4043") {
		t.Error("IsDomainError should work with wrapped errors")
	}
	if !IsDomainError(wrapped, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrTeamsNotSynced, "LC-CACHE-4041"},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", ErrIssueCreateFailed), "LC-API-5001"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrAPIKeyMissing, "LC-CACHE-4010"},
		{ErrTeamsNotSynced, "LC-CACHE-4041"},
		{ErrUsersNotSynced, "LC-CACHE-4042"},
		{ErrStateNotFound, "LC-CACHE-4043"},
		{ErrTeamProjectsNotFound, "LC-CACHE-4044"},
		{ErrProjectNotFound, "LC-CACHE-4045"},
		{ErrDefaultTeamMissing, "LC-CACHE-4046"},
		{ErrIdentityMissing, "LC-CACHE-4047"},
		{ErrProjectsNotSynced, "LC-CACHE-4048"},
		{ErrConfigKeyReadOnly, "LC-CACHE-4001"},
		{ErrCacheCorrupt, "LC-CACHE-5001"},
		{ErrIssueCreateFailed, "LC-API-5001"},
		{ErrUnexpectedResponse, "LC-API-5002"},
		{ErrInvalidArgument, "LC-ARG-1001"},
		{ErrMissingArgument, "LC-ARG-1002"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Error code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Error message should not be empty")
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ErrCacheCorrupt.
		WithDetails("teams").
		WithCause(cause)

	if err.Code != "LC-CACHE-5001" {
		t.Errorf("Code = %q, want %q", err.Code, "LC-CACHE-5001")
	}
	if err.Details != "teams" {
		t.Errorf("Details = %q", err.Details)
	}
	if err.Cause != cause {
		t.Error("Cause should be preserved")
	}
	if !errors.Is(err, ErrCacheCorrupt) {
		t.Error("errors.Is should work after chaining")
	}
}
