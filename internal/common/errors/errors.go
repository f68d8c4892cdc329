// Package errors provides the standardized error taxonomy for the SDK.
// Every terminal flow failure maps to exactly one SDKError, which the
// facade surfaces as a single sdkError event; errors never cross the
// renderer boundary as panics.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfiguration        ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeNetwork              ErrorCode = "NETWORK_ERROR"
	ErrCodeDecode               ErrorCode = "DECODE_ERROR"
	ErrCodeExtraction           ErrorCode = "EXTRACTION_ERROR"
	ErrCodeSecurityCheck        ErrorCode = "SECURITY_CHECK_ERROR"
	ErrCodeChallenge            ErrorCode = "CHALLENGE_ERROR"
	ErrCodeUnsupportedPlacement ErrorCode = "UNSUPPORTED_PLACEMENT"
	ErrCodeFlowInProgress       ErrorCode = "FLOW_IN_PROGRESS"
)

// SDKError represents a structured SDK error.
type SDKError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"status,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *SDKError) Error() string {
	return fmt.Sprintf("SDKError[%s]: %s", e.Code, e.Message)
}

// NewConfigurationError creates a non-retryable configuration error.
// The flow cannot start without the named configuration.
func NewConfigurationError(details string) *SDKError {
	return &SDKError{
		Code:      ErrCodeConfiguration,
		Message:   "Brand configurations are missing or unavailable",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError creates an error for a non-2xx response status.
func NewNetworkError(status int, details string) *SDKError {
	return &SDKError{
		Code:      ErrCodeNetwork,
		Message:   fmt.Sprintf("Server returned an error: %d", status),
		Details:   details,
		Status:    status,
		Retryable: status >= 500,
		Timestamp: time.Now().UTC(),
	}
}

// NewDecodeError creates an error for a malformed JSON payload.
func NewDecodeError(err error) *SDKError {
	return &SDKError{
		Code:      ErrCodeDecode,
		Message:   "Failed to decode the server response",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionError creates an error for a fragment missing a node the
// flow cannot proceed without. All other extraction gaps degrade to empty
// fields instead of erroring.
func NewExtractionError(details string) *SDKError {
	return &SDKError{
		Code:      ErrCodeExtraction,
		Message:   "Unable to parse placement content",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSecurityCheckError creates an error for a failed or timed-out
// bot-verification token fetch. Fatal for the attempt.
func NewSecurityCheckError(err error) *SDKError {
	return &SDKError{
		Code:      ErrCodeSecurityCheck,
		Message:   "Security check token acquisition failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewChallengeError creates an error for a challenge that could not be
// resolved within the retry ceiling.
func NewChallengeError(details string) *SDKError {
	return &SDKError{
		Code:      ErrCodeChallenge,
		Message:   "Bot challenge could not be resolved",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedPlacementError creates an error for an action or overlay
// type string the taxonomy does not recognize.
func NewUnsupportedPlacementError(details string) *SDKError {
	return &SDKError{
		Code:      ErrCodeUnsupportedPlacement,
		Message:   "Unhandled placement type",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFlowInProgressError creates an error for a flow started while another
// one on the same handle is still running.
func NewFlowInProgressError() *SDKError {
	return &SDKError{
		Code:      ErrCodeFlowInProgress,
		Message:   "Another flow is already in progress on this handle",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is an *SDKError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	sdkErr, ok := err.(*SDKError)
	return ok && sdkErr.Code == code
}
