// Package errors provides standardized error handling for the banking assistant.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Backend business errors. Their Message fields are shown to the user
// verbatim, so they are phrased as replies rather than diagnostics.
const (
	ErrCodeAccountNotFound      ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeCardMismatch         ErrorCode = "CARD_MISMATCH"
	ErrCodeLoanSubmissionFailed ErrorCode = "LOAN_SUBMISSION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeStateStoreFailed  ErrorCode = "STATE_STORE_FAILED"
	ErrCodeStateDecodeFailed ErrorCode = "STATE_DECODE_FAILED"

	ErrCodeNotificationSendFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeRequestValidationFailed ErrorCode = "REQUEST_VALIDATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// UserMessage extracts the text that may be surfaced to the end user. The
// flows return backend failure messages verbatim, so anything that is not a
// StandardError gets a generic reply instead of leaking internals.
func UserMessage(err error) string {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Message
	}
	return "Something went wrong. Please try again."
}

// NewAccountNotFoundError creates a non-retryable account lookup error.
func NewAccountNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAccountNotFound,
		Message:   "Account not found",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCardMismatchError creates a non-retryable card verification error.
func NewCardMismatchError(cardType, lastFour string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCardMismatch,
		Message:   "Card not found or type mismatch",
		Details:   fmt.Sprintf("cardType: %s, lastFour: %s", cardType, lastFour),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLoanSubmissionFailedError creates a retryable loan submission error.
func NewLoanSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLoanSubmissionFailed,
		Message:   "Loan application failed.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Something went wrong. Please try again.",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStateStoreFailedError creates a retryable conversation state store error.
func NewStateStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStateStoreFailed,
		Message:   "Conversation state store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStateDecodeFailedError creates a non-retryable state payload error.
func NewStateDecodeFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStateDecodeFailed,
		Message:   "Conversation state payload corrupted",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification delivery error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
