// internal/common/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeMissingSelection      ErrorCode = "MISSING_SELECTION"
	ErrCodeMissingRequiredColumn ErrorCode = "MISSING_REQUIRED_COLUMN"

	ErrCodeSheetNotFound    ErrorCode = "SHEET_NOT_FOUND"
	ErrCodeSheetReadFailed  ErrorCode = "SHEET_READ_FAILED"
	ErrCodeSheetWriteFailed ErrorCode = "SHEET_WRITE_FAILED"

	ErrCodeInvalidJobInput ErrorCode = "INVALID_JOB_INPUT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeReportStoreFailed      ErrorCode = "REPORT_STORE_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error shape returned by every intake operation.
// UserMessage, when set, is the text shown to whoever triggered the run.
type StandardError struct {
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	UserMessage string                 `json:"userMessage,omitempty"`
	Retryable   bool                   `json:"retryable"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	cause       error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// BPMNError is the shape thrown back to the process engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func NewMissingSelectionError() *StandardError {
	return &StandardError{
		Code:        ErrCodeMissingSelection,
		Message:     "No rows selected for scoring",
		UserMessage: "Please select a range of rows to process.",
		Retryable:   false,
		Timestamp:   time.Now().UTC(),
	}
}

func NewMissingRequiredColumnError(sheet string, columns ...string) *StandardError {
	msg := fmt.Sprintf("%s column not found.", strings.Join(columns, ", "))
	if len(columns) > 1 {
		msg = fmt.Sprintf("%s columns not found.", strings.Join(columns, ", "))
	}
	return &StandardError{
		Code:        ErrCodeMissingRequiredColumn,
		Message:     "Required column missing",
		Details:     fmt.Sprintf("sheet %q is missing %s", sheet, strings.Join(columns, ", ")),
		UserMessage: msg,
		Retryable:   false,
		Metadata: map[string]interface{}{
			"sheet":   sheet,
			"columns": columns,
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewSheetNotFoundError(sheet string) *StandardError {
	return &StandardError{
		Code:        ErrCodeSheetNotFound,
		Message:     "Sheet not found",
		Details:     fmt.Sprintf("sheet: %s", sheet),
		UserMessage: fmt.Sprintf("Sheet %q not found.", sheet),
		Retryable:   false,
		Timestamp:   time.Now().UTC(),
	}
}

func NewSheetReadFailedError(sheet string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSheetReadFailed,
		Message:   fmt.Sprintf("Failed to read sheet %q", sheet),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSheetWriteFailedError(sheet string, row int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSheetWriteFailed,
		Message:   fmt.Sprintf("Failed to write sheet %q", sheet),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"sheet": sheet, "row": row},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvalidJobInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidJobInput,
		Message:   "Job variables failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   fmt.Sprintf("Failed to send %s notification", channel),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewReportStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportStoreFailed,
		Message:   "Failed to store run report",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// AsStandardError unwraps err into a *StandardError when one is in its chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// UserMessage returns the text to show the person who triggered a failed run.
func UserMessage(err error) string {
	if stdErr, ok := AsStandardError(err); ok {
		if stdErr.UserMessage != "" {
			return stdErr.UserMessage
		}
		return stdErr.Message
	}
	return err.Error()
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeMissingSelection:         "MISSING_SELECTION",
	ErrCodeMissingRequiredColumn:    "MISSING_REQUIRED_COLUMN",
	ErrCodeSheetNotFound:            "SHEET_NOT_FOUND",
	ErrCodeSheetReadFailed:          "SHEET_READ_FAILED",
	ErrCodeSheetWriteFailed:         "SHEET_WRITE_FAILED",
	ErrCodeInvalidJobInput:          "INVALID_JOB_INPUT",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeReportStoreFailed:        "REPORT_STORE_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeSheetReadFailed:
		return 3

	// Writes are not transactional. A retry re-runs the whole pass, which
	// is safe because ingest and transfer skip what they already wrote.
	case ErrCodeSheetWriteFailed:
		return 2

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	if stdErr.UserMessage != "" {
		vars["userMessage"] = stdErr.UserMessage
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SELECTION") || strings.Contains(codeStr, "COLUMN") || strings.Contains(codeStr, "INPUT"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SHEET"):
		return "SHEET"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "REPORT"):
		return "DELIVERY"
	default:
		return "OTHER"
	}
}
