package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for each error type
type ErrorCode string

const (
	// General errors
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"

	// File acquisition errors
	ErrCodeInvalidFile       ErrorCode = "INVALID_FILE"
	ErrCodeFileTooLarge      ErrorCode = "FILE_TOO_LARGE"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeFileConversion    ErrorCode = "FILE_CONVERSION_ERROR"

	// Parse errors
	ErrCodeEmptyInput  ErrorCode = "EMPTY_INPUT"
	ErrCodeParseFailed ErrorCode = "PARSE_FAILED"

	// Dataset errors
	ErrCodeUnknownColumn      ErrorCode = "UNKNOWN_COLUMN"
	ErrCodeInvalidType        ErrorCode = "INVALID_TYPE"
	ErrCodeInvalidAggregation ErrorCode = "INVALID_AGGREGATION"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds additional context to the error
func (e *AppError) WithDetails(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with AppError context
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

func InternalWrap(err error, message string) *AppError {
	return Wrap(err, ErrCodeInternal, message)
}

func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message)
}

// File acquisition errors

func InvalidFile(message string) *AppError {
	return New(ErrCodeInvalidFile, message)
}

func FileTooLarge(maxSize int64) *AppError {
	return New(ErrCodeFileTooLarge,
		fmt.Sprintf("file size exceeds maximum allowed size of %d MB", maxSize))
}

func UnsupportedFormat(format string) *AppError {
	return New(ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format: %s", format))
}

// FileConversion wraps a spreadsheet-to-text conversion failure into a single
// error; callers never receive partial rows alongside it.
func FileConversion(err error) *AppError {
	return Wrap(err, ErrCodeFileConversion,
		"failed to convert spreadsheet to delimited text")
}

// Parse errors

// EmptyInput signals a parse attempt over blank input. Always fatal to the
// parse: there are no rows to work with.
func EmptyInput() *AppError {
	return New(ErrCodeEmptyInput, "input is empty: no rows to parse")
}

func ParseFailed(message string) *AppError {
	return New(ErrCodeParseFailed, message)
}

// Dataset errors

func UnknownColumn(name string) *AppError {
	return New(ErrCodeUnknownColumn,
		fmt.Sprintf("column %q does not exist in the dataset", name))
}

func InvalidType(value string) *AppError {
	return New(ErrCodeInvalidType,
		fmt.Sprintf("%q is not a valid column type", value))
}

func InvalidAggregation(method string) *AppError {
	return New(ErrCodeInvalidAggregation,
		fmt.Sprintf("%q is not a supported aggregation method", method))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error chain
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Code == code
}
