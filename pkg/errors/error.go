// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, missing data, type mismatches
//   - Data/Resource errors (200-299): Price or benchmark series not found, query failures
//   - Indicator errors (300-399): Indicator lookup and degenerate statistics
//   - Backtest errors (600-699): Backtest runs aborted for lack of data or configuration
//   - Market data errors (700-799): Market data fetching and parsing errors
//   - Advisor errors (900-999): External weight advisor failures
//   - Report errors (1000-1099): Persistence sink failures
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeNoDataFound, "no price data for %s", symbol)
//
//	if errors.HasCode(err, errors.ErrCodeNoDataFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code of the outermost *Error in err's chain. An *InsufficientDataError
// with no *Error around it reports ErrCodeInsufficientData; anything else is ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	if IsInsufficientDataError(err) {
		return ErrCodeInsufficientData
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsNoData reports whether err means the requested series is missing or too
// short to be used. Callers treat these as "no result", not as failures.
func IsNoData(err error) bool {
	if err == nil {
		return false
	}

	if IsInsufficientDataError(err) {
		return true
	}

	switch GetCode(err) {
	case ErrCodeNoDataFound, ErrCodeDataNotFound, ErrCodeInsufficientData, ErrCodeBacktestNoData:
		return true
	default:
		return false
	}
}

// InsufficientDataError reports a series shorter than a calculation needs.
type InsufficientDataError struct {
	Required int
	Actual   int
	// Symbol is empty when the series has no instrument context.
	Symbol  string
	Message string
}

// NewInsufficientDataErrorf creates an InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError reports whether err's chain holds an *InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
