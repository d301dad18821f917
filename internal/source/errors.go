package source

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for coarse-grained checks
var (
	ErrStreetRequired  = errors.New("street argument is required")
	ErrStreetNotFound  = errors.New("street not found in directory")
	ErrStreetAmbiguous = errors.New("street matches multiple directory entries")
	ErrNoFutureHoliday = errors.New("no future holiday found")
)

// ErrorCode represents a specific failure condition the host can render
// differently.
type ErrorCode string

const (
	ErrCodeStreetRequired  ErrorCode = "STREET_REQUIRED"
	ErrCodeStreetNotFound  ErrorCode = "STREET_NOT_FOUND"
	ErrCodeStreetAmbiguous ErrorCode = "STREET_AMBIGUOUS"
	ErrCodeNoFutureHoliday ErrorCode = "NO_FUTURE_HOLIDAY"
	ErrCodeFetchError      ErrorCode = "FETCH_ERROR"
)

// SourceError wraps a failure condition with an optional suggestion payload.
// Suggestions carry directory keys or match candidates for the host to show.
type SourceError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Underlying  error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s)", strings.Join(e.Suggestions, ", "))
	}
	if e.Underlying != nil {
		msg += fmt.Sprintf(": %v", e.Underlying)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *SourceError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *SourceError) Is(target error) bool {
	if t, ok := target.(*SourceError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewSourceError creates a new SourceError
func NewSourceError(code ErrorCode, message string, err error) *SourceError {
	return &SourceError{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

// WithSuggestions attaches a suggestion list to the error
func (e *SourceError) WithSuggestions(suggestions []string) *SourceError {
	e.Suggestions = suggestions
	return e
}
