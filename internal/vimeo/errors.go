package vimeo

import (
	"errors"
	"fmt"
)

// ErrConfigURLNotFound is returned when the event page contains no
// data-config-url marker.
var ErrConfigURLNotFound = errors.New("no data-config-url attribute found in page")

// StatusError represents a non-success HTTP status from any stage.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error returns the string representation of the status error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Is implements error comparison for errors.Is.
func (e *StatusError) Is(target error) bool {
	var se *StatusError
	if errors.As(target, &se) {
		return e.StatusCode == se.StatusCode
	}
	return false
}

// FormatError reports a response that parsed as its container format but
// lacks a required field, has a field of the wrong type, or fails to
// decode an encoded payload.
type FormatError struct {
	Doc    string // which document: "player config" or "manifest"
	Reason string
}

// Error returns the string representation of the format error.
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Doc, e.Reason)
}

func formatErrf(doc, format string, v ...interface{}) error {
	return &FormatError{Doc: doc, Reason: fmt.Sprintf(format, v...)}
}
