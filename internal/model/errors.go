package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrCredentialsMissing marks a source that was skipped because its
// credentials are not configured. A capability check, not a runtime failure.
var ErrCredentialsMissing = errors.New("credentials not configured")

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ParseError marks an unexpected page structure in a scrape source after the
// heuristic fallback pass also produced nothing.
type ParseError struct {
	Source Source
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: parsing page: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: page structure not recognized", e.Source)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
