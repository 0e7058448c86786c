// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for cache, fetch, parse and API failure handling

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// CacheInitError is returned when neither the primary nor the fallback cache
// directory can be used. It is fatal at startup.
type CacheInitError struct {
	PrimaryDir  string
	FallbackDir string
	PrimaryErr  error
	FallbackErr error
}

// Error implements the error interface
func (e *CacheInitError) Error() string {
	return fmt.Sprintf("cache init failed: primary %q: %v; fallback %q: %v",
		e.PrimaryDir, e.PrimaryErr, e.FallbackDir, e.FallbackErr)
}

// Unwrap returns the fallback error, the last one encountered
func (e *CacheInitError) Unwrap() error {
	return e.FallbackErr
}

// CacheCorruptionError describes a cache record that could not be decoded.
// The store recovers from it locally; it only travels as far as the logs.
type CacheCorruptionError struct {
	Key  string
	Path string
	Err  error
}

// Error implements the error interface
func (e *CacheCorruptionError) Error() string {
	return fmt.Sprintf("corrupt cache record %s (%s): %v", e.Key, e.Path, e.Err)
}

// Unwrap returns the underlying decode error
func (e *CacheCorruptionError) Unwrap() error {
	return e.Err
}

// FetchError represents a failed upstream fetch: transport failure, timeout
// or a non-success HTTP status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents a document that could not be parsed as a catalog
type ParseError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying parser error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsCacheInit checks if an error is a CacheInitError
func IsCacheInit(err error) bool {
	var initErr *CacheInitError
	return errors.As(err, &initErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
