package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("not authorized to perform this action")
	ErrNotFound     = errors.New("not found")

	ErrBookingNotFound  = fmt.Errorf("booking %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrLocationNotFound = fmt.Errorf("location %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
)

// ValidationError maps json field names to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// StoreError hides a persistence failure behind a generic message. The cause
// is reachable with errors.Unwrap for logging only.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "failed to " + e.Op }

func (e *StoreError) Unwrap() error { return e.Err }
