package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shashiranjanraj/storehub/pkg/database"
	"gorm.io/gorm"
)

var (
	// ErrUnauthorized signals a missing or unusable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals a valid identity acting outside its store.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is wrapped by NotFound with the missing resource's name.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a transaction that could not serialize after retries.
	ErrConflict = database.ErrConflict
	// ErrInsufficientStock is reported (inside a ValidationError) when a
	// guarded decrement would take stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInUse signals a delete blocked by rows that still reference the target.
	ErrInUse = errors.New("resource in use")
)

// NotFound wraps ErrNotFound with the resource name: "order not found".
func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// ValidationError carries field-addressable messages, keyed by a dotted path
// such as "items.0.quantity".
type ValidationError struct {
	Fields map[string]string
	cause  error
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// fieldError builds a single-field ValidationError that also matches cause
// under errors.Is.
func fieldError(field, msg string, cause error) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}, cause: cause}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.cause }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// notFoundOr maps gorm's missing-row error to NotFound(resource).
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(resource)
	}
	return err
}
