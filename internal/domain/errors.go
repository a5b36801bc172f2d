package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Concrete errors below match them through errors.Is so the
// API layer can map any of them to a response without knowing the details.
var (
	// ErrNotFound is returned when an entity with the requested id does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a unique field is already taken.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrBadCredentials is returned when a username/password pair does not match.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrInvalidArgument is returned for malformed query input such as bad
	// pagination or sort parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation is returned when a request body or entity violates its constraints.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError reports a missing entity of a given resource type.
type NotFoundError struct {
	Resource string
	ID       any
}

// NewNotFoundError creates a NotFoundError for the resource and id.
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %v", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError reports which unique field collided.
type AlreadyExistsError struct {
	Resource string
	Field    string
	Value    string
}

// NewAlreadyExistsError creates an AlreadyExistsError.
func NewAlreadyExistsError(resource, field, value string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, Field: field, Value: value}
}

func (e *AlreadyExistsError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s already exists with the same %s", e.Resource, e.Field)
	}
	return fmt.Sprintf("%s already exists with %s: %s", e.Resource, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrAlreadyExists) true.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// InvalidArgumentError carries a client-facing description of bad input.
type InvalidArgumentError struct {
	Message string
}

// NewInvalidArgumentError formats a new InvalidArgumentError.
func NewInvalidArgumentError(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidArgument) true.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// FieldError is a single constraint violation.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Message
}

// ValidationError collects every constraint violation found on one input.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError from the given violations.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Add appends a violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Messages returns each violation as "field: message".
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.String())
	}
	return out
}

// OrNil returns nil when no violation was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
