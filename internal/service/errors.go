// Package service provides application-level services for managing users, posts,
// categories and comments.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// Resource names used in client-facing error messages.
const (
	resourceUser     = "User"
	resourcePost     = "Post"
	resourceCategory = "Category"
	resourceComment  = "Comment"
)

// ErrNilDependency is returned by constructors given a nil collaborator.
var ErrNilDependency = errors.New("required dependency is nil")

// ServiceError is a custom error type for unexpected service failures.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// isClientError reports whether err already belongs to a client-facing category.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrBadCredentials)
}

// translateStoreError converts store sentinels into domain errors.
// A missing row becomes NotFound for resource/id and a rejected reference
// becomes InvalidArgument. Anything unexpected is wrapped in a ServiceError.
func translateStoreError(err error, resource string, id any, service, operation string) error {
	switch {
	case err == nil:
		return nil
	case isClientError(err):
		return err
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError(resource, id)
	case errors.Is(err, store.ErrInvalidEntity):
		return domain.NewInvalidArgumentError("%s references a resource that does not exist or is still in use", resource)
	case store.IsDuplicateError(err):
		return domain.NewAlreadyExistsError(resource, "unique field", "")
	}
	return NewServiceError(service, operation, "store operation failed", err)
}
