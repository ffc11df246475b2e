package service

import (
	"errors"
	"fmt"
)

// Error codes surfaced to API clients in the {detail, code} payload.
const (
	CodeValidation  = "validation_error"
	CodePermission  = "permission_denied"
	CodeIntegrity   = "integrity_error"
	CodeNotFound    = "not_found"
	CodePersistence = "persistence_error"
)

// ServiceError is the structured error every service operation returns for
// expected failures. Persistence errors deliberately carry a generic detail.
type ServiceError struct {
	Code   string
	Detail string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func ValidationError(format string, v ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeValidation, Detail: fmt.Sprintf(format, v...)}
}

func PermissionError(format string, v ...interface{}) *ServiceError {
	return &ServiceError{Code: CodePermission, Detail: fmt.Sprintf(format, v...)}
}

func IntegrityError(format string, v ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeIntegrity, Detail: fmt.Sprintf(format, v...)}
}

func NotFoundError(format string, v ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Detail: fmt.Sprintf(format, v...)}
}

// PersistenceError hides storage details from the caller.
func PersistenceError() *ServiceError {
	return &ServiceError{Code: CodePersistence, Detail: "an internal error occurred while saving the data"}
}

// AsServiceError unwraps err into a ServiceError when possible.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
