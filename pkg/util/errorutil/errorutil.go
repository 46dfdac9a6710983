package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes exposed to API clients.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeStatusNotValid = "STATUS_NOT_VALID"
	CodeDuplicateKey   = "DUPLICATE_KEY"
	CodeDataNotValid   = "DATA_NOT_VALID"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeInternal       = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewNotFound reports an identifier that does not resolve to a stored entity.
func NewNotFound(message string, details map[string]any) error {
	return NewDomainError(CodeNotFound, message, http.StatusNotFound, details)
}

// NewStatusNotValid reports an entity that exists but is blocked.
func NewStatusNotValid(message string) error {
	return NewDomainError(CodeStatusNotValid, message, http.StatusUnprocessableEntity, nil)
}

// NewDuplicateKey reports a natural key collision for a new record.
func NewDuplicateKey(message string) error {
	return NewDomainError(CodeDuplicateKey, message, http.StatusConflict, nil)
}

func NewDataNotValid(message string, details map[string]any) error {
	return NewDomainError(CodeDataNotValid, message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromNoRows turns pgx.ErrNoRows into a NotFound naming the resource.
// Other errors are returned unchanged.
func FromNoRows(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound(fmt.Sprintf("%s %s not found", resource, id), map[string]any{"id": id})
	}
	return err
}

func IsNotFound(err error) bool       { return hasCode(err, CodeNotFound) }
func IsStatusNotValid(err error) bool { return hasCode(err, CodeStatusNotValid) }
func IsDuplicateKey(err error) bool   { return hasCode(err, CodeDuplicateKey) }
func IsDataNotValid(err error) bool   { return hasCode(err, CodeDataNotValid) }

func hasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewDomainError(CodeNotFound, "resource not found", http.StatusNotFound, nil)
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
