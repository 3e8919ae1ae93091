// Package server provides the HTTP REST API for the mandate configurator.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/mandate-configurator/internal/db"
	"github.com/jonathan/mandate-configurator/internal/schemas"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// statusCoder is implemented by errors that know their HTTP status.
type statusCoder interface {
	StatusCode() int
}

// ErrEmailAlreadyExists is a registration for a taken email.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

func (e *ErrEmailAlreadyExists) StatusCode() int { return http.StatusConflict }

// ErrInvalidCredentials hides whether the email or the password was wrong.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string   { return "invalid email or password" }
func (e *ErrInvalidCredentials) StatusCode() int { return http.StatusUnauthorized }

type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

func (e *ErrUserNotFound) StatusCode() int { return http.StatusNotFound }

// ErrPasswordMismatch rejects a password change whose current password is wrong.
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string   { return "current password is incorrect" }
func (e *ErrPasswordMismatch) StatusCode() int { return http.StatusUnauthorized }

// ErrValidation names the request field that failed.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ErrValidation) StatusCode() int { return http.StatusBadRequest }

// ErrOfferBlocked is a confirmation attempt on a selection with a blocked verdict.
// Validation carries the messages shown to the client.
type ErrOfferBlocked struct {
	Validation types.LocalizedValidation
}

func (e *ErrOfferBlocked) Error() string   { return "selection is blocked and cannot be confirmed" }
func (e *ErrOfferBlocked) StatusCode() int { return http.StatusConflict }

// ErrRendererUnavailable is a PDF request on a server started without Chrome.
type ErrRendererUnavailable struct{}

func (e *ErrRendererUnavailable) Error() string   { return "pdf rendering is not available" }
func (e *ErrRendererUnavailable) StatusCode() int { return http.StatusServiceUnavailable }

// HTTPStatus maps err to a response status. Unknown and nil errors are 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	var coded statusCoder
	if errors.As(err, &coded) {
		return coded.StatusCode()
	}
	var selectionErr *schemas.ValidationError
	switch {
	case errors.As(err, &selectionErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
