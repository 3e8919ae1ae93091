package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/mandate-configurator/internal/db"
	"github.com/jonathan/mandate-configurator/internal/schemas"
)

func TestErrorMessages(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		err  error
		want string
	}{
		{&ErrEmailAlreadyExists{Email: "test@example.com"}, "email already registered: test@example.com"},
		{&ErrUserNotFound{UserID: userID}, "user not found: " + userID.String()},
		{&ErrValidation{Field: "email", Message: "invalid format"}, "validation error: email - invalid format"},
		{&ErrOfferBlocked{}, "selection is blocked and cannot be confirmed"},
		{&ErrRendererUnavailable{}, "pdf rendering is not available"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"ErrEmailAlreadyExists", &ErrEmailAlreadyExists{Email: "test@example.com"}, http.StatusConflict},
		{"ErrInvalidCredentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"ErrPasswordMismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"ErrUserNotFound", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"ErrValidation", &ErrValidation{Field: "password", Message: "too short"}, http.StatusBadRequest},
		{"ErrOfferBlocked", &ErrOfferBlocked{}, http.StatusConflict},
		{"ErrRendererUnavailable", &ErrRendererUnavailable{}, http.StatusServiceUnavailable},
		{"selection schema error", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "days"}}}, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("offer x: %w", db.ErrNotFound), http.StatusNotFound},
		{"wrapped typed error", fmt.Errorf("register: %w", &ErrEmailAlreadyExists{}), http.StatusConflict},
		{"Unknown error", assert.AnError, http.StatusInternalServerError},
		{"Nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
