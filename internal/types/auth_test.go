//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	valid := func() CreateUserRequest {
		return CreateUserRequest{Name: "Jana Berger", Email: "jana@example.com", Password: "password123", Company: "Berger Consulting"}
	}

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
		tag    string
	}{
		{"valid request", func(*CreateUserRequest) {}, ""},
		{"company is optional", func(r *CreateUserRequest) { r.Company = "" }, ""},
		{"password exactly 8 characters", func(r *CreateUserRequest) { r.Password = "12345678" }, ""},
		{"missing name", func(r *CreateUserRequest) { r.Name = "" }, "required"},
		{"invalid email format", func(r *CreateUserRequest) { r.Email = "not-an-email" }, "email"},
		{"password too short", func(r *CreateUserRequest) { r.Password = "short" }, "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.tag == "" {
				require.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.tag, verrs[0].Tag())
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{name: "valid request", request: LoginRequest{Email: "jana@example.com", Password: "password123"}},
		{name: "missing email", request: LoginRequest{Password: "password123"}, wantErr: true},
		{name: "invalid email", request: LoginRequest{Email: "nope", Password: "password123"}, wantErr: true},
		{name: "missing password", request: LoginRequest{Email: "jana@example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveOfferRequest_Validation(t *testing.T) {
	valid := SaveOfferRequest{
		Title:     "Restructuring Q3",
		Selection: json.RawMessage(`{"roleIds":[],"skillIds":[],"days":5,"lang":"de"}`),
	}
	require.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, missingTitle.Validate())

	longTitle := valid
	longTitle.Title = strings.Repeat("t", 201)
	assert.Error(t, longTitle.Validate())

	missingSelection := valid
	missingSelection.Selection = nil
	assert.Error(t, missingSelection.Validate())
}

func TestUpdatePasswordRequest_Validation(t *testing.T) {
	assert.NoError(t, (&UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{NewPassword: "new-password"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"}).Validate())
}
