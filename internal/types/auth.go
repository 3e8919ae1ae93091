package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a consultant account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Company  string `json:"company,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest changes the password of the authenticated user.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the user and a bearer token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// SaveOfferRequest persists a confirmed selection under a title.
type SaveOfferRequest struct {
	Title     string          `json:"title" validate:"required,max=200"`
	ClientRef string          `json:"client_ref,omitempty" validate:"omitempty,max=100"`
	Selection json.RawMessage `json:"selection" validate:"required"`
}

// validate caches struct metadata across requests.
var validate = validator.New(validator.WithRequiredStructEnabled())

func (r *CreateUserRequest) Validate() error { return validate.Struct(r) }

func (r *LoginRequest) Validate() error { return validate.Struct(r) }

func (r *UpdatePasswordRequest) Validate() error { return validate.Struct(r) }

func (r *SaveOfferRequest) Validate() error { return validate.Struct(r) }
