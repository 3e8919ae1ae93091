package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/mandate-configurator/internal/config"
	"github.com/jonathan/mandate-configurator/internal/db"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// UserService manages the consultant accounts that own saved offers.
type UserService struct {
	store     DBClient
	passwords *config.PasswordConfig
}

func NewUserService(store DBClient, passwords *config.PasswordConfig) *UserService {
	return &UserService{store: store, passwords: passwords}
}

// publicUser strips credentials from a stored account.
func publicUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Company:   u.Company,
		CreatedAt: u.CreatedAt,
	}
}

// Register creates a password account. The email must not be taken.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	taken, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	hash, err := s.hash("password", req.Password)
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateUser(ctx, req.Name, req.Email, req.Company, hash)
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	created, err := s.account(ctx, id)
	if err != nil {
		return nil, err
	}
	return publicUser(created), nil
}

// Login checks the credentials. Unknown emails, accounts without a password and
// wrong passwords all yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	u, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", req.Email, err)
	}
	if u == nil || !u.PasswordSet || !s.passwords.VerifyPassword(req.Password, u.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return publicUser(u), nil
}

// UpdatePassword replaces the password of userID after verifying the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	u, err := s.account(ctx, userID)
	if err != nil {
		return err
	}
	if !s.passwords.VerifyPassword(current, u.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	hash, err := s.hash("new_password", next)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("storing new password: %w", err)
	}
	return nil
}

// account loads userID, mapping a missing row to ErrUserNotFound.
func (s *UserService) account(ctx context.Context, id uuid.UUID) (*db.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", id, err)
	}
	if u == nil {
		return nil, &ErrUserNotFound{UserID: id}
	}
	return u, nil
}

// hash reports bcrypt rejections as a validation error on field.
func (s *UserService) hash(field, password string) (string, error) {
	h, err := s.passwords.HashPassword(password)
	if err != nil {
		return "", &ErrValidation{Field: field, Message: err.Error()}
	}
	return h, nil
}
