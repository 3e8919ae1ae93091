package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/mandate-configurator/internal/config"
	"github.com/jonathan/mandate-configurator/internal/server/middleware"
)

// tokenIssuer is the iss claim of every session token.
const tokenIssuer = "mandate-configurator"

// Claims identify the consultant an offer session belongs to.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// GetUserID satisfies middleware.UserIDGetter.
func (c *Claims) GetUserID() uuid.UUID { return c.UserID }

// JWTService signs and verifies HS256 session tokens for the saved-offer routes.
type JWTService struct {
	config *config.JWTConfig
	now    func() time.Time
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateToken issues a session for userID valid for the configured TTL.
func (s *JWTService) GenerateToken(userID uuid.UUID) (string, error) {
	issued := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.config.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// tokenFailures maps jwt sentinel errors to the reason reported to callers.
var tokenFailures = []struct {
	err    error
	reason string
}{
	{jwt.ErrTokenSignatureInvalid, "invalid token signature"},
	{jwt.ErrSignatureInvalid, "invalid token signature"},
	{jwt.ErrTokenExpired, "token expired"},
	{jwt.ErrTokenMalformed, "malformed token"},
	{jwt.ErrTokenInvalidIssuer, "foreign token issuer"},
}

// ValidateToken verifies signature, issuer and lifetime and returns the claims.
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	if raw == "" {
		return nil, errors.New("empty session token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, s.signingKey,
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		for _, f := range tokenFailures {
			if errors.Is(err, f.err) {
				return nil, fmt.Errorf("%s: %w", f.reason, err)
			}
		}
		return nil, fmt.Errorf("parsing session token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("session token is not valid")
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.New("session token has no user id")
	}
	return claims, nil
}

func (s *JWTService) signingKey(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(s.config.Secret), nil
}

// AsTokenValidator adapts the service to the middleware package, which cannot
// import server.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return sessionValidator{s}
}

type sessionValidator struct{ svc *JWTService }

func (v sessionValidator) ValidateToken(raw string) (middleware.UserIDGetter, error) {
	claims, err := v.svc.ValidateToken(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
