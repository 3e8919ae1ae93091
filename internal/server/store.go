package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/mandate-configurator/internal/db"
)

// DBClient is the user storage the auth flow needs. *db.DB implements it.
type DBClient interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, name, email, company, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// OfferStore persists offers per user. *db.DB implements it.
type OfferStore interface {
	SaveOffer(ctx context.Context, userID uuid.UUID, in db.OfferInput) (*db.Offer, error)
	GetOffer(ctx context.Context, userID, id uuid.UUID) (*db.Offer, error)
	ListOffers(ctx context.Context, userID uuid.UUID, filters db.OfferFilters) ([]db.OfferSummary, error)
	DeleteOffer(ctx context.Context, userID, id uuid.UUID) error
}

// Store is the full persistence surface of the server.
type Store interface {
	DBClient
	OfferStore
	Ping(ctx context.Context) error
}

var _ Store = (*db.DB)(nil)
