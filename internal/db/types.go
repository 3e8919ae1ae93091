package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an account that can save offers
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Company      string    `json:"company,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OfferInput is the data stored for a saved offer. Lang, Days, Severity and
// Gross are derived from Selection by the caller so lists need no recomputation.
type OfferInput struct {
	Title     string
	ClientRef string
	Lang      string
	Days      int
	Severity  string
	Gross     float64
	Selection json.RawMessage
}

// Offer is a saved offer with its selection document
type Offer struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Title     string          `json:"title"`
	ClientRef string          `json:"client_ref,omitempty"`
	Lang      string          `json:"lang"`
	Days      int             `json:"days"`
	Severity  string          `json:"severity"`
	Gross     float64         `json:"gross"`
	Selection json.RawMessage `json:"selection"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OfferSummary is a lightweight view of an offer for listing
type OfferSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ClientRef string    `json:"client_ref,omitempty"`
	Lang      string    `json:"lang"`
	Days      int       `json:"days"`
	Severity  string    `json:"severity"`
	Gross     float64   `json:"gross"`
	CreatedAt time.Time `json:"created_at"`
}

// OfferFilters holds optional filters for listing offers
type OfferFilters struct {
	ClientRef string
	Severity  string
	Limit     int
}

// DefaultListLimit caps list queries without an explicit limit.
const DefaultListLimit = 50
