package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const offerColumns = `id, user_id, title, client_ref, lang, days, severity, gross, selection, created_at, updated_at`

// SaveOffer stores a new offer for userID.
func (db *DB) SaveOffer(ctx context.Context, userID uuid.UUID, in OfferInput) (*Offer, error) {
	var o Offer
	err := db.pool.QueryRow(ctx,
		`INSERT INTO offers (user_id, title, client_ref, lang, days, severity, gross, selection)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+offerColumns,
		userID, in.Title, in.ClientRef, in.Lang, in.Days, in.Severity, in.Gross, []byte(in.Selection),
	).Scan(&o.ID, &o.UserID, &o.Title, &o.ClientRef, &o.Lang, &o.Days, &o.Severity, &o.Gross, &o.Selection, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save offer: %w", err)
	}
	return &o, nil
}

// GetOffer retrieves an offer owned by userID. Returns nil, nil when not found.
func (db *DB) GetOffer(ctx context.Context, userID, id uuid.UUID) (*Offer, error) {
	var o Offer
	err := db.pool.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&o.ID, &o.UserID, &o.Title, &o.ClientRef, &o.Lang, &o.Days, &o.Severity, &o.Gross, &o.Selection, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return &o, nil
}

// ListOffers retrieves the offers of userID, newest first.
func (db *DB) ListOffers(ctx context.Context, userID uuid.UUID, filters OfferFilters) ([]OfferSummary, error) {
	query, args := listOffersQuery(userID, filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := []OfferSummary{}
	for rows.Next() {
		var s OfferSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ClientRef, &s.Lang, &s.Days, &s.Severity, &s.Gross, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

// listOffersQuery builds the filtered list query and its arguments.
func listOffersQuery(userID uuid.UUID, filters OfferFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}

	query := `SELECT id, title, client_ref, lang, days, severity, gross, created_at
		FROM offers WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.ClientRef != "" {
		query += fmt.Sprintf(" AND client_ref ILIKE $%d", argNum)
		args = append(args, "%"+filters.ClientRef+"%")
		argNum++
	}
	if filters.Severity != "" {
		query += fmt.Sprintf(" AND severity = $%d", argNum)
		args = append(args, filters.Severity)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)
	return query, args
}

// DeleteOffer deletes an offer owned by userID.
func (db *DB) DeleteOffer(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("offer %s: %w", id, ErrNotFound)
	}
	return nil
}
