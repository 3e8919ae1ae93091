package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/mandate-configurator/internal/db"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*db.User
	offers map[uuid.UUID]*db.Offer
	clock  time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[uuid.UUID]*db.User),
		offers: make(map[uuid.UUID]*db.Offer),
		clock:  time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := m.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (m *memStore) CreateUser(_ context.Context, name, email, company, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	u := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Company:      company,
		PasswordHash: passwordHash,
		PasswordSet:  passwordHash != "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, db.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (m *memStore) SaveOffer(_ context.Context, userID uuid.UUID, in db.OfferInput) (*db.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	o := &db.Offer{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     in.Title,
		ClientRef: in.ClientRef,
		Lang:      in.Lang,
		Days:      in.Days,
		Severity:  in.Severity,
		Gross:     in.Gross,
		Selection: in.Selection,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.offers[o.ID] = o
	cp := *o
	return &cp, nil
}

func (m *memStore) GetOffer(_ context.Context, userID, id uuid.UUID) (*db.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[id]
	if !ok || o.UserID != userID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) ListOffers(_ context.Context, userID uuid.UUID, filters db.OfferFilters) ([]db.OfferSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.OfferSummary{}
	for _, o := range m.offers {
		if o.UserID != userID {
			continue
		}
		if filters.ClientRef != "" && !strings.Contains(strings.ToLower(o.ClientRef), strings.ToLower(filters.ClientRef)) {
			continue
		}
		if filters.Severity != "" && o.Severity != filters.Severity {
			continue
		}
		out = append(out, db.OfferSummary{
			ID: o.ID, Title: o.Title, ClientRef: o.ClientRef, Lang: o.Lang,
			Days: o.Days, Severity: o.Severity, Gross: o.Gross, CreatedAt: o.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (m *memStore) DeleteOffer(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[id]
	if !ok || o.UserID != userID {
		return fmt.Errorf("offer %s: %w", id, db.ErrNotFound)
	}
	delete(m.offers, id)
	return nil
}
