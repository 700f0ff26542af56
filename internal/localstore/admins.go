package localstore

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joifzeio/interfac/internal/repository"
	"github.com/joifzeio/interfac/internal/utils"
)

// AdminStore keeps dashboard accounts in admins.json with bcrypt hashes,
// the successor of the browser build's plaintext credential map, keeping
// the functional contract (login, addAdmin, roles) and dropping the
// plaintext.
type AdminStore struct {
	mu     sync.Mutex
	path   string
	admins []repository.Admin
}

// Create inserts an account, returning repository.ErrEmailExists on a
// duplicate email.
func (s *AdminStore) Create(_ context.Context, email, password, role string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == email {
			return "", repository.ErrEmailExists
		}
	}
	next := make([]repository.Admin, len(s.admins), len(s.admins)+1)
	copy(next, s.admins)
	next = append(next, repository.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err := persistRecord(s.path, next); err != nil {
		return "", err
	}
	s.admins = next
	return next[len(next)-1].ID, nil
}

// GetByEmail returns the account for a normalized email, or sql.ErrNoRows
// so the auth handler treats both drivers alike.
func (s *AdminStore) GetByEmail(_ context.Context, email string) (*repository.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.admins {
		if s.admins[i].Email == email {
			a := s.admins[i]
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

// GetByID returns the account with the given id or sql.ErrNoRows.
func (s *AdminStore) GetByID(_ context.Context, id string) (*repository.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.admins {
		if s.admins[i].ID == id {
			a := s.admins[i]
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

// List returns all accounts, hashes blanked.
func (s *AdminStore) List(_ context.Context) ([]repository.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.Admin, len(s.admins))
	copy(out, s.admins)
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}

// Count reports how many accounts exist; used at boot to decide whether
// to seed the super admin from the environment.
func (s *AdminStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.admins), nil
}

// TokenStore keeps refresh sessions in memory only: a restart logs every
// admin out, which is acceptable for a single-admin tool.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry // refresh token hash -> session
}

type tokenEntry struct {
	adminID string
	exp     time.Time
	revoked bool
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]tokenEntry)}
}

// StoreRefresh records a refresh token hash.
func (s *TokenStore) StoreRefresh(_ context.Context, adminID, tokenHash string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = tokenEntry{adminID: adminID, exp: exp}
	return nil
}

// ValidateRefresh returns the owning admin id for a live token hash.
func (s *TokenStore) ValidateRefresh(_ context.Context, tokenHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenHash]
	if !ok || t.revoked || time.Now().UTC().After(t.exp) {
		return "", sql.ErrNoRows
	}
	return t.adminID, nil
}

// RevokeByHash marks one token as revoked.
func (s *TokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[tokenHash]; ok {
		t.revoked = true
		s.tokens[tokenHash] = t
	}
	return nil
}

// RevokeAllForAdmin revokes every token belonging to one admin.
func (s *TokenStore) RevokeAllForAdmin(_ context.Context, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, t := range s.tokens {
		if t.adminID == adminID {
			t.revoked = true
			s.tokens[h] = t
		}
	}
	return nil
}
