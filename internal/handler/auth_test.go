package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/joifzeio/interfac/internal/config"
	"github.com/joifzeio/interfac/internal/repository"
	"github.com/joifzeio/interfac/internal/utils"
)

type fakeAdminStore struct {
	admins []repository.Admin
}

func (f *fakeAdminStore) Create(_ context.Context, email, password, role string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range f.admins {
		if a.Email == email {
			return "", repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := "admin-" + email
	f.admins = append(f.admins, repository.Admin{ID: id, Email: email, PasswordHash: hash, Role: role})
	return id, nil
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (*repository.Admin, error) {
	for i := range f.admins {
		if f.admins[i].Email == email {
			a := f.admins[i]
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) GetByID(_ context.Context, id string) (*repository.Admin, error) {
	for i := range f.admins {
		if f.admins[i].ID == id {
			a := f.admins[i]
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) List(_ context.Context) ([]repository.Admin, error) {
	out := append([]repository.Admin{}, f.admins...)
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}

func (f *fakeAdminStore) Count(_ context.Context) (int, error) { return len(f.admins), nil }

type fakeTokenStore struct {
	tokens map[string]string // hash -> admin id
}

func (f *fakeTokenStore) StoreRefresh(_ context.Context, adminID, hash string, _ time.Time) error {
	if f.tokens == nil {
		f.tokens = map[string]string{}
	}
	f.tokens[hash] = adminID
	return nil
}

func (f *fakeTokenStore) ValidateRefresh(_ context.Context, hash string) (string, error) {
	if id, ok := f.tokens[hash]; ok {
		return id, nil
	}
	return "", sql.ErrNoRows
}

func (f *fakeTokenStore) RevokeByHash(_ context.Context, hash string) error {
	delete(f.tokens, hash)
	return nil
}

func (f *fakeTokenStore) RevokeAllForAdmin(_ context.Context, adminID string) error {
	for h, id := range f.tokens {
		if id == adminID {
			delete(f.tokens, h)
		}
	}
	return nil
}

func testAuthHandler(t *testing.T) (*AuthHandler, *fakeAdminStore, *fakeTokenStore) {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	admins := &fakeAdminStore{}
	tokens := &fakeTokenStore{}
	if _, err := admins.Create(context.Background(), "boss@interfac.fr", "superpass", repository.RoleSuperAdmin, 4); err != nil {
		t.Fatal(err)
	}
	return NewAuthHandler(cfg, admins, tokens), admins, tokens
}

func TestLoginIssuesTokenPair(t *testing.T) {
	t.Parallel()
	h, _, tokens := testAuthHandler(t)

	rec := postJSON(t, h.Login, `{"email":"Boss@interfac.fr","password":"superpass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var resp authResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Admin.Role != repository.RoleSuperAdmin {
		t.Errorf("role = %q", resp.Admin.Role)
	}
	if resp.Access.Token == "" || resp.Refresh.Token == "" {
		t.Error("missing tokens in response")
	}
	if _, ok := tokens.tokens[utils.HashRefreshRaw(resp.Refresh.Token)]; !ok {
		t.Error("refresh token hash not stored")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	h, _, _ := testAuthHandler(t)

	// Wrong password and unknown email produce identical responses.
	for _, body := range []string{
		`{"email":"boss@interfac.fr","password":"wrong"}`,
		`{"email":"nobody@interfac.fr","password":"superpass"}`,
	} {
		rec := postJSON(t, h.Login, body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("body %s: status = %d, want 401", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid credentials") {
			t.Errorf("body %s: message = %s", body, rec.Body.String())
		}
	}
}

func TestRefreshRotates(t *testing.T) {
	t.Parallel()
	h, _, tokens := testAuthHandler(t)

	rec := postJSON(t, h.Login, `{"email":"boss@interfac.fr","password":"superpass"}`)
	var first authResp
	_ = json.Unmarshal(rec.Body.Bytes(), &first)

	rec2 := postJSON(t, h.Refresh, `{"refresh_token":"`+first.Refresh.Token+`"}`)
	if rec2.Code != http.StatusOK {
		t.Fatalf("refresh status = %d body=%s", rec2.Code, rec2.Body.String())
	}
	var second authResp
	_ = json.Unmarshal(rec2.Body.Bytes(), &second)
	if second.Refresh.Token == first.Refresh.Token {
		t.Error("refresh token was not rotated")
	}
	if _, ok := tokens.tokens[utils.HashRefreshRaw(first.Refresh.Token)]; ok {
		t.Error("old refresh token still valid after rotation")
	}

	// The old token cannot be replayed.
	rec3 := postJSON(t, h.Refresh, `{"refresh_token":"`+first.Refresh.Token+`"}`)
	if rec3.Code != http.StatusUnauthorized {
		t.Errorf("replay status = %d, want 401", rec3.Code)
	}
}

func TestAddAdminValidation(t *testing.T) {
	t.Parallel()
	h, admins, _ := testAuthHandler(t)

	if rec := postJSON(t, h.AddAdmin, `{"email":"no-at-sign","password":"longenough"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad email status = %d", rec.Code)
	}
	if rec := postJSON(t, h.AddAdmin, `{"email":"new@interfac.fr","password":"short"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("short password status = %d", rec.Code)
	}

	rec := postJSON(t, h.AddAdmin, `{"email":"new@interfac.fr","password":"longenough"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}
	a, err := admins.GetByEmail(context.Background(), "new@interfac.fr")
	if err != nil {
		t.Fatalf("created admin not found: %v", err)
	}
	if a.Role != repository.RoleAdmin {
		t.Errorf("added accounts must get the ADMIN role, got %q", a.Role)
	}

	if rec := postJSON(t, h.AddAdmin, `{"email":"new@interfac.fr","password":"longenough"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
}
