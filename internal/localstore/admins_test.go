package localstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/joifzeio/interfac/internal/repository"
	"github.com/joifzeio/interfac/internal/utils"
)

func TestAdminCreateAndLookup(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)
	ctx := context.Background()

	id, err := st.Admins.Create(ctx, "  Boss@Example.COM ", "hunter2secret", repository.RoleSuperAdmin, 4)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err := st.Admins.GetByEmail(ctx, "boss@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if a.ID != id || a.Role != repository.RoleSuperAdmin {
		t.Errorf("loaded %+v", a)
	}
	if !utils.VerifyPassword(a.PasswordHash, "hunter2secret") {
		t.Error("stored hash does not verify")
	}
	if a.PasswordHash == "hunter2secret" {
		t.Error("password stored in plaintext")
	}

	if _, err := st.Admins.Create(ctx, "boss@example.com", "other", repository.RoleAdmin, 4); !errors.Is(err, repository.ErrEmailExists) {
		t.Errorf("duplicate email err = %v, want ErrEmailExists", err)
	}
}

func TestAdminListBlanksHashes(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)
	ctx := context.Background()

	if _, err := st.Admins.Create(ctx, "a@b.c", "longenough", repository.RoleAdmin, 4); err != nil {
		t.Fatalf("create: %v", err)
	}
	admins, err := st.Admins.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(admins) != 1 || admins[0].PasswordHash != "" {
		t.Errorf("list should blank hashes: %+v", admins)
	}
	if n, _ := st.Admins.Count(ctx); n != 1 {
		t.Errorf("count = %d", n)
	}
}

func TestTokenStoreLifecycle(t *testing.T) {
	t.Parallel()
	ts := NewTokenStore()
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	if err := ts.StoreRefresh(ctx, "admin-1", "hash-1", exp); err != nil {
		t.Fatalf("store: %v", err)
	}
	id, err := ts.ValidateRefresh(ctx, "hash-1")
	if err != nil || id != "admin-1" {
		t.Fatalf("validate: id=%q err=%v", id, err)
	}

	if err := ts.RevokeByHash(ctx, "hash-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := ts.ValidateRefresh(ctx, "hash-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("revoked token err = %v, want sql.ErrNoRows", err)
	}
}

func TestTokenStoreExpiryAndRevokeAll(t *testing.T) {
	t.Parallel()
	ts := NewTokenStore()
	ctx := context.Background()

	if err := ts.StoreRefresh(ctx, "admin-1", "expired", time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := ts.ValidateRefresh(ctx, "expired"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expired token err = %v, want sql.ErrNoRows", err)
	}

	exp := time.Now().Add(time.Hour)
	_ = ts.StoreRefresh(ctx, "admin-1", "h1", exp)
	_ = ts.StoreRefresh(ctx, "admin-1", "h2", exp)
	_ = ts.StoreRefresh(ctx, "admin-2", "h3", exp)
	if err := ts.RevokeAllForAdmin(ctx, "admin-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := ts.ValidateRefresh(ctx, "h1"); err == nil {
		t.Error("h1 should be revoked")
	}
	if _, err := ts.ValidateRefresh(ctx, "h2"); err == nil {
		t.Error("h2 should be revoked")
	}
	if id, err := ts.ValidateRefresh(ctx, "h3"); err != nil || id != "admin-2" {
		t.Errorf("h3 should survive: id=%q err=%v", id, err)
	}
}
