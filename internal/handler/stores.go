package handler

// Handlers depend on storage through the interfaces below rather than on
// a concrete driver.  Both the MySQL repositories (internal/repository)
// and the file-backed local store (internal/localstore) satisfy them;
// main picks one per deployment via STORE_DRIVER.

import (
	"context"
	"time"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/repository"
)

// EventStore is the durable event collection.  List order is newest
// created first; CreateBatch is all-or-nothing.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	CreateBatch(ctx context.Context, events []model.Event) error
	Replace(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	ListByPast(ctx context.Context, isPast bool) ([]model.Event, error)
	ListUpcomingBySchedule(ctx context.Context) ([]model.Event, error)
}

// TourStore is the durable tour-definition collection.  Delete never
// cascades into events.
type TourStore interface {
	Create(ctx context.Context, t *model.Tour) error
	GetByID(ctx context.Context, id string) (*model.Tour, error)
	List(ctx context.Context) ([]model.Tour, error)
	Delete(ctx context.Context, id string) error
}

// AdminStore holds dashboard accounts (bcrypt hashes only).
type AdminStore interface {
	Create(ctx context.Context, email, password, role string, cost int) (string, error)
	GetByEmail(ctx context.Context, email string) (*repository.Admin, error)
	GetByID(ctx context.Context, id string) (*repository.Admin, error)
	List(ctx context.Context) ([]repository.Admin, error)
	Count(ctx context.Context) (int, error)
}

// TokenStore persists refresh-token hashes.
type TokenStore interface {
	StoreRefresh(ctx context.Context, adminID, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForAdmin(ctx context.Context, adminID string) error
}

// SubscriberSink receives newsletter signups.  It is write-only and may
// be nil when the deployment forwards signups to the queue alone.
type SubscriberSink interface {
	Add(ctx context.Context, email, city string) error
}
