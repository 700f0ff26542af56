package repository

import (
	"context"
	"database/sql"
	"strings"
)

// SubscriberRepo appends newsletter signups to the `subscribers` table.
// The table is write-only from the application's point of view: the
// mailing tooling reads it, the site never does.
type SubscriberRepo struct{ DB *sql.DB }

func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{DB: db} }

// Add records one {email, city} pair.  Duplicate signups are accepted as
// written; deduplication is the mailing tool's job.
func (r *SubscriberRepo) Add(ctx context.Context, email, city string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO subscribers (email, city) VALUES (?,?)",
		email, city)
	return err
}
