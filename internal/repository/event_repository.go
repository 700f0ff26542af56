package repository

import (
	"context"      // context bounds query lifetimes
	"database/sql" // sql provides the DB abstraction
	"errors"       // errors.Is for sentinel comparisons
	"time"         // timestamps for created_at/updated_at

	"github.com/google/uuid" // identifier generation for new rows

	"github.com/joifzeio/interfac/internal/model"
)

// eventColumns is the column list shared by every event query, kept in one
// place so Scan call sites cannot drift from the SELECT.
const eventColumns = `id, title, city_id, city_name, date_display, iso_date, status,
       venue, address, ticket_url, billetweb_id, flyer_url, price, description,
       tour_id, is_past, created_at, updated_at`

// EventRepo manages persistence for events against the `events` table.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can open transactions
// spanning multiple repositories (tour creation writes both tables).
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new event.  A missing identifier is assigned here; the
// stored record is written back into e so the caller sees the final row.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	const q = `INSERT INTO events (` + eventColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q, args(e)...)
	return err
}

// CreateBatch inserts all events inside one transaction.  Either every
// row lands or none does; a failure partway through rolls back the rows
// already written so a tour expansion can never be half-persisted.
func (r *EventRepo) CreateBatch(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `INSERT INTO events (` + eventColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	now := time.Now().UTC()
	for i := range events {
		e := &events[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		e.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, q, args(e)...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Replace overwrites the full record matching e.ID.  Unlike delete, a
// missing id is surfaced as ErrEventNotFound rather than silently
// ignored: an update aimed at nothing is a caller bug worth hearing about.
func (r *EventRepo) Replace(ctx context.Context, e *model.Event) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ? LIMIT 1`, e.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	e.UpdatedAt = time.Now().UTC()
	const q = `UPDATE events
               SET title=?, city_id=?, city_name=?, date_display=?, iso_date=?, status=?,
                   venue=?, address=?, ticket_url=?, billetweb_id=?, flyer_url=?, price=?,
                   description=?, tour_id=?, is_past=?, updated_at=?
               WHERE id=?`
	_, err = r.db.ExecContext(ctx, q,
		e.Title, e.CityID, e.CityName, e.DateDisplay, e.ISODate, string(e.Status),
		e.Venue, e.Address, e.TicketURL, e.BilletwebID, e.FlyerURL, e.Price,
		e.Description, e.TourID, e.IsPast, e.UpdatedAt,
		e.ID,
	)
	return err
}

// Delete removes the event with the given id.  Deleting an id that does
// not exist is a no-op, so a double-click on the dashboard's delete button
// cannot produce an error.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

// GetByID retrieves a single event, returning ErrEventNotFound when no
// row matches.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns every event, newest created first.  The dashboard relies
// on this ordering for its "upcoming" column instead of sorting itself.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC, id DESC`
	return r.queryEvents(ctx, q)
}

// ListByPast returns events filtered on the explicit is_past flag,
// newest created first.
func (r *EventRepo) ListByPast(ctx context.Context, isPast bool) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE is_past = ? ORDER BY created_at DESC, id DESC`
	return r.queryEvents(ctx, q, isPast)
}

// ListUpcomingBySchedule returns non-past events ordered by their machine
// date ascending, the order the public city list renders in.
func (r *EventRepo) ListUpcomingBySchedule(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE is_past = FALSE ORDER BY iso_date ASC, id ASC`
	return r.queryEvents(ctx, q)
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, qargs ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, qargs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner, e *model.Event) error {
	var status string
	err := s.Scan(
		&e.ID, &e.Title, &e.CityID, &e.CityName, &e.DateDisplay, &e.ISODate, &status,
		&e.Venue, &e.Address, &e.TicketURL, &e.BilletwebID, &e.FlyerURL, &e.Price,
		&e.Description, &e.TourID, &e.IsPast, &e.CreatedAt, &e.UpdatedAt,
	)
	e.Status = model.ParseStatus(status)
	return err
}

func args(e *model.Event) []any {
	return []any{
		e.ID, e.Title, e.CityID, e.CityName, e.DateDisplay, e.ISODate, string(e.Status),
		e.Venue, e.Address, e.TicketURL, e.BilletwebID, e.FlyerURL, e.Price,
		e.Description, e.TourID, e.IsPast, e.CreatedAt, e.UpdatedAt,
	}
}
