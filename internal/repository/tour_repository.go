package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/joifzeio/interfac/internal/model"
)

// TourRepo manages persistence for tour definitions against the `tours`
// table.  Stops are stored as a JSON document in the `cities` column:
// they are only ever read back as a whole and never queried individually,
// the per-city rows live in `events` after expansion.
type TourRepo struct {
	db *sql.DB
}

// NewTourRepo constructs a TourRepo with the given DB handle.
func NewTourRepo(db *sql.DB) *TourRepo {
	return &TourRepo{db: db}
}

// Create inserts a tour definition.  A missing identifier is assigned
// here and written back so the caller can stamp it onto expanded events.
func (r *TourRepo) Create(ctx context.Context, t *model.Tour) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	cities, err := json.Marshal(t.Cities)
	if err != nil {
		return err
	}
	const q = `INSERT INTO tours (id, title, description, flyer, cities, created_at) VALUES (?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, q, t.ID, t.Title, t.Description, t.Flyer, cities, t.CreatedAt)
	return err
}

// GetByID retrieves a tour, returning ErrTourNotFound when no row matches.
func (r *TourRepo) GetByID(ctx context.Context, id string) (*model.Tour, error) {
	const q = `SELECT id, title, description, flyer, cities, created_at FROM tours WHERE id = ?`
	var (
		t      model.Tour
		cities []byte
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Title, &t.Description, &t.Flyer, &cities, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(cities, &t.Cities); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns every tour, newest created first.
func (r *TourRepo) List(ctx context.Context) ([]model.Tour, error) {
	const q = `SELECT id, title, description, flyer, cities, created_at FROM tours ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Tour
	for rows.Next() {
		var (
			t      model.Tour
			cities []byte
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Flyer, &cities, &t.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cities, &t.Cities); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a tour definition only.  Events generated from the tour
// keep their tour_id and stay untouched; they outlive their tour.
func (r *TourRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTourNotFound
	}
	return nil
}
