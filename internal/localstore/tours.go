package localstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/repository"
)

// TourStore is the file-backed tour collection.  Tours are campaign
// definitions only; the per-city rows live in the event collection after
// expansion.
type TourStore struct {
	mu    sync.Mutex
	path  string
	tours []model.Tour
}

// Create persists a tour definition, assigning an identifier when absent.
func (s *TourStore) Create(_ context.Context, t *model.Tour) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	next := make([]model.Tour, 0, len(s.tours)+1)
	next = append(next, *t)
	next = append(next, s.tours...)
	if err := persistRecord(s.path, next); err != nil {
		return err
	}
	s.tours = next
	return nil
}

// GetByID returns a copy of the matching tour or
// repository.ErrTourNotFound.
func (s *TourStore) GetByID(_ context.Context, id string) (*model.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tours {
		if s.tours[i].ID == id {
			t := s.tours[i]
			return &t, nil
		}
	}
	return nil, repository.ErrTourNotFound
}

// List returns all tour definitions, newest created first.
func (s *TourStore) List(_ context.Context) ([]model.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Tour, len(s.tours))
	copy(out, s.tours)
	return out, nil
}

// Delete removes the tour definition only.  Events expanded from it keep
// their tour_id and stay in the event collection.
func (s *TourStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.tours[:0:0]
	for _, t := range s.tours {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(s.tours) {
		return repository.ErrTourNotFound
	}
	if err := persistRecord(s.path, next); err != nil {
		return err
	}
	s.tours = next
	return nil
}
