package localstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/repository"
	"github.com/joifzeio/interfac/internal/utils"
)

// EventStore is the file-backed event collection.  The slice is kept
// newest-created-first by prepending, the order the dashboard renders
// without sorting.
type EventStore struct {
	mu     sync.Mutex
	path   string
	events []model.Event
}

// Create prepends a new event.  The record is persisted before it
// becomes visible in memory, so a failed write leaves the prior list
// observable and returns the error for the handler to report once.
func (s *EventStore) Create(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stampNew(e)
	next := make([]model.Event, 0, len(s.events)+1)
	next = append(next, *e)
	next = append(next, s.events...)
	if err := persistRecord(s.path, next); err != nil {
		return err
	}
	s.events = next
	return nil
}

// CreateBatch prepends all events in one atomic swap: either the whole
// expansion lands or none of it does, so a failed write can never leave
// a tour half-persisted.
func (s *EventStore) CreateBatch(_ context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]model.Event, 0, len(s.events)+len(events))
	for i := range events {
		stampNew(&events[i])
		next = append(next, events[i])
	}
	next = append(next, s.events...)
	if err := persistRecord(s.path, next); err != nil {
		return err
	}
	s.events = next
	return nil
}

// Replace overwrites the full record matching e.ID, surfacing
// repository.ErrEventNotFound when the id is unknown.
func (s *EventStore) Replace(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.events {
		if s.events[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repository.ErrEventNotFound
	}
	e.CreatedAt = s.events[idx].CreatedAt
	e.UpdatedAt = time.Now().UTC()
	next := make([]model.Event, len(s.events))
	copy(next, s.events)
	next[idx] = *e
	if err := persistRecord(s.path, next); err != nil {
		return err
	}
	s.events = next
	return nil
}

// Delete removes the matching event.  An unknown id is a no-op so a
// repeated delete cannot fail.
func (s *EventStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.events[:0:0]
	for _, e := range s.events {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(s.events) {
		return nil
	}
	if err := persistRecord(s.path, next); err != nil {
		return err
	}
	s.events = next
	return nil
}

// GetByID returns a copy of the matching event or
// repository.ErrEventNotFound.
func (s *EventStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

// List returns all events, newest created first.
func (s *EventStore) List(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// ListByPast filters on the explicit is_past flag, preserving order.
func (s *EventStore) ListByPast(_ context.Context, isPast bool) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		if e.IsPast == isPast {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListUpcomingBySchedule returns non-past events ordered by machine date
// ascending, matching the public city list.
func (s *EventStore) ListUpcomingBySchedule(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		if !e.IsPast {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ISODate.Before(out[j].ISODate) })
	return out, nil
}

func stampNew(e *model.Event) {
	if e.ID == "" {
		e.ID = utils.NextIDString()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}
