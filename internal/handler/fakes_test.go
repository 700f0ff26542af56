package handler

import (
	"context"
	"errors"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/repository"
)

// fakeEventStore is an in-memory EventStore recording calls, so tests can
// assert not just responses but whether persistence was attempted at all.
type fakeEventStore struct {
	events      []model.Event
	batchErr    error
	createCalls int
	batchCalls  int
}

func (f *fakeEventStore) Create(_ context.Context, e *model.Event) error {
	f.createCalls++
	if e.ID == "" {
		e.ID = "fake-id"
	}
	f.events = append([]model.Event{*e}, f.events...)
	return nil
}

func (f *fakeEventStore) CreateBatch(_ context.Context, events []model.Event) error {
	f.batchCalls++
	if f.batchErr != nil {
		return f.batchErr
	}
	f.events = append(append([]model.Event{}, events...), f.events...)
	return nil
}

func (f *fakeEventStore) Replace(_ context.Context, e *model.Event) error {
	for i := range f.events {
		if f.events[i].ID == e.ID {
			f.events[i] = *e
			return nil
		}
	}
	return repository.ErrEventNotFound
}

func (f *fakeEventStore) Delete(_ context.Context, id string) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			e := f.events[i]
			return &e, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func (f *fakeEventStore) List(_ context.Context) ([]model.Event, error) {
	return append([]model.Event{}, f.events...), nil
}

func (f *fakeEventStore) ListByPast(_ context.Context, isPast bool) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		if e.IsPast == isPast {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) ListUpcomingBySchedule(_ context.Context) ([]model.Event, error) {
	return f.ListByPast(context.Background(), false)
}

// fakeTourStore records creates and deletes for compensation assertions.
type fakeTourStore struct {
	tours       []model.Tour
	createCalls int
	deleteCalls int
}

func (f *fakeTourStore) Create(_ context.Context, t *model.Tour) error {
	f.createCalls++
	if t.ID == "" {
		t.ID = "fake-tour"
	}
	f.tours = append(f.tours, *t)
	return nil
}

func (f *fakeTourStore) GetByID(_ context.Context, id string) (*model.Tour, error) {
	for i := range f.tours {
		if f.tours[i].ID == id {
			t := f.tours[i]
			return &t, nil
		}
	}
	return nil, repository.ErrTourNotFound
}

func (f *fakeTourStore) List(_ context.Context) ([]model.Tour, error) {
	return append([]model.Tour{}, f.tours...), nil
}

func (f *fakeTourStore) Delete(_ context.Context, id string) error {
	f.deleteCalls++
	for i := range f.tours {
		if f.tours[i].ID == id {
			f.tours = append(f.tours[:i], f.tours[i+1:]...)
			return nil
		}
	}
	return repository.ErrTourNotFound
}

var errBoom = errors.New("boom")
