package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/joifzeio/interfac/internal/queue"
)

type fakeSink struct {
	added []string
	err   error
}

func (f *fakeSink) Add(_ context.Context, email, city string) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, email+"/"+city)
	return nil
}

func TestSubscribeAcceptsAndNormalizes(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	var published []queue.SubscriberSignedUp
	h := NewNewsletterHandler(sink, func(_ context.Context, ev queue.SubscriberSignedUp) error {
		published = append(published, ev)
		return nil
	})

	rec := postJSON(t, h.Subscribe, `{"email":" Fan@Example.COM ","city":"orleans"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if len(sink.added) != 1 || sink.added[0] != "fan@example.com/ORLEANS" {
		t.Errorf("sink = %v", sink.added)
	}
	if len(published) != 1 || published[0].Email != "fan@example.com" || published[0].City != "ORLEANS" {
		t.Errorf("published = %+v", published)
	}
}

func TestSubscribeValidation(t *testing.T) {
	t.Parallel()

	h := NewNewsletterHandler(nil, nil)
	for _, body := range []string{
		`{"email":"","city":"PARIS"}`,
		`{"email":"not-an-email","city":"PARIS"}`,
		`{"email":"a@b.c","city":""}`,
	} {
		if rec := postJSON(t, h.Subscribe, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestSubscribePublishFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	h := NewNewsletterHandler(nil, func(context.Context, queue.SubscriberSignedUp) error {
		return errBoom
	})
	rec := postJSON(t, h.Subscribe, `{"email":"a@b.c","city":"LYON"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("publish failure must not surface: status = %d", rec.Code)
	}
}
