package localstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/repository"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return st, dir
}

func TestEventCreateListNewestFirst(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)
	ctx := context.Background()

	a := model.Event{CityName: "Paris"}
	b := model.Event{CityName: "Lyon"}
	if err := st.Events.Create(ctx, &a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := st.Events.Create(ctx, &b); err != nil {
		t.Fatalf("create b: %v", err)
	}

	got, err := st.Events.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].CityName != "Lyon" || got[1].CityName != "Paris" {
		t.Fatalf("want newest first, got %+v", got)
	}
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Errorf("ids not assigned distinctly: %q %q", a.ID, b.ID)
	}
}

func TestEventPersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	st, dir := openStore(t)
	ctx := context.Background()

	e := model.Event{CityName: "Nantes", Status: model.StatusAnnounced}
	if err := st.Events.Create(ctx, &e); err != nil {
		t.Fatalf("create: %v", err)
	}

	st2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := st2.Events.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.CityName != "Nantes" || got.Status != model.StatusAnnounced {
		t.Errorf("reloaded event = %+v", got)
	}
}

func TestEventDeleteIdempotent(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)
	ctx := context.Background()

	e := model.Event{CityName: "Lille"}
	if err := st.Events.Create(ctx, &e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Events.Delete(ctx, e.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := st.Events.Delete(ctx, e.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if err := st.Events.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("unknown id should be a no-op, got %v", err)
	}
}

func TestEventReplaceUnknownID(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)

	e := model.Event{ID: "missing", CityName: "Metz"}
	if err := st.Events.Replace(context.Background(), &e); !errors.Is(err, repository.ErrEventNotFound) {
		t.Fatalf("Replace err = %v, want ErrEventNotFound", err)
	}
}

func TestEventReplaceKeepsCreatedAt(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)
	ctx := context.Background()

	e := model.Event{CityName: "Rennes"}
	if err := st.Events.Create(ctx, &e); err != nil {
		t.Fatalf("create: %v", err)
	}
	created := e.CreatedAt

	upd := model.Event{ID: e.ID, CityName: "Rennes", Venue: "Ubu"}
	if err := st.Events.Replace(ctx, &upd); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := st.Events.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at changed on replace: %v -> %v", created, got.CreatedAt)
	}
	if got.Venue != "Ubu" {
		t.Errorf("replace did not land: %+v", got)
	}
}

func TestEventCreateBatchAllOrNothing(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)
	ctx := context.Background()

	batch := []model.Event{
		{CityName: "Paris", TourID: "t1"},
		{CityName: "Lyon", TourID: "t1"},
		{CityName: "Marseille", TourID: "t1"},
	}
	if err := st.Events.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("batch: %v", err)
	}
	got, _ := st.Events.List(ctx)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	// Batch order is preserved ahead of anything older.
	if got[0].CityName != "Paris" || got[2].CityName != "Marseille" {
		t.Errorf("batch order lost: %+v", got)
	}
}

func TestFailedPersistLeavesPriorListVisible(t *testing.T) {
	t.Parallel()
	st, dir := openStore(t)
	ctx := context.Background()

	e := model.Event{CityName: "Dijon"}
	if err := st.Events.Create(ctx, &e); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Turning the record path into a directory makes the rename fail.
	st.Events.path = filepath.Join(dir, "blocked")
	if err := os.MkdirAll(st.Events.path, 0o755); err != nil {
		t.Fatal(err)
	}

	bad := model.Event{CityName: "Tours"}
	if err := st.Events.Create(ctx, &bad); err == nil {
		t.Fatal("expected persist failure")
	}
	got, _ := st.Events.List(ctx)
	if len(got) != 1 || got[0].CityName != "Dijon" {
		t.Errorf("prior list should be untouched, got %+v", got)
	}
}

func TestCorruptRecordDegradesToEmpty(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "events.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := Open(dir)
	if err != nil {
		t.Fatalf("Open should survive a corrupt record: %v", err)
	}
	got, _ := st.Events.List(context.Background())
	if len(got) != 0 {
		t.Errorf("corrupt record should load empty, got %+v", got)
	}
}

func TestListUpcomingBySchedule(t *testing.T) {
	t.Parallel()
	st, _ := openStore(t)
	ctx := context.Background()

	mk := func(city, iso string, past bool) model.Event {
		e := model.Event{CityName: city, IsPast: past}
		e.ISODate = mustTime(t, iso)
		if err := st.Events.Create(ctx, &e); err != nil {
			t.Fatalf("create %s: %v", city, err)
		}
		return e
	}
	mk("C", "2026-05-01T20:00:00Z", false)
	mk("A", "2026-03-01T20:00:00Z", false)
	mk("B", "2026-04-01T20:00:00Z", false)
	mk("X", "2026-01-01T20:00:00Z", true)

	got, err := st.Events.ListUpcomingBySchedule(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].CityName != "A" || got[1].CityName != "B" || got[2].CityName != "C" {
		t.Errorf("want date-ascending A,B,C; got %+v", got)
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}
