package tour

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/joifzeio/interfac/internal/model"
)

func validTour() model.Tour {
	return model.Tour{
		ID:    "t1",
		Title: "NUIT BLANCHE TOUR",
		Flyer: "cdn.example.com/tour.jpg",
		Cities: []model.Stop{
			{CityName: "Orléans", Date: "14 MARS", Venue: "Le Bateau"},
		},
	}
}

func TestCleanSingleStopUsesTourFlyer(t *testing.T) {
	t.Parallel()

	got, err := Clean(validTour())
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(got.Cities) != 1 {
		t.Fatalf("got %d stops, want 1", len(got.Cities))
	}
	if got.Flyer != "https://cdn.example.com/tour.jpg" {
		t.Errorf("flyer not normalized: %q", got.Flyer)
	}
}

func TestCleanValidation(t *testing.T) {
	t.Parallel()

	inline := "data:image/png;base64," + strings.Repeat("A", 6000)

	cases := []struct {
		name string
		mut  func(*model.Tour)
		want error
	}{
		{"missing title", func(tr *model.Tour) { tr.Title = "  " }, ErrMissingDetails},
		{"missing flyer", func(tr *model.Tour) { tr.Flyer = "" }, ErrMissingDetails},
		{"no usable stop", func(tr *model.Tour) {
			tr.Cities = []model.Stop{{CityName: "Paris"}, {Date: "1 MAI"}}
		}, ErrNoValidStops},
		{"inline tour flyer", func(tr *model.Tour) { tr.Flyer = inline }, ErrInlineImage},
		{"inline stop flyer", func(tr *model.Tour) {
			tr.Cities[0].Flyer = inline
		}, ErrInlineImage},
		{"multi city without stop flyer", func(tr *model.Tour) {
			tr.Cities = []model.Stop{
				{CityName: "Paris", Date: "1 MAI", Flyer: "a.jpg"},
				{CityName: "Lyon", Date: "2 MAI"},
			}
		}, ErrStopFlyerRequired},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tr := validTour()
			tc.mut(&tr)
			if _, err := Clean(tr); !errors.Is(err, tc.want) {
				t.Errorf("Clean() err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCleanDropsIncompleteStopsButKeepsRest(t *testing.T) {
	t.Parallel()

	tr := validTour()
	tr.Cities = append(tr.Cities, model.Stop{CityName: "", Date: "15 MARS"})
	got, err := Clean(tr)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	// One stop survives, so the single-stop flyer rule applies.
	if len(got.Cities) != 1 || got.Cities[0].CityName != "Orléans" {
		t.Fatalf("unexpected stops: %+v", got.Cities)
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := model.Tour{
		ID:          "t9",
		Title:       "NUIT BLANCHE TOUR",
		Description: "la tournée",
		Flyer:       "https://cdn.example.com/tour.jpg",
		Cities: []model.Stop{
			{CityName: "Orléans", Date: "14 MARS", Venue: "Le Bateau", Flyer: "https://cdn.example.com/orleans.jpg"},
			{CityName: "Besançon", Date: "21 MARS", Price: "15€"},
		},
	}

	n := 0
	events := Expand(tr, now, func() string { n++; return fmt.Sprintf("id-%d", n) })

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	seen := map[string]bool{}
	for _, e := range events {
		if seen[e.ID] {
			t.Errorf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
		if e.Title != tr.Title {
			t.Errorf("title = %q, want tour title verbatim", e.Title)
		}
		if e.Status != model.StatusAnnounced {
			t.Errorf("status = %q, want %q", e.Status, model.StatusAnnounced)
		}
		if e.TourID != "t9" || e.IsPast {
			t.Errorf("bad linkage: tour_id=%q is_past=%v", e.TourID, e.IsPast)
		}
		if e.Description != tr.Description {
			t.Errorf("description not inherited: %q", e.Description)
		}
	}
	if events[0].CityID != "orleans" || events[1].CityID != "besancon" {
		t.Errorf("city ids = %q, %q", events[0].CityID, events[1].CityID)
	}
	if events[0].FlyerURL != "https://cdn.example.com/orleans.jpg" {
		t.Errorf("stop flyer should win: %q", events[0].FlyerURL)
	}
	if events[1].FlyerURL != tr.Flyer {
		t.Errorf("tour flyer should fill in: %q", events[1].FlyerURL)
	}
}

func TestExpandZeroStops(t *testing.T) {
	t.Parallel()

	events := Expand(model.Tour{Title: "X", Flyer: "y"}, time.Now(), func() string { return "a" })
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Paris", "paris"},
		{"Clermont-Ferrand", "clermont-ferrand"},
		{"Orléans", "orleans"},
		{"Besançon", "besancon"},
		{"  La Rochelle  ", "la-rochelle"},
		{"Aix--en--Provence", "aix-en-provence"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
