package model

import (
	"strconv"
	"time"
)

// FlatEvent is the legacy shape consumed by the marketing pages: free-form
// title/date strings, a marketing status label instead of the canonical
// enum, a numeric identifier, and no machine-readable schedule at all.
// It exists only at the presentation boundary; storage and the admin API
// use Event.  The two directions of the mapping live below and are the
// single place where field renaming between the shapes is allowed.
type FlatEvent struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Image       string `json:"image"`
	Status      string `json:"status"` // SELLING FAST | SOLD OUT | JUST ANNOUNCED
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	City        string `json:"city,omitempty"`
	TourID      string `json:"tour_id,omitempty"`
	IsPast      bool   `json:"is_past"`
	Address     string `json:"address,omitempty"`
	BilletwebID string `json:"billetweb_id,omitempty"`
	TicketURL   string `json:"ticket_url,omitempty"`
}

// ToNormalized converts a flat legacy record into the canonical Event.
// The flat shape has no machine date, so ISODate is filled with `now` as
// an explicit placeholder; callers must not treat it as a real schedule.
// The status label collapses into its canonical category.
func ToNormalized(f FlatEvent, now time.Time) Event {
	cityID := f.City
	if cityID == "" {
		cityID = "unknown"
	}
	cityName := f.City
	if cityName == "" {
		cityName = f.Title
	}
	return Event{
		ID:          strconv.FormatInt(f.ID, 10),
		Title:       f.Title,
		CityID:      cityID,
		CityName:    cityName,
		DateDisplay: f.Date,
		ISODate:     now, // placeholder, the flat shape never captured a schedule
		Status:      StatusFromLabel(f.Status),
		Venue:       f.Venue,
		Address:     f.Address,
		TicketURL:   f.TicketURL,
		BilletwebID: f.BilletwebID,
		FlyerURL:    f.Image,
		Price:       f.Price,
		Description: f.Description,
		TourID:      f.TourID,
		IsPast:      f.IsPast,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ToFlat converts a canonical Event into the flat legacy shape.  Status is
// rendered through the marketing labels (available becomes SELLING FAST).
// Non-numeric identifiers fall back to the event's creation time in
// milliseconds so the flat shape always gets a usable numeric id.  The
// round trip through ToNormalized preserves identifier and status
// category; it does not preserve ISODate, which the flat shape cannot
// represent.
func ToFlat(e Event) FlatEvent {
	id, err := strconv.ParseInt(e.ID, 10, 64)
	if err != nil {
		id = e.CreatedAt.UnixMilli()
	}
	title := e.Title
	if title == "" {
		title = e.CityName
	}
	return FlatEvent{
		ID:          id,
		Title:       title,
		Date:        e.DateDisplay,
		Venue:       e.Venue,
		Image:       e.FlyerURL,
		Status:      e.Status.Label(),
		Price:       e.Price,
		Description: e.Description,
		City:        e.CityName,
		TourID:      e.TourID,
		IsPast:      e.IsPast,
		Address:     e.Address,
		BilletwebID: e.BilletwebID,
		TicketURL:   e.TicketURL,
	}
}
