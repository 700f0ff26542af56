package model

import "time"

// Event is the canonical record for one ticketed occurrence at a venue and
// date.  It mirrors the `events` table; json tags use the snake_case wire
// names shared by the admin dashboard and the public pages.
//
// Fields:
//  ID          – stable identifier (uuid or counter-generated string).
//  CityID      – slug of the city ("clermont-ferrand").
//  CityName    – display name of the city ("Clermont-Ferrand").
//  DateDisplay – human-authored date text ("JEU 29 JAN", "Date TBA").
//  ISODate     – best-effort machine date.  The flat legacy shape never
//                carried a real schedule, so records adapted from it hold
//                a placeholder (see ToNormalized).
//  Status      – canonical availability state.
//  TourID      – weak reference to the originating tour; empty for
//                standalone events.  Deleting a tour never cascades here.
//  IsPast      – explicit archive flag maintained by the admin dashboard.
type Event struct {
	ID          string    `json:"id"`           // events.id
	Title       string    `json:"title"`        // events.title (tour title for expanded events)
	CityID      string    `json:"city_id"`      // events.city_id
	CityName    string    `json:"city_name"`    // events.city_name
	DateDisplay string    `json:"date_display"` // events.date_display
	ISODate     time.Time `json:"iso_date"`     // events.iso_date
	Status      Status    `json:"status"`       // events.status
	Venue       string    `json:"venue"`        // events.venue
	Address     string    `json:"address"`      // events.address
	TicketURL   string    `json:"ticket_url"`   // events.ticket_url
	BilletwebID string    `json:"billetweb_id"` // events.billetweb_id
	FlyerURL    string    `json:"flyer_url"`    // events.flyer_url
	Price       string    `json:"price"`        // events.price (display string, not currency-typed)
	Description string    `json:"description"`  // events.description
	TourID      string    `json:"tour_id"`      // events.tour_id (weak reference)
	IsPast      bool      `json:"is_past"`      // events.is_past
	CreatedAt   time.Time `json:"created_at"`   // events.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // events.updated_at
}
