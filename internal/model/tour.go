package model

import "time"

// Tour groups multiple city stops under a shared title, description and
// default flyer.  A tour is a campaign definition only: publishing one
// fans it out into standalone Event records (see the tour package), after
// which the events live their own life.  Deleting a tour does not touch
// the events it generated.
type Tour struct {
	ID          string    `json:"id"`          // tours.id
	Title       string    `json:"title"`       // tours.title
	Description string    `json:"description"` // tours.description
	Flyer       string    `json:"flyer"`       // tours.flyer (default flyer for all stops)
	Cities      []Stop    `json:"cities"`      // ordered per-city stops
	CreatedAt   time.Time `json:"created_at"`  // tours.created_at
}

// Stop is one city entry inside a tour, prior to expansion.  Flyer may be
// empty; whether the tour-level default fills in depends on the stop count
// (a single stop inherits the default, a multi-city tour requires a flyer
// per stop because the cities are displayed individually).
type Stop struct {
	CityName    string `json:"city_name"`    // display name of the city
	Date        string `json:"date"`         // human-authored date text
	Venue       string `json:"venue"`        // venue name, optional
	Price       string `json:"price"`        // display price string, optional
	Flyer       string `json:"flyer"`        // per-city flyer override, optional
	BilletwebID string `json:"billetweb_id"` // ticket-seller slug, optional
}
