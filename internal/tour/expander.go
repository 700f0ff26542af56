// Package tour holds the pure logic that turns a tour definition into
// individual event records.  Nothing in here touches the network or a
// database: validation and expansion both operate on values and return
// values, and the caller decides how (and whether) to persist the result.
package tour

import (
	"errors"
	"strings"
	"time"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/utils"
)

// Validation failures.  Handlers translate these into 400 responses; none
// of them may be raised after a persistence call has been made.
var (
	// ErrMissingDetails means the tour lacks a title or a default flyer.
	ErrMissingDetails = errors.New("tour title and flyer are required")
	// ErrNoValidStops means no stop carried both a city name and a date.
	ErrNoValidStops = errors.New("at least one city with a name and date is required")
	// ErrInlineImage means a flyer field holds a pasted base64 image
	// instead of a link.
	ErrInlineImage = errors.New("flyer must be an http(s) link, not an inline image")
	// ErrStopFlyerRequired means a multi-city tour has a stop without its
	// own flyer.  The tour-level default only satisfies a single-city
	// tour; once cities are displayed individually each needs its own.
	ErrStopFlyerRequired = errors.New("multi-city tours need a flyer for every city")
)

// Clean validates a tour definition and returns a normalized copy ready
// for expansion:
//   - stops missing a city name or date are dropped;
//   - flyer URLs get an https:// scheme when none is present;
//   - inline base64 images are rejected before they can bloat the store.
//
// The flyer requirement is deliberately asymmetric: with exactly one stop
// the tour default fills in, with more than one every stop must carry its
// own flyer, because multi-city tours display each city individually.
func Clean(t model.Tour) (model.Tour, error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Flyer = strings.TrimSpace(t.Flyer)
	if t.Title == "" || t.Flyer == "" {
		return model.Tour{}, ErrMissingDetails
	}

	valid := make([]model.Stop, 0, len(t.Cities))
	for _, s := range t.Cities {
		s.CityName = strings.TrimSpace(s.CityName)
		s.Date = strings.TrimSpace(s.Date)
		if s.CityName == "" || s.Date == "" {
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		return model.Tour{}, ErrNoValidStops
	}

	if utils.LooksLikeInlineImage(t.Flyer) {
		return model.Tour{}, ErrInlineImage
	}
	for _, s := range valid {
		if s.Flyer != "" && utils.LooksLikeInlineImage(s.Flyer) {
			return model.Tour{}, ErrInlineImage
		}
	}

	if len(valid) > 1 {
		for _, s := range valid {
			if s.Flyer == "" {
				return model.Tour{}, ErrStopFlyerRequired
			}
		}
	}

	t.Flyer = utils.NormalizeURL(t.Flyer)
	for i := range valid {
		valid[i].Flyer = utils.NormalizeURL(valid[i].Flyer)
	}
	t.Cities = valid
	return t, nil
}

// Expand produces one event per stop, in stop order.  Tour-level defaults
// are resolved here, once: the returned events are fully self-contained
// and never re-consult the tour.
//
//   - Title is the tour title verbatim; city identity lives only in the
//     city fields, so titles repeat across a multi-city tour.
//   - Flyer is the stop's own flyer when present, otherwise the tour
//     default.
//   - Status is always ANNOUNCED for freshly expanded events, whatever a
//     stop may claim.
//   - ISODate is a placeholder (now); the tour form only captures display
//     dates.
//
// newID must yield a distinct identifier per call even within a single
// millisecond; utils.NextIDString satisfies that.
func Expand(t model.Tour, now time.Time, newID func() string) []model.Event {
	events := make([]model.Event, 0, len(t.Cities))
	for _, s := range t.Cities {
		flyer := s.Flyer
		if flyer == "" {
			flyer = t.Flyer
		}
		events = append(events, model.Event{
			ID:          newID(),
			Title:       t.Title,
			CityID:      Slug(s.CityName),
			CityName:    s.CityName,
			DateDisplay: s.Date,
			ISODate:     now, // placeholder, see package doc
			Status:      model.StatusAnnounced,
			Venue:       s.Venue,
			BilletwebID: s.BilletwebID,
			FlyerURL:    flyer,
			Price:       s.Price,
			Description: t.Description,
			TourID:      t.ID,
			IsPast:      false,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return events
}

// accentFold maps the accented letters appearing in French city names to
// their ASCII base, so "Orléans" and "Besançon" slug to "orleans" and
// "besancon" like the ids the public pages key on.
var accentFold = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

// Slug lowercases a city name and collapses it into a url-safe id,
// matching the city_id values the public pages key on ("Clermont-Ferrand"
// -> "clermont-ferrand").
func Slug(name string) string {
	name = accentFold.Replace(strings.ToLower(strings.TrimSpace(name)))
	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
