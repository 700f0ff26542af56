package handler

import (
	"context"  // request-scoped timeouts for store calls
	"errors"   // sentinel comparisons
	"net/http" // status codes
	"strings"  // input trimming
	"time"     // iso_date parsing

	"github.com/labstack/echo/v4" // web framework

	"github.com/joifzeio/interfac/internal/model"      // canonical event shape
	"github.com/joifzeio/interfac/internal/repository" // sentinel errors
	"github.com/joifzeio/interfac/internal/tour"       // city slugs
	"github.com/joifzeio/interfac/internal/utils"      // URL normalization
)

// AdminHandler serves the dashboard's event and tour management routes.
// All routes are behind JWT + role middleware.
type AdminHandler struct {
	Events EventStore
	Tours  TourStore
}

func NewAdminHandler(events EventStore, tours TourStore) *AdminHandler {
	return &AdminHandler{Events: events, Tours: tours}
}

// eventReq is the admin form payload, snake_case like the table columns.
type eventReq struct {
	Title       string `json:"title"`
	CityName    string `json:"city_name"`
	DateDisplay string `json:"date_display"`
	ISODate     string `json:"iso_date"` // RFC 3339, optional
	Status      string `json:"status"`
	Venue       string `json:"venue"`
	Address     string `json:"address"`
	TicketURL   string `json:"ticket_url"`
	BilletwebID string `json:"billetweb_id"`
	FlyerURL    string `json:"flyer_url"`
	Price       string `json:"price"`
	Description string `json:"description"`
	IsPast      bool   `json:"is_past"`
}

// toEvent validates the form payload and builds a canonical event.  The
// returned string is a user-facing validation message; empty means ok.
func (r eventReq) toEvent(now time.Time) (model.Event, string) {
	cityName := strings.TrimSpace(r.CityName)
	if cityName == "" {
		return model.Event{}, "city_name is required"
	}
	flyer := strings.TrimSpace(r.FlyerURL)
	if utils.LooksLikeInlineImage(flyer) {
		return model.Event{}, "flyer_url must be a link, not an inline image"
	}
	dateDisplay := strings.TrimSpace(r.DateDisplay)
	if dateDisplay == "" {
		dateDisplay = "Date TBA"
	}
	isoDate := now // placeholder when the form leaves the schedule empty
	if s := strings.TrimSpace(r.ISODate); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return model.Event{}, "iso_date must be RFC 3339"
		}
		isoDate = t.UTC()
	}
	return model.Event{
		Title:       strings.TrimSpace(r.Title),
		CityID:      tour.Slug(cityName),
		CityName:    cityName,
		DateDisplay: dateDisplay,
		ISODate:     isoDate,
		Status:      model.ParseStatus(r.Status),
		Venue:       strings.TrimSpace(r.Venue),
		Address:     strings.TrimSpace(r.Address),
		TicketURL:   utils.NormalizeURL(strings.TrimSpace(r.TicketURL)),
		BilletwebID: strings.TrimSpace(r.BilletwebID),
		FlyerURL:    utils.NormalizeURL(flyer),
		Price:       strings.TrimSpace(r.Price),
		Description: strings.TrimSpace(r.Description),
		IsPast:      r.IsPast,
	}, ""
}

// CreateEvent handles POST /v1/admin/events.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e, msg := req.toEvent(time.Now().UTC())
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Create(ctx, &e); err != nil {
		c.Logger().Errorf("create event: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save event"})
	}
	return c.JSON(http.StatusCreated, e)
}

// UpdateEvent handles PUT /v1/admin/events/:id as a full-record replace.
// Aiming an update at an unknown id is reported, not swallowed.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e, msg := req.toEvent(time.Now().UTC())
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	e.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Keep the weak tour reference across replaces; the form never
	// carries it.
	if prev, err := h.Events.GetByID(ctx, id); err == nil {
		e.TourID = prev.TourID
	}

	if err := h.Events.Replace(ctx, &e); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		c.Logger().Errorf("update event %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save event"})
	}
	return c.JSON(http.StatusOK, e)
}

// DeleteEvent handles DELETE /v1/admin/events/:id.  Deletion is
// idempotent: an unknown id still answers 204.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		c.Logger().Errorf("delete event %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete event"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ImportFlat handles POST /v1/admin/events/import.  It takes a list of
// records in the legacy flat shape, converts them to canonical form and
// stores them all-or-nothing, so half-migrated catalogues cannot happen.
// Converted records carry a placeholder machine date; real schedules have
// to be edited in afterwards.
func (h *AdminHandler) ImportFlat(c echo.Context) error {
	var flats []model.FlatEvent
	if err := c.Bind(&flats); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(flats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no records to import"})
	}

	now := time.Now().UTC()
	events := make([]model.Event, 0, len(flats))
	for _, f := range flats {
		e := model.ToNormalized(f, now)
		if f.ID == 0 {
			e.ID = "" // let the store assign one
		}
		events = append(events, e)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Events.CreateBatch(ctx, events); err != nil {
		c.Logger().Errorf("import events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not import events"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"items": events})
}

// ListEvents handles GET /v1/admin/events.  The optional ?past=true|false
// filter uses the explicit is_past flag (the dashboard's authoritative
// policy) and the list keeps its newest-created-first order.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		events []model.Event
		err    error
	)
	switch c.QueryParam("past") {
	case "true":
		events, err = h.Events.ListByPast(ctx, true)
	case "false":
		events, err = h.Events.ListByPast(ctx, false)
	default:
		events, err = h.Events.List(ctx)
	}
	if err != nil {
		c.Logger().Errorf("list events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if events == nil {
		events = []model.Event{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}
