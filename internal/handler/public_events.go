package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/repository"
	"github.com/joifzeio/interfac/internal/utils"
)

// PublicHandler serves the unauthenticated marketing-page endpoints.
// Which events count as "past" is decided by exactly one policy chosen at
// deployment time (explicit flag or 48h-after-date); the two are never
// mixed within a response.
type PublicHandler struct {
	Events EventStore
	Policy model.PastPolicy
}

func NewPublicHandler(events EventStore, policy model.PastPolicy) *PublicHandler {
	return &PublicHandler{Events: events, Policy: policy}
}

// GetUpcoming handles GET /v1/events: non-past events ordered by machine
// date ascending, the order the public city list renders in.
func (h *PublicHandler) GetUpcoming(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	all, err := h.Events.List(ctx)
	if err != nil {
		c.Logger().Errorf("list events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	upcoming, _ := model.Partition(all, h.Policy, time.Now().UTC())
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ISODate.Before(upcoming[j].ISODate)
	})
	if upcoming == nil {
		upcoming = []model.Event{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": upcoming})
}

// GetPast handles GET /v1/events/past: past events, newest created first.
func (h *PublicHandler) GetPast(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	all, err := h.Events.List(ctx)
	if err != nil {
		c.Logger().Errorf("list events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	_, past := model.Partition(all, h.Policy, time.Now().UTC())
	if past == nil {
		past = []model.Event{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": past})
}

// GetFlat handles GET /v1/events/flat: the legacy shape the older
// marketing pages consume (numeric ids, marketing status labels).  The
// list keeps its newest-created-first order.
func (h *PublicHandler) GetFlat(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	all, err := h.Events.List(ctx)
	if err != nil {
		c.Logger().Errorf("list events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := make([]model.FlatEvent, 0, len(all))
	for _, e := range all {
		items = append(items, model.ToFlat(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTicketURL handles GET /v1/events/:id/ticket-url.  It returns the
// embeddable widget URL for the event's billetweb slug, or the stored
// ticket link when no slug exists.  The widget's availability is the
// ticket seller's concern; ours ends at a syntactically valid URL.
func (h *PublicHandler) GetTicketURL(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		c.Logger().Errorf("get event %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if e.BilletwebID != "" {
		u, err := utils.TicketURL(e.BilletwebID)
		if err != nil {
			c.Logger().Warnf("event %s has a bad billetweb id: %v", id, err)
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticketing coming soon"})
		}
		return c.JSON(http.StatusOK, echo.Map{"url": u})
	}
	if e.TicketURL != "" {
		return c.JSON(http.StatusOK, echo.Map{"url": e.TicketURL})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "ticketing coming soon"})
}
