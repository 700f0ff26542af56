package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joifzeio/interfac/internal/model"
	"github.com/joifzeio/interfac/internal/repository"
	"github.com/joifzeio/interfac/internal/tour"
	"github.com/joifzeio/interfac/internal/utils"
)

// tourReq is the tour form payload.
type tourReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Flyer       string    `json:"flyer"`
	Cities      []stopReq `json:"cities"`
}

type stopReq struct {
	CityName    string `json:"city_name"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Price       string `json:"price"`
	Flyer       string `json:"flyer"`
	BilletwebID string `json:"billetweb_id"`
}

// CreateTour handles POST /v1/admin/tours: validate, expand into one
// event per city, then persist.  Validation happens entirely before the
// first store call, and the event batch is all-or-nothing; when the batch
// fails after the tour definition was written, the definition is removed
// again so no empty tour lingers.
func (h *AdminHandler) CreateTour(c echo.Context) error {
	var req tourReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	t := model.Tour{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Flyer:       req.Flyer,
	}
	for _, s := range req.Cities {
		t.Cities = append(t.Cities, model.Stop{
			CityName:    s.CityName,
			Date:        s.Date,
			Venue:       strings.TrimSpace(s.Venue),
			Price:       strings.TrimSpace(s.Price),
			Flyer:       strings.TrimSpace(s.Flyer),
			BilletwebID: strings.TrimSpace(s.BilletwebID),
		})
	}

	t, err := tour.Clean(t)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Tours.Create(ctx, &t); err != nil {
		c.Logger().Errorf("create tour: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save tour"})
	}

	events := tour.Expand(t, time.Now().UTC(), utils.NextIDString)
	if err := h.Events.CreateBatch(ctx, events); err != nil {
		// Compensate: the batch itself rolled back, remove the tour
		// definition too so the submission fails as a whole.
		if derr := h.Tours.Delete(ctx, t.ID); derr != nil {
			c.Logger().Errorf("compensating tour delete %s: %v", t.ID, derr)
		}
		c.Logger().Errorf("create tour events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save tour events"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"tour": t, "events": events})
}

// ListTours handles GET /v1/admin/tours.
func (h *AdminHandler) ListTours(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tours, err := h.Tours.List(ctx)
	if err != nil {
		c.Logger().Errorf("list tours: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if tours == nil {
		tours = []model.Tour{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tours})
}

// DeleteTour handles DELETE /v1/admin/tours/:id.  Only the definition is
// removed; events expanded from the tour keep their weak tour_id and
// stay listed.
func (h *AdminHandler) DeleteTour(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tours.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
		}
		c.Logger().Errorf("delete tour %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete tour"})
	}
	return c.NoContent(http.StatusNoContent)
}
