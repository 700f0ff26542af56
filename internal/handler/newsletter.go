package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joifzeio/interfac/internal/queue"
)

// NewsletterHandler captures {email, city} signups.  The capture is
// write-only and fire-and-forget: the row lands in the subscribers sink
// when one is configured, and a signup message goes to the broker for the
// logging consumer.  A publish failure is logged, never surfaced; the
// visitor still gets their 202.
type NewsletterHandler struct {
	Subscribers SubscriberSink // may be nil (queue-only deployments)
	Publish     func(ctx context.Context, ev queue.SubscriberSignedUp) error
}

func NewNewsletterHandler(sink SubscriberSink, publish func(ctx context.Context, ev queue.SubscriberSignedUp) error) *NewsletterHandler {
	return &NewsletterHandler{Subscribers: sink, Publish: publish}
}

type subscribeReq struct {
	Email string `json:"email"`
	City  string `json:"city"`
}

// Subscribe handles POST /v1/newsletter.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req subscribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	city := strings.ToUpper(strings.TrimSpace(req.City))
	if email == "" || !strings.Contains(email, "@") || city == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and city are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.Subscribers != nil {
		if err := h.Subscribers.Add(ctx, email, city); err != nil {
			c.Logger().Errorf("save subscriber: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save signup"})
		}
	}
	if h.Publish != nil {
		ev := queue.SubscriberSignedUp{
			Email:    email,
			City:     city,
			SignedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			c.Logger().Warnf("publish signup: %v", err) // fire-and-forget
		}
	}
	return c.NoContent(http.StatusAccepted)
}
