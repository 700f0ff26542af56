package utils

import (
	"errors"
	"net/url"
	"strings"
)

// billetwebShop is the embeddable shop endpoint of the external ticket
// seller.  The widget lives entirely on their side; our only obligation is
// a syntactically valid URL built from the event's slug.
const billetwebShop = "https://www.billetweb.fr/shop.php"

// ErrBadTicketSlug is returned when a billetweb identifier is not a bare
// slug (admins occasionally paste the whole billetweb.fr URL instead of
// just the event name).
var ErrBadTicketSlug = errors.New("billetweb id must be a bare slug, not a URL")

// TicketURL builds the ticket-widget URL for an event's billetweb slug.
// The accent color matches the site theme.
func TicketURL(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", errors.New("empty billetweb id")
	}
	if strings.Contains(slug, "/") || strings.Contains(slug, "://") || strings.Contains(slug, " ") {
		return "", ErrBadTicketSlug
	}
	q := url.Values{}
	q.Set("event", slug)
	q.Set("color", "FF4500")
	return billetwebShop + "?" + q.Encode(), nil
}
