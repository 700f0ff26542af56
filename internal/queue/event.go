// Package queue defines message payloads exchanged over the message broker.
package queue

// SubscriberSignedUp is published when a visitor joins the mailing list
// for a city. It carries everything downstream consumers need to log or
// feed the mailing tool without querying the primary database.
type SubscriberSignedUp struct {
    Email    string `json:"email"`
    City     string `json:"city"`
    SignedAt string `json:"signed_at"`
}
