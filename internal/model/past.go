package model

import "time"

// PastPolicy decides whether an event belongs to the "past" section.  Two
// policies exist because the site shipped with both: the admin dashboard
// trusts the explicit is_past flag, while one front-end variant derives it
// from the machine date with a grace window.  A deployment picks exactly
// one policy; the two are never mixed within a single list.
type PastPolicy interface {
	IsPast(e Event, now time.Time) bool
}

// FlagPolicy uses the explicit is_past flag and nothing else.
type FlagPolicy struct{}

func (FlagPolicy) IsPast(e Event, _ time.Time) bool { return e.IsPast }

// GracePolicy derives "past" from the machine date: an event turns past
// once Grace has elapsed after ISODate.  The site uses 48 hours so an
// event stays on the upcoming list through the night after it happens.
type GracePolicy struct {
	Grace time.Duration
}

func (p GracePolicy) IsPast(e Event, now time.Time) bool {
	return now.After(e.ISODate.Add(p.Grace))
}

// PolicyFromName maps a config value onto a policy.  "grace" selects the
// 48-hour derivation; anything else falls back to the flag policy, which
// is the authoritative one for the admin path.
func PolicyFromName(name string) PastPolicy {
	if name == "grace" {
		return GracePolicy{Grace: 48 * time.Hour}
	}
	return FlagPolicy{}
}

// Partition splits events into (upcoming, past) per the given policy,
// preserving the input order inside each half.
func Partition(events []Event, p PastPolicy, now time.Time) (upcoming, past []Event) {
	for _, e := range events {
		if p.IsPast(e, now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, past
}
