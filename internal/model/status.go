package model

// Status is the canonical availability state of an event.  Exactly three
// states exist; every display vocabulary used by the site maps 1:1 onto
// them.  The wire values ("available", "sold-out", "soon") are what the
// `events.status` column and the admin API carry.  The uppercase marketing
// labels ("SELLING FAST", "SOLD OUT", "JUST ANNOUNCED") are presentation
// only and belong to the flat legacy shape, see flat.go.
type Status string

const (
	StatusAvailable Status = "available" // tickets on sale
	StatusSoldOut   Status = "sold-out"  // no tickets left
	StatusAnnounced Status = "soon"      // announced, ticketing not open yet
)

// Valid reports whether s is one of the three canonical states.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSoldOut, StatusAnnounced:
		return true
	}
	return false
}

// Marketing label vocabulary of the flat shape.  "SELLING FAST" is the
// label for the available state on purpose (marketing copy, not a naming
// bug) which makes label->status->label lossy across two of the labels
// while the underlying category always survives.
const (
	LabelSellingFast   = "SELLING FAST"
	LabelSoldOut       = "SOLD OUT"
	LabelJustAnnounced = "JUST ANNOUNCED"
)

// ParseStatus normalizes a wire value into a canonical Status.  Unknown
// values collapse to StatusAvailable, mirroring how the admin forms treat
// anything unrecognized.
func ParseStatus(v string) Status {
	switch Status(v) {
	case StatusSoldOut:
		return StatusSoldOut
	case StatusAnnounced:
		return StatusAnnounced
	default:
		return StatusAvailable
	}
}

// StatusFromLabel maps a marketing label onto the canonical state:
// JUST ANNOUNCED -> soon, SOLD OUT -> sold-out, everything else -> available.
func StatusFromLabel(label string) Status {
	switch label {
	case LabelJustAnnounced:
		return StatusAnnounced
	case LabelSoldOut:
		return StatusSoldOut
	default:
		return StatusAvailable
	}
}

// Label returns the marketing label for a canonical state:
// soon -> JUST ANNOUNCED, sold-out -> SOLD OUT, available -> SELLING FAST.
func (s Status) Label() string {
	switch s {
	case StatusAnnounced:
		return LabelJustAnnounced
	case StatusSoldOut:
		return LabelSoldOut
	default:
		return LabelSellingFast
	}
}
