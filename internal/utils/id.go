package utils

import (
	"strconv"
	"sync"
	"time"
)

// Millisecond identifiers in the style the dashboard always used
// (Date.now()-based).  Wall clock alone collides when a tour expansion
// creates several events in the same tick, so the generator remembers the
// last issued value and bumps past it when the clock has not moved.
var (
	idMu   sync.Mutex
	lastID int64
)

// NextID returns a unique millisecond-based identifier.  Successive calls
// are strictly increasing even within the same millisecond.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// NextIDString is NextID rendered as a decimal string, for stores keyed by
// string identifiers.
func NextIDString() string {
	return strconv.FormatInt(NextID(), 10)
}
