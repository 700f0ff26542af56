// Package localstore is the file-backed storage driver.  It keeps each
// collection in memory and mirrors every mutation synchronously into a
// JSON record under a data directory: the same independent records the
// dashboard's browser build kept in local storage (an events list and a
// tours list), plus the admin credential map with the plaintext passwords
// replaced by bcrypt hashes.
//
// Semantics shared with the MySQL driver in internal/repository:
// mutations persist before they become visible, a failed write leaves the
// previous in-memory state untouched, and a corrupted record on startup
// degrades to an empty collection with a logged diagnostic instead of a
// crash.
package localstore

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
)

// Fixed record names inside the data directory.
const (
	eventsFile = "events.json"
	toursFile  = "tours.json"
	adminsFile = "admins.json"
)

// Store bundles the per-collection stores sharing one data directory.
type Store struct {
	Events *EventStore
	Tours  *TourStore
	Admins *AdminStore
	Tokens *TokenStore
}

// Open loads every collection from dir, creating the directory when
// missing.  Unreadable or corrupted record files degrade to empty
// collections with a logged diagnostic; only a filesystem error that
// prevents creating the directory itself is fatal to Open.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{
		Events: &EventStore{path: filepath.Join(dir, eventsFile)},
		Tours:  &TourStore{path: filepath.Join(dir, toursFile)},
		Admins: &AdminStore{path: filepath.Join(dir, adminsFile)},
		Tokens: NewTokenStore(),
	}
	loadRecord(s.Events.path, &s.Events.events)
	loadRecord(s.Tours.path, &s.Tours.tours)
	loadRecord(s.Admins.path, &s.Admins.admins)
	return s, nil
}

// loadRecord reads one JSON record into dst, leaving dst at its zero
// value on any failure.  Absence is normal (first run); anything else is
// logged so a truncated file does not silently eat the catalogue.
func loadRecord(path string, dst any) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("localstore: read %s failed: %v; starting empty", path, err)
		}
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("localstore: %s is corrupted: %v; starting empty", path, err)
	}
}

// persistRecord writes one JSON record via a temp file and rename, so a
// crash mid-write cannot leave a half-written record behind.  Callers
// must only swap their in-memory state after a nil return.
func persistRecord(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
