// Package repository contains the MySQL data access layer.  Sentinel
// errors shared across repositories live here so that handlers can map
// failure modes to HTTP responses without string matching.
package repository

import "errors"

// ErrEventNotFound is returned when a replace or lookup references an
// event id that does not exist.  Deletes deliberately do NOT return it:
// deleting an already-deleted event is a no-op.
var ErrEventNotFound = errors.New("event not found")

// ErrTourNotFound is returned when a tour lookup or delete references an
// unknown tour id.
var ErrTourNotFound = errors.New("tour not found")

// ErrEmailExists is returned when an admin account with the given email
// already exists.
var ErrEmailExists = errors.New("email already exists")
