// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// directory service and the handlers to tell a missing row apart from a
// database failure.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
// Handlers translate it into an HTTP 404 response.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")
