package model

import "time"

// Show represents a scheduled performance of one artist at one venue.
// It is the join entity between artists and venues; a show is removed
// together with either side.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – performing artist (artists.id).
//  VenueID   – hosting venue (venues.id).
//  StartTime – when the show begins, always UTC.
type Show struct {
	ID        uint64    `json:"id"`         // shows.id
	ArtistID  uint64    `json:"artist_id"`  // shows.artist_id
	VenueID   uint64    `json:"venue_id"`   // shows.venue_id
	StartTime time.Time `json:"start_time"` // shows.start_time
}

// IsUpcoming reports whether the show starts at or after now.  Shows that
// started before now are past shows.
func (s Show) IsUpcoming(now time.Time) bool {
	return !s.StartTime.Before(now)
}
