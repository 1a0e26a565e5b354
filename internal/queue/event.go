// Package queue defines message payloads exchanged over the message broker
// and the RabbitMQ publisher and consumer that carry them.
package queue

// ListingsQueue is the durable queue carrying ListingEvent messages.
const ListingsQueue = "listing.events"

// Event kinds.
const (
	KindVenueCreated  = "venue.created"
	KindArtistCreated = "artist.created"
	KindShowCreated   = "show.created"
	KindVenueDeleted  = "venue.deleted"
)

// ListingEvent is published after a listing changed.  It carries enough
// for downstream consumers to log or notify without querying the
// primary database.
type ListingEvent struct {
	Kind       string `json:"kind"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
