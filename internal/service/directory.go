// Package service holds the query and aggregation layer between the HTTP
// handlers and the repositories.  Directory assembles the page view-data
// for venues, artists and shows and runs every write in a single
// transaction.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jfjensen/fyyur/internal/model"
	"github.com/jfjensen/fyyur/internal/queue"
	"github.com/jfjensen/fyyur/internal/repository"
)

// PlaceholderImageBase is prefixed to the entity name when a venue or
// artist is submitted without an image link.
const PlaceholderImageBase = "https://dummyimage.com/600x400/000/fff.jpg&text="

// EventPublisher delivers listing events.  *queue.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ListingEvent) error
}

// Directory is the venue/artist/show directory.
type Directory struct {
	db      *sql.DB
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
	Events  EventPublisher   // nil disables publishing
	Now     func() time.Time // query-time clock; time.Now when nil

	// PublishTimeout bounds how long a write waits on the broker.
	PublishTimeout time.Duration
}

// DefaultPublishTimeout is used when PublishTimeout is zero.
const DefaultPublishTimeout = 3 * time.Second

// NewDirectory wires a Directory over db.  events may be nil.
func NewDirectory(db *sql.DB, events EventPublisher) *Directory {
	if db == nil {
		panic("nil db passed to NewDirectory")
	}
	return &Directory{
		db:      db,
		Venues:  repository.NewVenueRepo(db),
		Artists: repository.NewArtistRepo(db),
		Shows:   repository.NewShowRepo(db),
		Events:  events,
		Now:     time.Now,

		PublishTimeout: DefaultPublishTimeout,
	}
}

// Area is one (city, state) group of the venue listing.
type Area struct {
	City   string                    `json:"city"`
	State  string                    `json:"state"`
	Venues []repository.VenueSummary `json:"venues"`
}

// VenueSearchResult is the venue search page data.
type VenueSearchResult struct {
	Count int                       `json:"count"`
	Data  []repository.VenueSummary `json:"data"`
}

// ArtistSearchResult is the artist search page data.
type ArtistSearchResult struct {
	Count int                        `json:"count"`
	Data  []repository.ArtistSummary `json:"data"`
}

// VenueDetail is a venue page: the venue with its shows split around now.
type VenueDetail struct {
	model.Venue
	PastShows          []repository.VenueShow `json:"past_shows"`
	UpcomingShows      []repository.VenueShow `json:"upcoming_shows"`
	PastShowsCount     int                    `json:"past_shows_count"`
	UpcomingShowsCount int                    `json:"upcoming_shows_count"`
}

// ArtistDetail is an artist page.
type ArtistDetail struct {
	model.Artist
	PastShows          []repository.ArtistShow `json:"past_shows"`
	UpcomingShows      []repository.ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int                     `json:"past_shows_count"`
	UpcomingShowsCount int                     `json:"upcoming_shows_count"`
}

// now is the reference instant for the upcoming/past split.  It is
// truncated to seconds to match the stored precision.
func (d *Directory) now() time.Time {
	clock := d.Now
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Truncate(time.Second)
}

// ListVenues groups all venues by (city, state).  Every venue appears in
// exactly one area; areas follow the repository order (state, city).
func (d *Directory) ListVenues(ctx context.Context) ([]Area, error) {
	rows, err := d.Venues.ListSummaries(ctx, d.now())
	if err != nil {
		return nil, err
	}
	type key struct{ city, state string }
	index := map[key]int{}
	areas := []Area{}
	for _, r := range rows {
		k := key{r.City, r.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: r.City, State: r.State, Venues: []repository.VenueSummary{}})
		}
		areas[i].Venues = append(areas[i].Venues, r)
	}
	return areas, nil
}

// SearchVenues matches venue names case-insensitively.  An empty term
// returns every venue.
func (d *Directory) SearchVenues(ctx context.Context, term string) (VenueSearchResult, error) {
	rows, err := d.Venues.SearchByName(ctx, term, d.now())
	if err != nil {
		return VenueSearchResult{}, err
	}
	return VenueSearchResult{Count: len(rows), Data: rows}, nil
}

// GetVenue returns the bare venue record.
func (d *Directory) GetVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	return d.Venues.GetByID(ctx, id)
}

// ShowVenue returns the venue page or repository.ErrVenueNotFound.
func (d *Directory) ShowVenue(ctx context.Context, id uint64) (*VenueDetail, error) {
	v, err := d.Venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := d.Shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	past, upcoming := partition(shows, func(s repository.VenueShow) time.Time { return s.StartTime }, d.now())
	return &VenueDetail{
		Venue:              *v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// ListArtists returns id and name of every artist.
func (d *Directory) ListArtists(ctx context.Context) ([]repository.ArtistRef, error) {
	return d.Artists.ListAll(ctx)
}

// SearchArtists mirrors SearchVenues.
func (d *Directory) SearchArtists(ctx context.Context, term string) (ArtistSearchResult, error) {
	rows, err := d.Artists.SearchByName(ctx, term, d.now())
	if err != nil {
		return ArtistSearchResult{}, err
	}
	return ArtistSearchResult{Count: len(rows), Data: rows}, nil
}

// GetArtist returns the bare artist record.
func (d *Directory) GetArtist(ctx context.Context, id uint64) (*model.Artist, error) {
	return d.Artists.GetByID(ctx, id)
}

// ShowArtist returns the artist page or repository.ErrArtistNotFound.
func (d *Directory) ShowArtist(ctx context.Context, id uint64) (*ArtistDetail, error) {
	a, err := d.Artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := d.Shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	past, upcoming := partition(shows, func(s repository.ArtistShow) time.Time { return s.StartTime }, d.now())
	return &ArtistDetail{
		Artist:             *a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// ListShows returns every show with venue and artist, earliest first.
func (d *Directory) ListShows(ctx context.Context) ([]repository.ShowListing, error) {
	return d.Shows.ListAll(ctx)
}

// CreateVenue validates f and inserts the venue.  Validation problems are
// returned as *ValidationError; anything else is a persistence failure
// and the transaction has been rolled back.
func (d *Directory) CreateVenue(ctx context.Context, f VenueForm) (*model.Venue, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	v := f.toModel()
	if v.ImageLink == "" {
		v.ImageLink = PlaceholderImage(v.Name)
	}
	if err := d.withTx(ctx, func(tx *sql.Tx) error {
		return d.Venues.CreateTx(ctx, tx, v)
	}); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.KindVenueCreated, EntityID: v.ID, Name: v.Name})
	return v, nil
}

// CreateArtist validates f and inserts the artist.
func (d *Directory) CreateArtist(ctx context.Context, f ArtistForm) (*model.Artist, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	a := f.toModel()
	if a.ImageLink == "" {
		a.ImageLink = PlaceholderImage(a.Name)
	}
	if err := d.withTx(ctx, func(tx *sql.Tx) error {
		return d.Artists.CreateTx(ctx, tx, a)
	}); err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.KindArtistCreated, EntityID: a.ID, Name: a.Name})
	return a, nil
}

// CreateShow validates f, checks that both the artist and the venue exist
// and inserts the show, all in one transaction.
func (d *Directory) CreateShow(ctx context.Context, f ShowForm) (*model.Show, error) {
	if err := f.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	start, _ := ParseStartTime(f.StartTime)
	s := &model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := d.Artists.ExistsTx(ctx, tx, s.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			return &ValidationError{Err: repository.ErrArtistNotFound}
		}
		if ok, err = d.Venues.ExistsTx(ctx, tx, s.VenueID); err != nil {
			return err
		}
		if !ok {
			return &ValidationError{Err: repository.ErrVenueNotFound}
		}
		return d.Shows.CreateTx(ctx, tx, s)
	})
	if err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}
	d.publish(ctx, queue.ListingEvent{
		Kind: queue.KindShowCreated, EntityID: s.ID,
		VenueID: s.VenueID, ArtistID: s.ArtistID, StartTime: repository.FormatTime(s.StartTime),
	})
	return s, nil
}

// DeleteVenue removes a venue and its shows.  A missing venue is a no-op.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) error {
	if err := d.withTx(ctx, func(tx *sql.Tx) error {
		return d.Venues.DeleteTx(ctx, tx, id)
	}); err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.KindVenueDeleted, EntityID: id})
	return nil
}

// PlaceholderImage returns the stand-in image URL for name.
func PlaceholderImage(name string) string {
	return PlaceholderImageBase + name
}

// withTx runs fn inside a transaction.  The transaction is committed when
// fn succeeds and rolled back otherwise; the connection returns to the
// pool either way.
func (d *Directory) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *Directory) publish(ctx context.Context, ev queue.ListingEvent) {
	if d.Events == nil {
		return
	}
	timeout := d.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	// the write is committed; a cancelled request must not drop the event
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	if err := d.Events.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Uint64("id", ev.EntityID).Msg("listing event not published")
	}
}

// partition splits items (ordered by start time) into past and upcoming
// relative to now.  Both results are non-nil.
func partition[T any](items []T, start func(T) time.Time, now time.Time) (past, upcoming []T) {
	past, upcoming = []T{}, []T{}
	for _, it := range items {
		if (model.Show{StartTime: start(it)}).IsUpcoming(now) {
			upcoming = append(upcoming, it)
		} else {
			past = append(past, it)
		}
	}
	return past, upcoming
}
