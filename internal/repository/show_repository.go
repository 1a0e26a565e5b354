// This file defines the repository for shows.  A Show joins one artist to
// one venue at a start time; the read methods here return the joined rows
// the directory pages need.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jfjensen/fyyur/internal/model"
)

// ShowListing is a show joined with its venue and artist.
type ShowListing struct {
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueShow is a show seen from a venue page: who plays and when.
type VenueShow struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show seen from an artist page: where and when.
type ArtistShow struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB for transaction control.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a new show using tx.  The caller must commit or roll
// back the transaction.  On success the generated ID is set on s.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, FormatTime(s.StartTime))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListAll returns every show joined with its venue and artist, ordered by
// start time ascending.  Shows starting at the same time keep insertion
// order.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowListing, error) {
	const q = `SELECT v.id, v.name, a.id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN venues v  ON v.id = s.venue_id
	           JOIN artists a ON a.id = s.artist_id
	           ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ShowListing{}
	for rows.Next() {
		var (
			l  ShowListing
			st dbTime
		)
		if err := rows.Scan(&l.VenueID, &l.VenueName, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &st); err != nil {
			return nil, err
		}
		l.StartTime = st.Time
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByVenue returns all shows of a venue joined with their artists,
// ordered by start time.  Callers split them into past and upcoming.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]VenueShow, error) {
	const q = `SELECT a.id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.venue_id = ?
	           ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VenueShow{}
	for rows.Next() {
		var (
			vs VenueShow
			st dbTime
		)
		if err := rows.Scan(&vs.ArtistID, &vs.ArtistName, &vs.ArtistImageLink, &st); err != nil {
			return nil, err
		}
		vs.StartTime = st.Time
		out = append(out, vs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByArtist returns all shows of an artist joined with their venues,
// ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]ArtistShow, error) {
	const q = `SELECT v.id, v.name, v.image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           WHERE s.artist_id = ?
	           ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtistShow{}
	for rows.Next() {
		var (
			as ArtistShow
			st dbTime
		)
		if err := rows.Scan(&as.VenueID, &as.VenueName, &as.VenueImageLink, &st); err != nil {
			return nil, err
		}
		as.StartTime = st.Time
		out = append(out, as)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByVenue returns the number of shows at a venue.
func (r *ShowRepo) CountByVenue(ctx context.Context, venueID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE venue_id = ?`, venueID).Scan(&n)
	return n, err
}
