// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for venues.  A Venue is a place that
// hosts shows; deleting one removes its shows in the same transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jfjensen/fyyur/internal/model"
)

// VenueSummary is a venue row with its number of upcoming shows.  City
// and State are used for grouping and are not part of the JSON shape.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	City             string `json:"-"`
	State            string `json:"-"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning several repositories.
func (r *VenueRepo) DB() *sql.DB {
	return r.db
}

const venueColumns = `id, name, genres, address, city, state, phone, website,
	facebook_link, seeking_talent, seeking_description, image_link`

// CreateTx inserts a new venue using the provided transaction.  The
// caller commits or rolls back.  On success v.ID holds the generated id.
func (r *VenueRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
	const q = `INSERT INTO venues (name, genres, address, city, state, phone, website,
	           facebook_link, seeking_talent, seeking_description, image_link)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		v.Name, model.JoinGenres(v.Genres), v.Address, v.City, v.State, v.Phone, v.Website,
		v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.ImageLink,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ExistsTx reports whether a venue with id exists, inside tx.
func (r *VenueRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// ListSummaries returns every venue with its count of shows starting at
// or after now, ordered by state, city and id so that callers can group
// consecutive rows.
func (r *VenueRepo) ListSummaries(ctx context.Context, now time.Time) ([]VenueSummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time >= ?
	           GROUP BY v.id, v.name, v.city, v.state
	           ORDER BY v.state, v.city, v.id`
	return r.querySummaries(ctx, q, FormatTime(now))
}

// SearchByName returns venues whose name contains term, ignoring case,
// with their upcoming show counts.  An empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]VenueSummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time >= ?
	           WHERE LOWER(v.name) LIKE ? ESCAPE '!'
	           GROUP BY v.id, v.name, v.city, v.state
	           ORDER BY v.id`
	return r.querySummaries(ctx, q, FormatTime(now), likePattern(term))
}

func (r *VenueRepo) querySummaries(ctx context.Context, q string, args ...any) ([]VenueSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VenueSummary{}
	for rows.Next() {
		var s VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTx removes a venue and its shows inside tx.  The foreign keys
// cascade as well; deleting the shows explicitly keeps the behaviour
// independent of the engine's FK settings.  Deleting a missing venue is
// not an error.
func (r *VenueRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var (
		v      model.Venue
		genres string
	)
	if err := row.Scan(
		&v.ID, &v.Name, &genres, &v.Address, &v.City, &v.State, &v.Phone, &v.Website,
		&v.FacebookLink, &v.SeekingTalent, &v.SeekingDescription, &v.ImageLink,
	); err != nil {
		return nil, err
	}
	v.Genres = model.SplitGenres(genres)
	return &v, nil
}
