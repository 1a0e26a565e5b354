// This file defines repository methods for artists.  Artists mirror
// venues: they are listed, searched by name and shown with their
// past and upcoming shows.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jfjensen/fyyur/internal/model"
)

// ArtistRef is the minimal artist shape used on the artist listing.
type ArtistRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ArtistSummary is an artist with its number of upcoming shows.
type ArtistSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// DB exposes the underlying sql.DB for transaction control.
func (r *ArtistRepo) DB() *sql.DB {
	return r.db
}

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website, seeking_venue, seeking_description`

// CreateTx inserts a new artist using tx and assigns the generated ID.
func (r *ArtistRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link,
	           facebook_link, website, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, model.JoinGenres(a.Genres), a.ImageLink,
		a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	var (
		a      model.Artist
		genres string
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink,
		&a.FacebookLink, &a.Website, &a.SeekingVenue, &a.SeekingDescription,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	a.Genres = model.SplitGenres(genres)
	return &a, nil
}

// ExistsTx reports whether an artist with id exists, inside tx.
func (r *ArtistRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// ListAll returns the id and name of every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ArtistRef{}
	for rows.Next() {
		var a ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case,
// together with their upcoming show counts.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]ArtistSummary, error) {
	const q = `SELECT a.id, a.name, COUNT(s.id)
	           FROM artists a
	           LEFT JOIN shows s ON s.artist_id = a.id AND s.start_time >= ?
	           WHERE LOWER(a.name) LIKE ? ESCAPE '!'
	           GROUP BY a.id, a.name
	           ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, q, FormatTime(now), likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ArtistSummary{}
	for rows.Next() {
		var s ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
