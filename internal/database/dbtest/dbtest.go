// Package dbtest opens throwaway SQLite databases with the application
// schema for tests in other packages.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jfjensen/fyyur/internal/config"
	"github.com/jfjensen/fyyur/internal/database"
)

// Now is the reference clock used together with Seed: two seeded shows
// are in the past, three are upcoming.
var Now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// New returns a migrated SQLite database stored under t.TempDir().
func New(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.Open(config.Config{
		DBDriver:    config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "fyyur.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Seed inserts three venues (ids 1-3), three artists (ids 4-6) and five
// shows.
//
//	venue 1 The Musical Hop (San Francisco, CA): 1 past show
//	venue 2 The Dueling Pianos Bar (New York, NY): no shows
//	venue 3 Park Square Live Music & Coffee (San Francisco, CA): 1 past, 3 upcoming
func Seed(t testing.TB, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO venues (id, name, genres, address, city, state, phone, website, facebook_link, seeking_talent, seeking_description, image_link) VALUES
		 (1, 'The Musical Hop', 'Jazz, Reggae, Swing, Classical, Folk', '1015 Folsom Street', 'San Francisco', 'CA', '123-123-1234', 'https://www.themusicalhop.com', 'https://www.facebook.com/TheMusicalHop', 1, 'We are on the lookout for a local artist to play every two weeks.', 'https://images.example.com/hop.jpg'),
		 (2, 'The Dueling Pianos Bar', 'Classical, R&B, Hip-Hop', '335 Delancey Street', 'New York', 'NY', '914-003-1132', 'https://www.theduelingpianos.com', 'https://www.facebook.com/theduelingpianos', 0, '', 'https://images.example.com/pianos.jpg'),
		 (3, 'Park Square Live Music & Coffee', 'Rock n Roll, Jazz, Classical, Folk', '34 Whiskey Moore Ave', 'San Francisco', 'CA', '415-000-1234', 'https://www.parksquarelivemusicandcoffee.com', 'https://www.facebook.com/ParkSquareLiveMusicAndCoffee', 0, '', 'https://images.example.com/park.jpg')`,
		`INSERT INTO artists (id, name, city, state, phone, genres, image_link, facebook_link, website, seeking_venue, seeking_description) VALUES
		 (4, 'Guns N Petals', 'San Francisco', 'CA', '326-123-5000', 'Rock n Roll', 'https://images.example.com/petals.jpg', 'https://www.facebook.com/GunsNPetals', 'https://www.gunsnpetalsband.com', 1, 'Looking for shows to perform at in the San Francisco Bay Area!'),
		 (5, 'Matt Quevedo', 'New York', 'NY', '300-400-5000', 'Jazz', 'https://images.example.com/matt.jpg', 'https://www.facebook.com/mattquevedo923251523', '', 0, ''),
		 (6, 'The Wild Sax Band', 'San Francisco', 'CA', '432-325-5432', 'Jazz, Classical', 'https://images.example.com/sax.jpg', '', '', 0, '')`,
		`INSERT INTO shows (id, artist_id, venue_id, start_time) VALUES
		 (1, 4, 1, '2019-05-21 21:30:00'),
		 (2, 5, 3, '2019-06-15 23:00:00'),
		 (3, 6, 3, '2035-04-01 20:00:00'),
		 (4, 6, 3, '2035-04-08 20:00:00'),
		 (5, 6, 3, '2035-04-15 20:00:00')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
}
