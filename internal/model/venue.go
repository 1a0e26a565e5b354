package model

// Venue represents a place hosting shows.  This struct corresponds to a
// row in the `venues` table.  Genres are kept as a list here; the
// repository joins them with GenreSeparator on write and splits them on
// read.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  Genres             – music genres the venue books.
//  Address            – street address.
//  City, State        – location; venues are grouped by this pair.
//  Phone              – contact phone number.
//  Website            – venue homepage.
//  FacebookLink       – facebook page.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text describing what the venue looks for.
//  ImageLink          – picture of the venue.
type Venue struct {
	ID                 uint64   `json:"id"`                  // venues.id
	Name               string   `json:"name"`                // venues.name
	Genres             []string `json:"genres"`              // venues.genres
	Address            string   `json:"address"`             // venues.address
	City               string   `json:"city"`                // venues.city
	State              string   `json:"state"`               // venues.state
	Phone              string   `json:"phone"`               // venues.phone
	Website            string   `json:"website"`             // venues.website
	FacebookLink       string   `json:"facebook_link"`       // venues.facebook_link
	SeekingTalent      bool     `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string   `json:"seeking_description"` // venues.seeking_description
	ImageLink          string   `json:"image_link"`          // venues.image_link
}
