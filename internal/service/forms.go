package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/jfjensen/fyyur/internal/model"
)

// FormBool accepts the checkbox encodings browsers and form libraries
// send ("y", "on", "true", "1") as well as JSON booleans.
type FormBool bool

// UnmarshalParam implements echo.BindUnmarshaler.
func (b *FormBool) UnmarshalParam(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "on", "true", "1":
		*b = true
	case "", "n", "no", "off", "false", "0":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %q", s)
	}
	return nil
}

// UnmarshalJSON accepts true/false or any string UnmarshalParam accepts.
func (b *FormBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FormBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return b.UnmarshalParam(s)
}

// VenueForm is the venue submission.
type VenueForm struct {
	Name               string   `json:"name" form:"name"`
	Genres             []string `json:"genres" form:"genres"`
	Address            string   `json:"address" form:"address"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Phone              string   `json:"phone" form:"phone"`
	Website            string   `json:"website" form:"website"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	SeekingTalent      FormBool `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
	ImageLink          string   `json:"image_link" form:"image_link"`
}

// Normalize trims every text field.
func (f *VenueForm) Normalize() {
	trim(&f.Name, &f.Address, &f.City, &f.Phone, &f.Website, &f.FacebookLink, &f.SeekingDescription, &f.ImageLink)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	f.Genres = trimList(f.Genres)
}

func (f VenueForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.Length(1, 120)),
		validation.Field(&f.Genres, validation.Required.Error("at least one genre is required"),
			validation.Each(validation.In(genreChoices...).Error("unknown genre")), genresFit),
		validation.Field(&f.Address, validation.Required.Error("address is required"), validation.Length(1, 120)),
		validation.Field(&f.City, validation.Required.Error("city is required"), validation.Length(1, 120)),
		validation.Field(&f.State, validation.Required.Error("state is required"),
			validation.In(stateChoices...).Error("unknown state")),
		validation.Field(&f.Phone, validation.Length(0, 120)),
		validation.Field(&f.Website, is.URL, validation.Length(0, 120)),
		validation.Field(&f.FacebookLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.SeekingDescription, validation.Length(0, 800)),
		validation.Field(&f.ImageLink, is.URL, validation.Length(0, 500)),
	)
}

func (f VenueForm) toModel() *model.Venue {
	return &model.Venue{
		Name:               f.Name,
		Genres:             f.Genres,
		Address:            f.Address,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.Website,
		FacebookLink:       f.FacebookLink,
		SeekingTalent:      bool(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
		ImageLink:          f.ImageLink,
	}
}

// ArtistForm is the artist submission.
type ArtistForm struct {
	Name               string   `json:"name" form:"name"`
	Genres             []string `json:"genres" form:"genres"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Phone              string   `json:"phone" form:"phone"`
	Website            string   `json:"website" form:"website"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	SeekingVenue       FormBool `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
	ImageLink          string   `json:"image_link" form:"image_link"`
}

// Normalize trims every text field.
func (f *ArtistForm) Normalize() {
	trim(&f.Name, &f.City, &f.Phone, &f.Website, &f.FacebookLink, &f.SeekingDescription, &f.ImageLink)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	f.Genres = trimList(f.Genres)
}

func (f ArtistForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.Length(1, 120)),
		validation.Field(&f.Genres, validation.Required.Error("at least one genre is required"),
			validation.Each(validation.In(genreChoices...).Error("unknown genre")), genresFit),
		validation.Field(&f.City, validation.Required.Error("city is required"), validation.Length(1, 120)),
		validation.Field(&f.State, validation.Required.Error("state is required"),
			validation.In(stateChoices...).Error("unknown state")),
		validation.Field(&f.Phone, validation.Length(0, 120)),
		validation.Field(&f.Website, is.URL, validation.Length(0, 120)),
		validation.Field(&f.FacebookLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.SeekingDescription, validation.Length(0, 800)),
		validation.Field(&f.ImageLink, is.URL, validation.Length(0, 500)),
	)
}

func (f ArtistForm) toModel() *model.Artist {
	return &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingVenue:       bool(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

// ShowForm is the show submission.  StartTime accepts RFC 3339 and the
// datetime-local style layouts in startTimeLayouts; values without an
// offset are taken as UTC.
type ShowForm struct {
	ArtistID  uint64 `json:"artist_id" form:"artist_id"`
	VenueID   uint64 `json:"venue_id" form:"venue_id"`
	StartTime string `json:"start_time" form:"start_time"`
}

func (f ShowForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ArtistID, validation.Required.Error("artist_id is required")),
		validation.Field(&f.VenueID, validation.Required.Error("venue_id is required")),
		validation.Field(&f.StartTime, validation.Required.Error("start_time is required"),
			validation.By(func(any) error {
				_, err := ParseStartTime(f.StartTime)
				return err
			})),
	)
}

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseStartTime parses a submitted start time and returns it in UTC,
// truncated to whole seconds.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, errors.New("start_time must look like 2006-01-02T15:04:05")
}

// MaxGenresLength is the width of the genres columns.
const MaxGenresLength = 120

// genresFit rejects selections whose stored form would overflow the
// genres column.
var genresFit = validation.By(func(v any) error {
	genres, _ := v.([]string)
	if n := len(model.JoinGenres(genres)); n > MaxGenresLength {
		return fmt.Errorf("too many genres selected (%d of %d characters)", n, MaxGenresLength)
	}
	return nil
})

var (
	genreChoices = toAny(model.GenreChoices)
	stateChoices = toAny(model.StateChoices)
)

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ValidationError reports a submission that was rejected before it
// reached the database.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Fields returns per-field messages when the cause is a set of ozzo
// field errors, or a single "form" entry otherwise.
func (e *ValidationError) Fields() map[string]string {
	out := map[string]string{}
	var verrs validation.Errors
	if errors.As(e.Err, &verrs) {
		for field, err := range verrs {
			out[field] = err.Error()
		}
		return out
	}
	out["form"] = e.Err.Error()
	return out
}
