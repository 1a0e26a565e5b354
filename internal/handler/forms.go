package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jfjensen/fyyur/internal/model"
)

// FieldMeta describes one form input.
type FieldMeta struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Multiple bool     `json:"multiple,omitempty"`
	Choices  []string `json:"choices,omitempty"`
}

// FormMeta is returned by the GET side of every create/edit route.
type FormMeta struct {
	Action string      `json:"action"`
	Fields []FieldMeta `json:"fields"`
	Values any         `json:"values,omitempty"`
}

var (
	genresField = FieldMeta{Name: "genres", Type: "select", Required: true, Multiple: true, Choices: model.GenreChoices}
	stateField  = FieldMeta{Name: "state", Type: "select", Required: true, Choices: model.StateChoices}
)

func venueFields() []FieldMeta {
	return []FieldMeta{
		{Name: "name", Type: "text", Required: true},
		genresField,
		{Name: "address", Type: "text", Required: true},
		{Name: "city", Type: "text", Required: true},
		stateField,
		{Name: "phone", Type: "tel"},
		{Name: "website", Type: "url"},
		{Name: "facebook_link", Type: "url"},
		{Name: "seeking_talent", Type: "checkbox"},
		{Name: "seeking_description", Type: "textarea"},
		{Name: "image_link", Type: "url"},
	}
}

func artistFields() []FieldMeta {
	return []FieldMeta{
		{Name: "name", Type: "text", Required: true},
		genresField,
		{Name: "city", Type: "text", Required: true},
		stateField,
		{Name: "phone", Type: "tel"},
		{Name: "website", Type: "url"},
		{Name: "facebook_link", Type: "url"},
		{Name: "seeking_venue", Type: "checkbox"},
		{Name: "seeking_description", Type: "textarea"},
		{Name: "image_link", Type: "url"},
	}
}

func showFields() []FieldMeta {
	return []FieldMeta{
		{Name: "artist_id", Type: "number", Required: true},
		{Name: "venue_id", Type: "number", Required: true},
		{Name: "start_time", Type: "datetime-local", Required: true},
	}
}

// VenueForm describes the new-venue form.
func VenueForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormMeta{Action: "/venues/create", Fields: venueFields()})
}

// ArtistForm describes the new-artist form.
func ArtistForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormMeta{Action: "/artists/create", Fields: artistFields()})
}

// ShowForm describes the new-show form.
func ShowForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormMeta{Action: "/shows/create", Fields: showFields()})
}
