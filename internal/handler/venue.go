package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/jfjensen/fyyur/internal/service"
)

// VenueHandler serves the venue pages.
type VenueHandler struct {
	Dir *service.Directory
}

func NewVenueHandler(d *service.Directory) *VenueHandler {
	return &VenueHandler{Dir: d}
}

// List returns venues grouped by city and state.
func (h *VenueHandler) List(c echo.Context) error {
	areas, err := h.Dir.ListVenues(c.Request().Context())
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// Search matches venue names against search_term.
func (h *VenueHandler) Search(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Dir.SearchVenues(c.Request().Context(), req.SearchTerm)
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"results": res, "search_term": req.SearchTerm})
}

// Show returns one venue with its past and upcoming shows.
func (h *VenueHandler) Show(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Dir.ShowVenue(c.Request().Context(), id)
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Create lists a new venue and sends the client home.
func (h *VenueHandler) Create(c echo.Context) error {
	var f service.VenueForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, flashResp{Flash: "An error occurred. Venue could not be listed.", Errors: map[string]string{"form": "invalid body"}})
	}
	if len(f.Genres) == 0 {
		f.Genres = formList(c, "genres")
	}
	v, err := h.Dir.CreateVenue(c.Request().Context(), f)
	if err != nil {
		return writeFailure(c, err, fmt.Sprintf("An error occurred. Venue %s could not be listed.", f.Name), "venue")
	}
	return c.JSON(http.StatusCreated, flashResp{
		Success:  true,
		Flash:    fmt.Sprintf("Venue %s was successfully listed!", v.Name),
		Redirect: "/",
		ID:       v.ID,
	})
}

// Delete removes a venue and its shows.  Deleting a venue that does not
// exist still reports success.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	if err := h.Dir.DeleteVenue(c.Request().Context(), id); err != nil {
		log.Error().Err(err).Str("op", "delete").Str("entity", "venue").Uint64("id", id).Msg("write failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// EditForm returns the edit form prefilled with the stored venue.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Dir.GetVenue(c.Request().Context(), id)
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, FormMeta{
		Action: fmt.Sprintf("/venues/%d/edit", id),
		Fields: venueFields(),
		Values: v,
	})
}

// Edit accepts the edit form without applying it and redirects to the
// venue page.  Listings are not editable.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
}
