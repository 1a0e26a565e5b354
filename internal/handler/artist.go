package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jfjensen/fyyur/internal/service"
)

// ArtistHandler serves the artist pages.
type ArtistHandler struct {
	Dir *service.Directory
}

func NewArtistHandler(d *service.Directory) *ArtistHandler {
	return &ArtistHandler{Dir: d}
}

// List returns id and name of every artist.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Dir.ListArtists(c.Request().Context())
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

func (h *ArtistHandler) Search(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Dir.SearchArtists(c.Request().Context(), req.SearchTerm)
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"results": res, "search_term": req.SearchTerm})
}

func (h *ArtistHandler) Show(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Dir.ShowArtist(c.Request().Context(), id)
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ArtistHandler) Create(c echo.Context) error {
	var f service.ArtistForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, flashResp{Flash: "An error occurred. Artist could not be listed.", Errors: map[string]string{"form": "invalid body"}})
	}
	if len(f.Genres) == 0 {
		f.Genres = formList(c, "genres")
	}
	a, err := h.Dir.CreateArtist(c.Request().Context(), f)
	if err != nil {
		return writeFailure(c, err, fmt.Sprintf("An error occurred. Artist %s could not be listed.", f.Name), "artist")
	}
	return c.JSON(http.StatusCreated, flashResp{
		Success:  true,
		Flash:    fmt.Sprintf("Artist %s was successfully listed!", a.Name),
		Redirect: "/",
		ID:       a.ID,
	})
}

func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Dir.GetArtist(c.Request().Context(), id)
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, FormMeta{
		Action: fmt.Sprintf("/artists/%d/edit", id),
		Fields: artistFields(),
		Values: a,
	})
}

// Edit is accepted and discarded, like its venue counterpart.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
}
