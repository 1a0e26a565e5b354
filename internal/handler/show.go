package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jfjensen/fyyur/internal/service"
)

const (
	flashShowListed = "Show was successfully listed!"
	flashShowFailed = "An error occurred. Show could not be listed."
)

// ShowHandler serves the show listing and the new-show form.
type ShowHandler struct {
	Dir *service.Directory
}

func NewShowHandler(d *service.Directory) *ShowHandler {
	return &ShowHandler{Dir: d}
}

// List returns every show, earliest first.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Dir.ListShows(c.Request().Context())
	if err != nil {
		return readFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// Create lists a new show.  Unknown artist or venue ids are rejected with
// 400.
func (h *ShowHandler) Create(c echo.Context) error {
	var f service.ShowForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, flashResp{Flash: flashShowFailed, Errors: map[string]string{"form": "invalid body"}})
	}
	s, err := h.Dir.CreateShow(c.Request().Context(), f)
	if err != nil {
		return writeFailure(c, err, flashShowFailed, "show")
	}
	return c.JSON(http.StatusCreated, flashResp{Success: true, Flash: flashShowListed, Redirect: "/", ID: s.ID})
}
