// Package handler exposes the HTTP handlers of the directory.  Page
// routes answer with the JSON view-data a template would receive; write
// routes answer with a flash message and the page to continue on.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/jfjensen/fyyur/internal/repository"
	"github.com/jfjensen/fyyur/internal/service"
)

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// formList returns a multi-valued form field.  Browsers submitting
// multi-selects under "name[]" are accepted as well as "name".
func formList(c echo.Context, name string) []string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	if v := params[name]; len(v) > 0 {
		return v
	}
	return params[name+"[]"]
}

type searchReq struct {
	SearchTerm string `json:"search_term" form:"search_term"`
}

// flashResp is the body of every write route.
type flashResp struct {
	Success  bool              `json:"success"`
	Flash    string            `json:"flash"`
	Redirect string            `json:"redirect,omitempty"`
	ID       uint64            `json:"id,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// writeFailure maps a failed create to its response.  Validation problems
// are the client's (400); anything else was a persistence failure (500).
func writeFailure(c echo.Context, err error, flash, entity string) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, flashResp{Flash: flash, Errors: verr.Fields()})
	}
	log.Error().Err(err).Str("op", "create").Str("entity", entity).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("write failed")
	return c.JSON(http.StatusInternalServerError, flashResp{Flash: flash})
}

// readFailure maps a read error: not-found sentinels become 404.
func readFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case errors.Is(err, repository.ErrArtistNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("read failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
