package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by load balancers.  It answers a plain
// text "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Home is the landing page data.
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"links": echo.Map{
			"venues":        "/venues",
			"artists":       "/artists",
			"shows":         "/shows",
			"create_venue":  "/venues/create",
			"create_artist": "/artists/create",
			"create_show":   "/shows/create",
		},
	})
}
