package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"not found", echo.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"http 500", echo.NewHTTPError(http.StatusInternalServerError, "db down"), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"bad request", echo.NewHTTPError(http.StatusBadRequest, "bad id"), http.StatusBadRequest, `{"error":"bad id"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			ErrorHandler(tc.err, c)
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestFormList(t *testing.T) {
	e := echo.New()
	form := url.Values{"genres[]": {"Jazz", "Folk"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, []string{"Jazz", "Folk"}, formList(c, "genres"))

	form = url.Values{"genres": {"Pop"}, "genres[]": {"Jazz"}}
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, []string{"Pop"}, formList(c, "genres"))
}

func TestShowEditRedirect(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, (&VenueHandler{}).Edit(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/7", rec.Header().Get(echo.HeaderLocation))
}
