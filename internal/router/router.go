// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/jfjensen/fyyur/internal/config"
	"github.com/jfjensen/fyyur/internal/handler"
	"github.com/jfjensen/fyyur/internal/middleware"
	"github.com/jfjensen/fyyur/internal/service"
	"github.com/jfjensen/fyyur/internal/utils"
)

// Deps carries what the routes need.  Redis may be nil, which turns the
// page cache and the rate limiter into pass-throughs.
type Deps struct {
	Cfg       config.Config
	Dir       *service.Directory
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// New builds the Echo instance with the global middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())

	ch := Chains{
		Page:  middleware.NewRedisCache(d.Cache, d.Redis),
		Limit: middleware.NewTokenBucket(d.RateLimit, d.Redis),
		Purge: middleware.PurgeCache(d.Cache, d.Redis),
		Admin: middleware.AdminOnly(d.Cfg.AdminJWTSecret, utils.AdminRole),
	}

	RegisterRoutes(e)
	RegisterVenues(e, handler.NewVenueHandler(d.Dir), ch)
	RegisterArtists(e, handler.NewArtistHandler(d.Dir), ch)
	RegisterShows(e, handler.NewShowHandler(d.Dir), ch)
	RegisterAuth(e, handler.NewAuthHandler(d.Cfg), ch)
	return e
}

// Chains groups the per-route middleware.  Page caches reads whose
// output depends only on stored rows, Limit
// throttles submissions, Purge drops cached pages after a write and Admin
// guards destructive routes.
type Chains struct {
	Page  echo.MiddlewareFunc
	Limit echo.MiddlewareFunc
	Purge echo.MiddlewareFunc
	Admin echo.MiddlewareFunc
}

// RegisterRoutes registers the home page and the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)
}

// RegisterVenues registers the venue pages.  The listing and the detail
// page split shows around the current time, so they are never cached.
func RegisterVenues(e *echo.Echo, h *handler.VenueHandler, ch Chains) {
	e.GET("/venues", h.List)
	e.POST("/venues/search", h.Search, ch.Limit)
	e.GET("/venues/create", handler.VenueForm)
	e.POST("/venues/create", h.Create, ch.Limit, ch.Purge)
	e.GET("/venues/:id", h.Show)
	e.DELETE("/venues/:id", h.Delete, ch.Admin, ch.Purge)
	e.GET("/venues/:id/edit", h.EditForm)
	e.POST("/venues/:id/edit", h.Edit, ch.Limit)
}

// RegisterArtists registers the artist pages.
func RegisterArtists(e *echo.Echo, h *handler.ArtistHandler, ch Chains) {
	e.GET("/artists", h.List, ch.Page)
	e.POST("/artists/search", h.Search, ch.Limit)
	e.GET("/artists/create", handler.ArtistForm)
	e.POST("/artists/create", h.Create, ch.Limit, ch.Purge)
	e.GET("/artists/:id", h.Show)
	e.GET("/artists/:id/edit", h.EditForm)
	e.POST("/artists/:id/edit", h.Edit, ch.Limit)
}

// RegisterShows registers the show listing and the new-show form.
func RegisterShows(e *echo.Echo, h *handler.ShowHandler, ch Chains) {
	e.GET("/shows", h.List, ch.Page)
	e.GET("/shows/create", handler.ShowForm)
	e.POST("/shows/create", h.Create, ch.Limit, ch.Purge)
}

// RegisterAuth registers the admin token endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, ch Chains) {
	e.POST("/auth/token", a.Token, ch.Limit)
}
