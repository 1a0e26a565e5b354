package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfjensen/fyyur/internal/config"
	"github.com/jfjensen/fyyur/internal/utils"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{http.MethodGet: true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "test:cache",
	}
}

func serve(e *echo.Echo, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCache_HitAfterMissAndPurgeOnWrite(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := cacheConfig()

	e := echo.New()
	e.Use(PurgeCache(cfg, rdb))
	e.Use(NewRedisCache(cfg, rdb))

	calls := 0
	e.GET("/venues/:id", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "calls": calls})
	})
	e.POST("/venues/create", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, echo.Map{"success": true})
	})
	e.POST("/venues/fail", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	})

	first := serve(e, http.MethodGet, "/venues/1", nil)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := serve(e, http.MethodGet, "/venues/1", nil)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, echo.MIMEApplicationJSON, second.Header().Get(echo.HeaderContentType))
	assert.Equal(t, 1, calls)

	// different concrete path, different key
	other := serve(e, http.MethodGet, "/venues/2", nil)
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
	assert.Len(t, mr.Keys(), 2)

	serve(e, http.MethodPost, "/venues/fail", nil)
	assert.Len(t, mr.Keys(), 2)

	serve(e, http.MethodPost, "/venues/create", nil)
	assert.Empty(t, mr.Keys())

	third := serve(e, http.MethodGet, "/venues/1", nil)
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 3, calls)
}

func TestRedisCache_SkipsNon200(t *testing.T) {
	mr, rdb := newRedis(t)
	e := echo.New()
	e.Use(NewRedisCache(cacheConfig(), rdb))
	e.GET("/venues/:id", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	})
	serve(e, http.MethodGet, "/venues/9", nil)
	assert.Empty(t, mr.Keys())
}

func TestRedisCache_NilClientPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(NewRedisCache(cacheConfig(), nil))
	e.Use(PurgeCache(cacheConfig(), nil))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	rec := serve(e, http.MethodGet, "/", nil)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)
	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestTokenBucket_BlocksWhenEmpty(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1,
		RefillInterval: time.Hour, TTL: time.Hour,
		KeyStrategy: "ip_route", Prefix: "test:rl",
	}
	e := echo.New()
	e.POST("/shows/create", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, NewTokenBucket(cfg, rdb))

	for i := 0; i < 2; i++ {
		rec := serve(e, http.MethodPost, "/shows/create", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := serve(e, http.MethodPost, "/shows/create", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too_many_requests")
}

func TestTokenBucket_RedisDownLetsThrough(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute}
	e := echo.New()
	e.POST("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, NewTokenBucket(cfg, rdb))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(e, http.MethodPost, "/x", nil).Code)
	}
}

func TestAdminOnly(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()
	e.DELETE("/venues/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "by": c.Get("user_id")})
	}, AdminOnly(secret, utils.AdminRole))

	rec := serve(e, http.MethodDelete, "/venues/1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodDelete, "/venues/1", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	viewer, err := utils.NewAccessToken(secret, "someone", "VIEWER", 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodDelete, "/venues/1", map[string]string{"Authorization": "Bearer " + viewer.Token})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	other, err := utils.NewAccessToken("other-secret", utils.AdminSubject, utils.AdminRole, 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodDelete, "/venues/1", map[string]string{"Authorization": "Bearer " + other.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin, err := utils.NewAccessToken(secret, utils.AdminSubject, utils.AdminRole, 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodDelete, "/venues/1", map[string]string{"Authorization": "Bearer " + admin.Token})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"by":"admin"`))
}

func TestAdminOnly_DisabledWithoutSecret(t *testing.T) {
	e := echo.New()
	e.DELETE("/venues/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, AdminOnly("", utils.AdminRole))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodDelete, "/venues/1", nil).Code)
}

func TestRequestLogger_FinalStatus(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "short and stout") })
	rec := serve(e, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
