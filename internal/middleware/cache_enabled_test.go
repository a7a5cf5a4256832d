package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/config"
)

type cachedSite struct {
	e     *echo.Echo
	views int
}

func newCachedSite(t *testing.T) (*cachedSite, *echo.Echo) {
	t.Helper()
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "pages",
		MaxBodyBytes: 1 << 20,
		SkipPaths:    []string{"/healthz", "/static/"},
	}
	s := &cachedSite{}
	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb, zap.NewNop()))
	count := func(c echo.Context) error {
		s.views++
		return c.String(http.StatusOK, fmt.Sprintf("view %d", s.views))
	}
	e.GET("/superhero", count)
	e.GET("/healthz", count)
	e.GET("/static/app.js", count)
	e.GET("/form", func(c echo.Context) error {
		s.views++
		return c.String(http.StatusUnprocessableEntity, "fix the form")
	})
	e.POST("/superhero/add", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/superhero")
	})
	e.POST("/superhero/bad", func(c echo.Context) error {
		return c.String(http.StatusUnprocessableEntity, "invalid")
	})
	s.e = e
	return s, e
}

func (s *cachedSite) do(method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRedisCache_MissThenHit(t *testing.T) {
	s, _ := newCachedSite(t)

	first := s.do(http.MethodGet, "/superhero")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "view 1", first.Body.String())

	second := s.do(http.MethodGet, "/superhero")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "view 1", second.Body.String())
	assert.Equal(t, 1, s.views)
}

func TestRedisCache_SuccessfulWriteFlushesPages(t *testing.T) {
	s, _ := newCachedSite(t)
	s.do(http.MethodGet, "/superhero")

	rec := s.do(http.MethodPost, "/superhero/add")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	after := s.do(http.MethodGet, "/superhero")
	assert.Equal(t, "MISS", after.Header().Get("X-Cache"))
	assert.Equal(t, "view 2", after.Body.String())
}

func TestRedisCache_RejectedWriteKeepsPages(t *testing.T) {
	s, _ := newCachedSite(t)
	s.do(http.MethodGet, "/superhero")

	rec := s.do(http.MethodPost, "/superhero/bad")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	after := s.do(http.MethodGet, "/superhero")
	assert.Equal(t, "HIT", after.Header().Get("X-Cache"))
}

func TestRedisCache_ErrorPagesAreNotStored(t *testing.T) {
	s, _ := newCachedSite(t)

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodGet, "/form")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, s.views)
}

func TestRedisCache_SkippedPathsAlwaysReachHandler(t *testing.T) {
	s, _ := newCachedSite(t)

	for _, path := range []string{"/healthz", "/static/app.js"} {
		for i := 0; i < 2; i++ {
			rec := s.do(http.MethodGet, path)
			require.Equal(t, http.StatusOK, rec.Code, path)
			assert.Empty(t, rec.Header().Get("X-Cache"), path)
		}
	}
	assert.Equal(t, 4, s.views)
}

func TestSkipCache(t *testing.T) {
	cfg := config.CacheConfig{SkipPaths: []string{"/metrics", "/static/"}}
	assert.True(t, skipCache(cfg, "/metrics"))
	assert.True(t, skipCache(cfg, "/static/js/home.js"))
	assert.False(t, skipCache(cfg, "/superhero"))
	assert.False(t, skipCache(config.CacheConfig{}, "/metrics"))
}
