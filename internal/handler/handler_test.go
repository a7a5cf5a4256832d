package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/handler"
	"github.com/iliyamo/superhero-sightings/internal/queue"
	"github.com/iliyamo/superhero-sightings/internal/repository"
	"github.com/iliyamo/superhero-sightings/internal/router"
	"github.com/iliyamo/superhero-sightings/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.SightingReportedEvent
	err    error
}

func (p *recordingPublisher) PublishSightingReported(_ context.Context, ev queue.SightingReportedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) published() []queue.SightingReportedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.SightingReportedEvent(nil), p.events...)
}

type site struct {
	e      *echo.Echo
	store  *repository.Store
	events *recordingPublisher
}

func newSite(t *testing.T) *site {
	t.Helper()
	store := testutil.NewStore(t)
	events := &recordingPublisher{}
	h := handler.New(store, events, zap.NewNop(), "test-key")
	e, err := router.New(h, zap.NewNop())
	require.NoError(t, err)
	return &site{e: e, store: store, events: events}
}

func (s *site) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *site) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newSite(t)
	rec := s.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newSite(t)
	rec := s.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticAssets(t *testing.T) {
	s := newSite(t)
	rec := s.get(t, "/static/js/home.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "initMap")
}

func TestUnknownAndMalformedIDsAreNotFound(t *testing.T) {
	s := newSite(t)
	for _, path := range []string{
		"/superhero/99", "/superhero/abc", "/superhero/-1",
		"/superpower/99/edit", "/organization/99/delete",
		"/location/99", "/sighting/99", "/sighting/x/edit",
	} {
		rec := s.get(t, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "not found", path)
	}
}

func TestPostToMissingRecordIsNotFound(t *testing.T) {
	s := newSite(t)
	rec := s.post(t, "/superhero/42/delete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.post(t, "/superhero/42/edit", url.Values{"name": {"Nobody"}, "description": {"none"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew_WiresServices(t *testing.T) {
	h := handler.New(testutil.NewStore(t), nil, nil, "key")
	assert.NotNil(t, h.Heroes)
	assert.NotNil(t, h.Views)
	assert.NotNil(t, h.Maps)
	assert.NotNil(t, h.Events)
	assert.NotNil(t, h.Log)
	assert.Equal(t, "key", h.MapsAPIKey)
}
