// Package handler contains the HTTP handlers of the site.  Every handler
// renders an HTML page or redirects; failures are returned as errors and
// turned into error pages by ErrorHandler.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/queue"
	"github.com/iliyamo/superhero-sightings/internal/repository"
	"github.com/iliyamo/superhero-sightings/internal/service"
	"github.com/iliyamo/superhero-sightings/internal/web"
)

// Handler bundles the repositories and services the pages need.
type Handler struct {
	Store      *repository.Store            // Store provides persistence for every entity
	Heroes     *service.SuperheroService    // Heroes edits a hero with its links
	Views      *service.SightingViewBuilder // Views joins sightings for display
	Maps       *service.HomeService         // Maps builds the home page map
	Events     queue.EventPublisher         // Events receives reported sightings
	Log        *zap.Logger                  // Log records failures that do not fail a request
	MapsAPIKey string                       // MapsAPIKey is passed to the map script
}

// New constructs a Handler and panics if store is nil.  A nil publisher
// drops events and a nil logger discards output.
func New(store *repository.Store, events queue.EventPublisher, log *zap.Logger, mapsAPIKey string) *Handler {
	if store == nil {
		panic("nil store passed to handler.New")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	views := service.NewSightingViewBuilder(store.Superheroes, store.Locations)
	return &Handler{
		Store:      store,
		Heroes:     service.NewSuperheroService(store),
		Views:      views,
		Maps:       service.NewHomeService(store, views),
		Events:     events,
		Log:        log,
		MapsAPIKey: mapsAPIKey,
	}
}

// errorPage is the payload of the error template.
type errorPage struct {
	Status int
	Text   string
}

// confirmDelete is the payload of the shared delete confirmation page.
type confirmDelete struct {
	Kind    string
	Name    string
	Warning string
	Action  string
	Cancel  string
}

// parseID reads the :id path parameter.  Anything that is not a positive
// integer cannot name a record, so it is reported as not found.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}
	return id, nil
}

func notFound(kind string) error {
	return echo.NewHTTPError(http.StatusNotFound, kind+" not found")
}

// lookupError turns ErrNotFound into a 404 naming kind and passes every
// other error through.
func lookupError(err error, kind string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(kind)
	}
	return err
}

func page(c echo.Context, status int, name, title, section string, data any) error {
	return c.Render(status, name, web.Page{Title: title, Section: section, Data: data})
}

// formPage re-renders a form.  Field errors answer 422; a store conflict
// answers 409 with msg shown above the form.
func formPage(c echo.Context, status int, name, title, section string, errs model.FieldErrors, msg string, data any) error {
	return c.Render(status, name, web.Page{
		Title:   title,
		Section: section,
		Errors:  errs,
		Message: msg,
		Data:    data,
	})
}

// storeFailure classifies a write error for a form.  It returns the status
// and message to show, or ok=false when err is not the user's doing.
func storeFailure(err error, kind string) (status int, msg string, ok bool) {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, "A " + kind + " with that ID already exists.", true
	case errors.Is(err, repository.ErrReference):
		return http.StatusUnprocessableEntity, "One of the selected records no longer exists.", true
	}
	return 0, "", false
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}

// ErrorHandler renders errors as HTML pages.  Unexpected errors are logged
// and shown as a generic 500.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		text := "Something went wrong. Please try again later."
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				text = m
			} else {
				text = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err))
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		if rerr := page(c, status, "error", http.StatusText(status), "", errorPage{Status: status, Text: text}); rerr != nil {
			log.Error("render error page", zap.Error(rerr))
			_ = c.String(status, text)
		}
	}
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems.  It answers "ok" when the database responds.
func (h *Handler) Health(c echo.Context) error {
	if err := h.Store.DB().PingContext(c.Request().Context()); err != nil {
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
