package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/metrics"
	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/queue"
	"github.com/iliyamo/superhero-sightings/internal/repository"
	"github.com/iliyamo/superhero-sightings/internal/service"
)

const sightingSection = "sighting"

// filterDateLayout is the layout of the date filter on the list page.
const filterDateLayout = "2006-01-02"

// publishTimeout bounds the broker round trip after a sighting is saved.
const publishTimeout = 3 * time.Second

// sightingFilter echoes the list filters back into the form.
type sightingFilter struct {
	SuperheroID int64
	LocationID  int64
	Date        string
}

// sightingList is the payload of the sighting list template.
type sightingList struct {
	Views       []service.SightingView
	Order       string
	Dir         string
	Superheroes []model.Superhero
	Locations   []model.Location
	Filter      sightingFilter
}

// sightingForm is the payload of the sighting add/edit template.
type sightingForm struct {
	Sighting    model.Sighting
	Date        string
	Superheroes []model.Superhero
	Locations   []model.Location
	Action      string
	Edit        bool
}

// ListSightings handles GET /sighting.  Optional query parameters filter
// by superhero, location and day, and choose the sort order.
func (h *Handler) ListSightings(c echo.Context) error {
	ctx := c.Request().Context()
	filter, shown := parseSightingFilter(c)
	sightings, err := h.Store.Sightings.Search(ctx, filter)
	if err != nil {
		return err
	}
	views, err := h.Views.BuildAll(ctx, sightings)
	if err != nil {
		return err
	}
	key, dir := service.ParseSightingOrder(c.QueryParam("order"), c.QueryParam("dir"))

	heroes, err := h.Store.Superheroes.List(ctx)
	if err != nil {
		return err
	}
	locations, err := h.Store.Locations.List(ctx)
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "sighting/list", "Sightings", sightingSection, sightingList{
		Views:       service.SortSightingViews(views, key, dir),
		Order:       string(key),
		Dir:         string(dir),
		Superheroes: heroes,
		Locations:   locations,
		Filter:      shown,
	})
}

// parseSightingFilter reads the list filters.  Values that do not parse
// are ignored rather than rejected.
func parseSightingFilter(c echo.Context) (repository.SightingFilter, sightingFilter) {
	var f repository.SightingFilter
	var shown sightingFilter
	if id, err := strconv.ParseInt(c.QueryParam("superhero"), 10, 64); err == nil && id > 0 {
		f.SuperheroID, shown.SuperheroID = id, id
	}
	if id, err := strconv.ParseInt(c.QueryParam("location"), 10, 64); err == nil && id > 0 {
		f.LocationID, shown.LocationID = id, id
	}
	if day, err := time.ParseInLocation(filterDateLayout, c.QueryParam("date"), time.UTC); err == nil {
		f.From = day
		f.To = day.Add(24*time.Hour - time.Second)
		shown.Date = day.Format(filterDateLayout)
	}
	return f, shown
}

// SightingDetails handles GET /sighting/:id.
func (h *Handler) SightingDetails(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	s, err := h.Store.Sightings.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "Sighting")
	}
	view, err := h.Views.Build(ctx, *s)
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "sighting/details", "Sighting #"+strconv.FormatInt(id, 10), sightingSection, view)
}

// AddSightingForm handles GET /sighting/add.  The date defaults to now.
func (h *Handler) AddSightingForm(c echo.Context) error {
	s := model.Sighting{Date: model.NormalizeDate(time.Now())}
	return h.sightingFormPage(c, http.StatusOK, s, s.Date.Format(inputDateLayout), false, nil, "")
}

// AddSighting handles POST /sighting/add and announces the new sighting.
func (h *Handler) AddSighting(c echo.Context) error {
	ctx := c.Request().Context()
	f := newForm(c)
	s, rawDate := readSighting(f)
	s.ID = f.optionalID("id")
	if err := f.check(&s); err != nil {
		return err
	}
	if !f.valid() {
		return h.sightingFormPage(c, http.StatusUnprocessableEntity, s, rawDate, false, f.errs, "")
	}

	requested := s.ID
	if err := h.Store.Sightings.Create(ctx, &s); err != nil {
		status, msg, ok := storeFailure(err, "sighting")
		if !ok {
			return err
		}
		s.ID = requested
		return h.sightingFormPage(c, status, s, rawDate, false, nil, msg)
	}
	h.announce(ctx, s)
	return redirect(c, "/sighting")
}

// announce publishes a SightingReportedEvent.  Failures are logged and
// counted; the sighting is already stored.
func (h *Handler) announce(ctx context.Context, s model.Sighting) {
	view, err := h.Views.Build(ctx, s)
	if err != nil {
		h.Log.Warn("build sighting event", zap.Int64("sighting_id", s.ID), zap.Error(err))
		metrics.SightingEventsPublished.WithLabelValues("error").Inc()
		return
	}
	ev := queue.SightingReportedEvent{
		SightingID:    s.ID,
		SuperheroID:   s.SuperheroID,
		SuperheroName: view.SuperheroName(),
		LocationID:    s.LocationID,
		LocationName:  view.LocationName(),
		SightedAt:     s.Date.UTC().Format(time.RFC3339),
		ReportedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if view.Location != nil {
		ev.Latitude = view.Location.Latitude
		ev.Longitude = view.Location.Longitude
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := h.Events.PublishSightingReported(pctx, ev); err != nil {
		h.Log.Warn("publish sighting event", zap.Int64("sighting_id", s.ID), zap.Error(err))
		metrics.SightingEventsPublished.WithLabelValues("error").Inc()
		return
	}
	metrics.SightingEventsPublished.WithLabelValues("ok").Inc()
}

// EditSightingForm handles GET /sighting/:id/edit.
func (h *Handler) EditSightingForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	s, err := h.Store.Sightings.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Sighting")
	}
	return h.sightingFormPage(c, http.StatusOK, *s, s.Date.Format(inputDateLayout), true, nil, "")
}

// EditSighting handles POST /sighting/:id/edit.
func (h *Handler) EditSighting(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f := newForm(c)
	s, rawDate := readSighting(f)
	s.ID = id
	if err := f.check(&s); err != nil {
		return err
	}
	if !f.valid() {
		return h.sightingFormPage(c, http.StatusUnprocessableEntity, s, rawDate, true, f.errs, "")
	}

	ok, err := h.Store.Sightings.Update(c.Request().Context(), &s)
	if err != nil {
		status, msg, known := storeFailure(err, "sighting")
		if !known {
			return err
		}
		return h.sightingFormPage(c, status, s, rawDate, true, nil, msg)
	}
	if !ok {
		return notFound("Sighting")
	}
	return redirect(c, fmt.Sprintf("/sighting/%d", id))
}

// DeleteSightingForm handles GET /sighting/:id/delete.
func (h *Handler) DeleteSightingForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	s, err := h.Store.Sightings.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "Sighting")
	}
	view, err := h.Views.Build(ctx, *s)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s at %s on %s", view.SuperheroName(), view.LocationName(), view.DateTime)
	return page(c, http.StatusOK, "confirm_delete", "Delete sighting", sightingSection, confirmDelete{
		Kind:   "sighting",
		Name:   name,
		Action: fmt.Sprintf("/sighting/%d/delete", id),
		Cancel: fmt.Sprintf("/sighting/%d", id),
	})
}

// DeleteSighting handles POST /sighting/:id/delete.
func (h *Handler) DeleteSighting(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ok, err := h.Store.Sightings.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Sighting")
	}
	return redirect(c, "/sighting")
}

func readSighting(f *form) (model.Sighting, string) {
	s := model.Sighting{
		SuperheroID: f.requiredID("superhero_id"),
		LocationID:  f.requiredID("location_id"),
	}
	var raw string
	s.Date, raw = f.date("date")
	return s, raw
}

func (h *Handler) sightingFormPage(c echo.Context, status int, s model.Sighting, date string,
	edit bool, errs model.FieldErrors, msg string) error {
	ctx := c.Request().Context()
	heroes, err := h.Store.Superheroes.List(ctx)
	if err != nil {
		return err
	}
	locations, err := h.Store.Locations.List(ctx)
	if err != nil {
		return err
	}
	data := sightingForm{
		Sighting:    s,
		Date:        date,
		Superheroes: heroes,
		Locations:   locations,
		Action:      "/sighting/add",
		Edit:        edit,
	}
	title := "Report sighting"
	if edit {
		data.Action = fmt.Sprintf("/sighting/%d/edit", s.ID)
		title = "Edit sighting"
	}
	return formPage(c, status, "sighting/form", title, sightingSection, errs, msg, data)
}
