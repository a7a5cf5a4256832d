package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/service"
)

const locationSection = "location"

// locationForm is the payload of the location add/edit template.  The
// coordinates are kept as typed so a rejected value is shown again.
type locationForm struct {
	Loc       model.Location
	Latitude  string
	Longitude string
	Action    string
	Edit      bool
}

// locationDetails is the payload of the location details template.
type locationDetails struct {
	Location  *model.Location
	Sightings []service.SightingView
}

// ListLocations handles GET /location.
func (h *Handler) ListLocations(c echo.Context) error {
	locations, err := h.Store.Locations.List(c.Request().Context())
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "location/list", "Locations", locationSection, locations)
}

// LocationDetails handles GET /location/:id with the sightings reported
// there, latest first.
func (h *Handler) LocationDetails(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	loc, err := h.Store.Locations.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "Location")
	}
	sightings, err := h.Store.Sightings.ListAtLocation(ctx, id)
	if err != nil {
		return err
	}
	views, err := h.Views.BuildAll(ctx, sightings)
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "location/details", loc.Name, locationSection, locationDetails{
		Location:  loc,
		Sightings: service.SortSightingViews(views, service.SortByDate, service.Descending),
	})
}

// AddLocationForm handles GET /location/add.
func (h *Handler) AddLocationForm(c echo.Context) error {
	return page(c, http.StatusOK, "location/form", "Add location", locationSection, locationForm{
		Action: "/location/add",
	})
}

// AddLocation handles POST /location/add.
func (h *Handler) AddLocation(c echo.Context) error {
	f := newForm(c)
	data := readLocation(f)
	data.Loc.ID = f.optionalID("id")
	data.Action = "/location/add"
	if err := f.check(&data.Loc); err != nil {
		return err
	}
	if !f.valid() {
		return formPage(c, http.StatusUnprocessableEntity, "location/form", "Add location", locationSection, f.errs, "", data)
	}

	requested := data.Loc.ID
	if err := h.Store.Locations.Create(c.Request().Context(), &data.Loc); err != nil {
		status, msg, ok := storeFailure(err, "location")
		if !ok {
			return err
		}
		data.Loc.ID = requested
		return formPage(c, status, "location/form", "Add location", locationSection, nil, msg, data)
	}
	return redirect(c, "/location")
}

// EditLocationForm handles GET /location/:id/edit.
func (h *Handler) EditLocationForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	loc, err := h.Store.Locations.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Location")
	}
	return page(c, http.StatusOK, "location/form", "Edit "+loc.Name, locationSection, locationForm{
		Loc:       *loc,
		Latitude:  formatCoordinate(loc.Latitude),
		Longitude: formatCoordinate(loc.Longitude),
		Action:    fmt.Sprintf("/location/%d/edit", id),
		Edit:      true,
	})
}

// EditLocation handles POST /location/:id/edit.
func (h *Handler) EditLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f := newForm(c)
	data := readLocation(f)
	data.Loc.ID = id
	data.Action = fmt.Sprintf("/location/%d/edit", id)
	data.Edit = true
	if err := f.check(&data.Loc); err != nil {
		return err
	}
	if !f.valid() {
		return formPage(c, http.StatusUnprocessableEntity, "location/form", "Edit location", locationSection, f.errs, "", data)
	}

	ok, err := h.Store.Locations.Update(c.Request().Context(), &data.Loc)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Location")
	}
	return redirect(c, fmt.Sprintf("/location/%d", id))
}

// DeleteLocationForm handles GET /location/:id/delete.
func (h *Handler) DeleteLocationForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	loc, err := h.Store.Locations.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Location")
	}
	return page(c, http.StatusOK, "confirm_delete", "Delete "+loc.Name, locationSection, confirmDelete{
		Kind:    "location",
		Name:    loc.Name,
		Warning: "All sightings reported at this location will be removed.",
		Action:  fmt.Sprintf("/location/%d/delete", id),
		Cancel:  fmt.Sprintf("/location/%d", id),
	})
}

// DeleteLocation handles POST /location/:id/delete.
func (h *Handler) DeleteLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ok, err := h.Store.Locations.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Location")
	}
	return redirect(c, "/location")
}

func readLocation(f *form) locationForm {
	var data locationForm
	var lat, lng float64
	lat, data.Latitude = f.float("latitude")
	lng, data.Longitude = f.float("longitude")
	data.Loc = model.Location{
		Name:          f.str("name"),
		Description:   f.str("description"),
		StreetAddress: f.str("street_address"),
		City:          f.str("city"),
		State:         f.str("state"),
		Country:       f.str("country"),
		Latitude:      lat,
		Longitude:     lng,
	}
	return data
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
