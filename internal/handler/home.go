package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/superhero-sightings/internal/service"
)

// homePage is the payload of the home template.
type homePage struct {
	Map         *service.HomeMap
	MarkersJSON string
	Focused     bool
	MapsAPIKey  string
}

// marker is the shape the map script expects for each pin.
type marker struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Home handles GET / and GET /home.  With ?id= the map is centred on that
// location; otherwise on the latest sighting.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		m       *service.HomeMap
		err     error
		focused bool
	)
	if raw := c.QueryParam("id"); raw != "" {
		id, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || id <= 0 {
			return notFound("Location")
		}
		m, err = h.Maps.LocationMap(ctx, id, service.RecentSightings)
		if err != nil {
			return lookupError(err, "Location")
		}
		focused = true
	} else {
		m, err = h.Maps.Map(ctx, service.RecentSightings)
		if err != nil {
			return err
		}
	}

	pins := make([]marker, 0, len(m.Markers))
	for _, p := range m.Markers {
		pins = append(pins, marker{Lat: p.Latitude, Lng: p.Longitude})
	}
	raw, err := json.Marshal(pins)
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "home", "Superhero Sightings", "home", homePage{
		Map:         m,
		MarkersJSON: string(raw),
		Focused:     focused,
		MapsAPIKey:  h.MapsAPIKey,
	})
}
