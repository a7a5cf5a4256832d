package service

import (
	"context"

	"github.com/iliyamo/superhero-sightings/internal/repository"
)

// RecentSightings is how many sightings the home map shows.
const RecentSightings = 5

// Coordinates is a map position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// HomeMap is the content of the home page: the latest sightings, one
// marker per sighting with a known location, and the point to centre on.
// Center is nil when there is nothing to show.
type HomeMap struct {
	Sightings []SightingView
	Markers   []Coordinates
	Center    *Coordinates
}

// HomeService builds the home page map.
type HomeService struct {
	store *repository.Store
	views *SightingViewBuilder
}

// NewHomeService returns a HomeService over store.
func NewHomeService(store *repository.Store, views *SightingViewBuilder) *HomeService {
	if store == nil || views == nil {
		panic("nil dependency passed to NewHomeService")
	}
	return &HomeService{store: store, views: views}
}

// Map returns the n most recent sightings centred on the location of the
// latest one.
func (s *HomeService) Map(ctx context.Context, n int) (*HomeMap, error) {
	recent, err := s.recent(ctx, n)
	if err != nil {
		return nil, err
	}
	m := &HomeMap{Sightings: recent, Markers: markers(recent)}
	if len(recent) > 0 && recent[0].Location != nil {
		m.Center = &Coordinates{Latitude: recent[0].Location.Latitude, Longitude: recent[0].Location.Longitude}
	}
	return m, nil
}

// LocationMap returns the n most recent sightings centred on one location.
// A missing location yields ErrNotFound.
func (s *HomeService) LocationMap(ctx context.Context, locationID int64, n int) (*HomeMap, error) {
	loc, err := s.store.Locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	recent, err := s.recent(ctx, n)
	if err != nil {
		return nil, err
	}
	return &HomeMap{
		Sightings: recent,
		Markers:   markers(recent),
		Center:    &Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude},
	}, nil
}

func (s *HomeService) recent(ctx context.Context, n int) ([]SightingView, error) {
	sightings, err := s.store.Sightings.List(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.views.BuildAll(ctx, sightings)
	if err != nil {
		return nil, err
	}
	return MostRecent(views, n), nil
}

func markers(views []SightingView) []Coordinates {
	out := make([]Coordinates, 0, len(views))
	for _, v := range views {
		if v.Location == nil {
			continue
		}
		out = append(out, Coordinates{Latitude: v.Location.Latitude, Longitude: v.Location.Longitude})
	}
	return out
}
