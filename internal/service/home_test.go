package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/superhero-sightings/internal/repository"
	"github.com/iliyamo/superhero-sightings/internal/testutil"
)

func newHome(t *testing.T) (*HomeService, *repository.Store) {
	s := testutil.NewStore(t)
	return NewHomeService(s, NewSightingViewBuilder(s.Superheroes, s.Locations)), s
}

func TestHomeMap_Empty(t *testing.T) {
	home, _ := newHome(t)

	m, err := home.Map(context.Background(), RecentSightings)
	require.NoError(t, err)
	assert.Empty(t, m.Sightings)
	assert.Empty(t, m.Markers)
	assert.Nil(t, m.Center)
}

func TestHomeMap_CentresOnLatest(t *testing.T) {
	home, s := newHome(t)
	hero := testutil.Hero(t, s, "Green Lantern")
	coast := testutil.Place(t, s, "Coast City", 34.05, -118.24)
	oa := testutil.Place(t, s, "Oa", 1.5, 2.5)
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		testutil.Sight(t, s, hero, coast, day.Add(time.Duration(i)*time.Hour))
	}
	latest := testutil.Sight(t, s, hero, oa, day.Add(24*time.Hour))

	m, err := home.Map(context.Background(), RecentSightings)
	require.NoError(t, err)
	require.Len(t, m.Sightings, RecentSightings)
	assert.Equal(t, latest.ID, m.Sightings[0].Sighting.ID)
	assert.Len(t, m.Markers, RecentSightings)
	require.NotNil(t, m.Center)
	assert.Equal(t, Coordinates{Latitude: 1.5, Longitude: 2.5}, *m.Center)
}

func TestHomeMap_FewerThanRequested(t *testing.T) {
	home, s := newHome(t)
	hero := testutil.Hero(t, s, "Flash")
	loc := testutil.Place(t, s, "Central City", 39, -95)
	testutil.Sight(t, s, hero, loc, time.Now())

	m, err := home.Map(context.Background(), RecentSightings)
	require.NoError(t, err)
	assert.Len(t, m.Sightings, 1)
}

func TestLocationMap(t *testing.T) {
	home, s := newHome(t)
	loc := testutil.Place(t, s, "Star City", 47.6, -122.3)

	m, err := home.LocationMap(context.Background(), loc.ID, RecentSightings)
	require.NoError(t, err)
	require.NotNil(t, m.Center)
	assert.Equal(t, Coordinates{Latitude: 47.6, Longitude: -122.3}, *m.Center)

	_, err = home.LocationMap(context.Background(), loc.ID+1, RecentSightings)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
