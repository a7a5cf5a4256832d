package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/repository"
	"github.com/iliyamo/superhero-sightings/internal/testutil"
)

func TestSightingRepo_AtLocationScenario(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)

	hero := model.Superhero{ID: 1, Name: "Superman", Description: "Man of steel"}
	require.NoError(t, s.Superheroes.Create(ctx, &hero))
	loc := model.Location{ID: 1, Name: "Fortress", City: "Arctic", Country: "GL",
		Latitude: 76.5, Longitude: -68.7, Description: "Fortress of solitude"}
	require.NoError(t, s.Locations.Create(ctx, &loc))
	when := time.Date(2024, 3, 9, 14, 30, 15, 0, time.UTC)
	sg := model.Sighting{ID: 1, SuperheroID: 1, LocationID: 1, Date: when}
	require.NoError(t, s.Sightings.Create(ctx, &sg))

	at, err := s.Sightings.ListAtLocation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, at, 1)
	assert.Equal(t, sg.ID, at[0].ID)
	assert.Equal(t, sg.SuperheroID, at[0].SuperheroID)
	assert.Equal(t, sg.LocationID, at[0].LocationID)
	assert.True(t, sg.Date.Equal(at[0].Date))

	none, err := s.Sightings.ListAtLocation(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSightingRepo_DateTruncatedToSeconds(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Quicksilver")
	loc := testutil.Place(t, s, "Sokovia", 45, 15)

	when := time.Date(2024, 3, 9, 14, 30, 15, 987654321, time.FixedZone("CET", 3600))
	sg := testutil.Sight(t, s, hero, loc, when)

	got, err := s.Sightings.GetByID(ctx, sg.ID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Date.Location())
	assert.True(t, got.Date.Equal(time.Date(2024, 3, 9, 13, 30, 15, 0, time.UTC)))
}

func TestSightingRepo_UnknownReferences(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Nobody")

	sg := model.Sighting{SuperheroID: hero.ID, LocationID: 99, Date: time.Now()}
	err := s.Sightings.Create(ctx, &sg)
	assert.ErrorIs(t, err, repository.ErrReference)
}

func TestSightingRepo_ListOnDate(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Spider-Man")
	loc := testutil.Place(t, s, "Queens", 40.72, -73.79)
	testutil.Sight(t, s, hero, loc, time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC))
	start := testutil.Sight(t, s, hero, loc, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	end := testutil.Sight(t, s, hero, loc, time.Date(2024, 6, 2, 23, 59, 59, 0, time.UTC))
	testutil.Sight(t, s, hero, loc, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

	got, err := s.Sightings.ListOnDate(ctx, time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, start.ID, got[0].ID)
	assert.Equal(t, end.ID, got[1].ID)
}

func TestSightingRepo_LocationsForSuperhero(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Wonder Woman")
	other := testutil.Hero(t, s, "Aquaman")
	a := testutil.Place(t, s, "Themyscira", 37, 25)
	b := testutil.Place(t, s, "Atlantis", 0, -30)
	c := testutil.Place(t, s, "London", 51.5, -0.12)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.Sight(t, s, hero, c, day)
	testutil.Sight(t, s, hero, a, day.Add(time.Hour))
	testutil.Sight(t, s, hero, c, day.Add(2*time.Hour))
	testutil.Sight(t, s, other, b, day)

	got, err := s.Sightings.ListLocationsForSuperhero(ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Location{a, c}, got)
}

func TestSightingRepo_Search(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Black Widow")
	other := testutil.Hero(t, s, "Hawkeye")
	moscow := testutil.Place(t, s, "Moscow", 55.75, 37.62)
	budapest := testutil.Place(t, s, "Budapest", 47.5, 19.04)
	day := time.Date(2022, 2, 2, 12, 0, 0, 0, time.UTC)
	testutil.Sight(t, s, hero, moscow, day)
	want := testutil.Sight(t, s, hero, budapest, day.Add(48*time.Hour))
	testutil.Sight(t, s, other, budapest, day.Add(48*time.Hour))
	testutil.Sight(t, s, hero, budapest, day.Add(30*24*time.Hour))

	got, err := s.Sightings.Search(ctx, repository.SightingFilter{
		SuperheroID: hero.ID,
		LocationID:  budapest.ID,
		From:        day.Add(24 * time.Hour),
		To:          day.Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)

	limited, err := s.Sightings.Search(ctx, repository.SightingFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSightingRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Falcon")
	a := testutil.Place(t, s, "DC", 38.9, -77)
	b := testutil.Place(t, s, "Harlem", 40.81, -73.94)
	sg := testutil.Sight(t, s, hero, a, time.Date(2021, 4, 4, 4, 4, 4, 0, time.UTC))

	sg.LocationID = b.ID
	ok, err := s.Sightings.Update(ctx, &sg)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := s.Sightings.GetByID(ctx, sg.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.LocationID)

	ok, err = s.Sightings.DeleteByID(ctx, sg.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Sightings.DeleteByID(ctx, sg.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = s.Sightings.GetByID(ctx, sg.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
