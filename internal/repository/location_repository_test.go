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

func TestLocationRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)

	l := model.Location{
		Name:          "Daily Planet",
		StreetAddress: "355 Main St",
		City:          "Metropolis",
		State:         "NY",
		Country:       "US",
		Latitude:      40.712776,
		Longitude:     -74.005974,
		Description:   "Newspaper headquarters",
	}
	require.NoError(t, s.Locations.Create(ctx, &l))

	got, err := s.Locations.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l, *got)

	_, err = s.Locations.GetByID(ctx, l.ID+1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLocationRepo_UpdateKeepsOtherRows(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	a := testutil.Place(t, s, "Tower", 1, 2)
	b := testutil.Place(t, s, "Cave", 3, 4)

	a.Latitude = 10.5
	ok, err := s.Locations.Update(ctx, &a)
	require.NoError(t, err)
	assert.True(t, ok)

	missing := b
	missing.ID = 500
	ok, err = s.Locations.Update(ctx, &missing)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := s.Locations.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Location{a, b}, list)
}

func TestLocationRepo_DeleteCascadesSightings(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Daredevil")
	kitchen := testutil.Place(t, s, "Hells Kitchen", 40.76, -73.99)
	harlem := testutil.Place(t, s, "Harlem", 40.81, -73.94)
	testutil.Sight(t, s, hero, kitchen, time.Date(2023, 5, 1, 22, 0, 0, 0, time.UTC))
	kept := testutil.Sight(t, s, hero, harlem, time.Date(2023, 5, 2, 22, 0, 0, 0, time.UTC))

	ok, err := s.Locations.DeleteByID(ctx, kitchen.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	sightings, err := s.Sightings.List(ctx)
	require.NoError(t, err)
	require.Len(t, sightings, 1)
	assert.Equal(t, kept.ID, sightings[0].ID)
	_, err = s.Superheroes.GetByID(ctx, hero.ID)
	assert.NoError(t, err)
}
