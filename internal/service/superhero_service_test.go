package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/repository"
	"github.com/iliyamo/superhero-sightings/internal/testutil"
)

func TestDiffIDs(t *testing.T) {
	remove, add := diffIDs([]int64{1, 2, 3}, []int64{3, 4, 4, 2})
	assert.Equal(t, []int64{1}, remove)
	assert.Equal(t, []int64{4}, add)

	remove, add = diffIDs(nil, nil)
	assert.Empty(t, remove)
	assert.Empty(t, add)
}

func TestSuperheroService_CreateLinks(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewSuperheroService(s)
	flight := testutil.Power(t, s, "Flight")
	league := testutil.Org(t, s, "Justice League")

	hero := model.Superhero{Name: "Superman", Description: "Man of steel"}
	require.NoError(t, svc.Create(ctx, &hero, []int64{flight.ID}, []int64{league.ID}))

	p, err := svc.Profile(ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, hero, p.Superhero)
	assert.Equal(t, []int64{flight.ID}, p.PowerIDs())
	assert.Equal(t, []int64{league.ID}, p.OrganizationIDs())
	assert.Empty(t, p.Locations)
}

func TestSuperheroService_CreateRollsBackOnUnknownPower(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewSuperheroService(s)

	hero := model.Superhero{Name: "Nobody", Description: "Has nothing"}
	err := svc.Create(ctx, &hero, []int64{404}, nil)
	assert.ErrorIs(t, err, repository.ErrReference)

	list, err := s.Superheroes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSuperheroService_UpdateDiffsAssociations(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewSuperheroService(s)
	flight := testutil.Power(t, s, "Flight")
	strength := testutil.Power(t, s, "Strength")
	vision := testutil.Power(t, s, "Heat vision")
	league := testutil.Org(t, s, "Justice League")
	titans := testutil.Org(t, s, "Titans")

	hero := model.Superhero{Name: "Superman", Description: "Man of steel"}
	require.NoError(t, svc.Create(ctx, &hero, []int64{flight.ID, strength.ID}, []int64{league.ID}))

	hero.Description = "Last son of Krypton"
	ok, err := svc.Update(ctx, &hero, []int64{strength.ID, vision.ID}, []int64{titans.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := svc.Profile(ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, "Last son of Krypton", p.Superhero.Description)
	assert.Equal(t, []int64{strength.ID, vision.ID}, p.PowerIDs())
	assert.Equal(t, []int64{titans.ID}, p.OrganizationIDs())
}

func TestSuperheroService_UpdateRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewSuperheroService(s)
	flight := testutil.Power(t, s, "Flight")
	hero := model.Superhero{Name: "Hawkgirl", Description: "Winged"}
	require.NoError(t, svc.Create(ctx, &hero, []int64{flight.ID}, nil))

	renamed := hero
	renamed.Name = "Hawkwoman"
	_, err := svc.Update(ctx, &renamed, nil, []int64{404})
	assert.ErrorIs(t, err, repository.ErrReference)

	p, err := svc.Profile(ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hawkgirl", p.Superhero.Name)
	assert.Equal(t, []int64{flight.ID}, p.PowerIDs())
}

func TestSuperheroService_UpdateMissing(t *testing.T) {
	s := testutil.NewStore(t)
	svc := NewSuperheroService(s)

	ok, err := svc.Update(context.Background(), &model.Superhero{ID: 5, Name: "x", Description: "y"}, nil, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSuperheroService_ProfileMissing(t *testing.T) {
	svc := NewSuperheroService(testutil.NewStore(t))

	_, err := svc.Profile(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
