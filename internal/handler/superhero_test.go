package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/superhero-sightings/internal/testutil"
)

func TestSuperheroPages(t *testing.T) {
	s := newSite(t)
	hero := testutil.Hero(t, s.store, "Batman")
	power := testutil.Power(t, s.store, "Detective skills")
	testutil.Org(t, s.store, "Justice League", hero)
	_, err := s.store.Superpowers.AddSuperheroPower(context.Background(), &hero, &power)
	require.NoError(t, err)
	loc := testutil.Place(t, s.store, "Gotham", 40.7, -74)
	testutil.Sight(t, s.store, hero, loc, time.Now())

	rec := s.get(t, "/superhero")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Batman")

	rec = s.get(t, fmt.Sprintf("/superhero/%d", hero.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Detective skills")
	assert.Contains(t, body, "Justice League")
	assert.Contains(t, body, "Gotham")
}

func TestAddSuperhero_WithAffiliations(t *testing.T) {
	s := newSite(t)
	flight := testutil.Power(t, s.store, "Flight")
	league := testutil.Org(t, s.store, "Justice League")

	rec := s.post(t, "/superhero/add", url.Values{
		"id":            {"7"},
		"name":          {"Superman"},
		"description":   {"Man of Steel"},
		"superpowers":   {fmt.Sprint(flight.ID)},
		"organizations": {fmt.Sprint(league.ID)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/superhero", rec.Header().Get("Location"))

	ctx := context.Background()
	hero, err := s.store.Superheroes.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Superman", hero.Name)
	powers, err := s.store.Superpowers.ListForSuperhero(ctx, 7)
	require.NoError(t, err)
	require.Len(t, powers, 1)
	assert.Equal(t, flight.ID, powers[0].ID)
	members, err := s.store.Organizations.ListMembers(ctx, league.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, int64(7), members[0].ID)
}

func TestAddSuperhero_InvalidFormIsRedisplayed(t *testing.T) {
	s := newSite(t)

	rec := s.post(t, "/superhero/add", url.Values{
		"id":          {"seven"},
		"name":        {""},
		"description": {"Mystery"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "must be a positive whole number")
	assert.Contains(t, body, "cannot be empty")
	assert.Contains(t, body, "Mystery")

	heroes, err := s.store.Superheroes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, heroes)
}

func TestAddSuperhero_DuplicateIDConflicts(t *testing.T) {
	s := newSite(t)
	hero := testutil.Hero(t, s.store, "Batman")

	rec := s.post(t, "/superhero/add", url.Values{
		"id":          {fmt.Sprint(hero.ID)},
		"name":        {"Impostor"},
		"description": {"not Batman"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestAddSuperhero_UnknownPowerRollsBack(t *testing.T) {
	s := newSite(t)

	rec := s.post(t, "/superhero/add", url.Values{
		"name":        {"Ghost"},
		"description": {"Not really there"},
		"superpowers": {"404"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no longer exists")

	heroes, err := s.store.Superheroes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, heroes)
}

func TestEditSuperhero_ReplacesAffiliations(t *testing.T) {
	s := newSite(t)
	ctx := context.Background()
	hero := testutil.Hero(t, s.store, "Wonder Woman")
	lasso := testutil.Power(t, s.store, "Lasso of Truth")
	flight := testutil.Power(t, s.store, "Flight")
	league := testutil.Org(t, s.store, "Justice League", hero)
	amazons := testutil.Org(t, s.store, "Amazons")
	_, err := s.store.Superpowers.AddSuperheroPower(ctx, &hero, &lasso)
	require.NoError(t, err)

	rec := s.get(t, fmt.Sprintf("/superhero/%d/edit", hero.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lasso of Truth")

	rec = s.post(t, fmt.Sprintf("/superhero/%d/edit", hero.ID), url.Values{
		"name":          {"Diana"},
		"description":   {"Princess of Themyscira"},
		"superpowers":   {fmt.Sprint(lasso.ID), fmt.Sprint(flight.ID)},
		"organizations": {fmt.Sprint(amazons.ID)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, fmt.Sprintf("/superhero/%d", hero.ID), rec.Header().Get("Location"))

	got, err := s.store.Superheroes.GetByID(ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diana", got.Name)
	powers, err := s.store.Superpowers.ListForSuperhero(ctx, hero.ID)
	require.NoError(t, err)
	assert.Len(t, powers, 2)
	orgs, err := s.store.Organizations.ListForSuperhero(ctx, hero.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, amazons.ID, orgs[0].ID)
	members, err := s.store.Organizations.ListMembers(ctx, league.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestDeleteSuperhero_RemovesSightings(t *testing.T) {
	s := newSite(t)
	ctx := context.Background()
	hero := testutil.Hero(t, s.store, "Robin")
	loc := testutil.Place(t, s.store, "Gotham", 40.7, -74)
	sg := testutil.Sight(t, s.store, hero, loc, time.Now())

	rec := s.get(t, fmt.Sprintf("/superhero/%d/delete", hero.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sightings")

	rec = s.post(t, fmt.Sprintf("/superhero/%d/delete", hero.ID), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/superhero", rec.Header().Get("Location"))

	_, err := s.store.Sightings.GetByID(ctx, sg.ID)
	assert.Error(t, err)
	_, err = s.store.Locations.GetByID(ctx, loc.ID)
	assert.NoError(t, err)
}
