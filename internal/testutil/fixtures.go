package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/repository"
)

// Hero inserts a superhero with a store-assigned id.
func Hero(t testing.TB, s *repository.Store, name string) model.Superhero {
	t.Helper()
	h := model.Superhero{Name: name, Description: name + " saves the day"}
	require.NoError(t, s.Superheroes.Create(context.Background(), &h))
	return h
}

// Power inserts a superpower with a store-assigned id.
func Power(t testing.TB, s *repository.Store, name string) model.Superpower {
	t.Helper()
	p := model.Superpower{Name: name, Superheroes: []model.Superhero{}}
	require.NoError(t, s.Superpowers.Create(context.Background(), &p))
	return p
}

// Org inserts an organization with the given members.
func Org(t testing.TB, s *repository.Store, name string, members ...model.Superhero) model.Organization {
	t.Helper()
	o := model.Organization{
		Name:    name,
		City:    "Gotham",
		Country: "US",
		Members: append([]model.Superhero{}, members...),
	}
	require.NoError(t, s.Organizations.Create(context.Background(), &o))
	return o
}

// Place inserts a location with a store-assigned id.
func Place(t testing.TB, s *repository.Store, name string, lat, lng float64) model.Location {
	t.Helper()
	l := model.Location{
		Name:        name,
		City:        "Metropolis",
		Country:     "US",
		Latitude:    lat,
		Longitude:   lng,
		Description: "somewhere called " + name,
	}
	require.NoError(t, s.Locations.Create(context.Background(), &l))
	return l
}

// Sight records hero at loc at when.
func Sight(t testing.TB, s *repository.Store, hero model.Superhero, loc model.Location, when time.Time) model.Sighting {
	t.Helper()
	sg := model.Sighting{SuperheroID: hero.ID, LocationID: loc.ID, Date: when}
	require.NoError(t, s.Sightings.Create(context.Background(), &sg))
	return sg
}
