// Package service holds the workflows that span more than one repository:
// assembling display-ready sighting views, editing a superhero together with
// its affiliations, and building the home page map.
package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/repository"
)

// DateTimeLayout is how sighting dates are shown to users.
const DateTimeLayout = "2006-01-02 03:04 PM"

// SightingView joins a sighting with the hero and location it references.
// Superhero or Location is nil when the referenced row no longer exists.
type SightingView struct {
	Sighting  model.Sighting
	Superhero *model.Superhero
	Location  *model.Location
	DateTime  string
}

// SuperheroName returns the hero's name or "" when the hero is missing.
func (v SightingView) SuperheroName() string {
	if v.Superhero == nil {
		return ""
	}
	return v.Superhero.Name
}

// LocationName returns the location's name or "" when it is missing.
func (v SightingView) LocationName() string {
	if v.Location == nil {
		return ""
	}
	return v.Location.Name
}

// SuperheroGetter loads a hero by id.
type SuperheroGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Superhero, error)
}

// LocationGetter loads a location by id.
type LocationGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Location, error)
}

// SightingViewBuilder assembles SightingViews.
type SightingViewBuilder struct {
	heroes    SuperheroGetter
	locations LocationGetter
}

// NewSightingViewBuilder returns a builder reading from the given sources.
func NewSightingViewBuilder(heroes SuperheroGetter, locations LocationGetter) *SightingViewBuilder {
	if heroes == nil || locations == nil {
		panic("nil dependency passed to NewSightingViewBuilder")
	}
	return &SightingViewBuilder{heroes: heroes, locations: locations}
}

// Build looks up the hero and location of s.  A missing row leaves the
// matching field nil; only genuine failures are returned as errors.
func (b *SightingViewBuilder) Build(ctx context.Context, s model.Sighting) (SightingView, error) {
	return b.build(ctx, s, map[int64]*model.Superhero{}, map[int64]*model.Location{})
}

// BuildAll builds a view for every sighting, preserving order.  Each hero
// and location is looked up at most once.
func (b *SightingViewBuilder) BuildAll(ctx context.Context, sightings []model.Sighting) ([]SightingView, error) {
	heroes := map[int64]*model.Superhero{}
	locations := map[int64]*model.Location{}
	out := make([]SightingView, 0, len(sightings))
	for _, s := range sightings {
		v, err := b.build(ctx, s, heroes, locations)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (b *SightingViewBuilder) build(ctx context.Context, s model.Sighting,
	heroes map[int64]*model.Superhero, locations map[int64]*model.Location) (SightingView, error) {
	v := SightingView{Sighting: s, DateTime: s.Date.Format(DateTimeLayout)}

	hero, seen := heroes[s.SuperheroID]
	if !seen {
		h, err := b.heroes.GetByID(ctx, s.SuperheroID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return SightingView{}, err
		}
		hero = h
		heroes[s.SuperheroID] = h
	}
	v.Superhero = hero

	loc, seen := locations[s.LocationID]
	if !seen {
		l, err := b.locations.GetByID(ctx, s.LocationID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return SightingView{}, err
		}
		loc = l
		locations[s.LocationID] = l
	}
	v.Location = loc
	return v, nil
}

// SortKey selects the field SortSightingViews orders by.
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortBySuperhero SortKey = "superhero"
	SortByLocation  SortKey = "location"
)

// Direction is ascending or descending.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSightingOrder decodes the order and dir query parameters of the
// sighting list.  Unknown or empty values fall back to newest first.
func ParseSightingOrder(order, dir string) (SortKey, Direction) {
	key := SortKey(strings.ToLower(strings.TrimSpace(order)))
	switch key {
	case SortByDate, SortBySuperhero, SortByLocation:
	default:
		return SortByDate, Descending
	}
	switch d := Direction(strings.ToLower(strings.TrimSpace(dir))); d {
	case Ascending, Descending:
		return key, d
	}
	if key == SortByDate {
		return key, Descending
	}
	return key, Ascending
}

// SortSightingViews returns a sorted copy of views.  Names compare
// case-insensitively and a missing hero or location sorts as an empty
// name.  Equal elements keep their input order in both directions.
func SortSightingViews(views []SightingView, key SortKey, dir Direction) []SightingView {
	out := slices.Clone(views)
	if out == nil {
		out = []SightingView{}
	}
	cmp := compareBy(key)
	if dir == Descending {
		asc := cmp
		cmp = func(a, b SightingView) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func compareBy(key SortKey) func(a, b SightingView) int {
	switch key {
	case SortBySuperhero:
		return func(a, b SightingView) int {
			return strings.Compare(strings.ToLower(a.SuperheroName()), strings.ToLower(b.SuperheroName()))
		}
	case SortByLocation:
		return func(a, b SightingView) int {
			return strings.Compare(strings.ToLower(a.LocationName()), strings.ToLower(b.LocationName()))
		}
	default:
		return func(a, b SightingView) int {
			return a.Sighting.Date.Compare(b.Sighting.Date)
		}
	}
}

// MostRecent returns at most n views, latest first.  It never reads past
// the end of views.
func MostRecent(views []SightingView, n int) []SightingView {
	if n <= 0 {
		return []SightingView{}
	}
	sorted := SortSightingViews(views, SortByDate, Descending)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
