package service

import (
	"context"
	"slices"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/repository"
)

// SuperheroProfile is a hero together with everything linked to it.
type SuperheroProfile struct {
	Superhero     model.Superhero
	Superpowers   []model.Superpower
	Organizations []model.Organization
	Locations     []model.Location
}

// PowerIDs returns the ids of the hero's superpowers.
func (p SuperheroProfile) PowerIDs() []int64 {
	ids := make([]int64, 0, len(p.Superpowers))
	for _, sp := range p.Superpowers {
		ids = append(ids, sp.ID)
	}
	return ids
}

// OrganizationIDs returns the ids of the hero's organizations.
func (p SuperheroProfile) OrganizationIDs() []int64 {
	ids := make([]int64, 0, len(p.Organizations))
	for _, o := range p.Organizations {
		ids = append(ids, o.ID)
	}
	return ids
}

// SuperheroService edits a hero and its superpower and organization links
// as one unit.
type SuperheroService struct {
	store *repository.Store
}

// NewSuperheroService returns a service over store.
func NewSuperheroService(store *repository.Store) *SuperheroService {
	if store == nil {
		panic("nil store passed to NewSuperheroService")
	}
	return &SuperheroService{store: store}
}

// Profile loads a hero with its powers, organizations and the distinct
// locations where it was sighted.  A missing hero yields ErrNotFound.
func (s *SuperheroService) Profile(ctx context.Context, id int64) (*SuperheroProfile, error) {
	hero, err := s.store.Superheroes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	powers, err := s.store.Superpowers.ListForSuperhero(ctx, id)
	if err != nil {
		return nil, err
	}
	orgs, err := s.store.Organizations.ListForSuperhero(ctx, id)
	if err != nil {
		return nil, err
	}
	locs, err := s.store.Sightings.ListLocationsForSuperhero(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SuperheroProfile{Superhero: *hero, Superpowers: powers, Organizations: orgs, Locations: locs}, nil
}

// Create inserts hero and links it to the given powers and organizations.
// Nothing is written when any step fails.
func (s *SuperheroService) Create(ctx context.Context, hero *model.Superhero, powerIDs, orgIDs []int64) error {
	return s.store.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.Superheroes.Create(ctx, hero); err != nil {
			return err
		}
		return s.link(ctx, hero, unique(powerIDs), unique(orgIDs))
	})
}

// Update overwrites hero and brings its links in line with the selected
// powers and organizations: links only in the former set are removed,
// links only in the selection are added and shared links are untouched.
// It reports false, changing nothing, when the hero does not exist.
func (s *SuperheroService) Update(ctx context.Context, hero *model.Superhero, powerIDs, orgIDs []int64) (bool, error) {
	var updated bool
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ok, err := s.store.Superheroes.Update(ctx, hero)
		if err != nil || !ok {
			return err
		}
		updated = true

		powers, err := s.store.Superpowers.ListForSuperhero(ctx, hero.ID)
		if err != nil {
			return err
		}
		former := make([]int64, 0, len(powers))
		for _, p := range powers {
			former = append(former, p.ID)
		}
		removePowers, addPowers := diffIDs(former, powerIDs)
		for _, id := range removePowers {
			if _, err := s.store.Superpowers.RemoveSuperheroPower(ctx, hero.ID, id); err != nil {
				return err
			}
		}

		orgs, err := s.store.Organizations.ListForSuperhero(ctx, hero.ID)
		if err != nil {
			return err
		}
		former = former[:0]
		for _, o := range orgs {
			former = append(former, o.ID)
		}
		removeOrgs, addOrgs := diffIDs(former, orgIDs)
		for _, id := range removeOrgs {
			if _, err := s.store.Organizations.RemoveMember(ctx, id, hero.ID); err != nil {
				return err
			}
		}
		return s.link(ctx, hero, addPowers, addOrgs)
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (s *SuperheroService) link(ctx context.Context, hero *model.Superhero, powerIDs, orgIDs []int64) error {
	for _, id := range powerIDs {
		if _, err := s.store.Superpowers.AddSuperheroPower(ctx, hero, &model.Superpower{ID: id}); err != nil {
			return err
		}
	}
	for _, id := range orgIDs {
		if _, err := s.store.Organizations.AddMember(ctx, &model.Organization{ID: id}, hero); err != nil {
			return err
		}
	}
	return nil
}

// diffIDs returns the ids only in former and the ids only in selected.
// Both results are sorted and free of duplicates.
func diffIDs(former, selected []int64) (remove, add []int64) {
	f := unique(former)
	s := unique(selected)
	remove = []int64{}
	add = []int64{}
	for _, id := range f {
		if _, found := slices.BinarySearch(s, id); !found {
			remove = append(remove, id)
		}
	}
	for _, id := range s {
		if _, found := slices.BinarySearch(f, id); !found {
			add = append(add, id)
		}
	}
	return remove, add
}

func unique(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
