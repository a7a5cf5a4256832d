package repository

import (
	"context"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

// SightingRepo encapsulates all queries against the sighting table.  Dates
// are written in UTC and read back in UTC.
type SightingRepo struct {
	db *sqlx.DB
}

// NewSightingRepo constructs a SightingRepo with the provided DB handle.
func NewSightingRepo(db *sqlx.DB) *SightingRepo {
	return &SightingRepo{db: db}
}

// SightingFilter narrows Search.  Zero fields do not filter.  From and To
// are inclusive bounds.
type SightingFilter struct {
	SuperheroID int64
	LocationID  int64
	From        time.Time
	To          time.Time
	Limit       int
}

var sightingColumns = []string{"id", "location_id", "superhero_id", "date"}

// GetByID returns the sighting with the given id or ErrNotFound.
func (r *SightingRepo) GetByID(ctx context.Context, id int64) (*model.Sighting, error) {
	const q = "SELECT id, location_id, superhero_id, date FROM sighting WHERE id = ?"
	var s model.Sighting
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &s, q, id); err != nil {
		return nil, classify("get sighting", err)
	}
	s.Normalize()
	return &s, nil
}

// List returns every sighting ordered by id.
func (r *SightingRepo) List(ctx context.Context) ([]model.Sighting, error) {
	return r.Search(ctx, SightingFilter{})
}

// Create inserts s, assigning an id when s.ID is zero.  An unknown hero or
// location yields ErrReference.
func (r *SightingRepo) Create(ctx context.Context, s *model.Sighting) error {
	s.Normalize()
	db := conn(ctx, r.db)
	if s.ID != 0 {
		const q = "INSERT INTO sighting (id, location_id, superhero_id, date) VALUES (?, ?, ?, ?)"
		_, err := db.ExecContext(ctx, q, s.ID, s.LocationID, s.SuperheroID, s.Date)
		return classify("create sighting", err)
	}
	const q = "INSERT INTO sighting (location_id, superhero_id, date) VALUES (?, ?, ?)"
	id, err := insertID(ctx, db, q, s.LocationID, s.SuperheroID, s.Date)
	if err != nil {
		return classify("create sighting", err)
	}
	s.ID = id
	return nil
}

// Update overwrites the row keyed by s.ID and reports whether it matched.
func (r *SightingRepo) Update(ctx context.Context, s *model.Sighting) (bool, error) {
	s.Normalize()
	const q = "UPDATE sighting SET id = ?, location_id = ?, superhero_id = ?, date = ? WHERE id = ?"
	ok, err := execOne(ctx, conn(ctx, r.db), q, s.ID, s.LocationID, s.SuperheroID, s.Date, s.ID)
	if err != nil {
		return false, classify("update sighting", err)
	}
	return ok, nil
}

// DeleteByID removes one sighting.
func (r *SightingRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	ok, err := execOne(ctx, conn(ctx, r.db), "DELETE FROM sighting WHERE id = ?", id)
	if err != nil {
		return false, classify("delete sighting", err)
	}
	return ok, nil
}

// ListAtLocation returns the sightings recorded at a location, ordered by id.
func (r *SightingRepo) ListAtLocation(ctx context.Context, locationID int64) ([]model.Sighting, error) {
	return r.Search(ctx, SightingFilter{LocationID: locationID})
}

// ListOnDate returns the sightings between 00:00:00 and 23:59:59 UTC of the
// day containing date.
func (r *SightingRepo) ListOnDate(ctx context.Context, date time.Time) ([]model.Sighting, error) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Second)
	return r.Search(ctx, SightingFilter{From: start, To: end})
}

// ListLocationsForSuperhero returns each distinct location where the hero
// was sighted, ordered by id.
func (r *SightingRepo) ListLocationsForSuperhero(ctx context.Context, heroID int64) ([]model.Location, error) {
	const q = `SELECT l.id, l.name, l.street_address, l.city, l.state, l.country, l.latitude,
			l.longitude, l.description
		FROM location l
		WHERE l.id IN (SELECT s.location_id FROM sighting s WHERE s.superhero_id = ?)
		ORDER BY l.id`
	out := make([]model.Location, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q, heroID); err != nil {
		return nil, classify("list superhero locations", err)
	}
	return out, nil
}

// Search returns the sightings matching f, ordered by id.
func (r *SightingRepo) Search(ctx context.Context, f SightingFilter) ([]model.Sighting, error) {
	sb := sqlbuilder.MySQL.NewSelectBuilder()
	sb.Select(sightingColumns...)
	sb.From("sighting")
	if f.SuperheroID != 0 {
		sb.Where(sb.Equal("superhero_id", f.SuperheroID))
	}
	if f.LocationID != 0 {
		sb.Where(sb.Equal("location_id", f.LocationID))
	}
	if !f.From.IsZero() {
		sb.Where(sb.GreaterEqualThan("date", model.NormalizeDate(f.From)))
	}
	if !f.To.IsZero() {
		sb.Where(sb.LessEqualThan("date", model.NormalizeDate(f.To)))
	}
	sb.OrderBy("id")
	if f.Limit > 0 {
		sb.Limit(f.Limit)
	}

	query, args := sb.Build()
	out := make([]model.Sighting, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, query, args...); err != nil {
		return nil, classify("search sightings", err)
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}
