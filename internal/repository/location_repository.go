package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

// LocationRepo encapsulates all queries against the location table.
type LocationRepo struct {
	db *sqlx.DB
}

// NewLocationRepo constructs a LocationRepo with the provided DB handle.
func NewLocationRepo(db *sqlx.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

const locationColumns = "id, name, street_address, city, state, country, latitude, longitude, description"

// GetByID returns the location with the given id or ErrNotFound.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	const q = "SELECT " + locationColumns + " FROM location WHERE id = ?"
	var l model.Location
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &l, q, id); err != nil {
		return nil, classify("get location", err)
	}
	return &l, nil
}

// List returns every location ordered by id.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	const q = "SELECT " + locationColumns + " FROM location ORDER BY id"
	out := make([]model.Location, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q); err != nil {
		return nil, classify("list locations", err)
	}
	return out, nil
}

// Create inserts l, assigning an id when l.ID is zero.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	l.Normalize()
	db := conn(ctx, r.db)
	if l.ID != 0 {
		const q = "INSERT INTO location (" + locationColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := db.ExecContext(ctx, q, l.ID, l.Name, l.StreetAddress, l.City, l.State, l.Country,
			l.Latitude, l.Longitude, l.Description)
		return classify("create location", err)
	}
	const q = `INSERT INTO location (name, street_address, city, state, country, latitude, longitude, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := insertID(ctx, db, q, l.Name, l.StreetAddress, l.City, l.State, l.Country,
		l.Latitude, l.Longitude, l.Description)
	if err != nil {
		return classify("create location", err)
	}
	l.ID = id
	return nil
}

// Update overwrites the row keyed by l.ID and reports whether it matched.
func (r *LocationRepo) Update(ctx context.Context, l *model.Location) (bool, error) {
	l.Normalize()
	const q = `UPDATE location SET id = ?, name = ?, street_address = ?, city = ?, state = ?,
		country = ?, latitude = ?, longitude = ?, description = ? WHERE id = ?`
	ok, err := execOne(ctx, conn(ctx, r.db), q, l.ID, l.Name, l.StreetAddress, l.City, l.State,
		l.Country, l.Latitude, l.Longitude, l.Description, l.ID)
	if err != nil {
		return false, classify("update location", err)
	}
	return ok, nil
}

// DeleteByID removes the location and every sighting recorded there.
func (r *LocationRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		if _, err := db.ExecContext(ctx, "DELETE FROM sighting WHERE location_id = ?", id); err != nil {
			return err
		}
		ok, err := execOne(ctx, db, "DELETE FROM location WHERE id = ?", id)
		deleted = ok
		return err
	})
	if err != nil {
		return false, classify("delete location", err)
	}
	return deleted, nil
}
