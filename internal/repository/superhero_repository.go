package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

// SuperheroRepo encapsulates all queries against the superhero table.
// Deleting a hero also removes its sightings and its rows in both bridge
// tables.
type SuperheroRepo struct {
	db *sqlx.DB
}

// NewSuperheroRepo constructs a SuperheroRepo with the provided DB handle.
func NewSuperheroRepo(db *sqlx.DB) *SuperheroRepo {
	return &SuperheroRepo{db: db}
}

// GetByID returns the hero with the given id or ErrNotFound.
func (r *SuperheroRepo) GetByID(ctx context.Context, id int64) (*model.Superhero, error) {
	const q = "SELECT id, name, description FROM superhero WHERE id = ?"
	var h model.Superhero
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &h, q, id); err != nil {
		return nil, classify("get superhero", err)
	}
	return &h, nil
}

// List returns every hero ordered by id.
func (r *SuperheroRepo) List(ctx context.Context) ([]model.Superhero, error) {
	const q = "SELECT id, name, description FROM superhero ORDER BY id"
	out := make([]model.Superhero, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q); err != nil {
		return nil, classify("list superheroes", err)
	}
	return out, nil
}

// Create inserts h.  A non-zero h.ID is used verbatim; otherwise the
// database assigns one and it is written back into h.
func (r *SuperheroRepo) Create(ctx context.Context, h *model.Superhero) error {
	h.Normalize()
	db := conn(ctx, r.db)
	if h.ID != 0 {
		const q = "INSERT INTO superhero (id, name, description) VALUES (?, ?, ?)"
		_, err := db.ExecContext(ctx, q, h.ID, h.Name, h.Description)
		return classify("create superhero", err)
	}
	const q = "INSERT INTO superhero (name, description) VALUES (?, ?)"
	id, err := insertID(ctx, db, q, h.Name, h.Description)
	if err != nil {
		return classify("create superhero", err)
	}
	h.ID = id
	return nil
}

// Update overwrites the row keyed by h.ID.  It reports false when no row
// matched.
func (r *SuperheroRepo) Update(ctx context.Context, h *model.Superhero) (bool, error) {
	h.Normalize()
	const q = "UPDATE superhero SET id = ?, name = ?, description = ? WHERE id = ?"
	ok, err := execOne(ctx, conn(ctx, r.db), q, h.ID, h.Name, h.Description, h.ID)
	if err != nil {
		return false, classify("update superhero", err)
	}
	return ok, nil
}

// DeleteByID removes the hero along with its sightings, memberships and
// superpowers in one transaction.  It reports whether the hero row existed.
func (r *SuperheroRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		stmts := []string{
			"DELETE FROM sighting WHERE superhero_id = ?",
			"DELETE FROM organization_superhero WHERE superhero_id = ?",
			"DELETE FROM superhero_superpower WHERE superhero_id = ?",
		}
		for _, q := range stmts {
			if _, err := db.ExecContext(ctx, q, id); err != nil {
				return err
			}
		}
		ok, err := execOne(ctx, db, "DELETE FROM superhero WHERE id = ?", id)
		deleted = ok
		return err
	})
	if err != nil {
		return false, classify("delete superhero", err)
	}
	return deleted, nil
}
