package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

// SuperpowerRepo handles the superpower table and the superhero_superpower
// bridge table.
type SuperpowerRepo struct {
	db *sqlx.DB
}

// NewSuperpowerRepo constructs a SuperpowerRepo with the provided DB handle.
func NewSuperpowerRepo(db *sqlx.DB) *SuperpowerRepo {
	return &SuperpowerRepo{db: db}
}

// GetByID returns the power with its superheroes loaded, or ErrNotFound.
func (r *SuperpowerRepo) GetByID(ctx context.Context, id int64) (*model.Superpower, error) {
	const q = "SELECT id, name FROM superpower WHERE id = ?"
	var p model.Superpower
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &p, q, id); err != nil {
		return nil, classify("get superpower", err)
	}
	heroes, err := r.ListSuperheroesWithPower(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Superheroes = heroes
	return &p, nil
}

// List returns every power ordered by id.  Superheroes are not loaded.
func (r *SuperpowerRepo) List(ctx context.Context) ([]model.Superpower, error) {
	const q = "SELECT id, name FROM superpower ORDER BY id"
	out := make([]model.Superpower, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q); err != nil {
		return nil, classify("list superpowers", err)
	}
	return out, nil
}

// Create inserts p and a bridge row for every hero in p.Superheroes.
func (r *SuperpowerRepo) Create(ctx context.Context, p *model.Superpower) error {
	p.Normalize()
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		if p.ID != 0 {
			const q = "INSERT INTO superpower (id, name) VALUES (?, ?)"
			if _, err := db.ExecContext(ctx, q, p.ID, p.Name); err != nil {
				return err
			}
		} else {
			id, err := insertID(ctx, db, "INSERT INTO superpower (name) VALUES (?)", p.Name)
			if err != nil {
				return err
			}
			p.ID = id
		}
		for i := range p.Superheroes {
			if _, err := r.AddSuperheroPower(ctx, &p.Superheroes[i], p); err != nil {
				return err
			}
		}
		return nil
	})
	return classify("create superpower", err)
}

// Update overwrites the row keyed by p.ID and replaces the set of heroes
// holding the power with p.Superheroes.  It reports false, and changes
// nothing, when no row matched.
func (r *SuperpowerRepo) Update(ctx context.Context, p *model.Superpower) (bool, error) {
	p.Normalize()
	var updated bool
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		ok, err := execOne(ctx, db, "UPDATE superpower SET id = ?, name = ? WHERE id = ?", p.ID, p.Name, p.ID)
		if err != nil || !ok {
			return err
		}
		updated = true
		if _, err := db.ExecContext(ctx, "DELETE FROM superhero_superpower WHERE superpower_id = ?", p.ID); err != nil {
			return err
		}
		for i := range p.Superheroes {
			if _, err := r.AddSuperheroPower(ctx, &p.Superheroes[i], p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, classify("update superpower", err)
	}
	return updated, nil
}

// DeleteByID removes the power and its bridge rows.
func (r *SuperpowerRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		if _, err := db.ExecContext(ctx, "DELETE FROM superhero_superpower WHERE superpower_id = ?", id); err != nil {
			return err
		}
		ok, err := execOne(ctx, db, "DELETE FROM superpower WHERE id = ?", id)
		deleted = ok
		return err
	})
	if err != nil {
		return false, classify("delete superpower", err)
	}
	return deleted, nil
}

// AddSuperheroPower links hero and power.  It returns false without an
// error when either is nil or the link already exists.
func (r *SuperpowerRepo) AddSuperheroPower(ctx context.Context, hero *model.Superhero, power *model.Superpower) (bool, error) {
	if hero == nil || power == nil {
		return false, nil
	}
	const q = "INSERT INTO superhero_superpower (superhero_id, superpower_id) VALUES (?, ?)"
	if _, err := conn(ctx, r.db).ExecContext(ctx, q, hero.ID, power.ID); err != nil {
		if isDuplicate(err) {
			return false, nil
		}
		return false, classify("add superhero power", err)
	}
	return true, nil
}

// RemoveSuperheroPower unlinks a hero and a power.  It returns false when
// they were not linked.
func (r *SuperpowerRepo) RemoveSuperheroPower(ctx context.Context, heroID, powerID int64) (bool, error) {
	const q = "DELETE FROM superhero_superpower WHERE superhero_id = ? AND superpower_id = ?"
	ok, err := execOne(ctx, conn(ctx, r.db), q, heroID, powerID)
	if err != nil {
		return false, classify("remove superhero power", err)
	}
	return ok, nil
}

// ListForSuperhero returns the powers held by a hero, ordered by id.
func (r *SuperpowerRepo) ListForSuperhero(ctx context.Context, heroID int64) ([]model.Superpower, error) {
	const q = `SELECT p.id, p.name FROM superpower p
		JOIN superhero_superpower sp ON sp.superpower_id = p.id
		WHERE sp.superhero_id = ? ORDER BY p.id`
	out := make([]model.Superpower, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q, heroID); err != nil {
		return nil, classify("list superhero powers", err)
	}
	return out, nil
}

// ListSuperheroesWithPower returns the heroes holding a power, ordered by id.
func (r *SuperpowerRepo) ListSuperheroesWithPower(ctx context.Context, powerID int64) ([]model.Superhero, error) {
	const q = `SELECT h.id, h.name, h.description FROM superhero h
		JOIN superhero_superpower sp ON sp.superhero_id = h.id
		WHERE sp.superpower_id = ? ORDER BY h.id`
	out := make([]model.Superhero, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q, powerID); err != nil {
		return nil, classify("list power superheroes", err)
	}
	return out, nil
}
