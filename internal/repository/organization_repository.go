package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

// OrganizationRepo handles the organization table and its membership
// bridge table organization_superhero.
type OrganizationRepo struct {
	db *sqlx.DB
}

// NewOrganizationRepo constructs an OrganizationRepo with the provided DB handle.
func NewOrganizationRepo(db *sqlx.DB) *OrganizationRepo {
	return &OrganizationRepo{db: db}
}

const organizationColumns = "id, name, description, street_address, city, country"

// GetByID returns the organization with its members loaded, or ErrNotFound.
func (r *OrganizationRepo) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	const q = "SELECT " + organizationColumns + " FROM organization WHERE id = ?"
	var o model.Organization
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &o, q, id); err != nil {
		return nil, classify("get organization", err)
	}
	members, err := r.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Members = members
	return &o, nil
}

// List returns every organization ordered by id.  Members are not loaded.
func (r *OrganizationRepo) List(ctx context.Context) ([]model.Organization, error) {
	const q = "SELECT " + organizationColumns + " FROM organization ORDER BY id"
	out := make([]model.Organization, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q); err != nil {
		return nil, classify("list organizations", err)
	}
	return out, nil
}

// Create inserts o and a membership row for every hero in o.Members.
func (r *OrganizationRepo) Create(ctx context.Context, o *model.Organization) error {
	o.Normalize()
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		if o.ID != 0 {
			const q = "INSERT INTO organization (" + organizationColumns + ") VALUES (?, ?, ?, ?, ?, ?)"
			if _, err := db.ExecContext(ctx, q, o.ID, o.Name, o.Description, o.StreetAddress, o.City, o.Country); err != nil {
				return err
			}
		} else {
			const q = "INSERT INTO organization (name, description, street_address, city, country) VALUES (?, ?, ?, ?, ?)"
			id, err := insertID(ctx, db, q, o.Name, o.Description, o.StreetAddress, o.City, o.Country)
			if err != nil {
				return err
			}
			o.ID = id
		}
		return r.insertMembers(ctx, o)
	})
	return classify("create organization", err)
}

// Update overwrites the row keyed by o.ID and replaces its membership set
// with o.Members.  It reports false, and changes nothing, when no row
// matched.
func (r *OrganizationRepo) Update(ctx context.Context, o *model.Organization) (bool, error) {
	o.Normalize()
	var updated bool
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		const q = `UPDATE organization SET id = ?, name = ?, description = ?, street_address = ?,
			city = ?, country = ? WHERE id = ?`
		ok, err := execOne(ctx, db, q, o.ID, o.Name, o.Description, o.StreetAddress, o.City, o.Country, o.ID)
		if err != nil || !ok {
			return err
		}
		updated = true
		if _, err := db.ExecContext(ctx, "DELETE FROM organization_superhero WHERE organization_id = ?", o.ID); err != nil {
			return err
		}
		return r.insertMembers(ctx, o)
	})
	if err != nil {
		return false, classify("update organization", err)
	}
	return updated, nil
}

func (r *OrganizationRepo) insertMembers(ctx context.Context, o *model.Organization) error {
	for i := range o.Members {
		if _, err := r.AddMember(ctx, o, &o.Members[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByID removes the organization and its membership rows.
func (r *OrganizationRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		if _, err := db.ExecContext(ctx, "DELETE FROM organization_superhero WHERE organization_id = ?", id); err != nil {
			return err
		}
		ok, err := execOne(ctx, db, "DELETE FROM organization WHERE id = ?", id)
		deleted = ok
		return err
	})
	if err != nil {
		return false, classify("delete organization", err)
	}
	return deleted, nil
}

// AddMember adds hero to org.  It returns false without an error when
// either is nil or the hero is already a member.
func (r *OrganizationRepo) AddMember(ctx context.Context, org *model.Organization, hero *model.Superhero) (bool, error) {
	if org == nil || hero == nil {
		return false, nil
	}
	const q = "INSERT INTO organization_superhero (organization_id, superhero_id) VALUES (?, ?)"
	if _, err := conn(ctx, r.db).ExecContext(ctx, q, org.ID, hero.ID); err != nil {
		if isDuplicate(err) {
			return false, nil
		}
		return false, classify("add member", err)
	}
	return true, nil
}

// RemoveMember removes a hero from an organization.  It returns false when
// the hero was not a member.
func (r *OrganizationRepo) RemoveMember(ctx context.Context, orgID, heroID int64) (bool, error) {
	const q = "DELETE FROM organization_superhero WHERE organization_id = ? AND superhero_id = ?"
	ok, err := execOne(ctx, conn(ctx, r.db), q, orgID, heroID)
	if err != nil {
		return false, classify("remove member", err)
	}
	return ok, nil
}

// ListMembers returns the heroes belonging to an organization, ordered by id.
func (r *OrganizationRepo) ListMembers(ctx context.Context, orgID int64) ([]model.Superhero, error) {
	const q = `SELECT h.id, h.name, h.description FROM superhero h
		JOIN organization_superhero os ON os.superhero_id = h.id
		WHERE os.organization_id = ? ORDER BY h.id`
	out := make([]model.Superhero, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q, orgID); err != nil {
		return nil, classify("list members", err)
	}
	return out, nil
}

// ListForSuperhero returns the organizations a hero belongs to, ordered by
// id.  Members are not loaded.
func (r *OrganizationRepo) ListForSuperhero(ctx context.Context, heroID int64) ([]model.Organization, error) {
	const q = `SELECT o.id, o.name, o.description, o.street_address, o.city, o.country
		FROM organization o
		JOIN organization_superhero os ON os.organization_id = o.id
		WHERE os.superhero_id = ? ORDER BY o.id`
	out := make([]model.Organization, 0)
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &out, q, heroID); err != nil {
		return nil, classify("list superhero organizations", err)
	}
	return out, nil
}
