package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Store owns the connection pool and the repositories sharing it.
type Store struct {
	db            *sqlx.DB
	Superheroes   *SuperheroRepo
	Superpowers   *SuperpowerRepo
	Organizations *OrganizationRepo
	Locations     *LocationRepo
	Sightings     *SightingRepo
}

// NewStore wires every repository to db.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:            db,
		Superheroes:   NewSuperheroRepo(db),
		Superpowers:   NewSuperpowerRepo(db),
		Organizations: NewOrganizationRepo(db),
		Locations:     NewLocationRepo(db),
		Sightings:     NewSightingRepo(db),
	}
}

// DB exposes the underlying pool, e.g. for health checks.
func (s *Store) DB() *sqlx.DB { return s.db }

// WithTx runs fn inside one transaction.  fn receives a context carrying the
// transaction and every repository call made with that context joins it.
// The transaction commits when fn returns nil and rolls back otherwise.
// Nested calls reuse the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, s.db, fn)
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit tx: %w", cerr)
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, tx))
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// insertID runs an INSERT and returns the id assigned by the database.
func insertID(ctx context.Context, q sqlx.ExecerContext, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// execOne runs a statement and reports whether exactly one row was affected.
func execOne(ctx context.Context, q sqlx.ExecerContext, query string, args ...any) (bool, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
