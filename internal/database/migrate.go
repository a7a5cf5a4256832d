package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// migrateLogger adapts zap to migrate.Logger.
type migrateLogger struct {
	log *zap.SugaredLogger
}

func (l migrateLogger) Printf(format string, v ...any) { l.log.Infof(format, v...) }
func (l migrateLogger) Verbose() bool                  { return false }

// Migrate applies every pending up migration for the driver behind db.  The
// migrate instance is intentionally not closed because that would close db.
func Migrate(db *sqlx.DB, log *zap.Logger) error {
	var (
		driver migratedb.Driver
		err    error
	)
	dialect := db.DriverName()
	switch dialect {
	case "sqlite":
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	case "mysql":
		driver, err = mysql.WithInstance(db.DB, &mysql.Config{})
	default:
		return fmt.Errorf("migrate: unsupported driver %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("migrate: %s driver: %w", dialect, err)
	}

	src, err := iofs.New(migrations, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("migrate: source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return fmt.Errorf("migrate: init: %w", err)
	}
	if log != nil {
		m.Log = migrateLogger{log: log.Sugar()}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}
	version, dirty, _ := m.Version()
	if log != nil {
		log.Info("database schema ready", zap.String("driver", dialect), zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}
