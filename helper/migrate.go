package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"resort/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// MigrationDSN is the write database URL with the migrations table attached.
func MigrationDSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	query := url.Values{}
	query.Set("sslmode", pg.Write.SSLMode)

	if pg.MigrationTable != "" {
		query.Set("x-migrations-table", pg.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Write.Username, pg.Write.Password),
		Host:     net.JoinHostPort(pg.Write.Host, pg.Write.Port),
		Path:     "/" + pg.DatabaseName(pg.Write),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func step(action string) (func(*migrate.Migrate) error, error) {
	switch action {
	case ActionUp:
		return (*migrate.Migrate).Up, nil
	case ActionDown:
		return func(m *migrate.Migrate) error { return m.Steps(-1) }, nil
	case ActionStepUp:
		return func(m *migrate.Migrate) error { return m.Steps(1) }, nil
	case ActionDrop:
		return (*migrate.Migrate).Down, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Runner applies one migration action against the write database. Having
// nothing to apply is not an error.
func Runner(cfg *config.Config, action string) error {
	run, err := step(action)
	if err != nil {
		return err
	}

	mig, err := migrate.New(migrationSource, MigrationDSN(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
