package postgres

//nolint:revive
import (
	"context"
	"net"
	"net/url"
	"resort/config"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits queries between the read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  Connect("read", pg, pg.Read),
		Write: Connect("write", pg, pg.Write),
	}
}

// DSN renders the lib/pq URL for one endpoint.
func DSN(pg config.Postgres, endpoint config.DBEndpoint) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + pg.DatabaseName(endpoint),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect dials one pool, retrying on a constant backoff. It returns nil once
// the retries are spent so the caller decides whether that is fatal.
func Connect(role string, pg config.Postgres, endpoint config.DBEndpoint) *sqlx.DB {
	logger := log.With().
		Str("role", role).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("database", pg.DatabaseName(endpoint)).
		Logger()

	dsn := DSN(pg, endpoint)
	attempt := 0

	db, err := backoff.Retry(context.Background(),
		func() (*sqlx.DB, error) {
			attempt++

			return sqlx.Connect(driverName, dsn)
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(time.Duration(pg.RetryWaitTime)*time.Second)),
		backoff.WithMaxTries(uint(max(pg.MaxRetry, 1))),
		backoff.WithNotify(func(err error, wait time.Duration) {
			logger.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("database not reachable, retrying")
		}),
	)
	if err != nil {
		logger.Error().Err(err).Int("attempts", attempt).Msg("giving up on database")

		return nil
	}

	db.SetMaxIdleConns(maxIdleConnections)
	db.SetMaxOpenConns(maxOpenConnections)
	db.SetConnMaxLifetime(connMaxLifetime)

	logger.Info().Msg("database connected")

	return db
}
