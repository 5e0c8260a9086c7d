package lookup

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

// Querier is the part of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by the
// SQL lookups.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RowExists fails when no row of table has column equal to the value.
//
//	reg.Add("knownAccount", lookup.RowExists(pool, "accounts", "id"))
func RowExists(db Querier, table, column string) validator.CallFunc {
	return existsValidator(rowProbe(db, table, column))
}

// RowUnique fails when a row of table already has column equal to the value.
//
//	reg.Add("freeEmail", lookup.RowUnique(pool, "users", "email"))
func RowUnique(db Querier, table, column string) validator.CallFunc {
	return uniqueValidator(rowProbe(db, table, column))
}

// ExistsQuery builds the EXISTS query used by RowExists and RowUnique.
// Identifiers are quoted; the value is always a bind parameter.
func ExistsQuery(table, column string) string {
	return "SELECT EXISTS (SELECT 1 FROM " + pgx.Identifier{table}.Sanitize() +
		" WHERE " + pgx.Identifier{column}.Sanitize() + " = $1)"
}

func rowProbe(db Querier, table, column string) probe {
	query := ExistsQuery(table, column)
	return func(ctx context.Context, value any, _ validator.Options) (bool, error) {
		var found bool
		if err := db.QueryRow(ctx, query, value).Scan(&found); err != nil {
			return false, errors.Wrapf(err, "query %s.%s", table, column)
		}
		return found, nil
	}
}

// ConnectPG opens a pool and pings it, backing off linearly between attempts.
func ConnectPG(ctx context.Context, cfg PGConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, mark(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, mark(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToOpenDBConnection
}

// PGHealthcheck returns a ping check suitable for health endpoints.
func PGHealthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return mark(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
