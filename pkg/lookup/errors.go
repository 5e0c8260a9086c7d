package lookup

import "github.com/cockroachdb/errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")

	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")

	ErrHealthcheckFailed = errors.New("healthcheck failed, connection is not available")

	// ErrLookupFailed wraps store errors raised while a lookup validator runs.
	// The registry reports them as exceptions.
	ErrLookupFailed = errors.New("lookup failed")
)

func mark(sentinel, err error) error {
	return errors.Mark(errors.Wrap(err, sentinel.Error()), sentinel)
}
