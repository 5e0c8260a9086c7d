package async

import "github.com/cockroachdb/errors"

// ErrTimeout is returned by AwaitWithTimeout when the Future does not complete in time.
var ErrTimeout = errors.New("async: operation timed out waiting for future completion")
