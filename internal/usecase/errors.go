package usecase

import crerr "github.com/cockroachdb/errors"

// Sentinel errors shared across services and gateways. The HTTP layer maps
// each one onto a status code and error reason.
var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrRateLimited           = crerr.New("rate limit exceeded")
	ErrDependencyUnavailable = crerr.New("upstream dependency unavailable")
)
