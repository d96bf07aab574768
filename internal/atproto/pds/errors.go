package pds

import "errors"

// Typed errors for PDS operations.
// These allow services to use errors.Is() for reliable error detection
// instead of fragile string matching.
var (
	// ErrNotFound indicates the requested record or repo does not exist (HTTP 404,
	// or HTTP 400 with RecordNotFound/RepoNotFound, which is what PDSs actually send).
	ErrNotFound = errors.New("not found")

	// ErrBadRequest indicates the request was malformed or invalid (HTTP 400).
	ErrBadRequest = errors.New("bad request")

	// ErrUnavailable indicates the PDS answered with a server error (HTTP 5xx).
	ErrUnavailable = errors.New("PDS unavailable")
)

// IsNotFound returns true if the error means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
