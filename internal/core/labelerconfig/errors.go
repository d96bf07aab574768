package labelerconfig

import "errors"

var (
	// ErrDIDUndetermined is returned when neither a DID was supplied nor one
	// could be discovered from the well-known metadata
	ErrDIDUndetermined = errors.New("could not determine an Ozone service DID")

	// ErrMissingDoc is returned by WithDocAndMeta when the DID document is absent
	ErrMissingDoc = errors.New("missing doc in Ozone config")

	// ErrMissingMeta is returned by WithDocAndMeta when the well-known metadata is absent
	ErrMissingMeta = errors.New("missing meta info in Ozone config")
)

// IsIncomplete returns true if the error comes from narrowing a partial config
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrMissingDoc) || errors.Is(err, ErrMissingMeta)
}
