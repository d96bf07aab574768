package identity

import (
	"errors"
	"fmt"
)

// Sentinel errors for DID document resolution.
// Use errors.Is() to tell an unsupported method apart from an ordinary miss.
var (
	// ErrUnsupportedMethod is returned for DID methods other than did:plc and did:web
	ErrUnsupportedMethod = errors.New("unsupported DID method")

	// ErrNotFound is returned when the document host answers with a non-200 status
	ErrNotFound = errors.New("DID document not found")

	// ErrMalformedDocument is returned when the response body is not a JSON object
	ErrMalformedDocument = errors.New("malformed DID document")

	// ErrDocumentMismatch is returned when a did:web document's id differs from the requested DID
	ErrDocumentMismatch = errors.New("DID document id mismatch")
)

// ErrInvalidIdentifier is returned for malformed DIDs
type ErrInvalidIdentifier struct {
	Identifier string
	Reason     string
}

func (e *ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid identifier %s: %s", e.Identifier, e.Reason)
}

// ErrResolutionFailed wraps a lookup failure for a DID.
// Err carries one of the sentinels above, or the transport error.
type ErrResolutionFailed struct {
	Err        error
	Identifier string
	Reason     string
}

func (e *ErrResolutionFailed) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("resolution failed for %s: %v (%s)", e.Identifier, e.Err, e.Reason)
	}
	return fmt.Sprintf("resolution failed for %s: %v", e.Identifier, e.Err)
}

func (e *ErrResolutionFailed) Unwrap() error {
	return e.Err
}
