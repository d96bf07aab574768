package identity

import "context"

// Resolver resolves DIDs to their documents
type Resolver interface {
	// ResolveDocData fetches and parses the DID document for a did:plc or did:web DID.
	// Any '#fragment' on the DID must already be stripped.
	// Errors wrap ErrUnsupportedMethod, ErrNotFound, ErrMalformedDocument or
	// ErrDocumentMismatch so callers can tell the cases apart with errors.Is().
	ResolveDocData(ctx context.Context, did string) (*DIDDocData, error)

	// WithPLCURL returns a resolver that uses another PLC directory.
	// An empty URL returns the receiver unchanged.
	WithPLCURL(plcURL string) Resolver
}
