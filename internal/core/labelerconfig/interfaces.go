package labelerconfig

import "context"

// Service resolves Ozone labeler configuration
type Service interface {
	// Resolve builds an OzoneConfig for a labeler.
	// labelerDID may be empty, in which case the DID is discovered from the
	// service's own well-known metadata. plcURL overrides the PLC directory
	// for this call when non-empty.
	// Lookup failures degrade to absent fields; the only error is ErrDIDUndetermined,
	// which also wraps ctx.Err() when the context ended before a DID was known.
	Resolve(ctx context.Context, labelerDID, plcURL string) (*OzoneConfig, error)
}
