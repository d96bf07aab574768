package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/bluesky-social/indigo/atproto/syntax"
)

// maxDocumentSize bounds how much of a DID document response is read
const maxDocumentSize = 1 << 20

// docResolver implements Resolver over plain HTTP lookups
type docResolver struct {
	httpClient *http.Client
	plcURL     string
	webScheme  string
}

// Ensure docResolver implements Resolver interface.
var _ Resolver = (*docResolver)(nil)

// WithPLCURL returns a copy of the resolver pointed at another PLC directory
func (r *docResolver) WithPLCURL(plcURL string) Resolver {
	if plcURL == "" || plcURL == r.plcURL {
		return r
	}
	clone := *r
	clone.plcURL = plcURL
	return &clone
}

// ResolveDocData fetches the DID document for a did:plc or did:web DID
func (r *docResolver) ResolveDocData(ctx context.Context, didStr string) (*DIDDocData, error) {
	did, err := syntax.ParseDID(strings.TrimSpace(didStr))
	if err != nil {
		return nil, &ErrInvalidIdentifier{
			Identifier: didStr,
			Reason:     fmt.Sprintf("invalid DID format: %v", err),
		}
	}

	switch did.Method() {
	case MethodPLC:
		return r.resolvePLC(ctx, did)
	case MethodWeb:
		return r.resolveWeb(ctx, did)
	default:
		return nil, &ErrResolutionFailed{
			Identifier: did.String(),
			Err:        ErrUnsupportedMethod,
			Reason:     "did:" + did.Method(),
		}
	}
}

// resolvePLC fetches /<did>/data from the PLC directory.
// Any path on plcURL is replaced, the same way the well-known metadata is located.
func (r *docResolver) resolvePLC(ctx context.Context, did syntax.DID) (*DIDDocData, error) {
	base, err := url.Parse(r.plcURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &ErrResolutionFailed{
			Identifier: did.String(),
			Err:        err,
			Reason:     fmt.Sprintf("invalid PLC directory URL %q", r.plcURL),
		}
	}
	dataURL := base.ResolveReference(&url.URL{Path: "/" + did.String() + "/data"})

	raw, err := r.fetchObject(ctx, did, dataURL.String())
	if err != nil {
		return nil, err
	}

	return parsePLCData(raw, did.String()), nil
}

// resolveWeb fetches https://<host>/.well-known/did.json and checks its id
func (r *docResolver) resolveWeb(ctx context.Context, did syntax.DID) (*DIDDocData, error) {
	host, err := webHost(did)
	if err != nil {
		return nil, err
	}
	docURL := fmt.Sprintf("%s://%s/.well-known/did.json", r.webScheme, host)

	raw, err := r.fetchObject(ctx, did, docURL)
	if err != nil {
		return nil, err
	}

	if id, _ := raw["id"].(string); id != did.String() {
		return nil, &ErrResolutionFailed{
			Identifier: did.String(),
			Err:        ErrDocumentMismatch,
			Reason:     fmt.Sprintf("document id %q", id),
		}
	}

	return parseW3CDocument(raw), nil
}

// webHost derives the hostname (with optional percent-encoded port) from a did:web DID.
// atproto only allows hostname-level did:web, so path segments are unsupported.
func webHost(did syntax.DID) (string, error) {
	id := did.Identifier()
	if strings.Contains(id, ":") {
		return "", &ErrResolutionFailed{
			Identifier: did.String(),
			Err:        ErrUnsupportedMethod,
			Reason:     "path-based did:web",
		}
	}
	host, err := url.PathUnescape(id)
	if err != nil || host == "" || strings.ContainsAny(host, "/?#@") {
		return "", &ErrInvalidIdentifier{
			Identifier: did.String(),
			Reason:     "invalid did:web hostname",
		}
	}
	return host, nil
}

// fetchObject GETs a URL and decodes the body as a JSON object
func (r *docResolver) fetchObject(ctx context.Context, did syntax.DID, target string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &ErrResolutionFailed{Identifier: did.String(), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &ErrResolutionFailed{Identifier: did.String(), Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("[IDENTITY] Failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &ErrResolutionFailed{
			Identifier: did.String(),
			Err:        ErrNotFound,
			Reason:     fmt.Sprintf("HTTP %d from %s", resp.StatusCode, target),
		}
	}

	var raw map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentSize)).Decode(&raw); err != nil || raw == nil {
		reason := "not a JSON object"
		if err != nil {
			reason = err.Error()
		}
		return nil, &ErrResolutionFailed{
			Identifier: did.String(),
			Err:        ErrMalformedDocument,
			Reason:     reason,
		}
	}

	return raw, nil
}
