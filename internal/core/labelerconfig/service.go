package labelerconfig

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Ozone/internal/atproto/identity"
)

// originTimeout bounds the fetch of the console's own metadata
const originTimeout = 15 * time.Second

type service struct {
	resolver     identity.Resolver
	httpClient   *http.Client
	originClient *http.Client
	now          func() time.Time
	ownOrigin    string
}

// NewService creates the labeler config resolver.
// ownOrigin is the base URL of the console itself; its well-known metadata is the
// fallback when no DID is given or the DID document declares no labeler endpoint.
// httpClient is used for metadata and record lookups on hosts taken from DID
// documents and should be the same SSRF-safe client the identity resolver uses.
// ownOrigin is operator configuration and is fetched with a plain client, so it
// may point at a loopback or private address.
func NewService(resolver identity.Resolver, httpClient *http.Client, ownOrigin string) Service {
	if httpClient == nil {
		httpClient = identity.NewSSRFSafeHTTPClient(false)
	}
	return &service{
		resolver:     resolver,
		httpClient:   httpClient,
		originClient: &http.Client{Timeout: originTimeout},
		ownOrigin:    ownOrigin,
		now:          time.Now,
	}
}

// Resolve builds an OzoneConfig. Lookups run one after another:
// DID document, well-known metadata, then the labeler service record.
func (s *service) Resolve(ctx context.Context, labelerDID, plcURL string) (*OzoneConfig, error) {
	resolver := s.resolver.WithPLCURL(plcURL)

	// Ensure no service id
	labelerDID, _, _ = strings.Cut(strings.TrimSpace(labelerDID), "#")

	var (
		doc  *identity.DIDDocData
		meta *OzoneMeta
	)

	if labelerDID != "" {
		doc = s.resolveDoc(ctx, resolver, labelerDID)
		if labelerURL := doc.ServiceURL(identity.ServiceLabeler); labelerURL != "" {
			meta = fetchMeta(ctx, s.httpClient, labelerURL)
		} else {
			meta = fetchMeta(ctx, s.originClient, s.ownOrigin)
		}
	} else {
		meta = fetchMeta(ctx, s.originClient, s.ownOrigin)
		if meta != nil {
			doc = s.resolveDoc(ctx, resolver, meta.DID)
		}
	}

	if labelerDID == "" && meta != nil {
		labelerDID = meta.DID
	}
	if labelerDID == "" {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrDIDUndetermined, ctxErr)
		}
		return nil, ErrDIDUndetermined
	}

	labelerURL := doc.ServiceURL(identity.ServiceLabeler)
	labelerKey := doc.DIDKey(identity.KeyLabel)
	pdsURL := doc.ServiceURL(identity.ServicePDS)

	var record map[string]any
	if pdsURL != "" {
		record = s.fetchLabelerRecord(ctx, pdsURL, labelerDID)
	}

	cfg := &OzoneConfig{
		DID:    labelerDID,
		Doc:    doc,
		Meta:   meta,
		Handle: handleFromDoc(doc),
		Record: record,
		Needs: Needs{
			Identity: doc == nil,
			Service:  labelerURL == "",
			Key:      labelerKey == "",
			PDS:      pdsURL == "",
			Record:   record == nil,
		},
		UpdatedAt: s.now().UTC(),
	}
	if meta != nil {
		cfg.Matching.Service = labelerURL != "" && sameURL(labelerURL, meta.URL)
		cfg.Matching.Key = labelerKey != "" && labelerKey == meta.PublicKey
	}

	return cfg, nil
}

// resolveDoc resolves a DID document, logging and swallowing any failure
func (s *service) resolveDoc(ctx context.Context, resolver identity.Resolver, did string) *identity.DIDDocData {
	doc, err := resolver.ResolveDocData(ctx, did)
	if err != nil {
		if errors.Is(err, identity.ErrUnsupportedMethod) {
			log.Printf("[LABELER-CONFIG] Cannot resolve %s: %v", did, err)
		} else {
			log.Printf("[LABELER-CONFIG] DID document unavailable for %s: %v", did, err)
		}
		return nil
	}
	return doc
}

// WithDocAndMeta narrows a config to one whose Doc and Meta are both present
func WithDocAndMeta(cfg *OzoneConfig) (*OzoneConfigFull, error) {
	if cfg == nil || cfg.Doc == nil {
		return nil, ErrMissingDoc
	}
	if cfg.Meta == nil {
		return nil, ErrMissingMeta
	}
	return &OzoneConfigFull{OzoneConfig: *cfg}, nil
}

// handleFromDoc returns the first at:// alias without its scheme
func handleFromDoc(doc *identity.DIDDocData) *string {
	if doc == nil {
		return nil
	}
	for _, aka := range doc.AlsoKnownAs {
		if handle, ok := strings.CutPrefix(aka, "at://"); ok {
			return &handle
		}
	}
	return nil
}

// sameURL compares two URLs after normalization. Unparseable URLs never match.
func sameURL(a, b string) bool {
	na, ok := normalizeURL(a)
	if !ok {
		return false
	}
	nb, ok := normalizeURL(b)
	if !ok {
		return false
	}
	return na == nb
}

// normalizeURL canonicalizes an absolute URL the way a browser serializes it:
// lowercase scheme and host, default port dropped, empty path becomes "/".
func normalizeURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "https" && port == "443") || (u.Scheme == "http" && port == "80") {
		port = ""
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		host += ":" + port
	}
	u.Host = host
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}
	return u.String(), true
}
