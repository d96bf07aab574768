package labelerconfig

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
)

// WellKnownPath is where a labeler publishes its OzoneMeta
const WellKnownPath = "/.well-known/atproto-labeler.json"

// maxMetaSize bounds how much of a metadata response is read
const maxMetaSize = 64 << 10

// fetchMeta GETs the well-known metadata relative to serviceURL using client.
// Returns nil on any failure: bad URL, transport error, non-200, malformed body,
// or a body without a string "did".
func fetchMeta(ctx context.Context, client *http.Client, serviceURL string) *OzoneMeta {
	if serviceURL == "" {
		log.Printf("[LABELER-CONFIG] No service URL to fetch well-known metadata from")
		return nil
	}
	base, err := url.Parse(serviceURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		log.Printf("[LABELER-CONFIG] Invalid service URL %q for well-known metadata", serviceURL)
		return nil
	}
	metaURL := base.ResolveReference(&url.URL{Path: WellKnownPath})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metaURL.String(), nil)
	if err != nil {
		log.Printf("[LABELER-CONFIG] Failed to create metadata request for %s: %v", metaURL, err)
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[LABELER-CONFIG] Failed to fetch %s: %v", metaURL, err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LABELER-CONFIG] %s returned HTTP %d", metaURL, resp.StatusCode)
		return nil
	}

	var raw map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetaSize)).Decode(&raw); err != nil {
		log.Printf("[LABELER-CONFIG] Malformed metadata from %s: %v", metaURL, err)
		return nil
	}

	return parseMeta(raw)
}

// parseMeta extracts OzoneMeta from a decoded JSON object.
// Only "did" is required; non-string url/publicKey are left empty.
func parseMeta(raw map[string]any) *OzoneMeta {
	did, ok := raw["did"].(string)
	if !ok {
		return nil
	}
	meta := &OzoneMeta{DID: did}
	meta.URL, _ = raw["url"].(string)
	meta.PublicKey, _ = raw["publicKey"].(string)
	return meta
}
