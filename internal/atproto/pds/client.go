// Package pds provides unauthenticated read access to AT Protocol PDS repositories.
// It wraps indigo's atclient.APIClient so callers get typed errors instead of raw XRPC failures.
package pds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bluesky-social/indigo/atproto/atclient"
	"github.com/bluesky-social/indigo/atproto/syntax"
)

// Client reads public records from a PDS.
type Client interface {
	// GetRecord retrieves a single record by repo DID, collection and rkey.
	GetRecord(ctx context.Context, repo string, collection syntax.NSID, rkey syntax.RecordKey) (*RecordResponse, error)

	// HostURL returns the PDS host URL.
	HostURL() string
}

// RecordResponse contains a single record retrieved from the PDS.
// Value is whatever JSON the PDS returned under "value"; it is not guaranteed to be an object.
type RecordResponse struct {
	Value any
	URI   string
	CID   string
}

// client implements the Client interface using indigo's APIClient.
type client struct {
	apiClient *atclient.APIClient
	host      string
}

// Ensure client implements Client interface.
var _ Client = (*client)(nil)

// NewPublicClient creates a PDS client without authentication.
// httpClient may be nil to use atclient's default.
func NewPublicClient(host string, httpClient *http.Client) (Client, error) {
	host = strings.TrimRight(host, "/")
	if host == "" {
		return nil, fmt.Errorf("host is required")
	}

	apiClient := atclient.NewAPIClient(host)
	if httpClient != nil {
		apiClient.Client = httpClient
	}

	return &client{
		apiClient: apiClient,
		host:      host,
	}, nil
}

// wrapAPIError inspects an error from atclient and wraps it with our typed errors.
// This allows callers to use errors.Is() for reliable error detection.
func wrapAPIError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr *atclient.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 404,
			apiErr.StatusCode == 400 && (apiErr.Name == "RecordNotFound" || apiErr.Name == "RepoNotFound"):
			return fmt.Errorf("%s: %w: %s", operation, ErrNotFound, apiErr.Message)
		case apiErr.StatusCode == 400:
			return fmt.Errorf("%s: %w: %s", operation, ErrBadRequest, apiErr.Message)
		case apiErr.StatusCode >= 500:
			return fmt.Errorf("%s: %w: HTTP %d", operation, ErrUnavailable, apiErr.StatusCode)
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

// HostURL returns the PDS host URL.
func (c *client) HostURL() string {
	return c.host
}

// GetRecord retrieves a single record by repo, collection and rkey.
func (c *client) GetRecord(ctx context.Context, repo string, collection syntax.NSID, rkey syntax.RecordKey) (*RecordResponse, error) {
	params := map[string]any{
		"repo":       repo,
		"collection": collection.String(),
		"rkey":       rkey.String(),
	}

	var result struct {
		Value any    `json:"value"`
		URI   string `json:"uri"`
		CID   string `json:"cid"`
	}

	err := c.apiClient.Get(ctx, syntax.NSID("com.atproto.repo.getRecord"), params, &result)
	if err != nil {
		return nil, wrapAPIError(err, "getRecord")
	}

	return &RecordResponse{
		URI:   result.URI,
		CID:   result.CID,
		Value: result.Value,
	}, nil
}
