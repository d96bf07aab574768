package identity

import (
	"net/http"
)

// DefaultPLCURL is the public DID PLC directory
const DefaultPLCURL = "https://plc.directory"

// Config holds configuration for the DID document resolver
type Config struct {
	HTTPClient *http.Client
	PLCURL     string
	// WebScheme is the scheme used for did:web lookups. Always "https" outside tests.
	WebScheme       string
	AllowPrivateIPs bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		PLCURL:    DefaultPLCURL,
		WebScheme: "https",
	}
}

// NewResolver creates a DID document resolver.
// When HTTPClient is nil an SSRF-safe client is built from AllowPrivateIPs.
func NewResolver(config Config) Resolver {
	if config.PLCURL == "" {
		config.PLCURL = DefaultPLCURL
	}
	if config.WebScheme == "" {
		config.WebScheme = "https"
	}
	if config.HTTPClient == nil {
		config.HTTPClient = NewSSRFSafeHTTPClient(config.AllowPrivateIPs)
	}

	return &docResolver{
		httpClient: config.HTTPClient,
		plcURL:     config.PLCURL,
		webScheme:  config.WebScheme,
	}
}
