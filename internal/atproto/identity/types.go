package identity

// DID methods supported for document resolution
const (
	MethodPLC = "plc"
	MethodWeb = "web"
)

// Well-known fragment ids used by atproto DID documents
const (
	ServicePDS     = "atproto_pds"
	ServiceLabeler = "atproto_labeler"
	KeyAtproto     = "atproto"
	KeyLabel       = "atproto_label"
)

// DIDDocData is the permissively-parsed view of a DID document.
// Maps are keyed by fragment id (the part after '#').
type DIDDocData struct {
	VerificationMethods map[string]string     `json:"verificationMethods"` // fragment -> did:key:...
	Services            map[string]DIDService `json:"services"`            // fragment -> service
	DID                 string                `json:"did"`
	AlsoKnownAs         []string              `json:"alsoKnownAs"`
}

// DIDService is a single service entry from a DID document
type DIDService struct {
	Type     string `json:"type"`
	Endpoint string `json:"endpoint"`
}

// ServiceURL returns the endpoint for the given service fragment, or "" if absent
func (d *DIDDocData) ServiceURL(serviceID string) string {
	if d == nil {
		return ""
	}
	return d.Services[serviceID].Endpoint
}

// DIDKey returns the did:key for the given verification method fragment, or "" if absent
func (d *DIDDocData) DIDKey(keyID string) string {
	if d == nil {
		return ""
	}
	return d.VerificationMethods[keyID]
}
