package labelerconfig

import (
	"time"

	"Ozone/internal/atproto/identity"
)

// OzoneMeta is the metadata a labeler publishes about itself at
// /.well-known/atproto-labeler.json
type OzoneMeta struct {
	DID       string `json:"did"`
	URL       string `json:"url"`
	PublicKey string `json:"publicKey"`
}

// Matching reports whether the DID document and the well-known metadata agree
type Matching struct {
	// Service is true when the document's labeler endpoint and meta.url normalize to the same URL
	Service bool `json:"service"`
	// Key is true when the document's atproto_label key equals meta.publicKey
	Key bool `json:"key"`
}

// Needs lists the pieces of labeler setup that could not be resolved.
// Each flag is true when the corresponding piece is missing.
type Needs struct {
	Identity bool `json:"identity"` // no DID document
	Service  bool `json:"service"`  // no atproto_labeler service in the document
	Key      bool `json:"key"`      // no atproto_label verification method in the document
	PDS      bool `json:"pds"`      // no atproto_pds service in the document
	Record   bool `json:"record"`   // no app.bsky.labeler.service/self record on the PDS
}

// OzoneConfig is the consolidated result of resolving a labeler's configuration.
// Doc, Meta, Handle and Record are nil when they could not be resolved.
type OzoneConfig struct {
	DID       string               `json:"did"`
	Handle    *string              `json:"handle"`
	Meta      *OzoneMeta           `json:"meta"`
	Doc       *identity.DIDDocData `json:"doc"`
	Matching  Matching             `json:"matching"`
	Needs     Needs                `json:"needs"`
	Record    map[string]any       `json:"record"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// OzoneConfigFull is an OzoneConfig whose Doc and Meta are guaranteed non-nil.
// Only WithDocAndMeta produces one.
type OzoneConfigFull struct {
	OzoneConfig
}
