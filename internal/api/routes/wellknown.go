package routes

import (
	"Ozone/internal/api/handlers/wellknown"
	"Ozone/internal/core/labelerconfig"

	"github.com/go-chi/chi/v5"
)

// RegisterWellKnownRoutes registers RFC 8615 well-known URI endpoints
//
// Spec: https://www.rfc-editor.org/rfc/rfc8615.html
func RegisterWellKnownRoutes(r chi.Router, handler *wellknown.LabelerHandler) {
	// Labeler metadata, cross-checked against the labeler's DID document.
	// Must be served at the exact path with no redirects.
	r.Get(labelerconfig.WellKnownPath, handler.HandleLabelerMetadata)
}
