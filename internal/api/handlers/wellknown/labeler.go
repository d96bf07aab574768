package wellknown

import (
	"log/slog"
	"net/http"

	"Ozone/internal/api/handlers"
	"Ozone/internal/core/labelerconfig"
)

// LabelerHandler serves this service's own labeler metadata
type LabelerHandler struct {
	meta labelerconfig.OzoneMeta
}

// NewLabelerHandler creates a handler publishing the given metadata.
// An empty DID means the service has not been set up as a labeler yet.
func NewLabelerHandler(meta labelerconfig.OzoneMeta) *LabelerHandler {
	if meta.DID == "" {
		slog.Warn("OZONE_SERVER_DID not set, well-known labeler metadata will return 404",
			"note", "Set OZONE_SERVER_DID once the labeler DID exists")
	}
	return &LabelerHandler{meta: meta}
}

// HandleLabelerMetadata serves the labeler metadata document
// GET /.well-known/atproto-labeler.json
//
// The console's resolver reads this to discover the labeler DID when none is
// given, and to cross-check the service URL and signing key in the DID document.
func (h *LabelerHandler) HandleLabelerMetadata(w http.ResponseWriter, r *http.Request) {
	if h.meta.DID == "" {
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Labeler is not configured")
		return
	}

	// Allow the console UI on another origin to read it
	w.Header().Set("Access-Control-Allow-Origin", "*")
	handlers.WriteJSON(w, h.meta)

	slog.Debug("served atproto-labeler.json", "did", h.meta.DID)
}
