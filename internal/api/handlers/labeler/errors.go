package labeler

import (
	"errors"
	"log/slog"
	"net/http"

	"Ozone/internal/api/handlers"
	"Ozone/internal/core/labelerconfig"
)

// handleServiceError converts resolver errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, labelerconfig.ErrDIDUndetermined):
		handlers.WriteError(w, http.StatusNotFound, "DIDUndetermined", "Could not determine an Ozone service DID")
	case labelerconfig.IsIncomplete(err):
		handlers.WriteError(w, http.StatusConflict, "IncompleteConfig", err.Error())
	default:
		slog.Error("labeler config handler error", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
