package labeler

import (
	"net/http"
	"net/url"

	"Ozone/internal/api/handlers"
	"Ozone/internal/core/labelerconfig"
)

// GetHandler serves resolved labeler configuration
type GetHandler struct {
	service labelerconfig.Service
}

// NewGetHandler creates a new config handler
func NewGetHandler(service labelerconfig.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleGet resolves and returns the labeler config
// GET /api/config?did={did}&plcUrl={url}
//
// Both parameters are optional. Without did the console's own well-known
// metadata decides which labeler is resolved.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w, r)
	if !ok {
		return
	}
	handlers.WriteJSON(w, cfg)
}

// HandleGetFull is HandleGet narrowed to configs with both doc and meta present
// GET /api/config/full?did={did}&plcUrl={url}
func (h *GetHandler) HandleGetFull(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w, r)
	if !ok {
		return
	}
	full, err := labelerconfig.WithDocAndMeta(cfg)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, full)
}

func (h *GetHandler) resolve(w http.ResponseWriter, r *http.Request) (*labelerconfig.OzoneConfig, bool) {
	query := r.URL.Query()
	did := query.Get("did")
	plcURL := query.Get("plcUrl")

	if plcURL != "" && !isHTTPURL(plcURL) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "plcUrl must be an absolute http(s) URL")
		return nil, false
	}

	cfg, err := h.service.Resolve(r.Context(), did, plcURL)
	if err != nil {
		handleServiceError(w, err)
		return nil, false
	}
	return cfg, true
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
