package api

import (
	"net/http"

	"github.com/profeai/profeai-api/internal/api/shared"
)

// Provider modes reported by the health endpoint.
const (
	ProviderModeLLM     = "llm"
	ProviderModeCatalog = "catalog"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	providerAvailable bool
	catalogSize       int
}

// NewHealthHandler creates a HealthHandler. providerAvailable reports
// whether lessons come from the language model or only from the catalog.
func NewHealthHandler(providerAvailable bool, catalogSize int) *HealthHandler {
	return &HealthHandler{providerAvailable: providerAvailable, catalogSize: catalogSize}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mode := ProviderModeCatalog
	if h.providerAvailable {
		mode = ProviderModeLLM
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:       "ok",
		ProviderMode: mode,
		CatalogSize:  h.catalogSize,
	})
}
